// Package mocks implementa los puertos de repository con testify/mock para las pruebas de casos de uso.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/empresas-api/internal/domain/entity"
	"github.com/jhoicas/empresas-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository  = (*CompanyRepository)(nil)
	_ repository.UserRepository     = (*UserRepository)(nil)
	_ repository.ProductRepository  = (*ProductRepository)(nil)
	_ repository.SupplierRepository = (*SupplierRepository)(nil)
	_ repository.CountryRepository  = (*CountryRepository)(nil)
)

func int64Ret(args mock.Arguments, i int) int64 {
	v, _ := args.Get(i).(int64)
	return v
}

// CompanyRepository mock.
type CompanyRepository struct{ mock.Mock }

func (m *CompanyRepository) Create(ctx context.Context, c *entity.Company) (int64, error) {
	args := m.Called(ctx, c)
	return int64Ret(args, 0), args.Error(1)
}

func (m *CompanyRepository) GetByID(ctx context.Context, id int64) (*entity.Company, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Company)
	return c, args.Error(1)
}

func (m *CompanyRepository) FindConflicting(ctx context.Context, name, email string, phone int64) (*entity.Company, error) {
	args := m.Called(ctx, name, email, phone)
	c, _ := args.Get(0).(*entity.Company)
	return c, args.Error(1)
}

func (m *CompanyRepository) Update(ctx context.Context, id int64, patch entity.CompanyPatch) (int64, error) {
	args := m.Called(ctx, id, patch)
	return int64Ret(args, 0), args.Error(1)
}

func (m *CompanyRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return int64Ret(args, 0), args.Error(1)
}

// UserRepository mock.
type UserRepository struct{ mock.Mock }

func (m *UserRepository) Create(ctx context.Context, u *entity.User) (int64, error) {
	args := m.Called(ctx, u)
	return int64Ret(args, 0), args.Error(1)
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *UserRepository) ListByCompany(ctx context.Context, companyID int64) ([]*entity.CompanyMember, error) {
	args := m.Called(ctx, companyID)
	list, _ := args.Get(0).([]*entity.CompanyMember)
	return list, args.Error(1)
}

func (m *UserRepository) SearchByName(ctx context.Context, name string, companyID int64) (*entity.CompanyMember, error) {
	args := m.Called(ctx, name, companyID)
	u, _ := args.Get(0).(*entity.CompanyMember)
	return u, args.Error(1)
}

func (m *UserRepository) AssignMembership(ctx context.Context, userID, companyID, roleID int64) (int64, error) {
	args := m.Called(ctx, userID, companyID, roleID)
	return int64Ret(args, 0), args.Error(1)
}

func (m *UserRepository) ChangeRole(ctx context.Context, userID, companyID, roleID int64) (int64, error) {
	args := m.Called(ctx, userID, companyID, roleID)
	return int64Ret(args, 0), args.Error(1)
}

func (m *UserRepository) RemoveMembership(ctx context.Context, userID, companyID int64) (int64, error) {
	args := m.Called(ctx, userID, companyID)
	return int64Ret(args, 0), args.Error(1)
}

func (m *UserRepository) ClearCompany(ctx context.Context, companyID int64) (int64, error) {
	args := m.Called(ctx, companyID)
	return int64Ret(args, 0), args.Error(1)
}

// ProductRepository mock.
type ProductRepository struct{ mock.Mock }

func (m *ProductRepository) Create(ctx context.Context, p *entity.Product) (int64, error) {
	args := m.Called(ctx, p)
	return int64Ret(args, 0), args.Error(1)
}

func (m *ProductRepository) ListByCompany(ctx context.Context, companyID int64) ([]*entity.Product, error) {
	args := m.Called(ctx, companyID)
	list, _ := args.Get(0).([]*entity.Product)
	return list, args.Error(1)
}

func (m *ProductRepository) SearchByName(ctx context.Context, name string, companyID int64) (*entity.Product, error) {
	args := m.Called(ctx, name, companyID)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *ProductRepository) Update(ctx context.Context, id, companyID int64, patch entity.ProductPatch) (int64, error) {
	args := m.Called(ctx, id, companyID, patch)
	return int64Ret(args, 0), args.Error(1)
}

func (m *ProductRepository) Delete(ctx context.Context, id, companyID int64) (int64, error) {
	args := m.Called(ctx, id, companyID)
	return int64Ret(args, 0), args.Error(1)
}

func (m *ProductRepository) DeleteByCompany(ctx context.Context, companyID int64) (int64, error) {
	args := m.Called(ctx, companyID)
	return int64Ret(args, 0), args.Error(1)
}

// SupplierRepository mock.
type SupplierRepository struct{ mock.Mock }

func (m *SupplierRepository) Create(ctx context.Context, s *entity.Supplier) (int64, error) {
	args := m.Called(ctx, s)
	return int64Ret(args, 0), args.Error(1)
}

func (m *SupplierRepository) GetByID(ctx context.Context, id, companyID int64) (*entity.Supplier, error) {
	args := m.Called(ctx, id, companyID)
	s, _ := args.Get(0).(*entity.Supplier)
	return s, args.Error(1)
}

func (m *SupplierRepository) ListByCompany(ctx context.Context, companyID int64) ([]*entity.Supplier, error) {
	args := m.Called(ctx, companyID)
	list, _ := args.Get(0).([]*entity.Supplier)
	return list, args.Error(1)
}

func (m *SupplierRepository) SearchByName(ctx context.Context, name string, companyID int64) (*entity.Supplier, error) {
	args := m.Called(ctx, name, companyID)
	s, _ := args.Get(0).(*entity.Supplier)
	return s, args.Error(1)
}

func (m *SupplierRepository) Update(ctx context.Context, id, companyID int64, patch entity.SupplierPatch) (int64, error) {
	args := m.Called(ctx, id, companyID, patch)
	return int64Ret(args, 0), args.Error(1)
}

func (m *SupplierRepository) Delete(ctx context.Context, id, companyID int64) (int64, error) {
	args := m.Called(ctx, id, companyID)
	return int64Ret(args, 0), args.Error(1)
}

func (m *SupplierRepository) DeleteByCompany(ctx context.Context, companyID int64) (int64, error) {
	args := m.Called(ctx, companyID)
	return int64Ret(args, 0), args.Error(1)
}

// CountryRepository mock.
type CountryRepository struct{ mock.Mock }

func (m *CountryRepository) List(ctx context.Context) ([]*entity.Country, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.Country)
	return list, args.Error(1)
}

func (m *CountryRepository) GetByID(ctx context.Context, id int64) (*entity.Country, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Country)
	return c, args.Error(1)
}

// TxRunner ejecuta fn directamente sobre Repos, sin transacción real. Committed/RolledBack
// permiten verificar el resultado de la unidad de trabajo.
type TxRunner struct {
	Repos      repository.Repositories
	BeginErr   error
	Committed  bool
	RolledBack bool
}

func (r *TxRunner) Run(ctx context.Context, fn func(repository.Repositories) error) error {
	if r.BeginErr != nil {
		return r.BeginErr
	}
	if err := fn(r.Repos); err != nil {
		r.RolledBack = true
		return err
	}
	r.Committed = true
	return nil
}
