package company_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/empresas-api/internal/application/auth"
	"github.com/jhoicas/empresas-api/internal/application/cache"
	"github.com/jhoicas/empresas-api/internal/application/company"
	"github.com/jhoicas/empresas-api/internal/application/dto"
	"github.com/jhoicas/empresas-api/internal/domain"
	"github.com/jhoicas/empresas-api/internal/domain/entity"
	"github.com/jhoicas/empresas-api/internal/domain/repository"
	"github.com/jhoicas/empresas-api/internal/domain/repository/mocks"
)

type fixture struct {
	companies *mocks.CompanyRepository
	users     *mocks.UserRepository
	products  *mocks.ProductRepository
	suppliers *mocks.SupplierRepository
	tx        *mocks.TxRunner
	tokens    *auth.TokenIssuer
	store     *keyStore
	uc        *company.UseCase
}

// keyStore registra las claves invalidadas.
type keyStore struct {
	cache.NopStore
	deleted []string
}

func (s *keyStore) Delete(_ context.Context, keys ...string) error {
	s.deleted = append(s.deleted, keys...)
	return nil
}

func newFixture() *fixture {
	f := &fixture{
		companies: new(mocks.CompanyRepository),
		users:     new(mocks.UserRepository),
		products:  new(mocks.ProductRepository),
		suppliers: new(mocks.SupplierRepository),
		tokens:    auth.NewTokenIssuer(auth.JWTConfig{Secret: "s", ExpMinutes: 60}),
		store:     &keyStore{},
	}
	f.tx = &mocks.TxRunner{Repos: repository.Repositories{
		Companies: f.companies, Users: f.users, Products: f.products, Suppliers: f.suppliers,
	}}
	policy := cache.NewPolicy(f.store, 0, zerolog.Nop())
	f.uc = company.NewUseCase(f.companies, f.tx, f.tokens, policy, zerolog.Nop())
	return f
}

func ptr(v int64) *int64 { return &v }

func ceo(companyID int64) entity.Identity {
	return entity.Identity{UserID: 1, Username: "alice", CompanyID: ptr(companyID), RoleID: ptr(entity.RoleCEO)}
}

var acme = dto.CreateCompanyRequest{Nombre: "Acme Works", Email: "a@acme.com", Telefono: 123456789}

func TestCreate_OK_ReemiteTokenComoCEO(t *testing.T) {
	f := newFixture()
	alice := entity.Identity{UserID: 1, Username: "alice"}
	oldToken, err := f.tokens.Issue(alice)
	require.NoError(t, err)

	f.companies.On("FindConflicting", mock.Anything, "Acme Works", "a@acme.com", int64(123456789)).Return(nil, nil)
	f.companies.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Company) bool {
		return c.Name == "Acme Works" && c.CreatorID != nil && *c.CreatorID == 1
	})).Return(int64(10), nil)
	f.users.On("AssignMembership", mock.Anything, int64(1), int64(10), entity.RoleCEO).Return(int64(1), nil)

	out, err := f.uc.Create(context.Background(), alice, acme)
	require.NoError(t, err)
	assert.Equal(t, int64(10), out.CompanyID)
	assert.True(t, f.tx.Committed)

	claims, err := f.tokens.Verify(out.Token)
	require.NoError(t, err)
	require.NotNil(t, claims.CompanyID)
	assert.Equal(t, int64(10), *claims.CompanyID)
	assert.True(t, claims.HasAnyRole(entity.RoleCEO))

	old, err := f.tokens.Verify(oldToken)
	require.NoError(t, err)
	assert.False(t, old.HasCompany(), "el token anterior no cambia")

	assert.Equal(t, []string{"companyUsers:10"}, f.store.deleted)
}

func TestCreate_DuplicadoNoInserta(t *testing.T) {
	f := newFixture()
	f.companies.On("FindConflicting", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&entity.Company{ID: 3, Email: "a@acme.com"}, nil)

	_, err := f.uc.Create(context.Background(), entity.Identity{UserID: 1}, acme)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	f.companies.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.False(t, f.tx.Committed)
}

func TestCreate_ViolacionUnicaEnInsercion(t *testing.T) {
	f := newFixture()
	f.companies.On("FindConflicting", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	f.companies.On("Create", mock.Anything, mock.Anything).Return(int64(0), domain.AlreadyExists("companies_email_key"))

	_, err := f.uc.Create(context.Background(), entity.Identity{UserID: 1}, acme)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.True(t, f.tx.RolledBack)
	f.users.AssertNotCalled(t, "AssignMembership", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_CreadorYaMiembroRevierte(t *testing.T) {
	f := newFixture()
	f.companies.On("FindConflicting", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	f.companies.On("Create", mock.Anything, mock.Anything).Return(int64(11), nil)
	f.users.On("AssignMembership", mock.Anything, int64(1), int64(11), entity.RoleCEO).Return(int64(0), nil)

	_, err := f.uc.Create(context.Background(), entity.Identity{UserID: 1}, acme)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.True(t, f.tx.RolledBack)
	assert.Empty(t, f.store.deleted)
}

func TestCreate_FalloDeAlmacenEsPersistence(t *testing.T) {
	f := newFixture()
	f.companies.On("FindConflicting", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	f.companies.On("Create", mock.Anything, mock.Anything).Return(int64(0), errors.New("conn reset"))

	_, err := f.uc.Create(context.Background(), entity.Identity{UserID: 1}, acme)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.True(t, f.tx.RolledBack)
}

func TestCreate_Validacion(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), entity.Identity{UserID: 1}, dto.CreateCompanyRequest{Nombre: "Acm"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	f.companies.AssertNotCalled(t, "FindConflicting", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDelete_NoCEO(t *testing.T) {
	for _, role := range []int64{entity.RoleAdmin, entity.RoleInventoryManager, entity.RoleEmployee} {
		f := newFixture()
		id := entity.Identity{UserID: 2, CompanyID: ptr(10), RoleID: ptr(role)}
		_, err := f.uc.Delete(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.False(t, f.tx.Committed)
		f.users.AssertNotCalled(t, "ClearCompany", mock.Anything, mock.Anything)
		f.companies.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	}
}

func TestDelete_PasosOrdenados(t *testing.T) {
	f := newFixture()
	var steps []string
	record := func(name string) func(mock.Arguments) {
		return func(mock.Arguments) { steps = append(steps, name) }
	}
	f.users.On("ClearCompany", mock.Anything, int64(10)).Run(record("users")).Return(int64(3), nil)
	f.products.On("DeleteByCompany", mock.Anything, int64(10)).Run(record("products")).Return(int64(5), nil)
	f.suppliers.On("DeleteByCompany", mock.Anything, int64(10)).Run(record("suppliers")).Return(int64(2), nil)
	f.companies.On("Delete", mock.Anything, int64(10)).Run(record("company")).Return(int64(1), nil)

	out, err := f.uc.Delete(context.Background(), ceo(10))
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "products", "suppliers", "company"}, steps)
	assert.True(t, f.tx.Committed)

	claims, err := f.tokens.Verify(out.Token)
	require.NoError(t, err)
	assert.Nil(t, claims.CompanyID)
	assert.Nil(t, claims.RoleID)
	assert.ElementsMatch(t, cache.CompanyKeys(10), f.store.deleted)
}

func TestDelete_FalloEnUnPasoRevierteTodo(t *testing.T) {
	f := newFixture()
	f.users.On("ClearCompany", mock.Anything, int64(10)).Return(int64(3), nil)
	f.products.On("DeleteByCompany", mock.Anything, int64(10)).Return(int64(0), errors.New("deadlock"))

	_, err := f.uc.Delete(context.Background(), ceo(10))
	require.ErrorIs(t, err, domain.ErrPersistence)
	assert.Contains(t, err.Error(), company.StepDeleteProducts)
	assert.True(t, f.tx.RolledBack)
	f.suppliers.AssertNotCalled(t, "DeleteByCompany", mock.Anything, mock.Anything)
	assert.Empty(t, f.store.deleted)
}

func TestDelete_EmpresaInexistente(t *testing.T) {
	f := newFixture()
	f.users.On("ClearCompany", mock.Anything, int64(10)).Return(int64(0), nil)
	f.products.On("DeleteByCompany", mock.Anything, int64(10)).Return(int64(0), nil)
	f.suppliers.On("DeleteByCompany", mock.Anything, int64(10)).Return(int64(0), nil)
	f.companies.On("Delete", mock.Anything, int64(10)).Return(int64(0), nil)

	_, err := f.uc.Delete(context.Background(), ceo(10))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, f.tx.RolledBack)
}

func TestUpdate_ParcheParcial(t *testing.T) {
	f := newFixture()
	email := "ventas@acme.com"
	f.companies.On("Update", mock.Anything, int64(10), entity.CompanyPatch{Email: &email}).Return(int64(1), nil)

	out, err := f.uc.Update(context.Background(), ceo(10), dto.UpdateCompanyRequest{Email: &email})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Message)
	f.companies.AssertExpectations(t)
}

func TestUpdate_CeroFilas(t *testing.T) {
	f := newFixture()
	f.companies.On("Update", mock.Anything, int64(10), mock.Anything).Return(int64(0), nil)

	_, err := f.uc.Update(context.Background(), ceo(10), dto.UpdateCompanyRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_SoloCEO(t *testing.T) {
	f := newFixture()
	admin := entity.Identity{UserID: 2, CompanyID: ptr(10), RoleID: ptr(entity.RoleAdmin)}
	_, err := f.uc.Update(context.Background(), admin, dto.UpdateCompanyRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGet(t *testing.T) {
	f := newFixture()
	f.companies.On("GetByID", mock.Anything, int64(10)).Return(&entity.Company{ID: 10, Name: "Acme Works"}, nil)

	out, err := f.uc.Get(context.Background(), ceo(10))
	require.NoError(t, err)
	assert.Equal(t, "Acme Works", out.Nombre)

	_, err = f.uc.Get(context.Background(), entity.Identity{UserID: 1})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
