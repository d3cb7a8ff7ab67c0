package repository

import (
	"context"

	"github.com/jhoicas/empresas-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) (int64, error)
	GetByID(ctx context.Context, id, companyID int64) (*entity.Supplier, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*entity.Supplier, error)
	SearchByName(ctx context.Context, name string, companyID int64) (*entity.Supplier, error)
	Update(ctx context.Context, id, companyID int64, patch entity.SupplierPatch) (int64, error)
	Delete(ctx context.Context, id, companyID int64) (int64, error)
	DeleteByCompany(ctx context.Context, companyID int64) (int64, error)
}
