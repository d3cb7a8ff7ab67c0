package repository

import (
	"context"

	"github.com/jhoicas/empresas-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Todas las operaciones van acotadas por companyID (aislamiento de tenant).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) (int64, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*entity.Product, error)
	SearchByName(ctx context.Context, name string, companyID int64) (*entity.Product, error)
	Update(ctx context.Context, id, companyID int64, patch entity.ProductPatch) (int64, error)
	Delete(ctx context.Context, id, companyID int64) (int64, error)
	DeleteByCompany(ctx context.Context, companyID int64) (int64, error)
}
