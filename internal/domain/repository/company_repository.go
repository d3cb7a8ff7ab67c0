package repository

import (
	"context"

	"github.com/jhoicas/empresas-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Company, error)
	// FindConflicting devuelve una empresa con el mismo nombre, email o teléfono (o nil).
	FindConflicting(ctx context.Context, name, email string, phone int64) (*entity.Company, error)
	// Update aplica el parche con COALESCE por columna. Devuelve las filas afectadas.
	Update(ctx context.Context, id int64, patch entity.CompanyPatch) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
