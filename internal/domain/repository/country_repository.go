package repository

import (
	"context"

	"github.com/jhoicas/empresas-api/internal/domain/entity"
)

// CountryRepository acceso de solo lectura al catálogo de países.
type CountryRepository interface {
	List(ctx context.Context) ([]*entity.Country, error)
	GetByID(ctx context.Context, id int64) (*entity.Country, error)
}
