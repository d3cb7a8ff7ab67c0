package usecase

import (
	"context"

	"github.com/jhoicas/empresas-api/internal/application/dto"
	"github.com/jhoicas/empresas-api/internal/domain"
	"github.com/jhoicas/empresas-api/internal/domain/repository"
)

// CountryUseCase lectura del catálogo de países (público).
type CountryUseCase struct {
	repo repository.CountryRepository
}

// NewCountryUseCase construye el caso de uso.
func NewCountryUseCase(repo repository.CountryRepository) *CountryUseCase {
	return &CountryUseCase{repo: repo}
}

// List devuelve todos los países.
func (uc *CountryUseCase) List(ctx context.Context) ([]dto.CountryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, domain.Persistence("no se pudieron listar los países", err)
	}
	out := make([]dto.CountryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CountryResponse{ID: c.ID, Nombre: c.Name})
	}
	return out, nil
}

// Get devuelve el país id.
func (uc *CountryUseCase) Get(ctx context.Context, id int64) (*dto.CountryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Persistence("no se pudo obtener el país", err)
	}
	if c == nil {
		return nil, domain.NotFound("país no encontrado")
	}
	return &dto.CountryResponse{ID: c.ID, Nombre: c.Name}, nil
}
