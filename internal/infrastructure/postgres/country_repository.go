package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/empresas-api/internal/domain/entity"
	"github.com/jhoicas/empresas-api/internal/domain/repository"
)

var _ repository.CountryRepository = (*CountryRepo)(nil)

// CountryRepo lectura del catálogo de países.
type CountryRepo struct {
	q Querier
}

// NewCountryRepository construye el adaptador.
func NewCountryRepository(q Querier) *CountryRepo {
	return &CountryRepo{q: q}
}

// List devuelve todos los países ordenados por id.
func (r *CountryRepo) List(ctx context.Context) ([]*entity.Country, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM countries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Country, 0)
	for rows.Next() {
		var c entity.Country
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// GetByID devuelve el país id, o nil.
func (r *CountryRepo) GetByID(ctx context.Context, id int64) (*entity.Country, error) {
	var c entity.Country
	err := r.q.QueryRow(ctx, `SELECT id, name FROM countries WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get country: %w", err)
	}
	return &c, nil
}
