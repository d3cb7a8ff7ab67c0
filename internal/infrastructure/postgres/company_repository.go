package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/empresas-api/internal/domain/entity"
	"github.com/jhoicas/empresas-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa y devuelve su id. Nombre, email y teléfono son UNIQUE.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) (int64, error) {
	const query = `
		INSERT INTO companies (name, email, phone, created_at, creator_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	var id int64
	if err := r.q.QueryRow(ctx, query, c.Name, c.Email, c.Phone, c.CreatedAt, c.CreatorID).Scan(&id); err != nil {
		return 0, translate("insert company", err)
	}
	return id, nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id int64) (*entity.Company, error) {
	const query = `
		SELECT id, name, email, phone, created_at, creator_id
		FROM companies WHERE id = $1`
	var c entity.Company
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.CreatorID)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// FindConflicting devuelve la primera empresa que comparte nombre, email o teléfono.
func (r *CompanyRepo) FindConflicting(ctx context.Context, name, email string, phone int64) (*entity.Company, error) {
	const query = `
		SELECT id, name, email, phone, created_at, creator_id
		FROM companies
		WHERE name = $1 OR email = $2 OR phone = $3
		ORDER BY id
		LIMIT 1`
	var c entity.Company
	err := r.q.QueryRow(ctx, query, name, email, phone).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.CreatorID)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find conflicting company: %w", err)
	}
	return &c, nil
}

// Update aplica el parche con COALESCE por columna: un campo nil conserva su valor.
func (r *CompanyRepo) Update(ctx context.Context, id int64, patch entity.CompanyPatch) (int64, error) {
	query, args, err := psql.Update("companies").
		Set("name", sq.Expr("COALESCE(?, name)", patch.Name)).
		Set("email", sq.Expr("COALESCE(?, email)", patch.Email)).
		Set("phone", sq.Expr("COALESCE(?, phone)", patch.Phone)).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update company: %w", err)
	}
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, translate("update company", err)
	}
	return cmd.RowsAffected(), nil
}

// Delete elimina la fila de la empresa. Los miembros, productos y proveedores deben limpiarse antes.
func (r *CompanyRepo) Delete(ctx context.Context, id int64) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return 0, translate("delete company", err)
	}
	return cmd.RowsAffected(), nil
}
