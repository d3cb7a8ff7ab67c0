package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/empresas-api/internal/domain/entity"
	"github.com/jhoicas/empresas-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	if err := row.Scan(&s.ID, &s.CompanyID, &s.CountryID, &s.Name, &s.Email); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste un proveedor. Un country_id inexistente viola la FK (Validation).
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) (int64, error) {
	const query = `
		INSERT INTO suppliers (company_id, country_id, name, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	var id int64
	if err := r.q.QueryRow(ctx, query, s.CompanyID, s.CountryID, s.Name, s.Email).Scan(&id); err != nil {
		return 0, translate("insert supplier", err)
	}
	return id, nil
}

// GetByID obtiene el proveedor id de la empresa, o nil.
func (r *SupplierRepo) GetByID(ctx context.Context, id, companyID int64) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx,
		`SELECT id, company_id, country_id, name, email FROM suppliers WHERE id = $1 AND company_id = $2`,
		id, companyID,
	))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

// ListByCompany lista los proveedores de la empresa.
func (r *SupplierRepo) ListByCompany(ctx context.Context, companyID int64) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, company_id, country_id, name, email FROM suppliers WHERE company_id = $1 ORDER BY id`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Supplier, 0)
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// SearchByName devuelve el primer proveedor (por id) cuyo nombre contiene name.
func (r *SupplierRepo) SearchByName(ctx context.Context, name string, companyID int64) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx,
		`SELECT id, company_id, country_id, name, email FROM suppliers
		 WHERE company_id = $1 AND name ILIKE $2 ORDER BY id LIMIT 1`,
		companyID, containsPattern(name),
	))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("search supplier: %w", err)
	}
	return s, nil
}

// Update aplica el parche con COALESCE por columna.
func (r *SupplierRepo) Update(ctx context.Context, id, companyID int64, patch entity.SupplierPatch) (int64, error) {
	query, args, err := psql.Update("suppliers").
		Set("country_id", sq.Expr("COALESCE(?, country_id)", patch.CountryID)).
		Set("name", sq.Expr("COALESCE(?, name)", patch.Name)).
		Set("email", sq.Expr("COALESCE(?, email)", patch.Email)).
		Where(sq.Eq{"id": id, "company_id": companyID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update supplier: %w", err)
	}
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, translate("update supplier", err)
	}
	return cmd.RowsAffected(), nil
}

// Delete elimina el proveedor id. Con productos que lo referencian la FK lo impide (Validation).
func (r *SupplierRepo) Delete(ctx context.Context, id, companyID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, translateSupplierInUse(err)
		}
		return 0, translate("delete supplier", err)
	}
	return cmd.RowsAffected(), nil
}

// DeleteByCompany elimina todos los proveedores de la empresa (tras borrar sus productos).
func (r *SupplierRepo) DeleteByCompany(ctx context.Context, companyID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE company_id = $1`, companyID)
	if err != nil {
		return 0, translate("delete company suppliers", err)
	}
	return cmd.RowsAffected(), nil
}
