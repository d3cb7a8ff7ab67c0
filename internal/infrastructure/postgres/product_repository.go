package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/empresas-api/internal/domain/entity"
	"github.com/jhoicas/empresas-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// Todas las sentencias filtran por company_id.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, name, price, model, supplier_id, stock, description, serial_number`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Price, &p.Model, &p.SupplierID, &p.Stock, &p.Description, &p.SerialNumber)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) (int64, error) {
	const query = `
		INSERT INTO products (company_id, name, price, model, supplier_id, stock, description, serial_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query,
		p.CompanyID, p.Name, p.Price, p.Model, p.SupplierID, p.Stock, p.Description, p.SerialNumber,
	).Scan(&id)
	if err != nil {
		return 0, translate("insert product", err)
	}
	return id, nil
}

// ListByCompany lista los productos de la empresa.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID int64) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products WHERE company_id = $1 ORDER BY id`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// SearchByName devuelve el primer producto (por id) cuyo nombre contiene name.
func (r *ProductRepo) SearchByName(ctx context.Context, name string, companyID int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND name ILIKE $2 ORDER BY id LIMIT 1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, companyID, containsPattern(name)))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("search product: %w", err)
	}
	return p, nil
}

// Update aplica el parche con COALESCE por columna.
func (r *ProductRepo) Update(ctx context.Context, id, companyID int64, patch entity.ProductPatch) (int64, error) {
	query, args, err := psql.Update("products").
		Set("name", sq.Expr("COALESCE(?, name)", patch.Name)).
		Set("price", sq.Expr("COALESCE(?, price)", patch.Price)).
		Set("model", sq.Expr("COALESCE(?, model)", patch.Model)).
		Set("supplier_id", sq.Expr("COALESCE(?, supplier_id)", patch.SupplierID)).
		Set("stock", sq.Expr("COALESCE(?, stock)", patch.Stock)).
		Set("description", sq.Expr("COALESCE(?, description)", patch.Description)).
		Set("serial_number", sq.Expr("COALESCE(?, serial_number)", patch.SerialNumber)).
		Where(sq.Eq{"id": id, "company_id": companyID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update product: %w", err)
	}
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, translate("update product", err)
	}
	return cmd.RowsAffected(), nil
}

// Delete elimina el producto id de la empresa.
func (r *ProductRepo) Delete(ctx context.Context, id, companyID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return 0, translate("delete product", err)
	}
	return cmd.RowsAffected(), nil
}

// DeleteByCompany elimina todos los productos de la empresa.
func (r *ProductRepo) DeleteByCompany(ctx context.Context, companyID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE company_id = $1`, companyID)
	if err != nil {
		return 0, translate("delete company products", err)
	}
	return cmd.RowsAffected(), nil
}
