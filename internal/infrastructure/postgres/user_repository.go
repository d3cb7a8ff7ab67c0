package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/empresas-api/internal/domain/entity"
	"github.com/jhoicas/empresas-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un usuario nuevo sin empresa ni rol. username es UNIQUE.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) (int64, error) {
	const query = `
		INSERT INTO users (username, first_name, last_name, password_hash, email, phone, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query,
		u.Username, u.FirstName, u.LastName, u.PasswordHash, u.Email, u.Phone, u.Active, u.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, translate("insert user", err)
	}
	return id, nil
}

// GetByUsername obtiene un usuario por nombre de usuario. Devuelve nil si no existe.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	const query = `
		SELECT id, username, first_name, last_name, password_hash, email, phone, active, created_at, company_id, role_id
		FROM users WHERE username = $1`
	var u entity.User
	err := r.q.QueryRow(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.PasswordHash, &u.Email, &u.Phone,
		&u.Active, &u.CreatedAt, &u.CompanyID, &u.RoleID,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &u, nil
}

// memberSelect une rol y permisos agregados; los permisos solo se muestran.
const memberSelect = `
	SELECT u.id, u.first_name, u.last_name, u.email, u.role_id,
	       COALESCE(r.name, '') AS role,
	       COALESCE(array_agg(p.name ORDER BY p.name) FILTER (WHERE p.name IS NOT NULL), '{}') AS permissions
	FROM users u
	LEFT JOIN roles r ON r.id = u.role_id
	LEFT JOIN role_permissions rp ON rp.role_id = u.role_id
	LEFT JOIN permissions p ON p.id = rp.permission_id`

// ListByCompany lista los miembros de la empresa con rol y permisos.
func (r *UserRepo) ListByCompany(ctx context.Context, companyID int64) ([]*entity.CompanyMember, error) {
	query := memberSelect + `
	WHERE u.company_id = $1
	GROUP BY u.id, r.name
	ORDER BY u.id`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list company users: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.CompanyMember, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// SearchByName busca por substring en "nombre apellidos", sin distinguir mayúsculas. Devuelve el primero por id.
func (r *UserRepo) SearchByName(ctx context.Context, name string, companyID int64) (*entity.CompanyMember, error) {
	query := memberSelect + `
	WHERE u.company_id = $1 AND (u.first_name || ' ' || u.last_name) ILIKE $2
	GROUP BY u.id, r.name
	ORDER BY u.id
	LIMIT 1`
	rows, err := r.q.Query(ctx, query, companyID, containsPattern(name))
	if err != nil {
		return nil, fmt.Errorf("search company user: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanMember(rows)
}

func scanMember(rows pgx.Rows) (*entity.CompanyMember, error) {
	var m entity.CompanyMember
	if err := rows.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.RoleID, &m.Role, &m.Permissions); err != nil {
		return nil, fmt.Errorf("scan company user: %w", err)
	}
	return &m, nil
}

// AssignMembership asigna empresa y rol solo si el usuario no pertenece a ninguna empresa.
func (r *UserRepo) AssignMembership(ctx context.Context, userID, companyID, roleID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE users SET company_id = $2, role_id = $3 WHERE id = $1 AND company_id IS NULL`,
		userID, companyID, roleID,
	)
	if err != nil {
		return 0, translate("assign membership", err)
	}
	return cmd.RowsAffected(), nil
}

// ChangeRole cambia el rol de un miembro de companyID.
func (r *UserRepo) ChangeRole(ctx context.Context, userID, companyID, roleID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE users SET role_id = $3 WHERE id = $1 AND company_id = $2`,
		userID, companyID, roleID,
	)
	if err != nil {
		return 0, translate("change role", err)
	}
	return cmd.RowsAffected(), nil
}

// RemoveMembership limpia empresa y rol de un miembro de companyID.
func (r *UserRepo) RemoveMembership(ctx context.Context, userID, companyID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE users SET company_id = NULL, role_id = NULL WHERE id = $1 AND company_id = $2`,
		userID, companyID,
	)
	if err != nil {
		return 0, translate("remove membership", err)
	}
	return cmd.RowsAffected(), nil
}

// ClearCompany limpia empresa y rol de todos los miembros.
func (r *UserRepo) ClearCompany(ctx context.Context, companyID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE users SET company_id = NULL, role_id = NULL WHERE company_id = $1`, companyID)
	if err != nil {
		return 0, translate("clear company members", err)
	}
	return cmd.RowsAffected(), nil
}
