package repository

import (
	"context"

	"github.com/jhoicas/empresas-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las operaciones de membresía asignan o limpian empresa y rol en la misma sentencia.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*entity.CompanyMember, error)
	SearchByName(ctx context.Context, name string, companyID int64) (*entity.CompanyMember, error)
	// AssignMembership asigna empresa y rol a un usuario que no pertenece a ninguna empresa.
	AssignMembership(ctx context.Context, userID, companyID, roleID int64) (int64, error)
	// ChangeRole cambia el rol de un miembro de companyID.
	ChangeRole(ctx context.Context, userID, companyID, roleID int64) (int64, error)
	// RemoveMembership limpia empresa y rol de un miembro de companyID.
	RemoveMembership(ctx context.Context, userID, companyID int64) (int64, error)
	// ClearCompany limpia empresa y rol de todos los miembros de companyID.
	ClearCompany(ctx context.Context, companyID int64) (int64, error)
}
