package entity

import "time"

// User representa un usuario del sistema. CompanyID y RoleID se asignan y limpian siempre juntos:
// un usuario con rol pero sin empresa es inconsistente (la tabla lo impide con un CHECK).
type User struct {
	ID           int64
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string // bcrypt, nunca el password plano
	Email        string
	Phone        int64
	Active       bool
	CreatedAt    time.Time
	CompanyID    *int64
	RoleID       *int64
}

// CompanyMember vista de un usuario dentro de su empresa (rol y permisos solo para mostrar).
type CompanyMember struct {
	ID          int64
	FirstName   string
	LastName    string
	Email       string
	RoleID      *int64
	Role        string
	Permissions []string
}
