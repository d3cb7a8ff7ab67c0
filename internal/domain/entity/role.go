package entity

// Catálogo fijo de roles (debe coincidir con la semilla de la tabla roles).
const (
	RoleCEO              int64 = 1
	RoleAdmin            int64 = 2
	RoleInventoryManager int64 = 3
	RoleEmployee         int64 = 4
)

// Role representa un rol del catálogo. Los permisos se muestran, no se evalúan en código.
type Role struct {
	ID          int64
	Name        string
	Description string
}

// IsKnownRole informa si id pertenece al catálogo.
func IsKnownRole(id int64) bool {
	switch id {
	case RoleCEO, RoleAdmin, RoleInventoryManager, RoleEmployee:
		return true
	}
	return false
}
