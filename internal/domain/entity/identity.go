package entity

// Identity son los claims del token ya verificados. Es la identidad de confianza durante la petición;
// no se vuelve a consultar el almacén, un cambio de rol solo se refleja con un token nuevo.
type Identity struct {
	UserID    int64
	Username  string
	CompanyID *int64
	RoleID    *int64
}

// HasCompany informa si la identidad pertenece a una empresa.
func (i Identity) HasCompany() bool { return i.CompanyID != nil }

// HasRole informa si la identidad tiene algún rol.
func (i Identity) HasRole() bool { return i.RoleID != nil }

// HasAnyRole informa si el rol de la identidad está en roles.
func (i Identity) HasAnyRole(roles ...int64) bool {
	if i.RoleID == nil {
		return false
	}
	for _, r := range roles {
		if *i.RoleID == r {
			return true
		}
	}
	return false
}

// Company devuelve el id de empresa o 0 si no pertenece a ninguna.
func (i Identity) Company() int64 {
	if i.CompanyID == nil {
		return 0
	}
	return *i.CompanyID
}

// WithMembership devuelve una copia con empresa y rol reemplazados (nil limpia ambos).
func (i Identity) WithMembership(companyID, roleID *int64) Identity {
	i.CompanyID = companyID
	i.RoleID = roleID
	return i
}
