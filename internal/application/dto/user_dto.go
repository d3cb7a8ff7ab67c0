package dto

// RegisterRequest entrada para registro de usuario (password en texto, se hashea en el caso de uso).
type RegisterRequest struct {
	NombreUsuario string `json:"nombre_usuario" validate:"required,max=50,nospaces"`
	Nombre        string `json:"nombre" validate:"required,max=100"`
	Apellidos     string `json:"apellidos" validate:"required,max=100"`
	Contrasena    string `json:"contraseña" validate:"required,min=7,max=72,password"`
	Email         string `json:"email" validate:"required,email,max=50,lowercase_email"`
	Telefono      int64  `json:"telefono" validate:"required,gt=0,lte=99999999999"`
}

// RegisterResponse salida del registro.
type RegisterResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"usuario_id"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// ChangeRoleRequest entrada para cambiar el rol de un miembro.
type ChangeRoleRequest struct {
	RolID int64 `json:"rol_id" validate:"required,gt=0"`
}

// CompanyUserResponse miembro de la empresa con su rol y permisos (solo lectura).
type CompanyUserResponse struct {
	ID        int64    `json:"usuario_id"`
	Nombre    string   `json:"nombre"`
	Apellidos string   `json:"apellidos"`
	Email     string   `json:"email"`
	RolID     *int64   `json:"rol_id"`
	Rol       string   `json:"rol"`
	Permisos  []string `json:"permisos"`
}

// CompanyUserListResponse listado de miembros de la empresa.
type CompanyUserListResponse struct {
	Users       []CompanyUserResponse `json:"users"`
	UsersLength int                   `json:"usersLength"`
}
