package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Nombre   string `json:"nombre" validate:"required,min=5,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Telefono int64  `json:"telefono" validate:"required,gt=0,lte=99999999999"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales, COALESCE).
type UpdateCompanyRequest struct {
	Nombre   *string `json:"nombre" validate:"omitempty,min=5,max=100"`
	Email    *string `json:"email" validate:"omitempty,email,max=100"`
	Telefono *int64  `json:"telefono" validate:"omitempty,gt=0,lte=99999999999"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        int64     `json:"empresa_id"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	Telefono  int64     `json:"telefono"`
	Fecha     time.Time `json:"fecha"`
	CreadorID *int64    `json:"creador_id"`
}

// CompanyCreatedResponse salida de createCompany: id nuevo y token re-emitido con rol CEO.
type CompanyCreatedResponse struct {
	Message   string `json:"message"`
	CompanyID int64  `json:"empresa_id"`
	Token     string `json:"token"`
}
