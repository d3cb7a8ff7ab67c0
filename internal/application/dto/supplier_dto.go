package dto

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	PaisID int64  `json:"pais_id" validate:"required,gt=0"`
	Nombre string `json:"nombre" validate:"required,max=100"`
	Email  string `json:"email" validate:"required,email,max=50,lowercase_email"`
}

// UpdateSupplierRequest entrada para actualizar un proveedor (campos opcionales, COALESCE).
type UpdateSupplierRequest struct {
	PaisID *int64  `json:"pais_id" validate:"omitempty,gt=0"`
	Nombre *string `json:"nombre" validate:"omitempty,min=1,max=100"`
	Email  *string `json:"email" validate:"omitempty,email,max=50,lowercase_email"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID     int64  `json:"proveedor_id"`
	PaisID int64  `json:"pais_id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
}

// SupplierListResponse listado de proveedores de la empresa.
type SupplierListResponse struct {
	Suppliers       []SupplierResponse `json:"suppliers"`
	SuppliersLength int                `json:"suppliersLength"`
}
