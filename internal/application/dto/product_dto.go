package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Nombre      string           `json:"nombre" validate:"required,max=100"`
	Precio      *decimal.Decimal `json:"precio" validate:"required,gte=0,lte=1000000000"`
	Modelo      string           `json:"modelo" validate:"required,max=100"`
	ProveedorID int64            `json:"proveedor_id" validate:"required,gt=0"`
	Stock       *int64           `json:"stock" validate:"required,gte=0"`
	Descripcion string           `json:"descripcion" validate:"required,max=500"`
	NumeroSerie *int64           `json:"numero_serie" validate:"required,gte=0"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales, COALESCE).
type UpdateProductRequest struct {
	Nombre      *string          `json:"nombre" validate:"omitempty,min=1,max=100"`
	Precio      *decimal.Decimal `json:"precio" validate:"omitempty,gte=0,lte=1000000000"`
	Modelo      *string          `json:"modelo" validate:"omitempty,min=1,max=100"`
	ProveedorID *int64           `json:"proveedor_id" validate:"omitempty,gt=0"`
	Stock       *int64           `json:"stock" validate:"omitempty,gte=0"`
	Descripcion *string          `json:"descripcion" validate:"omitempty,max=500"`
	NumeroSerie *int64           `json:"numero_serie" validate:"omitempty,gte=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64           `json:"producto_id"`
	Nombre      string          `json:"nombre"`
	Precio      decimal.Decimal `json:"precio"`
	Modelo      string          `json:"modelo"`
	ProveedorID int64           `json:"proveedor_id"`
	Stock       int64           `json:"stock"`
	Descripcion string          `json:"descripcion"`
	NumeroSerie int64           `json:"numero_serie"`
}

// ProductListResponse listado de productos de la empresa (lo que se guarda en caché).
type ProductListResponse struct {
	Products       []ProductResponse `json:"products"`
	ProductsLength int               `json:"productsLength"`
}
