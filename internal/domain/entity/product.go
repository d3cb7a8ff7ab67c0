package entity

import "github.com/shopspring/decimal"

// Product pertenece a exactamente una empresa.
type Product struct {
	ID           int64
	CompanyID    int64
	Name         string
	Price        decimal.Decimal
	Model        string
	SupplierID   int64
	Stock        int64
	Description  string
	SerialNumber int64
}

// ProductPatch actualización parcial con semántica COALESCE.
type ProductPatch struct {
	Name         *string
	Price        *decimal.Decimal
	Model        *string
	SupplierID   *int64
	Stock        *int64
	Description  *string
	SerialNumber *int64
}
