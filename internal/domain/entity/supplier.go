package entity

// Supplier proveedor de una empresa.
type Supplier struct {
	ID        int64
	CompanyID int64
	CountryID int64
	Name      string
	Email     string
}

// SupplierPatch actualización parcial con semántica COALESCE.
type SupplierPatch struct {
	CountryID *int64
	Name      *string
	Email     *string
}
