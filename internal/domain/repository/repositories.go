package repository

// Repositories agrupa los repositorios atados a una misma transacción (ver TxRunner).
type Repositories struct {
	Companies CompanyRepository
	Users     UserRepository
	Products  ProductRepository
	Suppliers SupplierRepository
}
