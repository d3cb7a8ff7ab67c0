package entity

import "time"

// Company representa una empresa (tenant). Es el límite de aislamiento de usuarios, productos y proveedores.
type Company struct {
	ID        int64
	Name      string
	Email     string
	Phone     int64
	CreatedAt time.Time
	CreatorID *int64 // nil si el creador fue eliminado
}

// CompanyPatch actualización parcial; un campo nil conserva el valor almacenado.
type CompanyPatch struct {
	Name  *string
	Email *string
	Phone *int64
}
