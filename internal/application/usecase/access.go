package usecase

import (
	"github.com/jhoicas/empresas-api/internal/domain"
	"github.com/jhoicas/empresas-api/internal/domain/entity"
)

// Códigos de autorización devueltos en el cuerpo del 401.
const (
	CodeNoCompany              = "NO_COMPANY"
	CodeInsufficientPermission = "INSUFFICIENT_PERMISSION"
)

// requireCompany exige que la identidad pertenezca a una empresa y devuelve su id.
func requireCompany(id entity.Identity) (int64, error) {
	if !id.HasCompany() {
		return 0, domain.Unauthorized(CodeNoCompany, "el usuario no pertenece a una empresa")
	}
	return id.Company(), nil
}

// requireRole exige empresa y uno de roles. Sin roles basta con tener alguno.
func requireRole(id entity.Identity, roles ...int64) (int64, error) {
	companyID, err := requireCompany(id)
	if err != nil {
		return 0, err
	}
	if len(roles) == 0 && id.HasRole() {
		return companyID, nil
	}
	if !id.HasAnyRole(roles...) {
		return 0, domain.Unauthorized(CodeInsufficientPermission, "permiso insuficiente para esta acción")
	}
	return companyID, nil
}
