package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/empresas-api/internal/application/cache"
	"github.com/jhoicas/empresas-api/internal/application/dto"
	"github.com/jhoicas/empresas-api/internal/application/validation"
	"github.com/jhoicas/empresas-api/internal/domain"
	"github.com/jhoicas/empresas-api/internal/domain/entity"
	"github.com/jhoicas/empresas-api/internal/domain/repository"
)

// SupplierUseCase casos de uso de proveedores. Solo Admin y CEO pueden modificarlos.
type SupplierUseCase struct {
	repo  repository.SupplierRepository
	cache *cache.Policy
	log   zerolog.Logger
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, policy *cache.Policy, log zerolog.Logger) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, cache: policy, log: log}
}

// List devuelve los proveedores de la empresa (lectura a través de caché).
func (uc *SupplierUseCase) List(ctx context.Context, id entity.Identity) (*dto.SupplierListResponse, error) {
	companyID, err := requireCompany(id)
	if err != nil {
		return nil, err
	}
	out, err := cache.Fetch(ctx, uc.cache, cache.ResourceSuppliers, cache.Key(cache.ResourceSuppliers, companyID),
		func(ctx context.Context) (dto.SupplierListResponse, error) {
			list, err := uc.repo.ListByCompany(ctx, companyID)
			if err != nil {
				return dto.SupplierListResponse{}, domain.Persistence("no se pudieron listar los proveedores", err)
			}
			items := make([]dto.SupplierResponse, 0, len(list))
			for _, s := range list {
				items = append(items, toSupplierResponse(s))
			}
			return dto.SupplierListResponse{Suppliers: items, SuppliersLength: len(items)}, nil
		})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Search devuelve el primer proveedor cuyo nombre contiene name.
func (uc *SupplierUseCase) Search(ctx context.Context, id entity.Identity, q dto.SearchQuery) (*dto.SupplierResponse, error) {
	companyID, err := requireCompany(id)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(q); err != nil {
		return nil, err
	}
	s, err := uc.repo.SearchByName(ctx, q.Name, companyID)
	if err != nil {
		return nil, domain.Persistence("no se pudo buscar el proveedor", err)
	}
	if s == nil {
		return nil, domain.NotFound("proveedor no encontrado")
	}
	out := toSupplierResponse(s)
	return &out, nil
}

// Create crea un proveedor. Un pais_id inexistente llega del almacén como Validation.
func (uc *SupplierUseCase) Create(ctx context.Context, id entity.Identity, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	companyID, err := requireRole(id, entity.RoleCEO, entity.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	s := &entity.Supplier{CompanyID: companyID, CountryID: in.PaisID, Name: in.Nombre, Email: in.Email}
	newID, err := uc.repo.Create(ctx, s)
	if err != nil {
		return nil, domain.Persistence("no se pudo crear el proveedor", err)
	}
	s.ID = newID
	uc.cache.Invalidate(ctx, cache.Key(cache.ResourceSuppliers, companyID))
	out := toSupplierResponse(s)
	return &out, nil
}

// Update aplica los campos presentes al proveedor id de la empresa.
func (uc *SupplierUseCase) Update(ctx context.Context, id entity.Identity, supplierID int64, in dto.UpdateSupplierRequest) (*dto.MessageResponse, error) {
	companyID, err := requireRole(id, entity.RoleCEO, entity.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	rows, err := uc.repo.Update(ctx, supplierID, companyID, entity.SupplierPatch{CountryID: in.PaisID, Name: in.Nombre, Email: in.Email})
	if err != nil {
		return nil, domain.Persistence("no se pudo actualizar el proveedor", err)
	}
	if rows == 0 {
		return nil, domain.NotFound("proveedor no encontrado")
	}
	uc.cache.Invalidate(ctx, cache.Key(cache.ResourceSuppliers, companyID))
	return &dto.MessageResponse{Message: "proveedor actualizado"}, nil
}

// Delete elimina el proveedor id. Si aún tiene productos el almacén lo rechaza (Validation).
func (uc *SupplierUseCase) Delete(ctx context.Context, id entity.Identity, supplierID int64) (*dto.MessageResponse, error) {
	companyID, err := requireRole(id, entity.RoleCEO, entity.RoleAdmin)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.Delete(ctx, supplierID, companyID)
	if err != nil {
		return nil, domain.Persistence("no se pudo eliminar el proveedor", err)
	}
	if rows == 0 {
		return nil, domain.NotFound("proveedor no encontrado")
	}
	uc.cache.Invalidate(ctx, cache.Key(cache.ResourceSuppliers, companyID))
	return &dto.MessageResponse{Message: "proveedor eliminado"}, nil
}

func toSupplierResponse(s *entity.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{ID: s.ID, PaisID: s.CountryID, Nombre: s.Name, Email: s.Email}
}
