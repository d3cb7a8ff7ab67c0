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

// ProductUseCase casos de uso CRUD para productos. Cualquier miembro con rol puede modificarlos.
type ProductUseCase struct {
	repo      repository.ProductRepository
	suppliers repository.SupplierRepository
	cache     *cache.Policy
	log       zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, suppliers repository.SupplierRepository, policy *cache.Policy, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, suppliers: suppliers, cache: policy, log: log}
}

// List devuelve los productos de la empresa (lectura a través de caché).
func (uc *ProductUseCase) List(ctx context.Context, id entity.Identity) (*dto.ProductListResponse, error) {
	companyID, err := requireCompany(id)
	if err != nil {
		return nil, err
	}
	out, err := cache.Fetch(ctx, uc.cache, cache.ResourceProducts, cache.Key(cache.ResourceProducts, companyID),
		func(ctx context.Context) (dto.ProductListResponse, error) {
			list, err := uc.repo.ListByCompany(ctx, companyID)
			if err != nil {
				return dto.ProductListResponse{}, domain.Persistence("no se pudieron listar los productos", err)
			}
			items := make([]dto.ProductResponse, 0, len(list))
			for _, p := range list {
				items = append(items, toProductResponse(p))
			}
			return dto.ProductListResponse{Products: items, ProductsLength: len(items)}, nil
		})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Search devuelve el primer producto cuyo nombre contiene name.
func (uc *ProductUseCase) Search(ctx context.Context, id entity.Identity, q dto.SearchQuery) (*dto.ProductResponse, error) {
	companyID, err := requireCompany(id)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(q); err != nil {
		return nil, err
	}
	p, err := uc.repo.SearchByName(ctx, q.Name, companyID)
	if err != nil {
		return nil, domain.Persistence("no se pudo buscar el producto", err)
	}
	if p == nil {
		return nil, domain.NotFound("producto no encontrado")
	}
	out := toProductResponse(p)
	return &out, nil
}

// Create crea un producto. El proveedor debe pertenecer a la misma empresa.
func (uc *ProductUseCase) Create(ctx context.Context, id entity.Identity, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	companyID, err := requireRole(id)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := uc.checkSupplier(ctx, in.ProveedorID, companyID); err != nil {
		return nil, err
	}
	p := &entity.Product{
		CompanyID:    companyID,
		Name:         in.Nombre,
		Price:        *in.Precio,
		Model:        in.Modelo,
		SupplierID:   in.ProveedorID,
		Stock:        *in.Stock,
		Description:  in.Descripcion,
		SerialNumber: *in.NumeroSerie,
	}
	newID, err := uc.repo.Create(ctx, p)
	if err != nil {
		return nil, domain.Persistence("no se pudo crear el producto", err)
	}
	p.ID = newID
	uc.cache.Invalidate(ctx, cache.Key(cache.ResourceProducts, companyID))
	out := toProductResponse(p)
	return &out, nil
}

// Update aplica los campos presentes al producto id de la empresa.
func (uc *ProductUseCase) Update(ctx context.Context, id entity.Identity, productID int64, in dto.UpdateProductRequest) (*dto.MessageResponse, error) {
	companyID, err := requireRole(id)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.ProveedorID != nil {
		if err := uc.checkSupplier(ctx, *in.ProveedorID, companyID); err != nil {
			return nil, err
		}
	}
	rows, err := uc.repo.Update(ctx, productID, companyID, entity.ProductPatch{
		Name:         in.Nombre,
		Price:        in.Precio,
		Model:        in.Modelo,
		SupplierID:   in.ProveedorID,
		Stock:        in.Stock,
		Description:  in.Descripcion,
		SerialNumber: in.NumeroSerie,
	})
	if err != nil {
		return nil, domain.Persistence("no se pudo actualizar el producto", err)
	}
	if rows == 0 {
		return nil, domain.NotFound("producto no encontrado")
	}
	uc.cache.Invalidate(ctx, cache.Key(cache.ResourceProducts, companyID))
	return &dto.MessageResponse{Message: "producto actualizado"}, nil
}

// Delete elimina el producto id de la empresa.
func (uc *ProductUseCase) Delete(ctx context.Context, id entity.Identity, productID int64) (*dto.MessageResponse, error) {
	companyID, err := requireRole(id)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.Delete(ctx, productID, companyID)
	if err != nil {
		return nil, domain.Persistence("no se pudo eliminar el producto", err)
	}
	if rows == 0 {
		return nil, domain.NotFound("producto no encontrado")
	}
	uc.cache.Invalidate(ctx, cache.Key(cache.ResourceProducts, companyID))
	return &dto.MessageResponse{Message: "producto eliminado"}, nil
}

func (uc *ProductUseCase) checkSupplier(ctx context.Context, supplierID, companyID int64) error {
	s, err := uc.suppliers.GetByID(ctx, supplierID, companyID)
	if err != nil {
		return domain.Persistence("no se pudo verificar el proveedor", err)
	}
	if s == nil {
		return domain.Validation("entrada inválida", map[string]string{"proveedor_id": "el proveedor no existe en la empresa"})
	}
	return nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Nombre:      p.Name,
		Precio:      p.Price,
		Modelo:      p.Model,
		ProveedorID: p.SupplierID,
		Stock:       p.Stock,
		Descripcion: p.Description,
		NumeroSerie: p.SerialNumber,
	}
}
