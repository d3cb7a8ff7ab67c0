package company

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/empresas-api/internal/application/cache"
	"github.com/jhoicas/empresas-api/internal/application/dto"
	"github.com/jhoicas/empresas-api/internal/application/validation"
	"github.com/jhoicas/empresas-api/internal/domain"
	"github.com/jhoicas/empresas-api/internal/domain/entity"
	"github.com/jhoicas/empresas-api/internal/domain/repository"
)

// Pasos del borrado de empresa, en el orden en que se ejecutan.
const (
	StepClearMembers    = "limpiar miembros"
	StepDeleteProducts  = "eliminar productos"
	StepDeleteSuppliers = "eliminar proveedores"
	StepDeleteCompany   = "eliminar empresa"
)

// UseCase gestiona el ciclo de vida de una empresa: alta, baja y modificación.
// Alta y baja cambian la membresía del solicitante, por eso devuelven un token nuevo.
type UseCase struct {
	repo   repository.CompanyRepository
	tx     TxRunner
	tokens TokenIssuer
	cache  *cache.Policy
	log    zerolog.Logger
	now    func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.CompanyRepository, tx TxRunner, tokens TokenIssuer, policy *cache.Policy, log zerolog.Logger) *UseCase {
	return &UseCase{repo: repo, tx: tx, tokens: tokens, cache: policy, log: log, now: time.Now}
}

// Create crea la empresa y convierte al solicitante en su CEO dentro de una transacción.
// La comprobación previa de unicidad es un atajo: la fuente de verdad son las restricciones UNIQUE.
func (uc *UseCase) Create(ctx context.Context, id entity.Identity, in dto.CreateCompanyRequest) (*dto.CompanyCreatedResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if id.HasCompany() {
		return nil, domain.AlreadyExists("el usuario ya pertenece a una empresa")
	}

	existing, err := uc.repo.FindConflicting(ctx, in.Nombre, in.Email, in.Telefono)
	if err != nil {
		return nil, domain.Persistence("no se pudo verificar la empresa", err)
	}
	if existing != nil {
		return nil, domain.AlreadyExists("ya existe una empresa con ese nombre, email o teléfono")
	}

	creator := id.UserID
	var companyID int64
	err = uc.tx.Run(ctx, func(repos repository.Repositories) error {
		newID, err := repos.Companies.Create(ctx, &entity.Company{
			Name:      in.Nombre,
			Email:     in.Email,
			Phone:     in.Telefono,
			CreatedAt: uc.now(),
			CreatorID: &creator,
		})
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				return domain.AlreadyExists("ya existe una empresa con ese nombre, email o teléfono")
			}
			return domain.Persistence("no se pudo crear la empresa", err)
		}
		rows, err := repos.Users.AssignMembership(ctx, creator, newID, entity.RoleCEO)
		if err != nil {
			return domain.Persistence("no se pudo asignar el rol CEO", err)
		}
		if rows == 0 {
			return domain.AlreadyExists("el usuario ya pertenece a una empresa")
		}
		companyID = newID
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Int64("user_id", creator).Msg("creación de empresa revertida")
		return nil, domain.Persistence("no se pudo crear la empresa", err)
	}

	role := entity.RoleCEO
	token, err := uc.tokens.Issue(id.WithMembership(&companyID, &role))
	if err != nil {
		return nil, domain.Persistence("no se pudo emitir el token", err)
	}
	uc.cache.Invalidate(ctx, cache.Key(cache.ResourceUsers, companyID))

	uc.log.Info().Int64("company_id", companyID).Int64("user_id", creator).Msg("empresa creada")
	return &dto.CompanyCreatedResponse{Message: "empresa creada", CompanyID: companyID, Token: token}, nil
}

// Delete elimina la empresa del solicitante (solo CEO) en pasos ordenados dentro de una transacción:
// limpiar miembros, eliminar productos, eliminar proveedores y por último la fila de la empresa.
func (uc *UseCase) Delete(ctx context.Context, id entity.Identity) (*dto.TokenResponse, error) {
	if err := requireCEO(id); err != nil {
		return nil, err
	}
	companyID := id.Company()

	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Users.ClearCompany(ctx, companyID); err != nil {
			return stepError(StepClearMembers, err)
		}
		if _, err := repos.Products.DeleteByCompany(ctx, companyID); err != nil {
			return stepError(StepDeleteProducts, err)
		}
		if _, err := repos.Suppliers.DeleteByCompany(ctx, companyID); err != nil {
			return stepError(StepDeleteSuppliers, err)
		}
		rows, err := repos.Companies.Delete(ctx, companyID)
		if err != nil {
			return stepError(StepDeleteCompany, err)
		}
		if rows == 0 {
			return domain.NotFound("empresa no encontrada")
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Int64("company_id", companyID).Msg("eliminación de empresa revertida")
		return nil, domain.Persistence("no se pudo eliminar la empresa", err)
	}

	uc.cache.Invalidate(ctx, cache.CompanyKeys(companyID)...)

	token, err := uc.tokens.Issue(id.WithMembership(nil, nil))
	if err != nil {
		return nil, domain.Persistence("no se pudo emitir el token", err)
	}
	uc.log.Info().Int64("company_id", companyID).Int64("user_id", id.UserID).Msg("empresa eliminada")
	return &dto.TokenResponse{Message: "empresa eliminada", Token: token}, nil
}

// Update modifica los campos presentes de la empresa del solicitante (solo CEO).
func (uc *UseCase) Update(ctx context.Context, id entity.Identity, in dto.UpdateCompanyRequest) (*dto.MessageResponse, error) {
	if err := requireCEO(id); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	rows, err := uc.repo.Update(ctx, id.Company(), entity.CompanyPatch{Name: in.Nombre, Email: in.Email, Phone: in.Telefono})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.AlreadyExists("ya existe una empresa con ese nombre, email o teléfono")
		}
		return nil, domain.Persistence("no se pudo actualizar la empresa", err)
	}
	if rows == 0 {
		return nil, domain.NotFound("empresa no encontrada")
	}
	return &dto.MessageResponse{Message: "empresa actualizada"}, nil
}

// Get devuelve la empresa del solicitante.
func (uc *UseCase) Get(ctx context.Context, id entity.Identity) (*dto.CompanyResponse, error) {
	if !id.HasCompany() {
		return nil, domain.Unauthorized("NO_COMPANY", "el usuario no pertenece a una empresa")
	}
	c, err := uc.repo.GetByID(ctx, id.Company())
	if err != nil {
		return nil, domain.Persistence("no se pudo obtener la empresa", err)
	}
	if c == nil {
		return nil, domain.NotFound("empresa no encontrada")
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Nombre:    c.Name,
		Email:     c.Email,
		Telefono:  c.Phone,
		Fecha:     c.CreatedAt,
		CreadorID: c.CreatorID,
	}, nil
}

func requireCEO(id entity.Identity) error {
	if !id.HasCompany() {
		return domain.Unauthorized("NO_COMPANY", "el usuario no pertenece a una empresa")
	}
	if !id.HasAnyRole(entity.RoleCEO) {
		return domain.Unauthorized("INSUFFICIENT_PERMISSION", "solo el CEO puede realizar esta acción")
	}
	return nil
}

func stepError(step string, err error) error {
	return domain.Persistence(fmt.Sprintf("paso %q fallido", step), err)
}
