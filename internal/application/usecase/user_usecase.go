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

// UserUseCase gestiona los miembros de una empresa. Empresa y rol se asignan y limpian juntos.
type UserUseCase struct {
	repo  repository.UserRepository
	cache *cache.Policy
	log   zerolog.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, policy *cache.Policy, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, cache: policy, log: log}
}

// List devuelve los miembros de la empresa con su rol y permisos (lectura a través de caché).
func (uc *UserUseCase) List(ctx context.Context, id entity.Identity) (*dto.CompanyUserListResponse, error) {
	companyID, err := requireCompany(id)
	if err != nil {
		return nil, err
	}
	out, err := cache.Fetch(ctx, uc.cache, cache.ResourceUsers, cache.Key(cache.ResourceUsers, companyID),
		func(ctx context.Context) (dto.CompanyUserListResponse, error) {
			list, err := uc.repo.ListByCompany(ctx, companyID)
			if err != nil {
				return dto.CompanyUserListResponse{}, domain.Persistence("no se pudieron listar los usuarios", err)
			}
			items := make([]dto.CompanyUserResponse, 0, len(list))
			for _, m := range list {
				items = append(items, toCompanyUserResponse(m))
			}
			return dto.CompanyUserListResponse{Users: items, UsersLength: len(items)}, nil
		})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Search devuelve el primer miembro cuyo "nombre apellidos" contiene name.
func (uc *UserUseCase) Search(ctx context.Context, id entity.Identity, q dto.SearchQuery) (*dto.CompanyUserResponse, error) {
	companyID, err := requireCompany(id)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(q); err != nil {
		return nil, err
	}
	m, err := uc.repo.SearchByName(ctx, q.Name, companyID)
	if err != nil {
		return nil, domain.Persistence("no se pudo buscar el usuario", err)
	}
	if m == nil {
		return nil, domain.NotFound("usuario no encontrado")
	}
	out := toCompanyUserResponse(m)
	return &out, nil
}

// Add incorpora a la empresa un usuario sin empresa, con rol Employee.
func (uc *UserUseCase) Add(ctx context.Context, id entity.Identity, userID int64) (*dto.MessageResponse, error) {
	companyID, err := requireRole(id, entity.RoleCEO, entity.RoleAdmin)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.AssignMembership(ctx, userID, companyID, entity.RoleEmployee)
	if err != nil {
		return nil, domain.Persistence("no se pudo agregar el usuario", err)
	}
	if rows == 0 {
		return nil, domain.NotFound("usuario no encontrado o ya pertenece a una empresa")
	}
	uc.invalidate(ctx, companyID)
	return &dto.MessageResponse{Message: "usuario agregado a la empresa"}, nil
}

// Remove saca a un miembro de la empresa (solo CEO, no a sí mismo).
func (uc *UserUseCase) Remove(ctx context.Context, id entity.Identity, userID int64) (*dto.MessageResponse, error) {
	companyID, err := requireRole(id, entity.RoleCEO)
	if err != nil {
		return nil, err
	}
	if userID == id.UserID {
		return nil, domain.Validation("entrada inválida", map[string]string{"usuario_id": "el CEO no puede quitarse a sí mismo"})
	}
	rows, err := uc.repo.RemoveMembership(ctx, userID, companyID)
	if err != nil {
		return nil, domain.Persistence("no se pudo quitar el usuario", err)
	}
	if rows == 0 {
		return nil, domain.NotFound("usuario no encontrado en la empresa")
	}
	uc.invalidate(ctx, companyID)
	return &dto.MessageResponse{Message: "usuario quitado de la empresa"}, nil
}

// ChangeRole asigna otro rol del catálogo a un miembro (solo CEO, no a sí mismo).
func (uc *UserUseCase) ChangeRole(ctx context.Context, id entity.Identity, userID int64, in dto.ChangeRoleRequest) (*dto.MessageResponse, error) {
	companyID, err := requireRole(id, entity.RoleCEO)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if !entity.IsKnownRole(in.RolID) {
		return nil, domain.Validation("entrada inválida", map[string]string{"rol_id": "rol inexistente"})
	}
	if userID == id.UserID {
		return nil, domain.Validation("entrada inválida", map[string]string{"usuario_id": "el CEO no puede cambiar su propio rol"})
	}
	rows, err := uc.repo.ChangeRole(ctx, userID, companyID, in.RolID)
	if err != nil {
		return nil, domain.Persistence("no se pudo cambiar el rol", err)
	}
	if rows == 0 {
		return nil, domain.NotFound("usuario no encontrado en la empresa")
	}
	uc.invalidate(ctx, companyID)
	return &dto.MessageResponse{Message: "rol actualizado"}, nil
}

func (uc *UserUseCase) invalidate(ctx context.Context, companyID int64) {
	uc.cache.Invalidate(ctx, cache.Key(cache.ResourceUsers, companyID))
}

func toCompanyUserResponse(m *entity.CompanyMember) dto.CompanyUserResponse {
	perms := m.Permissions
	if perms == nil {
		perms = []string{}
	}
	return dto.CompanyUserResponse{
		ID:        m.ID,
		Nombre:    m.FirstName,
		Apellidos: m.LastName,
		Email:     m.Email,
		RolID:     m.RoleID,
		Rol:       m.Role,
		Permisos:  perms,
	}
}
