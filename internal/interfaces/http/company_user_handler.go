package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/empresas-api/internal/application/dto"
	"github.com/jhoicas/empresas-api/internal/application/usecase"
)

// CompanyUserHandler miembros de la empresa.
type CompanyUserHandler struct {
	uc *usecase.UserUseCase
}

func NewCompanyUserHandler(uc *usecase.UserUseCase) *CompanyUserHandler {
	return &CompanyUserHandler{uc: uc}
}

// List godoc
// @Summary      Listar miembros de la empresa
// @Tags         company-users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyUserListResponse
// @Router       /api/company/users [get]
func (h *CompanyUserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetIdentity(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar miembro por nombre
// @Tags         company-users
// @Security     Bearer
// @Produce      json
// @Param        name  query  string  true  "Parte de nombre y apellidos"
// @Success      200   {object}  dto.CompanyUserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/company/users/search [get]
func (h *CompanyUserHandler) Search(c *fiber.Ctx) error {
	q, err := searchQuery(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Search(c.UserContext(), GetIdentity(c), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Agregar usuario a la empresa
// @Description  El usuario entra como empleado; debe existir y no pertenecer a otra empresa.
// @Tags         company-users
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del usuario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company/users/add/{id} [patch]
func (h *CompanyUserHandler) Add(c *fiber.Ctx) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.Add(c.UserContext(), GetIdentity(c), userID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Quitar usuario de la empresa
// @Tags         company-users
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del usuario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company/users/delete/{id} [patch]
func (h *CompanyUserHandler) Remove(c *fiber.Ctx) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.Remove(c.UserContext(), GetIdentity(c), userID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ChangeRole godoc
// @Summary      Cambiar rol de un miembro
// @Tags         company-users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del usuario"
// @Param        body  body  dto.ChangeRoleRequest  true  "Nuevo rol"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/company/users/update/{id} [patch]
func (h *CompanyUserHandler) ChangeRole(c *fiber.Ctx) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in dto.ChangeRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	out, err := h.uc.ChangeRole(c.UserContext(), GetIdentity(c), userID, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
