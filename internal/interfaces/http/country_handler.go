package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/empresas-api/internal/application/usecase"
)

// CountryHandler catálogo público de países.
type CountryHandler struct {
	uc *usecase.CountryUseCase
}

func NewCountryHandler(uc *usecase.CountryUseCase) *CountryHandler {
	return &CountryHandler{uc: uc}
}

// List godoc
// @Summary      Listar países
// @Tags         countries
// @Produce      json
// @Success      200  {array}  dto.CountryResponse
// @Router       /api/countries [get]
func (h *CountryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener país
// @Tags         countries
// @Produce      json
// @Param        id  path  int  true  "ID del país"
// @Success      200  {object}  dto.CountryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/countries/{id} [get]
func (h *CountryHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
