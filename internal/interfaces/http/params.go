package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/empresas-api/internal/application/dto"
)

// pathID lee un id positivo de la ruta.
func pathID(c *fiber.Ctx, name string) (int64, error) {
	v, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || v <= 0 {
		return 0, errInvalidID(name)
	}
	return v, nil
}

func searchQuery(c *fiber.Ctx) (dto.SearchQuery, error) {
	var q dto.SearchQuery
	if err := c.QueryParser(&q); err != nil {
		return q, errInvalidBody
	}
	return q, nil
}
