package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/empresas-api/internal/application/dto"
	"github.com/jhoicas/empresas-api/internal/domain"
)

// StatusFor devuelve el código HTTP fijo de cada Kind.
func StatusFor(k domain.Kind) int {
	switch k {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindUnauthorized, domain.KindLogin:
		return fiber.StatusUnauthorized
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindAlreadyExists:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler traduce cualquier error devuelto por un handler a dto.ErrorResponse.
// Los errores de persistencia se registran y no exponen el detalle del almacén.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var de *domain.Error
		if errors.As(err, &de) {
			status := StatusFor(de.Kind)
			if status >= fiber.StatusInternalServerError {
				log.Error().Err(err).Str("path", c.Path()).Msg("error de persistencia")
			}
			return c.Status(status).JSON(dto.ErrorResponse{Code: de.Code, Message: de.Message, Fields: de.Fields})
		}
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: codeForStatus(fe.Code), Message: fe.Message})
		}
		log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "INVALID_BODY"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	default:
		return "INTERNAL"
	}
}

var errInvalidBody = &domain.Error{Kind: domain.KindValidation, Code: "INVALID_BODY", Message: "cuerpo inválido"}

func errInvalidID(param string) error {
	return domain.Validation("entrada inválida", map[string]string{param: "debe ser un entero positivo"})
}
