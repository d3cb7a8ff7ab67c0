package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/empresas-api/internal/application/dto"
	"github.com/jhoicas/empresas-api/internal/domain/entity"
	"github.com/jhoicas/empresas-api/pkg/jwt"
)

// LocalIdentity clave de c.Locals donde queda la identidad verificada.
const LocalIdentity = "identity"

// AuthMiddleware valida el Bearer Token JWT y deja la identidad en c.Locals.
// Token ausente o inválido responden 401; el mensaje es el del verificador.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: err.Error()})
		}
		p := claims.Payload()
		c.Locals(LocalIdentity, entity.Identity{UserID: p.UserID, Username: p.Username, CompanyID: p.CompanyID, RoleID: p.RoleID})
		return c.Next()
	}
}

// GetIdentity devuelve la identidad del contexto (después del middleware de auth).
func GetIdentity(c *fiber.Ctx) entity.Identity {
	id, _ := c.Locals(LocalIdentity).(entity.Identity)
	return id
}

// RequireCompany exige que el usuario pertenezca a una empresa. Usar DESPUÉS de AuthMiddleware.
func RequireCompany() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !GetIdentity(c).HasCompany() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_COMPANY", Message: "el usuario no pertenece a una empresa"})
		}
		return c.Next()
	}
}

// RequireRole exige que el rol del token esté entre roles.
func RequireRole(roles ...int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := GetIdentity(c)
		if !id.HasRole() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el usuario no tiene rol en la empresa"})
		}
		if !id.HasAnyRole(roles...) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_PERMISSION", Message: "permiso insuficiente para esta acción"})
		}
		return c.Next()
	}
}

// RequireAnyRole exige que el usuario tenga algún rol.
func RequireAnyRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !GetIdentity(c).HasRole() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el usuario no tiene rol en la empresa"})
		}
		return c.Next()
	}
}
