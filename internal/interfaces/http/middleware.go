package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/rs/zerolog"

	"github.com/jhoicas/empresas-api/internal/application/dto"
	"github.com/jhoicas/empresas-api/internal/infrastructure/monitoring"
)

// RequestLogger registra cada petición con zerolog y alimenta la métrica de latencia.
// No registra cabeceras (Authorization incluida).
func RequestLogger(log zerolog.Logger, monitor monitoring.MonitorInterface) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		latency := time.Since(start)
		status := c.Response().StatusCode()

		route := c.Route().Path
		if monitor != nil {
			_ = monitor.SetResponseTimeMetric(map[string]string{
				"method": c.Method(),
				"route":  route,
				"status": strconv.Itoa(status),
			}, latency.Seconds())
		}

		evt := log.Info()
		if status >= fiber.StatusInternalServerError {
			evt = log.Error()
		} else if status >= fiber.StatusBadRequest {
			evt = log.Warn()
		}
		evt.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.IP()).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Msg("request")
		return nil
	}
}

// HTTPSRedirect redirige a https cuando el proxy informa que la petición llegó por http.
func HTTPSRedirect(enabled bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !enabled || c.Protocol() == "https" || c.Get(fiber.HeaderXForwardedProto) == "https" {
			return c.Next()
		}
		return c.Redirect("https://"+c.Hostname()+c.OriginalURL(), fiber.StatusMovedPermanently)
	}
}

// LoginLimiter limita intentos por IP en login y registro. Superado el límite responde 429 y lo registra.
func LoginLimiter(max int, window time.Duration, log zerolog.Logger) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Warn().Str("ip", c.IP()).Str("path", c.Path()).Msg("límite de intentos superado")
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "TOO_MANY_REQUESTS",
				Message: "demasiados intentos, vuelva a intentarlo más tarde",
			})
		},
	})
}

// NotFound responde a cualquier ruta no registrada.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "endpoint no encontrado"})
}
