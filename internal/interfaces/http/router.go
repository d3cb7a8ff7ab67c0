package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/empresas-api/internal/application/auth"
	"github.com/jhoicas/empresas-api/internal/application/company"
	"github.com/jhoicas/empresas-api/internal/application/usecase"
	"github.com/jhoicas/empresas-api/internal/domain/entity"
	"github.com/jhoicas/empresas-api/internal/infrastructure/monitoring"
)

// HealthCheck comprueba una dependencia; nil significa disponible.
type HealthCheck func(ctx context.Context) error

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CompanyUC  *company.UseCase
	ProductUC  *usecase.ProductUseCase
	SupplierUC *usecase.SupplierUseCase
	UserUC     *usecase.UserUseCase
	CountryUC  *usecase.CountryUseCase
	JWTSecret  string

	Log     zerolog.Logger
	Monitor monitoring.MonitorInterface
	Metrics http.Handler

	Service         string
	AllowedOrigins  []string
	LoginRateLimit  int
	LoginRateWindow time.Duration
	ForceHTTPS      bool
	// SwaggerFile ruta del documento OpenAPI; vacío desactiva /docs.
	SwaggerFile  string
	HealthChecks map[string]HealthCheck
}

// NewApp crea la aplicación Fiber con el manejador de errores de dominio.
func NewApp(name string, log zerolog.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log),
	})
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(RequestLogger(deps.Log, deps.Monitor))
	app.Use(HTTPSRedirect(deps.ForceHTTPS))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(deps.AllowedOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
	}))

	// Swagger UI: http://localhost:<port>/docs
	if deps.SwaggerFile != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: deps.SwaggerFile,
			Path:     "docs",
			Title:    "Empresas API",
		}))
	}

	app.Get("/health", healthHandler(deps.Service, deps.HealthChecks))
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Auth (público, con límite de intentos)
	authHandler := NewAuthHandler(deps.AuthUC)
	limit := LoginLimiter(deps.LoginRateLimit, deps.LoginRateWindow, deps.Log)
	api.Post("/register", limit, authHandler.Register)
	api.Post("/login", limit, authHandler.Login)

	// Países (público)
	countryHandler := NewCountryHandler(deps.CountryUC)
	api.Get("/countries", countryHandler.List)
	api.Get("/countries/:id", countryHandler.Get)

	authn := AuthMiddleware(deps.JWTSecret)
	ceo := RequireRole(entity.RoleCEO)
	managers := RequireRole(entity.RoleCEO, entity.RoleAdmin)

	// Empresa
	companies := api.Group("/companies", authn)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", RequireCompany(), companyHandler.Get)
	companies.Post("/create", companyHandler.Create)
	companies.Delete("/delete", RequireCompany(), ceo, companyHandler.Delete)
	companies.Patch("/update", RequireCompany(), ceo, companyHandler.Update)

	// Productos (cualquier rol de la empresa)
	products := api.Group("/products", authn, RequireCompany())
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Post("/", RequireAnyRole(), productHandler.Create)
	products.Patch("/update/:id", RequireAnyRole(), productHandler.Update)
	products.Delete("/delete/:id", RequireAnyRole(), productHandler.Delete)

	// Proveedores (mutaciones Admin/CEO)
	suppliers := api.Group("/suppliers", authn, RequireCompany())
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/search", supplierHandler.Search)
	suppliers.Post("/add", managers, supplierHandler.Create)
	suppliers.Patch("/update/:id", managers, supplierHandler.Update)
	suppliers.Delete("/delete/:id", managers, supplierHandler.Delete)

	// Miembros de la empresa
	users := api.Group("/company/users", authn, RequireCompany())
	userHandler := NewCompanyUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/search", userHandler.Search)
	users.Patch("/add/:id", managers, userHandler.Add)
	users.Patch("/delete/:id", ceo, userHandler.Remove)
	users.Patch("/update/:id", ceo, userHandler.ChangeRole)

	app.Use(NotFound)
}

func healthHandler(service string, checks map[string]HealthCheck) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deps := make(map[string]string, len(checks))
		status, code := "ok", fiber.StatusOK
		for name, check := range checks {
			if err := check(c.UserContext()); err != nil {
				deps[name] = "down"
				status, code = "degraded", fiber.StatusServiceUnavailable
				continue
			}
			deps[name] = "up"
		}
		return c.Status(code).JSON(fiber.Map{"status": status, "service": service, "dependencies": deps})
	}
}
