package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/empresas-api/internal/application/auth"
	"github.com/jhoicas/empresas-api/internal/application/cache"
	"github.com/jhoicas/empresas-api/internal/application/company"
	"github.com/jhoicas/empresas-api/internal/application/usecase"
	"github.com/jhoicas/empresas-api/internal/infrastructure/monitoring"
	"github.com/jhoicas/empresas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/empresas-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/empresas-api/internal/interfaces/http"
)

var swaggerFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Levanta el servidor HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&swaggerFile, "swagger", "./docs/swagger.json", "documento OpenAPI servido en /docs (vacío lo desactiva)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	monitor := monitoring.NewMonitor(cfg.App.Name)

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		_ = monitor.SetDependencyAvailability(map[string]string{"dependency": "postgres"}, 0)
		log.Error().Err(err).Msg("conexión a PostgreSQL")
		return err
	}
	defer pool.Close()
	_ = monitor.SetDependencyAvailability(map[string]string{"dependency": "postgres"}, 1)

	// Sin Redis la API sigue funcionando, leyendo siempre del almacén.
	var store cache.Store = cache.NopStore{}
	checks := map[string]httpRouter.HealthCheck{"postgres": pool.Ping}
	redisClient, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		_ = monitor.SetDependencyAvailability(map[string]string{"dependency": "redis"}, 0)
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr()).Msg("redis no disponible, caché desactivada")
	} else {
		defer redisClient.Close()
		_ = monitor.SetDependencyAvailability(map[string]string{"dependency": "redis"}, 1)
		store = redis.NewStore(redisClient)
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	policy := cache.NewPolicy(store, cfg.Cache.TTL, log.Component("cache")).WithObserver(monitor)

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	countryRepo := postgres.NewCountryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	tokens := auth.NewTokenIssuer(auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	authUC := auth.NewAuthUseCase(userRepo, tokens, log.Component("auth"))
	companyUC := company.NewUseCase(companyRepo, txRunner, tokens, policy, log.Component("company"))
	productUC := usecase.NewProductUseCase(productRepo, supplierRepo, policy, log.Component("products"))
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, policy, log.Component("suppliers"))
	userUC := usecase.NewUserUseCase(userRepo, policy, log.Component("company_users"))
	countryUC := usecase.NewCountryUseCase(countryRepo)

	if swaggerFile != "" {
		if _, err := os.Stat(swaggerFile); err != nil {
			log.Warn().Str("file", swaggerFile).Msg("documento OpenAPI no encontrado, /docs desactivado")
			swaggerFile = ""
		}
	}

	httpLog := log.Component("http")
	app := httpRouter.NewApp(cfg.App.Name, httpLog)
	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		CompanyUC:       companyUC,
		ProductUC:       productUC,
		SupplierUC:      supplierUC,
		UserUC:          userUC,
		CountryUC:       countryUC,
		JWTSecret:       cfg.JWT.Secret,
		Log:             httpLog,
		Monitor:         monitor,
		Metrics:         monitor.Handler(),
		Service:         cfg.App.Name,
		AllowedOrigins:  cfg.HTTP.AllowedOrigins,
		LoginRateLimit:  cfg.HTTP.LoginRateLimit,
		LoginRateWindow: cfg.HTTP.LoginRateWindow,
		ForceHTTPS:      cfg.HTTP.ForceHTTPS,
		SwaggerFile:     swaggerFile,
		HealthChecks:    checks,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}
