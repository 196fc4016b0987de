package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/zoo-api/internal/application/analytics"
	"github.com/jhoicas/zoo-api/internal/application/auth"
	"github.com/jhoicas/zoo-api/internal/application/inventory"
	"github.com/jhoicas/zoo-api/internal/application/purchasing"
	"github.com/jhoicas/zoo-api/internal/application/usecase"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
	"github.com/jhoicas/zoo-api/internal/infrastructure/memory"
	inframetrics "github.com/jhoicas/zoo-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/zoo-api/internal/infrastructure/pdf"
	"github.com/jhoicas/zoo-api/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/zoo-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/zoo-api/internal/interfaces/http"
	"github.com/jhoicas/zoo-api/pkg/config"
	"github.com/jhoicas/zoo-api/pkg/jwt"
	"github.com/jhoicas/zoo-api/pkg/logger"
)

// storage puertos de persistencia del backend elegido.
type storage struct {
	txRunner     inventory.TxRunner
	repos        inventory.Repos
	employees    repository.EmployeeRepository
	analytics    repository.AnalyticsRepository
	malfunctions repository.MalfunctionRepository
	ping         func(ctx context.Context) error
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	var metrics inventory.Metrics = inventory.NopMetrics{}
	var prom *inframetrics.Prometheus
	if cfg.Metrics.Enabled {
		prom = inframetrics.NewPrometheus(true)
		metrics = prom
	}

	signer, err := jwt.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.Expiration)*time.Minute)
	if err != nil {
		log.Fatal().Err(err).Msg("JWT_SECRET requerido")
	}
	authUC := auth.NewAuthUseCase(store.employees, signer)
	if cfg.Admin.Username != "" {
		created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
		if created {
			log.Info().Str("username", cfg.Admin.Username).Msg("administrador inicial creado")
		}
	}

	// PDF: hoja del pedido para el proveedor; XLSX: planillas de consumo y de averías.
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	exporter := infraxlsx.NewConsumptionExporter()

	deps := httpRouter.RouterDeps{
		AuthUC:        authUC,
		FeedUC:        usecase.NewFeedUseCase(store.repos.Feeds, store.repos.Movements),
		RationUC:      usecase.NewRationUseCase(store.repos.Rations, store.repos.Feeds),
		Replenishment: inventory.NewReplenishmentUseCase(store.repos.Feeds, store.analytics),
		AdjustStock:   inventory.NewAdjustStockUseCase(store.txRunner, metrics, log),
		Feeding:       inventory.NewFeedingUseCase(store.txRunner, store.repos.Feedings, metrics, log),
		Orders:        purchasing.NewOrderUseCase(store.txRunner, store.repos.Orders, log),
		Workflow:      purchasing.NewWorkflowUseCase(store.txRunner, metrics, log),
		OrderPDF:      purchasing.NewPDFUseCase(store.repos.Orders, store.employees, pdfGenerator),
		Purchases:     analytics.NewPurchasesUseCase(store.analytics),
		Consumption:   analytics.NewConsumptionUseCase(store.analytics, exporter),
		Malfunctions:  usecase.NewMalfunctionUseCase(store.malfunctions, log),
		Faults:        analytics.NewFaultsUseCase(store.analytics, store.malfunctions, infraxlsx.NewFaultsExporter()),
		Tokens:        signer,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Zoo API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := store.ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "storage": cfg.Storage.Driver, "error": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})
	if prom != nil {
		app.Get(cfg.Metrics.Path, adaptor.HTTPHandler(prom.Handler()))
	}

	httpRouter.Router(app, deps)

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
}

// openStorage abre el backend configurado. Con postgres aplica el esquema si DB_AUTO_MIGRATE.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		if cfg.Storage.SeedFile == "" {
			log.Warn().Msg("sin STORAGE_SEED_FILE: no hay animales cargados y POST /api/feedings responde 404")
		} else {
			seed, err := memory.LoadSeedFile(cfg.Storage.SeedFile)
			if err != nil {
				return nil, err
			}
			animals, err := s.ApplySeed(seed)
			if err != nil {
				return nil, fmt.Errorf("aplicar semilla: %w", err)
			}
			for _, a := range animals {
				log.Info().Str("animal_id", a.ID).Str("name", a.Name).Str("species", a.Species).Msg("animal cargado")
			}
			log.Info().Int("feeds", len(seed.Feeds)).Int("rations", len(seed.Rations)).Int("animals", len(animals)).Msg("semilla aplicada")
		}
		return &storage{
			txRunner:     s,
			repos:        s.Repos(),
			employees:    s.Employees(),
			analytics:    s.Analytics(),
			malfunctions: s.Malfunctions(),
			ping:         func(context.Context) error { return nil },
			close:        func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("esquema aplicado")
	}
	return &storage{
		txRunner:     postgres.NewTxRunner(pool, cfg.DB.LockTimeout),
		repos:        postgres.NewRepos(pool),
		employees:    postgres.NewEmployeeRepository(pool),
		analytics:    postgres.NewAnalyticsRepository(pool),
		malfunctions: postgres.NewMalfunctionRepository(pool),
		ping:         pool.Ping,
		close:        pool.Close,
	}, nil
}
