package main

import (
	"context"
	"fmt"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-hojas/internal/application/auth"
	"github.com/jhoicas/inventario-hojas/internal/application/inventory"
	"github.com/jhoicas/inventario-hojas/internal/application/ports"
	"github.com/jhoicas/inventario-hojas/internal/application/usecase"
	"github.com/jhoicas/inventario-hojas/internal/domain/repository"
	infraai "github.com/jhoicas/inventario-hojas/internal/infrastructure/ai"
	"github.com/jhoicas/inventario-hojas/internal/infrastructure/events"
	"github.com/jhoicas/inventario-hojas/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/inventario-hojas/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-hojas/internal/infrastructure/postgres"
	inforedis "github.com/jhoicas/inventario-hojas/internal/infrastructure/redis"
	"github.com/jhoicas/inventario-hojas/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/inventario-hojas/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/inventario-hojas/internal/interfaces/http"
	"github.com/jhoicas/inventario-hojas/pkg/config"
	"github.com/jhoicas/inventario-hojas/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("almacén de estado")
	}

	// El hub necesita el Workbook para el resumen inicial y el Workbook notifica al hub.
	var wb *inventory.Workbook
	hub := httpRouter.NewStockHub(func() ports.StockChange { return wb.StockSnapshot() }, log.Component("ws"))

	notifiers := ports.Notifiers{hub}
	var rabbit *events.Rabbit
	if cfg.Events.AMQPURL != "" {
		rabbit, err = events.NewRabbit(cfg.Events.AMQPURL, cfg.Events.Exchange, log.Component("events"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		notifiers = append(notifiers, rabbit)
	}

	wb, err = inventory.NewWorkbook(store,
		inventory.WithLogger(log.Component("workbook")),
		inventory.WithNotifier(notifiers),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar inventario")
	}
	if err := wb.Load(ctx, cfg.App.SeedDemoData); err != nil {
		log.Fatal().Err(err).Msg("cargar estado")
	}

	llm, model, err := infraai.NewProvider(cfg.AI.Provider, cfg.AI.APIKey, cfg.AI.Model)
	if err != nil {
		log.Fatal().Err(err).Msg("proveedor de IA")
	}
	if cfg.AI.APIKey == "" {
		log.Warn().Str("provider", cfg.AI.Provider).Msg("sin API key: el análisis de IA fallará")
	}
	advisoryUC := usecase.NewAdvisoryUseCase(wb, llm, usecase.AdvisoryConfig{
		Model:   model,
		Timeout: cfg.AI.Timeout,
		Logger:  log.Component("advisory"),
	})
	queryUC := usecase.NewQueryUseCase(wb)
	reportUC := usecase.NewReportUseCase(wb, advisoryUC,
		infrapdf.NewMarotoStockReport(), spreadsheet.NewSpreadsheetML(), cfg.App.Name)

	var authUC *auth.AuthUseCase
	if cfg.JWT.Enabled() {
		authUC = auth.NewAuthUseCase(auth.JWTConfig{
			Secret:       cfg.JWT.Secret,
			ExpMinutes:   cfg.JWT.Expiration,
			Issuer:       cfg.JWT.Issuer,
			PasswordHash: cfg.JWT.PasswordHash,
		})
	} else {
		log.Warn().Msg("JWT_SECRET vacío: la API no exige autenticación")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.AI.Timeout + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Inventario Hojas API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Executor:   wb,
		QueryUC:    queryUC,
		ReportUC:   reportUC,
		AdvisoryUC: advisoryUC,
		Hub:        hub,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
		JWTIssuer:  cfg.JWT.Issuer,
		Logger:     log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.App.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http": func(ctx context.Context) error {
				log.Info().Msg("señal de apagado recibida, cerrando servidor...")
				hub.Close()
				return app.ShutdownWithContext(ctx)
			},
			"events": func(context.Context) error {
				if rabbit == nil {
					return nil
				}
				return rabbit.Close()
			},
			"store": func(context.Context) error {
				return closeStore()
			},
		},
	)

	exitCode := <-wait
	log.Info().Int("exit_code", exitCode).Msg("aplicación detenida")
	os.Exit(exitCode)
}

// openStore abre el almacén clave-valor elegido en STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config) (repository.StateStore, func() error, error) {
	switch cfg.Store.Driver {
	case config.StoreSQLite:
		s, err := sqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		s, err := postgres.NewStateStoreFromPool(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return s, func() error { pool.Close(); return nil }, nil
	case config.StoreRedis:
		s, err := inforedis.NewStateStore(ctx, &redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Redis.Prefix)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.StoreMemory:
		return memory.NewStateStore(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("STORE_DRIVER desconocido %q", cfg.Store.Driver)
	}
}
