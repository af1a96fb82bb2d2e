package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/pos-inventory/internal/application/inventory"
	"github.com/jhoicas/pos-inventory/internal/application/sales"
	"github.com/jhoicas/pos-inventory/internal/application/usecase"
	"github.com/jhoicas/pos-inventory/internal/infrastructure/cache"
	"github.com/jhoicas/pos-inventory/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/pos-inventory/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/pos-inventory/internal/interfaces/http"
	"github.com/jhoicas/pos-inventory/pkg/config"
	"github.com/jhoicas/pos-inventory/pkg/logger"
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
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.close()

	var recorder inventory.Recorder = inventory.NopRecorder{}
	var metricsRecorder *metrics.Recorder
	if cfg.Metrics.Enabled {
		metricsRecorder = metrics.NewRecorder()
		recorder = metricsRecorder
	}

	zl := log.Zerolog()
	monitor := inventory.NewAlertMonitor(store.inventory, store.alerts, recorder, zl)

	// Sin evaluación síncrona las alertas quedan a cargo del barrido programado.
	var evaluator inventory.AlertEvaluator
	if cfg.Alerts.EvaluateOnMove {
		evaluator = monitor
	}
	movementUC := inventory.NewMovementUseCase(store.tx, store.products, evaluator, recorder, zl, cfg.Ledger.MaxRetries)
	queryUC := inventory.NewQueryUseCase(store.inventory, store.movements, store.alerts, infrapdf.NewMarotoReportGenerator())
	salesUC := sales.NewUseCase(store.saleTx, movementUC, store.products, store.sales, zl, cfg.Ledger.MaxRetries)
	productUC := usecase.NewProductUseCase(store.products, movementUC)
	replenishmentUC := inventory.NewReplenishmentUseCase(store.inventory, store.movements)

	if store.seedDemo != nil {
		n, err := store.seedDemo(ctx, movementUC)
		if err != nil {
			log.Error().Err(err).Msg("catálogo demo")
		} else {
			log.Info().Int("productos", n).Str("tenant_id", cfg.App.DemoTenantID).Msg("catálogo demo cargado")
		}
	}

	// Barrido de alertas: con Redis una sola instancia barre por intervalo.
	var locker inventory.SweepLocker = cache.NewInMemorySweepLock()
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		hostname, _ := os.Hostname()
		locker = cache.NewRedisSweepLock(client, hostname)
	}
	sweeper := inventory.NewAlertSweeper(monitor, store.inventory, locker, cfg.Alerts.SweepInterval, zl)
	go sweeper.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(zl))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if metricsRecorder != nil {
		app.Get(cfg.Metrics.Path, metricsRecorder.Handler())
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Movements:     movementUC,
		Queries:       queryUC,
		Replenishment: replenishmentUC,
		Alerts:        monitor,
		Sales:         salesUC,
		Products:      productUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
