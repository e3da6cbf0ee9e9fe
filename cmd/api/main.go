package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AG-g1/more-house/internal/application/activity"
	"github.com/AG-g1/more-house/internal/application/cashflow"
	"github.com/AG-g1/more-house/internal/application/mondaysync"
	"github.com/AG-g1/more-house/internal/application/occupancy"
	"github.com/AG-g1/more-house/internal/infrastructure/monday"
	"github.com/AG-g1/more-house/internal/infrastructure/postgres"
	"github.com/AG-g1/more-house/internal/interfaces/http"
	"github.com/AG-g1/more-house/internal/monitoring"
	"github.com/AG-g1/more-house/pkg/config"
	"github.com/AG-g1/more-house/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	monitoring.InitMetrics()

	occupancyRepo := postgres.NewOccupancyRepository(pool)
	cashflowRepo := postgres.NewCashflowRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	mondayClient := monday.NewClient(cfg.Monday.APIToken)
	if !cfg.Monday.Configured() {
		log.Warn().Msg("MONDAY_API_TOKEN no configurado; la sincronización y la actividad responderán error")
	}

	occupancyUC := occupancy.NewUseCase(occupancyRepo, cfg.Building.TotalRooms)
	cashflowUC := cashflow.NewUseCase(cashflowRepo)
	syncUC := mondaysync.NewSyncUseCase(mondayClient, txRunner, cashflowRepo, cfg.Monday)
	activityUC := activity.NewUseCase(mondayClient, cfg.Monday)
	coordinator := mondaysync.NewCoordinator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(http.Metrics())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "More House API",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	http.Router(app, http.RouterDeps{
		OccupancyUC: occupancyUC,
		CashflowUC:  cashflowUC,
		SyncUC:      syncUC,
		Coordinator: coordinator,
		ActivityUC:  activityUC,
		Health:      pool,
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
}
