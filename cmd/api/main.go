package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/shift-scheduler/internal/api/http"
	"github.com/spec-kit/shift-scheduler/internal/api/http/handlers"
	"github.com/spec-kit/shift-scheduler/internal/auth"
	"github.com/spec-kit/shift-scheduler/internal/config"
	"github.com/spec-kit/shift-scheduler/internal/events"
	"github.com/spec-kit/shift-scheduler/internal/observability"
	"github.com/spec-kit/shift-scheduler/internal/persistence"
	"github.com/spec-kit/shift-scheduler/internal/realtime"
	"github.com/spec-kit/shift-scheduler/internal/repository"
	"github.com/spec-kit/shift-scheduler/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		staffRepo    repository.StaffRepository
		scheduleRepo repository.ScheduleRepository
		storePinger  handlers.DependencyPinger
	)

	switch cfg.Store.Backend {
	case config.BackendPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Store, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()
		if err := persistence.BootstrapPostgres(ctx, pg.Pool, logger); err != nil {
			logger.Fatal("failed to bootstrap schema", zap.Error(err))
		}
		staffRepo = repository.NewStaffPostgres(pg.Pool)
		scheduleRepo = repository.NewSchedulePostgres(pg.Pool)
		storePinger = pg
	default:
		db, err := persistence.NewSQLite(cfg.Store.SQLitePath)
		if err != nil {
			logger.Fatal("failed to open sqlite", zap.Error(err))
		}
		defer db.Close()
		if err := persistence.BootstrapSQLite(ctx, db, logger); err != nil {
			logger.Fatal("failed to bootstrap schema", zap.Error(err))
		}
		staffRepo = repository.NewStaffSQLite(db)
		scheduleRepo = repository.NewScheduleSQLite(db)
		storePinger = persistence.SQLitePinger{DB: db}
		logger.Info("using embedded sqlite store", zap.String("path", cfg.Store.SQLitePath))
	}

	dispatcher := events.NewInMemoryDispatcher()
	hub := realtime.NewHub(logger)
	dispatcher.SubscribeAll(hub.HandleEvent)

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()
	bridge := events.NewRedisBridge(redis.Client, cfg.Redis.Channel, uuid.NewString(), hub.HandleEvent, logger)
	dispatcher.SubscribeAll(bridge.HandleLocal)
	go bridge.Run(ctx)

	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notify)
	notifications.RegisterHandlers()

	authService := service.NewAuthService(cfg.Auth, staffRepo, dispatcher)
	scheduleService := service.NewScheduleService(scheduleRepo, dispatcher)
	staffService := service.NewStaffService(staffRepo, dispatcher, cfg.Auth.BcryptCost)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, storePinger, redis),
		Auth:           handlers.NewAuthHandler(authService, cfg.External),
		Schedules:      handlers.NewSchedulesHandler(scheduleService),
		Staff:          handlers.NewStaffHandler(staffService),
		Events:         handlers.NewEventsHandler(hub),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	cancel()

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
