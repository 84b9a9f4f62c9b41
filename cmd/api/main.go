package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-status/internal/api/http"
	"github.com/spec-kit/ticket-status/internal/api/http/handlers"
	"github.com/spec-kit/ticket-status/internal/config"
	"github.com/spec-kit/ticket-status/internal/domain"
	"github.com/spec-kit/ticket-status/internal/events"
	"github.com/spec-kit/ticket-status/internal/observability"
	"github.com/spec-kit/ticket-status/internal/persistence"
	"github.com/spec-kit/ticket-status/internal/repository"
	"github.com/spec-kit/ticket-status/internal/service"
	"github.com/spec-kit/ticket-status/internal/transitionlog"
	"github.com/spec-kit/ticket-status/internal/worker"
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

	metrics := observability.NewMetrics()
	backends := transitionlog.Backends{}
	readiness := map[string]handlers.Pinger{}

	if cfg.Transition.HasSink(config.SinkPostgres) {
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()

		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		backends.Postgres = pg
		readiness["postgres"] = pg
	}

	if cfg.Transition.HasSink(config.SinkRedis) {
		redis := persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()
		backends.Redis = redis
		readiness["redis"] = redis
	}

	if cfg.Transition.HasSink(config.SinkFile) {
		readiness["transition_log"] = transitionlog.NewFileSink(cfg.Transition.LogPath)
	}

	sink, err := transitionlog.BuildSink(cfg.Transition, backends)
	if err != nil {
		logger.Fatal("failed to build transition sink", zap.Error(err))
	}
	labels, err := domain.LabelsFor(cfg.Transition.Labels)
	if err != nil {
		logger.Fatal("invalid status labels", zap.Error(err))
	}
	transitions := transitionlog.New(sink,
		transitionlog.WithLabels(labels),
		transitionlog.WithZap(logger.Named("transitions")),
		transitionlog.WithMetrics(metrics),
	)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(dispatcher, logger)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:    repository.NewTicketRepository(),
		TransitionLog: transitions,
		Dispatcher:    dispatcher,
		StrictOrder:   cfg.Transition.StrictOrder,
		Logger:        logger,
	})

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, readiness, metrics),
		Tickets: handlers.NewTicketsHandler(ticketService),
	})

	logger.Info("starting",
		zap.String("addr", cfg.App.Addr()),
		zap.Strings("transition_sinks", cfg.Transition.Sinks),
		zap.Bool("strict_order", cfg.Transition.StrictOrder))

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
