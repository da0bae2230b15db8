package application

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"dealflow/internal/config"
	"dealflow/internal/infrastructure/billing"
	"dealflow/internal/infrastructure/persistence"
	"dealflow/internal/infrastructure/queue"
	"dealflow/internal/server"
	"dealflow/internal/transport/bot"
	"dealflow/internal/transport/bot/handler"
	"dealflow/internal/worker"
	"dealflow/pkg/application/connectors"
	"dealflow/pkg/application/modules"
)

const httpReadHeaderTimeout = 5 * time.Second

// Serve runs the API, the notification workers and the optional billing
// consumer and admin bot until ctx is cancelled.
func Serve(ctx context.Context, cfg config.Config) error {
	deps, err := newDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close(context.WithoutCancel(ctx))

	g, ctx := errgroup.WithContext(ctx)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Probe.ListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.Metrics.ListenAddress,
	}.Run(ctx, g)

	srv := server.NewServer(
		server.NewDealServer(deps.deals, deps.hub),
		server.NewBuyerServer(deps.buyers),
		server.NewAdminServer(deps.gate),
	)

	modules.HTTPServer{
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}.Run(ctx, g, &http.Server{
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           server.NewRouter(srv, cfg.HTTP.CORSOrigins),
		ReadHeaderTimeout: httpReadHeaderTimeout,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	})

	asynqLogger, asynqLevel := newAsynqLogger(cfg.App)
	defer func() { _ = asynqLogger.Sync() }()

	modules.AsynqServer{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DB,
		Concurrency:   cfg.Sweep.NotifyConcurrency,
		Logger:        asynqLogger,
		LogLevel:      asynqLevel,
	}.Run(ctx, g,
		modules.AsynqQueues{queue.QueueNotifications: 1},
		modules.AsynqHandler{
			Pattern: queue.TypeNotifyDeal,
			Handle:  worker.NewNotifyDealHandler(deps.gate).Handle,
		},
	)

	if cfg.Sweep.Enabled {
		if err := deps.sweeper.Start(ctx); err != nil {
			return fmt.Errorf("sweeper.Start: %w", err)
		}
	}
	defer deps.sweeper.Stop()

	if cfg.Kafka.Enabled() {
		consumer, err := billing.NewConsumer(billing.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		}, deps.buyers)
		if err != nil {
			return fmt.Errorf("billing.NewConsumer: %w", err)
		}

		g.Go(func() error { return consumer.Run(ctx) })
	}

	if deps.bot != nil && cfg.Bot.AdminID != 0 {
		adminBot := bot.New(deps.bot, cfg.Bot.AdminID, handler.New(deps.sweeper, deps.deals, deps.buyers))

		g.Go(func() error { return adminBot.Run(ctx) })
	}

	logger(ctx).Info("application started")

	if err := g.Wait(); err != nil {
		return fmt.Errorf("errgroup.Wait: %w", err)
	}

	logger(ctx).Info("application stopped")

	return nil
}

// SweepOnce runs a single notification sweep, honouring the cluster lease.
func SweepOnce(ctx context.Context, cfg config.Config) error {
	deps, err := newDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close(ctx)

	result, acquired, err := deps.sweeper.RunOnce(ctx)
	if err != nil {
		return fmt.Errorf("sweeper.RunOnce: %w", err)
	}

	if !acquired {
		logger(ctx).Info("another sweep is running, nothing done")
		return nil
	}

	logger(ctx).Info("sweep done",
		slog.Int("processed", result.Processed),
		slog.Int("contacted", result.Contacted),
		slog.Int("failed", result.Failed),
		slog.Int("skipped", result.Skipped),
	)

	return nil
}

// Migrate applies (or with down rolls back one step of) the schema.
func Migrate(ctx context.Context, cfg config.Postgres, down bool) error {
	pg := &connectors.Postgres{
		DSN:             cfg.DSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	if down {
		if err := persistence.Rollback(db); err != nil {
			return fmt.Errorf("persistence.Rollback: %w", err)
		}

		logger(ctx).Info("schema rolled back one step")

		return nil
	}

	if err := persistence.Migrate(db); err != nil {
		return fmt.Errorf("persistence.Migrate: %w", err)
	}

	logger(ctx).Info("schema is up to date")

	return nil
}
