package application

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mymmrac/telego"
	"github.com/redis/go-redis/v9"

	"dealflow/internal/config"
	"dealflow/internal/domain/service/assistant"
	"dealflow/internal/domain/service/buyer"
	"dealflow/internal/domain/service/deal"
	"dealflow/internal/domain/service/matching"
	"dealflow/internal/domain/service/notification"
	"dealflow/internal/domain/service/scoring"
	"dealflow/internal/infrastructure/lease"
	"dealflow/internal/infrastructure/notifier"
	"dealflow/internal/infrastructure/persistence"
	"dealflow/internal/infrastructure/queue"
	"dealflow/internal/infrastructure/stream"
	"dealflow/internal/worker"
	"dealflow/pkg/application/connectors"
)

const sweepLeaseKey = "dealflow:notification-sweep"

type dependencies struct {
	db    *sqlx.DB
	redis *redis.Client
	bot   *telego.Bot

	hub     *stream.Hub
	deals   *deal.Service
	buyers  *buyer.Service
	gate    *notification.Gate
	sweeper *worker.NotificationSweeper

	closers []func(context.Context)
}

func (d *dependencies) Close(ctx context.Context) {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i](ctx)
	}
}

func newDependencies(ctx context.Context, cfg config.Config) (*dependencies, error) {
	d := &dependencies{}

	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	d.db = pg.Client(ctx)
	d.closers = append(d.closers, pg.Close)

	rc := &connectors.Redis{
		Address:        cfg.Redis.Address,
		Username:       cfg.Redis.Username,
		Password:       cfg.Redis.Password,
		DatabaseNumber: cfg.Redis.DB,
		PoolSize:       cfg.Redis.PoolSize,
	}
	d.redis = rc.Client(ctx)
	d.closers = append(d.closers, rc.Close)

	rules, err := scoring.LoadRules(cfg.Scoring.RulesFile)
	if err != nil {
		d.Close(ctx)
		return nil, fmt.Errorf("scoring.LoadRules: %w", err)
	}

	dealRepo := persistence.NewDealRepository(d.db)
	buyerRepo := persistence.NewBuyerRepository(d.db)
	matchRepo := persistence.NewMatchRepository(d.db)

	d.hub = stream.NewHub(cfg.HTTP.CORSOrigins)
	d.closers = append(d.closers, func(context.Context) { d.hub.Close() })

	d.deals = deal.NewService(
		dealRepo,
		buyerRepo,
		matchRepo,
		scoring.NewScorer(rules),
		matching.NewMatcher().WithQualityGate(cfg.Scoring.QualityGate),
		assistant.NewAnalyzer(),
	).
		WithScheduler(queue.NewClient(d.redis)).
		WithPublisher(d.hub)

	d.buyers = buyer.NewService(buyerRepo)

	renderer, err := notification.NewRenderer()
	if err != nil {
		d.Close(ctx)
		return nil, fmt.Errorf("notification.NewRenderer: %w", err)
	}

	d.gate = notification.NewGate(matchRepo, notifier.NewEmailSender(notifier.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		Timeout:  cfg.SMTP.Timeout,
		Insecure: cfg.SMTP.Insecure,
	}), renderer).
		WithBatchSize(cfg.Sweep.BatchSize).
		WithSendTimeout(cfg.Sweep.SendTimeout)

	if cfg.Twilio.Enabled() {
		d.gate.WithSMS(notifier.NewTwilioSender(notifier.TwilioConfig{
			AccountSID: cfg.Twilio.AccountSID,
			AuthToken:  cfg.Twilio.AuthToken,
			From:       cfg.Twilio.From,
			BaseURL:    cfg.Twilio.BaseURL,
			Timeout:    cfg.Twilio.Timeout,
		}))
	}

	if cfg.Bot.Enabled() {
		d.bot, err = telego.NewBot(cfg.Bot.Token)
		if err != nil {
			d.Close(ctx)
			return nil, fmt.Errorf("telego.NewBot: %w", err)
		}

		d.gate.WithAlerter(notifier.NewTelegramAlerter(d.bot, cfg.Bot.ChatID))
	} else {
		d.gate.WithAlerter(notifier.LogAlerter{})
	}

	d.sweeper = worker.NewNotificationSweeper(d.gate).
		WithLease(lease.NewRedisLease(d.redis, sweepLeaseKey, cfg.Sweep.LeaseTTL)).
		WithSchedule(cfg.Sweep.Schedule)

	return d, nil
}
