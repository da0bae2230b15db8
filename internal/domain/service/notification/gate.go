package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"

	"dealflow/internal/domain"
	"dealflow/internal/domain/entity"
	"dealflow/internal/domain/value"
	"dealflow/internal/metrics"
	"dealflow/pkg/errcodes"
	"dealflow/pkg/logx"
)

const (
	defaultBatchSize   = 100
	defaultSendTimeout = 10 * time.Second
	settledCacheTTL    = time.Hour

	channelEmail = "email"
	channelSMS   = "sms"
)

//go:generate moq -rm -out email_sender_mock.gen.go . EmailSender:EmailSenderMock
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

//go:generate moq -rm -out sms_sender_mock.gen.go . SMSSender:SMSSenderMock
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

//go:generate moq -rm -out admin_alerter_mock.gen.go . AdminAlerter:AdminAlerterMock
type AdminAlerter interface {
	AlertContacted(ctx context.Context, n entity.PendingNotification) error
}

//go:generate moq -rm -out match_store_mock.gen.go . MatchStore:MatchStoreMock
type MatchStore interface {
	ListPending(ctx context.Context, limit int) ([]entity.PendingNotification, error)
	ListPendingByDeal(ctx context.Context, dealID value.DealID) ([]entity.PendingNotification, error)
	// Settle locks the match if it is still matched and not locked by another
	// worker, runs deliver and stores the status it returns. settled is false
	// when the match was unavailable; deliver is not called then.
	Settle(ctx context.Context, matchID value.MatchID, deliver func(context.Context) value.MatchStatus) (settled bool, err error)
}

type SweepResult struct {
	Processed int
	Contacted int
	Failed    int
	Skipped   int
	Errors    int
}

// Gate delivers pending matches to buyers. Every match is settled at most
// once: contacted when any channel succeeded, failed otherwise.
type Gate struct {
	store       MatchStore
	email       EmailSender
	sms         SMSSender
	alerter     AdminAlerter
	renderer    *Renderer
	batchSize   int
	sendTimeout time.Duration
	settled     *cache.Cache
	sweepMu     sync.Mutex
}

func NewGate(store MatchStore, email EmailSender, renderer *Renderer) *Gate {
	return &Gate{
		store:       store,
		email:       email,
		renderer:    renderer,
		batchSize:   defaultBatchSize,
		sendTimeout: defaultSendTimeout,
		settled:     cache.New(settledCacheTTL, settledCacheTTL/2),
	}
}

func (g *Gate) WithSMS(sms SMSSender) *Gate {
	g.sms = sms
	return g
}

func (g *Gate) WithAlerter(alerter AdminAlerter) *Gate {
	g.alerter = alerter
	return g
}

func (g *Gate) WithBatchSize(size int) *Gate {
	g.batchSize = size
	return g
}

func (g *Gate) WithSendTimeout(timeout time.Duration) *Gate {
	g.sendTimeout = timeout
	return g
}

// Sweep settles up to one batch of pending matches. Only one sweep runs per
// process at a time.
func (g *Gate) Sweep(ctx context.Context) (SweepResult, error) {
	if !g.sweepMu.TryLock() {
		return SweepResult{}, domain.NewError(errcodes.SweepInProgress, "notification sweep already running")
	}
	defer g.sweepMu.Unlock()

	start := time.Now()
	defer func() { metrics.SweepDuration.Observe(time.Since(start).Seconds()) }()

	pending, err := g.store.ListPending(ctx, g.batchSize)
	if err != nil {
		return SweepResult{}, fmt.Errorf("store.ListPending: %w", err)
	}

	result := summarize(g.Notify(ctx, pending))

	logger(ctx).Info("notification sweep finished",
		slog.Int("processed", result.Processed),
		slog.Int("contacted", result.Contacted),
		slog.Int("failed", result.Failed),
		slog.Int("skipped", result.Skipped),
		slog.Int("errors", result.Errors),
	)

	return result, nil
}

// NotifyDeal settles the pending matches of a single deal.
func (g *Gate) NotifyDeal(ctx context.Context, dealID value.DealID) (SweepResult, error) {
	pending, err := g.store.ListPendingByDeal(ctx, dealID)
	if err != nil {
		return SweepResult{}, fmt.Errorf("store.ListPendingByDeal: %w", err)
	}

	return summarize(g.Notify(ctx, pending)), nil
}

// Notify settles each pending match independently. A failure of one match
// never affects the others.
func (g *Gate) Notify(ctx context.Context, pending []entity.PendingNotification) []entity.MatchOutcome {
	outcomes := make([]entity.MatchOutcome, 0, len(pending))

	for _, n := range pending {
		if ctx.Err() != nil {
			break
		}

		outcomes = append(outcomes, g.settle(ctx, n))
	}

	return outcomes
}

func (g *Gate) settle(ctx context.Context, n entity.PendingNotification) entity.MatchOutcome {
	outcome := entity.MatchOutcome{
		MatchID: n.Match.ID,
		DealID:  n.Match.DealID,
		BuyerID: n.Match.BuyerID,
		Status:  n.Match.Status,
	}

	log := logger(ctx).With(
		logx.Stringer(logx.FieldDealID, n.Match.DealID),
		logx.Stringer(logx.FieldBuyerID, n.Match.BuyerID),
	)

	if _, ok := g.settled.Get(n.Match.ID.String()); ok || n.Match.Status != value.MatchStatusMatched {
		outcome.Skipped = true
		return outcome
	}

	settled, err := g.store.Settle(ctx, n.Match.ID, func(ctx context.Context) value.MatchStatus {
		outcome = g.deliver(ctx, n, outcome)
		return outcome.Status
	})
	if err != nil {
		log.Error("store.Settle", logx.Error(err))
		outcome.Status = value.MatchStatusMatched
		return outcome
	}

	if !settled {
		outcome.Skipped = true
		return outcome
	}

	g.settled.SetDefault(n.Match.ID.String(), outcome.Status)
	metrics.MatchOutcomes.WithLabelValues(outcome.Status.String()).Inc()

	log.Info("match settled", logx.Stringer(logx.FieldMatchStatus, outcome.Status))

	if outcome.Status == value.MatchStatusContacted && g.alerter != nil {
		if err := g.alerter.AlertContacted(ctx, n); err != nil {
			log.Warn("alerter.AlertContacted", logx.Error(err))
		}
	}

	return outcome
}

func (g *Gate) deliver(ctx context.Context, n entity.PendingNotification, outcome entity.MatchOutcome) entity.MatchOutcome {
	outcome.Status = value.MatchStatusFailed

	msg, err := g.renderer.Render(n)
	if err != nil {
		logger(ctx).Error("renderer.Render", logx.Stringer(logx.FieldDealID, n.Deal.ID), logx.Error(err))
		return outcome
	}

	outcome.EmailSent = g.send(ctx, channelEmail, func(ctx context.Context) error {
		return g.email.SendEmail(ctx, n.Buyer.Email, msg.Subject, msg.Body)
	})

	if n.Buyer.HasPhone() && g.sms != nil {
		outcome.SMSSent = g.send(ctx, channelSMS, func(ctx context.Context) error {
			return g.sms.SendSMS(ctx, n.Buyer.Phone, msg.SMS)
		})
	}

	if outcome.EmailSent || outcome.SMSSent {
		outcome.Status = value.MatchStatusContacted
	}

	return outcome
}

func (g *Gate) send(ctx context.Context, channel string, fn func(context.Context) error) bool {
	ctx, cancel := context.WithTimeout(ctx, g.sendTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		metrics.Deliveries.WithLabelValues(channel, "failed").Inc()
		logger(ctx).Warn("delivery failed", slog.String(logx.FieldChannel, channel), logx.Error(err))

		return false
	}

	metrics.Deliveries.WithLabelValues(channel, "sent").Inc()

	return true
}

func summarize(outcomes []entity.MatchOutcome) SweepResult {
	skipped := lo.CountBy(outcomes, func(o entity.MatchOutcome) bool { return o.Skipped })

	return SweepResult{
		Processed: len(outcomes),
		Contacted: lo.CountBy(outcomes, func(o entity.MatchOutcome) bool { return !o.Skipped && o.Status == value.MatchStatusContacted }),
		Failed:    lo.CountBy(outcomes, func(o entity.MatchOutcome) bool { return !o.Skipped && o.Status == value.MatchStatusFailed }),
		Skipped:   skipped,
		Errors: lo.CountBy(outcomes, func(o entity.MatchOutcome) bool {
			return !o.Skipped && o.Status == value.MatchStatusMatched
		}),
	}
}
