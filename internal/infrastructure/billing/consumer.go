package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/segmentio/kafka-go"

	"dealflow/internal/domain"
	"dealflow/internal/domain/entity"
	"dealflow/internal/domain/value"
	"dealflow/pkg/errcodes"
	"dealflow/pkg/logx"
)

const (
	maxAttempts  = 5
	retryBackoff = time.Second
)

type Config struct {
	Brokers []string
	Topic   string
	GroupID string
}

type EventApplier interface {
	ApplyBillingEvent(ctx context.Context, event entity.BillingEvent) error
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// tierChanged is the wire format of a billing tier change.
type tierChanged struct {
	EventID  string `json:"event_id"`
	BuyerID  string `json:"buyer_id"`
	PaidTier string `json:"paid_tier"`
}

// Consumer applies buyer tier changes published by billing. Offsets are
// committed once an event is applied or found to be unusable.
type Consumer struct {
	reader  messageReader
	applier EventApplier
	topic   string
	backoff time.Duration
}

func NewConsumer(cfg Config, applier EventApplier) (*Consumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}

	if cfg.Topic == "" || cfg.GroupID == "" {
		return nil, errors.New("topic and group id are required")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 1 << 20,
		MaxWait:  time.Second,
	})

	return newConsumer(reader, applier, cfg.Topic), nil
}

func newConsumer(reader messageReader, applier EventApplier, topic string) *Consumer {
	return &Consumer{
		reader:  reader,
		applier: applier,
		topic:   topic,
		backoff: retryBackoff,
	}
}

// Run consumes until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	logger(ctx).Info("billing consumer started", slog.String(logx.FieldTopic, c.topic))

	defer func() {
		if err := c.reader.Close(); err != nil {
			logger(ctx).Error("reader.Close", logx.Error(err))
		}

		logger(ctx).Info("billing consumer stopped", slog.String(logx.FieldTopic, c.topic))
	}()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			logger(ctx).Error("reader.FetchMessage", logx.Error(err))

			if !c.sleep(ctx) {
				return nil
			}

			continue
		}

		c.handle(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			logger(ctx).Error("reader.CommitMessages", slog.Int64("offset", msg.Offset), logx.Error(err))
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg kafka.Message) {
	event, err := decode(msg.Value)
	if err != nil {
		logger(ctx).Warn("billing event dropped", slog.Int64("offset", msg.Offset), logx.Error(err))
		return
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = c.applier.ApplyBillingEvent(ctx, event)
		if err == nil || permanent(err) {
			break
		}

		logger(ctx).Warn("billing event retry",
			slog.String("event-id", event.EventID),
			slog.Int("attempt", attempt),
			logx.Error(err),
		)

		if attempt == maxAttempts || !c.sleep(ctx) {
			break
		}
	}

	if err != nil {
		logger(ctx).Error("billing event not applied",
			slog.String("event-id", event.EventID),
			logx.Stringer(logx.FieldBuyerID, event.BuyerID),
			logx.Error(err),
		)
	}
}

func (c *Consumer) sleep(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(c.backoff):
		return true
	}
}

func decode(data []byte) (entity.BillingEvent, error) {
	var wire tierChanged
	if err := jsoniter.Unmarshal(data, &wire); err != nil {
		return entity.BillingEvent{}, fmt.Errorf("jsoniter.Unmarshal: %w", err)
	}

	buyerID, err := value.ParseBuyerID(wire.BuyerID)
	if err != nil {
		return entity.BillingEvent{}, fmt.Errorf("value.ParseBuyerID: %w", err)
	}

	tier, err := value.ParsePaidTier(wire.PaidTier)
	if err != nil {
		return entity.BillingEvent{}, fmt.Errorf("value.ParsePaidTier: %w", err)
	}

	return entity.BillingEvent{
		EventID:  wire.EventID,
		BuyerID:  buyerID,
		PaidTier: tier,
	}, nil
}

func permanent(err error) bool {
	return domain.HasCode(err, errcodes.InvalidBillingEvent) || domain.HasCode(err, errcodes.BuyerNotFound)
}
