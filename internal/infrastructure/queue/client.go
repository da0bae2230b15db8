package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"dealflow/internal/domain/value"
	"dealflow/pkg/logx"
)

const (
	defaultMaxRetry = 3
	defaultTimeout  = time.Minute
)

// Client enqueues prompt notification of freshly matched deals. The periodic
// sweep remains the fallback, so a lost task only delays delivery.
type Client struct {
	client   *asynq.Client
	maxRetry int
	timeout  time.Duration
}

func NewClient(rdb redis.UniversalClient) *Client {
	return &Client{
		client:   asynq.NewClientFromRedisClient(rdb),
		maxRetry: defaultMaxRetry,
		timeout:  defaultTimeout,
	}
}

func (c *Client) WithMaxRetry(n int) *Client {
	c.maxRetry = n
	return c
}

// ScheduleDeal enqueues one task per deal. Enqueueing the same deal twice
// while the first task is still queued is not an error.
func (c *Client) ScheduleDeal(ctx context.Context, dealID value.DealID) error {
	task, err := NewNotifyDealTask(dealID)
	if err != nil {
		return err
	}

	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueNotifications),
		asynq.TaskID(notifyDealTaskID(dealID)),
		asynq.MaxRetry(c.maxRetry),
		asynq.Timeout(c.timeout),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		logger(ctx).Debug("notify task already queued", logx.Stringer(logx.FieldDealID, dealID))
		return nil
	}

	if err != nil {
		return fmt.Errorf("client.EnqueueContext: %w", err)
	}

	logger(ctx).Debug("notify task queued",
		logx.Stringer(logx.FieldDealID, dealID),
		slog.String("task-id", info.ID),
	)

	return nil
}
