package worker

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"dealflow/internal/domain/service/notification"
	"dealflow/internal/domain/value"
	"dealflow/internal/infrastructure/queue"
	"dealflow/pkg/contextx"
	"dealflow/pkg/logx"
)

type DealNotifier interface {
	NotifyDeal(ctx context.Context, dealID value.DealID) (notification.SweepResult, error)
}

// NotifyDealHandler delivers the matches of one deal right after ingestion.
type NotifyDealHandler struct {
	gate DealNotifier
}

func NewNotifyDealHandler(gate DealNotifier) *NotifyDealHandler {
	return &NotifyDealHandler{gate: gate}
}

func (h *NotifyDealHandler) Handle(ctx context.Context, task *asynq.Task) error {
	dealID, err := queue.ParseNotifyDealTask(task)
	if err != nil {
		logger(ctx).Warn("bad notify task dropped", logx.Error(err))
		return err
	}

	ctx = contextx.WithLogger(ctx, logger(ctx).With(logx.Stringer(logx.FieldDealID, dealID)))

	result, err := h.gate.NotifyDeal(ctx, dealID)
	if err != nil {
		return fmt.Errorf("gate.NotifyDeal: %w", err)
	}

	logger(ctx).Info("deal notified",
		"contacted", result.Contacted,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)

	return nil
}
