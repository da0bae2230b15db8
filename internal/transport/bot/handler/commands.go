package handler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"dealflow/internal/domain/entity"
	"dealflow/internal/domain/value"
	"dealflow/internal/transport/bot/view"
	"dealflow/internal/worker"
	"dealflow/pkg/logx"
)

var errTierUsage = errors.New("usage: /tier <buyer-id> <tier>")

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.StartMessage)
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	kpis, err := h.kpis.KPIs(ctx)
	if err != nil {
		logger(ctx).Error("kpis.KPIs", logx.Error(err))
		return h.send(ctx, msg.Chat.ID, view.KPIError)
	}

	return h.sendHTML(ctx, msg.Chat.ID, formatStatus(h.sweeper.IsRunning(), kpis))
}

func (h *Handler) OnSweep(ctx *th.Context, msg telego.Message) error {
	result, acquired, err := h.sweeper.RunOnce(ctx)

	switch {
	case err != nil:
		return h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.SweepFailed, err))
	case !acquired:
		return h.send(ctx, msg.Chat.ID, view.SweepSkipped)
	default:
		return h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.SweepResultTemplate,
			result.Processed, result.Contacted, result.Failed, result.Skipped))
	}
}

func (h *Handler) OnStartSweep(ctx *th.Context, msg telego.Message) error {
	if h.sweeper.IsRunning() {
		return h.send(ctx, msg.Chat.ID, view.SweepAlreadyRunning)
	}

	// Расписание не должно зависеть от жизни обработчика команды
	if err := h.sweeper.Start(context.WithoutCancel(ctx)); err != nil {
		if errors.Is(err, worker.ErrAlreadyRunning) {
			return h.send(ctx, msg.Chat.ID, view.SweepAlreadyRunning)
		}

		return h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.SweepStartFailed, err))
	}

	return h.send(ctx, msg.Chat.ID, view.SweepStarted)
}

func (h *Handler) OnStopSweep(ctx *th.Context, msg telego.Message) error {
	if !h.sweeper.IsRunning() {
		return h.send(ctx, msg.Chat.ID, view.SweepNotRunning)
	}

	h.sweeper.Stop()

	return h.send(ctx, msg.Chat.ID, view.SweepStopped)
}

// OnTier меняет тариф покупателя вручную
// Использование: /tier 0b6c...e1 paid
func (h *Handler) OnTier(ctx *th.Context, msg telego.Message) error {
	id, tier, err := parseTierArgs(msg.Text)
	if err != nil {
		return h.sendHTML(ctx, msg.Chat.ID, view.TierUsage)
	}

	buyer, err := h.buyers.SetPaidTier(ctx, id, tier)
	if err != nil {
		return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(view.TierFailed, html.EscapeString(err.Error())))
	}

	return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(view.TierUpdated, buyer.ID, buyer.PaidTier))
}

func parseTierArgs(text string) (value.BuyerID, string, error) {
	args := strings.Fields(text)
	if len(args) != 3 {
		return value.BuyerID{}, "", errTierUsage
	}

	id, err := value.ParseBuyerID(args[1])
	if err != nil {
		return value.BuyerID{}, "", fmt.Errorf("value.ParseBuyerID: %w", err)
	}

	return id, args[2], nil
}

func formatStatus(running bool, k entity.KPIs) string {
	status := view.SweeperStopped
	if running {
		status = view.SweeperRunning
	}

	return fmt.Sprintf(view.StatusTemplate,
		status,
		k.TotalDeals, k.DealsToday,
		k.GreenDeals, k.YellowDeals, k.RedDeals,
		k.AveragePrice.StringFixed(2),
		k.ActiveBuyers,
		k.Matched, k.Contacted, k.Failed,
	)
}

// Вспомогательные методы

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})
	return err
}

func (h *Handler) send(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: chatID},
		Text:   text,
	})
	return err
}
