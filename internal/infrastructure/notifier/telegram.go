package notifier

import (
	"context"
	"fmt"
	"html"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"dealflow/internal/domain/entity"
)

// TelegramAlerter пишет администратору о связанных покупателях.
type TelegramAlerter struct {
	bot     *telego.Bot
	chatID  int64
	printer *message.Printer
}

func NewTelegramAlerter(bot *telego.Bot, chatID int64) *TelegramAlerter {
	return &TelegramAlerter{
		bot:     bot,
		chatID:  chatID,
		printer: message.NewPrinter(language.English),
	}
}

func (a *TelegramAlerter) AlertContacted(ctx context.Context, n entity.PendingNotification) error {
	text := a.printer.Sprintf(
		"✅ <b>Buyer notified</b>\n\n"+
			"👤 <b>Buyer:</b> %s\n"+
			"🏷 <b>Deal:</b> %s\n"+
			"📍 <b>Location:</b> %s\n"+
			"💰 <b>Price:</b> $%d\n"+
			"📊 <b>Score:</b> %d/100 (%s)",
		html.EscapeString(n.Buyer.Email),
		html.EscapeString(n.Deal.Name),
		html.EscapeString(n.Deal.Location),
		n.Deal.Price.Round(0).IntPart(),
		n.Deal.Scores.Composite,
		n.Deal.Tier.String(),
	)

	msg := tu.Message(tu.ID(a.chatID), text).WithParseMode(telego.ModeHTML)

	if _, err := a.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("bot.SendMessage: %w", err)
	}

	return nil
}

// SendText отправляет простое текстовое сообщение.
func (a *TelegramAlerter) SendText(ctx context.Context, text string) error {
	if _, err := a.bot.SendMessage(ctx, tu.Message(tu.ID(a.chatID), text)); err != nil {
		return fmt.Errorf("bot.SendMessage: %w", err)
	}

	return nil
}

// LogAlerter is used when no admin chat is configured.
type LogAlerter struct{}

func (LogAlerter) AlertContacted(ctx context.Context, n entity.PendingNotification) error {
	logger(ctx).Info("buyer notified",
		"buyer", n.Buyer.Email,
		"deal", n.Deal.Name,
		"composite", n.Deal.Scores.Composite,
	)

	return nil
}
