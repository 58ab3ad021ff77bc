package handler

import (
	"context"
	"foodbot/internal/adapters/metrics"
	"foodbot/internal/core/domain"
	"foodbot/internal/core/domain/command"
	"foodbot/internal/core/port"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// Callback dispatches taps on inline buttons.
type Callback struct {
	quickOrder port.CallbackCommand
	authorizer port.Authorizer
	metrics    port.CommandMetrics
	timeout    time.Duration
}

func NewCallback(quickOrder port.CallbackCommand, authorizer port.Authorizer, metrics port.CommandMetrics,
	timeout time.Duration) *Callback {
	return &Callback{
		quickOrder: quickOrder,
		authorizer: authorizer,
		metrics:    metrics,
		timeout:    timeout,
	}
}

func (c *Callback) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		log.Debug().Msg("update without callback query, skipping")
		return
	}

	callback, ok := toCallback(update.CallbackQuery)
	if !ok {
		log.Debug().Str("callbackId", update.CallbackQuery.ID).Msg("callback for inaccessible message, skipping")
		return
	}

	l := log.With().
		Str("requestId", newRequestID()).
		Str("callbackId", callback.ID).
		Int64("chatId", callback.Message.ChatID).
		Logger()

	go func() {
		if !c.authorizer.IsAuthorized(ctx, callback.Message.ChatID) {
			l.Info().Msg("chat not authorized")
			c.metrics.CommandHandled(metrics.CommandButton, metrics.OutcomeUnauthorized)
			return
		}

		err := c.quickOrder.Respond(ctx, c.timeout, callback)
		if err != nil {
			l.Err(err).Msg("failed to respond to button tap")
			c.metrics.CommandHandled(metrics.CommandButton, metrics.OutcomeFailed)
			return
		}

		c.metrics.CommandHandled(metrics.CommandButton, metrics.OutcomeHandled)
	}()
}

// toCallback maps a query to the tapped message and the tapping user. Messages too old for the bot to
// read cannot be edited and are skipped.
func toCallback(query *models.CallbackQuery) (*domain.Callback, bool) {
	msg := query.Message.Message
	if msg == nil {
		return nil, false
	}

	fromView := false
	if msg.ReplyToMessage != nil {
		cmd, _ := command.ParseCommand(msg.ReplyToMessage.Text)
		fromView = cmd == "/view" || cmd == "/view_orders"
	}

	return &domain.Callback{
		ID:       query.ID,
		Data:     query.Data,
		FromView: fromView,
		Message: domain.Message{
			ID:       msg.ID,
			ChatID:   msg.Chat.ID,
			UserID:   query.From.ID,
			Username: getDisplayName(&query.From),
			Text:     msg.Text,
		},
	}, true
}
