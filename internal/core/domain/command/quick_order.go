package command

import (
	"context"
	"fmt"
	"foodbot/internal/core/domain"
	"foodbot/internal/core/domain/order"
	"foodbot/internal/core/port"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// QuickOrder handles taps on the item buttons attached to /order and /view replies. A tap orders the
// item for the tapping user and refreshes the tapped message.
type QuickOrder struct {
	orders     port.OrderResolver
	textSender port.ButtonSender
}

func NewQuickOrder(orders port.OrderResolver, sender port.ButtonSender) *QuickOrder {
	return &QuickOrder{orders: orders, textSender: sender}
}

const (
	staleButton   = "This button is no longer valid."
	quickOrderErr = "Something went wrong, please try again."
)

func (q *QuickOrder) Respond(ctx context.Context, timeout time.Duration, callback *domain.Callback) error {
	l := log.With().
		Str("callbackId", callback.ID).
		Int("messageId", callback.Message.ID).
		Int64("chatId", callback.Message.ChatID).
		Logger()

	l.Info().Str("data", callback.Data).Msg("handling button tap")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	name, item, ok := ParseButtonData(callback.Data)
	if !ok {
		l.Warn().Str("data", callback.Data).Msg("malformed button data")
		return q.textSender.AnswerCallback(ctx, callback.ID, staleButton)
	}

	res, err := q.orders.Execute(domain.OrderRequest{
		ChatID:    callback.Message.ChatID,
		User:      callback.Message.Sender(),
		Command:   domain.PlaceItem,
		OrderName: name,
		Item:      item,
	})
	if err != nil {
		text, known := describeError(err, name, placeUsage)
		if !known {
			l.Error().Err(err).Msg("unexpected order error")
			text = quickOrderErr
		}

		if answerErr := q.textSender.AnswerCallback(ctx, callback.ID, text); answerErr != nil {
			l.Warn().Err(answerErr).Msg("failed to answer button tap")
		}

		if known {
			return nil
		}
		return err
	}

	if strings.EqualFold(res.Previous, item) {
		return q.textSender.AnswerCallback(ctx, callback.ID, fmt.Sprintf("You already ordered %s.", res.Previous))
	}

	err = q.textSender.AnswerCallback(ctx, callback.ID, fmt.Sprintf("Ordered %s from %s.", item, res.OrderName))
	if err != nil {
		l.Warn().Err(err).Msg("failed to answer button tap")
	}

	text := renderOrder(res.Snapshot) + placeFooter
	buttons := orderButtons([]order.Snapshot{res.Snapshot})

	if callback.FromView {
		view, err := q.orders.Execute(domain.OrderRequest{
			ChatID:  callback.Message.ChatID,
			User:    callback.Message.Sender(),
			Command: domain.ViewOrders,
		})
		if err != nil {
			return err
		}

		text = renderView(view)
		buttons = orderButtons(view.Orders)
	}

	return q.textSender.EditMessage(ctx, &callback.Message, text, buttons)
}
