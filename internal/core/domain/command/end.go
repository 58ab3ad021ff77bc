package command

import (
	"context"
	"foodbot/internal/core/domain"
	"foodbot/internal/core/port"
	"time"

	"github.com/rs/zerolog/log"
)

// End closes an order and replies with its final list of items.
type End struct {
	orders     port.OrderResolver
	textSender port.TextSender
	command    string
}

func NewEnd(orders port.OrderResolver, sender port.TextSender, command string) *End {
	return &End{orders: orders, textSender: sender, command: command}
}

func (e *End) GetCommand() string {
	return e.command
}

func (e *End) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", e.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := e.orders.Execute(domain.OrderRequest{
		ChatID:    message.ChatID,
		User:      message.Sender(),
		Command:   domain.EndOrder,
		OrderName: ParseOptionalOrderName(ParseCommandArgs(message.Text)),
	})
	if err != nil {
		return replyError(ctx, l, e.textSender, message, err, res.OrderName, "/end <order name>")
	}

	l.Info().Str("order", res.OrderName).Int("items", len(res.Snapshot.Items)).Msg("order ended")

	return reply(ctx, e.textSender, message, renderOrder(res.Snapshot))
}
