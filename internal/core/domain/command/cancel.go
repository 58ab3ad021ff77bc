package command

import (
	"context"
	"fmt"
	"foodbot/internal/core/domain"
	"foodbot/internal/core/port"
	"time"

	"github.com/rs/zerolog/log"
)

type Cancel struct {
	orders     port.OrderResolver
	textSender port.TextSender
	command    string
}

func NewCancel(orders port.OrderResolver, sender port.TextSender, command string) *Cancel {
	return &Cancel{orders: orders, textSender: sender, command: command}
}

func (c *Cancel) GetCommand() string {
	return c.command
}

func (c *Cancel) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", c.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := c.orders.Execute(domain.OrderRequest{
		ChatID:    message.ChatID,
		User:      message.Sender(),
		Command:   domain.CancelItem,
		OrderName: ParseOptionalOrderName(ParseCommandArgs(message.Text)),
	})
	if err != nil {
		return replyError(ctx, l, c.textSender, message, err, res.OrderName, "/cancel <order name>")
	}

	return reply(ctx, c.textSender, message,
		fmt.Sprintf("Cancelled your order of %s.\n\n%s", res.Previous, renderOrder(res.Snapshot)))
}
