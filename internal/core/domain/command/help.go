package command

import (
	"context"
	"foodbot/internal/core/domain"
	"foodbot/internal/core/port"
	"time"

	"github.com/rs/zerolog/log"
)

const helpText = `/start <order name> - starts an order. For example, /start waffles.
/view - shows all orders.

The following commands will ask for the order name if there are multiple active orders.

/order [order name] <item> - adds an item to an order, or replaces the previously chosen one.
/cancel [order name] - removes your previously selected item from an order.
/end [order name] - stops an order.`

type Help struct {
	textSender port.TextSender
	command    string
}

func NewHelp(sender port.TextSender, command string) *Help {
	return &Help{textSender: sender, command: command}
}

func (h *Help) GetCommand() string {
	return h.command
}

func (h *Help) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	log.Debug().Int64("chatId", message.ChatID).Str("command", h.GetCommand()).Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return reply(ctx, h.textSender, message, helpText)
}
