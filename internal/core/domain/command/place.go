package command

import (
	"context"
	"fmt"
	"foodbot/internal/core/domain"
	"foodbot/internal/core/domain/order"
	"foodbot/internal/core/port"
	"time"

	"github.com/rs/zerolog/log"
)

// Place claims an item in an order for the sender, replacing any item they already claimed there.
type Place struct {
	orders     port.OrderResolver
	textSender port.ButtonSender
	command    string
}

func NewPlace(orders port.OrderResolver, sender port.ButtonSender, command string) *Place {
	return &Place{orders: orders, textSender: sender, command: command}
}

func (p *Place) GetCommand() string {
	return p.command
}

const (
	placeUsage  = "/order <order name> <item>"
	placeFooter = "\n\nUse /order <item> to update your order and /end when done."
)

func (p *Place) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", p.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	name, item, err := SplitOrderArgs(ParseCommandArgs(message.Text), p.orders.OrderNames(message.ChatID))
	if err != nil {
		return replyError(ctx, l, p.textSender, message, err, name, placeUsage)
	}

	res, err := p.orders.Execute(domain.OrderRequest{
		ChatID:    message.ChatID,
		User:      message.Sender(),
		Command:   domain.PlaceItem,
		OrderName: name,
		Item:      item,
	})
	if err != nil {
		return replyError(ctx, l, p.textSender, message, err, res.OrderName, placeUsage)
	}

	text := renderOrder(res.Snapshot) + placeFooter
	if res.Previous != "" && res.Previous != item {
		text = fmt.Sprintf("Replaced %s with %s.\n\n", res.Previous, item) + text
	}

	return replyWithButtons(ctx, p.textSender, message, text, orderButtons([]order.Snapshot{res.Snapshot}))
}
