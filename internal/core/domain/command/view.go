package command

import (
	"context"
	"foodbot/internal/core/domain"
	"foodbot/internal/core/port"
	"time"

	"github.com/rs/zerolog/log"
)

type View struct {
	orders     port.OrderResolver
	textSender port.ButtonSender
	command    string
}

func NewView(orders port.OrderResolver, sender port.ButtonSender, command string) *View {
	return &View{orders: orders, textSender: sender, command: command}
}

func (v *View) GetCommand() string {
	return v.command
}

func (v *View) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", v.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := v.orders.Execute(domain.OrderRequest{
		ChatID:  message.ChatID,
		User:    message.Sender(),
		Command: domain.ViewOrders,
	})
	if err != nil {
		return replyError(ctx, l, v.textSender, message, err, "", "")
	}

	return replyWithButtons(ctx, v.textSender, message, renderView(res), orderButtons(res.Orders))
}
