package command

import (
	"context"
	"fmt"
	"foodbot/internal/core/domain"
	"foodbot/internal/core/port"
	"time"

	"github.com/rs/zerolog/log"
)

type Start struct {
	orders     port.OrderResolver
	textSender port.TextSender
	command    string

	// helpWithoutName answers a bare command with the usage instead of asking for a name.
	helpWithoutName bool
}

func NewStart(orders port.OrderResolver, sender port.TextSender, command string, helpWithoutName bool) *Start {
	return &Start{orders: orders, textSender: sender, command: command, helpWithoutName: helpWithoutName}
}

func (s *Start) GetCommand() string {
	return s.command
}

const started = "Order started for %s.\nUse /order <item> to order, /view to view orders and /end when done."

func (s *Start) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", s.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := ParseCommandArgs(message.Text)
	if args == "" && s.helpWithoutName {
		return reply(ctx, s.textSender, message, helpText)
	}

	name, err := ParseOrderName(args)
	if err != nil {
		return replyError(ctx, l, s.textSender, message, err, "", "")
	}

	res, err := s.orders.Execute(domain.OrderRequest{
		ChatID:    message.ChatID,
		User:      message.Sender(),
		Command:   domain.StartOrder,
		OrderName: name,
	})
	if err != nil {
		return replyError(ctx, l, s.textSender, message, err, res.OrderName, "")
	}

	l.Info().Str("order", res.OrderName).Msg("order started")

	return reply(ctx, s.textSender, message, fmt.Sprintf(started, res.OrderName))
}
