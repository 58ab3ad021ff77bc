package command

import (
	"context"
	"fmt"
	"foodbot/internal/core/domain"
	"foodbot/internal/core/port"

	"github.com/rs/zerolog"
)

func reply(ctx context.Context, sender port.TextSender, message *domain.Message, text string) error {
	_, err := sender.SendMessageReply(ctx, message, text)
	if err != nil {
		err = fmt.Errorf("error sending order response: %w", err)
		return sender.NotifyAndReturnError(ctx, err, message)
	}

	return nil
}

func replyWithButtons(ctx context.Context, sender port.ButtonSender, message *domain.Message, text string,
	buttons []domain.Button) error {
	_, err := sender.SendMessageReplyWithButtons(ctx, message, text, buttons)
	if err != nil {
		err = fmt.Errorf("error sending order response: %w", err)
		return sender.NotifyAndReturnError(ctx, err, message)
	}

	return nil
}

// replyError answers with the user-facing description of err. Errors without one are reported
// through the sender's error notification.
func replyError(ctx context.Context, l zerolog.Logger, sender port.TextSender, message *domain.Message,
	err error, orderName string, example string) error {
	text, ok := describeError(err, orderName, example)
	if !ok {
		l.Error().Err(err).Msg("unexpected order error")
		return sender.NotifyAndReturnError(ctx, err, message)
	}

	l.Debug().Err(err).Msg("order command rejected")

	return reply(ctx, sender, message, text)
}
