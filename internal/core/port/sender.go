package port

import (
	"context"
	"foodbot/internal/core/domain"
)

type TextSender interface {
	// SendMessageReply sends a reply to a specified message with the given text and returns the sent message ID and
	// an error if any.
	SendMessageReply(ctx context.Context, message *domain.Message, text string) (int, error)
	// NotifyAndReturnError sends an error notification based on the provided message context and returns the error.
	NotifyAndReturnError(ctx context.Context, err error, message *domain.Message) error
}

type ButtonSender interface {
	TextSender
	// SendMessageReplyWithButtons works like SendMessageReply and attaches the buttons to the last message sent.
	SendMessageReplyWithButtons(ctx context.Context, message *domain.Message, text string,
		buttons []domain.Button) (int, error)
	// EditMessage replaces the text and buttons of a message previously sent by the bot.
	EditMessage(ctx context.Context, message *domain.Message, text string, buttons []domain.Button) error
	// AnswerCallback acknowledges a button tap, showing text to the user who tapped.
	AnswerCallback(ctx context.Context, callbackID string, text string) error
}
