package sender

import (
	"context"
	"errors"
	"fmt"
	"foodbot/internal/core/domain"
	"slices"
	"unicode/utf8"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
}

type Telegram struct {
	bot TelegramBot
}

func NewTelegram(bot TelegramBot) *Telegram {
	return &Telegram{bot: bot}
}

const TelegramMessageLimit = 4096

// SendMessageReply sends text as a reply to message, split into several messages if it exceeds the
// Telegram limit. It returns the ID of the last message sent.
func (s *Telegram) SendMessageReply(ctx context.Context, message *domain.Message, text string) (int, error) {
	return s.send(ctx, message, text, nil)
}

func (s *Telegram) SendMessageReplyWithButtons(ctx context.Context, message *domain.Message, text string,
	buttons []domain.Button) (int, error) {
	return s.send(ctx, message, text, inlineKeyboard(buttons))
}

func (s *Telegram) send(ctx context.Context, message *domain.Message, text string, markup models.ReplyMarkup) (int, error) {
	var replyParameters *models.ReplyParameters
	if message.ID != 0 {
		replyParameters = &models.ReplyParameters{
			MessageID: message.ID,
			ChatID:    message.ChatID,
		}
	}

	chunks := splitMessage(text, TelegramMessageLimit)

	var lastID int
	for i, chunk := range chunks {
		params := &bot.SendMessageParams{
			ChatID:          message.ChatID,
			Text:            chunk,
			ReplyParameters: replyParameters,
		}
		if i == len(chunks)-1 {
			params.ReplyMarkup = markup
		}

		sent, err := s.bot.SendMessage(ctx, params)
		if err != nil {
			log.Error().Err(err).Int64("chatId", message.ChatID).Msg("failed to send message")
			return lastID, fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
		}

		lastID = sent.ID
	}

	return lastID, nil
}

// EditMessage rewrites a bot message in place. Text too long for a single message is sent as a new
// reply instead.
func (s *Telegram) EditMessage(ctx context.Context, message *domain.Message, text string, buttons []domain.Button) error {
	if len(text) > TelegramMessageLimit {
		_, err := s.SendMessageReplyWithButtons(ctx, message, text, buttons)
		return err
	}

	_, err := s.bot.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      message.ChatID,
		MessageID:   message.ID,
		Text:        text,
		ReplyMarkup: inlineKeyboard(buttons),
	})
	if err != nil {
		log.Error().Err(err).Int64("chatId", message.ChatID).Int("messageId", message.ID).Msg("failed to edit message")
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}

func (s *Telegram) AnswerCallback(ctx context.Context, callbackID string, text string) error {
	_, err := s.bot.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}

const keyboardColumns = 2

// inlineKeyboard lays buttons out in rows of two. It returns nil for no buttons so the message goes
// out without a keyboard.
func inlineKeyboard(buttons []domain.Button) models.ReplyMarkup {
	if len(buttons) == 0 {
		return nil
	}

	rows := make([][]models.InlineKeyboardButton, 0, (len(buttons)+keyboardColumns-1)/keyboardColumns)
	for chunk := range slices.Chunk(buttons, keyboardColumns) {
		row := make([]models.InlineKeyboardButton, len(chunk))
		for i, b := range chunk {
			row[i] = models.InlineKeyboardButton{Text: b.Text, CallbackData: b.Data}
		}
		rows = append(rows, row)
	}

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

const errorNotice = "Something went wrong, please try again."

// NotifyAndReturnError tells the chat that handling the message failed and returns err, joined with
// the delivery error if the notice could not be sent either.
func (s *Telegram) NotifyAndReturnError(ctx context.Context, err error, message *domain.Message) error {
	log.Error().Err(err).Int("messageId", message.ID).Int64("chatId", message.ChatID).Msg("notifying chat of error")

	_, sendErr := s.SendMessageReply(ctx, message, errorNotice)
	if sendErr != nil {
		return errors.Join(err, sendErr)
	}

	return err
}

// splitMessage cuts text into chunks of at most limit bytes without splitting runes.
func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(text) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		if cut == 0 {
			cut = limit
		}

		chunks = append(chunks, text[:cut])
		text = text[cut:]
	}

	if text != "" {
		chunks = append(chunks, text)
	}

	return chunks
}
