package handler

import (
	"context"
	"foodbot/internal/adapters/metrics"
	"foodbot/internal/core/domain"
	"foodbot/internal/core/domain/command"
	"foodbot/internal/core/port"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

type Command struct {
	commandRegistry port.CommandRegistry
	authorizer      port.Authorizer
	textSender      port.TextSender
	metrics         port.CommandMetrics
	botUsername     string
	timeout         time.Duration
}

// NewCommand returns the handler for text commands. botUsername is the bot's own Telegram username;
// commands addressed to any other bot are ignored.
func NewCommand(commandRegistry port.CommandRegistry, authorizer port.Authorizer, textSender port.TextSender,
	metrics port.CommandMetrics, botUsername string, timeout time.Duration) *Command {
	return &Command{
		commandRegistry: commandRegistry,
		authorizer:      authorizer,
		textSender:      textSender,
		metrics:         metrics,
		botUsername:     strings.TrimPrefix(botUsername, "@"),
		timeout:         timeout,
	}
}

const unknownCommand = "Use /help for a list of recognized commands."

// Handle dispatches a text command to its handler. The handler runs in its own goroutine so a slow
// reply in one chat does not hold up updates for others.
func (c *Command) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		log.Debug().Msg("update without message, skipping")
		return
	}

	msg := update.Message

	l := log.With().
		Str("requestId", newRequestID()).
		Int("messageId", msg.ID).
		Int64("chatId", msg.Chat.ID).
		Logger()

	l.Debug().Str("message", msg.Text).Msg("received command")

	cmd, mention := command.ParseCommand(msg.Text)
	if mention != "" && !strings.EqualFold(mention, c.botUsername) {
		l.Debug().Str("command", cmd).Str("mention", mention).Msg("command addressed to another bot")
		return
	}

	message := &domain.Message{
		ID:       msg.ID,
		ChatID:   msg.Chat.ID,
		UserID:   msg.From.ID,
		Username: getDisplayName(msg.From),
		Text:     msg.Text,
	}

	commandHandler, err := c.commandRegistry.Get(cmd)
	if err != nil {
		l.Debug().Str("command", cmd).Msg("no handler for command")
		c.metrics.CommandHandled(metrics.CommandUnknown, metrics.OutcomeUnknown)

		// in groups, bare commands may belong to other bots
		if mention != "" || msg.Chat.Type == models.ChatTypePrivate {
			go c.replyUnknown(ctx, message)
		}
		return
	}

	go func() {
		if !c.authorizer.IsAuthorized(ctx, message.ChatID) {
			l.Info().Str("command", cmd).Msg("chat not authorized")
			c.metrics.CommandHandled(cmd, metrics.OutcomeUnauthorized)
			return
		}

		err := commandHandler.Respond(ctx, c.timeout, message)
		if err != nil {
			l.Err(err).Str("command", cmd).Msg("failed to respond to command")
			c.metrics.CommandHandled(cmd, metrics.OutcomeFailed)
			return
		}

		c.metrics.CommandHandled(cmd, metrics.OutcomeHandled)
	}()
}

func (c *Command) replyUnknown(ctx context.Context, message *domain.Message) {
	if !c.authorizer.IsAuthorized(ctx, message.ChatID) {
		return
	}

	_, err := c.textSender.SendMessageReply(ctx, message, unknownCommand)
	if err != nil {
		log.Err(err).Int64("chatId", message.ChatID).Msg("failed to answer unknown command")
	}
}

func newRequestID() string {
	id, err := uuid.NewV4()
	if err != nil {
		log.Warn().Err(err).Msg("could not generate request id")
		return ""
	}

	return id.String()
}

func getDisplayName(user *models.User) string {
	if user.FirstName != "" {
		return user.FirstName
	}

	if user.Username != "" {
		return "@" + user.Username
	}

	return "someone"
}
