package service

import (
	"context"
	"errors"
	"fmt"
	"foodbot/internal/core/domain"
	"foodbot/internal/core/port"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// ChatAuthorizer restricts the bot to the chats listed under telegram.allowed_chat_ids. Chats that are
// turned away are told which ID to pass on to the admin.
type ChatAuthorizer struct {
	allowlist []int64
	sender    port.TextSender
}

// NewAuthorizer loads the chat allowlist from config. An empty allowlist lets every chat through.
func NewAuthorizer(sender port.TextSender) (*ChatAuthorizer, error) {
	var list []int64

	err := viper.UnmarshalKey("telegram.allowed_chat_ids", &list)
	if err != nil {
		return nil, errors.New("failed to load allowed chat IDs")
	}

	return &ChatAuthorizer{
		allowlist: list,
		sender:    sender,
	}, nil
}

const forbidden = "You are not authorized to use this bot. Please contact @%s with this ID to get access: %d"

func (a *ChatAuthorizer) IsAuthorized(ctx context.Context, chatID int64) bool {
	if len(a.allowlist) == 0 {
		return true
	}

	if slices.Contains(a.allowlist, chatID) {
		return true
	}

	_, err := a.sender.SendMessageReply(ctx,
		&domain.Message{ChatID: chatID},
		fmt.Sprintf(forbidden, viper.GetString("telegram.admin_username"), chatID))
	if err != nil {
		log.Err(err).Msg("failed to send unauthorized warning")
	}

	return false
}
