package domain

import "errors"

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrUnknownCommand     = errors.New("unknown command")
)
