package port

import "foodbot/internal/core/domain"

type OrderResolver interface {
	// Execute resolves the request's target order and applies the command, serialized per chat. The
	// result is populated as far as resolution got, also when an error is returned.
	Execute(req domain.OrderRequest) (domain.OrderResult, error)
	// OrderNames lists every order name in a chat, active or ended, in the order they were started.
	OrderNames(chatID int64) []string
}
