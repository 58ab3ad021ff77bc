package order

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAlreadyExists is returned when starting an order whose name is already used in the chat.
	ErrAlreadyExists = errors.New("order already exists")
	// ErrOrderNotFound is returned when an explicitly named order does not exist in the chat.
	ErrOrderNotFound = errors.New("order not found")
	// ErrNoActiveOrder is returned when no order name was given and no order is active.
	ErrNoActiveOrder = errors.New("no active order")
	// ErrAmbiguousOrder is returned when no order name was given and several orders are active.
	ErrAmbiguousOrder = errors.New("ambiguous order")
	// ErrOrderClosed is returned when mutating an order that has ended.
	ErrOrderClosed = errors.New("order closed")
	// ErrItemNotFound is returned when cancelling for a participant without an item.
	ErrItemNotFound = errors.New("no item for participant")
	// ErrAlreadyClosed is returned when ending an order that has already ended.
	ErrAlreadyClosed = errors.New("order already closed")
)

// AmbiguousOrderError carries the names of the active orders a request could have meant.
type AmbiguousOrderError struct {
	Candidates []string
}

func NewAmbiguousOrderError(candidates []string) *AmbiguousOrderError {
	return &AmbiguousOrderError{Candidates: candidates}
}

func (e *AmbiguousOrderError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAmbiguousOrder, strings.Join(e.Candidates, ", "))
}

func (e *AmbiguousOrderError) Unwrap() error {
	return ErrAmbiguousOrder
}
