package domain

import "foodbot/internal/core/domain/order"

type Message struct {
	ID       int
	ChatID   int64
	UserID   int64
	Username string
	Text     string
}

// Sender returns the participant identity of the message author.
func (m *Message) Sender() order.Participant {
	return order.Participant{ID: m.UserID, Name: m.Username}
}

type OrderCommand string

const (
	StartOrder OrderCommand = "start"
	PlaceItem  OrderCommand = "order"
	CancelItem OrderCommand = "cancel"
	EndOrder   OrderCommand = "end"
	ViewOrders OrderCommand = "view"
)

// OrderRequest is a parsed chat command addressed to a chat's orders. OrderName is empty when the
// user omitted it; Item is only used by PlaceItem.
type OrderRequest struct {
	ChatID    int64
	User      order.Participant
	Command   OrderCommand
	OrderName string
	Item      string
}

// OrderResult carries what a reply needs. OrderName is the resolved order, which may differ from the
// requested one when the name was inferred.
type OrderResult struct {
	OrderName string
	// Previous is the item that was replaced or removed, if any.
	Previous  string
	Snapshot  order.Snapshot
	Summaries []order.Summary
	Orders    []order.Snapshot
}

// Button is an inline keyboard button. Data is sent back to the bot when the button is tapped.
type Button struct {
	Text string
	Data string
}

// Callback is a tap on a button the bot attached to one of its messages.
type Callback struct {
	ID   string
	Data string
	// Message is the bot message carrying the button, with the tapping user as sender.
	Message Message
	// FromView is set when the tapped message was the answer to /view.
	FromView bool
}
