package service

import (
	"fmt"
	"foodbot/internal/core/domain"
	"foodbot/internal/core/domain/order"

	"github.com/rs/zerolog/log"
)

type Resolver struct {
	chats *ChatRegistry
}

func NewResolver(chats *ChatRegistry) *Resolver {
	return &Resolver{chats: chats}
}

func (r *Resolver) Execute(req domain.OrderRequest) (domain.OrderResult, error) {
	var res domain.OrderResult
	var err error

	r.chats.Do(req.ChatID, func(store *order.Store) {
		res, err = apply(store, req)
	})

	log.Debug().
		Int64("chatId", req.ChatID).
		Int64("userId", req.User.ID).
		Str("command", string(req.Command)).
		Str("requested", req.OrderName).
		Str("resolved", res.OrderName).
		AnErr("result", err).
		Msg("executed order command")

	return res, err
}

func (r *Resolver) OrderNames(chatID int64) []string {
	var names []string

	r.chats.Do(chatID, func(store *order.Store) {
		names = store.Names()
	})

	return names
}

func apply(store *order.Store, req domain.OrderRequest) (domain.OrderResult, error) {
	switch req.Command {
	case domain.StartOrder:
		o, err := store.StartOrder(req.OrderName, req.User)
		if err != nil {
			return domain.OrderResult{OrderName: req.OrderName}, err
		}

		return domain.OrderResult{OrderName: o.Name(), Snapshot: o.Snapshot()}, nil
	case domain.ViewOrders:
		return domain.OrderResult{Summaries: store.ListOrders(), Orders: store.Snapshots()}, nil
	case domain.PlaceItem, domain.CancelItem, domain.EndOrder:
	default:
		return domain.OrderResult{}, fmt.Errorf("%w: %s", domain.ErrUnknownCommand, req.Command)
	}

	o, err := Resolve(store, req.OrderName)
	if err != nil {
		return domain.OrderResult{OrderName: req.OrderName}, err
	}

	res := domain.OrderResult{OrderName: o.Name()}

	switch req.Command {
	case domain.PlaceItem:
		res.Previous, err = o.SetItem(req.User, req.Item)
	case domain.CancelItem:
		res.Previous, err = o.RemoveItem(req.User.ID)
	case domain.EndOrder:
		err = o.Close()
	}

	res.Snapshot = o.Snapshot()

	return res, err
}

// Resolve picks the order a command applies to. An explicit name must match an existing order, which
// may have ended. Without a name the single active order is used; with none or several active the
// command fails, and ambiguity is never settled by guessing.
func Resolve(store *order.Store, name string) (*order.Order, error) {
	if name != "" {
		o, ok := store.Find(name)
		if !ok {
			return nil, order.ErrOrderNotFound
		}

		return o, nil
	}

	active := store.ActiveOrders()

	switch len(active) {
	case 0:
		return nil, order.ErrNoActiveOrder
	case 1:
		return active[0], nil
	default:
		candidates := make([]string, len(active))
		for i, o := range active {
			candidates[i] = o.Name()
		}

		return nil, order.NewAmbiguousOrderError(candidates)
	}
}
