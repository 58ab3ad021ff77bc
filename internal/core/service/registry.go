package service

import (
	"foodbot/internal/core/domain/order"
	"sync"

	"github.com/rs/zerolog/log"
)

// ChatRegistry owns one order store per chat. Stores are created on first use and kept for the
// lifetime of the process. Each chat has its own lock, so commands in different chats never wait on
// each other.
type ChatRegistry struct {
	mutex *sync.Mutex
	chats map[int64]*chatOrders
}

type chatOrders struct {
	mutex sync.Mutex
	store *order.Store
}

func NewChatRegistry() *ChatRegistry {
	return &ChatRegistry{
		mutex: &sync.Mutex{},
		chats: make(map[int64]*chatOrders),
	}
}

// GetOrCreate returns the chat's store, creating an empty one if the chat is new. Callers that mutate
// the store must go through Do.
func (r *ChatRegistry) GetOrCreate(chatID int64) *order.Store {
	return r.entry(chatID).store
}

// Do runs fn with the chat's store while holding the chat's lock.
func (r *ChatRegistry) Do(chatID int64, fn func(store *order.Store)) {
	e := r.entry(chatID)

	e.mutex.Lock()
	defer e.mutex.Unlock()

	fn(e.store)
}

// Len returns the number of chats with a store.
func (r *ChatRegistry) Len() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return len(r.chats)
}

func (r *ChatRegistry) entry(chatID int64) *chatOrders {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	e, ok := r.chats[chatID]
	if !ok {
		log.Debug().Int64("chatId", chatID).Msg("creating order store for chat")
		e = &chatOrders{store: order.NewStore()}
		r.chats[chatID] = e
	}

	return e
}
