package service

import (
	"foodbot/internal/core/domain/order"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestChatRegistry_GetOrCreate(t *testing.T) {
	r := NewChatRegistry()

	first := r.GetOrCreate(1)
	again := r.GetOrCreate(1)
	other := r.GetOrCreate(2)

	assert.Same(t, first, again)
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, r.Len())
}

func TestChatRegistry_ConcurrentFirstUse(t *testing.T) {
	r := NewChatRegistry()

	const workers = 32
	stores := make([]*order.Store, workers)

	var g errgroup.Group
	for i := range workers {
		g.Go(func() error {
			stores[i] = r.GetOrCreate(42)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, s := range stores {
		assert.Same(t, stores[0], s)
	}
	assert.Equal(t, 1, r.Len())
}

func TestChatRegistry_DoSerializesPerChat(t *testing.T) {
	r := NewChatRegistry()

	const workers = 50
	var g errgroup.Group
	for i := range workers {
		g.Go(func() error {
			var err error
			r.Do(7, func(store *order.Store) {
				// read-modify-write across the store; unsafe without the chat lock
				n := len(store.Names())
				_, err = store.StartOrder(string(rune('a'+n%26))+string(rune('a'+n/26)), order.Participant{ID: int64(i)})
			})
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Len(t, r.GetOrCreate(7).Names(), workers)
}

func TestChatRegistry_ChatsDoNotBlockEachOther(t *testing.T) {
	r := NewChatRegistry()

	entered := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.Do(1, func(_ *order.Store) {
			close(entered)
			<-release
		})
	}()

	<-entered

	done := make(chan struct{})
	go func() {
		r.Do(2, func(_ *order.Store) {})
		close(done)
	}()

	<-done
	close(release)
	wg.Wait()
}
