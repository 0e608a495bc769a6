package events

import "sync"

// Handler receives a published event payload.
type Handler func(event string, payload any)

// Bus is an explicit publish/subscribe registration point. Subscribers are
// registered and removed by token; there is no package-level mutable state.
type Bus interface {
	Subscribe(event string, h Handler) (token int)
	Unsubscribe(token int)
	Publish(event string, payload any)
}

type subscription struct {
	event   string
	handler Handler
}

// MemoryBus is the in-process Bus used by the API composition root.
// Publish runs handlers synchronously on the caller's goroutine; handlers
// must not block.
type MemoryBus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]subscription
}

var _ Bus = (*MemoryBus)(nil)

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[int]subscription)}
}

func (b *MemoryBus) Subscribe(event string, h Handler) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.subs[b.nextID] = subscription{event: event, handler: h}
	return b.nextID
}

func (b *MemoryBus) Unsubscribe(token int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, token)
}

func (b *MemoryBus) Publish(event string, payload any) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs))
	for _, s := range b.subs {
		if s.event == event || s.event == "*" {
			handlers = append(handlers, s.handler)
		}
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event, payload)
	}
}
