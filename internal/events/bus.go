package events

import (
	"sync"
	"time"
)

// Handler receives emitted events
type Handler func(Event)

// Bus fans events out to subscribers in subscription order. Dispatch is
// synchronous: Emit returns after every handler ran, which keeps event
// order aligned with orchestration order.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
	closed   bool
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for all subsequent events
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Emit stamps the event time and delivers it to every subscriber. Events
// emitted after Close are dropped.
func (b *Bus) Emit(e Event) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	b.mu.RLock()
	closed := b.closed
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	if closed {
		return
	}
	for _, h := range handlers {
		h(e)
	}
}

// Close shuts down the event bus
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}
