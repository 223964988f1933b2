package event

import (
	"log/slog"
	"sync"
)

type HandlerFunc func(raw any)

// Bus delivers named events to subscribers. Publish runs handlers on the
// caller's goroutine, in subscription order, so events raised from the
// input path are observed before the next tick.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]HandlerFunc
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string][]HandlerFunc),
	}
}

func (b *Bus) Subscribe(eventName string, handler HandlerFunc) {
	if handler == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish returns the number of handlers that ran to completion.
func (b *Bus) Publish(eventName string, evt any) int {
	if b == nil {
		return 0
	}
	b.mu.RLock()
	handlers := make([]HandlerFunc, len(b.handlers[eventName]))
	copy(handlers, b.handlers[eventName])
	b.mu.RUnlock()

	delivered := 0
	for _, handler := range handlers {
		if b.call(eventName, handler, evt) {
			delivered++
		}
	}
	return delivered
}

func (b *Bus) call(eventName string, h HandlerFunc, evt any) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Event handler panicked", "event", eventName, "panic", r)
			ok = false
		}
	}()
	h(evt)
	return true
}
