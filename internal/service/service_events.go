// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync"

	"github.com/MKhiriev/go-readsync/internal/logger"
	"github.com/MKhiriev/go-readsync/models"
)

// eventBus delivers coordinator events to registered handlers. Handlers are
// invoked synchronously in registration order; a panicking handler is logged
// and never prevents delivery to the remaining handlers.
type eventBus struct {
	logger *logger.Logger

	mu       sync.Mutex
	nextID   int
	order    []int
	handlers map[int]func(models.Event)
}

func newEventBus(logger *logger.Logger) *eventBus {
	return &eventBus{
		logger:   logger,
		handlers: make(map[int]func(models.Event)),
	}
}

// subscribe registers handler and returns its unsubscribe function.
// Unsubscribing twice is a no-op.
func (b *eventBus) subscribe(handler func(models.Event)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.order = append(b.order, id)
	b.handlers[id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
		for i, oid := range b.order {
			if oid == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// publish delivers event to every registered handler.
func (b *eventBus) publish(event models.Event) {
	b.mu.Lock()
	handlers := make([]func(models.Event), 0, len(b.handlers))
	for _, id := range b.order {
		if h, ok := b.handlers[id]; ok {
			handlers = append(handlers, h)
		}
	}
	b.mu.Unlock()

	for _, handler := range handlers {
		b.dispatch(handler, event)
	}
}

func (b *eventBus) dispatch(handler func(models.Event), event models.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Any("panic", r).
				Str("event", string(event.Kind)).
				Msg("event handler panicked")
		}
	}()

	handler(event)
}
