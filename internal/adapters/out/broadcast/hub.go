// Package broadcast fans order status events out to in-process subscribers.
//
// Delivery is best effort: events are not stored, a subscriber only sees
// events published while it is subscribed, and a subscriber whose buffer is
// full misses the event rather than slowing the publisher down.
package broadcast

import (
	"context"
	"sync"
	"sync/atomic"

	"foodify/internal/core/ports"
)

// Hub is an in-process ports.StatusPublisher. The zero value is not usable; call NewHub.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[*Subscription]struct{})}
}

// Subscription receives every event published after Subscribe returned.
type Subscription struct {
	hub     *Hub
	events  chan ports.OrderStatusEvent
	dropped atomic.Uint64
	once    sync.Once
}

// Subscribe registers a subscriber with room for buffer undelivered events.
// A buffer below 1 is raised to 1.
func (h *Hub) Subscribe(buffer int) *Subscription {
	if buffer < 1 {
		buffer = 1
	}

	s := &Subscription{
		hub:    h,
		events: make(chan ports.OrderStatusEvent, buffer),
	}

	h.mu.Lock()
	h.subscribers[s] = struct{}{}
	h.mu.Unlock()

	return s
}

// Publish hands event to every current subscriber without blocking. It never fails.
func (h *Hub) Publish(_ context.Context, event ports.OrderStatusEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.subscribers {
		select {
		case s.events <- event:
		default:
			s.dropped.Add(1)
		}
	}

	return nil
}

// Subscribers reports how many subscriptions are open.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Events is closed once the subscription is closed.
func (s *Subscription) Events() <-chan ports.OrderStatusEvent {
	return s.events
}

// Dropped counts events lost because the buffer was full.
func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

// Close unsubscribes. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subscribers, s)
		s.hub.mu.Unlock()
		close(s.events)
	})
}
