package notify

import (
	"context"
	"sync"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

const defaultBuffer = 16

// Hub fans events out to in-process subscribers, e.g. open SSE streams.
type Hub struct {
	mu      sync.RWMutex
	subs    map[domain.Recipient]map[*Subscription]struct{}
	buffer  int
	dropped counter
	logger  logx.Logger
}

// NewHub creates a Hub. Each subscriber gets a channel of the given buffer size.
func NewHub(buffer int, dropped counter, logger logx.Logger) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Hub{
		subs:    make(map[domain.Recipient]map[*Subscription]struct{}),
		buffer:  buffer,
		dropped: dropped,
		logger:  logger,
	}
}

// Subscription is a single listener registered with a Hub.
type Subscription struct {
	hub  *Hub
	to   domain.Recipient
	ch   chan domain.Event
	once sync.Once
}

// Subscribe registers a listener for events addressed to the recipient.
func (h *Hub) Subscribe(to domain.Recipient) *Subscription {
	s := &Subscription{hub: h, to: to, ch: make(chan domain.Event, h.buffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[to]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subs[to] = set
	}
	set[s] = struct{}{}
	return s
}

// Events returns the delivery channel. It is closed by Close.
func (s *Subscription) Events() <-chan domain.Event { return s.ch }

// Close unregisters the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		h := s.hub
		h.mu.Lock()
		defer h.mu.Unlock()
		if set, ok := h.subs[s.to]; ok {
			delete(set, s)
			if len(set) == 0 {
				delete(h.subs, s.to)
			}
		}
		close(s.ch)
	})
}

// Subscribers returns the number of live subscriptions for a recipient.
func (h *Hub) Subscribers(to domain.Recipient) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[to])
}

// Notify delivers ev to every subscriber of to. A full subscriber buffer drops the event.
func (h *Hub) Notify(_ context.Context, to domain.Recipient, ev domain.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.subs[to] {
		select {
		case s.ch <- ev:
		default:
			if h.dropped != nil {
				h.dropped.Inc()
			}
			h.logger.Warn("notify dropped, subscriber is slow",
				logx.String("role", string(to.Role)),
				logx.Int64("recipient_id", to.ID),
				logx.String("type", string(ev.Type)),
			)
		}
	}
}

var _ Sink = (*Hub)(nil)
