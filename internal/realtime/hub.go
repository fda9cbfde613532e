package realtime

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/shift-scheduler/internal/events"
)

// Hub fans change events out to connected push clients. Delivery is
// at-most-effort: a slow client drops events rather than blocking the
// publisher.
type Hub struct {
	mu      sync.Mutex
	clients map[chan events.Event]struct{}
	logger  *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[chan events.Event]struct{}),
		logger:  logger,
	}
}

// HandleEvent implements events.EventHandler; register it with
// Dispatcher.SubscribeAll and as the Redis bridge delivery sink.
func (h *Hub) HandleEvent(_ context.Context, event events.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- event:
		default:
			h.logger.Debug("dropping event for slow client", zap.String("type", string(event.Type)))
		}
	}
	return nil
}

// Register attaches a new client and returns its event channel plus a
// detach func. The channel is buffered so short bursts survive.
func (h *Hub) Register() (<-chan events.Event, func()) {
	ch := make(chan events.Event, 16)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()

	detach := func() {
		h.mu.Lock()
		delete(h.clients, ch)
		h.mu.Unlock()
	}
	return ch, detach
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
