package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/Craig444444444/sped-agi/internal/scheduler"
)

const (
	streamWriteWait  = 10 * time.Second
	subscriberBuffer = 8
)

// FidelityStreamHandler broadcasts fidelity readings to websocket
// subscribers. It implements scheduler.ReadingSink; Publish never blocks,
// slow subscribers drop readings.
type FidelityStreamHandler struct {
	mu          sync.Mutex
	subscribers map[chan scheduler.FidelityReading]struct{}
	log         zerolog.Logger
}

// NewFidelityStreamHandler creates a new fidelity stream handler
func NewFidelityStreamHandler(log zerolog.Logger) *FidelityStreamHandler {
	return &FidelityStreamHandler{
		subscribers: make(map[chan scheduler.FidelityReading]struct{}),
		log:         log.With().Str("handler", "fidelity_stream").Logger(),
	}
}

// Publish implements scheduler.ReadingSink
func (h *FidelityStreamHandler) Publish(reading scheduler.FidelityReading) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subscribers {
		select {
		case ch <- reading:
		default:
			// Subscriber buffer is full, drop the reading for this client.
		}
	}
}

// SubscriberCount returns the number of connected subscribers
func (h *FidelityStreamHandler) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

func (h *FidelityStreamHandler) subscribe() chan scheduler.FidelityReading {
	ch := make(chan scheduler.FidelityReading, subscriberBuffer)
	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *FidelityStreamHandler) unsubscribe(ch chan scheduler.FidelityReading) {
	h.mu.Lock()
	delete(h.subscribers, ch)
	h.mu.Unlock()
}

// ServeHTTP handles GET /api/memory/fidelity/ws
func (h *FidelityStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream closed")

	ch := h.subscribe()
	defer h.unsubscribe(ch)

	h.log.Debug().Msg("Fidelity stream subscriber connected")

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case reading := <-ch:
			writeCtx, cancel := context.WithTimeout(ctx, streamWriteWait)
			err := wsjson.Write(writeCtx, conn, reading)
			cancel()
			if err != nil {
				h.log.Debug().Err(err).Msg("Fidelity stream subscriber disconnected")
				return
			}
		}
	}
}
