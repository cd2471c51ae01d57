package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/astralisgame/astralis-backend/internal/platform/logger"
)

// Client is one long-lived event-stream subscriber. Frames are marshaled as
// plain `data:` lines, so whatever is pushed onto Outbound is the wire
// contract (the arena sends flat {type, ...} objects).
type Client struct {
	ID       uuid.UUID
	Channels map[string]bool
	Outbound chan any
	done     chan struct{}
}

// Hub fans frames out to subscribers keyed by channel name. Broadcasting is
// best-effort: a slow or dead subscriber gets dropped frames, never blocks
// the publisher.
type Hub struct {
	mu            sync.RWMutex
	log           *logger.Logger
	subscriptions map[string]map[*Client]bool
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:           log.With("component", "SSEHub"),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

func (h *Hub) NewClient() *Client {
	return &Client{
		ID:       uuid.New(),
		Channels: make(map[string]bool),
		Outbound: make(chan any, 16),
		done:     make(chan struct{}),
	}
}

func (h *Hub) Subscribe(client *Client, channel string) {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	client.Channels[channel] = true
	clients, exists := h.subscriptions[channel]
	if !exists {
		clients = make(map[*Client]bool)
		h.subscriptions[channel] = clients
	}
	clients[client] = true

	h.log.Debug("SSE client subscribed", "clientID", client.ID, "channel", channel)
}

// RemoveClient unsubscribes the client from every channel. Must be called on
// connection close so dead handles do not leak.
func (h *Hub) RemoveClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range client.Channels {
		if subMap, ok := h.subscriptions[ch]; ok {
			delete(subMap, client)
			if len(subMap) == 0 {
				delete(h.subscriptions, ch)
			}
		}
	}
	client.Channels = make(map[string]bool)
	h.log.Debug("SSE client unsubscribed from all channels", "clientID", client.ID)
}

// Broadcast pushes a frame to every subscriber of the channel.
func (h *Hub) Broadcast(channel string, frame any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.subscriptions[channel]
	if !ok {
		return
	}
	for c := range clients {
		select {
		case c.Outbound <- frame:
		default:
			h.log.Warn("Dropping SSE frame; outbound buffer full", "clientID", c.ID, "channel", channel)
		}
	}
}

// SubscriberCount reports live subscribers on a channel.
func (h *Hub) SubscriberCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscriptions[channel])
}

// Serve pumps the client's outbound frames onto an event-stream response
// until the request context ends or the client is closed.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, client *Client) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	flusher.Flush()

	ctx := r.Context()
	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			h.log.Debug("SSE client context done", "clientID", client.ID)
			return
		case <-client.done:
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case frame := <-client.Outbound:
			payload, err := json.Marshal(frame)
			if err != nil {
				h.log.Warn("Failed to marshal SSE frame", "error", err)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

// CloseClient tears the client down and detaches it from the hub.
func (h *Hub) CloseClient(client *Client) {
	close(client.done)
	h.RemoveClient(client)
}
