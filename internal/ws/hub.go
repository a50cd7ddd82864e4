// Package ws fans committed mutations out to dashboard clients over
// websockets so the UI reflects state without polling.
package ws

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

// Event is the wire shape of a change notification.
type Event struct {
	Type      string    `json:"type"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub manages connected clients and broadcasts events to all of them.
type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	logger     zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run is the hub's main loop; call it once in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.logger.Debug().Int("clients", len(h.clients)).Msg("ws client registered")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.logger.Debug().Int("clients", len(h.clients)).Msg("ws client unregistered")

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				h.logger.Error().Err(err).Str("event", event.Type).Msg("marshal event")
				continue
			}
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					// Slow consumer; drop it rather than block the hub.
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Publish implements service.Notifier. It never blocks the mutating request
// path: when the buffer is full the event is dropped and logged.
func (h *Hub) Publish(event string, payload any) {
	e := Event{Type: event, Payload: payload, Timestamp: time.Now().UTC()}
	select {
	case h.broadcast <- e:
	default:
		h.logger.Warn().Str("event", event).Msg("event dropped, broadcast buffer full")
	}
}
