// Package hub fans live recorder updates out to websocket subscribers.
package hub

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Message types.
const (
	TypeSession  = "session"
	TypeBoxScore = "boxscore"
	TypeAlert    = "alert"
)

// Message is one update pushed to the subscribers of a game.
type Message struct {
	Type      string    `json:"type"`
	Game      int64     `json:"game"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

type Hub struct {
	clients   map[*Client]struct{}
	clientsMu sync.RWMutex

	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	logger zerolog.Logger
}

func New() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     log.With().Str("component", "live_hub").Logger(),
	}
}

// Run serves register, unregister and broadcast requests until ctx is done, then closes
// every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case c := <-h.register:
			h.clientsMu.Lock()
			h.clients[c] = struct{}{}
			total := len(h.clients)
			h.clientsMu.Unlock()
			h.logger.Debug().Str("client_id", c.ID).Int64("game", c.Game).Int("clients", total).Msg("Client connected")
		case c := <-h.unregister:
			h.remove(c)
		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues msg for the game's subscribers. A full queue drops the message.
func (h *Hub) Broadcast(msg Message) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn().Int64("game", msg.Game).Str("type", msg.Type).Msg("Broadcast buffer full, dropping message")
	}
}

// Publish is Broadcast for a typed payload.
func (h *Hub) Publish(game int64, typ string, payload any) {
	h.Broadcast(Message{Type: typ, Game: game, Payload: payload})
}

func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) deliver(msg Message) {
	h.clientsMu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		if c.Game == msg.Game {
			targets = append(targets, c)
		}
	}
	h.clientsMu.RUnlock()

	for _, c := range targets {
		if !c.trySend(msg) {
			h.logger.Warn().Str("client_id", c.ID).Msg("Client buffer full, disconnecting")
			h.remove(c)
		}
	}
}

func (h *Hub) remove(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) shutdown() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Serve upgrades the request and subscribes the connection to game. The pumps run on
// ctx, not the request context, so they outlive the handler.
func (h *Hub) Serve(ctx context.Context, w http.ResponseWriter, r *http.Request, game int64) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Websocket upgrade failed")
		return
	}

	c := NewClient(uuid.NewString(), game, conn, h)
	h.Register(c)

	go c.WritePump(ctx)
	go c.ReadPump(ctx)
}
