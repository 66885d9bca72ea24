package ws

import (
	"context"
	"sync"

	"ayunova/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type binding struct {
	client *Client
	userID uuid.UUID
}

// Hub tracks live connections per user. A connection belongs to exactly one
// identity at a time; anonymous connections are bound to uuid.Nil.
type Hub struct {
	clients    map[*Client]uuid.UUID
	users      map[uuid.UUID]map[*Client]struct{}
	ended      chan uuid.UUID
	register   chan binding
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]uuid.UUID),
		users:      make(map[uuid.UUID]map[*Client]struct{}),
		ended:      make(chan uuid.UUID, 1024),
		register:   make(chan binding, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves the hub until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for c := range h.clients {
				c.close()
			}
			h.clients = make(map[*Client]uuid.UUID)
			h.users = make(map[uuid.UUID]map[*Client]struct{})
			h.mutex.Unlock()
			return

		case b := <-h.register:
			if b.client == nil {
				continue
			}
			h.mutex.Lock()
			h.bindLocked(b.client, b.userID)
			total := len(h.clients)
			h.mutex.Unlock()
			h.logger.Debug("ws client bound",
				zap.String("user_id", b.userID.String()),
				zap.Int("total_clients", total),
			)

		case c := <-h.unregister:
			if c == nil {
				continue
			}
			total := h.drop(c)
			h.logger.Debug("ws client disconnected", zap.Int("total_clients", total))

		case userID := <-h.ended:
			h.endSession(userID)
		}
	}
}

func (h *Hub) drop(c *Client) int {
	h.mutex.Lock()
	if _, ok := h.clients[c]; ok {
		h.detachLocked(c)
		delete(h.clients, c)
	}
	total := len(h.clients)
	h.mutex.Unlock()
	c.close()
	return total
}

// endSession rebinds the connections of userID as anonymous and hands each
// of them the anonymous identity.
func (h *Hub) endSession(userID uuid.UUID) {
	h.mutex.Lock()
	moved := make([]*Client, 0, len(h.users[userID]))
	for c := range h.users[userID] {
		moved = append(moved, c)
	}
	for _, c := range moved {
		h.bindLocked(c, uuid.Nil)
	}
	h.mutex.Unlock()

	for _, c := range moved {
		c.follow(session.Anonymous())
	}
	h.logger.Debug("ws session ended",
		zap.String("user_id", userID.String()),
		zap.Int("connections", len(moved)),
	)
}

func (h *Hub) bindLocked(c *Client, userID uuid.UUID) {
	h.detachLocked(c)
	h.clients[c] = userID
	set, ok := h.users[userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.users[userID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) detachLocked(c *Client) {
	prev, ok := h.clients[c]
	if !ok {
		return
	}
	if set, ok := h.users[prev]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.users, prev)
		}
	}
}

// Register binds client to userID, moving it if it was bound before.
func (h *Hub) Register(client *Client, userID uuid.UUID) {
	if h == nil {
		return
	}
	select {
	case h.register <- binding{client: client, userID: userID}:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// UserClientCount is the number of connections bound to userID.
func (h *Hub) UserClientCount(userID uuid.UUID) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.users[userID])
}
