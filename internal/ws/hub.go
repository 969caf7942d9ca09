package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/wildtour/wildtour-backend/internal/favorites"
	"github.com/wildtour/wildtour-backend/pkg/logger"
)

// StateEnvelope wraps a favorites state pushed to clients.
type StateEnvelope struct {
	Type  string          `json:"type"` // always "favorites_state"
	State favorites.State `json:"state"`
}

// Hub fans favorites state changes out to each user's connected sockets.
// It holds one store subscription per user with at least one open
// connection; the subscription is dropped when the last socket closes.
type Hub struct {
	manager *favorites.Manager

	// UserID -> open sessions (multi-device support)
	clients map[uint][]*Client

	// UserID -> store unsubscribe
	unsubs map[uint]func()

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex
}

func NewHub(manager *favorites.Manager) *Hub {
	return &Hub{
		manager:    manager,
		clients:    make(map[uint][]*Client),
		unsubs:     make(map[uint]func()),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
	}
}

// Run processes registrations. Call once from the composition root.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.UserID] = append(h.clients[client.UserID], client)
	first := len(h.clients[client.UserID]) == 1
	h.mu.Unlock()

	logger.Info("Favorites socket connected", map[string]interface{}{
		"user_id":        client.UserID,
		"total_sessions": h.sessionCount(client.UserID),
	})

	store, err := h.manager.StoreFor(context.Background(), client.UserID)
	if err != nil {
		logger.Error("Failed to hydrate store for socket", err, map[string]interface{}{
			"user_id": client.UserID,
		})
		// Keep the socket open; the store is usable with bootstrap state.
	}

	if first {
		userID := client.UserID
		unsub := store.Subscribe(func(state favorites.State) {
			h.push(userID, state)
		})
		h.mu.Lock()
		h.unsubs[userID] = unsub
		h.mu.Unlock()
	}

	// Initial snapshot so the client renders without waiting for a mutation.
	if payload, err := marshalState(store.State()); err == nil {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	clientList, ok := h.clients[client.UserID]
	if !ok {
		h.mu.Unlock()
		return
	}

	newList := make([]*Client, 0, len(clientList))
	for _, c := range clientList {
		if c != client {
			newList = append(newList, c)
		}
	}

	if len(newList) == 0 {
		delete(h.clients, client.UserID)
		if unsub, ok := h.unsubs[client.UserID]; ok {
			unsub()
			delete(h.unsubs, client.UserID)
		}
	} else {
		h.clients[client.UserID] = newList
	}
	close(client.Send)
	h.mu.Unlock()

	logger.Info("Favorites socket disconnected", map[string]interface{}{
		"user_id": client.UserID,
	})
}

// push delivers a state snapshot to every open session of one user.
// Slow consumers are skipped; they catch up on the next change.
func (h *Hub) push(userID uint, state favorites.State) {
	payload, err := marshalState(state)
	if err != nil {
		logger.Error("Failed to encode favorites state", err, map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients[userID] {
		select {
		case client.Send <- payload:
		default:
			logger.Warn("Dropping favorites push for slow socket", map[string]interface{}{
				"user_id": userID,
			})
		}
	}
}

func (h *Hub) sessionCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func marshalState(state favorites.State) ([]byte, error) {
	return json.Marshal(StateEnvelope{
		Type:  "favorites_state",
		State: state,
	})
}
