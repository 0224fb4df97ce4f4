// Package realtime implements the live delivery channel: a registry of
// connected websocket clients keyed by user identity, with best-effort
// push. Storage is authoritative; a recipient with no live session
// simply misses the push and reads the record later.
package realtime

import (
	"log"
	"sync"

	"github.com/insyd-labs/notification-service/internal/models"
)

// Message is one push frame sent to subscribed clients.
type Message struct {
	Event string              `json:"event"`
	Data  models.Notification `json:"data"`
}

// EventNotification is the frame type for a freshly created notification.
const EventNotification = "notification"

// Hub owns the subscription registry. All mutation paths (subscribe,
// publish, disconnect) are safe for concurrent use.
type Hub struct {
	mu      sync.RWMutex
	targets map[*Client]uint
	groups  map[uint]map[*Client]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		targets: make(map[*Client]uint),
		groups:  make(map[uint]map[*Client]struct{}),
	}
}

// Subscribe binds the client to a user identity. A client subscribes to
// exactly one user at a time; re-subscribing retargets it.
func (h *Hub) Subscribe(c *Client, userID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.detachLocked(c)
	h.targets[c] = userID
	group, ok := h.groups[userID]
	if !ok {
		group = make(map[*Client]struct{})
		h.groups[userID] = group
	}
	group[c] = struct{}{}
}

// Unregister removes the client from its subscription group and closes
// its outbound queue. Called on disconnect; no explicit unsubscribe
// exists.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	h.detachLocked(c)
	h.mu.Unlock()
	c.close()
}

// detachLocked removes the client from whatever group it belongs to.
// Caller holds h.mu.
func (h *Hub) detachLocked(c *Client) {
	userID, ok := h.targets[c]
	if !ok {
		return
	}
	delete(h.targets, c)
	if group, ok := h.groups[userID]; ok {
		delete(group, c)
		if len(group) == 0 {
			delete(h.groups, userID)
		}
	}
}

// Publish pushes the notification to every session currently subscribed
// for the user. Zero subscribers is not an error, and a session whose
// outbound queue is full is skipped rather than blocking the dispatch.
func (h *Hub) Publish(userID uint, notification models.Notification) {
	msg := Message{Event: EventNotification, Data: notification}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.groups[userID]))
	for c := range h.groups[userID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if !c.enqueue(msg) {
			log.Printf("realtime: dropping push to slow session for user %d", userID)
		}
	}
}

// SubscriberCount reports how many sessions are subscribed for a user.
func (h *Hub) SubscriberCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[userID])
}
