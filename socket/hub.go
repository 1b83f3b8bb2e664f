package socket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/02priyeshraj/Restaurant_Ordering_Backend/models"
)

// envelope is the wire shape of every outbound dashboard message.
type envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub tracks connected dashboard sessions and their room memberships, and
// fans lifecycle events out to them. Membership is purely in-memory: a
// reconnect is a brand-new session that must re-join its rooms.
//
// Delivery is best-effort and at most once per connected session per event.
// A send to a session whose buffer is full is dropped and logged, never
// retried; dashboards reconcile with an on-demand fetch.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	rooms   map[Room]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		rooms:   make(map[Room]map[*Client]struct{}),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	for room, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	close(c.send)
}

// Join adds a session to a room. A session may belong to several rooms. No
// authorization happens here; who may join which room is enforced upstream.
func (h *Hub) Join(c *Client, room Room) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	log.Printf("socket: client %s joined room %s", c.id, room)
}

// Broadcast delivers one event to every session in the given rooms. A session
// in several of the rooms receives the event once.
func (h *Hub) Broadcast(rooms []Room, event string, data interface{}) {
	payload, err := json.Marshal(envelope{Event: event, Data: data})
	if err != nil {
		log.Printf("socket: marshal %s event: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := make(map[*Client]struct{})
	for _, room := range rooms {
		for c := range h.rooms[room] {
			if _, done := delivered[c]; done {
				continue
			}
			delivered[c] = struct{}{}
			select {
			case c.send <- payload:
			default:
				log.Printf("socket: dropped %s event for slow client %s", event, c.id)
			}
		}
	}
}

// NewOrder implements services.Broadcaster.
func (h *Hub) NewOrder(order *models.Order) {
	h.Broadcast(newOrderRooms(order), EventNewOrder, order)
}

// OrderStatusUpdate implements services.Broadcaster.
func (h *Hub) OrderStatusUpdate(order *models.Order) {
	h.Broadcast(statusUpdateRooms(order), EventOrderStatusUpdate, order)
}
