// Package feed pushes reservation events to connected websocket clients.
package feed

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/table-reservation/reservation"
	"github.com/yeremiapane/table-reservation/utils"
)

// Event types
const (
	EventBookingCreated    = "booking_created"
	EventRestaurantAdded   = "restaurant_added"
	EventRestaurantsLoaded = "restaurants_loaded"
	EventRestaurantsSorted = "restaurants_sorted"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds the connected feed clients.
type Hub struct {
	// WriteTimeout bounds each send. A client that does not keep up is
	// dropped instead of stalling the broadcaster.
	WriteTimeout time.Duration

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		WriteTimeout: 5 * time.Second,
		clients:      make(map[*websocket.Conn]struct{}),
	}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
}

// Unregister drops conn and closes it.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) BroadcastBooking(b reservation.Booking) {
	h.Broadcast(Message{Event: EventBookingCreated, Data: b})
}

// Broadcast sends msg to every client. Clients that fail a write are dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Errorf("Error marshaling feed message: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(h.WriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Errorf("Error sending feed message: %v", err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
