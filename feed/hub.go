// Package feed pushes order events to connected admin dashboards over websockets.
package feed

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/XTHN9RF/Foodify-API/models"
	"github.com/gorilla/websocket"
)

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"

	writeWait = 10 * time.Second

	// sendBuffer is how many events a dashboard may fall behind before it is dropped.
	sendBuffer = 32
)

type Event struct {
	Type  string       `json:"type"`
	Order models.Order `json:"order"`
}

// client is one dashboard. Only its writePump writes to conn.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks open connections. Broadcast only queues events, so a slow
// dashboard never delays the caller; one whose queue is full is dropped.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*client]struct{}),
	}
}

// ServeWS upgrades the request and blocks until the peer goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	// The server's read timeout carries over to the hijacked connection.
	_ = conn.SetReadDeadline(time.Time{})

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.add(c)
	defer h.remove(c)
	go c.writePump()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Clients returns the number of open connections.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("⚠️ feed: marshal %s: %v", ev.Type, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			log.Printf("⚠️ feed: dropping slow client")
			h.drop(c)
		}
	}
}

// OrderPlaced and OrderStatusChanged let the hub serve as the order notifier.
func (h *Hub) OrderPlaced(order models.Order) {
	h.Broadcast(Event{Type: EventOrderPlaced, Order: order})
}

func (h *Hub) OrderStatusChanged(order models.Order) {
	h.Broadcast(Event{Type: EventOrderStatusChanged, Order: order})
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drop(c)
}

// drop unregisters c and closes its queue, which ends its writePump.
// Callers hold h.mu.
func (h *Hub) drop(c *client) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (c *client) writePump() {
	defer c.conn.Close()
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			// Closing the connection ends ServeWS's read loop, which unregisters.
			return
		}
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
