package liveboard

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"autoshop/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

// BoardEvent is pushed to every connected staff member of a tenant
// when something changes on the day board.
type BoardEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

const (
	EventAppointmentCreated = "appointment_created"
	EventAppointmentUpdated = "appointment_updated"
)

type connection struct {
	userID   int64
	tenantID int64
	conn     *websocket.Conn
	send     chan []byte
}

// Hub fans board events out to the staff connections of each tenant.
type Hub struct {
	mu          sync.RWMutex
	connections map[*connection]struct{}
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[*connection]struct{}),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
}

func (h *Hub) broadcast(tenantID int64, event *BoardEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		if c.tenantID != tenantID {
			continue
		}
		select {
		case c.send <- data:
		default:
			// Client too slow — skip
		}
	}
}

// NotifyAppointmentCreated implements the notifier hook the booking
// and appointment services call after a successful write.
func (h *Hub) NotifyAppointmentCreated(tenantID int64, appt *domain.Appointment) {
	h.broadcast(tenantID, &BoardEvent{Type: EventAppointmentCreated, Payload: appt})
}

func (h *Hub) NotifyAppointmentUpdated(tenantID int64, appt *domain.Appointment) {
	h.broadcast(tenantID, &BoardEvent{Type: EventAppointmentUpdated, Payload: appt})
}

// ServeWS registers the connection and blocks until it drops.
func (h *Hub) ServeWS(conn *websocket.Conn, userID, tenantID int64) {
	c := &connection{
		userID:   userID,
		tenantID: tenantID,
		conn:     conn,
		send:     make(chan []byte, 64),
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// The board is push-only; inbound frames only keep the
	// connection alive.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
