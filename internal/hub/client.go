package hub

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tusharpaik123/RealTimeCollaborativeDrawingCanvas/internal/session"
)

const (
	// Outbound frames queue here; a full queue means a consumer too slow to
	// keep up and the frame is dropped, the next resync heals it.
	sendQueueSize = 64

	writeWait = 10 * time.Second
)

// client is one websocket connection. room and participant are nil until the
// first join and are only touched from the connection's read loop, so they
// need no locking of their own.
type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	room        *session.Room
	participant *session.Participant
}

// enqueue hands a frame to the writer goroutine without blocking the caller.
func (c *client) enqueue(data []byte) {
	select {
	case c.send <- data:
	default:
		log.Printf("[HUB] send queue full for %s, dropping frame", c.id)
	}
}

// sendEvent marshals and queues a single event for this client.
func (c *client) sendEvent(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[HUB] failed to marshal %s event: %v", ev.Type, err)
		return
	}
	c.enqueue(data)
}

// writeLoop drains the send queue onto the wire. It exits when the queue is
// closed, which readLoop does during teardown.
func (c *client) writeLoop() {
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("[HUB] write to %s failed: %v", c.id, err)
			return
		}
	}
}

// readLoop decodes inbound frames and dispatches them until the connection
// drops. Malformed frames are logged and skipped, never fatal to the session.
func (c *client) readLoop(h *Hub) {
	defer h.disconnect(c)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[HUB] read from %s failed: %v", c.id, err)
			}
			return
		}
		var in Intent
		if err := json.Unmarshal(data, &in); err != nil {
			log.Printf("[HUB] dropping malformed frame from %s: %v", c.id, err)
			continue
		}
		h.dispatch(c, in)
	}
}
