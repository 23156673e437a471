package hub

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tusharpaik123/RealTimeCollaborativeDrawingCanvas/internal/config"
	"github.com/tusharpaik123/RealTimeCollaborativeDrawingCanvas/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Hub is the synchronization router: the only component that talks to the
// transport. It translates inbound intents into registry and ledger calls and
// decides, per event type, whether the result goes out as a narrow echo to the
// room or as a full authoritative resync to everyone in it.
//
// One mutex serializes all dispatch, so every event runs to completion before
// the next begins. Outbound sends are fire-and-forget enqueues and never block
// inside the lock.
type Hub struct {
	cfg      config.Config
	registry *session.Registry

	mu      sync.Mutex
	clients map[*client]struct{}
	members map[string]map[*client]struct{}
}

func New(cfg config.Config, registry *session.Registry) *Hub {
	return &Hub{
		cfg:      cfg,
		registry: registry,
		clients:  make(map[*client]struct{}),
		members:  make(map[string]map[*client]struct{}),
	}
}

// ServeWS upgrades an HTTP request to a websocket connection and pumps it
// until it drops. Reconnection is the client's business; the server treats a
// reconnect as a brand-new connection that must join again.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[HUB] upgrade failed: %v", err)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendQueueSize),
	}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	log.Printf("[HUB] connection %s opened from %s", c.id, conn.RemoteAddr())

	go c.writeLoop()
	c.readLoop(h)
}

// dispatch routes one inbound intent. Every intent except join requires the
// connection to have joined a room first; anything else is logged and dropped.
// Nothing in here may fail hard: one participant's bad traffic must never
// take down the room.
func (h *Hub) dispatch(c *client, in Intent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if in.Type != IntentJoin && c.room == nil {
		log.Printf("[HUB] dropping %q from %s: not joined", in.Type, c.id)
		return
	}

	switch in.Type {
	case IntentJoin:
		h.handleJoin(c, in)
	case IntentStrokeStart:
		h.handleStrokeStart(c, in)
	case IntentStrokeExtend:
		h.handleStrokeExtend(c, in)
	case IntentStrokeEnd:
		h.handleStrokeEnd(c, in)
	case IntentUndo:
		h.handleUndo(c)
	case IntentRedo:
		h.handleRedo(c)
	case IntentClear:
		h.handleClear(c)
	case IntentPresence:
		h.handlePresence(c, in)
	default:
		log.Printf("[HUB] dropping unknown intent %q from %s", in.Type, c.id)
	}
}

// handleJoin moves the connection into a room, leaving any prior room first;
// a connection is in at most one room. The joiner gets the full authoritative
// snapshot, the rest of the room gets a narrow participant-joined.
func (h *Hub) handleJoin(c *client, in Intent) {
	name := h.sanitizeName(in.Name)
	roomID := h.sanitizeRoomID(in.Room)

	if c.room != nil {
		h.leaveRoom(c)
	}

	room, p := h.registry.Join(roomID, c.id, name)
	c.room = room
	c.participant = p
	if h.members[roomID] == nil {
		h.members[roomID] = make(map[*client]struct{})
	}
	h.members[roomID][c] = struct{}{}

	sn := room.Snapshot()
	c.sendEvent(Event{
		Type:         EventSnapshot,
		Participant:  p,
		Operations:   sn.Operations,
		Participants: sn.Participants,
	})
	h.broadcast(roomID, c, Event{Type: EventParticipantJoined, Participant: p})
}

func (h *Hub) handleStrokeStart(c *client, in Intent) {
	if !in.Style.Kind.Valid() {
		log.Printf("[HUB] dropping stroke_start from %s: unknown kind %q", c.id, in.Style.Kind)
		return
	}
	id := c.room.OpenOperation(c.id, c.participant.DisplayName, in.Style, in.X, in.Y)

	c.sendEvent(Event{Type: EventStrokeAccepted, OperationID: id})
	style := in.Style
	h.broadcast(c.room.ID, c, Event{
		Type:        EventStrokeStarted,
		OperationID: id,
		AuthorID:    c.id,
		AuthorName:  c.participant.DisplayName,
		Style:       &style,
		X:           in.X,
		Y:           in.Y,
	})
}

func (h *Hub) handleStrokeExtend(c *client, in Intent) {
	if in.OperationID == "" || len(in.Points) == 0 {
		log.Printf("[HUB] dropping stroke_extend from %s: missing id or points", c.id)
		return
	}
	c.room.ExtendOperation(in.OperationID, in.Points)
	h.broadcast(c.room.ID, c, Event{
		Type:        EventStrokeExtended,
		OperationID: in.OperationID,
		AuthorID:    c.id,
		Points:      in.Points,
	})
}

// handleStrokeEnd finalizes, narrow-echoes to the rest of the room, then
// resyncs everyone including the sender. The resync guarantees agreement even
// if a narrow echo was lost on the way.
func (h *Hub) handleStrokeEnd(c *client, in Intent) {
	if in.OperationID == "" {
		log.Printf("[HUB] dropping stroke_end from %s: missing id", c.id)
		return
	}
	resync, ok := c.room.FinalizeOperation(in.OperationID)
	if !ok {
		// Unknown id, already logged by the ledger; nothing to tell the room.
		return
	}
	h.broadcast(c.room.ID, c, Event{
		Type:        EventStrokeEnded,
		OperationID: in.OperationID,
		AuthorID:    c.id,
	})
	h.broadcast(c.room.ID, nil, Event{Type: EventSync, Operations: resync})
}

func (h *Hub) handleUndo(c *client) {
	op, resync := c.room.Undo()
	if op == nil {
		return
	}
	h.broadcast(c.room.ID, nil, Event{Type: EventSync, Operations: resync})
}

func (h *Hub) handleRedo(c *client) {
	op, resync := c.room.Redo()
	if op == nil {
		return
	}
	h.broadcast(c.room.ID, nil, Event{Type: EventSync, Operations: resync})
}

func (h *Hub) handleClear(c *client) {
	c.room.ClearOperations()
	h.broadcast(c.room.ID, nil, Event{Type: EventCleared, AuthorID: c.id})
	h.broadcast(c.room.ID, nil, Event{Type: EventSync, Operations: nil})
}

// handlePresence relays a cursor position. It carries the room-assigned
// presence color, never the drawing color.
func (h *Hub) handlePresence(c *client, in Intent) {
	h.broadcast(c.room.ID, c, Event{
		Type:          EventPresence,
		AuthorID:      c.id,
		AuthorName:    c.participant.DisplayName,
		PresenceColor: c.participant.PresenceColor,
		X:             in.X,
		Y:             in.Y,
	})
}

// disconnect tears a connection down. Disconnecting is the only cancellation
// there is: it drops the session linkage, never finalized history.
func (h *Hub) disconnect(c *client) {
	h.mu.Lock()
	if c.room != nil {
		h.leaveRoom(c)
	}
	delete(h.clients, c)
	h.mu.Unlock()

	close(c.send)
	if c.conn != nil {
		c.conn.Close()
	}
	log.Printf("[HUB] connection %s closed", c.id)
}

// leaveRoom detaches c from its room and tells the remaining members. Caller
// holds h.mu.
func (h *Hub) leaveRoom(c *client) {
	room := c.room
	delete(h.members[room.ID], c)
	if len(h.members[room.ID]) == 0 {
		delete(h.members, room.ID)
	}
	h.registry.Leave(room.ID, c.id)
	h.broadcast(room.ID, c, Event{Type: EventParticipantLeft, Participant: c.participant})
	c.room = nil
	c.participant = nil
}

// broadcast fans an event out to a room's members, skipping exclude when set.
// Marshal once, enqueue everywhere; enqueue never blocks.
func (h *Hub) broadcast(roomID string, exclude *client, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[HUB] failed to marshal %s event: %v", ev.Type, err)
		return
	}
	for m := range h.members[roomID] {
		if m == exclude {
			continue
		}
		m.enqueue(data)
	}
}

// ConnectionCount reports live connections, joined or not.
func (h *Hub) ConnectionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) sanitizeName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		name = "guest-" + uuid.NewString()[:8]
	}
	if runes := []rune(name); len(runes) > h.cfg.MaxNameLen {
		name = string(runes[:h.cfg.MaxNameLen])
	}
	return name
}

// sanitizeRoomID strips everything outside [a-zA-Z0-9_-], caps the length and
// falls back to the configured default room when nothing is left. Never an
// error: a join always lands somewhere.
func (h *Hub) sanitizeRoomID(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
		if b.Len() >= h.cfg.MaxRoomLen {
			break
		}
	}
	id := b.String()
	if id == "" {
		return h.cfg.DefaultRoom
	}
	return id
}
