package hub

import (
	"github.com/tusharpaik123/RealTimeCollaborativeDrawingCanvas/internal/board"
	"github.com/tusharpaik123/RealTimeCollaborativeDrawingCanvas/internal/session"
)

// Inbound intent types. Every client frame is one Intent; unknown types are
// logged and dropped.
const (
	IntentJoin         = "join"
	IntentStrokeStart  = "stroke_start"
	IntentStrokeExtend = "stroke_extend"
	IntentStrokeEnd    = "stroke_end"
	IntentUndo         = "undo"
	IntentRedo         = "redo"
	IntentClear        = "clear"
	IntentPresence     = "presence"
)

// Intent is the single closed shape for everything a client can send. Fields
// are populated per type; irrelevant ones stay zero.
type Intent struct {
	Type string `json:"type"`

	// join
	Name string `json:"name,omitempty"`
	Room string `json:"room,omitempty"`

	// stroke_start carries the author's chosen drawing style and the anchor
	// point; stroke_extend and stroke_end round-trip the server-assigned id.
	Style       board.Style   `json:"style"`
	OperationID string        `json:"operation_id,omitempty"`
	Points      []board.Point `json:"points,omitempty"`

	// stroke_start anchor and presence cursor position
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`
}

// Outbound event types.
const (
	EventSnapshot          = "snapshot"
	EventParticipantJoined = "participant_joined"
	EventParticipantLeft   = "participant_left"
	EventStrokeAccepted    = "stroke_accepted"
	EventStrokeStarted     = "stroke_started"
	EventStrokeExtended    = "stroke_extended"
	EventStrokeEnded       = "stroke_ended"
	EventSync              = "sync"
	EventCleared           = "cleared"
	EventPresence          = "presence"
)

// Event is one server-to-client frame. Narrow events (stroke_*, presence,
// participant_*) carry only the delta; snapshot and sync carry authoritative
// state.
//
// Stroke events always carry the author's chosen drawing style; presence
// events always carry the participant's room-assigned presence color. The two
// color namespaces are deliberately never mixed.
type Event struct {
	Type string `json:"type"`

	OperationID string        `json:"operation_id,omitempty"`
	AuthorID    string        `json:"author_id,omitempty"`
	AuthorName  string        `json:"author_name,omitempty"`
	Style       *board.Style  `json:"style,omitempty"`
	Points      []board.Point `json:"points,omitempty"`
	X           float64       `json:"x,omitempty"`
	Y           float64       `json:"y,omitempty"`

	PresenceColor string `json:"presence_color,omitempty"`

	Participant  *session.Participant   `json:"participant,omitempty"`
	Participants []*session.Participant `json:"participants,omitempty"`
	Operations   []*board.Operation     `json:"operations,omitempty"`
}
