package session

import (
	"sort"
	"sync"
	"time"

	"github.com/tusharpaik123/RealTimeCollaborativeDrawingCanvas/internal/board"
)

// palette is the fixed set of presence colors handed out to joining
// participants, round-robin. Assignment never skips colors already in use;
// reuse is purely the modulo wrapping around.
var palette = []string{
	"#e6194b", // red
	"#3cb44b", // green
	"#4363d8", // blue
	"#f58231", // orange
	"#911eb4", // purple
	"#46c5d8", // cyan
	"#f032e6", // magenta
	"#9a6324", // brown
	"#808000", // olive
	"#008080", // teal
}

// Participant is one member of a room's roster. PresenceColor is the
// room-assigned identity color used for cursor broadcasts; it is unrelated to
// whatever color the participant draws with.
type Participant struct {
	ID            string    `json:"id"`
	DisplayName   string    `json:"display_name"`
	PresenceColor string    `json:"presence_color"`
	JoinedAt      time.Time `json:"joined_at"`
}

// Room is one independent collaboration session: a ledger of drawing
// operations plus the roster of connected participants. All mutations on a
// room go through its mutex, so events against one room are strictly
// serialized while separate rooms never contend.
type Room struct {
	ID string

	mu          sync.Mutex
	ledger      *board.Ledger
	roster      map[string]*Participant
	colorCursor int
}

func newRoom(id string) *Room {
	return &Room{
		ID:     id,
		ledger: board.NewLedger(),
		roster: make(map[string]*Participant),
	}
}

// Join adds a participant to the roster and assigns the next palette color.
// The color cursor only ever advances, even across leaves.
func (r *Room) Join(participantID, displayName string) *Participant {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := &Participant{
		ID:            participantID,
		DisplayName:   displayName,
		PresenceColor: palette[r.colorCursor%len(palette)],
		JoinedAt:      time.Now(),
	}
	r.colorCursor++
	r.roster[participantID] = p
	return p
}

// leave removes a participant and reports whether the roster is now empty.
// Registry.Leave owns room teardown, hence unexported.
func (r *Room) leave(participantID string) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.roster, participantID)
	return len(r.roster) == 0
}

// Participants returns the roster in join order.
func (r *Room) Participants() []*Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.participantsLocked()
}

func (r *Room) participantsLocked() []*Participant {
	out := make([]*Participant, 0, len(r.roster))
	for _, p := range r.roster {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].JoinedAt.Before(out[j].JoinedAt)
	})
	return out
}

// Snapshot is the authoritative state handed to a joining or reconnecting
// client: every active operation in order plus the current roster.
type Snapshot struct {
	Operations   []*board.Operation `json:"operations"`
	Participants []*Participant     `json:"participants"`
}

func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		Operations:   r.ledger.ActiveOperations(),
		Participants: r.participantsLocked(),
	}
}

// The ledger wrappers below serialize drawing events against the room.

func (r *Room) OpenOperation(authorID, authorName string, style board.Style, x, y float64) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ledger.Open(authorID, authorName, style, x, y)
}

func (r *Room) ExtendOperation(id string, points []board.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ledger.Extend(id, points)
}

// FinalizeOperation finalizes and returns the active list in one critical
// section so the resync broadcast reflects exactly this finalize. ok is
// false when the id was unknown and nothing changed.
func (r *Room) FinalizeOperation(id string) (resync []*board.Operation, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ledger.Finalize(id) {
		return nil, false
	}
	return r.ledger.ActiveOperations(), true
}

func (r *Room) Undo() (*board.Operation, []*board.Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	op := r.ledger.Undo()
	if op == nil {
		return nil, nil
	}
	return op, r.ledger.ActiveOperations()
}

func (r *Room) Redo() (*board.Operation, []*board.Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	op := r.ledger.Redo()
	if op == nil {
		return nil, nil
	}
	return op, r.ledger.ActiveOperations()
}

func (r *Room) ClearOperations() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ledger.Clear()
}

// ActiveOperations returns the current render list. The returned operations
// are the ledger's own; readers must consume them while events against this
// room are still serialized with the caller (the hub's dispatch lock does
// this for resync marshaling). Anything running outside that serialization
// uses ExportOperations instead.
func (r *Room) ActiveOperations() []*board.Operation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ledger.ActiveOperations()
}

// ExportOperations returns deep copies of the active operations, cloned
// while the room lock is held. Points keep growing on an active operation
// when a finalize overtakes trailing extends, so readers on their own
// goroutine, like the PDF export handler, must not share the live slices.
func (r *Room) ExportOperations() []*board.Operation {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := r.ledger.ActiveOperations()
	out := make([]*board.Operation, len(ops))
	for i, op := range ops {
		out[i] = op.Clone()
	}
	return out
}

// PaletteSize is exposed for round-robin assertions in tests.
func PaletteSize() int { return len(palette) }

// PaletteColor returns the color the nth join into a fresh room receives.
func PaletteColor(n int) string { return palette[n%len(palette)] }
