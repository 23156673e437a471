package board

import (
	"log"
	"time"

	"github.com/google/uuid"
)

// Ledger is one room's ordered drawing history. Finalized operations live in
// history; operations still being streamed live in pending. The cursor marks
// the last active entry: everything at or below it is active, everything
// above it is undone. cursor == -1 means empty or fully undone.
//
// Undo and redo never reorder history, they only re-tag entries and move the
// cursor. The Ledger is not safe for concurrent use; callers serialize access
// per room.
type Ledger struct {
	history []*Operation
	cursor  int
	pending map[string]*Operation
}

func NewLedger() *Ledger {
	return &Ledger{
		cursor:  -1,
		pending: make(map[string]*Operation),
	}
}

// Open starts a new operation seeded with its first point and returns the
// server-assigned id. IDs are random tokens, never reused.
func (l *Ledger) Open(authorID, authorName string, style Style, x, y float64) string {
	op := &Operation{
		ID:          uuid.NewString(),
		AuthorID:    authorID,
		AuthorName:  authorName,
		Kind:        style.Kind,
		StrokeColor: style.Color,
		StrokeWidth: style.Width,
		Points:      []Point{{X: x, Y: y}},
		Status:      StatusOpen,
		CreatedAt:   time.Now(),
	}
	l.pending[op.ID] = op
	return op.ID
}

// Extend appends points to an operation. Pending operations are checked
// first; an already-finalized active operation still accepts points because a
// finalize message can overtake trailing extends on the wire. Anything else
// is a stale or duplicate frame and is dropped with a log line, never an
// error, so bad traffic cannot take down the room.
func (l *Ledger) Extend(id string, points []Point) {
	if op, ok := l.pending[id]; ok {
		op.Points = append(op.Points, points...)
		return
	}
	for _, op := range l.history {
		if op.ID != id {
			continue
		}
		if op.Status != StatusActive {
			log.Printf("[LEDGER] dropping extend for %s operation %s", op.Status, id)
			return
		}
		op.Points = append(op.Points, points...)
		return
	}
	log.Printf("[LEDGER] dropping extend for unknown operation %s", id)
}

// Finalize moves a pending operation into history as active, discarding any
// undone redo tail beyond the cursor. Finalizing an id already in history is
// a no-op reported as success, which absorbs duplicate delivery. An unknown
// id is logged and reported false so callers stay silent about it.
func (l *Ledger) Finalize(id string) bool {
	for _, op := range l.history {
		if op.ID == id {
			return true
		}
	}
	op, ok := l.pending[id]
	if !ok {
		log.Printf("[LEDGER] dropping finalize for unknown operation %s", id)
		return false
	}
	delete(l.pending, id)
	op.Status = StatusActive
	l.history = append(l.history[:l.cursor+1], op)
	l.cursor = len(l.history) - 1
	return true
}

// Undo hides the entry at the cursor and steps the cursor back, returning the
// hidden operation. Returns nil when there is nothing to undo. The entry at
// the cursor is always active by invariant; the scan below is defensive and
// any extra iteration is an invariant violation worth the log line.
func (l *Ledger) Undo() *Operation {
	for i := l.cursor; i >= 0; i-- {
		op := l.history[i]
		if op.Status != StatusActive {
			log.Printf("[LEDGER] undo skipped %s entry %s at index %d, cursor invariant violated", op.Status, op.ID, i)
			continue
		}
		op.Status = StatusUndone
		l.cursor = i - 1
		return op
	}
	return nil
}

// Redo re-activates the first undone entry past the cursor and moves the
// cursor onto it. Returns nil when there is nothing to redo.
func (l *Ledger) Redo() *Operation {
	for i := l.cursor + 1; i < len(l.history); i++ {
		op := l.history[i]
		if op.Status != StatusUndone {
			log.Printf("[LEDGER] redo skipped %s entry %s at index %d, cursor invariant violated", op.Status, op.ID, i)
			continue
		}
		op.Status = StatusActive
		l.cursor = i
		return op
	}
	return nil
}

// ActiveOperations returns every active entry in stored order. This is the
// authoritative render list for a full client resync.
func (l *Ledger) ActiveOperations() []*Operation {
	ops := make([]*Operation, 0, l.cursor+1)
	for _, op := range l.history {
		if op.Status == StatusActive {
			ops = append(ops, op)
		}
	}
	return ops
}

// Clear wipes history and pending and resets the cursor.
func (l *Ledger) Clear() {
	l.history = nil
	l.pending = make(map[string]*Operation)
	l.cursor = -1
}

// Len reports the number of finalized entries, undone ones included.
func (l *Ledger) Len() int { return len(l.history) }

// Cursor reports the index of the last active entry, -1 when none.
func (l *Ledger) Cursor() int { return l.cursor }

// PendingCount reports the number of operations still being streamed.
func (l *Ledger) PendingCount() int { return len(l.pending) }
