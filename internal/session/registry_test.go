package session

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tusharpaik123/RealTimeCollaborativeDrawingCanvas/internal/board"
	"github.com/tusharpaik123/RealTimeCollaborativeDrawingCanvas/internal/export"
)

func TestGetOrCreateRoomIsLazy(t *testing.T) {
	t.Parallel()

	g := NewRegistry()
	assert.Equal(t, 0, g.RoomCount())

	r1 := g.GetOrCreateRoom("alpha")
	r2 := g.GetOrCreateRoom("alpha")
	assert.Same(t, r1, r2)
	assert.Equal(t, 1, g.RoomCount())

	_, ok := g.Room("beta")
	assert.False(t, ok)
}

func TestJoinAssignsColorsRoundRobin(t *testing.T) {
	t.Parallel()

	g := NewRegistry()
	n := PaletteSize() + 3
	for i := 0; i < n; i++ {
		_, p := g.Join("alpha", fmt.Sprintf("user-%d", i), "u")
		assert.Equal(t, PaletteColor(i), p.PresenceColor, "join %d", i)
	}
}

func TestColorCursorNeverRewindsOnLeave(t *testing.T) {
	t.Parallel()

	g := NewRegistry()
	_, p0 := g.Join("alpha", "u0", "first")
	g.Join("alpha", "u1", "second")
	g.Leave("alpha", "u0")

	// u0's color is not handed back; the third join gets the third color.
	_, p2 := g.Join("alpha", "u2", "third")
	assert.Equal(t, PaletteColor(0), p0.PresenceColor)
	assert.Equal(t, PaletteColor(2), p2.PresenceColor)
}

func TestLeaveDeletesEmptyRoomAndHistory(t *testing.T) {
	t.Parallel()

	g := NewRegistry()
	r, _ := g.Join("alpha", "u0", "ana")
	id := r.OpenOperation("u0", "ana", board.Style{Kind: board.KindFreehand}, 0, 0)
	r.FinalizeOperation(id)
	require.Len(t, r.ActiveOperations(), 1)

	g.Leave("alpha", "u0")
	assert.Equal(t, 0, g.RoomCount())

	// Same id, fresh ledger.
	fresh := g.GetOrCreateRoom("alpha")
	assert.NotSame(t, r, fresh)
	assert.Empty(t, fresh.ActiveOperations())
}

func TestLeaveKeepsRoomWhileOccupied(t *testing.T) {
	t.Parallel()

	g := NewRegistry()
	g.Join("alpha", "u0", "ana")
	g.Join("alpha", "u1", "bo")
	g.Leave("alpha", "u0")

	r, ok := g.Room("alpha")
	require.True(t, ok)
	assert.Len(t, r.Participants(), 1)
}

func TestLeaveUnknownRoomIsNoOp(t *testing.T) {
	t.Parallel()

	g := NewRegistry()
	assert.NotPanics(t, func() { g.Leave("ghost", "u0") })
}

func TestSnapshotCarriesActiveOpsAndRoster(t *testing.T) {
	t.Parallel()

	g := NewRegistry()
	r, _ := g.Join("alpha", "u0", "ana")
	g.Join("alpha", "u1", "bo")

	id1 := r.OpenOperation("u0", "ana", board.Style{Kind: board.KindFreehand}, 0, 0)
	r.FinalizeOperation(id1)
	id2 := r.OpenOperation("u1", "bo", board.Style{Kind: board.KindLine}, 1, 1)
	r.FinalizeOperation(id2)
	op, _ := r.Undo()
	require.NotNil(t, op)

	sn := r.Snapshot()
	require.Len(t, sn.Operations, 1)
	assert.Equal(t, id1, sn.Operations[0].ID)
	require.Len(t, sn.Participants, 2)
	assert.Equal(t, "u0", sn.Participants[0].ID)
	assert.Equal(t, "u1", sn.Participants[1].ID)
}

func TestUndoRedoThroughRoomWrappers(t *testing.T) {
	t.Parallel()

	g := NewRegistry()
	r, _ := g.Join("alpha", "u0", "ana")

	op, resync := r.Undo()
	assert.Nil(t, op)
	assert.Nil(t, resync)

	id := r.OpenOperation("u0", "ana", board.Style{Kind: board.KindEllipse}, 2, 3)
	resync, ok := r.FinalizeOperation(id)
	require.True(t, ok)
	require.Len(t, resync, 1)

	op, resync = r.Undo()
	require.NotNil(t, op)
	assert.Equal(t, id, op.ID)
	assert.Empty(t, resync)

	op, resync = r.Redo()
	require.NotNil(t, op)
	assert.Equal(t, id, op.ID)
	require.Len(t, resync, 1)
}

func TestFinalizeOperationReportsUnknownID(t *testing.T) {
	t.Parallel()

	g := NewRegistry()
	r, _ := g.Join("alpha", "u0", "ana")

	resync, ok := r.FinalizeOperation("no-such-op")
	assert.False(t, ok)
	assert.Nil(t, resync)
	assert.Empty(t, r.ActiveOperations())
}

func TestExportOperationsReturnsDeepCopies(t *testing.T) {
	t.Parallel()

	g := NewRegistry()
	r, _ := g.Join("alpha", "u0", "ana")
	id := r.OpenOperation("u0", "ana", board.Style{Kind: board.KindFreehand}, 0, 0)
	r.FinalizeOperation(id)

	exported := r.ExportOperations()
	require.Len(t, exported, 1)
	require.Len(t, exported[0].Points, 1)

	// Trailing extends keep appending to an already-active operation; the
	// exported copy must not move with the live one.
	r.ExtendOperation(id, []board.Point{{X: 1, Y: 1}})
	assert.Len(t, exported[0].Points, 1)
	assert.Len(t, r.ActiveOperations()[0].Points, 2)
}

func TestExportRendersWhileStrokeStillExtending(t *testing.T) {
	t.Parallel()

	// A PDF export on its own goroutine must never share point slices with a
	// stroke that is still growing. Run with -race.
	g := NewRegistry()
	r, _ := g.Join("alpha", "u0", "ana")
	id := r.OpenOperation("u0", "ana", board.Style{Color: "#e6194b", Width: 2, Kind: board.KindFreehand}, 0, 0)
	_, ok := r.FinalizeOperation(id)
	require.True(t, ok)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			r.ExtendOperation(id, []board.Point{{X: float64(i), Y: float64(i)}})
		}
	}()

	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}
		require.NoError(t, export.PDF(io.Discard, r.ExportOperations()))
	}

	assert.Len(t, r.ActiveOperations()[0].Points, 501)
}
