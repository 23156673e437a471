package session

import (
	"log"
	"sync"
)

// Registry owns every live room. Rooms are created lazily on first join and
// deleted the moment their roster empties; there is no persistence and no
// grace period, a re-created room id starts from a fresh ledger.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// GetOrCreateRoom returns the room for id, creating it if needed.
func (g *Registry) GetOrCreateRoom(id string) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()
	if r, ok := g.rooms[id]; ok {
		return r
	}
	r := newRoom(id)
	g.rooms[id] = r
	log.Printf("[ROOM] created room %q", id)
	return r
}

// Room returns the room for id if it exists.
func (g *Registry) Room(id string) (*Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.rooms[id]
	return r, ok
}

// Join adds a participant to a room, creating the room if needed.
func (g *Registry) Join(roomID, participantID, displayName string) (*Room, *Participant) {
	r := g.GetOrCreateRoom(roomID)
	p := r.Join(participantID, displayName)
	log.Printf("[ROOM] %s (%q) joined room %q", participantID, displayName, roomID)
	return r, p
}

// Leave removes a participant from a room and garbage-collects the room when
// it empties. Operations still pending in the ledger go with it.
func (g *Registry) Leave(roomID, participantID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.rooms[roomID]
	if !ok {
		return
	}
	if r.leave(participantID) {
		delete(g.rooms, roomID)
		log.Printf("[ROOM] room %q empty, deleted", roomID)
	}
}

// RoomCount reports the number of live rooms, for the health surface.
func (g *Registry) RoomCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}
