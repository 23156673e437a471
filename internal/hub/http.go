package hub

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tusharpaik123/RealTimeCollaborativeDrawingCanvas/internal/export"
)

// Routes builds the server's HTTP surface: the websocket endpoint, the
// advisory health counters and the per-room PDF export.
func (h *Hub) Routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/ws", h.ServeWS)
	r.HandleFunc("/healthz", h.ServeHealth).Methods(http.MethodGet)
	r.HandleFunc("/rooms/{id}/export.pdf", h.ServeExport).Methods(http.MethodGet)
	return r
}

// ServeHealth reports live room and connection counts. Read-only, advisory,
// unauthenticated.
func (h *Hub) ServeHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{
		"rooms":       h.registry.RoomCount(),
		"connections": h.ConnectionCount(),
	})
}

// ServeExport renders a room's visible operations to PDF.
func (h *Hub) ServeExport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	room, ok := h.registry.Room(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	if err := export.PDF(w, room.ExportOperations()); err != nil {
		log.Printf("[HUB] pdf export of room %q failed: %v", id, err)
	}
}
