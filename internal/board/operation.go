package board

import "time"

// Point is a single coordinate in the client's drawing space. The server
// never interprets coordinates, it only stores and relays them.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Kind is the drawing tool that produced an operation.
type Kind string

const (
	KindFreehand  Kind = "freehand"
	KindLine      Kind = "line"
	KindRectangle Kind = "rectangle"
	KindEllipse   Kind = "ellipse"
)

// Valid reports whether k is one of the known tools.
func (k Kind) Valid() bool {
	switch k {
	case KindFreehand, KindLine, KindRectangle, KindEllipse:
		return true
	}
	return false
}

// Status tracks an operation through its lifecycle: open while the author is
// still streaming points, active once finalized, undone while hidden by undo.
// An operation never returns to open.
type Status string

const (
	StatusOpen   Status = "open"
	StatusActive Status = "active"
	StatusUndone Status = "undone"
)

// Style is the author's chosen drawing style, fixed when a stroke starts.
type Style struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
	Kind  Kind    `json:"kind"`
}

// Operation is one continuous drawing action by a single author. Points are
// append-only while the operation is open; freehand strokes may accumulate
// hundreds of points, shape kinds conventionally hold the anchor and the
// final point.
type Operation struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	Kind        Kind      `json:"kind"`
	StrokeColor string    `json:"color"`
	StrokeWidth float64   `json:"width"`
	Points      []Point   `json:"points"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Clone returns a deep copy, points included, safe to read after the room
// lock is released.
func (o *Operation) Clone() *Operation {
	c := *o
	c.Points = append([]Point(nil), o.Points...)
	return &c
}
