package export

import (
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/tusharpaik123/RealTimeCollaborativeDrawingCanvas/internal/board"
)

// Client coordinates are pixels, the page is millimeters; divide to fit an A4
// landscape sheet.
const pxPerMM = 3.0

// PDF renders the given operations, in order, onto a single landscape A4 page.
func PDF(w io.Writer, ops []*board.Operation) error {
	p := gofpdf.New("L", "mm", "A4", "")
	p.AddPage()

	for _, op := range ops {
		r, g, b := parseHexColor(op.StrokeColor)
		p.SetDrawColor(r, g, b)
		width := op.StrokeWidth / pxPerMM
		if width <= 0 {
			width = 0.5
		}
		p.SetLineWidth(width)
		drawOperation(p, op)
	}
	return p.Output(w)
}

func drawOperation(p *gofpdf.Fpdf, op *board.Operation) {
	pts := op.Points
	if len(pts) == 0 {
		return
	}
	first := pts[0]
	last := pts[len(pts)-1]

	switch op.Kind {
	case board.KindRectangle:
		x0, y0 := first.X/pxPerMM, first.Y/pxPerMM
		x1, y1 := last.X/pxPerMM, last.Y/pxPerMM
		p.Rect(minf(x0, x1), minf(y0, y1), absf(x1-x0), absf(y1-y0), "D")
	case board.KindEllipse:
		cx := (first.X + last.X) / 2 / pxPerMM
		cy := (first.Y + last.Y) / 2 / pxPerMM
		p.Ellipse(cx, cy, absf(last.X-first.X)/2/pxPerMM, absf(last.Y-first.Y)/2/pxPerMM, 0, "D")
	case board.KindLine:
		p.Line(first.X/pxPerMM, first.Y/pxPerMM, last.X/pxPerMM, last.Y/pxPerMM)
	default: // freehand
		for i := 1; i < len(pts); i++ {
			p.Line(
				pts[i-1].X/pxPerMM, pts[i-1].Y/pxPerMM,
				pts[i].X/pxPerMM, pts[i].Y/pxPerMM,
			)
		}
	}
}

// parseHexColor decodes #rgb and #rrggbb; anything else renders black.
func parseHexColor(s string) (r, g, b int) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		r = hexNibble(s[0]) * 17
		g = hexNibble(s[1]) * 17
		b = hexNibble(s[2]) * 17
	case 6:
		r = hexByte(s[0:2])
		g = hexByte(s[2:4])
		b = hexByte(s[4:6])
	}
	return r, g, b
}

func hexNibble(c byte) int {
	v, err := strconv.ParseUint(string(c), 16, 8)
	if err != nil {
		return 0
	}
	return int(v)
}

func hexByte(s string) int {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0
	}
	return int(v)
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
