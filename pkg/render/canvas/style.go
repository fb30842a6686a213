package canvas

import (
	"bytes"

	"github.com/matzehuels/flowtower/pkg/flow"
)

// Style defines the visual appearance of a rendered flow diagram.
// Implementations control how boxes, edges and labels are drawn.
type Style interface {
	// RenderDefs writes SVG <defs> content (markers, fonts, filters).
	RenderDefs(buf *bytes.Buffer)
	// RenderBox writes the shape of a single leaf or marker box.
	RenderBox(buf *bytes.Buffer, b Box)
	// RenderEdge writes a connector segment and its annotation.
	RenderEdge(buf *bytes.Buffer, e Edge)
	// RenderText writes a box's label lines.
	RenderText(buf *bytes.Buffer, b Box)
}

// Box contains all data needed to render a single positioned box.
type Box struct {
	ID         string    // Node identifier
	Kind       flow.Kind // element, choice, loop_start or loop_end
	Lines      []string  // Wrapped label
	X, Y, W, H float64   // Top-left corner and size
	CX, CY     float64   // Center
	Fill       string    // Optional fill color from the payload
}

// Edge contains positioning data for one connector segment.
type Edge struct {
	ID             string
	X1, Y1, X2, Y2 float64
	Text           string
	Dashed         bool
	Directed       bool
}
