package graph

import (
	"github.com/matzehuels/flowtower/pkg/flow"
	"github.com/matzehuels/flowtower/pkg/layout"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT}

// Visual styles for rendering.
const (
	StyleSimple = "simple"
	StyleSketch = "sketch"
)

// Styles lists every supported visual style.
var Styles = []string{StyleSimple, StyleSketch}

// =============================================================================
// Node - Positioned Box
// =============================================================================

// Node is a positioned leaf or marker box in root coordinates.
type Node struct {
	ID      string         `json:"id"`
	Kind    string         `json:"kind"`
	Label   string         `json:"label,omitempty"`
	X       float64        `json:"x"`
	Y       float64        `json:"y"`
	Width   float64        `json:"width"`
	Height  float64        `json:"height"`
	AxisX   float64        `json:"axis_x"`
	Payload map[string]any `json:"payload,omitempty"`
}

// IsMarker reports whether n is a choice or loop marker.
func (n *Node) IsMarker() bool {
	k, _ := flow.KindByName(n.Kind)
	return k.IsMarker()
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// =============================================================================
// Edge - Connector Segment
// =============================================================================

// Edge is a connector segment in root coordinates.
type Edge struct {
	ID        string  `json:"id"`
	Direction string  `json:"direction"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Length    float64 `json:"length"`
	Text      string  `json:"text,omitempty"`
	Dashed    bool    `json:"dashed,omitempty"`
	Directed  bool    `json:"directed,omitempty"`
}

// =============================================================================
// Result ↔ Layout Conversion
// =============================================================================

// FromResult converts a flattened engine result to the wire format.
func FromResult(title string, r layout.Result) Layout {
	out := Layout{
		Title:  title,
		Width:  r.Boundary.Width,
		Height: r.Boundary.Height,
		AxisX:  r.Boundary.AxisX,
		Nodes:  make([]Node, len(r.Nodes)),
		Edges:  make([]Edge, len(r.Edges)),
	}
	for i, n := range r.Nodes {
		payload, _ := n.Payload.(map[string]any)
		out.Nodes[i] = Node{
			ID:      n.ID,
			Kind:    n.Kind.String(),
			Label:   n.Label,
			X:       n.Offset.X,
			Y:       n.Offset.Y,
			Width:   n.Boundary.Width,
			Height:  n.Boundary.Height,
			AxisX:   n.Boundary.AxisX,
			Payload: payload,
		}
	}
	for i, e := range r.Edges {
		out.Edges[i] = Edge{
			ID:        e.ID,
			Direction: string(e.Direction),
			X:         e.X,
			Y:         e.Y,
			Length:    e.Length,
			Text:      e.Text,
			Dashed:    e.Dashed,
			Directed:  e.Directed,
		}
	}
	return out
}

// Result converts the wire format back to an engine result so a stored
// layout can be rendered without laying it out again.
func (l Layout) Result() layout.Result {
	r := layout.Result{
		Boundary: layout.NewBoundaryAxis(l.Width, l.Height, l.AxisX),
		Nodes:    make([]layout.GraphNode, len(l.Nodes)),
		Edges:    make([]layout.Edge, len(l.Edges)),
	}
	for i, n := range l.Nodes {
		kind, _ := flow.KindByName(n.Kind)
		gn := layout.GraphNode{
			ID:       n.ID,
			Kind:     kind,
			Label:    n.Label,
			Boundary: layout.NewBoundaryAxis(n.Width, n.Height, n.AxisX),
			Offset:   layout.Point{X: n.X, Y: n.Y},
		}
		if n.Payload != nil {
			gn.Payload = n.Payload
		}
		r.Nodes[i] = gn
	}
	for i, e := range l.Edges {
		r.Edges[i] = layout.Edge{
			ID:        e.ID,
			Direction: layout.Direction(e.Direction),
			X:         e.X,
			Y:         e.Y,
			Length:    e.Length,
			Text:      e.Text,
			Dashed:    e.Dashed,
			Directed:  e.Directed,
		}
	}
	return r
}
