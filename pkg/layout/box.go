package layout

import "github.com/matzehuels/flowtower/pkg/flow"

// GraphNode is the layout record of one node for a single pass. The layouter
// of the enclosing container sets Offset; a node never positions itself.
type GraphNode struct {
	ID       string    `json:"id"`
	Kind     flow.Kind `json:"kind"`
	Label    string    `json:"label,omitempty"`
	Payload  any       `json:"payload,omitempty"`
	Boundary Boundary  `json:"boundary"`
	Offset   Point     `json:"offset"`
}

// NewGraphNode returns an unpositioned node.
func NewGraphNode(id string, kind flow.Kind, b Boundary) *GraphNode {
	return &GraphNode{ID: id, Kind: kind, Boundary: b}
}

// present reports whether n takes part in a layout.
func present(n *GraphNode) bool {
	return n != nil && !n.Boundary.IsZero()
}

// boundaryOf returns n's boundary or ZeroBoundary for nil.
func boundaryOf(n *GraphNode) Boundary {
	if n == nil {
		return ZeroBoundary
	}
	return n.Boundary
}

// place aligns n's axis with axisX at vertical position y.
func place(n *GraphNode, axisX, y float64) {
	n.Offset = Point{X: axisX - n.Boundary.AxisX, Y: y}
}

// Layout is the output of one layouter: the container boundary, the children
// it positioned and the edges it emitted, in the container's coordinates.
type Layout struct {
	Boundary Boundary
	Nodes    []*GraphNode
	Edges    []Edge
}

// zeroLayout is returned when a required child is missing.
func zeroLayout() Layout { return Layout{Boundary: ZeroBoundary} }
