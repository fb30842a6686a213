package layout

import "fmt"

// Direction is the orientation of an edge segment.
type Direction string

const (
	DirectionX Direction = "x" // horizontal, grows to the right
	DirectionY Direction = "y" // vertical, grows downwards
)

// Edge is a routed connector segment. (X, Y) is the top-left anchor in the
// coordinate space of the container whose layouter emitted it.
type Edge struct {
	ID        string    `json:"id"`
	Direction Direction `json:"direction"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Length    float64   `json:"length"`
	Text      string    `json:"text,omitempty"`
	Dashed    bool      `json:"dashed,omitempty"`
	Directed  bool      `json:"directed,omitempty"`
}

// End returns the far end of the segment.
func (e Edge) End() Point {
	if e.Direction == DirectionX {
		return Point{X: e.X + e.Length, Y: e.Y}
	}
	return Point{X: e.X, Y: e.Y + e.Length}
}

// Translate returns e moved by p.
func (e Edge) Translate(p Point) Edge {
	e.X += p.X
	e.Y += p.Y
	return e
}

func edgeID(owner, role string) string {
	return owner + "/" + role
}

func branchEdgeID(owner string, i int, role string) string {
	return edgeID(owner, fmt.Sprintf("branch-%d-%s", i, role))
}

// vertical returns a downward segment from y0 to y1 at x.
func vertical(id string, x, y0, y1 float64) Edge {
	return Edge{ID: id, Direction: DirectionY, X: x, Y: y0, Length: nonNegative(y1 - y0)}
}

// horizontal returns a rightward segment from x0 to x1 at y.
func horizontal(id string, y, x0, x1 float64) Edge {
	return Edge{ID: id, Direction: DirectionX, X: x0, Y: y, Length: nonNegative(x1 - x0)}
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
