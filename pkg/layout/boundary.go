package layout

// Point is a position relative to a container's top-left corner.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Boundary is the measured footprint of a node, independent of its position.
//
// AxisX is the horizontal coordinate, measured from the left edge, that lines
// up with the parent's and the siblings' axis when boxes are stacked. AxisY is
// where horizontal connectors attach (the vertical centre for every box the
// engine creates).
type Boundary struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	AxisX  float64 `json:"axis_x"`
	AxisY  float64 `json:"axis_y"`
}

// ZeroBoundary means "nothing to render". Test with IsZero rather than
// comparing against this value; axes are irrelevant once the size is zero.
var ZeroBoundary = Boundary{}

// NewBoundary returns a w×h boundary with both axes through its centre.
func NewBoundary(w, h float64) Boundary {
	return Boundary{Width: w, Height: h, AxisX: w / 2, AxisY: h / 2}
}

// NewBoundaryAxis returns a w×h boundary with the flow axis at axisX.
func NewBoundaryAxis(w, h, axisX float64) Boundary {
	return Boundary{Width: w, Height: h, AxisX: axisX, AxisY: h / 2}
}

// IsZero reports whether b has no area to render.
func (b Boundary) IsZero() bool { return b.Width == 0 && b.Height == 0 }

// Left returns the extent left of the flow axis.
func (b Boundary) Left() float64 { return b.AxisX }

// Right returns the extent right of the flow axis.
func (b Boundary) Right() float64 { return b.Width - b.AxisX }
