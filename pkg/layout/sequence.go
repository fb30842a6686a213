package layout

import "fmt"

// SequenceBoundary measures a vertical chain of boxes. Zero boxes are
// skipped; when none remain the result is ZeroBoundary.
//
// Every box's axis lines up on one shared line, so the width is the widest
// extent left of the axis plus the widest extent right of it. Head and tail
// add half an interval each for the connectors entering and leaving the chain.
func (s Spacing) SequenceBoundary(boxes []Boundary, head, tail bool) Boundary {
	var (
		n            int
		axis, right  float64
		totalHeights float64
	)
	for _, b := range boxes {
		if b.IsZero() {
			continue
		}
		n++
		axis = max(axis, b.AxisX)
		right = max(right, b.Right())
		totalHeights += b.Height
	}
	if n == 0 {
		return ZeroBoundary
	}

	height := totalHeights + s.IntervalY*float64(n-1)
	if head {
		height += s.IntervalY / 2
	}
	if tail {
		height += s.IntervalY / 2
	}
	return NewBoundaryAxis(axis+right, height, axis)
}

// SequenceLayout stacks steps top to bottom on the shared axis and connects
// neighbours with directed edges. Steps with a zero boundary are skipped.
func (s Spacing) SequenceLayout(owner string, steps []*GraphNode, head, tail bool) Layout {
	var live []*GraphNode
	bounds := make([]Boundary, 0, len(steps))
	for _, st := range steps {
		if present(st) {
			live = append(live, st)
			bounds = append(bounds, st.Boundary)
		}
	}
	b := s.SequenceBoundary(bounds, head, tail)
	if b.IsZero() {
		return zeroLayout()
	}

	out := Layout{Boundary: b, Nodes: live}
	axis := b.AxisX
	y := 0.0
	if head {
		y = s.IntervalY / 2
		e := vertical(edgeID(owner, "head"), axis, 0, y)
		e.Directed = true
		out.Edges = append(out.Edges, e)
	}
	for i, st := range live {
		if i > 0 {
			e := vertical(edgeID(owner, fmt.Sprintf("step-%d", i)), axis, y, y+s.IntervalY)
			e.Directed = true
			out.Edges = append(out.Edges, e)
			y += s.IntervalY
		}
		place(st, axis, y)
		y += st.Boundary.Height
	}
	if tail {
		out.Edges = append(out.Edges, vertical(edgeID(owner, "tail"), axis, y, b.Height))
	}
	return out
}

// SequenceBoundary measures with DefaultSpacing.
func SequenceBoundary(boxes []Boundary, head, tail bool) Boundary {
	return DefaultSpacing().SequenceBoundary(boxes, head, tail)
}

// SequenceLayout lays out with DefaultSpacing.
func SequenceLayout(owner string, steps []*GraphNode, head, tail bool) Layout {
	return DefaultSpacing().SequenceLayout(owner, steps, head, tail)
}
