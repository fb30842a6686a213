package layout

// loopAxis is the flow axis of a loop container. LoopMarginLeft keeps a lane
// free left of the parts for the dashed back-edge; markers wider than that
// lane push the axis further right.
func (s Spacing) loopAxis(detail, body, start, end Boundary) float64 {
	return max(max(detail.AxisX, body.AxisX)+s.LoopMarginLeft, start.AxisX, end.AxisX)
}

// ForeachBoundary measures a loop: detail, start marker, body and end marker
// stacked with LoopGap between them. A missing detail or body yields
// ZeroBoundary.
func (s Spacing) ForeachBoundary(detail, body, start, end Boundary) Boundary {
	if detail.IsZero() || body.IsZero() {
		return ZeroBoundary
	}
	axis := s.loopAxis(detail, body, start, end)
	right := max(detail.Right(), body.Right(), start.Right(), end.Right())
	height := detail.Height + s.LoopGap + start.Height + s.LoopGap + body.Height + s.LoopGap + end.Height
	return NewBoundaryAxis(axis+right, height, axis)
}

// ForeachLayout positions a loop and emits six edges: three forward edges
// down the axis, a dashed back-edge along the left border from the end
// marker up to the start marker, and a dashed horizontal stub into each
// marker.
func (s Spacing) ForeachLayout(owner string, detail, body, start, end *GraphNode) Layout {
	if !present(detail) || !present(body) {
		return zeroLayout()
	}
	sb, eb := boundaryOf(start), boundaryOf(end)
	b := s.ForeachBoundary(detail.Boundary, body.Boundary, sb, eb)
	axis := b.AxisX
	out := Layout{Boundary: b}

	y := 0.0
	stack := func(n *GraphNode, bound Boundary, role string) (top float64) {
		if role != "" {
			e := vertical(edgeID(owner, role), axis, y, y+s.LoopGap)
			e.Directed = true
			out.Edges = append(out.Edges, e)
			y += s.LoopGap
		}
		top = y
		if n != nil {
			place(n, axis, y)
			out.Nodes = append(out.Nodes, n)
		}
		y += bound.Height
		return top
	}

	stack(detail, detail.Boundary, "")
	startTop := stack(start, sb, "detail-start")
	stack(body, body.Boundary, "start-body")
	endTop := stack(end, eb, "body-end")

	startMid := startTop + sb.AxisY
	endMid := endTop + eb.AxisY

	back := vertical(edgeID(owner, "back"), 0, startMid, endMid)
	back.Dashed = true

	toStart := horizontal(edgeID(owner, "loop-start"), startMid, 0, axis-sb.AxisX)
	toStart.Dashed = true
	toStart.Directed = true

	fromEnd := horizontal(edgeID(owner, "loop-end"), endMid, 0, axis-eb.AxisX)
	fromEnd.Dashed = true

	out.Edges = append(out.Edges, back, toStart, fromEnd)
	return out
}

// ForeachBoundary measures with DefaultSpacing.
func ForeachBoundary(detail, body, start, end Boundary) Boundary {
	return DefaultSpacing().ForeachBoundary(detail, body, start, end)
}

// ForeachLayout lays out with DefaultSpacing.
func ForeachLayout(owner string, detail, body, start, end *GraphNode) Layout {
	return DefaultSpacing().ForeachLayout(owner, detail, body, start, end)
}
