package layout

// =============================================================================
// Branch Group
// =============================================================================

// branchGroup is the side-by-side arrangement of a decision's branches. An
// empty slot has zero width and is drawn as a single pass-through line.
type branchGroup struct {
	lefts    []float64 // slot left edges, relative to the group
	lines    []float64 // slot connector x, relative to the group
	boundary Boundary
}

func (s Spacing) branchGroup(slots []Boundary) branchGroup {
	var g branchGroup
	if len(slots) == 0 {
		return g
	}
	var x, height float64
	for i, b := range slots {
		if i > 0 {
			x += s.BranchIntervalX
		}
		g.lefts = append(g.lefts, x)
		if b.IsZero() {
			g.lines = append(g.lines, x)
			continue
		}
		g.lines = append(g.lines, x+b.AxisX)
		x += b.Width
		height = max(height, b.Height)
	}
	g.boundary = NewBoundaryAxis(x, height, g.lines[0])
	return g
}

// ifElseSlots keeps a zero-width slot for a single missing branch; with both
// missing there is no branch group at all.
func ifElseSlots(left, right Boundary) []Boundary {
	if left.IsZero() && right.IsZero() {
		return nil
	}
	return []Boundary{left, right}
}

// =============================================================================
// Boundary Calculators
// =============================================================================

func (s Spacing) decisionBoundary(condition, choice, group Boundary) Boundary {
	if condition.IsZero() || choice.IsZero() {
		return ZeroBoundary
	}
	gap := s.BranchIntervalY
	axis := max(condition.AxisX, choice.AxisX, group.AxisX)
	right := max(condition.Right(), choice.Right(), group.Right())
	height := condition.Height + gap + choice.Height + gap + group.Height + gap
	return NewBoundaryAxis(axis+right, height, axis)
}

// IfElseBoundary measures a two-way decision: condition, choice marker, then
// left and right branches side by side with left on the flow axis. A missing
// condition or choice yields ZeroBoundary.
func (s Spacing) IfElseBoundary(condition, choice, left, right Boundary) Boundary {
	g := s.branchGroup(ifElseSlots(left, right))
	return s.decisionBoundary(condition, choice, g.boundary)
}

// SwitchCaseBoundary measures an n-way decision. The branch group is
// Σ width + BranchIntervalX·(n−1) wide, as tall as its tallest branch, and
// its axis is the first branch's axis.
func (s Spacing) SwitchCaseBoundary(condition, choice Boundary, branches []Boundary) Boundary {
	g := s.branchGroup(branches)
	return s.decisionBoundary(condition, choice, g.boundary)
}

// =============================================================================
// Layouters
// =============================================================================

// IfElseLayout positions a two-way decision. With both branches present it
// emits seven edges; a missing branch becomes one pass-through line from the
// choice marker to the exit line; with neither branch only condition→choice
// and a trailing exit edge remain.
func (s Spacing) IfElseLayout(owner string, condition, choice, left, right *GraphNode) Layout {
	var branches []*GraphNode
	if present(left) || present(right) {
		branches = []*GraphNode{left, right}
	}
	return s.decisionLayout(owner, condition, choice, branches)
}

// SwitchCaseLayout positions an n-way decision. Each populated branch gets an
// entry and an exit edge, each empty branch one pass-through edge, and with
// more than one branch a baseline from the choice marker and a bottom line
// back to the axis are added.
func (s Spacing) SwitchCaseLayout(owner string, condition, choice *GraphNode, branches []*GraphNode) Layout {
	return s.decisionLayout(owner, condition, choice, branches)
}

func (s Spacing) decisionLayout(owner string, condition, choice *GraphNode, branches []*GraphNode) Layout {
	if !present(condition) || !present(choice) {
		return zeroLayout()
	}

	slots := make([]Boundary, len(branches))
	for i, br := range branches {
		if present(br) {
			slots[i] = br.Boundary
		}
	}
	g := s.branchGroup(slots)
	b := s.decisionBoundary(condition.Boundary, choice.Boundary, g.boundary)

	gap := s.BranchIntervalY
	axis := b.AxisX
	out := Layout{Boundary: b, Nodes: []*GraphNode{condition, choice}}

	place(condition, axis, 0)
	choiceTop := condition.Boundary.Height + gap
	place(choice, axis, choiceTop)
	choiceBottom := choiceTop + choice.Boundary.Height
	choiceMid := choiceTop + choice.Boundary.AxisY
	groupTop := choiceBottom + gap
	groupLeft := axis - g.boundary.AxisX

	e := vertical(edgeID(owner, "condition-choice"), axis, condition.Boundary.Height, choiceTop)
	e.Directed = true
	out.Edges = append(out.Edges, e)

	if len(branches) == 0 {
		out.Edges = append(out.Edges, vertical(edgeID(owner, "exit"), axis, choiceBottom, b.Height))
		return out
	}

	for i, br := range branches {
		line := groupLeft + g.lines[i]
		// The axis branch leaves from the diamond's bottom tip; the others
		// drop from the baseline at the diamond's centre.
		top := choiceMid
		if i == 0 {
			top = choiceBottom
		}
		var text string
		if br != nil {
			text = br.Label
		}

		if !present(br) {
			pass := vertical(branchEdgeID(owner, i, "pass"), line, top, b.Height)
			pass.Text = text
			out.Edges = append(out.Edges, pass)
			continue
		}

		br.Offset = Point{X: groupLeft + g.lefts[i], Y: groupTop}
		out.Nodes = append(out.Nodes, br)

		entry := vertical(branchEdgeID(owner, i, "entry"), line, top, groupTop)
		entry.Text = text
		entry.Directed = true
		out.Edges = append(out.Edges,
			entry,
			vertical(branchEdgeID(owner, i, "exit"), line, groupTop+br.Boundary.Height, b.Height),
		)
	}

	if len(branches) > 1 {
		last := groupLeft + g.lines[len(branches)-1]
		out.Edges = append(out.Edges,
			horizontal(edgeID(owner, "baseline"), choiceMid, axis+choice.Boundary.Right(), last),
			horizontal(edgeID(owner, "bottom"), b.Height, axis, last),
		)
	}
	return out
}

// =============================================================================
// Default Spacing
// =============================================================================

// IfElseBoundary measures with DefaultSpacing.
func IfElseBoundary(condition, choice, left, right Boundary) Boundary {
	return DefaultSpacing().IfElseBoundary(condition, choice, left, right)
}

// SwitchCaseBoundary measures with DefaultSpacing.
func SwitchCaseBoundary(condition, choice Boundary, branches []Boundary) Boundary {
	return DefaultSpacing().SwitchCaseBoundary(condition, choice, branches)
}

// IfElseLayout lays out with DefaultSpacing.
func IfElseLayout(owner string, condition, choice, left, right *GraphNode) Layout {
	return DefaultSpacing().IfElseLayout(owner, condition, choice, left, right)
}

// SwitchCaseLayout lays out with DefaultSpacing.
func SwitchCaseLayout(owner string, condition, choice *GraphNode, branches []*GraphNode) Layout {
	return DefaultSpacing().SwitchCaseLayout(owner, condition, choice, branches)
}
