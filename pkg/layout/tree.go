package layout

// Tree is the measured (and, after Arrange, positioned) form of a flow tree.
// Edges are in this node's own coordinate space.
type Tree struct {
	Box      *GraphNode
	Children []*Tree
	Edges    []Edge

	// slots holds children in role order with nil for missing ones:
	//	sequence: steps
	//	decision: condition, choice, branches...
	//	loop:     detail, start, body, end
	slots      []*Tree
	switchCase bool
	head, tail bool
}

// Result is a flattened layout: every leaf and marker box and every edge,
// translated into root coordinates.
type Result struct {
	Boundary Boundary    `json:"boundary"`
	Nodes    []GraphNode `json:"nodes"`
	Edges    []Edge      `json:"edges"`
}

// Boundary returns the root boundary, or ZeroBoundary for a nil tree.
func (t *Tree) Boundary() Boundary {
	if t == nil {
		return ZeroBoundary
	}
	return t.Box.Boundary
}

// IsSwitch reports whether a decision tree uses the switch/case layouter.
func (t *Tree) IsSwitch() bool { return t.switchCase }

// Flatten collects positioned leaves, markers and edges in root coordinates.
// Subtrees with a zero boundary render nothing and are skipped. The root is
// placed at the origin regardless of its own offset.
func (t *Tree) Flatten() Result {
	if t == nil {
		return Result{Boundary: ZeroBoundary}
	}
	r := Result{Boundary: t.Box.Boundary}
	t.flatten(Point{}, &r)
	return r
}

func (t *Tree) flatten(origin Point, r *Result) {
	if t.Box.Boundary.IsZero() {
		return
	}
	for _, e := range t.Edges {
		r.Edges = append(r.Edges, e.Translate(origin))
	}
	if !t.Box.Kind.IsComposite() {
		n := *t.Box
		n.Offset = origin
		r.Nodes = append(r.Nodes, n)
		return
	}
	for _, c := range t.Children {
		c.flatten(origin.Add(c.Box.Offset), r)
	}
}

// Visit is called by Walk with the absolute position of each box.
type Visit func(t *Tree, origin Point, depth int) bool

// Walk visits every rendered box depth-first, parents first. Returning false
// skips the box's children.
func (t *Tree) Walk(fn Visit) {
	if t == nil {
		return
	}
	t.walk(Point{}, 0, fn)
}

func (t *Tree) walk(origin Point, depth int, fn Visit) {
	if t.Box.Boundary.IsZero() {
		return
	}
	if !fn(t, origin, depth) {
		return
	}
	for _, c := range t.Children {
		c.walk(origin.Add(c.Box.Offset), depth+1, fn)
	}
}

// Count returns the number of boxes in the tree, including markers and
// zero-boundary subtrees.
func (t *Tree) Count() int {
	if t == nil {
		return 0
	}
	n := 1
	for _, c := range t.Children {
		n += c.Count()
	}
	return n
}

// EdgeCount returns the number of edges emitted across the tree.
func (t *Tree) EdgeCount() int {
	if t == nil {
		return 0
	}
	n := len(t.Edges)
	for _, c := range t.Children {
		n += c.EdgeCount()
	}
	return n
}

// Find returns the subtree whose box has the given id.
func (t *Tree) Find(id string) *Tree {
	if t == nil {
		return nil
	}
	if t.Box.ID == id {
		return t
	}
	for _, c := range t.Children {
		if f := c.Find(id); f != nil {
			return f
		}
	}
	return nil
}

func (t *Tree) slot(i int) *Tree {
	if i >= len(t.slots) {
		return nil
	}
	return t.slots[i]
}

func (t *Tree) slotBox(i int) *GraphNode {
	if s := t.slot(i); s != nil {
		return s.Box
	}
	return nil
}

func (t *Tree) slotBoxes(from int) []*GraphNode {
	if from >= len(t.slots) {
		return nil
	}
	out := make([]*GraphNode, 0, len(t.slots)-from)
	for i := from; i < len(t.slots); i++ {
		out = append(out, t.slotBox(i))
	}
	return out
}

func nonNilTrees(ts []*Tree) []*Tree {
	var out []*Tree
	for _, c := range ts {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
