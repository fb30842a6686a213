package layout

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowtower/pkg/flow"
	"github.com/matzehuels/flowtower/pkg/observability"
)

// Engine walks a flow tree: Measure bottom-up with the boundary calculators,
// then Arrange top-down with the layouters. An Engine holds no per-tree
// state and may be shared between goroutines.
type Engine struct {
	measurer Measurer
	spacing  Spacing
	rootHead bool
	rootTail bool
	logger   *log.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithSpacing sets the gaps and marker sizes.
func WithSpacing(s Spacing) EngineOption {
	return func(e *Engine) { e.spacing = s }
}

// WithRootEdges adds head and tail connectors to a root sequence. Nested
// sequences never get them.
func WithRootEdges(head, tail bool) EngineOption {
	return func(e *Engine) {
		e.rootHead = head
		e.rootTail = tail
	}
}

// WithLogger sets the logger for debug output. The default discards.
func WithLogger(l *log.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine returns an engine that sizes element leaves with m.
func NewEngine(m Measurer, opts ...EngineOption) *Engine {
	e := &Engine{
		measurer: m,
		spacing:  DefaultSpacing(),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Spacing returns the engine's spacing.
func (e *Engine) Spacing() Spacing { return e.spacing }

// withMeasurer returns a copy of e sizing leaves with m.
func (e *Engine) withMeasurer(m Measurer) *Engine {
	c := *e
	c.measurer = m
	return &c
}

// =============================================================================
// Measure (bottom-up)
// =============================================================================

// Measure builds a fresh tree for root and sizes every box. Unknown kinds are
// measured as elements; missing children yield zero boundaries. A nil root
// returns nil.
func (e *Engine) Measure(root *flow.Node) *Tree {
	start := time.Now()
	t := e.measure(root, true)
	n := t.Count()
	d := time.Since(start)

	observability.Layout().OnMeasure(n, d)
	e.logger.Debug("measured flow tree", "nodes", n, "boundary", t.Boundary(), "duration", d)
	return t
}

func (e *Engine) measure(n *flow.Node, isRoot bool) *Tree {
	if n == nil {
		return nil
	}
	box := &GraphNode{ID: n.ID, Kind: n.Kind, Label: n.Label}
	if n.Payload != nil {
		box.Payload = n.Payload
	}
	t := &Tree{Box: box}

	switch n.Kind {
	case flow.KindSequence:
		for _, st := range n.Steps {
			if c := e.measure(st, false); c != nil {
				t.slots = append(t.slots, c)
			}
		}
		if isRoot {
			t.head, t.tail = e.rootHead, e.rootTail
		}

	case flow.KindDecision:
		t.switchCase = !n.IsIfElse()
		t.slots = []*Tree{
			e.measure(n.Condition, false),
			e.marker(n.ID, "choice", flow.KindChoice, e.spacing.Diamond),
		}
		branches := n.Branches
		if !t.switchCase {
			branches = make([]*flow.Node, 2)
			copy(branches, n.Branches)
		}
		for _, b := range branches {
			t.slots = append(t.slots, e.measure(b, false))
		}

	case flow.KindLoop:
		t.slots = []*Tree{
			e.measure(n.Detail, false),
			e.marker(n.ID, "loop-start", flow.KindLoopStart, e.spacing.LoopMarker),
			e.measure(n.Body, false),
			e.marker(n.ID, "loop-end", flow.KindLoopEnd, e.spacing.LoopMarker),
		}

	default:
		box.Kind = flow.KindElement
		box.Boundary = e.measurer.Measure(n.ID, flow.KindElement, LabelPayload{Label: n.Label, Payload: n.Payload})
		return t
	}

	t.Children = nonNilTrees(t.slots)
	box.Boundary = e.composite(t, (*Tree).Boundary)
	return t
}

func (e *Engine) marker(owner, role string, kind flow.Kind, size Size) *Tree {
	return &Tree{Box: NewGraphNode(edgeID(owner, role), kind, size.Boundary())}
}

// composite runs the calculator for t's kind over its slots, sizing each
// slot with child.
func (e *Engine) composite(t *Tree, child func(*Tree) Boundary) Boundary {
	s := e.spacing
	b := func(i int) Boundary { return child(t.slot(i)) }

	switch t.Box.Kind {
	case flow.KindSequence:
		bounds := make([]Boundary, len(t.slots))
		for i := range t.slots {
			bounds[i] = b(i)
		}
		return s.SequenceBoundary(bounds, t.head, t.tail)

	case flow.KindDecision:
		if !t.switchCase {
			return s.IfElseBoundary(b(0), b(1), b(2), b(3))
		}
		var branches []Boundary
		for i := 2; i < len(t.slots); i++ {
			branches = append(branches, b(i))
		}
		return s.SwitchCaseBoundary(b(0), b(1), branches)

	case flow.KindLoop:
		return s.ForeachBoundary(b(0), b(2), b(1), b(3))
	}
	return t.Box.Boundary
}

// Remeasure recomputes the root boundary of an already measured or arranged
// tree from the stored leaf and marker boundaries. Offsets are ignored.
func (e *Engine) Remeasure(t *Tree) Boundary {
	if t == nil {
		return ZeroBoundary
	}
	if !t.Box.Kind.IsComposite() {
		return t.Box.Boundary
	}
	return e.composite(t, e.Remeasure)
}

// =============================================================================
// Arrange (top-down)
// =============================================================================

// Arrange runs the layouter of every composite in t, setting child offsets
// and storing edges on each subtree.
func (e *Engine) Arrange(t *Tree) {
	start := time.Now()
	e.arrange(t)
	n, edges := t.Count(), t.EdgeCount()
	d := time.Since(start)

	observability.Layout().OnArrange(n, edges, d)
	e.logger.Debug("arranged flow tree", "nodes", n, "edges", edges, "duration", d)
}

func (e *Engine) arrange(t *Tree) {
	if t == nil || t.Box.Boundary.IsZero() || !t.Box.Kind.IsComposite() {
		return
	}
	s := e.spacing
	id := t.Box.ID

	var l Layout
	switch t.Box.Kind {
	case flow.KindSequence:
		l = s.SequenceLayout(id, t.slotBoxes(0), t.head, t.tail)
	case flow.KindDecision:
		if t.switchCase {
			l = s.SwitchCaseLayout(id, t.slotBox(0), t.slotBox(1), t.slotBoxes(2))
		} else {
			l = s.IfElseLayout(id, t.slotBox(0), t.slotBox(1), t.slotBox(2), t.slotBox(3))
		}
	case flow.KindLoop:
		l = s.ForeachLayout(id, t.slotBox(0), t.slotBox(2), t.slotBox(1), t.slotBox(3))
	}
	t.Edges = l.Edges

	for _, c := range t.Children {
		e.arrange(c)
	}
}

// Compute measures and arranges root and returns both the tree and its
// flattened result.
func (e *Engine) Compute(root *flow.Node) (*Tree, Result) {
	t := e.Measure(root)
	e.Arrange(t)
	return t, t.Flatten()
}
