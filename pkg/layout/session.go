package layout

import (
	"sync"

	"github.com/matzehuels/flowtower/pkg/flow"
	"github.com/matzehuels/flowtower/pkg/observability"
)

// Session drives the two-phase measure/render cycle for a host that only
// learns a leaf's size after painting it.
//
// The first pass sizes leaves with the engine's Measurer (the host's
// speculative default). The host paints, then calls Report with real sizes.
// Each composite's Tracker decides whether a new pass is due, and Layout
// reports ready once every painted leaf has reported. Leaves inside a
// zero-boundary subtree are never painted and are not waited for.
type Session struct {
	mu         sync.Mutex
	engine     *Engine
	root       *flow.Node
	trackers   map[string]*Tracker // composite id -> tracker
	owners     map[string]string   // leaf id -> composite id
	tree       *Tree
	painted    map[string]bool // leaf ids drawn by the latest pass
	generation int
}

// rootOwner keys the tracker of a root that is itself a leaf.
const rootOwner = ""

// NewSession binds e to root and runs the speculative first pass. Nodes of
// root without an id are given one with flow.AssignIDs, so root is modified.
func NewSession(e *Engine, root *flow.Node) *Session {
	flow.AssignIDs(root)
	s := &Session{
		engine:   e,
		root:     root,
		trackers: map[string]*Tracker{},
		owners:   map[string]string{},
	}
	s.index()
	s.relayout()
	return s
}

// index creates one tracker per composite expecting its direct leaf
// children. Composite children compute their own size and are not tracked.
func (s *Session) index() {
	if s.root == nil {
		return
	}
	if !s.root.Kind.IsComposite() {
		s.owners[s.root.ID] = rootOwner
		s.trackers[rootOwner] = NewTracker(s.root.ID)
		return
	}
	flow.Walk(s.root, func(n *flow.Node) bool {
		if !n.Kind.IsComposite() {
			return false
		}
		var leaves []string
		for _, c := range n.Children() {
			if !c.Kind.IsComposite() {
				leaves = append(leaves, c.ID)
				s.owners[c.ID] = n.ID
			}
		}
		s.trackers[n.ID] = NewTracker(leaves...)
		return true
	})
}

// measure prefers reported sizes and falls back to the host default.
func (s *Session) measure(id string, kind flow.Kind, payload any) Boundary {
	if owner, ok := s.owners[id]; ok {
		if b, ok := s.trackers[owner].Size(id); ok {
			return b
		}
	}
	return s.engine.measurer.Measure(id, kind, payload)
}

func (s *Session) relayout() {
	eng := s.engine.withMeasurer(MeasurerFunc(s.measure))
	t := eng.Measure(s.root)
	eng.Arrange(t)
	s.tree = t
	s.painted = paintedLeaves(t)
	s.generation++
	if s.generation > 1 {
		observability.Layout().OnRelayout(s.generation)
		s.engine.logger.Debug("relayout", "generation", s.generation)
	}
}

// Report records the rendered size of leaf id. It returns true when the
// report triggered a new layout pass. Unknown ids and unchanged sizes are
// ignored.
func (s *Session) Report(id string, b Boundary) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.owners[id]
	if !ok {
		return false
	}
	if !s.trackers[owner].Report(id, b) {
		return false
	}
	s.relayout()
	return true
}

// Layout returns the latest tree and whether every composite is Ready.
func (s *Session) Layout() (*Tree, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree, s.ready()
}

func (s *Session) ready() bool {
	for id := range s.painted {
		owner, ok := s.owners[id]
		if !ok {
			continue
		}
		if _, ok := s.trackers[owner].Size(id); !ok {
			return false
		}
	}
	return true
}

// paintedLeaves collects the ids of leaves with a non-zero boundary in a
// non-zero subtree, the ones a host will draw.
func paintedLeaves(t *Tree) map[string]bool {
	painted := map[string]bool{}
	t.Walk(func(n *Tree, _ Point, _ int) bool {
		if !n.Box.Kind.IsComposite() {
			painted[n.Box.ID] = true
		}
		return true
	})
	return painted
}

// Phase returns the phase of composite id. A composite inside a subtree that
// is not painted may stay PhaseAwaitingMeasurement while Layout is ready.
func (s *Session) Phase(id string) (Phase, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trackers[id]
	if !ok {
		return PhaseAwaitingMeasurement, false
	}
	return t.Phase(), true
}

// Generation returns the number of layout passes run so far.
func (s *Session) Generation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}
