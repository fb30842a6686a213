package layout

import (
	"maps"
	"sync"
)

// Phase is the measurement state of a composite node.
type Phase int

const (
	// PhaseAwaitingMeasurement: at least one child has not reported a real
	// size, so a layout would use speculative sizes.
	PhaseAwaitingMeasurement Phase = iota
	// PhaseReady: every child has reported; offsets are final.
	PhaseReady
)

func (p Phase) String() string {
	if p == PhaseReady {
		return "ready"
	}
	return "awaiting_measurement"
}

// Tracker follows one composite through the two-phase measure/render cycle.
// It keeps the last reported boundary of each expected child. The map is
// never mutated in place: every accepted report swaps in a new copy, so a
// snapshot returned by Sizes stays consistent.
type Tracker struct {
	mu       sync.Mutex
	expected map[string]bool
	sizes    map[string]Boundary
	phase    Phase
}

// NewTracker returns a tracker waiting for the given child ids. With no
// children it starts Ready.
func NewTracker(children ...string) *Tracker {
	t := &Tracker{sizes: map[string]Boundary{}}
	t.reset(children)
	return t
}

// Phase returns the current phase.
func (t *Tracker) Phase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phase
}

// Sizes returns the last reported boundaries keyed by child id. The map must
// not be modified.
func (t *Tracker) Sizes() map[string]Boundary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sizes
}

// Size returns the last reported boundary of child id.
func (t *Tracker) Size(id string) (Boundary, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	b, ok := t.sizes[id]
	return b, ok
}

// Report records the rendered size of child id and reports whether a layout
// pass is needed. Reports for unknown children and reports repeating the
// last known size are ignored. The tracker becomes Ready once every expected
// child has reported; until then no pass is requested. Once Ready, any
// changed size requests a pass.
func (t *Tracker) Report(id string, b Boundary) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.expected[id] {
		return false
	}
	if old, ok := t.sizes[id]; ok && old == b {
		return false
	}

	next := maps.Clone(t.sizes)
	next[id] = b
	t.sizes = next

	if t.phase == PhaseReady {
		return true
	}
	if t.complete() {
		t.phase = PhaseReady
		return true
	}
	return false
}

// Reset replaces the expected children, keeping sizes of children that are
// still expected. It is used when the flow tree itself changes.
func (t *Tracker) Reset(children ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reset(children)
}

func (t *Tracker) reset(children []string) {
	t.expected = make(map[string]bool, len(children))
	next := make(map[string]Boundary, len(children))
	for _, id := range children {
		t.expected[id] = true
		if b, ok := t.sizes[id]; ok {
			next[id] = b
		}
	}
	t.sizes = next
	t.phase = PhaseAwaitingMeasurement
	if t.complete() {
		t.phase = PhaseReady
	}
}

func (t *Tracker) complete() bool {
	for id := range t.expected {
		if _, ok := t.sizes[id]; !ok {
			return false
		}
	}
	return true
}
