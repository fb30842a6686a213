package layout

import (
	"sync"
	"testing"

	"github.com/matzehuels/flowtower/pkg/flow"
)

func TestTrackerPhases(t *testing.T) {
	if got := NewTracker().Phase(); got != PhaseReady {
		t.Errorf("tracker without children phase = %v, want ready", got)
	}

	tr := NewTracker("a", "b")
	if got := tr.Phase(); got != PhaseAwaitingMeasurement {
		t.Fatalf("Phase() = %v, want awaiting_measurement", got)
	}

	steps := []struct {
		name      string
		id        string
		b         Boundary
		wantPass  bool
		wantPhase Phase
	}{
		{"first child", "a", card, false, PhaseAwaitingMeasurement},
		{"same size again", "a", card, false, PhaseAwaitingMeasurement},
		{"unknown child", "zzz", card, false, PhaseAwaitingMeasurement},
		{"last child", "b", card, true, PhaseReady},
		{"unchanged while ready", "b", card, false, PhaseReady},
		{"changed while ready", "b", NewBoundary(280, 120), true, PhaseReady},
		{"changed back", "b", card, true, PhaseReady},
	}

	for _, st := range steps {
		if got := tr.Report(st.id, st.b); got != st.wantPass {
			t.Errorf("%s: Report() = %v, want %v", st.name, got, st.wantPass)
		}
		if got := tr.Phase(); got != st.wantPhase {
			t.Errorf("%s: Phase() = %v, want %v", st.name, got, st.wantPhase)
		}
	}
}

func TestTrackerSizesReplacedWholesale(t *testing.T) {
	tr := NewTracker("a")
	tr.Report("a", card)
	snapshot := tr.Sizes()

	tr.Report("a", NewBoundary(10, 10))
	if snapshot["a"] != card {
		t.Errorf("snapshot changed to %+v after a later report", snapshot["a"])
	}
	if b, _ := tr.Size("a"); b != NewBoundary(10, 10) {
		t.Errorf("Size(a) = %+v, want 10x10", b)
	}
}

func TestTrackerReset(t *testing.T) {
	tr := NewTracker("a", "b")
	tr.Report("a", card)
	tr.Report("b", card)

	tr.Reset("b", "c")
	if got := tr.Phase(); got != PhaseAwaitingMeasurement {
		t.Errorf("Phase() after Reset = %v, want awaiting_measurement", got)
	}
	if _, ok := tr.Size("a"); ok {
		t.Error("size of dropped child a kept")
	}
	if _, ok := tr.Size("b"); !ok {
		t.Error("size of kept child b dropped")
	}

	tr.Reset("b")
	if got := tr.Phase(); got != PhaseReady {
		t.Errorf("Phase() after Reset to known children = %v, want ready", got)
	}
}

func TestTrackerConcurrentReports(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}
	tr := NewTracker(ids...)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		for _, id := range ids {
			wg.Add(1)
			go func(id string, h float64) {
				defer wg.Done()
				tr.Report(id, NewBoundary(280, h))
			}(id, float64(80+i%3))
		}
	}
	wg.Wait()

	if got := tr.Phase(); got != PhaseReady {
		t.Errorf("Phase() = %v, want ready", got)
	}
	if got := len(tr.Sizes()); got != len(ids) {
		t.Errorf("len(Sizes()) = %d, want %d", got, len(ids))
	}
}

func sessionFlow() *flow.Node {
	return flow.Sequence("root",
		flow.Element("a", ""),
		flow.IfElse("d", flow.Element("c", ""),
			flow.Sequence("l", flow.Element("x", "")),
			nil,
		),
	)
}

func TestSessionReadiness(t *testing.T) {
	s := NewSession(fixedEngine(), sessionFlow())

	if got := s.Generation(); got != 1 {
		t.Errorf("Generation() = %d, want 1 after speculative pass", got)
	}
	if _, ready := s.Layout(); ready {
		t.Error("Layout() ready before any report")
	}

	tall := NewBoundary(280, 100)
	steps := []struct {
		id        string
		b         Boundary
		wantPass  bool
		wantGen   int
		wantReady bool
	}{
		{"a", tall, true, 2, false},
		{"a", tall, false, 2, false},
		{"unknown", tall, false, 2, false},
		{"c", card, true, 3, false},
		{"x", card, true, 4, true},
		{"x", card, false, 4, true},
		{"x", tall, true, 5, true},
	}
	for i, st := range steps {
		if got := s.Report(st.id, st.b); got != st.wantPass {
			t.Errorf("step %d: Report(%s) = %v, want %v", i, st.id, got, st.wantPass)
		}
		if got := s.Generation(); got != st.wantGen {
			t.Errorf("step %d: Generation() = %d, want %d", i, got, st.wantGen)
		}
		if _, ready := s.Layout(); ready != st.wantReady {
			t.Errorf("step %d: ready = %v, want %v", i, ready, st.wantReady)
		}
	}

	tree, _ := s.Layout()
	if got := tree.Find("a").Box.Boundary; got != tall {
		t.Errorf("a boundary = %+v, want reported %+v", got, tall)
	}
	if got := tree.Find("x").Box.Boundary; got != tall {
		t.Errorf("x boundary = %+v, want reported %+v", got, tall)
	}
	if phase, ok := s.Phase("d"); !ok || phase != PhaseReady {
		t.Errorf("Phase(d) = %v, %v; want ready", phase, ok)
	}
}

func TestSessionSpeculativeSizes(t *testing.T) {
	s := NewSession(fixedEngine(), sessionFlow())
	tree, _ := s.Layout()
	if got := tree.Find("a").Box.Boundary; got != card {
		t.Errorf("speculative a = %+v, want host default %+v", got, card)
	}
}

func TestSessionLeafRoot(t *testing.T) {
	s := NewSession(fixedEngine(), flow.Element("only", ""))
	if _, ready := s.Layout(); ready {
		t.Error("leaf root ready before report")
	}
	if !s.Report("only", card) {
		t.Error("Report(only) did not trigger a pass")
	}
	if _, ready := s.Layout(); !ready {
		t.Error("leaf root not ready after report")
	}
}

func TestSessionConcurrentReports(t *testing.T) {
	s := NewSession(fixedEngine(), sessionFlow())
	var wg sync.WaitGroup
	for _, id := range []string{"a", "c", "x"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			s.Report(id, card)
		}(id)
	}
	wg.Wait()

	if _, ready := s.Layout(); !ready {
		t.Error("not ready after all leaves reported")
	}
	if got := s.Generation(); got != 4 {
		t.Errorf("Generation() = %d, want 4", got)
	}
}

func TestSessionReadyWithUnpaintedSubtree(t *testing.T) {
	// A decision without a condition has a zero boundary, so its branch is
	// never painted and never reported.
	root := flow.Sequence("root",
		flow.Element("a", ""),
		&flow.Node{ID: "d", Kind: flow.KindDecision, Branches: []*flow.Node{
			flow.Sequence("b0", flow.Element("x", "")),
		}},
	)
	s := NewSession(fixedEngine(), root)

	tree, ready := s.Layout()
	if ready {
		t.Fatal("Layout() ready before any report")
	}
	res := tree.Flatten()
	for _, n := range res.Nodes {
		s.Report(n.ID, card)
	}

	if _, ready := s.Layout(); !ready {
		t.Errorf("not ready after reporting all %d painted nodes", len(res.Nodes))
	}
	if phase, ok := s.Phase("b0"); !ok || phase != PhaseAwaitingMeasurement {
		t.Errorf("Phase(b0) = %v, %v; want awaiting_measurement", phase, ok)
	}
}

func TestSessionAssignsMissingIDs(t *testing.T) {
	root := flow.Sequence("",
		flow.Element("", "first"),
		flow.Element("", "second"),
	)
	s := NewSession(fixedEngine(), root)

	seen := map[string]bool{}
	flow.Walk(root, func(n *flow.Node) bool {
		if n.ID == "" {
			t.Errorf("node %q left without an id", n.Label)
		}
		seen[n.ID] = true
		return true
	})
	if len(seen) != 3 {
		t.Fatalf("got %d distinct ids, want 3", len(seen))
	}

	tree, _ := s.Layout()
	for _, n := range tree.Flatten().Nodes {
		if _, ready := s.Layout(); ready {
			t.Fatalf("ready before %s reported", n.ID)
		}
		s.Report(n.ID, card)
	}
	if _, ready := s.Layout(); !ready {
		t.Error("not ready after every leaf reported")
	}
	if phase, ok := s.Phase(root.ID); !ok || phase != PhaseReady {
		t.Errorf("Phase(root) = %v, %v; want ready", phase, ok)
	}
}
