// Package layout computes the geometry of flow diagrams.
//
// # Overview
//
// Given a [flow.Node] tree, the engine computes three things:
//
//   - the footprint of every node ([Boundary])
//   - the offset of every child inside its container ([GraphNode].Offset)
//   - the connector segments between nodes ([Edge])
//
// All of it keeps one shared vertical flow axis: every box records where its
// axis sits ([Boundary].AxisX) and containers align children on it, so a loop
// inside a branch inside a sequence composes without any adjustment.
//
// # Building Blocks
//
// Boundary calculators size a container from its children's boundaries:
// [Spacing.SequenceBoundary], [Spacing.IfElseBoundary],
// [Spacing.SwitchCaseBoundary] and [Spacing.ForeachBoundary]. A missing
// required child yields [ZeroBoundary]; nothing here returns an error.
//
// Layouters position already measured children and emit edges:
// [Spacing.SequenceLayout], [Spacing.IfElseLayout], [Spacing.SwitchCaseLayout]
// and [Spacing.ForeachLayout]. Each reuses its calculator for the container
// boundary, so measuring and laying out can never disagree.
//
// Package-level functions of the same names use [DefaultSpacing].
//
// # Engine
//
// [Engine] walks a whole tree. [Engine.Measure] works bottom-up, asking the
// host's [Measurer] for element sizes and inserting choice and loop markers.
// [Engine.Arrange] works top-down and runs the layouters. [Tree.Flatten]
// translates the result into root coordinates:
//
//	eng := layout.NewEngine(layout.NewLabelMeasurer())
//	tree, res := eng.Compute(doc.Root)
//	for _, n := range res.Nodes {
//	    paint(n.ID, n.Offset, n.Boundary)
//	}
//
// # Two-Phase Measurement
//
// Hosts that only know a leaf's size after painting it use a [Session]. The
// first pass uses speculative sizes; the host reports real ones with
// [Session.Report]. A [Tracker] per composite moves from
// [PhaseAwaitingMeasurement] to [PhaseReady] once all of its leaves have
// reported, and only a changed size triggers another pass.
//
// # Edge Counts
//
// For a decision with condition and choice present and n populated branches
// the layouter emits 2 edges for n == 0, 3 for n == 1 and 1 + 2n + 2 for
// n > 1 (one condition edge, entry and exit per branch, baseline and bottom
// line). An empty branch contributes a single pass-through edge. A populated
// loop emits 6 edges.
package layout
