package pipeline

import (
	"github.com/matzehuels/flowtower/pkg/flow"
	"github.com/matzehuels/flowtower/pkg/graph"
	"github.com/matzehuels/flowtower/pkg/layout"
)

// =============================================================================
// Layout Generation
// =============================================================================

// NewEngine builds a layout engine configured from opts.
func NewEngine(opts Options) *layout.Engine {
	opts.SetLayoutDefaults()
	return layout.NewEngine(opts.Measurer,
		layout.WithSpacing(opts.Spacing),
		layout.WithRootEdges(opts.RootEdges, opts.RootEdges),
		layout.WithLogger(opts.Logger),
	)
}

// GenerateLayout measures and arranges doc and returns the serializable
// layout.
func GenerateLayout(doc *flow.Document, opts Options) (graph.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}
	_, res := NewEngine(opts).Compute(doc.Root)
	return graph.FromResult(doc.Title, res), nil
}
