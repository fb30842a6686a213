package cache

import "github.com/matzehuels/flowtower/pkg/layout"

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	// LayoutKey identifies a computed layout of a document.
	LayoutKey(docHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered artifact of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists the options that change a computed layout.
type LayoutKeyOpts struct {
	Spacing   layout.Spacing `json:"spacing"`
	Measurer  string         `json:"measurer,omitempty"`
	RootEdges bool           `json:"root_edges,omitempty"`
}

// ArtifactKeyOpts lists the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Style    string  `json:"style,omitempty"`
	Seed     uint64  `json:"seed,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Clusters bool    `json:"clusters,omitempty"`
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<hash>".
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
