// Package pipeline provides the core flow-diagram pipeline for flowtower.
//
// This package implements the complete parse → layout → render pipeline used
// by both the CLI and the HTTP server. By centralizing this logic, both entry
// points share validation, defaults and caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Read a JSON or TOML flow document, assign ids, validate
//  2. Layout: Measure and arrange the flow tree with pkg/layout
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Layouts and artifacts are cached by content hash; parsing is cheap and
// never cached.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "welcome.toml",
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	doc, err := runner.Parse(ctx, opts)
//	l, err := runner.ComputeLayout(ctx, doc, opts)
//	artifacts, err := runner.Render(ctx, l, doc, opts)
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowtower/pkg/cache"
	"github.com/matzehuels/flowtower/pkg/errors"
	"github.com/matzehuels/flowtower/pkg/flow"
	"github.com/matzehuels/flowtower/pkg/graph"
	flowio "github.com/matzehuels/flowtower/pkg/io"
	"github.com/matzehuels/flowtower/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSeed is the default seed for the sketch style.
	DefaultSeed = uint64(42)

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0

	// DefaultStyle is the default visual style.
	DefaultStyle = graph.StyleSimple
)

// Format constants for output formats.
const (
	FormatSVG  = graph.FormatSVG
	FormatPNG  = graph.FormatPNG
	FormatPDF  = graph.FormatPDF
	FormatJSON = graph.FormatJSON
	FormatDOT  = graph.FormatDOT
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	graph.StyleSimple: true,
	graph.StyleSketch: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options: either Path, or Data with its Format.
	Path   string `json:"path,omitempty"`
	Data   []byte `json:"-"`
	Format string `json:"format,omitempty"` // "json" or "toml"
	Title  string `json:"title,omitempty"`  // overrides the document title

	// Layout options
	Spacing   layout.Spacing `json:"spacing"`
	RootEdges bool           `json:"root_edges,omitempty"` // head and tail stubs on the root sequence

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Style    string   `json:"style,omitempty"`
	Seed     uint64   `json:"seed,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Nodelink bool     `json:"nodelink,omitempty"` // draw SVG/PNG/PDF with Graphviz placement
	Clusters bool     `json:"clusters,omitempty"` // frame decisions and loops in DOT output

	Refresh bool `json:"refresh,omitempty"` // bypass cache reads

	// Runtime options (not serialized)
	Logger   *log.Logger          `json:"-"`
	Measurer layout.LabelMeasurer `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the parsed flow document with ids assigned.
	Document *flow.Document

	// DocumentHash is the content hash of the canonical document.
	DocumentHash string

	// Layout is the computed layout in wire format.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int // flow tree nodes
	BoxCount   int // positioned leaves and markers
	EdgeCount  int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(graph.Formats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: %s)", style, strings.Join(graph.Styles, ", "))
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks.
// An empty string yields the default format.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return []string{FormatSVG}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks that a document source is set.
func (o *Options) ValidateForParse() error {
	if o.Path == "" && len(o.Data) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "a document path or document data is required")
	}
	if o.Path == "" {
		if o.Format == "" {
			o.Format = flowio.FormatJSON
		}
		if o.Format != flowio.FormatJSON && o.Format != flowio.FormatTOML {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid document format: %q (must be json or toml)", o.Format)
		}
	}
	o.setLoggerDefault()
	return nil
}

// SetLayoutDefaults sets default values for layout computation. A zero
// Spacing means the default spacing.
func (o *Options) SetLayoutDefaults() {
	if o.Spacing == (layout.Spacing{}) {
		o.Spacing = layout.DefaultSpacing()
	}
	if o.Measurer == (layout.LabelMeasurer{}) {
		o.Measurer = layout.NewLabelMeasurer()
	}
	o.setLoggerDefault()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return o.Spacing.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	o.setLoggerDefault()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Source returns a short description of the document source for logs.
func (o *Options) Source() string {
	if o.Path != "" {
		return o.Path
	}
	return fmt.Sprintf("<%d bytes of %s>", len(o.Data), o.Format)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Spacing:   o.Spacing,
		Measurer:  fmt.Sprintf("%+v", o.Measurer),
		RootEdges: o.RootEdges,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering. Options
// that do not affect a format are left out of its key.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatDOT:
		k.Clusters = o.Clusters
		return k
	case FormatJSON:
		return k
	case FormatPNG:
		k.Scale = o.Scale
	}
	if o.Nodelink {
		k.Style = "nodelink"
		k.Clusters = o.Clusters
		return k
	}
	k.Style = o.Style
	if o.Style == graph.StyleSketch {
		k.Seed = o.Seed
	}
	return k
}
