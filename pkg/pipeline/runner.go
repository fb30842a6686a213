package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowtower/pkg/cache"
	"github.com/matzehuels/flowtower/pkg/flow"
	"github.com/matzehuels/flowtower/pkg/graph"
	"github.com/matzehuels/flowtower/pkg/observability"
)

// Cache key types reported to the cache hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	doc, err := r.Parse(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Document = doc
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = flow.Count(doc.Root)

	r.Logger.Info("parsed flow document",
		"title", doc.Title,
		"nodes", result.Stats.NodeCount,
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, docHash, layoutHit, err := r.layout(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.DocumentHash = docHash
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.BoxCount = len(l.Nodes)
	result.Stats.EdgeCount = len(l.Edges)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"size", fmt.Sprintf("%.0fx%.0f", l.Width, l.Height),
		"boxes", len(l.Nodes),
		"edges", len(l.Edges),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.render(ctx, l, doc, docHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Parse reads and validates the flow document.
func (r *Runner) Parse(ctx context.Context, opts Options) (*flow.Document, error) {
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnParseStart(ctx, opts.Format, opts.Source())

	doc, err := Parse(opts)
	nodes := 0
	if doc != nil {
		nodes = flow.Count(doc.Root)
	}
	hooks.OnParseComplete(ctx, opts.Format, opts.Source(), nodes, time.Since(start), err)
	return doc, err
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, doc *flow.Document, opts Options) (graph.Layout, bool, error) {
	l, _, hit, err := r.layout(ctx, doc, opts)
	return l, hit, err
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, doc *flow.Document, opts Options) (graph.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, doc, opts)
	return l, err
}

func (r *Runner) layout(ctx context.Context, doc *flow.Document, opts Options) (graph.Layout, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, "", false, err
	}

	docHash, err := DocumentHash(doc)
	if err != nil {
		return graph.Layout{}, "", false, fmt.Errorf("hash document: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(docHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit := r.cacheGet(ctx, keyTypeLayout, cacheKey); hit {
			if cached, err := graph.UnmarshalLayout(data); err == nil {
				return cached, docHash, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnLayoutStart(ctx, flow.Count(doc.Root))
	l, err := GenerateLayout(doc, opts)
	hooks.OnLayoutComplete(ctx, time.Since(start), err)
	if err != nil {
		return graph.Layout{}, "", false, err
	}

	if data, err := graph.MarshalLayout(l); err == nil {
		r.cacheSet(ctx, keyTypeLayout, cacheKey, data, cache.LayoutTTL)
	}
	return l, docHash, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l graph.Layout, doc *flow.Document, opts Options) (map[string][]byte, bool, error) {
	docHash := ""
	if doc != nil {
		h, err := DocumentHash(doc)
		if err != nil {
			return nil, false, fmt.Errorf("hash document: %w", err)
		}
		docHash = h
	}
	return r.render(ctx, l, doc, docHash, opts)
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l graph.Layout, doc *flow.Document, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, doc, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, l graph.Layout, doc *flow.Document, docHash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// DOT and Graphviz output depend on the document as well as the layout.
	layoutData, err := graph.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	keyHash := cache.Hash(append(layoutData, docHash...))

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(keyHash, opts.ArtifactKeyOpts(format))
			data, hit := r.cacheGet(ctx, keyTypeArtifact, cacheKey)
			if !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	rendered, err := Render(ctx, l, doc, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(keyHash, opts.ArtifactKeyOpts(format))
		r.cacheSet(ctx, keyTypeArtifact, cacheKey, data, cache.ArtifactTTL)
	}

	return rendered, false, nil
}

// cacheGet reads from the cache, treating any failure as a miss.
func (r *Runner) cacheGet(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "type", keyType, "err", err)
		return nil, false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType)
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType)
	}
	return data, hit
}

// cacheSet writes to the cache; failures are logged and dropped.
func (r *Runner) cacheSet(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
