package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/flowtower/pkg/errors"
	"github.com/matzehuels/flowtower/pkg/flow"
	"github.com/matzehuels/flowtower/pkg/graph"
	"github.com/matzehuels/flowtower/pkg/render"
	"github.com/matzehuels/flowtower/pkg/render/canvas"
	"github.com/matzehuels/flowtower/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats. The SVG is
// drawn once and shared by the PNG and PDF conversions; with Nodelink set,
// Graphviz renders PNG and PDF directly. doc is only needed for DOT output
// and Graphviz rendering.
func Render(ctx context.Context, l graph.Layout, doc *flow.Document, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte
	svgOnce := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = renderSVG(ctx, l, doc, opts)
		return svg, err
	}

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = svgOnce()
		case FormatPNG:
			if opts.Nodelink {
				data, err = renderGraphviz(ctx, doc, opts, func(dot string) ([]byte, error) {
					return nodelink.RenderPNG(ctx, dot, opts.Scale)
				})
			} else if data, err = svgOnce(); err == nil {
				data, err = render.ToPNG(ctx, data, opts.Scale)
			}
		case FormatPDF:
			if opts.Nodelink {
				data, err = renderGraphviz(ctx, doc, opts, func(dot string) ([]byte, error) {
					return nodelink.RenderPDF(ctx, dot)
				})
			} else if data, err = svgOnce(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		case FormatDOT:
			if doc == nil {
				return nil, errors.New(errors.ErrCodeInvalidInput, "dot output requires the flow document")
			}
			data = []byte(nodelink.ToDOT(doc.Root, nodelink.Options{Clusters: opts.Clusters}))
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func renderGraphviz(ctx context.Context, doc *flow.Document, opts Options, fn func(dot string) ([]byte, error)) ([]byte, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nodelink rendering requires the flow document")
	}
	return fn(nodelink.ToDOT(doc.Root, nodelink.Options{Clusters: opts.Clusters}))
}

// NeedsConverter reports whether rendering opts requires rsvg-convert.
func NeedsConverter(opts Options) bool {
	if opts.Nodelink {
		return false
	}
	for _, f := range opts.Formats {
		if f == FormatPNG || f == FormatPDF {
			return true
		}
	}
	return false
}

func renderSVG(ctx context.Context, l graph.Layout, doc *flow.Document, opts Options) ([]byte, error) {
	if opts.Nodelink {
		return renderGraphviz(ctx, doc, opts, func(dot string) ([]byte, error) {
			return nodelink.RenderSVG(ctx, dot)
		})
	}

	style, err := canvas.StyleByName(opts.Style, opts.Seed)
	if err != nil {
		return nil, err
	}
	return canvas.RenderSVG(l.Result(),
		canvas.WithStyle(style),
		canvas.WithTitle(l.Title),
		canvas.WithWrapper(opts.Measurer),
	), nil
}
