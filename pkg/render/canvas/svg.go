package canvas

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/flowtower/pkg/errors"
	"github.com/matzehuels/flowtower/pkg/flow"
	"github.com/matzehuels/flowtower/pkg/graph"
	"github.com/matzehuels/flowtower/pkg/layout"
	"github.com/matzehuels/flowtower/pkg/render"
)

// DefaultPadding is the blank margin around the diagram.
const DefaultPadding = 24.0

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style   Style
	padding float64
	title   string
	wrap    layout.LabelMeasurer
}

// WithStyle sets the visual style (default Simple).
func WithStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithPadding sets the margin around the diagram.
func WithPadding(p float64) SVGOption { return func(r *svgRenderer) { r.padding = max(0, p) } }

// WithTitle adds an SVG <title>.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithWrapper sets the label measurer whose metrics wrap box labels. It
// should match the measurer the layout was computed with.
func WithWrapper(m layout.LabelMeasurer) SVGOption { return func(r *svgRenderer) { r.wrap = m } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: Simple{}, padding: DefaultPadding, wrap: layout.NewLabelMeasurer()}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// StyleByName returns the style registered under name.
func StyleByName(name string, seed uint64) (Style, error) {
	switch name {
	case "", graph.StyleSimple:
		return Simple{}, nil
	case graph.StyleSketch:
		return NewSketch(seed), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (use %s or %s)", name, graph.StyleSimple, graph.StyleSketch)
}

// RenderSVG paints a flattened layout. Edges are drawn first so arrowheads
// end on top of box outlines, then boxes, then labels.
func RenderSVG(res layout.Result, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	p := r.padding
	w, h := res.Boundary.Width+2*p, res.Boundary.Height+2*p

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		-p, -p, w, h, w, h)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", EscapeXML(r.title))
	}
	r.style.RenderDefs(&buf)

	boxes := buildBoxes(res, r.wrap)
	buf.WriteString(`  <g class="edges">` + "\n")
	for _, e := range buildEdges(res) {
		r.style.RenderEdge(&buf, e)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="boxes">` + "\n")
	for _, b := range boxes {
		r.style.RenderBox(&buf, b)
	}
	for _, b := range boxes {
		r.style.RenderText(&buf, b)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// RenderPDF renders the layout as PDF via SVG conversion.
func RenderPDF(ctx context.Context, res layout.Result, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(res, opts...))
}

// RenderPNG renders the layout as PNG via SVG conversion.
func RenderPNG(ctx context.Context, res layout.Result, scale float64, opts ...SVGOption) ([]byte, error) {
	return render.ToPNG(ctx, RenderSVG(res, opts...), scale)
}

func buildBoxes(res layout.Result, wrap layout.LabelMeasurer) []Box {
	boxes := make([]Box, 0, len(res.Nodes))
	for _, n := range res.Nodes {
		b := Box{
			ID:   n.ID,
			Kind: n.Kind,
			X:    n.Offset.X, Y: n.Offset.Y,
			W: n.Boundary.Width, H: n.Boundary.Height,
			CX: n.Offset.X + n.Boundary.Width/2,
			CY: n.Offset.Y + n.Boundary.Height/2,
		}
		payload, _ := n.Payload.(map[string]any)
		b.Fill, _ = flow.PayloadString(payload, "color")

		if !n.Kind.IsMarker() {
			label := n.Label
			if label == "" {
				label = n.ID
			}
			m := wrap
			m.Width = b.W
			b.Lines = m.Wrap(label)
		}
		boxes = append(boxes, b)
	}
	return boxes
}

func buildEdges(res layout.Result) []Edge {
	edges := make([]Edge, 0, len(res.Edges))
	for _, e := range res.Edges {
		if e.Length == 0 {
			continue
		}
		end := e.End()
		edges = append(edges, Edge{
			ID: e.ID,
			X1: e.X, Y1: e.Y,
			X2: end.X, Y2: end.Y,
			Text:     e.Text,
			Dashed:   e.Dashed,
			Directed: e.Directed,
		})
	}
	return edges
}
