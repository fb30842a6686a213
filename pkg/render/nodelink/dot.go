package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flowtower/pkg/flow"
	"github.com/matzehuels/flowtower/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed appends payload entries to element labels.
	Detailed bool
	// Clusters draws a labeled frame around every decision and loop.
	Clusters bool
}

type dotWriter struct {
	buf    bytes.Buffer
	opts   Options
	indent int
	edges  []string
}

// ToDOT converts a flow tree to Graphviz DOT format. Elements become boxes,
// choice markers diamonds and loop markers circles; control flow becomes
// arrows, with the loop's back edge dashed.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(root *flow.Node, opts Options) string {
	w := &dotWriter{opts: opts, indent: 1}
	w.buf.WriteString("digraph G {\n")
	w.buf.WriteString("  rankdir=TB;\n")
	w.buf.WriteString("  bgcolor=\"transparent\";\n")
	w.buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	w.buf.WriteString("  ranksep=0.4;\n")
	w.buf.WriteString("  nodesep=0.3;\n")
	w.buf.WriteString("\n")

	w.emit(root)

	if len(w.edges) > 0 {
		w.buf.WriteString("\n")
		for _, e := range w.edges {
			w.buf.WriteString("  " + e + ";\n")
		}
	}
	w.buf.WriteString("}\n")
	return w.buf.String()
}

func (w *dotWriter) line(format string, args ...any) {
	w.buf.WriteString(strings.Repeat("  ", w.indent))
	fmt.Fprintf(&w.buf, format, args...)
	w.buf.WriteString("\n")
}

func (w *dotWriter) edge(from, to string, attrs ...string) {
	e := fmt.Sprintf("%q -> %q", from, to)
	if len(attrs) > 0 {
		e += " [" + strings.Join(attrs, ", ") + "]"
	}
	w.edges = append(w.edges, e)
}

// connect links every dangling exit to entry.
func (w *dotWriter) connect(exits []string, entry string, attrs ...string) {
	for _, x := range exits {
		w.edge(x, entry, attrs...)
	}
}

// emit writes n's nodes and internal edges and returns its entry node and
// the nodes whose outgoing flow is still unconnected. An empty subtree has
// no entry and passes its input straight through.
func (w *dotWriter) emit(n *flow.Node) (entry string, exits []string) {
	if n == nil {
		return "", nil
	}

	switch n.Kind {
	case flow.KindSequence:
		var pending []string
		for _, st := range n.Steps {
			in, out := w.emit(st)
			if in == "" {
				continue
			}
			if entry == "" {
				entry = in
			} else {
				w.connect(pending, in)
			}
			pending = out
		}
		return entry, pending

	case flow.KindDecision:
		return w.emitDecision(n)

	case flow.KindLoop:
		return w.emitLoop(n)
	}

	w.line("%q [%s];", n.ID, strings.Join(w.elementAttrs(n), ", "))
	return n.ID, []string{n.ID}
}

func (w *dotWriter) emitDecision(n *flow.Node) (string, []string) {
	w.openCluster(n)
	defer w.closeCluster()

	choice := n.ID + "/choice"
	entry, condExits := w.emit(n.Condition)
	w.line("%q [shape=diamond, label=\"\", width=0.5, height=0.3];", choice)
	if entry == "" {
		entry = choice
	} else {
		w.connect(condExits, choice)
	}

	branches := n.Branches
	if n.IsIfElse() {
		branches = make([]*flow.Node, 2)
		copy(branches, n.Branches)
	}
	if len(branches) == 0 {
		return entry, []string{choice}
	}

	var exits []string
	passThrough := false
	for _, br := range branches {
		in, out := w.emit(br)
		if in == "" {
			passThrough = true
			continue
		}
		var attrs []string
		if br.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", br.Label))
		}
		w.edge(choice, in, attrs...)
		exits = append(exits, out...)
	}
	if passThrough {
		exits = append(exits, choice)
	}
	return entry, exits
}

func (w *dotWriter) emitLoop(n *flow.Node) (string, []string) {
	w.openCluster(n)
	defer w.closeCluster()

	start, end := n.ID+"/loop-start", n.ID+"/loop-end"
	entry, detailExits := w.emit(n.Detail)
	w.line("%q [shape=circle, label=\"\", width=0.2, fixedsize=true];", start)
	if entry == "" {
		entry = start
	} else {
		w.connect(detailExits, start)
	}

	w.line("%q [shape=circle, label=\"\", width=0.2, fixedsize=true, fillcolor=\"#333333\"];", end)
	in, out := w.emit(n.Body)
	if in == "" {
		w.edge(start, end)
	} else {
		w.edge(start, in)
		w.connect(out, end)
	}
	w.edge(end, start, "style=dashed", "constraint=false")
	return entry, []string{end}
}

func (w *dotWriter) openCluster(n *flow.Node) {
	if !w.opts.Clusters {
		return
	}
	w.line("subgraph %q {", "cluster_"+n.ID)
	w.indent++
	w.line("label=%q;", n.Kind.String()+" "+n.DisplayLabel())
	w.line("style=\"rounded,dashed\";")
	w.line("color=\"#999999\";")
}

func (w *dotWriter) closeCluster() {
	if !w.opts.Clusters {
		return
	}
	w.indent--
	w.line("}")
}

func (w *dotWriter) elementAttrs(n *flow.Node) []string {
	attrs := []string{fmt.Sprintf("label=%q", w.label(n))}
	if c, ok := flow.PayloadString(n.Payload, "color"); ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", c))
	}
	return attrs
}

func (w *dotWriter) label(n *flow.Node) string {
	label := n.DisplayLabel()
	if !w.opts.Detailed || len(n.Payload) == 0 {
		return label
	}
	var parts []string
	for _, k := range slices.Sorted(maps.Keys(n.Payload)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Payload[k]))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one sized
// in user units, so the canvas and node-link outputs scale the same way.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
