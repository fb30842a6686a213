// Package nodelink renders flow trees as Graphviz node-link diagrams.
//
// # Overview
//
// This is an alternative to the canvas renderer for cases where Graphviz's
// own placement is preferred, or where the DOT source itself is wanted for
// further processing. The geometry computed by pkg/layout is not used.
//
// # Usage
//
//	dot := nodelink.ToDOT(doc.Root, nodelink.Options{Clusters: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Mapping
//
//   - element: rounded box labelled with its label (or id)
//   - decision: condition, then a diamond with one arrow per branch; branch
//     labels annotate the arrows and an empty branch leaves from the diamond
//   - loop: detail, a hollow start circle, the body, a filled end circle and
//     a dashed back edge from end to start
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
