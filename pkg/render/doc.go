// Package render provides visualization output for computed flow layouts.
//
// # Overview
//
// This package holds the format conversion shared by every renderer:
//
//   - Flow canvas (in [canvas] subpackage): paints the engine's geometry
//   - Node-link diagrams (in [nodelink] subpackage): Graphviz placement
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). [Available] reports
// whether it is installed.
//
//	svg := canvas.RenderSVG(res)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [canvas]: github.com/matzehuels/flowtower/pkg/render/canvas
// [nodelink]: github.com/matzehuels/flowtower/pkg/render/nodelink
package render
