// Package canvas paints computed flow layouts as SVG.
//
// # Overview
//
// [RenderSVG] takes a flattened [layout.Result] and draws every leaf box,
// marker and connector segment at its computed position. Nothing is laid
// out here: the canvas trusts the engine's geometry completely.
//
//	_, res := engine.Compute(root)
//	svg := canvas.RenderSVG(res, canvas.WithStyle(canvas.NewSketch(42)))
//
// # Shapes
//
//   - element: rounded rectangle with the wrapped label centered inside
//   - choice: diamond
//   - loop_start: hollow circle; loop_end: filled circle
//
// Directed edges end in an arrowhead; dashed edges (loop back and marker
// connectors) use a dash pattern. Branch labels are drawn next to the start
// of the branch entry edge. A "color" payload key sets the box fill.
//
// # Styles
//
// [Simple] draws flat shapes. [Sketch] draws seeded, wobbly strokes that
// look hand-drawn while staying byte-for-byte reproducible.
//
// PDF and PNG output go through [render.ToPDF] and [render.ToPNG], which
// require rsvg-convert.
package canvas
