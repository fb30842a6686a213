// Package graph provides the serialization format for computed flow layouts.
//
// This package defines the canonical wire format for flowtower's layout data,
// used for layout files, API responses, caching, and cross-tool
// interoperability.
//
// # Architecture
//
// The package sits at the serialization boundary between the engine and
// external formats:
//
//   - [Layout], [Node], [Edge]: serialization types (this package)
//   - pkg/layout.Result: flattened engine output
//
// Use [FromResult] and [Layout.Result] to convert between them.
//
// # Constants
//
// This package is the single source of truth for output constants:
//
//	graph.FormatSVG, graph.FormatPNG, graph.FormatPDF, graph.FormatJSON, graph.FormatDOT
//	graph.StyleSimple   // "simple"
//	graph.StyleSketch   // "sketch"
//
// # Layout Serialization
//
//	{
//	  "title": "Welcome",
//	  "width": 610,
//	  "height": 350,
//	  "axis_x": 140,
//	  "nodes": [
//	    {"id": "greet", "kind": "element", "x": 0, "y": 0, "width": 280, "height": 80, "axis_x": 140}
//	  ],
//	  "edges": [
//	    {"id": "welcome/step-1", "direction": "y", "x": 140, "y": 80, "length": 30, "directed": true}
//	  ]
//	}
//
// Edge anchors are the top-left end of the segment; "x" edges grow to the
// right and "y" edges grow downwards.
package graph
