// Package pkg provides the core libraries for flowtower flow-diagram layout.
//
// # Overview
//
// Flowtower turns a tree of flow elements (sequences, decisions, loops and
// plain boxes) into a positioned box-and-connector diagram. The pkg directory
// is organized into these areas:
//
//  1. [flow] - The flow tree model and its JSON/TOML document codecs
//  2. [layout] - Two-pass layout engine (measure bottom-up, arrange top-down)
//  3. [graph] - Serialization types for computed layouts
//  4. [render] - SVG drawing styles, Graphviz node-link output, PNG/PDF conversion
//  5. [cache] - Memory, file and Redis caches for layouts and artifacts
//  6. [pipeline] - Orchestration (parse → layout → render)
//
// # Architecture
//
// The typical data flow through flowtower:
//
//	flow.json / flow.toml
//	         ↓
//	    [io] package (decode + validate document)
//	         ↓
//	    [layout] package (measure + arrange)
//	         ↓
//	    [graph] package (serializable layout)
//	         ↓
//	    [render] package (SVG/PNG/PDF/DOT)
//
// # Quick Start
//
// Lay out a small flow and draw it:
//
//	import (
//	    "github.com/matzehuels/flowtower/pkg/flow"
//	    "github.com/matzehuels/flowtower/pkg/layout"
//	    "github.com/matzehuels/flowtower/pkg/render/canvas"
//	)
//
//	root := flow.Sequence("welcome",
//	    flow.Element("greet", "Say hello"),
//	    flow.Element("bye", "Say goodbye"),
//	)
//
//	eng := layout.NewEngine(layout.FixedMeasurer{Width: 200, Height: 60})
//	_, res := eng.Compute(root)
//	svg := canvas.RenderSVG(res, canvas.WithTitle("Welcome"))
//
// Most callers go through [pipeline.Runner], which adds caching and
// multi-format output on top of these steps.
//
// # Supporting Packages
//
// [errors] - Coded errors shared by the CLI and the HTTP API.
//
// [observability] - Hook interfaces for metrics and tracing.
//
// [buildinfo] - Version information injected at build time.
package pkg
