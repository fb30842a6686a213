// Package io reads and writes flow documents.
//
// # Overview
//
// A flow document is a titled tree of sequences, decisions, loops and
// elements. It can be stored as JSON or TOML; both encodings share one
// schema, and the encoding of a file is chosen by its extension.
//
// # JSON Format
//
//	{
//	  "title": "Welcome",
//	  "root": {
//	    "id": "welcome",
//	    "kind": "sequence",
//	    "steps": [
//	      {"id": "greet", "label": "Say hello"},
//	      {
//	        "id": "known",
//	        "kind": "if",
//	        "condition": {"id": "check", "label": "Known user?"},
//	        "branches": [
//	          {"kind": "sequence", "label": "yes", "steps": [{"id": "back"}]},
//	          {"kind": "sequence", "label": "no"}
//	        ]
//	      }
//	    ]
//	  }
//	}
//
// # TOML Format
//
// The same tree, with nested tables:
//
//	title = "Welcome"
//
//	[root]
//	id = "welcome"
//	kind = "sequence"
//
//	[[root.steps]]
//	id = "greet"
//	label = "Say hello"
//
// # Node Fields
//
//   - id: unique identifier; generated when omitted
//   - kind: sequence, decision (if, if_else, switch), loop (foreach) or
//     element; anything else is treated as an element
//   - label: display text (branch labels annotate the branch entry edge)
//   - payload: free-form table handed to the measurer (width, height)
//
// # Validation
//
// [Read] and [ReadDocument] assign missing ids and reject documents with
// invalid or duplicate ids. Errors carry pkg/errors codes, so callers can
// tell bad input (INVALID_DOCUMENT, INVALID_FORMAT, FILE_NOT_FOUND) apart
// from internal failures.
package io
