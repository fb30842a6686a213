// Package flow defines the flow tree that flowtower lays out.
//
// # Overview
//
// A flow tree is built from four node kinds:
//
//   - [KindSequence]: a vertical chain of steps
//   - [KindDecision]: a condition, a choice marker and n branches that rejoin
//     on a shared baseline (if/else for two branches, switch/case otherwise)
//   - [KindLoop]: a detail node and a body wrapped with loop-start and
//     loop-end markers and a dashed back-edge
//   - [KindElement]: a leaf whose size comes from the host
//
// [Kind] is the one definition of node kind used across the repository. The
// marker kinds ([KindChoice], [KindLoopStart], [KindLoopEnd]) belong to the
// layout engine and never appear in documents.
//
// # Documents
//
// A [Document] is read from JSON or TOML. Both encodings share field names:
//
//	{
//	  "title": "Welcome",
//	  "root": {
//	    "kind": "sequence",
//	    "steps": [
//	      {"id": "greet", "kind": "element", "label": "Say hello"},
//	      {"id": "ask", "kind": "if",
//	       "condition": {"id": "known", "label": "Known user?"},
//	       "branches": [
//	         {"kind": "sequence", "label": "yes", "steps": [{"id": "welcome-back"}]},
//	         {"kind": "sequence", "label": "no", "steps": [{"id": "sign-up"}]}
//	       ]}
//	    ]
//	  }
//	}
//
// Kind tags are case-insensitive and accept aliases ("steps", "if",
// "switch_case", "foreach", ...). An unknown tag is read as an element so
// that half-written documents still render.
//
// # Identity
//
// Edge ids and host callbacks are keyed by node id. [AssignIDs] fills in
// missing ids and [Validate] rejects duplicates.
package flow
