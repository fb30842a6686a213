package flow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/matzehuels/flowtower/pkg/errors"
)

// Document is a titled flow tree as read from an authoring file.
type Document struct {
	Title string
	Root  *Node
}

// =============================================================================
// Wire Format
// =============================================================================

type wireDocument struct {
	Title string    `json:"title,omitempty" toml:"title,omitempty"`
	Root  *wireNode `json:"root,omitempty" toml:"root,omitempty"`
}

type wireNode struct {
	ID      string         `json:"id,omitempty" toml:"id,omitempty"`
	Kind    string         `json:"kind,omitempty" toml:"kind,omitempty"`
	Label   string         `json:"label,omitempty" toml:"label,omitempty"`
	Payload map[string]any `json:"payload,omitempty" toml:"payload,omitempty"`

	Steps []*wireNode `json:"steps,omitempty" toml:"steps,omitempty"`

	Condition *wireNode   `json:"condition,omitempty" toml:"condition,omitempty"`
	Branches  []*wireNode `json:"branches,omitempty" toml:"branches,omitempty"`
	Switch    bool        `json:"switch,omitempty" toml:"switch,omitempty"`

	Detail *wireNode `json:"detail,omitempty" toml:"detail,omitempty"`
	Body   *wireNode `json:"body,omitempty" toml:"body,omitempty"`
}

func fromWire(w *wireNode) *Node {
	if w == nil {
		return nil
	}
	kind, isSwitch := ParseKind(w.Kind)
	n := &Node{
		ID:      w.ID,
		Kind:    kind,
		Label:   w.Label,
		Payload: w.Payload,
	}
	switch kind {
	case KindSequence:
		n.Steps = fromWireList(w.Steps)
	case KindDecision:
		n.Condition = fromWire(w.Condition)
		n.Branches = fromWireList(w.Branches)
		n.Switch = isSwitch || w.Switch
	case KindLoop:
		n.Detail = fromWire(w.Detail)
		n.Body = fromWire(w.Body)
	}
	return n
}

func fromWireList(ws []*wireNode) []*Node {
	if len(ws) == 0 {
		return nil
	}
	out := make([]*Node, len(ws))
	for i, w := range ws {
		out[i] = fromWire(w)
	}
	return out
}

func toWire(n *Node) *wireNode {
	if n == nil {
		return nil
	}
	w := &wireNode{
		ID:      n.ID,
		Kind:    n.Kind.String(),
		Label:   n.Label,
		Payload: n.Payload,
	}
	switch n.Kind {
	case KindSequence:
		w.Steps = toWireList(n.Steps)
	case KindDecision:
		if n.Switch {
			w.Kind = "switch"
		}
		w.Condition = toWire(n.Condition)
		w.Branches = make([]*wireNode, len(n.Branches))
		for i, b := range n.Branches {
			// Neither encoding has a null list entry; a missing branch
			// becomes an empty sequence, which lays out identically.
			if b == nil {
				w.Branches[i] = &wireNode{Kind: KindSequence.String()}
				continue
			}
			w.Branches[i] = toWire(b)
		}
	case KindLoop:
		w.Detail = toWire(n.Detail)
		w.Body = toWire(n.Body)
	}
	return w
}

func toWireList(ns []*Node) []*wireNode {
	var out []*wireNode
	for _, n := range ns {
		if n != nil {
			out = append(out, toWire(n))
		}
	}
	return out
}

// =============================================================================
// Decoding & Encoding
// =============================================================================

// DecodeJSON reads a JSON flow document from r.
func DecodeJSON(r io.Reader) (*Document, error) {
	var w wireDocument
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode json")
	}
	return &Document{Title: w.Title, Root: fromWire(w.Root)}, nil
}

// DecodeTOML reads a TOML flow document from r.
func DecodeTOML(r io.Reader) (*Document, error) {
	var w wireDocument
	if _, err := toml.NewDecoder(r).Decode(&w); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode toml")
	}
	return &Document{Title: w.Title, Root: fromWire(w.Root)}, nil
}

// EncodeJSON writes d as indented JSON.
func EncodeJSON(d *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(wireDocument{Title: d.Title, Root: toWire(d.Root)}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// EncodeTOML writes d as TOML.
func EncodeTOML(d *Document, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(wireDocument{Title: d.Title, Root: toWire(d.Root)}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalJSON returns the indented JSON encoding of d.
func MarshalJSON(d *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeJSON(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// =============================================================================
// Identity & Validation
// =============================================================================

// idNamespace scopes generated ids.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/flowtower/node"))

// AssignIDs gives every node without an id a generated id and returns the
// number of ids assigned. Existing ids are kept. Generated ids are name-based
// UUIDs of the node's position in the tree, so reading the same document
// twice yields the same ids and the same cache keys.
func AssignIDs(root *Node) int {
	assigned := 0
	var visit func(n *Node, path string)
	visit = func(n *Node, path string) {
		if n == nil {
			return
		}
		if n.ID == "" {
			n.ID = uuid.NewSHA1(idNamespace, []byte(path)).String()
			assigned++
		}
		for i, c := range n.Steps {
			visit(c, fmt.Sprintf("%s/steps/%d", path, i))
		}
		visit(n.Condition, path+"/condition")
		for i, c := range n.Branches {
			visit(c, fmt.Sprintf("%s/branches/%d", path, i))
		}
		visit(n.Detail, path+"/detail")
		visit(n.Body, path+"/body")
	}
	visit(root, "root")
	return assigned
}

// Validate checks every node id and reports the first duplicate.
// Nodes without an id are ignored; call AssignIDs first to cover them.
func Validate(d *Document) error {
	if d == nil {
		return errors.New(errors.ErrCodeInvalidDocument, "document is nil")
	}
	seen := make(map[string]bool)
	var err error
	Walk(d.Root, func(n *Node) bool {
		if err != nil {
			return false
		}
		if e := errors.ValidateNodeID(n.ID); e != nil {
			err = e
			return false
		}
		if n.ID == "" {
			return true
		}
		if seen[n.ID] {
			err = errors.New(errors.ErrCodeInvalidDocument, "duplicate node id %q", n.ID)
			return false
		}
		seen[n.ID] = true
		return true
	})
	return err
}

// =============================================================================
// Payload Helpers
// =============================================================================

// PayloadNumber returns a numeric payload value. JSON decodes numbers as
// float64 and TOML as int64 or float64; both are accepted.
func PayloadNumber(payload map[string]any, key string) (float64, bool) {
	v, ok := payload[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// PayloadString returns a string payload value.
func PayloadString(payload map[string]any, key string) (string, bool) {
	s, ok := payload[key].(string)
	return s, ok
}
