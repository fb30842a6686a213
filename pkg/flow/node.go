package flow

import "strings"

// =============================================================================
// Kind - Tagged Variant
// =============================================================================

// Kind is the tag of a flow-tree node. It is the single definition of node
// kind shared by the document reader, the layout engine and the renderers.
type Kind int

// Document kinds.
const (
	KindElement Kind = iota
	KindSequence
	KindDecision
	KindLoop
)

// Marker kinds are created by the layout engine and never appear in documents.
const (
	KindChoice Kind = iota + 100
	KindLoopStart
	KindLoopEnd
)

var kindNames = map[Kind]string{
	KindElement:   "element",
	KindSequence:  "sequence",
	KindDecision:  "decision",
	KindLoop:      "loop",
	KindChoice:    "choice",
	KindLoopStart: "loop_start",
	KindLoopEnd:   "loop_end",
}

// String returns the canonical tag for k.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[KindElement]
}

// MarshalText encodes k as its canonical name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts canonical names, including markers, and document
// aliases. Unknown names decode as KindElement.
func (k *Kind) UnmarshalText(text []byte) error {
	if kind, ok := KindByName(string(text)); ok {
		*k = kind
		return nil
	}
	*k, _ = ParseKind(string(text))
	return nil
}

// KindByName returns the kind whose canonical name is name, including the
// marker kinds. Unlike ParseKind it accepts no aliases and reports unknown
// names.
func KindByName(name string) (Kind, bool) {
	for k, s := range kindNames {
		if s == name {
			return k, true
		}
	}
	return KindElement, false
}

// IsComposite reports whether nodes of this kind contain other nodes.
func (k Kind) IsComposite() bool {
	return k == KindSequence || k == KindDecision || k == KindLoop
}

// IsMarker reports whether k is an engine-owned marker kind.
func (k Kind) IsMarker() bool {
	return k == KindChoice || k == KindLoopStart || k == KindLoopEnd
}

// kindAliases maps lower-cased document tags to kinds. The bool reports
// whether the tag selects switch/case rendering for a decision.
var kindAliases = map[string]struct {
	kind     Kind
	isSwitch bool
}{
	"element":     {KindElement, false},
	"sequence":    {KindSequence, false},
	"steps":       {KindSequence, false},
	"decision":    {KindDecision, false},
	"if":          {KindDecision, false},
	"ifelse":      {KindDecision, false},
	"if_else":     {KindDecision, false},
	"switch":      {KindDecision, true},
	"switchcase":  {KindDecision, true},
	"switch_case": {KindDecision, true},
	"loop":        {KindLoop, false},
	"foreach":     {KindLoop, false},
	"for_each":    {KindLoop, false},
}

// ParseKind resolves a document tag. Unknown or empty tags resolve to
// KindElement so partially-invalid documents stay renderable.
func ParseKind(tag string) (kind Kind, isSwitch bool) {
	a, ok := kindAliases[strings.ToLower(strings.TrimSpace(tag))]
	if !ok {
		return KindElement, false
	}
	return a.kind, a.isSwitch
}

// =============================================================================
// Node
// =============================================================================

// Node is one node of a flow tree. Which child fields are meaningful depends
// on Kind:
//
//	KindSequence: Steps
//	KindDecision: Condition, Branches (each a sequence), Switch
//	KindLoop:     Detail, Body (a sequence)
//	KindElement:  none; Payload is handed to the host
type Node struct {
	ID      string
	Kind    Kind
	Label   string
	Payload map[string]any

	Steps []*Node

	Condition *Node
	Branches  []*Node
	Switch    bool

	Detail *Node
	Body   *Node
}

// Sequence returns a sequence node holding steps.
func Sequence(id string, steps ...*Node) *Node {
	return &Node{ID: id, Kind: KindSequence, Steps: steps}
}

// Element returns a leaf node.
func Element(id, label string) *Node {
	return &Node{ID: id, Kind: KindElement, Label: label}
}

// IfElse returns a two-way decision. Either branch may be nil.
func IfElse(id string, condition, left, right *Node) *Node {
	return &Node{ID: id, Kind: KindDecision, Condition: condition, Branches: []*Node{left, right}}
}

// SwitchCase returns an n-way decision rendered with the switch/case layout.
func SwitchCase(id string, condition *Node, branches ...*Node) *Node {
	return &Node{ID: id, Kind: KindDecision, Condition: condition, Branches: branches, Switch: true}
}

// Loop returns a loop node.
func Loop(id string, detail, body *Node) *Node {
	return &Node{ID: id, Kind: KindLoop, Detail: detail, Body: body}
}

// WithLabel sets the label and returns n for chaining.
func (n *Node) WithLabel(label string) *Node {
	n.Label = label
	return n
}

// IsIfElse reports whether a decision is laid out with the if/else layouter.
func (n *Node) IsIfElse() bool {
	return n.Kind == KindDecision && !n.Switch && len(n.Branches) <= 2
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Children returns the direct children of n in layout order, skipping nil
// entries.
func (n *Node) Children() []*Node {
	var out []*Node
	add := func(c *Node) {
		if c != nil {
			out = append(out, c)
		}
	}
	switch n.Kind {
	case KindSequence:
		for _, s := range n.Steps {
			add(s)
		}
	case KindDecision:
		add(n.Condition)
		for _, b := range n.Branches {
			add(b)
		}
	case KindLoop:
		add(n.Detail)
		add(n.Body)
	}
	return out
}

// Walk visits n and every descendant depth-first, parents before children.
// Returning false from fn skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}

// Count returns the number of nodes reachable from n.
func Count(n *Node) int {
	count := 0
	Walk(n, func(*Node) bool {
		count++
		return true
	})
	return count
}
