package layout

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/flowtower/pkg/flow"
)

// Measurer reports how big a leaf renders. The engine calls it only for
// element leaves; composite sizes are computed and marker sizes come from
// Spacing. A panicking Measurer is a host bug and is not recovered.
type Measurer interface {
	Measure(id string, kind flow.Kind, payload any) Boundary
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(id string, kind flow.Kind, payload any) Boundary

// Measure calls f.
func (f MeasurerFunc) Measure(id string, kind flow.Kind, payload any) Boundary {
	return f(id, kind, payload)
}

// FixedMeasurer sizes every leaf the same.
type FixedMeasurer struct {
	Width, Height float64
}

// Measure returns a centred Width×Height boundary.
func (m FixedMeasurer) Measure(string, flow.Kind, any) Boundary {
	return NewBoundary(m.Width, m.Height)
}

// LabelPayload is what the engine hands a Measurer for element leaves.
type LabelPayload struct {
	Label   string
	Payload map[string]any
}

// Label measurer defaults.
const (
	DefaultCardWidth  = 280.0
	DefaultCardHeight = 80.0
	DefaultLineHeight = 18.0
	DefaultCharWidth  = 7.5
	DefaultPadding    = 16.0
)

// LabelMeasurer sizes a leaf as a fixed-width card whose height grows with
// the number of wrapped label lines. It is deterministic, so layouts cached
// on disk stay valid. Payload keys "width" and "height" override the result.
type LabelMeasurer struct {
	Width      float64
	MinHeight  float64
	LineHeight float64
	CharWidth  float64
	Padding    float64
}

// NewLabelMeasurer returns a LabelMeasurer with the default card metrics.
func NewLabelMeasurer() LabelMeasurer {
	return LabelMeasurer{
		Width:      DefaultCardWidth,
		MinHeight:  DefaultCardHeight,
		LineHeight: DefaultLineHeight,
		CharWidth:  DefaultCharWidth,
		Padding:    DefaultPadding,
	}
}

// Measure implements Measurer.
func (m LabelMeasurer) Measure(id string, _ flow.Kind, payload any) Boundary {
	label := id
	var extra map[string]any
	switch p := payload.(type) {
	case LabelPayload:
		if p.Label != "" {
			label = p.Label
		}
		extra = p.Payload
	case map[string]any:
		extra = p
	case string:
		label = p
	}

	w := m.Width
	h := max(m.MinHeight, float64(len(m.Wrap(label)))*m.LineHeight+2*m.Padding)
	if v, ok := flow.PayloadNumber(extra, "width"); ok && v > 0 {
		w = v
	}
	if v, ok := flow.PayloadNumber(extra, "height"); ok && v > 0 {
		h = v
	}
	return NewBoundary(w, h)
}

// Wrap breaks label into lines that fit the card's inner width. Words longer
// than a line are kept whole.
func (m LabelMeasurer) Wrap(label string) []string {
	perLine := 1
	if m.CharWidth > 0 {
		perLine = max(1, int(math.Floor((m.Width-2*m.Padding)/m.CharWidth)))
	}

	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(label) {
		if cur.Len() > 0 && utf8.RuneCountInString(cur.String())+1+utf8.RuneCountInString(word) > perLine {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}
