package layout

import (
	"strings"
	"testing"

	"github.com/matzehuels/flowtower/pkg/flow"
)

func TestLabelMeasurer(t *testing.T) {
	m := NewLabelMeasurer()
	long := strings.TrimSpace(strings.Repeat("word ", 40))

	tests := []struct {
		name    string
		payload any
		want    Boundary
	}{
		{
			name:    "short label",
			payload: LabelPayload{Label: "Say hello"},
			want:    NewBoundary(280, 80),
		},
		{
			name:    "falls back to id",
			payload: nil,
			want:    NewBoundary(280, 80),
		},
		{
			// 33 characters per line, six four-letter words each.
			name:    "long label wraps",
			payload: LabelPayload{Label: long},
			want:    NewBoundary(280, 7*18+32),
		},
		{
			name:    "payload width override",
			payload: LabelPayload{Label: "x", Payload: map[string]any{"width": 120.0}},
			want:    NewBoundary(120, 80),
		},
		{
			name:    "payload height override from toml int",
			payload: LabelPayload{Payload: map[string]any{"height": int64(200)}},
			want:    NewBoundary(280, 200),
		},
		{
			name:    "raw map payload",
			payload: map[string]any{"width": 90.0, "height": 30.0},
			want:    NewBoundary(90, 30),
		},
		{
			name:    "non-positive override ignored",
			payload: LabelPayload{Payload: map[string]any{"width": -5.0}},
			want:    NewBoundary(280, 80),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Measure("leaf", flow.KindElement, tt.payload); got != tt.want {
				t.Errorf("Measure() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLabelMeasurerWrap(t *testing.T) {
	m := NewLabelMeasurer()

	tests := []struct {
		name  string
		label string
		want  int
	}{
		{"empty", "", 1},
		{"one word", "hello", 1},
		{"exact fit", strings.Repeat("a", 33), 1},
		{"overlong word kept whole", strings.Repeat("a", 50), 1},
		{"two lines", strings.Repeat("a", 20) + " " + strings.Repeat("b", 20), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(m.Wrap(tt.label)); got != tt.want {
				t.Errorf("len(Wrap()) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFixedMeasurer(t *testing.T) {
	m := FixedMeasurer{Width: 100, Height: 50}
	if got := m.Measure("x", flow.KindElement, nil); got != NewBoundary(100, 50) {
		t.Errorf("Measure() = %+v", got)
	}
}

func TestMeasurerFunc(t *testing.T) {
	var gotID string
	m := MeasurerFunc(func(id string, _ flow.Kind, _ any) Boundary {
		gotID = id
		return card
	})
	if b := m.Measure("leaf", flow.KindElement, nil); b != card || gotID != "leaf" {
		t.Errorf("Measure() = %+v, id %q", b, gotID)
	}
}
