package layout

import "testing"

var (
	card    = NewBoundary(280, 80)
	diamond = NewBoundary(50, 20)
	marker  = NewBoundary(16, 16)
)

func TestBoundaryIsZero(t *testing.T) {
	tests := []struct {
		name string
		b    Boundary
		want bool
	}{
		{"zero value", Boundary{}, true},
		{"constant", ZeroBoundary, true},
		{"axis only", Boundary{AxisX: 10}, true},
		{"width only", Boundary{Width: 10}, false},
		{"card", card, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.IsZero(); got != tt.want {
				t.Errorf("IsZero() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewBoundary(t *testing.T) {
	b := NewBoundary(280, 80)
	if b.AxisX != 140 || b.AxisY != 40 {
		t.Errorf("NewBoundary axes = (%v, %v), want (140, 40)", b.AxisX, b.AxisY)
	}
	b = NewBoundaryAxis(100, 40, 20)
	if b.AxisX != 20 || b.AxisY != 20 || b.Right() != 80 {
		t.Errorf("NewBoundaryAxis = %+v, want axis 20 right 80", b)
	}
}

func TestSequenceBoundary(t *testing.T) {
	tests := []struct {
		name       string
		boxes      []Boundary
		head, tail bool
		want       Boundary
	}{
		{
			name:  "empty",
			boxes: nil,
			want:  ZeroBoundary,
		},
		{
			name:  "only zero boxes",
			boxes: []Boundary{ZeroBoundary, ZeroBoundary},
			head:  true,
			want:  ZeroBoundary,
		},
		{
			name:  "single",
			boxes: []Boundary{card},
			want:  NewBoundaryAxis(280, 80, 140),
		},
		{
			name:  "two cards",
			boxes: []Boundary{card, card},
			want:  NewBoundaryAxis(280, 190, 140),
		},
		{
			name:  "head and tail",
			boxes: []Boundary{card, card},
			head:  true,
			tail:  true,
			want:  NewBoundaryAxis(280, 220, 140),
		},
		{
			name:  "head only",
			boxes: []Boundary{card},
			head:  true,
			want:  NewBoundaryAxis(280, 95, 140),
		},
		{
			name:  "off-centre axes",
			boxes: []Boundary{NewBoundaryAxis(100, 40, 20), NewBoundary(60, 20)},
			want:  NewBoundaryAxis(110, 90, 30),
		},
		{
			name:  "zero boxes skipped",
			boxes: []Boundary{card, ZeroBoundary, card},
			want:  NewBoundaryAxis(280, 190, 140),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SequenceBoundary(tt.boxes, tt.head, tt.tail)
			if got != tt.want {
				t.Errorf("SequenceBoundary() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecisionBoundaryMissingRequired(t *testing.T) {
	tests := []struct {
		name string
		got  Boundary
	}{
		{"if/else without condition", IfElseBoundary(ZeroBoundary, diamond, card, card)},
		{"if/else without choice", IfElseBoundary(card, ZeroBoundary, card, card)},
		{"switch without condition", SwitchCaseBoundary(ZeroBoundary, diamond, nil)},
		{"switch without choice", SwitchCaseBoundary(card, ZeroBoundary, []Boundary{card})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.IsZero() {
				t.Errorf("boundary = %+v, want zero", tt.got)
			}
		})
	}
}

func TestIfElseBoundary(t *testing.T) {
	tests := []struct {
		name        string
		left, right Boundary
		want        Boundary
	}{
		{
			name:  "both branches",
			left:  card,
			right: card,
			want:  NewBoundaryAxis(610, 240, 140),
		},
		{
			name:  "right missing keeps a slot",
			left:  card,
			right: ZeroBoundary,
			want:  NewBoundaryAxis(330, 240, 140),
		},
		{
			name:  "left missing keeps a slot",
			left:  ZeroBoundary,
			right: card,
			want:  NewBoundaryAxis(470, 240, 140),
		},
		{
			name:  "no branches",
			left:  ZeroBoundary,
			right: ZeroBoundary,
			want:  NewBoundaryAxis(280, 140, 140),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IfElseBoundary(card, diamond, tt.left, tt.right)
			if got != tt.want {
				t.Errorf("IfElseBoundary() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSwitchCaseBoundary(t *testing.T) {
	tests := []struct {
		name     string
		branches []Boundary
		want     Boundary
	}{
		{"no branches", nil, NewBoundaryAxis(280, 140, 140)},
		{"one", []Boundary{card}, NewBoundaryAxis(280, 240, 140)},
		{"three", []Boundary{card, card, card}, NewBoundaryAxis(940, 240, 140)},
		{"tallest wins", []Boundary{card, NewBoundary(280, 200)}, NewBoundaryAxis(610, 360, 140)},
		{"wide condition side", []Boundary{NewBoundary(600, 80)}, NewBoundaryAxis(600, 240, 300)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SwitchCaseBoundary(card, diamond, tt.branches)
			if got != tt.want {
				t.Errorf("SwitchCaseBoundary() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSwitchCaseBoundaryEquivalentToIfElse(t *testing.T) {
	a, b := NewBoundary(200, 60), NewBoundaryAxis(300, 90, 40)
	sw := SwitchCaseBoundary(card, diamond, []Boundary{a, b})
	ie := IfElseBoundary(card, diamond, a, b)
	if sw != ie {
		t.Errorf("switch %+v != if/else %+v for two populated branches", sw, ie)
	}
}

func TestForeachBoundary(t *testing.T) {
	tests := []struct {
		name                     string
		detail, body, start, end Boundary
		want                     Boundary
	}{
		{
			name:   "missing detail",
			detail: ZeroBoundary, body: card, start: marker, end: marker,
			want: ZeroBoundary,
		},
		{
			name:   "missing body",
			detail: card, body: ZeroBoundary, start: marker, end: marker,
			want: ZeroBoundary,
		},
		{
			name:   "all cards",
			detail: card, body: card, start: card, end: card,
			want: NewBoundaryAxis(300, 365, 160),
		},
		{
			name:   "default markers",
			detail: card, body: card, start: marker, end: marker,
			want: NewBoundaryAxis(300, 237, 160),
		},
		{
			name:   "wider body",
			detail: card, body: NewBoundaryAxis(610, 240, 140), start: marker, end: marker,
			want: NewBoundaryAxis(630, 397, 160),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForeachBoundary(tt.detail, tt.body, tt.start, tt.end)
			if got != tt.want {
				t.Errorf("ForeachBoundary() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSpacingValidate(t *testing.T) {
	if err := DefaultSpacing().Validate(); err != nil {
		t.Errorf("DefaultSpacing().Validate() = %v, want nil", err)
	}
	s := DefaultSpacing()
	s.LoopGap = -1
	if err := s.Validate(); err == nil {
		t.Error("Validate() with negative loop gap = nil, want error")
	}
	s = DefaultSpacing()
	s.Diamond.Height = -5
	if err := s.Validate(); err == nil {
		t.Error("Validate() with negative diamond = nil, want error")
	}
}

func TestCustomSpacing(t *testing.T) {
	s := DefaultSpacing()
	s.IntervalY = 10
	got := s.SequenceBoundary([]Boundary{card, card, card}, true, true)
	if got.Height != 80*3+10*2+10 {
		t.Errorf("Height = %v, want %v", got.Height, 80*3+10*2+10)
	}
}
