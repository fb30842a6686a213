package layout

import "github.com/matzehuels/flowtower/pkg/errors"

// Size is a fixed width × height.
type Size struct {
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`
}

// Boundary returns a centred boundary of this size.
func (s Size) Boundary() Boundary { return NewBoundary(s.Width, s.Height) }

// Spacing holds the gaps and marker sizes used by the calculators and
// layouters. The zero value is not useful; start from DefaultSpacing.
type Spacing struct {
	IntervalY       float64 `toml:"interval_y" json:"interval_y"`
	BranchIntervalX float64 `toml:"branch_interval_x" json:"branch_interval_x"`
	BranchIntervalY float64 `toml:"branch_interval_y" json:"branch_interval_y"`
	LoopGap         float64 `toml:"loop_gap" json:"loop_gap"`
	LoopMarginLeft  float64 `toml:"loop_margin_left" json:"loop_margin_left"`
	Diamond         Size    `toml:"diamond" json:"diamond"`
	LoopMarker      Size    `toml:"loop_marker" json:"loop_marker"`
}

// Default spacing values.
const (
	DefaultIntervalY       = 30.0
	DefaultBranchIntervalX = 50.0
	DefaultBranchIntervalY = 20.0
	DefaultLoopGap         = 15.0
	DefaultLoopMarginLeft  = 20.0
)

// DefaultSpacing returns the spacing used when nothing is configured.
func DefaultSpacing() Spacing {
	return Spacing{
		IntervalY:       DefaultIntervalY,
		BranchIntervalX: DefaultBranchIntervalX,
		BranchIntervalY: DefaultBranchIntervalY,
		LoopGap:         DefaultLoopGap,
		LoopMarginLeft:  DefaultLoopMarginLeft,
		Diamond:         Size{Width: 50, Height: 20},
		LoopMarker:      Size{Width: 16, Height: 16},
	}
}

// Validate rejects negative gaps and sizes.
func (s Spacing) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"interval_y", s.IntervalY},
		{"branch_interval_x", s.BranchIntervalX},
		{"branch_interval_y", s.BranchIntervalY},
		{"loop_gap", s.LoopGap},
		{"loop_margin_left", s.LoopMarginLeft},
		{"diamond.width", s.Diamond.Width},
		{"diamond.height", s.Diamond.Height},
		{"loop_marker.width", s.LoopMarker.Width},
		{"loop_marker.height", s.LoopMarker.Height},
	}
	for _, f := range fields {
		if f.value < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "spacing %s must not be negative (got %v)", f.name, f.value)
		}
	}
	return nil
}
