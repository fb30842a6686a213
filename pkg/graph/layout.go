package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/flowtower/pkg/errors"
)

// =============================================================================
// Layout - Serialization Format
// =============================================================================

// Layout is the serialization format for a computed flow diagram. It is what
// `flowtower layout` writes, what the HTTP API returns, and what the cache
// stores between runs.
//
// Nodes are leaf and marker boxes only; composite containers have no
// paintable content of their own. All coordinates are in root space with the
// origin at the top-left corner.
type Layout struct {
	Title  string  `json:"title,omitempty"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	AxisX  float64 `json:"axis_x"`
	Nodes  []Node  `json:"nodes"`
	Edges  []Edge  `json:"edges"`
}

// IsEmpty reports whether the layout renders nothing.
func (l *Layout) IsEmpty() bool { return l.Width == 0 && l.Height == 0 }

// Validate checks the invariants a reader can verify without the flow tree.
func (l *Layout) Validate() error {
	if l.Width < 0 || l.Height < 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "layout has negative size %vx%v", l.Width, l.Height)
	}
	for _, e := range l.Edges {
		if e.Direction != "x" && e.Direction != "y" {
			return errors.New(errors.ErrCodeInvalidFormat, "edge %s has direction %q", e.ID, e.Direction)
		}
		if e.Length < 0 {
			return errors.New(errors.ErrCodeInvalidFormat, "edge %s has negative length", e.ID)
		}
	}
	return nil
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and validates it.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// WriteLayout writes a Layout as indented JSON to w.
func WriteLayout(l Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadLayout decodes a Layout from r.
func ReadLayout(r io.Reader) (Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Layout{}, fmt.Errorf("read: %w", err)
	}
	return UnmarshalLayout(data)
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
