package gallery

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/gridfit/pkg/layout"
)

// =============================================================================
// Layout - Serialized Layout Format
// =============================================================================

// Layout is the serialization format for a computed layout.
//
// Items are in input order. Each carries the element metadata needed to
// render it without the original manifest, so a layout file is
// self-contained.
type Layout struct {
	Algorithm string  `json:"algorithm" bson:"algorithm"`
	Width     float64 `json:"width" bson:"width"`
	Height    float64 `json:"height" bson:"height"`
	Spacing   float64 `json:"spacing,omitempty" bson:"spacing,omitempty"`
	Margin    float64 `json:"margin,omitempty" bson:"margin,omitempty"`

	// Groups is the number of rows (justified) or columns (columns).
	Groups int    `json:"groups" bson:"groups"`
	Items  []Item `json:"items" bson:"items"`
}

// Item is a positioned element.
type Item struct {
	ID     string  `json:"id" bson:"id"`
	Group  int     `json:"group" bson:"group"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	Label string `json:"label,omitempty" bson:"label,omitempty"`
	URL   string `json:"url,omitempty" bson:"url,omitempty"`
	Color string `json:"color,omitempty" bson:"color,omitempty"`
}

// Position returns the item's placement.
func (it Item) Position() layout.Position {
	return layout.Position{X: it.X, Y: it.Y, Width: it.Width, Height: it.Height}
}

// Result returns the engine representation of the layout.
func (l Layout) Result() layout.Result {
	res := layout.Result{Width: l.Width, Height: l.Height, Positions: make([]layout.Position, len(l.Items))}
	for i, it := range l.Items {
		res.Positions[i] = it.Position()
	}
	return res
}

// WithMargin returns a copy of l with every item shifted by margin and the
// frame grown by margin on each side.
func (l Layout) WithMargin(margin float64) Layout {
	if margin == 0 {
		return l
	}
	out := l
	out.Margin += margin
	out.Width += 2 * margin
	out.Height += 2 * margin
	out.Items = make([]Item, len(l.Items))
	for i, it := range l.Items {
		it.X += margin
		it.Y += margin
		out.Items[i] = it
	}
	return out
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// An empty algorithm defaults to partition; unknown algorithms and items
// with negative sizes are rejected.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if l.Algorithm == "" {
		l.Algorithm = AlgorithmPartition
	}
	if !ValidAlgorithm(l.Algorithm) {
		return Layout{}, fmt.Errorf("unknown layout algorithm %q", l.Algorithm)
	}
	for i, it := range l.Items {
		if it.Width < 0 || it.Height < 0 {
			return Layout{}, fmt.Errorf("item %d (%s) has negative size", i, it.ID)
		}
	}
	if l.Items == nil {
		l.Items = []Item{}
	}

	return l, nil
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
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
