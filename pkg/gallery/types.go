package gallery

import (
	"fmt"
	"math"

	errs "github.com/matzehuels/gridfit/pkg/errors"
	"github.com/matzehuels/gridfit/pkg/layout"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Layout algorithms.
const (
	AlgorithmPartition = "partition"
	AlgorithmColumns   = "columns"
	AlgorithmSingle    = "single"
)

// Visual styles for rendering.
const (
	StyleSimple  = "simple"
	StyleOutline = "outline"
)

// Algorithms lists every supported layout algorithm.
var Algorithms = []string{AlgorithmPartition, AlgorithmColumns, AlgorithmSingle}

// ValidAlgorithm reports whether name is a supported layout algorithm.
func ValidAlgorithm(name string) bool {
	switch name {
	case AlgorithmPartition, AlgorithmColumns, AlgorithmSingle:
		return true
	}
	return false
}

// =============================================================================
// Gallery - Element Collection
// =============================================================================

// Element is one rectangle to be laid out. Only the ratio of Width to
// Height matters to the engine; the absolute values are the original size.
type Element struct {
	ID     string  `json:"id" yaml:"id" toml:"id" bson:"id"`
	Width  float64 `json:"width" yaml:"width" toml:"width" bson:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height" bson:"height"`

	// Optional display metadata.
	Label string `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty" bson:"label,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty" toml:"url,omitempty" bson:"url,omitempty"`
	Color string `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty" bson:"color,omitempty"`
}

// Gallery is an ordered collection of elements. Order is significant:
// layouts never reorder elements.
type Gallery struct {
	Elements []Element `json:"elements" yaml:"elements" toml:"elements" bson:"elements"`
}

// Len returns the number of elements.
func (g Gallery) Len() int { return len(g.Elements) }

// Sizes returns the element sizes in order, ready for the layout engine.
func (g Gallery) Sizes() []layout.Size {
	sizes := make([]layout.Size, len(g.Elements))
	for i, e := range g.Elements {
		sizes[i] = layout.Size{Width: e.Width, Height: e.Height}
	}
	return sizes
}

// Normalize assigns default IDs to elements without one and validates the
// collection: IDs must be unique and every size must be positive.
func (g *Gallery) Normalize() error {
	seen := make(map[string]int, len(g.Elements))
	for i := range g.Elements {
		e := &g.Elements[i]
		if e.ID == "" {
			e.ID = DefaultID(i)
		}
		if err := errs.ValidateElementID(e.ID); err != nil {
			return err
		}
		if j, dup := seen[e.ID]; dup {
			return errs.New(errs.ErrCodeInvalidInput, "duplicate element id %q (elements %d and %d)", e.ID, j, i)
		}
		seen[e.ID] = i
		if err := errs.ValidateElementSize(i, e.Width, e.Height); err != nil {
			return err
		}
	}
	return nil
}

// DefaultID returns the ID given to the element at index i when the input
// does not name it.
func DefaultID(i int) string {
	return fmt.Sprintf("item-%d", i+1)
}

// =============================================================================
// Conversion
// =============================================================================

// FromResult combines an engine result with the gallery it was computed
// for. The result must have exactly one position per element, in order.
//
// Group is the row index for justified layouts and the column index for the
// columns algorithm.
func FromResult(g Gallery, res layout.Result, algorithm string, spacing float64) (Layout, error) {
	if len(res.Positions) != len(g.Elements) {
		return Layout{}, errs.New(errs.ErrCodeInternal,
			"layout produced %d positions for %d elements", len(res.Positions), len(g.Elements))
	}

	var groups []int
	if algorithm == AlgorithmColumns {
		groups = columnGroups(res.Positions, spacing)
	} else {
		groups = rowGroups(res.Positions)
	}

	out := Layout{
		Algorithm: algorithm,
		Width:     res.Width,
		Height:    res.Height,
		Spacing:   spacing,
		Items:     make([]Item, len(g.Elements)),
	}
	for i, e := range g.Elements {
		p := res.Positions[i]
		out.Items[i] = Item{
			ID:     e.ID,
			Label:  e.Label,
			URL:    e.URL,
			Color:  e.Color,
			Group:  groups[i],
			X:      p.X,
			Y:      p.Y,
			Width:  p.Width,
			Height: p.Height,
		}
		out.Groups = max(out.Groups, groups[i]+1)
	}
	return out, nil
}

// rowGroups numbers rows in emission order: a new row starts whenever the
// y coordinate changes.
func rowGroups(ps []layout.Position) []int {
	groups := make([]int, len(ps))
	row := 0
	for i := range ps {
		if i > 0 && ps[i].Y != ps[i-1].Y {
			row++
		}
		groups[i] = row
	}
	return groups
}

// columnGroups derives the column index from the x coordinate. All columns
// share one width, so the stride is width + spacing.
func columnGroups(ps []layout.Position, spacing float64) []int {
	groups := make([]int, len(ps))
	if len(ps) == 0 {
		return groups
	}
	left := ps[0].X
	for _, p := range ps {
		left = min(left, p.X)
	}
	for i, p := range ps {
		stride := p.Width + spacing
		if stride <= 0 {
			continue
		}
		groups[i] = int(math.Round((p.X - left) / stride))
	}
	return groups
}
