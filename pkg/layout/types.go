package layout

import (
	"math"

	errs "github.com/matzehuels/gridfit/pkg/errors"
)

// Size is the original size of an element. Only its aspect ratio matters.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// AspectRatio returns Width / Height.
func (s Size) AspectRatio() float64 { return s.Width / s.Height }

// Point is an offset in pixel space.
type Point struct {
	X, Y float64
}

// Position is the placement of one element in pixel space.
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (p Position) Right() float64 { return p.X + p.Width }

// Bottom returns the y coordinate of the bottom edge.
func (p Position) Bottom() float64 { return p.Y + p.Height }

// Result is a complete layout. Positions has one entry per input element,
// in input order.
type Result struct {
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Positions []Position `json:"positions"`
}

// Translate returns a copy of r with every position shifted by (dx, dy).
// The container size is unchanged.
func (r Result) Translate(dx, dy float64) Result {
	out := Result{Width: r.Width, Height: r.Height, Positions: make([]Position, len(r.Positions))}
	for i, p := range r.Positions {
		p.X += dx
		p.Y += dy
		out.Positions[i] = p
	}
	return out
}

func emptyResult() Result {
	return Result{Positions: []Position{}}
}

// Align controls horizontal placement of a single-row layout.
type Align string

const (
	AlignLeft   Align = ""
	AlignCenter Align = "center"
)

// Config configures the justified layout.
type Config struct {
	// MaxWidth is the container width. Required.
	MaxWidth float64 `json:"max_width"`

	// MaxHeight caps the layout height. Zero means unconstrained.
	MaxHeight float64 `json:"max_height,omitempty"`

	// IdealElementHeight is the target row height used to estimate the row
	// count. Zero means MaxWidth / 3.
	IdealElementHeight float64 `json:"ideal_element_height,omitempty"`

	// Spacing is the gap in pixels between neighbouring elements and rows.
	Spacing float64 `json:"spacing,omitempty"`

	// Align only affects the single-row fallback.
	Align Align `json:"align,omitempty"`
}

// Validate checks the configuration without looking at any elements.
func (c Config) Validate() error {
	if err := errs.ValidateDimension("max_width", c.MaxWidth); err != nil {
		return err
	}
	if err := errs.ValidateOptionalDimension("max_height", c.MaxHeight); err != nil {
		return err
	}
	if err := errs.ValidateOptionalDimension("ideal_element_height", c.IdealElementHeight); err != nil {
		return err
	}
	if err := errs.ValidateSpacing(c.Spacing); err != nil {
		return err
	}
	switch c.Align {
	case AlignLeft, AlignCenter:
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown align %q (must be empty or %q)", c.Align, AlignCenter)
	}
	return nil
}

// IdealHeight returns the configured ideal element height or MaxWidth / 3.
func (c Config) IdealHeight() float64 {
	if c.IdealElementHeight > 0 {
		return c.IdealElementHeight
	}
	return c.MaxWidth / 3
}

// heightCapped reports whether h exceeds a configured MaxHeight.
func (c Config) heightCapped(h float64) bool {
	return c.MaxHeight > 0 && h > c.MaxHeight
}

// ColumnConfig configures [FixedColumn].
type ColumnConfig struct {
	MaxWidth    float64 `json:"max_width"`
	ColumnCount int     `json:"column_count"`
	Spacing     float64 `json:"spacing,omitempty"`
}

// Validate checks the column configuration.
func (c ColumnConfig) Validate() error {
	if c.ColumnCount <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "column count must be at least 1, got %d", c.ColumnCount)
	}
	if err := errs.ValidateDimension("max_width", c.MaxWidth); err != nil {
		return err
	}
	return errs.ValidateSpacing(c.Spacing)
}

// AspectRatios converts sizes to aspect ratios, rejecting any element whose
// ratio would be zero, infinite or NaN.
func AspectRatios(sizes []Size) ([]float64, error) {
	ratios := make([]float64, len(sizes))
	for i, s := range sizes {
		if err := errs.ValidateElementSize(i, s.Width, s.Height); err != nil {
			return nil, err
		}
		ratios[i] = s.AspectRatio()
	}
	return ratios, nil
}

func validRatio(r float64) bool {
	return r > 0 && !math.IsInf(r, 0) && !math.IsNaN(r)
}
