package layout

import (
	"math"

	"github.com/matzehuels/gridfit/pkg/partition"
)

// Row is one horizontal line of elements described by their aspect ratios.
type Row struct {
	Ratios  []float64
	Spacing float64
}

// NewRow creates a row over ratios with the given gap between elements.
func NewRow(ratios []float64, spacing float64) Row {
	return Row{Ratios: ratios, Spacing: spacing}
}

// Len returns the number of elements in the row.
func (r Row) Len() int { return len(r.Ratios) }

// TotalRatio returns the sum of the row's aspect ratios, its weight.
func (r Row) TotalRatio() float64 { return partition.Sum(r.Ratios) }

// gaps returns the horizontal space taken by spacing inside the row.
func (r Row) gaps() float64 {
	if len(r.Ratios) == 0 {
		return 0
	}
	return r.Spacing * float64(len(r.Ratios)-1)
}

// HeightFromWidth returns the height at which the row spans exactly width.
// The result is undefined for an empty row or a zero total ratio.
func (r Row) HeightFromWidth(width float64) float64 {
	return (width - r.gaps()) / r.TotalRatio()
}

// WidthFromHeight returns the width the row spans at the given height.
func (r Row) WidthFromHeight(height float64) float64 {
	return height*r.TotalRatio() + r.gaps()
}

// Place lays the row out at a fixed height starting at offset. Each width is
// rounded to whole pixels and x advances by width + spacing.
func (r Row) Place(height float64, offset Point) []Position {
	out := make([]Position, len(r.Ratios))
	x := offset.X
	for i, ratio := range r.Ratios {
		w := math.Round(height * ratio)
		out[i] = Position{X: x, Y: offset.Y, Width: w, Height: height}
		x += w + r.Spacing
	}
	return out
}

// valid reports whether the row's geometry is defined.
func (r Row) valid() bool {
	if len(r.Ratios) == 0 {
		return false
	}
	for _, ratio := range r.Ratios {
		if !validRatio(ratio) {
			return false
		}
	}
	return true
}
