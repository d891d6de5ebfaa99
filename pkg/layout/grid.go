package layout

import (
	errs "github.com/matzehuels/gridfit/pkg/errors"
	"github.com/matzehuels/gridfit/pkg/partition"
)

// Grid is a vertical stack of rows sharing one container width.
type Grid struct {
	Rows    []Row
	Spacing float64
}

// NewGrid builds a grid from pre-partitioned aspect ratio groups. The same
// spacing is used between elements and between rows.
func NewGrid(groups [][]float64, spacing float64) Grid {
	rows := make([]Row, len(groups))
	for i, g := range groups {
		rows[i] = NewRow(g, spacing)
	}
	return Grid{Rows: rows, Spacing: spacing}
}

// Validate reports a degenerate-input error for the first empty row or
// row containing a non-positive ratio.
func (g Grid) Validate() error {
	for i, r := range g.Rows {
		if !r.valid() {
			return errs.New(errs.ErrCodeDegenerateInput, "row %d must contain only positive finite aspect ratios and at least one element", i)
		}
	}
	return nil
}

// Len returns the number of elements across all rows.
func (g Grid) Len() int {
	n := 0
	for _, r := range g.Rows {
		n += r.Len()
	}
	return n
}

func (g Grid) rowGaps() float64 {
	if len(g.Rows) == 0 {
		return 0
	}
	return g.Spacing * float64(len(g.Rows)-1)
}

// HeightFromWidth returns the natural height of the grid at width: the sum
// of every row's height plus the gaps between rows.
func (g Grid) HeightFromWidth(width float64) float64 {
	return partition.SumBy(g.Rows, func(r Row) float64 { return r.HeightFromWidth(width) }) + g.rowGaps()
}

// WidthFromHeight returns the container width at which the grid is exactly
// height tall. Row composition is kept, so width and height shrink together.
//
// With S_r the total ratio and n_r the element count of row r, every row is
// (W - s(n_r-1)) / S_r tall; solving Σ rows + s(R-1) = height for W gives
//
//	W = (height - s(R-1) + s Σ (n_r-1)/S_r) / Σ 1/S_r
func (g Grid) WidthFromHeight(height float64) float64 {
	inner := partition.SumBy(g.Rows, func(r Row) float64 { return r.gaps() / r.TotalRatio() })
	inverse := partition.SumBy(g.Rows, func(r Row) float64 { return 1 / r.TotalRatio() })
	return (height - g.rowGaps() + inner) / inverse
}

// Place stacks the rows top to bottom at the given container width.
func (g Grid) Place(width float64) []Position {
	out := make([]Position, 0, g.Len())
	y := 0.0
	for _, r := range g.Rows {
		h := r.HeightFromWidth(width)
		out = append(out, r.Place(h, Point{Y: y})...)
		y += h + g.Spacing
	}
	return out
}
