package layout

import (
	"math"

	errs "github.com/matzehuels/gridfit/pkg/errors"
)

// FixedColumn packs elements into cfg.ColumnCount equal-width columns.
//
// The column width is round((MaxWidth - gaps) / ColumnCount). Elements are
// visited in input order; each is scaled to the column width (its height
// rounded to whole pixels) and appended to the currently shortest column,
// ties going to the leftmost. The result height is the tallest column
// without its trailing gap, and the result width is always MaxWidth.
func FixedColumn(sizes []Size, cfg ColumnConfig) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	ratios, err := AspectRatios(sizes)
	if err != nil {
		return Result{}, err
	}

	columnWidth := math.Round((cfg.MaxWidth - float64(cfg.ColumnCount-1)*cfg.Spacing) / float64(cfg.ColumnCount))
	if !(columnWidth > 0) {
		return Result{}, errColumnsTooNarrow(cfg)
	}

	heights := make([]float64, cfg.ColumnCount)
	positions := make([]Position, len(ratios))
	for i, ratio := range ratios {
		h := math.Round(columnWidth / ratio)
		col := shortestColumn(heights)
		positions[i] = Position{
			X:      float64(col) * (columnWidth + cfg.Spacing),
			Y:      heights[col],
			Width:  columnWidth,
			Height: h,
		}
		heights[col] += h + cfg.Spacing
	}

	var height float64
	for i := range heights {
		if heights[i] > 0 {
			heights[i] -= cfg.Spacing
		}
		height = max(height, heights[i])
	}

	return Result{Width: cfg.MaxWidth, Height: height, Positions: positions}, nil
}

// shortestColumn returns the index of the smallest height; strict
// comparison keeps the lowest index on ties.
func shortestColumn(heights []float64) int {
	best := 0
	for i, h := range heights {
		if h < heights[best] {
			best = i
		}
	}
	return best
}

func errColumnsTooNarrow(cfg ColumnConfig) error {
	return errs.New(errs.ErrCodeInvalidConfig,
		"%d columns with spacing %v do not fit into width %v", cfg.ColumnCount, cfg.Spacing, cfg.MaxWidth)
}
