package layout

import (
	"math"

	errs "github.com/matzehuels/gridfit/pkg/errors"
	"github.com/matzehuels/gridfit/pkg/partition"
)

// FixedPartition computes a justified layout for sizes.
//
// The number of rows is estimated as round(Σratios × idealHeight / MaxWidth),
// ignoring spacing. If that is below one, the elements are placed in a single
// row (see [SingleRow]). Otherwise the ratios are split with
// [partition.Linear] and laid out with [LayoutGridByRows].
//
// An empty sizes slice returns a zero-size Result.
func FixedPartition(sizes []Size, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if len(sizes) == 0 {
		return emptyResult(), nil
	}

	ratios, err := AspectRatios(sizes)
	if err != nil {
		return Result{}, err
	}

	rows := RowsNeeded(ratios, cfg)
	if rows < 1 {
		return singleRow(ratios, cfg), nil
	}
	return LayoutGridByRows(partition.Linear(ratios, rows), cfg)
}

// RowsNeeded estimates how many rows of the ideal height are needed to fit
// ratios into cfg.MaxWidth. Spacing is not taken into account. The estimate
// never exceeds len(ratios).
func RowsNeeded(ratios []float64, cfg Config) int {
	summedWidth := partition.Sum(ratios) * cfg.IdealHeight()
	rows := math.Round(summedWidth / cfg.MaxWidth)
	if !(rows < float64(len(ratios))) {
		return len(ratios)
	}
	return int(rows)
}

// LayoutGridByRows lays out aspect ratios that are already grouped into
// rows. Every row is scaled to span cfg.MaxWidth. If the resulting grid is
// taller than cfg.MaxHeight, the width is reduced until the grid is exactly
// MaxHeight tall and the returned Result reports that reduced width.
//
// Positions are emitted row by row in group order. No groups yields a
// zero-size Result; an empty group is a degenerate-input error.
func LayoutGridByRows(groups [][]float64, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if len(groups) == 0 {
		return emptyResult(), nil
	}

	grid := NewGrid(groups, cfg.Spacing)
	if err := grid.Validate(); err != nil {
		return Result{}, err
	}

	width := cfg.MaxWidth
	height := grid.HeightFromWidth(width)
	if cfg.heightCapped(height) {
		width = grid.WidthFromHeight(cfg.MaxHeight)
		height = cfg.MaxHeight
	}

	if err := checkRowHeights(grid, width); err != nil {
		return Result{}, err
	}

	return Result{
		Width:     width,
		Height:    height,
		Positions: grid.Place(width),
	}, nil
}

// checkRowHeights rejects widths at which spacing leaves no room for a row.
func checkRowHeights(g Grid, width float64) error {
	for i, r := range g.Rows {
		if h := r.HeightFromWidth(width); !(h > 0) || math.IsInf(h, 0) {
			return errs.New(errs.ErrCodeInvalidConfig,
				"row %d has no room at width %.2f with spacing %v", i, width, g.Spacing)
		}
	}
	return nil
}

// SingleRow places all elements in one row regardless of how many rows a
// justified layout would use. The row height is the ideal element height,
// or MaxHeight when that is smaller. With AlignCenter the row is padded on
// the left to sit in the middle of MaxWidth.
//
// The Result always reports MaxWidth as its width, even when the row is
// narrower or wider.
func SingleRow(sizes []Size, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if len(sizes) == 0 {
		return emptyResult(), nil
	}
	ratios, err := AspectRatios(sizes)
	if err != nil {
		return Result{}, err
	}
	return singleRow(ratios, cfg), nil
}

func singleRow(ratios []float64, cfg Config) Result {
	height := cfg.IdealHeight()
	if cfg.MaxHeight > 0 && cfg.MaxHeight < height {
		height = cfg.MaxHeight
	}

	row := NewRow(ratios, cfg.Spacing)
	var padLeft float64
	if cfg.Align == AlignCenter {
		padLeft = math.Floor((cfg.MaxWidth - row.WidthFromHeight(height)) / 2)
	}

	return Result{
		Width:     cfg.MaxWidth,
		Height:    height,
		Positions: row.Place(height, Point{X: padLeft}),
	}
}
