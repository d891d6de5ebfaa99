package layout

import (
	"testing"

	errs "github.com/matzehuels/gridfit/pkg/errors"
)

func TestFixedColumn(t *testing.T) {
	sizes := []Size{
		{Width: 400, Height: 300},
		{Width: 300, Height: 400},
		{Width: 500, Height: 500},
		{Width: 1600, Height: 900},
		{Width: 200, Height: 300},
	}
	cfg := ColumnConfig{MaxWidth: 300, ColumnCount: 3, Spacing: 10}

	got, err := FixedColumn(sizes, cfg)
	if err != nil {
		t.Fatalf("FixedColumn() error = %v", err)
	}

	want := []Position{
		{X: 0, Y: 0, Width: 93, Height: 70},
		{X: 103, Y: 0, Width: 93, Height: 124},
		{X: 206, Y: 0, Width: 93, Height: 93},
		{X: 0, Y: 80, Width: 93, Height: 52},
		{X: 206, Y: 103, Width: 93, Height: 140},
	}
	assertPositions(t, got.Positions, want, 0)

	if got.Width != 300 {
		t.Errorf("Width = %v, want 300", got.Width)
	}
	// tallest column is 103 + 140 with its trailing gap removed
	if got.Height != 243 {
		t.Errorf("Height = %v, want 243", got.Height)
	}
}

func TestFixedColumnTiesPickLowestIndex(t *testing.T) {
	sizes := []Size{{Width: 1, Height: 1}, {Width: 1, Height: 1}, {Width: 1, Height: 1}, {Width: 1, Height: 1}}
	got, err := FixedColumn(sizes, ColumnConfig{MaxWidth: 200, ColumnCount: 2})
	if err != nil {
		t.Fatalf("FixedColumn() error = %v", err)
	}
	wantX := []float64{0, 100, 0, 100}
	for i, p := range got.Positions {
		if p.X != wantX[i] {
			t.Errorf("element %d x = %v, want %v", i, p.X, wantX[i])
		}
	}
	if got.Height != 200 {
		t.Errorf("Height = %v, want 200", got.Height)
	}
}

func TestFixedColumnTrimsTrailingSpacing(t *testing.T) {
	got, err := FixedColumn([]Size{{Width: 1, Height: 1}}, ColumnConfig{MaxWidth: 100, ColumnCount: 1, Spacing: 25})
	if err != nil {
		t.Fatalf("FixedColumn() error = %v", err)
	}
	if got.Height != 100 {
		t.Errorf("Height = %v, want 100 without trailing spacing", got.Height)
	}
}

func TestFixedColumnEmpty(t *testing.T) {
	got, err := FixedColumn(nil, ColumnConfig{MaxWidth: 300, ColumnCount: 3})
	if err != nil {
		t.Fatalf("FixedColumn(nil) error = %v", err)
	}
	if got.Height != 0 || len(got.Positions) != 0 {
		t.Errorf("FixedColumn(nil) = %+v, want no positions and zero height", got)
	}
}

func TestFixedColumnErrors(t *testing.T) {
	tests := []struct {
		name  string
		sizes []Size
		cfg   ColumnConfig
		code  errs.Code
	}{
		{"zero columns", nil, ColumnConfig{MaxWidth: 300, ColumnCount: 0}, errs.ErrCodeInvalidConfig},
		{"negative columns", nil, ColumnConfig{MaxWidth: 300, ColumnCount: -2}, errs.ErrCodeInvalidConfig},
		{"spacing wider than container", nil, ColumnConfig{MaxWidth: 30, ColumnCount: 4, Spacing: 20}, errs.ErrCodeInvalidConfig},
		{"degenerate element", []Size{{Width: 1, Height: 0}}, ColumnConfig{MaxWidth: 300, ColumnCount: 2}, errs.ErrCodeDegenerateInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FixedColumn(tt.sizes, tt.cfg)
			if !errs.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}
