package layout

import (
	"math"
	"testing"
)

func TestRowHeightFromWidth(t *testing.T) {
	tests := []struct {
		name  string
		row   Row
		width float64
		want  float64
	}{
		{
			name:  "no spacing",
			row:   NewRow([]float64{1.25, 1.5, 1}, 0),
			width: 300,
			want:  80,
		},
		{
			name:  "with spacing",
			row:   NewRow([]float64{0.75, 1.75}, 10),
			width: 300,
			want:  116,
		},
		{
			name:  "single element ignores spacing",
			row:   NewRow([]float64{2}, 10),
			width: 300,
			want:  150,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.HeightFromWidth(tt.width); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("HeightFromWidth(%v) = %v, want %v", tt.width, got, tt.want)
			}
		})
	}
}

func TestRowWidthFromHeightInvertsHeightFromWidth(t *testing.T) {
	rows := []Row{
		NewRow([]float64{1.25, 1.5, 1}, 0),
		NewRow([]float64{1.25, 1.5, 1}, 12),
		NewRow([]float64{0.5}, 4),
	}
	for _, r := range rows {
		for _, w := range []float64{120, 300, 1024} {
			h := r.HeightFromWidth(w)
			if got := r.WidthFromHeight(h); math.Abs(got-w) > 1e-9 {
				t.Errorf("row %v: WidthFromHeight(HeightFromWidth(%v)) = %v", r.Ratios, w, got)
			}
		}
	}
}

func TestRowTotalRatio(t *testing.T) {
	r := NewRow([]float64{0.75, 1.75}, 0)
	if got := r.TotalRatio(); got != 2.5 {
		t.Errorf("TotalRatio() = %v, want 2.5", got)
	}
	if got := NewRow(nil, 0).TotalRatio(); got != 0 {
		t.Errorf("empty TotalRatio() = %v, want 0", got)
	}
}

func TestRowPlace(t *testing.T) {
	r := NewRow([]float64{1.25, 1.5, 1}, 10)
	got := r.Place(80, Point{X: 5, Y: 40})
	want := []Position{
		{X: 5, Y: 40, Width: 100, Height: 80},
		{X: 115, Y: 40, Width: 120, Height: 80},
		{X: 245, Y: 40, Width: 80, Height: 80},
	}
	if len(got) != len(want) {
		t.Fatalf("Place() returned %d positions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRowPlaceRoundsWidths(t *testing.T) {
	r := NewRow([]float64{1.0 / 3, 2.0 / 3}, 0)
	got := r.Place(100, Point{})
	if got[0].Width != 33 || got[1].Width != 67 {
		t.Errorf("widths = %v, %v; want 33, 67", got[0].Width, got[1].Width)
	}
	if got[1].X != 33 {
		t.Errorf("second x = %v, want 33", got[1].X)
	}
}

func TestRowValid(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want bool
	}{
		{"normal", NewRow([]float64{1, 2}, 0), true},
		{"empty", NewRow(nil, 0), false},
		{"zero ratio", NewRow([]float64{1, 0}, 0), false},
		{"nan ratio", NewRow([]float64{math.NaN()}, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.valid(); got != tt.want {
				t.Errorf("valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
