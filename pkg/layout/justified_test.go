package layout

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	errs "github.com/matzehuels/gridfit/pkg/errors"
)

const tolerance = 0.5

func approxEqual(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func assertPositions(t *testing.T, got, want []Position, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d positions, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if !approxEqual(g.X, w.X, tol) || !approxEqual(g.Y, w.Y, tol) ||
			!approxEqual(g.Width, w.Width, tol) || !approxEqual(g.Height, w.Height, tol) {
			t.Errorf("position %d = %+v, want %+v", i, g, w)
		}
	}
}

func TestLayoutGridByRowsNoSpacing(t *testing.T) {
	want := []Position{
		{X: 0, Y: 0, Width: 100, Height: 80},
		{X: 100, Y: 0, Width: 120, Height: 80},
		{X: 220, Y: 0, Width: 80, Height: 80},
		{X: 0, Y: 80, Width: 90, Height: 120},
		{X: 90, Y: 80, Width: 210, Height: 120},
	}

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "no max height", cfg: Config{MaxWidth: 300}},
		{name: "non-constraining max height", cfg: Config{MaxWidth: 300, MaxHeight: 300}},
		{name: "constraining max height", cfg: Config{MaxWidth: 600, MaxHeight: 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LayoutGridByRows(scenarioRows, tt.cfg)
			if err != nil {
				t.Fatalf("LayoutGridByRows() error = %v", err)
			}
			assertPositions(t, got.Positions, want, 0.1)
			if !approxEqual(got.Height, 200, 1e-9) {
				t.Errorf("Height = %v, want 200", got.Height)
			}
			if !approxEqual(got.Width, 300, 1e-9) {
				t.Errorf("Width = %v, want 300", got.Width)
			}
		})
	}
}

func TestLayoutGridByRowsWithSpacing(t *testing.T) {
	got, err := LayoutGridByRows(scenarioRows, Config{MaxWidth: 300, Spacing: 10})
	if err != nil {
		t.Fatalf("LayoutGridByRows() error = %v", err)
	}
	if got.Width != 300 {
		t.Errorf("Width = %v, want exactly 300", got.Width)
	}
	if !approxEqual(got.Height, 200.67, tolerance) {
		t.Errorf("Height = %v, want ≈200.67", got.Height)
	}

	firstRow := 280 / 3.75
	want := []Position{
		{X: 0, Y: 0, Width: 93, Height: firstRow},
		{X: 103, Y: 0, Width: 112, Height: firstRow},
		{X: 225, Y: 0, Width: 75, Height: firstRow},
		{X: 0, Y: firstRow + 10, Width: 87, Height: 116},
		{X: 97, Y: firstRow + 10, Width: 203, Height: 116},
	}
	assertPositions(t, got.Positions, want, 1e-9)
}

func TestLayoutGridByRowsRescale(t *testing.T) {
	cfg := Config{MaxWidth: 600, MaxHeight: 200}
	grid := NewGrid(scenarioRows, 0)
	if natural := grid.HeightFromWidth(cfg.MaxWidth); natural <= cfg.MaxHeight {
		t.Fatalf("natural height %v should exceed %v", natural, cfg.MaxHeight)
	}

	got, err := LayoutGridByRows(scenarioRows, cfg)
	if err != nil {
		t.Fatalf("LayoutGridByRows() error = %v", err)
	}
	if got.Height != 200 {
		t.Errorf("Height = %v, want exactly 200", got.Height)
	}
	if got.Width >= 600 {
		t.Errorf("Width = %v, want below 600", got.Width)
	}
	if want := grid.WidthFromHeight(200); got.Width != want {
		t.Errorf("Width = %v, want %v", got.Width, want)
	}
}

func TestLayoutGridByRowsRescaleWithSpacing(t *testing.T) {
	cfg := Config{MaxWidth: 900, MaxHeight: 250, Spacing: 8}
	got, err := LayoutGridByRows(scenarioRows, cfg)
	if err != nil {
		t.Fatalf("LayoutGridByRows() error = %v", err)
	}
	grid := NewGrid(scenarioRows, cfg.Spacing)
	if h := grid.HeightFromWidth(got.Width); !approxEqual(h, 250, 1e-6) {
		t.Errorf("grid height at rescaled width = %v, want 250", h)
	}
	last := got.Positions[len(got.Positions)-1]
	if !approxEqual(last.Bottom(), 250, 1e-6) {
		t.Errorf("last row bottom = %v, want 250", last.Bottom())
	}
}

func TestLayoutGridByRowsEmpty(t *testing.T) {
	got, err := LayoutGridByRows(nil, Config{MaxWidth: 300})
	if err != nil {
		t.Fatalf("LayoutGridByRows(nil) error = %v", err)
	}
	if got.Width != 0 || got.Height != 0 || len(got.Positions) != 0 {
		t.Errorf("LayoutGridByRows(nil) = %+v, want zero result", got)
	}
}

func TestLayoutGridByRowsErrors(t *testing.T) {
	tests := []struct {
		name   string
		groups [][]float64
		cfg    Config
		code   errs.Code
	}{
		{
			name:   "empty row",
			groups: [][]float64{{1, 2}, {}},
			cfg:    Config{MaxWidth: 300},
			code:   errs.ErrCodeDegenerateInput,
		},
		{
			name:   "zero ratio row",
			groups: [][]float64{{0, 0}},
			cfg:    Config{MaxWidth: 300},
			code:   errs.ErrCodeDegenerateInput,
		},
		{
			name:   "zero width",
			groups: scenarioRows,
			cfg:    Config{},
			code:   errs.ErrCodeInvalidConfig,
		},
		{
			name:   "negative spacing",
			groups: scenarioRows,
			cfg:    Config{MaxWidth: 300, Spacing: -1},
			code:   errs.ErrCodeInvalidConfig,
		},
		{
			name:   "spacing fills the row",
			groups: [][]float64{{1, 1, 1}},
			cfg:    Config{MaxWidth: 20, Spacing: 10},
			code:   errs.ErrCodeInvalidConfig,
		},
		{
			name:   "unknown align",
			groups: scenarioRows,
			cfg:    Config{MaxWidth: 300, Align: "right"},
			code:   errs.ErrCodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LayoutGridByRows(tt.groups, tt.cfg)
			if !errs.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func sizesFromRatios(ratios ...float64) []Size {
	sizes := make([]Size, len(ratios))
	for i, r := range ratios {
		sizes[i] = Size{Width: r * 100, Height: 100}
	}
	return sizes
}

func TestFixedPartitionEmpty(t *testing.T) {
	got, err := FixedPartition(nil, Config{MaxWidth: 800})
	if err != nil {
		t.Fatalf("FixedPartition(nil) error = %v", err)
	}
	if got.Width != 0 || got.Height != 0 {
		t.Errorf("size = %vx%v, want 0x0", got.Width, got.Height)
	}
	if got.Positions == nil || len(got.Positions) != 0 {
		t.Errorf("Positions = %#v, want empty non-nil slice", got.Positions)
	}
}

func TestFixedPartitionSingleElement(t *testing.T) {
	tests := []struct {
		name string
		size Size
		cfg  Config
		want Position
		box  [2]float64
	}{
		{
			name: "fallback at ideal height",
			size: Size{Width: 400, Height: 300},
			cfg:  Config{MaxWidth: 900},
			want: Position{X: 0, Y: 0, Width: 400, Height: 300},
			box:  [2]float64{900, 300},
		},
		{
			name: "fallback centered",
			size: Size{Width: 400, Height: 300},
			cfg:  Config{MaxWidth: 900, Align: AlignCenter},
			want: Position{X: 250, Y: 0, Width: 400, Height: 300},
			box:  [2]float64{900, 300},
		},
		{
			name: "fallback capped by max height",
			size: Size{Width: 400, Height: 300},
			cfg:  Config{MaxWidth: 900, MaxHeight: 200},
			want: Position{X: 0, Y: 0, Width: 267, Height: 200},
			box:  [2]float64{900, 200},
		},
		{
			name: "panorama spans the row",
			size: Size{Width: 3000, Height: 300},
			cfg:  Config{MaxWidth: 900},
			want: Position{X: 0, Y: 0, Width: 900, Height: 90},
			box:  [2]float64{900, 90},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FixedPartition([]Size{tt.size}, tt.cfg)
			if err != nil {
				t.Fatalf("FixedPartition() error = %v", err)
			}
			assertPositions(t, got.Positions, []Position{tt.want}, 1e-9)
			if got.Width != tt.box[0] || got.Height != tt.box[1] {
				t.Errorf("container = %vx%v, want %vx%v", got.Width, got.Height, tt.box[0], tt.box[1])
			}
		})
	}
}

func TestFixedPartitionSingleRowCenteredWithSpacing(t *testing.T) {
	cfg := Config{MaxWidth: 1000, IdealElementHeight: 100, Spacing: 10, Align: AlignCenter}
	got, err := FixedPartition(sizesFromRatios(1, 2), cfg)
	if err != nil {
		t.Fatalf("FixedPartition() error = %v", err)
	}
	// content is 100 + 10 + 200 wide
	if got.Positions[0].X != 345 {
		t.Errorf("first x = %v, want 345", got.Positions[0].X)
	}
	if got.Positions[1].X != 455 {
		t.Errorf("second x = %v, want 455", got.Positions[1].X)
	}
	if got.Width != 1000 || got.Height != 100 {
		t.Errorf("container = %vx%v, want 1000x100", got.Width, got.Height)
	}
}

func TestFixedPartitionRows(t *testing.T) {
	sizes := sizesFromRatios(1.25, 1.5, 1, 0.75, 1.75)
	cfg := Config{MaxWidth: 300, IdealElementHeight: 100}

	got, err := FixedPartition(sizes, cfg)
	if err != nil {
		t.Fatalf("FixedPartition() error = %v", err)
	}
	if len(got.Positions) != len(sizes) {
		t.Fatalf("got %d positions, want %d", len(got.Positions), len(sizes))
	}

	// rows [1.25 1.5] and [1 0.75 1.75]
	if got.Positions[0].Y != 0 || got.Positions[1].Y != 0 {
		t.Errorf("first row should start at y=0: %+v", got.Positions[:2])
	}
	if !approxEqual(got.Positions[0].Height, 300/2.75, 1e-9) {
		t.Errorf("first row height = %v, want %v", got.Positions[0].Height, 300/2.75)
	}
	if !approxEqual(got.Positions[2].Y, 300/2.75, 1e-9) {
		t.Errorf("second row y = %v, want %v", got.Positions[2].Y, 300/2.75)
	}
	if !approxEqual(got.Height, 300/2.75+300/3.5, 1e-9) {
		t.Errorf("Height = %v, want %v", got.Height, 300/2.75+300/3.5)
	}
	if got.Width != 300 {
		t.Errorf("Width = %v, want 300", got.Width)
	}
}

func TestFixedPartitionRescale(t *testing.T) {
	sizes := sizesFromRatios(1.25, 1.5, 1, 0.75, 1.75, 1, 1.5, 0.66)
	cfg := Config{MaxWidth: 800, MaxHeight: 300, IdealElementHeight: 250, Spacing: 4}

	got, err := FixedPartition(sizes, cfg)
	if err != nil {
		t.Fatalf("FixedPartition() error = %v", err)
	}
	if got.Height != 300 {
		t.Errorf("Height = %v, want exactly 300", got.Height)
	}
	if got.Width >= 800 {
		t.Errorf("Width = %v, want below 800", got.Width)
	}
}

func TestFixedPartitionPreservesOrderAndCount(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for iter := 0; iter < 100; iter++ {
		n := 1 + rng.Intn(60)
		sizes := make([]Size, n)
		for i := range sizes {
			sizes[i] = Size{Width: float64(100 + rng.Intn(900)), Height: float64(100 + rng.Intn(900))}
		}
		cfg := Config{MaxWidth: float64(300 + rng.Intn(1200)), Spacing: float64(rng.Intn(8))}

		got, err := FixedPartition(sizes, cfg)
		if err != nil {
			t.Fatalf("FixedPartition() error = %v", err)
		}
		if len(got.Positions) != n {
			t.Fatalf("got %d positions, want %d", len(got.Positions), n)
		}

		// Row-major order: within a row x increases, and rows only move down.
		for i := 1; i < n; i++ {
			prev, cur := got.Positions[i-1], got.Positions[i]
			if cur.Y == prev.Y {
				if cur.X <= prev.X {
					t.Fatalf("position %d at x=%v not right of %v", i, cur.X, prev.X)
				}
			} else if cur.Y < prev.Y {
				t.Fatalf("position %d moved up: y=%v after %v", i, cur.Y, prev.Y)
			}
		}

		// Each element keeps its aspect ratio within rounding.
		for i, p := range got.Positions {
			want := sizes[i].AspectRatio() * p.Height
			if !approxEqual(p.Width, want, 0.5+1e-9) {
				t.Fatalf("element %d width %v, want ≈%v", i, p.Width, want)
			}
		}
	}
}

func TestFixedPartitionIdempotent(t *testing.T) {
	sizes := sizesFromRatios(1.5, 0.66, 1, 1.33, 1.77, 0.8, 1.2, 2.4, 1)
	cfg := Config{MaxWidth: 1024, MaxHeight: 700, Spacing: 6}

	a, err := FixedPartition(sizes, cfg)
	if err != nil {
		t.Fatalf("FixedPartition() error = %v", err)
	}
	b, err := FixedPartition(sizes, cfg)
	if err != nil {
		t.Fatalf("FixedPartition() error = %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("results differ:\n%+v\n%+v", a, b)
	}
}

func TestFixedPartitionErrors(t *testing.T) {
	tests := []struct {
		name  string
		sizes []Size
		cfg   Config
		code  errs.Code
	}{
		{"zero width element", []Size{{Width: 0, Height: 10}}, Config{MaxWidth: 300}, errs.ErrCodeDegenerateInput},
		{"zero height element", []Size{{Width: 10, Height: 0}}, Config{MaxWidth: 300}, errs.ErrCodeDegenerateInput},
		{"missing max width", []Size{{Width: 10, Height: 10}}, Config{}, errs.ErrCodeInvalidConfig},
		{"negative max height", []Size{{Width: 10, Height: 10}}, Config{MaxWidth: 300, MaxHeight: -1}, errs.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FixedPartition(tt.sizes, tt.cfg)
			if !errs.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestRowsNeeded(t *testing.T) {
	ratios := []float64{1.25, 1.5, 1, 0.75, 1.75}
	tests := []struct {
		ideal float64
		want  int
	}{
		{ideal: 100, want: 2},
		{ideal: 20, want: 0},
		{ideal: 150, want: 3},
		{ideal: 10000, want: len(ratios)},
	}
	for _, tt := range tests {
		cfg := Config{MaxWidth: 300, IdealElementHeight: tt.ideal}
		if got := RowsNeeded(ratios, cfg); got != tt.want {
			t.Errorf("RowsNeeded(ideal=%v) = %d, want %d", tt.ideal, got, tt.want)
		}
	}
}

func TestFixedPartitionHugeRatio(t *testing.T) {
	sizes := []Size{{Width: 1e300, Height: 1}, {Width: 1, Height: 1}}
	cfg := Config{MaxWidth: 300}

	if got := RowsNeeded([]float64{1e300, 1}, cfg); got != 2 {
		t.Fatalf("RowsNeeded = %d, want 2", got)
	}
	got, err := FixedPartition(sizes, cfg)
	if err != nil {
		t.Fatalf("FixedPartition() error = %v", err)
	}
	if len(got.Positions) != 2 {
		t.Fatalf("got %d positions, want 2", len(got.Positions))
	}
	if !(got.Positions[1].Y > got.Positions[0].Y) {
		t.Errorf("second element should start a new row, positions = %+v", got.Positions)
	}
	if got.Positions[1].Width != 300 {
		t.Errorf("second row width = %v, want 300", got.Positions[1].Width)
	}
}

func TestSingleRow(t *testing.T) {
	got, err := SingleRow(sizesFromRatios(1.25, 1.5, 1, 0.75, 1.75), Config{MaxWidth: 300, IdealElementHeight: 40})
	if err != nil {
		t.Fatalf("SingleRow() error = %v", err)
	}
	if len(got.Positions) != 5 {
		t.Fatalf("got %d positions, want 5", len(got.Positions))
	}
	for i, p := range got.Positions {
		if p.Y != 0 || p.Height != 40 {
			t.Errorf("position %d = %+v, want y=0 height=40", i, p)
		}
	}
	if got.Width != 300 || got.Height != 40 {
		t.Errorf("container = %vx%v, want 300x40", got.Width, got.Height)
	}
}

func TestResultTranslate(t *testing.T) {
	r := Result{Width: 10, Height: 20, Positions: []Position{{X: 1, Y: 2, Width: 3, Height: 4}}}
	got := r.Translate(5, 6)
	if got.Positions[0] != (Position{X: 6, Y: 8, Width: 3, Height: 4}) {
		t.Errorf("Translate() = %+v", got.Positions[0])
	}
	if r.Positions[0].X != 1 {
		t.Error("Translate() modified the receiver")
	}
}
