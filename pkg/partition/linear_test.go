package partition

import (
	"math"
	"math/rand"
	"slices"
	"testing"
)

func TestLinearNonPositiveK(t *testing.T) {
	seq := []float64{1, 2, 3}
	for _, k := range []int{0, -1, -10} {
		got := Linear(seq, k)
		if got == nil {
			t.Fatalf("Linear(k=%d) returned nil, want empty slice", k)
		}
		if len(got) != 0 {
			t.Errorf("Linear(k=%d) = %v, want no groups", k, got)
		}
	}
}

func TestLinearMoreGroupsThanElements(t *testing.T) {
	seq := []float64{3, 1, 4}
	got := Linear(seq, 5)
	if len(got) != len(seq) {
		t.Fatalf("got %d groups, want %d", len(got), len(seq))
	}
	for i, g := range got {
		if len(g) != 1 || g[0] != seq[i] {
			t.Errorf("group %d = %v, want [%v]", i, g, seq[i])
		}
	}
}

func TestLinearEmptySequence(t *testing.T) {
	if got := Linear(nil, 2); len(got) != 0 {
		t.Errorf("Linear(nil, 2) = %v, want no groups", got)
	}
}

func TestLinearKnownPartitions(t *testing.T) {
	tests := []struct {
		name string
		seq  []float64
		k    int
		want [][]float64
	}{
		{
			name: "single group",
			seq:  []float64{1, 2, 3},
			k:    1,
			want: [][]float64{{1, 2, 3}},
		},
		{
			name: "three groups",
			seq:  []float64{9, 2, 6, 3, 8, 5, 8, 1, 7, 3, 4},
			k:    3,
			want: [][]float64{{9, 2, 6, 3}, {8, 5, 8}, {1, 7, 3, 4}},
		},
		{
			name: "ascending",
			seq:  []float64{1, 2, 3, 4, 5, 6, 7, 8, 9},
			k:    3,
			want: [][]float64{{1, 2, 3, 4, 5}, {6, 7}, {8, 9}},
		},
		{
			name: "heavy head keeps groups non-empty",
			seq:  []float64{10, 1, 1},
			k:    3,
			want: [][]float64{{10}, {1}, {1}},
		},
		{
			name: "aspect ratios",
			seq:  []float64{1.25, 1.5, 1, 0.75, 1.75},
			k:    2,
			want: [][]float64{{1.25, 1.5}, {1, 0.75, 1.75}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Linear(tt.seq, tt.k)
			if !equalGroups(got, tt.want) {
				t.Errorf("Linear(%v, %d) = %v, want %v", tt.seq, tt.k, got, tt.want)
			}
		})
	}
}

func TestLinearDoesNotAliasInput(t *testing.T) {
	seq := []float64{1, 2, 3, 4}
	groups := Linear(seq, 2)
	groups[0][0] = 99
	if seq[0] != 1 {
		t.Errorf("mutating a group changed the input: %v", seq)
	}
}

func TestLinearPreservesOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 200; iter++ {
		n := 1 + rng.Intn(30)
		seq := randomWeights(rng, n)
		k := 1 + rng.Intn(n)

		groups := Linear(seq, k)
		if len(groups) != k {
			t.Fatalf("Linear(%v, %d) returned %d groups", seq, k, len(groups))
		}
		var flat []float64
		for i, g := range groups {
			if len(g) == 0 {
				t.Fatalf("Linear(%v, %d) group %d is empty", seq, k, i)
			}
			flat = append(flat, g...)
		}
		if !slices.Equal(flat, seq) {
			t.Fatalf("flattened %v, want %v", flat, seq)
		}
	}
}

func TestLinearIsOptimal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 500; iter++ {
		n := 1 + rng.Intn(8)
		seq := randomWeights(rng, n)
		k := 1 + rng.Intn(n)

		got := MaxSum(Linear(seq, k))
		want := bruteForceMaxSum(seq, k)
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("Linear(%v, %d) max sum = %v, brute force = %v", seq, k, got, want)
		}
	}
}

func TestRangesMatchLinear(t *testing.T) {
	seq := []float64{0.5, 1.5, 1, 2, 0.75, 1.25, 1}
	groups := Linear(seq, 3)
	ranges := Ranges(seq, 3)
	if len(groups) != len(ranges) {
		t.Fatalf("got %d ranges, want %d", len(ranges), len(groups))
	}
	for i, r := range ranges {
		if r.Len() != len(groups[i]) || !slices.Equal(seq[r.Start:r.End], groups[i]) {
			t.Errorf("range %d = %+v, group = %v", i, r, groups[i])
		}
	}
}

// bruteForceMaxSum enumerates every placement of k-1 cuts.
func bruteForceMaxSum(seq []float64, k int) float64 {
	n := len(seq)
	best := math.Inf(1)
	cuts := make([]int, 0, k+1)
	var walk func(start, remaining int)
	walk = func(start, remaining int) {
		if remaining == 0 {
			bounds := append(append([]int{0}, cuts...), n)
			worst := 0.0
			for i := 0; i+1 < len(bounds); i++ {
				worst = max(worst, Sum(seq[bounds[i]:bounds[i+1]]))
			}
			best = min(best, worst)
			return
		}
		for c := start; c <= n-remaining; c++ {
			cuts = append(cuts, c)
			walk(c+1, remaining-1)
			cuts = cuts[:len(cuts)-1]
		}
	}
	walk(1, k-1)
	return best
}

func randomWeights(rng *rand.Rand, n int) []float64 {
	seq := make([]float64, n)
	for i := range seq {
		seq[i] = float64(rng.Intn(20)) / 4
	}
	return seq
}

func equalGroups(a, b [][]float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !slices.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func TestCells(t *testing.T) {
	tests := []struct {
		n, k int
		want int
	}{
		{n: 10, k: 0, want: 0},
		{n: 10, k: 1, want: 0},
		{n: 10, k: 3, want: 30},
		{n: 10, k: 10, want: 100},
		{n: 10, k: 11, want: 0},
	}
	for _, tt := range tests {
		if got := Cells(tt.n, tt.k); got != tt.want {
			t.Errorf("Cells(%d, %d) = %d, want %d", tt.n, tt.k, got, tt.want)
		}
	}
}
