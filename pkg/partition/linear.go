package partition

// Range is a half-open index interval [Start, End) into the partitioned sequence.
type Range struct {
	Start, End int
}

// Len returns the number of elements covered by the range.
func (r Range) Len() int { return r.End - r.Start }

// Linear partitions seq into k contiguous groups minimizing the largest
// group sum. Groups preserve the original order both across and within
// groups, and flattening them reproduces seq.
//
// For k <= 0 the result is an empty slice. For k > len(seq) the request is
// over-constrained; every element is returned as its own group.
//
// The returned groups are freshly allocated and never alias seq.
func Linear(seq []float64, k int) [][]float64 {
	ranges := Ranges(seq, k)
	groups := make([][]float64, len(ranges))
	for i, r := range ranges {
		groups[i] = append([]float64(nil), seq[r.Start:r.End]...)
	}
	return groups
}

// Ranges computes the same partition as [Linear] but returns index ranges
// instead of copied values. Callers that need to carry per-element data
// alongside the weights (identifiers, original sizes) use this form.
func Ranges(seq []float64, k int) []Range {
	n := len(seq)
	if k <= 0 {
		return []Range{}
	}
	if k > n {
		out := make([]Range, n)
		for i := range out {
			out[i] = Range{Start: i, End: i + 1}
		}
		return out
	}
	if k == 1 {
		return []Range{{Start: 0, End: n}}
	}

	t := newTables(seq, k)
	t.solve()
	return t.reconstruct()
}

// Cells reports how many dynamic program cells [Ranges] allocates for n
// elements and k groups. Time grows with n times this value. Requests that
// degrade to a single group or to singletons need no tables.
func Cells(n, k int) int {
	if k <= 1 || k > n {
		return 0
	}
	return n * k
}

// tables holds the dynamic program state for one call.
type tables struct {
	n, k  int
	cost  []float64 // n × k
	split []int     // (n-1) × (k-1)
}

func newTables(seq []float64, k int) *tables {
	n := len(seq)
	t := &tables{
		n:     n,
		k:     k,
		cost:  make([]float64, n*k),
		split: make([]int, (n-1)*(k-1)),
	}
	for i := 0; i < n; i++ {
		prev := 0.0
		if i > 0 {
			prev = t.cost[(i-1)*k]
		}
		t.cost[i*k] = seq[i] + prev
	}
	for j := 0; j < k; j++ {
		t.cost[j] = seq[0]
	}
	return t
}

func (t *tables) at(i, j int) float64 { return t.cost[i*t.k+j] }

// solve fills cost[i][j] for i >= j only. The previous group must end at an
// index x >= j-1 so that each of the j leading groups keeps at least one
// element; ties keep the earliest split.
func (t *tables) solve() {
	for i := 1; i < t.n; i++ {
		total := t.at(i, 0)
		for j := 1; j < t.k && j <= i; j++ {
			bestX := j - 1
			best := max(t.at(bestX, j-1), total-t.at(bestX, 0))
			for x := j; x < i; x++ {
				if v := max(t.at(x, j-1), total-t.at(x, 0)); v < best {
					best, bestX = v, x
				}
			}
			t.cost[i*t.k+j] = best
			t.split[(i-1)*(t.k-1)+(j-1)] = bestX
		}
	}
}

// reconstruct walks the split table backwards from the last element and
// the last group, prepending one group per step.
func (t *tables) reconstruct() []Range {
	out := make([]Range, t.k)
	end := t.n - 1
	for j := t.k - 2; j >= 0; j-- {
		x := t.split[(end-1)*(t.k-1)+j]
		out[j+1] = Range{Start: x + 1, End: end + 1}
		end = x
	}
	out[0] = Range{Start: 0, End: end + 1}
	return out
}
