package partition

// Sum returns the total of xs. An empty slice sums to zero.
func Sum(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
}

// SumBy projects every item through fn and returns the total.
func SumBy[T any](items []T, fn func(T) float64) float64 {
	var total float64
	for _, it := range items {
		total += fn(it)
	}
	return total
}

// MaxSum returns the largest group total in groups, the quantity minimized
// by [Linear]. It returns zero for no groups.
func MaxSum(groups [][]float64) float64 {
	var best float64
	for i, g := range groups {
		if s := Sum(g); i == 0 || s > best {
			best = s
		}
	}
	return best
}
