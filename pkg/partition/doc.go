// Package partition splits ordered weight sequences into contiguous groups.
//
// # Overview
//
// The central operation is [Linear], which solves the classic linear
// partition problem: given n non-negative weights and a group count k, split
// the sequence into exactly k contiguous, non-empty groups such that the
// largest group sum is as small as possible. Gallery layouts use the aspect
// ratios of their elements as weights, so each group becomes one row and the
// rows end up roughly equally full.
//
// # Algorithm
//
// [Linear] fills two tables by dynamic programming:
//
//   - cost[i][j]: the smallest achievable maximum group sum when the first
//     i+1 weights are split into j+1 groups
//   - split[i][j]: the index of the last element of the previous group for
//     the optimal choice at cost[i+1][j+1]
//
// Both are stored as flat row-major slices and discarded after the call.
// Running time is O(n²·k) and memory is O(n·k), which is comfortable for
// gallery sized inputs (a few hundred elements at most).
//
// # Degenerate Requests
//
// A non-positive k yields no groups. A k larger than the sequence cannot be
// satisfied with non-empty groups; [Linear] then returns one singleton group
// per element instead of failing.
//
// # Concurrency
//
// All functions are pure and allocate their working state per call. They
// are safe for concurrent use.
package partition
