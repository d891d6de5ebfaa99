// Package layout computes pixel positions for galleries of fixed-aspect
// rectangles.
//
// # Justified Layout
//
// [FixedPartition] produces a justified grid: every row spans the same
// container width and each row's height varies to compensate. It follows
// Johannes Treitz's "perfectly balanced photo gallery" approach:
//
//  1. Convert every element to its aspect ratio (width / height).
//  2. Estimate how many rows of the ideal element height are needed to fit
//     all elements into the container width.
//  3. Split the ratios into that many contiguous rows with
//     [partition.Linear], balancing the summed ratio of every row.
//  4. Scale each row so it exactly fills the container width.
//
// When fewer than one row is needed, the elements are placed in a single
// row at the ideal height (optionally centered) instead of being stretched.
// When the grid would be taller than Config.MaxHeight, the whole grid is
// shrunk until it is exactly MaxHeight tall; the result is then narrower
// than MaxWidth.
//
// [LayoutGridByRows] runs steps 4 onwards for callers that already have
// rows, and [SingleRow] forces the single-row placement.
//
// # Fixed Columns
//
// [FixedColumn] is a simpler masonry packer: the container is split into
// equal-width columns and each element goes to the currently shortest one.
//
// # Geometry
//
// [Row] and [Grid] are the value types behind the justified layout. A row's
// height for a given width is (width - gaps) / Σratios; a grid's height is
// the sum of its rows plus the gaps between them. Element widths are rounded
// to whole pixels with [math.Round]; row heights are kept exact, so a row
// may drift from its target width by a pixel or two.
//
// # Errors
//
// Invalid configuration (non-positive width, negative spacing, no columns)
// fails with an ErrCodeInvalidConfig error. Elements without a positive
// width and height, and empty rows in a pre-partitioned grid, fail with
// ErrCodeDegenerateInput. An empty element list is not an error: it yields a
// zero-size [Result] with no positions.
//
// # Concurrency
//
// All functions are pure. Results depend only on the arguments, so equal
// inputs always produce identical results, and calls may run concurrently.
package layout
