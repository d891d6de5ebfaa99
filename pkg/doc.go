// Package pkg provides the libraries behind gridfit, a justified gallery
// layout engine.
//
// # Overview
//
// Gridfit places an ordered list of rectangles with fixed aspect ratios
// (usually photos) into rows that exactly fill a container width. The pkg
// directory is organized into three areas:
//
//  1. Core: [partition] and [layout], pure and synchronous
//  2. Data: [gallery] (element and layout types) and [io] (manifests)
//  3. Orchestration: [pipeline], [cache], [render/sink], [server],
//     [config] and [observability]
//
// # Architecture
//
// The typical data flow through gridfit:
//
//	Manifest (JSON / YAML / TOML)
//	         ↓
//	    [io] package (decode + normalize elements)
//	         ↓
//	    [partition] package (rows by optimal linear partition)
//	         ↓
//	    [layout] package (row and grid geometry → positions)
//	         ↓
//	    [render/sink] package (SVG / PNG / JSON)
//
// # Quick Start
//
// Lay out three photos in a 1200px container:
//
//	import "github.com/matzehuels/gridfit/pkg/layout"
//
//	res, err := layout.FixedPartition([]layout.Size{
//	    {Width: 1600, Height: 900},
//	    {Width: 600, Height: 900},
//	    {Width: 1000, Height: 1000},
//	}, layout.Config{MaxWidth: 1200, Spacing: 8})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range res.Positions {
//	    fmt.Println(p.X, p.Y, p.Width, p.Height)
//	}
//
// With caching and rendering, use the pipeline:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, g, pipeline.Options{
//	    Width:   1200,
//	    Spacing: 8,
//	    Formats: []string{"svg", "png"},
//	})
//
// # Layout Algorithms
//
//   - partition: rows chosen by [partition.Linear], each scaled to the
//     container width, optionally rescaled to a maximum height
//   - columns: greedy shortest-column packing with equal column widths
//   - single: one row at the ideal height, optionally centered
//
// # Caching
//
// The [cache] package stores layouts and rendered artifacts keyed by a hash
// of the normalized gallery and the options that affect the result. File,
// Redis and MongoDB backends are available.
//
// # Errors
//
// All packages report failures with coded errors from [errors], so callers
// can tell invalid input (INVALID_*, DEGENERATE_INPUT) from internal
// failures. The HTTP API maps these codes to status codes.
//
// [partition]: https://pkg.go.dev/github.com/matzehuels/gridfit/pkg/partition
// [layout]: https://pkg.go.dev/github.com/matzehuels/gridfit/pkg/layout
// [gallery]: https://pkg.go.dev/github.com/matzehuels/gridfit/pkg/gallery
// [io]: https://pkg.go.dev/github.com/matzehuels/gridfit/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gridfit/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/gridfit/pkg/cache
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/gridfit/pkg/render/sink
// [server]: https://pkg.go.dev/github.com/matzehuels/gridfit/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/gridfit/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/gridfit/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/gridfit/pkg/errors
// [partition.Linear]: https://pkg.go.dev/github.com/matzehuels/gridfit/pkg/partition#Linear
package pkg
