// Package gallery provides serialization types for element collections and
// computed layouts.
//
// This package defines the canonical wire format for gridfit data, used for
// input manifests, layout files, API responses and caching.
//
// # Architecture
//
// The package sits at the serialization boundary between the pure layout
// engine and external formats:
//
//   - [Gallery], [Layout]: serialization types (this package)
//   - pkg/layout.Size, pkg/layout.Result: engine input and output
//
// Use [Gallery.Sizes] to feed the engine and [FromResult] to turn an engine
// result back into a [Layout] that carries element IDs and labels.
//
// # Constants
//
// This package is the single source of truth for algorithm and style names:
//
//	gallery.AlgorithmPartition  // "partition"
//	gallery.AlgorithmColumns    // "columns"
//	gallery.AlgorithmSingle     // "single"
//	gallery.StyleSimple         // "simple"
//	gallery.StyleOutline        // "outline"
//
// # Layout Serialization
//
//	l, _ := gallery.ReadLayoutFile("photos.layout.json")
//	for _, it := range l.Items {
//	    fmt.Println(it.ID, it.X, it.Y, it.Width, it.Height)
//	}
package gallery
