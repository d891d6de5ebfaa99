// Package io reads and writes element manifests in JSON, YAML and TOML.
//
// # Overview
//
// A manifest is an ordered list of elements with their original sizes. The
// layout engine only looks at aspect ratios, so width and height can be in
// any unit as long as both sides use the same one.
//
// # Formats
//
// The format is picked from the file extension by [FormatFromPath]:
//
//	.json          JSON
//	.yaml, .yml    YAML
//	.toml          TOML
//
// JSON and YAML accept either an object with an "elements" array or a bare
// array:
//
//	{"elements": [{"id": "a", "width": 4, "height": 3}]}
//	[{"id": "a", "width": 4, "height": 3}]
//
// TOML requires the table form:
//
//	[[elements]]
//	id = "a"
//	width = 4
//	height = 3
//
// # Element Fields
//
// Required:
//   - width, height: positive original size
//
// Optional:
//   - id: unique identifier (defaults to "item-N", 1-based)
//   - label: caption drawn by the renderers
//   - url: link target in SVG output
//   - color: fill color (CSS color name or #rrggbb)
//
// # Import
//
// Use [ImportGallery] to read a manifest from a file path, or [ReadGallery]
// to read from any io.Reader:
//
//	g, err := io.ImportGallery("photos.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both functions normalize the gallery (default IDs, duplicate and size
// checks). Errors carry codes from pkg/errors: INVALID_FORMAT for
// undecodable input, INVALID_INPUT and DEGENERATE_INPUT for bad elements,
// FILE_NOT_FOUND for missing files.
//
// # Export
//
// Use [ExportGallery] or [WriteGallery] to write a manifest in any of the
// three formats. Computed layouts are written with the gallery package's
// layout file helpers.
package io
