// Package sink renders computed gallery layouts to output formats.
//
// # Overview
//
// A "sink" transforms a [gallery.Layout] into a final output format. This
// package provides renderers for:
//
//   - SVG: scalable vector preview with links and tooltips
//   - PNG: raster preview drawn with fogleman/gg
//   - JSON: the layout itself, for external tools
//
// Every item is drawn as a tile at its computed position. Tiles use the
// element's own color when it has one, otherwise a color from
// [DefaultPalette] picked by item index, so adjacent tiles differ.
//
// # Options
//
//   - [WithStyle]: "simple" (filled tiles) or "outline" (stroked frames)
//   - [WithBackground]: frame color, or "none" for a transparent frame
//   - [WithLabels]: draw item labels (falling back to IDs)
//   - [WithScale]: PNG pixel density (default 2 for 2x output)
//
// Basic usage:
//
//	svg := sink.RenderSVG(l, sink.WithLabels())
//	png, err := sink.RenderPNG(l, sink.WithScale(1), sink.WithStyle(gallery.StyleOutline))
//
// # Colors
//
// Colors are CSS/SVG color names (resolved through golang.org/x/image's
// colornames table) or #rrggbb hex values. Unknown names fall back to the
// palette.
//
// [gallery.Layout]: github.com/matzehuels/gridfit/pkg/gallery.Layout
package sink
