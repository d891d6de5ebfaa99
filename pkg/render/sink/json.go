package sink

import "github.com/matzehuels/gridfit/pkg/gallery"

// RenderJSON exports the layout as pretty-printed JSON. The output can be
// re-read with gallery.UnmarshalLayout and rendered again identically.
func RenderJSON(l gallery.Layout) ([]byte, error) {
	return gallery.MarshalLayout(l)
}
