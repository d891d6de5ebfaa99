package sink

import "github.com/matzehuels/gridfit/pkg/gallery"

// Option configures a renderer.
type Option func(*renderer)

type renderer struct {
	style      string
	background string
	labels     bool
	scale      float64
}

// WithStyle sets the tile style (gallery.StyleSimple or gallery.StyleOutline).
func WithStyle(s string) Option { return func(r *renderer) { r.style = s } }

// WithBackground sets the frame color. "none" or "transparent" leaves the
// frame unpainted.
func WithBackground(c string) Option { return func(r *renderer) { r.background = c } }

// WithLabels draws item labels.
func WithLabels() Option { return func(r *renderer) { r.labels = true } }

// WithScale sets the PNG scale factor. Values ≤ 0 are ignored.
func WithScale(s float64) Option {
	return func(r *renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

func newRenderer(opts ...Option) renderer {
	r := renderer{style: gallery.StyleSimple, background: "white", scale: 2}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r renderer) outline() bool { return r.style == gallery.StyleOutline }

func (r renderer) transparent() bool {
	return r.background == "" || r.background == "none" || r.background == "transparent"
}

// label returns the text drawn on an item.
func label(it gallery.Item) string {
	if it.Label != "" {
		return it.Label
	}
	return it.ID
}
