package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/gridfit/pkg/gallery"
)

// RenderPNG rasterizes the layout. The image is Width×Height scaled by the
// scale option (default 2), with a minimum of one pixel per side.
func RenderPNG(l gallery.Layout, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)

	w := max(1, int(math.Ceil(l.Width*r.scale)))
	h := max(1, int(math.Ceil(l.Height*r.scale)))
	dc := gg.NewContext(w, h)
	dc.Scale(r.scale, r.scale)

	if !r.transparent() {
		if bg, ok := ParseColor(r.background); ok {
			dc.SetColor(bg)
			dc.Clear()
		}
	}

	for i, it := range l.Items {
		c := itemColor(it.Color, i)
		dc.DrawRectangle(it.X, it.Y, it.Width, it.Height)
		dc.SetColor(c)
		if r.outline() {
			dc.SetLineWidth(2)
			dc.Stroke()
		} else {
			dc.Fill()
		}

		if r.labels {
			tc := textColor(c)
			if r.outline() {
				tc = c
			}
			drawLabel(dc, it, tc)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// drawLabel writes the label centered in the tile using gg's built-in
// fixed-size face, truncated to the tile width.
func drawLabel(dc *gg.Context, it gallery.Item, c color.Color) {
	text := label(it)
	for text != "" {
		tw, th := dc.MeasureString(text)
		if tw <= it.Width-4 && th <= it.Height {
			break
		}
		runes := []rune(text)
		if len(runes) <= 2 {
			return
		}
		text = string(runes[:len(runes)-2]) + "…"
	}
	if text == "" {
		return
	}
	dc.SetColor(c)
	dc.DrawStringAnchored(text, it.X+it.Width/2, it.Y+it.Height/2, 0.5, 0.5)
}
