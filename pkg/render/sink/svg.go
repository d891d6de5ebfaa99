package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/gridfit/pkg/gallery"
)

const itemCSS = `
    .item { transition: opacity 0.15s ease; }
    .item:hover { opacity: 0.8; }
    .item-label { pointer-events: none; font-family: sans-serif; }`

// RenderSVG renders the layout as a standalone SVG document.
func RenderSVG(l gallery.Layout, opts ...Option) []byte {
	r := newRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", itemCSS)

	if !r.transparent() {
		fill := "#ffffff"
		if bg, ok := ParseColor(r.background); ok {
			fill = hexColor(bg)
		}
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", fill)
	}

	for i, it := range l.Items {
		renderItem(&buf, r, i, it)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderItem(buf *bytes.Buffer, r renderer, i int, it gallery.Item) {
	c := itemColor(it.Color, i)

	if it.URL != "" {
		fmt.Fprintf(buf, `  <a href="%s" target="_blank">`+"\n", escape(it.URL))
	}

	fill, stroke := hexColor(c), "none"
	if r.outline() {
		fill, stroke = "none", hexColor(c)
	}
	fmt.Fprintf(buf, `  <rect id="item-%s" class="item" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="2">`,
		escape(it.ID), it.X, it.Y, it.Width, it.Height, fill, stroke)
	fmt.Fprintf(buf, "<title>%s</title></rect>\n", escape(label(it)))

	if r.labels {
		text := label(it)
		size := fontSize(it.Width, it.Height, len([]rune(text)))
		text = truncate(text, it.Width, size)
		if text != "" {
			tc := textColor(c)
			if r.outline() {
				tc = c
			}
			fmt.Fprintf(buf, `  <text class="item-label" x="%.1f" y="%.1f" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
				it.X+it.Width/2, it.Y+it.Height/2, size, hexColor(tc), escape(text))
		}
	}

	if it.URL != "" {
		buf.WriteString("  </a>\n")
	}
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
