package sink

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// DefaultPalette colors items without an explicit color, cycling by index.
var DefaultPalette = []color.RGBA{
	colornames.Steelblue,
	colornames.Seagreen,
	colornames.Goldenrod,
	colornames.Indianred,
	colornames.Mediumpurple,
	colornames.Darkcyan,
	colornames.Sandybrown,
	colornames.Slategray,
}

// ParseColor resolves a CSS color name or a #rgb / #rrggbb hex value.
func ParseColor(s string) (color.RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c, true
	}
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, false
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}

// itemColor returns the fill for the item at index i.
func itemColor(name string, i int) color.RGBA {
	if c, ok := ParseColor(name); ok {
		return c
	}
	return DefaultPalette[i%len(DefaultPalette)]
}

// textColor picks black or white, whichever reads better on bg.
func textColor(bg color.RGBA) color.RGBA {
	lum := 0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B)
	if lum > 150 {
		return colornames.Black
	}
	return colornames.White
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
