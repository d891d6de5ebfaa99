package sink

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/gridfit/pkg/gallery"
)

func testLayout() gallery.Layout {
	return gallery.Layout{
		Algorithm: gallery.AlgorithmPartition,
		Width:     100,
		Height:    50,
		Groups:    1,
		Items: []gallery.Item{
			{ID: "a", X: 0, Y: 0, Width: 50, Height: 50, Color: "red", Label: "Alpha"},
			{ID: "b<1>", X: 50, Y: 0, Width: 50, Height: 50, URL: "https://example.com/?x=1&y=2"},
		},
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in     string
		want   color.RGBA
		wantOK bool
	}{
		{"red", color.RGBA{255, 0, 0, 255}, true},
		{" SteelBlue ", color.RGBA{70, 130, 180, 255}, true},
		{"#00ff80", color.RGBA{0, 255, 128, 255}, true},
		{"#fff", color.RGBA{255, 255, 255, 255}, true},
		{"#12345", color.RGBA{}, false},
		{"#gggggg", color.RGBA{}, false},
		{"notacolor", color.RGBA{}, false},
		{"", color.RGBA{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseColor(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestItemColorFallsBackToPalette(t *testing.T) {
	for i := range 2 * len(DefaultPalette) {
		if got, want := itemColor("", i), DefaultPalette[i%len(DefaultPalette)]; got != want {
			t.Errorf("itemColor(\"\", %d) = %v, want %v", i, got, want)
		}
	}
	if got := itemColor("bogus", 1); got != DefaultPalette[1] {
		t.Errorf("unknown color should fall back to palette, got %v", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testLayout(), WithLabels()))

	for _, want := range []string{
		`viewBox="0 0 100.0 50.0"`,
		`width="100" height="50"`,
		`<rect width="100%" height="100%" fill="#ffffff"/>`,
		`id="item-a"`,
		`fill="#ff0000"`,
		`id="item-b&lt;1&gt;"`,
		`href="https://example.com/?x=1&amp;y=2"`,
		`>Alpha</text>`,
		`<title>Alpha</title>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q\n%s", want, svg)
		}
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("SVG should end with </svg>")
	}
	if strings.Count(svg, "<a ") != 1 || strings.Count(svg, "</a>") != 1 {
		t.Error("only the item with a URL should be wrapped in a link")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	l := testLayout()

	plain := string(RenderSVG(l))
	if strings.Contains(plain, "<text") {
		t.Error("labels should be off by default")
	}

	outline := string(RenderSVG(l, WithStyle(gallery.StyleOutline)))
	if !strings.Contains(outline, `fill="none" stroke="#ff0000"`) {
		t.Errorf("outline style should stroke with the item color:\n%s", outline)
	}

	transparent := string(RenderSVG(l, WithBackground("none")))
	if strings.Contains(transparent, `height="100%"`) {
		t.Error("transparent background should not paint the frame")
	}

	navy := string(RenderSVG(l, WithBackground("navy")))
	if !strings.Contains(navy, `fill="#000080"/>`) {
		t.Error("named background should be resolved")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	a := RenderSVG(testLayout(), WithLabels())
	b := RenderSVG(testLayout(), WithLabels())
	if !bytes.Equal(a, b) {
		t.Error("RenderSVG should be deterministic")
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(testLayout(), WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("size = %dx%d, want 100x50", b.Dx(), b.Dy())
	}

	r, g, b, _ := img.At(25, 25).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("pixel in red tile = (%d,%d,%d), want (255,0,0)", r>>8, g>>8, b>>8)
	}
	want := DefaultPalette[1]
	r, g, b, _ = img.At(75, 25).RGBA()
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Errorf("pixel in second tile = (%d,%d,%d), want palette %v", r>>8, g>>8, b>>8, want)
	}
}

func TestRenderPNGScaleAndEmpty(t *testing.T) {
	data, err := RenderPNG(testLayout())
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 200 || cfg.Height != 100 {
		t.Errorf("default scale size = %dx%d, want 200x100", cfg.Width, cfg.Height)
	}

	data, err = RenderPNG(gallery.Layout{}, WithLabels())
	if err != nil {
		t.Fatalf("RenderPNG(empty) error = %v", err)
	}
	cfg, err = png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 1 || cfg.Height != 1 {
		t.Errorf("empty layout size = %dx%d, want 1x1", cfg.Width, cfg.Height)
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testLayout())
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}
	l, err := gallery.UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout() error = %v", err)
	}
	if len(l.Items) != 2 || l.Items[1].ID != "b<1>" {
		t.Errorf("round trip lost items: %+v", l.Items)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 200, 10); got != "short" {
		t.Errorf("truncate should keep text that fits, got %q", got)
	}
	got := truncate("a very long caption indeed", 40, 10)
	if !strings.HasSuffix(got, "…") || len([]rune(got)) >= len("a very long caption indeed") {
		t.Errorf("truncate(long) = %q", got)
	}
	if got := truncate("abc", 5, 10); got != "" {
		t.Errorf("truncate in a sliver = %q, want empty", got)
	}
}
