package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/gridfit/pkg/gallery"
	"github.com/matzehuels/gridfit/pkg/pipeline"
)

func previewGallery() gallery.Gallery {
	return gallery.Gallery{Elements: []gallery.Element{
		{Width: 1600, Height: 900},
		{Width: 600, Height: 900},
		{Width: 1000, Height: 1000},
	}}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPreviewModelKeys(t *testing.T) {
	m := newPreviewModel(previewGallery(), pipeline.Options{Width: 600, Spacing: 4})
	if m.err != nil {
		t.Fatalf("initial layout: %v", m.err)
	}

	steps := []struct {
		key   string
		check func(previewModel) bool
	}{
		{"+", func(m previewModel) bool { return m.opts.Width == 650 && m.layout.Width == 650 }},
		{"-", func(m previewModel) bool { return m.opts.Width == 600 }},
		{"]", func(m previewModel) bool { return m.opts.Spacing == 6 }},
		{"[", func(m previewModel) bool { return m.opts.Spacing == 4 }},
		{"a", func(m previewModel) bool { return m.opts.Algorithm == gallery.AlgorithmColumns && m.layout.Algorithm == gallery.AlgorithmColumns }},
		{"a", func(m previewModel) bool { return m.opts.Algorithm == gallery.AlgorithmSingle }},
		{"c", func(m previewModel) bool { return m.opts.Align == "center" }},
		{"a", func(m previewModel) bool { return m.opts.Algorithm == gallery.AlgorithmPartition }},
	}
	for _, s := range steps {
		next, _ := m.Update(key(s.key))
		m = next.(previewModel)
		if !s.check(m) {
			t.Fatalf("after %q: opts = %+v", s.key, m.opts)
		}
	}

	// Width never drops below the minimum.
	for range 20 {
		next, _ := m.Update(key("-"))
		m = next.(previewModel)
	}
	if m.opts.Width != previewMinWidth {
		t.Errorf("Width = %v, want %v", m.opts.Width, previewMinWidth)
	}

	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q should quit")
	}
}

func TestPreviewView(t *testing.T) {
	m := newPreviewModel(previewGallery(), pipeline.Options{Width: 600})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 62, Height: 30})
	view := next.(previewModel).View()

	for _, want := range []string{"Gallery Preview", "partition", "3 elements", "A", "B", "C"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestRasterize(t *testing.T) {
	l := gallery.Layout{
		Width:  100,
		Height: 40,
		Items: []gallery.Item{
			{X: 0, Y: 0, Width: 45, Height: 40},
			{X: 55, Y: 0, Width: 45, Height: 40},
		},
	}
	grid := rasterize(l, 20, 100)

	if len(grid) != 4 {
		t.Fatalf("rows = %d, want 4", len(grid))
	}
	row := grid[0]
	if row[0] != 0 || row[8] != 0 || row[9] != -1 || row[10] != -1 || row[11] != 1 || row[19] != 1 {
		t.Errorf("row = %v", row)
	}

	if cropped := rasterize(l, 20, 2); len(cropped) != 2 {
		t.Errorf("cropped rows = %d, want 2", len(cropped))
	}
	if rasterize(gallery.Layout{}, 20, 10) != nil {
		t.Error("empty layout should rasterize to nil")
	}
}

func TestCellSpan(t *testing.T) {
	tests := []struct {
		pos, size, scale float64
		limit            int
		start, end       int
	}{
		{0, 10, 1, 100, 0, 10},
		{5, 0.1, 1, 100, 5, 6},
		{90, 20, 1, 100, 90, 100},
		{0, 50, 0.5, 100, 0, 25},
	}
	for _, tt := range tests {
		s, e := cellSpan(tt.pos, tt.size, tt.scale, tt.limit)
		if s != tt.start || e != tt.end {
			t.Errorf("cellSpan(%v, %v, %v, %d) = %d, %d; want %d, %d",
				tt.pos, tt.size, tt.scale, tt.limit, s, e, tt.start, tt.end)
		}
	}
}
