package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridfit/pkg/gallery"
	"github.com/matzehuels/gridfit/pkg/pipeline"
)

// previewCommand opens an interactive terminal preview of a gallery.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		inputFormat string
		flags       optionFlags
	)

	cmd := &cobra.Command{
		Use:   "preview [manifest]",
		Short: "Interactively preview a layout in the terminal",
		Long: `Interactively preview a layout in the terminal.

Keys:
  + / -    widen or narrow the container
  ] / [    increase or decrease spacing
  a        cycle the layout algorithm
  c        toggle centering of single rows
  q        quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			g, err := readManifest(args[0], inputFormat)
			if err != nil {
				return err
			}
			m := newPreviewModel(g, opts)
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&inputFormat, "input-format", "json", "manifest format when reading stdin: json, yaml, toml")
	flags.registerLayout(cmd)

	return cmd
}

// =============================================================================
// PreviewModel - Interactive layout preview
// =============================================================================

const (
	previewWidthStep   = 50
	previewMinWidth    = 100
	previewSpacingStep = 2
)

// previewModel is the bubbletea model for the preview command.
type previewModel struct {
	gallery gallery.Gallery
	opts    pipeline.Options
	layout  gallery.Layout
	err     error

	// Terminal size.
	cols, rows int
}

func newPreviewModel(g gallery.Gallery, opts pipeline.Options) previewModel {
	// Logging would draw over the alternate screen.
	opts.Logger = nil
	m := previewModel{gallery: g, opts: opts, cols: 80, rows: 24}
	m.relayout()
	return m
}

func (m *previewModel) relayout() {
	opts := m.opts
	if err := opts.ValidateForLayout(); err != nil {
		m.err = err
		return
	}
	m.opts = opts
	m.layout, m.err = pipeline.GenerateLayout(m.gallery, opts)
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=":
			m.opts.Width += previewWidthStep
		case "-", "_":
			m.opts.Width = math.Max(previewMinWidth, m.opts.Width-previewWidthStep)
		case "]":
			m.opts.Spacing += previewSpacingStep
		case "[":
			m.opts.Spacing = math.Max(0, m.opts.Spacing-previewSpacingStep)
		case "a":
			m.opts.Algorithm = nextAlgorithm(m.opts.Algorithm)
		case "c":
			if m.opts.Align == "center" {
				m.opts.Align = ""
			} else {
				m.opts.Align = "center"
			}
		default:
			return m, nil
		}
		m.relayout()
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
	}
	return m, nil
}

func nextAlgorithm(current string) string {
	for i, a := range gallery.Algorithms {
		if a == current {
			return gallery.Algorithms[(i+1)%len(gallery.Algorithms)]
		}
	}
	return gallery.Algorithms[0]
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Gallery Preview"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%s · %.0fpx · spacing %.0f", m.opts.Algorithm, m.opts.Width, m.opts.Spacing)))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(StyleWarning.Render(m.err.Error()))
	} else {
		canvas := rasterize(m.layout, max(m.cols-2, 10), max(m.rows-6, 3))
		b.WriteString(renderCanvas(canvas))
		b.WriteString("\n")
		b.WriteString(StyleDim.Render(fmt.Sprintf("%d elements · %d groups · %.0f×%.0f",
			len(m.layout.Items), m.layout.Groups, m.layout.Width, m.layout.Height)))
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("+/- width  [/] spacing  a algorithm  c center  q quit"))
	return b.String()
}

// =============================================================================
// Rasterization
// =============================================================================

// rasterize maps a layout onto a grid of terminal cells. Each cell holds the
// index of the item covering it, or -1. Terminal cells are about twice as
// tall as they are wide, so the vertical scale is halved. Rows beyond
// maxRows are cropped.
func rasterize(l gallery.Layout, cols, maxRows int) [][]int {
	if l.Width <= 0 || cols <= 0 {
		return nil
	}
	sx := float64(cols) / l.Width
	sy := sx / 2
	rows := min(int(math.Ceil(l.Height*sy)), maxRows)

	grid := make([][]int, rows)
	for y := range grid {
		grid[y] = make([]int, cols)
		for x := range grid[y] {
			grid[y][x] = -1
		}
	}

	for i, it := range l.Items {
		x0, x1 := cellSpan(it.X, it.Width, sx, cols)
		y0, y1 := cellSpan(it.Y, it.Height, sy, rows)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				grid[y][x] = i
			}
		}
	}
	return grid
}

// cellSpan converts an interval to a half-open cell range of at least one
// cell, clamped to limit.
func cellSpan(pos, size, scale float64, limit int) (int, int) {
	start := int(math.Round(pos * scale))
	end := int(math.Round((pos + size) * scale))
	if end <= start {
		end = start + 1
	}
	return min(max(start, 0), limit), min(end, limit)
}

// renderCanvas draws each item as a colored block marked with a letter.
func renderCanvas(grid [][]int) string {
	var b strings.Builder
	for _, row := range grid {
		for x := 0; x < len(row); {
			owner := row[x]
			end := x
			for end < len(row) && row[end] == owner {
				end++
			}
			b.WriteString(cellRun(owner, end-x))
			x = end
		}
		b.WriteString("\n")
	}
	return b.String()
}

func cellRun(owner, n int) string {
	if owner < 0 {
		return strings.Repeat(" ", n)
	}
	style := lipgloss.NewStyle().Foreground(itemColors[owner%len(itemColors)])
	return style.Render(strings.Repeat(string(rune('A'+owner%26)), n))
}
