// Package cli implements the gridfit command-line interface.
//
// # Commands
//
//   - layout: compute a layout.json from an element manifest
//   - visualize: render a layout.json to SVG, PNG or JSON
//   - render: manifest straight to rendered output
//   - partition: run the linear partitioner on a list of weights
//   - preview: interactive terminal preview of a gallery
//   - serve: run the HTTP API
//   - cache: inspect or clear the layout cache
//
// Settings come from the config file (see package config), then .env and
// GRIDFIT_* environment variables, then command-line flags.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridfit/pkg/buildinfo"
	"github.com/matzehuels/gridfit/pkg/cache"
	"github.com/matzehuels/gridfit/pkg/config"
	"github.com/matzehuels/gridfit/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "gridfit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// stdout receives command output. Logs go to the CLI logger instead.
var stdout io.Writer = os.Stdout

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Gridfit computes justified gallery layouts",
		Long: `Gridfit arranges rectangles with fixed aspect ratios, such as photos, into
visually balanced rows that exactly fill a container width.

Rows are chosen by an optimal linear partition of the aspect ratios, so no
row is much wider than the others. A fixed-column packer and a single-row
layout are also available.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/gridfit/config.toml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.partitionCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config and Runner Factory
// =============================================================================

// loadConfig loads the configuration once per process.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	c.Logger.Debug("loaded config", "path", c.configPath, "cache", cfg.Cache.Backend)
	c.cfg = &cfg
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	cc := cfg.CacheOptions()
	if noCache {
		cc.Backend = cache.BackendNone
	}
	store, err := cache.Open(ctx, cc)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "backend", cc.Backend, "err", err)
		store = cache.NewNullCache()
	}
	return pipeline.NewRunner(store, cfg.Keyer(), c.Logger), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// optionFlags holds flag values for pipeline options. Only flags the user
// actually set override the configured defaults.
type optionFlags struct {
	opts    pipeline.Options
	formats string
}

func (f *optionFlags) registerLayout(cmd *cobra.Command) {
	d := config.Default().Layout
	fs := cmd.Flags()
	fs.StringVarP(&f.opts.Algorithm, "algorithm", "a", d.Algorithm, "layout algorithm: partition, columns, single")
	fs.Float64VarP(&f.opts.Width, "width", "w", d.Width, "container width")
	fs.Float64Var(&f.opts.MaxHeight, "max-height", 0, "maximum container height (0 = unbounded)")
	fs.Float64Var(&f.opts.IdealHeight, "ideal-height", 0, "target row height (default: width/3)")
	fs.Float64VarP(&f.opts.Spacing, "spacing", "s", d.Spacing, "gap between elements")
	fs.StringVar(&f.opts.Align, "align", "", "single-row alignment: center")
	fs.IntVar(&f.opts.Columns, "columns", d.Columns, "column count (columns algorithm)")
	fs.Float64Var(&f.opts.Margin, "margin", 0, "outer margin")
}

func (f *optionFlags) registerRender(cmd *cobra.Command) {
	d := config.Default().Render
	fs := cmd.Flags()
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	fs.StringVar(&f.opts.Style, "style", d.Style, "visual style: simple, outline")
	fs.StringVar(&f.opts.Background, "background", d.Background, "background color (name, #rrggbb or none)")
	fs.BoolVar(&f.opts.Labels, "labels", false, "draw element labels")
	fs.Float64Var(&f.opts.Scale, "scale", d.Scale, "PNG pixel density")
}

// resolve returns base with every changed flag applied.
func (f *optionFlags) resolve(cmd *cobra.Command, base pipeline.Options) pipeline.Options {
	fs := cmd.Flags()
	set := func(name string, apply func()) {
		if fs.Lookup(name) != nil && fs.Changed(name) {
			apply()
		}
	}
	set("algorithm", func() { base.Algorithm = f.opts.Algorithm })
	set("width", func() { base.Width = f.opts.Width })
	set("max-height", func() { base.MaxHeight = f.opts.MaxHeight })
	set("ideal-height", func() { base.IdealHeight = f.opts.IdealHeight })
	set("spacing", func() { base.Spacing = f.opts.Spacing })
	set("align", func() { base.Align = f.opts.Align })
	set("columns", func() { base.Columns = f.opts.Columns })
	set("margin", func() { base.Margin = f.opts.Margin })
	set("format", func() { base.Formats = parseFormats(f.formats) })
	set("style", func() { base.Style = f.opts.Style })
	set("background", func() { base.Background = f.opts.Background })
	set("labels", func() { base.Labels = f.opts.Labels })
	set("scale", func() { base.Scale = f.opts.Scale })
	return base
}

// options resolves flags on top of the configured defaults.
func (c *CLI) options(cmd *cobra.Command, f *optionFlags) (pipeline.Options, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := f.resolve(cmd, cfg.PipelineOptions())
	opts.Logger = c.Logger
	return opts, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
