package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridfit/pkg/gallery"
	"github.com/matzehuels/gridfit/pkg/io"
	"github.com/matzehuels/gridfit/pkg/pipeline"
)

// layoutCommand creates the layout command for computing gallery layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output      string
		noCache     bool
		refresh     bool
		inputFormat string
		flags       optionFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [manifest]",
		Short: "Compute a gallery layout from an element manifest",
		Long: `Compute a gallery layout from an element manifest.

The manifest lists elements with their original width and height, as JSON,
YAML or TOML (chosen by file extension, or --input-format when reading
stdin with "-"). The output is a layout.json file with one positioned item
per element, in input order. Render it with 'visualize'.

Results are cached for faster subsequent runs.`,
		Example: `  gridfit layout photos.yaml -w 1200 -s 8
  gridfit layout photos.json -a columns --columns 4 -o grid.json
  cat photos.json | gridfit layout - -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), args[0], inputFormat, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", `output file (default: <input>.layout.json, "-" for stdout)`)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().StringVar(&inputFormat, "input-format", "json", "manifest format when reading stdin: json, yaml, toml")
	flags.registerLayout(cmd)

	return cmd
}

// runLayout loads the manifest, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, inputFormat string, opts pipeline.Options, output string, noCache bool) error {
	g, err := readManifest(input, inputFormat)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	l, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done("layout computed", "elements", len(l.Items), "cached", cacheHit)

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output == "-" {
		data, err := gallery.MarshalLayout(l)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, string(data))
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = derivePath(input, ".layout.json")
	}
	if err := gallery.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(statsFor(l, cacheHit))
	printNewline()
	printNextStep("Render", "gridfit visualize "+outputPath)

	return nil
}

// readManifest reads a gallery from path, or from stdin when path is "-".
func readManifest(path, format string) (gallery.Gallery, error) {
	if path != "-" {
		g, err := io.ImportGallery(path)
		if err != nil {
			return gallery.Gallery{}, fmt.Errorf("load manifest: %w", err)
		}
		return g, nil
	}
	f, err := io.ParseFormat(format)
	if err != nil {
		return gallery.Gallery{}, err
	}
	g, err := io.ReadGallery(os.Stdin, f)
	if err != nil {
		return gallery.Gallery{}, fmt.Errorf("load manifest from stdin: %w", err)
	}
	return g, nil
}

// derivePath replaces the extension of input with suffix. Stdin input is
// named after the gallery.
func derivePath(input, suffix string) string {
	if input == "-" {
		return "gallery" + suffix
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}

func statsFor(l gallery.Layout, cached bool) layoutStats {
	return layoutStats{
		Algorithm: l.Algorithm,
		Elements:  len(l.Items),
		Groups:    l.Groups,
		Width:     l.Width,
		Height:    l.Height,
		Cached:    cached,
	}
}
