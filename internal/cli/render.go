package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridfit/pkg/pipeline"
)

// renderCommand creates the render command: manifest → layout → output in
// one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output      string
		noCache     bool
		refresh     bool
		inputFormat string
		flags       optionFlags
	)

	cmd := &cobra.Command{
		Use:   "render [manifest]",
		Short: "Lay out and render a manifest in one step",
		Long: `Lay out and render a manifest in one step.

Equivalent to 'layout' followed by 'visualize', without writing the
intermediate layout.json. Both stages are cached.`,
		Example: `  gridfit render photos.yaml -f svg,png --labels
  gridfit render photos.json -a single --align center -w 900`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			opts.Refresh = refresh
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], inputFormat, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().StringVar(&inputFormat, "input-format", "json", "manifest format when reading stdin: json, yaml, toml")
	flags.registerLayout(cmd)
	flags.registerRender(cmd)

	return cmd
}

// runRender executes the full pipeline for a manifest.
func (c *CLI) runRender(ctx context.Context, input, inputFormat string, opts pipeline.Options, output string, noCache bool) error {
	g, err := readManifest(input, inputFormat)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, g, opts)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		stats:     statsFor(result.Layout, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit),
	})
}

// =============================================================================
// Artifact Output
// =============================================================================

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	stats     layoutStats
}

// artifactPaths decides where each format is written. A single format goes
// to output verbatim; several formats share output (or the input name) as
// a base path with the format as extension.
func artifactPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := output
	if base == "" {
		base = derivePath(input, "")
		base = strings.TrimSuffix(base, ".layout")
	} else {
		base = derivePath(base, "")
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func writeArtifacts(p artifactWriteParams) error {
	paths := artifactPaths(p.formats, p.input, p.output)

	formats := make([]string, 0, len(paths))
	for f := range paths {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	for _, f := range formats {
		data, ok := p.artifacts[f]
		if !ok {
			return fmt.Errorf("missing %s artifact", f)
		}
		if err := os.WriteFile(paths[f], data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[f], err)
		}
	}

	if len(formats) == 1 {
		printSuccess("Rendered %s", strings.ToUpper(formats[0]))
	} else {
		printSuccess("Rendered %d formats", len(formats))
	}
	for _, f := range formats {
		printFile(paths[f])
	}
	printStats(p.stats)
	return nil
}
