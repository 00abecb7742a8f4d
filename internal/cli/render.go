package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/grid"
	"github.com/matzehuels/masonry/pkg/pipeline"
)

// renderCommand creates the render command for layout artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [layout.json|tiles.json]",
		Short: "Render a layout to svg, png, json or txt",
		Long: `Render a layout to one or more formats.

The input is a layout.json written by 'layout'. Tiles documents and search
pages are laid out first using --profile and --width.

With a single format, -o names the output file. With several, -o is a base
path and each format gets its extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json, txt (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "draw tile IDs")
	cmd.Flags().StringVar(&opts.Background, "background", "", "svg background color")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "png pixel density (default 1)")
	cmd.Flags().IntVar(&opts.TextWidth, "text-width", 0, "txt preview columns (default 80)")
	layoutFlags(cmd, &opts)

	return cmd
}

// basePath derives the base output path from the output and input file paths.
// A known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == stdio {
			return "layout"
		}
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".layout")
	}
	ext := filepath.Ext(output)
	if slices.Contains(grid.Formats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to the file it is written to.
func outputPaths(formats []string, output, input string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := c.loadLayout(ctx, runner, input, opts)
	if err != nil {
		return err
	}

	opts.Logger = c.Logger
	opts.ConfigFile = c.configFile
	artifacts, err := runner.Render(ctx, res.Layout, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	paths := outputPaths(opts.Formats, output, input)
	for _, f := range opts.Formats {
		path := paths[f]
		if err := writeOutput(path, artifacts[f]); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		logger.Debug("wrote artifact", "format", f, "bytes", len(artifacts[f]), "path", path)
	}
	prog.done(fmt.Sprintf("Rendered %d tiles", res.Layout.Count()))

	printSuccess("Render complete")
	for _, f := range opts.Formats {
		printFile(paths[f])
	}
	printStats(res.Stats.Tiles, res.Stats.Rows, res.Stats.Skipped, res.CacheHit)
	return nil
}
