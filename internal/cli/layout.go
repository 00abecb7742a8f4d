package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/grid"
	"github.com/matzehuels/masonry/pkg/pipeline"
)

// layoutCommand creates the layout command for computing layouts from tiles.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		save    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [tiles.json]",
		Short: "Compute a layout from a tiles document or search page",
		Long: `Compute a layout from a tiles document or search page.

The input is a JSON array of tiles, a {"tiles": [...]} document or a search
result page (bare or wrapped in {"result": true, "data": {...}}). Use "-" to
read stdin. The output is a layout.json that 'render' and 'preview' accept.

Results are cached locally for faster subsequent runs. With --save and
--store the layout is also persisted and its ID printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache, save)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, stdout for -)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&save, "save", false, "persist the layout in --store")
	layoutFlags(cmd, &opts)

	return cmd
}

// runLayout loads the tiles, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache, save bool) error {
	data, err := readInput(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	tiles, err := grid.ParseTiles(data)
	if err != nil {
		return fmt.Errorf("load tiles %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.ConfigFile = c.configFile

	spinner := newSpinner(ctx, fmt.Sprintf("Laying out %d tiles...", len(tiles)))
	spinner.Start()

	res, err := runner.Layout(ctx, tiles, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	l := res.Layout
	if save {
		if l, err = runner.Save(ctx, l); err != nil {
			return fmt.Errorf("save layout: %w", err)
		}
	}

	outputPath := output
	if outputPath == "" {
		outputPath = stdio
		if input != stdio {
			outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
		}
	}

	b, err := grid.MarshalLayout(l)
	if err != nil {
		return err
	}
	if err := writeOutput(outputPath, append(b, '\n')); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	if outputPath == stdio {
		return nil
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	if l.ID != "" {
		printDetail("Saved as %s", l.ID)
	}
	printStats(res.Stats.Tiles, res.Stats.Rows, res.Stats.Skipped, res.CacheHit)
	if len(res.Skipped) > 0 {
		printWarning("Skipped tiles without usable dimensions: %s", strings.Join(res.Skipped, ", "))
	}
	printNextStep("Render", appName+" render "+outputPath)

	return nil
}
