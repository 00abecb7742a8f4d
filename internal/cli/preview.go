package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/pipeline"
	"github.com/matzehuels/masonry/pkg/render/sink"
)

// previewCommand prints a layout to the terminal.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		cols    int
		noCache bool
		summary bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "preview [layout.json|tiles.json]",
		Short: "Print a layout to the terminal",
		Long: `Print a layout to the terminal, one line per row, with each tile drawn
as a colored block proportional to its width.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], opts, cols, summary, noCache)
		},
	}

	cmd.Flags().IntVar(&cols, "cols", sink.DefaultTextWidth, "terminal columns per row")
	cmd.Flags().BoolVar(&summary, "summary", false, "print row sizes instead of blocks")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	layoutFlags(cmd, &opts)

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input string, opts pipeline.Options, cols int, summary, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := c.loadLayout(ctx, runner, input, opts)
	if err != nil {
		return err
	}

	if summary {
		fmt.Fprint(out, sink.TextSummary(res.Layout))
		return nil
	}
	fmt.Fprintln(out, sink.RenderText(res.Layout, cols))
	printStats(res.Stats.Tiles, res.Stats.Rows, res.Stats.Skipped, res.CacheHit)
	return nil
}
