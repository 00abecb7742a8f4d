package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/render/sink"
	"github.com/matzehuels/masonry/pkg/store"
)

// layoutsCommand manages layouts saved in --store.
func (c *CLI) layoutsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "List, show and delete saved layouts",
	}

	cmd.AddCommand(c.layoutsListCommand())
	cmd.AddCommand(c.layoutsShowCommand())
	cmd.AddCommand(c.layoutsDeleteCommand())

	return cmd
}

// openStore opens --store, which these commands require.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	if c.storeDSN == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "--store is required")
	}
	return store.Open(ctx, c.storeDSN)
}

func (c *CLI) layoutsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved layouts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			list, err := st.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				printInfo("No saved layouts")
				return nil
			}
			fmt.Fprintln(out, summariesTable(list))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", store.DefaultListLimit, "maximum layouts to list")

	return cmd
}

func summariesTable(list []store.Summary) string {
	rows := make([][]string, len(list))
	for i, s := range list {
		rows[i] = []string{
			s.ID,
			s.Profile,
			strconv.Itoa(s.Tiles),
			strconv.Itoa(s.Rows),
			fmt.Sprintf("%.0fx%.0f", s.Width, s.Height),
			s.CreatedAt.Local().Format("Jan 2 15:04"),
		}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("ID", "Profile", "Tiles", "Rows", "Size", "Created").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 0 {
				return StyleValue
			}
			return StyleDim
		}).
		Render()
}

func (c *CLI) layoutsShowCommand() *cobra.Command {
	var cols int

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a saved layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			l, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printKeyValue("ID", l.ID)
			printKeyValue("Profile", l.Profile)
			printKeyValue("Created", l.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			printKeyValue("Size", fmt.Sprintf("%.0fx%.0f", l.Width, l.Height))
			fmt.Fprintln(out)
			fmt.Fprintln(out, sink.RenderText(l, cols))
			return nil
		},
	}

	cmd.Flags().IntVar(&cols, "cols", sink.DefaultTextWidth, "terminal columns per row")

	return cmd
}

func (c *CLI) layoutsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id...]",
		Short: "Delete saved layouts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			for _, id := range args {
				if err := st.Delete(cmd.Context(), id); err != nil {
					return err
				}
				printSuccess("Deleted %s", id)
			}
			return nil
		},
	}
}
