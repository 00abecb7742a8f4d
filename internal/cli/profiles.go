package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/config"
	"github.com/matzehuels/masonry/pkg/pipeline"
)

// profilesCommand lists the resolved layout profiles.
func (c *CLI) profilesCommand() *cobra.Command {
	var width float64

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List layout profiles",
		Long: `List the layout profiles from the config file (or the built-ins) with
their settings resolved against the default profile.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := c.loadProfiles()
			if err != nil {
				return err
			}
			t, err := profilesTable(*profiles, width)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, t)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&width, "width", "w", 0, "resolve against this container width")

	return cmd
}

// profilesTable renders one row per profile.
func profilesTable(f config.File, width float64) (string, error) {
	rows := make([][]string, 0, len(f.Profiles))
	for _, name := range f.Names() {
		cfg, err := f.Resolve(name, width)
		if err != nil && width <= 0 {
			cfg, err = f.Resolve(name, pipeline.DefaultContainerWidth)
		}
		if err != nil {
			return "", err
		}
		rows = append(rows, []string{
			name,
			strconv.FormatFloat(cfg.ContainerWidth, 'f', -1, 64),
			strconv.Itoa(cfg.MaxItemsPerRow),
			fmt.Sprintf("%d-%d", cfg.MinRowHeight, cfg.MaxRowHeight),
			strconv.FormatFloat(cfg.Gap, 'f', -1, 64),
			f.Profiles[name].Description,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Profile", "Width", "Per row", "Row height", "Gap", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1: // header
				return styleHeader
			case col == 0:
				return StyleTitle
			case col == 5:
				return StyleDim
			}
			return StyleValue
		})
	return t.Render(), nil
}
