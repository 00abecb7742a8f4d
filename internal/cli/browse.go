package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/feed"
	"github.com/matzehuels/masonry/pkg/grid"
	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/pipeline"
	"github.com/matzehuels/masonry/pkg/render/sink"
)

// browseCommand pages through a tiles file the way an infinite-scroll grid
// would, laying out again whenever a page arrives.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		pageSize int
		prefetch int
		latency  time.Duration
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "browse [tiles.json]",
		Short: "Scroll through a tiles file with incremental loading",
		Long: `Scroll through a tiles file with incremental loading.

The file is split into pages of --page-size tiles. Only the first page is
shown at start; the next page is fetched when the last row scrolls into view
(or when --prefetch tiles remain below it) and the grid is laid out again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), args[0], opts, pageSize, prefetch, latency)
		},
	}

	cmd.Flags().IntVar(&pageSize, "page-size", defaultPageSize, "tiles per page")
	cmd.Flags().IntVar(&prefetch, "prefetch", 0, "load the next page when this many tiles remain below the view")
	cmd.Flags().DurationVar(&latency, "latency", 0, "simulated page fetch latency")
	cmd.Flags().StringVarP(&opts.Profile, "profile", "p", pipeline.DefaultProfile, "layout profile (see 'masonry profiles')")
	cmd.Flags().Float64VarP(&opts.ContainerWidth, "width", "w", 0, "container width (default: profile width or 390)")

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, input string, opts pipeline.Options, pageSize, prefetch int, latency time.Duration) error {
	data, err := readInput(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	tiles, err := grid.ParseTiles(data)
	if err != nil {
		return fmt.Errorf("load tiles %s: %w", input, err)
	}

	opts.Logger = c.Logger
	opts.ConfigFile = c.configFile
	cfg, err := opts.Config()
	if err != nil {
		return err
	}
	calc, err := masonry.New(cfg)
	if err != nil {
		return err
	}

	f := feed.New(calc, feed.WithPrefetchItems(prefetch), feed.WithLogger(c.Logger))
	m := newBrowseModel(f, cfg, paginate(tiles, pageSize), latency)

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// paginate splits tiles into pages of size n.
func paginate(tiles []masonry.Tile, n int) [][]masonry.Tile {
	if n <= 0 {
		n = defaultPageSize
	}
	var pages [][]masonry.Tile
	for start := 0; start < len(tiles); start += n {
		pages = append(pages, tiles[start:min(start+n, len(tiles))])
	}
	return pages
}

// =============================================================================
// browseModel - bubbletea model
// =============================================================================

// pageLoadedMsg delivers a fetched page.
type pageLoadedMsg struct {
	page    int
	tiles   []masonry.Tile
	hasNext bool
}

// pageFailedMsg reports a page that does not exist.
type pageFailedMsg struct{ page int }

type browseModel struct {
	feed    *feed.Feed
	cfg     masonry.Config
	pages   [][]masonry.Tile
	latency time.Duration

	snap   feed.Snapshot
	offset int // first visible row
	height int // visible rows
	cols   int
	status string
}

func newBrowseModel(f *feed.Feed, cfg masonry.Config, pages [][]masonry.Tile, latency time.Duration) browseModel {
	return browseModel{
		feed:    f,
		cfg:     cfg,
		pages:   pages,
		latency: latency,
		snap:    f.Snapshot(),
		height:  20,
		cols:    sink.DefaultTextWidth,
	}
}

func (m browseModel) Init() tea.Cmd {
	return m.maybeLoad()
}

// fetch returns a command that delivers page after the configured latency.
func (m browseModel) fetch(page int) tea.Cmd {
	pages, latency := m.pages, m.latency
	return func() tea.Msg {
		if latency > 0 {
			time.Sleep(latency)
		}
		if page < 1 || page > len(pages) {
			return pageFailedMsg{page: page}
		}
		return pageLoadedMsg{page: page, tiles: pages[page-1], hasNext: page < len(pages)}
	}
}

// lastVisibleRow is the index of the bottom row on screen.
func (m browseModel) lastVisibleRow() int {
	return m.offset + m.height - 1
}

// maybeLoad requests the next page if the view is near the end.
func (m browseModel) maybeLoad() tea.Cmd {
	if !m.feed.ShouldLoadMore(m.lastVisibleRow()) {
		return nil
	}
	page, ok := m.feed.NextPage()
	if !ok {
		return nil
	}
	return m.fetch(page)
}

func (m browseModel) maxOffset() int {
	return max(0, len(m.snap.Rows)-m.height)
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.offset = max(0, m.offset-1)
		case "down", "j":
			m.offset = min(m.maxOffset(), m.offset+1)
		case "pgdown", " ":
			m.offset = min(m.maxOffset(), m.offset+m.height)
		case "pgup":
			m.offset = max(0, m.offset-m.height)
		case "home", "g":
			m.offset = 0
		case "end", "G":
			m.offset = m.maxOffset()
		}
		return m, m.maybeLoad()
	case tea.WindowSizeMsg:
		m.height = max(1, msg.Height-4)
		m.cols = max(10, msg.Width)
		m.offset = min(m.offset, m.maxOffset())
		return m, m.maybeLoad()
	case pageLoadedMsg:
		m.snap = m.feed.AppendTiles(msg.tiles, msg.hasNext)
		m.status = fmt.Sprintf("loaded page %d", msg.page)
		return m, m.maybeLoad()
	case pageFailedMsg:
		m.feed.CancelLoad()
		m.status = fmt.Sprintf("page %d unavailable", msg.page)
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Masonry"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render("↑/↓ scroll  space page  g/G top/bottom  q quit"))
	b.WriteString("\n\n")

	end := min(len(m.snap.Rows), m.offset+m.height)
	if m.offset < end {
		visible := grid.FromRows(m.snap.Rows[m.offset:end], m.cfg, nil)
		b.WriteString(sink.RenderText(visible, m.cols))
	}
	b.WriteString("\n\n")

	more := "end"
	if m.snap.HasNext {
		more = "more"
	}
	footer := fmt.Sprintf("rows %d-%d of %d · %d tiles · page %d · %s",
		min(m.offset+1, end), end, len(m.snap.Rows), m.snap.Tiles, m.snap.Page, more)
	if m.status != "" {
		footer += " · " + m.status
	}
	b.WriteString(StyleDim.Render(footer))

	return b.String()
}
