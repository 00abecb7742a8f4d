package masonry

import "math"

// Calculator lays out tiles for one immutable [Config].
type Calculator struct {
	cfg Config
}

// New validates cfg and returns a Calculator.
func New(cfg Config) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{cfg: cfg}, nil
}

// Config returns the calculator's configuration.
func (c *Calculator) Config() Config { return c.cfg }

// CreateRows is a convenience wrapper around New and Calculator.CreateRows.
func CreateRows(tiles []Tile, cfg Config) ([]Row, error) {
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return c.CreateRows(tiles), nil
}

// CreateRows packs tiles into positioned rows. Invalid tiles are skipped;
// the remaining tiles appear exactly once, in input order.
func (c *Calculator) CreateRows(tiles []Tile) []Row {
	valid := validTiles(tiles)
	var rows []Row
	for cursor := 0; cursor < len(valid); {
		end := min(cursor+c.cfg.MaxItemsPerRow, len(valid))
		window := valid[cursor:end]
		if i := firstAd(window); i > 1 {
			window = window[:2]
		}
		row := c.formRow(window)
		rows = append(rows, row)
		cursor += len(row.Tiles)
	}
	return Position(rows, c.cfg.Gap)
}

// formRow chooses a prefix of window and sizes it.
func (c *Calculator) formRow(window []Tile) Row {
	lo, hi := c.cfg.MinRowHeight, c.cfg.MaxRowHeight
	adIdx := firstAd(window)
	if adIdx >= 0 {
		lo = max(1, int(math.Floor(window[adIdx].IntrinsicHeight)))
		hi = lo
	}

	fits := searchHeights(window, lo, hi, c.cfg.ContainerWidth, c.cfg.Gap)
	singleOnly := len(window) == 1 ||
		(adIdx < 0 && overflowsAlone(fits[0], c.cfg.ContainerWidth, c.cfg.Gap))
	best := selectFit(fits, singleOnly)

	chosen := window[:best.count]
	widths := reconcile(chosen, best.widths, best.change)
	heights := make([]float64, len(chosen))
	for i := range heights {
		heights[i] = float64(best.height)
	}
	rowHeight := float64(best.height)

	if ad := firstAd(chosen); ad >= 0 && nonAdCount(chosen) > 0 {
		rowHeight = c.shrinkAd(chosen, ad, widths, heights)
	}

	row := Row{Tiles: make([]PlacedTile, len(chosen)), Height: rowHeight}
	for i, t := range chosen {
		row.Tiles[i] = PlacedTile{Tile: t, Width: widths[i], Height: heights[i]}
	}
	return row
}

// reconcile spreads change evenly over the non-ad tiles. It returns a copy.
func reconcile(tiles []Tile, trial []float64, change float64) []float64 {
	widths := append([]float64(nil), trial...)
	n := nonAdCount(tiles)
	if n == 0 {
		return widths
	}
	share := change / float64(n)
	for i, t := range tiles {
		if !t.IsAd() {
			widths[i] += share
		}
	}
	return widths
}

func firstAd(tiles []Tile) int {
	for i, t := range tiles {
		if t.IsAd() {
			return i
		}
	}
	return -1
}

func nonAdCount(tiles []Tile) int {
	n := 0
	for _, t := range tiles {
		if !t.IsAd() {
			n++
		}
	}
	return n
}
