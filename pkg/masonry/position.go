package masonry

// Position assigns X and Y to every tile. X restarts at 0 for each row and
// advances by tile width plus gap; Y advances by row height plus gap.
// The input rows are not modified.
func Position(rows []Row, gap float64) []Row {
	out := make([]Row, len(rows))
	y := 0.0
	for r, row := range rows {
		tiles := make([]PlacedTile, len(row.Tiles))
		x := 0.0
		for i, t := range row.Tiles {
			t.X, t.Y = x, y
			tiles[i] = t
			x += t.Width + gap
		}
		out[r] = Row{Tiles: tiles, Height: row.Height}
		y += row.Height + gap
	}
	return out
}

// CanvasHeight returns the total height of positioned rows.
func CanvasHeight(rows []Row, gap float64) float64 {
	if len(rows) == 0 {
		return 0
	}
	h := -gap
	for _, r := range rows {
		h += r.Height + gap
	}
	return h
}

// Count returns the number of tiles across rows.
func Count(rows []Row) int {
	n := 0
	for _, r := range rows {
		n += len(r.Tiles)
	}
	return n
}
