package masonry

// shrinkAd keeps non-ad tiles at or above MinItemWidth by taking width from
// the ad at index ad. widths and heights are updated in place; the returned
// value is the row height.
//
// The ad gives up at most AdMaxResizePercent of its width. Overflow left once
// the ad hits that floor is taken back from the clamped tiles, which may then
// drop below MinItemWidth.
func (c *Calculator) shrinkAd(tiles []Tile, ad int, widths, heights []float64) float64 {
	rowHeight := heights[ad]

	var clamped []int
	for i, t := range tiles {
		if !t.IsAd() && widths[i] < c.cfg.MinItemWidth {
			widths[i] = c.cfg.MinItemWidth
			clamped = append(clamped, i)
		}
	}

	total := c.cfg.Gap * float64(len(widths)-1)
	for _, w := range widths {
		total += w
	}
	overflow := total - c.cfg.ContainerWidth
	if overflow <= 0 {
		return rowHeight
	}

	adWidth := widths[ad]
	floor := adWidth * (100 - c.cfg.AdMaxResizePercent) / 100
	resized := adWidth - overflow
	if resized < floor {
		rest := floor - resized
		resized = floor
		if len(clamped) > 0 {
			share := rest / float64(len(clamped))
			for _, i := range clamped {
				widths[i] -= share
			}
		}
	}

	scale := resized / adWidth
	widths[ad] = resized
	rowHeight = heights[ad] * scale
	heights[ad] = rowHeight
	for i, t := range tiles {
		if !t.IsAd() {
			heights[i] = rowHeight
		}
	}
	return rowHeight
}
