package masonry

import "math"

// fit is one candidate row: the first count tiles of a window laid out at
// height, deviating change units from the container width.
type fit struct {
	height int
	count  int
	widths []float64
	change float64
}

func (f fit) empty() bool { return f.count == 0 }

// heightFit is the immutable outcome of trying one row height.
type heightFit struct {
	height int
	widths []float64 // trial width of every tile in the window
	single fit       // first tile alone
	multi  fit       // best prefix of two or more tiles; empty for one-tile windows
}

// trialWidths sizes every tile of the window to height h. Ads keep their
// declared width; other tiles are scaled to h and rounded to whole units.
func trialWidths(window []Tile, h int) []float64 {
	widths := make([]float64, len(window))
	for i, t := range window {
		if t.IsAd() {
			widths[i] = t.IntrinsicWidth
			continue
		}
		widths[i] = math.Round(t.IntrinsicWidth * float64(h) / t.IntrinsicHeight)
	}
	return widths
}

// tryHeight evaluates every prefix of the window at height h.
func tryHeight(window []Tile, h int, containerWidth, gap float64) heightFit {
	widths := trialWidths(window, h)
	hf := heightFit{height: h, widths: widths}

	total := 0.0
	for k := 1; k <= len(widths); k++ {
		total += widths[k-1]
		if k > 1 {
			total += gap
		}
		cand := fit{height: h, count: k, widths: widths[:k], change: containerWidth - total}
		if k == 1 {
			hf.single = cand
			continue
		}
		if hf.multi.empty() || math.Abs(cand.change) < math.Abs(hf.multi.change) {
			hf.multi = cand
		}
	}
	return hf
}

// searchHeights folds tryHeight over [lo, hi], one record per height.
func searchHeights(window []Tile, lo, hi int, containerWidth, gap float64) []heightFit {
	fits := make([]heightFit, 0, hi-lo+1)
	for h := lo; h <= hi; h++ {
		fits = append(fits, tryHeight(window, h, containerWidth, gap))
	}
	return fits
}

// selectFit picks the minimum-deviation candidate. Multi-tile candidates
// always win over single-tile ones unless singleOnly is set. Ties keep the
// earliest height.
func selectFit(fits []heightFit, singleOnly bool) fit {
	var best fit
	for _, hf := range fits {
		cand := hf.multi
		if singleOnly || cand.empty() {
			cand = hf.single
		}
		if best.empty() || better(cand, best) {
			best = cand
		}
	}
	return best
}

func better(a, b fit) bool {
	if (a.count > 1) != (b.count > 1) {
		return a.count > 1
	}
	return math.Abs(a.change) < math.Abs(b.change)
}

// overflowsAlone reports whether even the smallest pair of the window is
// wider than the container, so that no multi-tile row can fit.
func overflowsAlone(first heightFit, containerWidth, gap float64) bool {
	if len(first.widths) < 2 {
		return true
	}
	return first.widths[0]+gap+first.widths[1] > containerWidth
}
