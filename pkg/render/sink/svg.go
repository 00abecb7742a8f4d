package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/masonry/pkg/grid"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels     bool
	background string
	palette    Palette
}

// WithLabels draws each tile's ID at its centre.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithBackground fills the canvas with colour before drawing tiles.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithPalette overrides the fill colour per kind.
func WithPalette(p Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// RenderSVG draws the layout as an SVG document sized to the container width
// and canvas height.
func RenderSVG(l grid.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{palette: DefaultPalette}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := l.Width, l.Height
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", html.EscapeString(r.background))
	}

	for _, b := range l.Blocks() {
		id := html.EscapeString(b.ID)
		fmt.Fprintf(&buf, `  <rect id="tile-%s" class="tile %s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s">`,
			id, b.Kind, b.X, b.Y, b.Width, b.Height, r.palette.fill(b.Kind))
		fmt.Fprintf(&buf, "<title>%s (%s, %.0fx%.0f)</title></rect>\n", id, b.Kind, b.IntrinsicWidth, b.IntrinsicHeight)
		if r.labels {
			fmt.Fprintf(&buf, `  <text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
				b.X+b.Width/2, b.Y+b.Height/2, labelSize(b), id)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func labelSize(b grid.Block) float64 {
	return min(14, max(6, b.Height/6))
}
