package sink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/masonry/pkg/grid"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale   float64
	labels  bool
	palette Palette
}

// WithScale sets the output resolution multiplier (default 1).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPNGLabels draws tile IDs inside their boxes.
func WithPNGLabels() PNGOption { return func(r *pngRenderer) { r.labels = true } }

// WithPNGPalette overrides the fill colour per kind.
func WithPNGPalette(p Palette) PNGOption { return func(r *pngRenderer) { r.palette = p } }

// pointsPerInch converts layout units (treated as points) to Graphviz inches.
const pointsPerInch = 72.0

// RenderPNG rasterises the layout with Graphviz. Every tile becomes a
// fixed-size box pinned at its computed position, so Graphviz only draws.
func RenderPNG(ctx context.Context, l grid.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1, palette: DefaultPalette}
	for _, opt := range opts {
		opt(&r)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(ToDOT(l, r.labels, r.palette, r.scale)))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// ToDOT converts a layout into a neato graph with pinned node positions.
// Graphviz places the origin bottom-left, so y is flipped.
func ToDOT(l grid.Layout, labels bool, palette Palette, scale float64) string {
	if palette == nil {
		palette = DefaultPalette
	}
	if scale <= 0 {
		scale = 1
	}

	var buf strings.Builder
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  graph [inputscale=%.0f, overlap=true, splines=false, bgcolor=white, pad=0, dpi=%.0f, bb=\"0,0,%.2f,%.2f\"];\n",
		pointsPerInch, pointsPerInch*scale, l.Width, l.Height)
	buf.WriteString("  node [shape=box, fixedsize=true, style=filled, color=white, penwidth=0, fontname=Helvetica, fontsize=10];\n")

	for _, b := range l.Blocks() {
		label := ""
		if labels {
			label = b.ID
		}
		cx := b.X + b.Width/2
		cy := l.Height - (b.Y + b.Height/2)
		fmt.Fprintf(&buf, "  %q [pos=\"%.2f,%.2f!\", width=%.4f, height=%.4f, fillcolor=%q, label=%q];\n",
			b.ID, cx, cy, b.Width/pointsPerInch, b.Height/pointsPerInch, palette.fill(b.Kind), label)
	}

	buf.WriteString("}\n")
	return buf.String()
}
