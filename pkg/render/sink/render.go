package sink

import (
	"context"
	"strings"

	errs "github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/grid"
)

// Options selects optional decorations shared by every format.
type Options struct {
	Labels     bool
	Background string
	Scale      float64
	TextWidth  int
}

// Render produces the layout in the named format.
func Render(ctx context.Context, l grid.Layout, format string, opts Options) ([]byte, error) {
	switch strings.ToLower(format) {
	case grid.FormatSVG:
		var svgOpts []SVGOption
		if opts.Labels {
			svgOpts = append(svgOpts, WithLabels())
		}
		if opts.Background != "" {
			svgOpts = append(svgOpts, WithBackground(opts.Background))
		}
		return RenderSVG(l, svgOpts...), nil
	case grid.FormatPNG:
		pngOpts := []PNGOption{WithScale(opts.Scale)}
		if opts.Labels {
			pngOpts = append(pngOpts, WithPNGLabels())
		}
		return RenderPNG(ctx, l, pngOpts...)
	case grid.FormatJSON:
		return RenderJSON(l)
	case grid.FormatText:
		return []byte(RenderText(l, opts.TextWidth) + "\n"), nil
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "unsupported format: %q", format)
	}
}
