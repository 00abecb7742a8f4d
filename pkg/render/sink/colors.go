package sink

import "github.com/matzehuels/masonry/pkg/masonry"

// Palette maps tile kinds to fill colours.
type Palette map[masonry.Kind]string

// DefaultPalette is used unless WithPalette overrides it.
var DefaultPalette = Palette{
	masonry.KindImage: "#8ecae6",
	masonry.KindClip:  "#ffb703",
	masonry.KindAd:    "#e76f51",
}

const fallbackFill = "#cccccc"

func (p Palette) fill(k masonry.Kind) string {
	if c, ok := p[k]; ok {
		return c
	}
	if c, ok := DefaultPalette[k]; ok {
		return c
	}
	return fallbackFill
}
