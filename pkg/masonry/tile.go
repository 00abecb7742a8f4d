package masonry

import (
	"math"
	"strings"
)

// Kind classifies a tile. Only ads are treated specially by the calculator.
type Kind string

const (
	KindImage Kind = "image"
	KindClip  Kind = "clip"
	KindAd    Kind = "ad"
)

// ParseKind maps a kind name to a Kind. Unknown names become KindImage.
func ParseKind(s string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindClip:
		return KindClip
	case KindAd:
		return KindAd
	default:
		return KindImage
	}
}

// Content is an opaque payload carried through layout untouched
// (url, slug, title, preview data).
type Content map[string]string

// Tile is one item to be placed.
type Tile struct {
	ID              string  `json:"id" bson:"id"`
	Kind            Kind    `json:"kind" bson:"kind"`
	IntrinsicWidth  float64 `json:"width" bson:"width"`
	IntrinsicHeight float64 `json:"height" bson:"height"`
	Content         Content `json:"content,omitempty" bson:"content,omitempty"`
}

// IsAd reports whether the tile is an ad.
func (t Tile) IsAd() bool { return t.Kind == KindAd }

// Valid reports whether both intrinsic dimensions are finite and positive.
func (t Tile) Valid() bool {
	return positive(t.IntrinsicWidth) && positive(t.IntrinsicHeight)
}

// Aspect returns width/height, or 0 for an invalid tile.
func (t Tile) Aspect() float64 {
	if !t.Valid() {
		return 0
	}
	return t.IntrinsicWidth / t.IntrinsicHeight
}

// Invalid returns the tiles a layout pass would skip, in input order.
func Invalid(tiles []Tile) []Tile {
	var out []Tile
	for _, t := range tiles {
		if !t.Valid() {
			out = append(out, t)
		}
	}
	return out
}

func validTiles(tiles []Tile) []Tile {
	out := make([]Tile, 0, len(tiles))
	for _, t := range tiles {
		if t.Valid() {
			out = append(out, t)
		}
	}
	return out
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// PlacedTile is a tile annotated with its final rect.
type PlacedTile struct {
	Tile
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"w" bson:"w"`
	Height float64 `json:"h" bson:"h"`
}

// Right returns the right edge of the tile.
func (p PlacedTile) Right() float64 { return p.X + p.Width }

// Bottom returns the bottom edge of the tile.
func (p PlacedTile) Bottom() float64 { return p.Y + p.Height }

// Row is one horizontal band of tiles sharing a height.
type Row struct {
	Tiles  []PlacedTile `json:"tiles" bson:"tiles"`
	Height float64      `json:"height" bson:"height"`
}

// Width returns the summed tile widths plus the gaps between them.
func (r Row) Width(gap float64) float64 {
	if len(r.Tiles) == 0 {
		return 0
	}
	w := gap * float64(len(r.Tiles)-1)
	for _, t := range r.Tiles {
		w += t.Width
	}
	return w
}

// Len returns the number of tiles in the row.
func (r Row) Len() int { return len(r.Tiles) }
