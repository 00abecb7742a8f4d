package media

import "github.com/matzehuels/masonry/pkg/masonry"

// Source is anything that can be placed on a masonry grid.
type Source interface {
	TileID() string
	TileKind() masonry.Kind
	Dimensions() (width, height float64)
	TileContent() masonry.Content
}

// ToTile flattens a Source.
func ToTile(s Source) masonry.Tile {
	w, h := s.Dimensions()
	return masonry.Tile{
		ID:              s.TileID(),
		Kind:            s.TileKind(),
		IntrinsicWidth:  w,
		IntrinsicHeight: h,
		Content:         s.TileContent(),
	}
}

// ToTiles flattens sources in order.
func ToTiles[S Source](sources []S) []masonry.Tile {
	tiles := make([]masonry.Tile, len(sources))
	for i, s := range sources {
		tiles[i] = ToTile(s)
	}
	return tiles
}
