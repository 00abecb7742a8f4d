package grid

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	errs "github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/masonry"
)

// =============================================================================
// Layout - Serialized Grid
// =============================================================================

// Layout is the serialization format of a computed grid.
type Layout struct {
	ID        string         `json:"id,omitempty" bson:"_id,omitempty"`
	Profile   string         `json:"profile,omitempty" bson:"profile,omitempty"`
	Config    masonry.Config `json:"config" bson:"config"`
	Width     float64        `json:"width" bson:"width"`
	Height    float64        `json:"height" bson:"height"`
	Rows      []Row          `json:"rows" bson:"rows"`
	Skipped   []string       `json:"skipped,omitempty" bson:"skipped,omitempty"`
	CreatedAt time.Time      `json:"created_at,omitzero" bson:"created_at,omitempty"`
}

// Row is one serialized row.
type Row struct {
	Height float64 `json:"height" bson:"height"`
	Blocks []Block `json:"blocks" bson:"blocks"`
}

// Block is one positioned tile.
type Block struct {
	ID              string          `json:"id" bson:"id"`
	Kind            masonry.Kind    `json:"kind" bson:"kind"`
	X               float64         `json:"x" bson:"x"`
	Y               float64         `json:"y" bson:"y"`
	Width           float64         `json:"width" bson:"width"`
	Height          float64         `json:"height" bson:"height"`
	IntrinsicWidth  float64         `json:"intrinsic_width" bson:"intrinsic_width"`
	IntrinsicHeight float64         `json:"intrinsic_height" bson:"intrinsic_height"`
	Content         masonry.Content `json:"content,omitempty" bson:"content,omitempty"`
}

// Count returns the number of blocks in the layout.
func (l Layout) Count() int {
	n := 0
	for _, r := range l.Rows {
		n += len(r.Blocks)
	}
	return n
}

// Blocks returns every block in row order.
func (l Layout) Blocks() []Block {
	out := make([]Block, 0, l.Count())
	for _, r := range l.Rows {
		out = append(out, r.Blocks...)
	}
	return out
}

// =============================================================================
// Conversion
// =============================================================================

// FromRows converts calculator output into a Layout. skipped lists the tiles
// the calculator dropped (see masonry.Invalid).
func FromRows(rows []masonry.Row, cfg masonry.Config, skipped []masonry.Tile) Layout {
	l := Layout{
		Config: cfg,
		Width:  cfg.ContainerWidth,
		Height: masonry.CanvasHeight(rows, cfg.Gap),
		Rows:   make([]Row, len(rows)),
	}
	for i, r := range rows {
		blocks := make([]Block, len(r.Tiles))
		for j, t := range r.Tiles {
			blocks[j] = Block{
				ID:              t.ID,
				Kind:            t.Kind,
				X:               t.X,
				Y:               t.Y,
				Width:           t.Width,
				Height:          t.Height,
				IntrinsicWidth:  t.IntrinsicWidth,
				IntrinsicHeight: t.IntrinsicHeight,
				Content:         t.Content,
			}
		}
		l.Rows[i] = Row{Height: r.Height, Blocks: blocks}
	}
	for _, t := range skipped {
		l.Skipped = append(l.Skipped, t.ID)
	}
	return l
}

// MasonryRows converts the layout back into calculator rows.
func (l Layout) MasonryRows() []masonry.Row {
	rows := make([]masonry.Row, len(l.Rows))
	for i, r := range l.Rows {
		tiles := make([]masonry.PlacedTile, len(r.Blocks))
		for j, b := range r.Blocks {
			tiles[j] = masonry.PlacedTile{
				Tile:   b.Tile(),
				X:      b.X,
				Y:      b.Y,
				Width:  b.Width,
				Height: b.Height,
			}
		}
		rows[i] = masonry.Row{Tiles: tiles, Height: r.Height}
	}
	return rows
}

// Tiles returns the input tiles in layout order.
func (l Layout) Tiles() []masonry.Tile {
	out := make([]masonry.Tile, 0, l.Count())
	for _, r := range l.Rows {
		for _, b := range r.Blocks {
			out = append(out, b.Tile())
		}
	}
	return out
}

// Tile returns the block's input tile.
func (b Block) Tile() masonry.Tile {
	return masonry.Tile{
		ID:              b.ID,
		Kind:            b.Kind,
		IntrinsicWidth:  b.IntrinsicWidth,
		IntrinsicHeight: b.IntrinsicHeight,
		Content:         b.Content,
	}
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and validates it.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Validate checks the layout's config and block IDs.
func (l Layout) Validate() error {
	if err := l.Config.Validate(); err != nil {
		return fmt.Errorf("layout config: %w", err)
	}
	if l.ID != "" {
		if err := errs.ValidateLayoutID(l.ID); err != nil {
			return err
		}
	}
	for _, r := range l.Rows {
		for _, b := range r.Blocks {
			if err := errs.ValidateTileID(b.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
