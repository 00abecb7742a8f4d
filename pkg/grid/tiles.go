package grid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	errs "github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/media"
)

// TilesDocument is the {"tiles": [...]} input shape.
type TilesDocument struct {
	Tiles []masonry.Tile `json:"tiles" bson:"tiles"`
}

// ParseTiles decodes a tile array, a tiles document or an API search page.
// Missing IDs are replaced by the tile's position; kinds are normalised.
func ParseTiles(data []byte) ([]masonry.Tile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "empty tiles document")
	}

	var tiles []masonry.Tile
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &tiles); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode tile array")
		}
	case '{':
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(data, &probe); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode tiles document")
		}
		if _, ok := probe["tiles"]; ok {
			var doc TilesDocument
			if err := json.Unmarshal(data, &doc); err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode tiles document")
			}
			tiles = doc.Tiles
			break
		}
		page, err := media.ParsePage(data)
		if err != nil {
			return nil, err
		}
		tiles = page.Tiles()
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "tiles document must be a JSON array or object")
	}

	return normalize(tiles)
}

func normalize(tiles []masonry.Tile) ([]masonry.Tile, error) {
	for i := range tiles {
		if tiles[i].ID == "" {
			tiles[i].ID = strconv.Itoa(i)
		}
		if err := errs.ValidateTileID(tiles[i].ID); err != nil {
			return nil, fmt.Errorf("tile %d: %w", i, err)
		}
		tiles[i].Kind = masonry.ParseKind(string(tiles[i].Kind))
	}
	return tiles, nil
}

// ReadTiles reads and parses a tiles document.
func ReadTiles(r io.Reader) ([]masonry.Tile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read tiles")
	}
	return ParseTiles(data)
}

// ReadTilesFile reads a tiles document from path.
func ReadTilesFile(path string) ([]masonry.Tile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseTiles(data)
}

// MarshalTiles serializes tiles as a tiles document.
func MarshalTiles(tiles []masonry.Tile) ([]byte, error) {
	return json.MarshalIndent(TilesDocument{Tiles: tiles}, "", "  ")
}

// WriteTilesFile writes tiles as a tiles document.
func WriteTilesFile(tiles []masonry.Tile, path string) error {
	data, err := MarshalTiles(tiles)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
