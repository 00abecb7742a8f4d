package masonry

import (
	"math"

	errs "github.com/matzehuels/masonry/pkg/errors"
)

// Default packing parameters.
const (
	DefaultGap                = 1
	DefaultMinItemWidth       = 50
	DefaultMinRowHeight       = 50
	DefaultMaxRowHeight       = 180
	DefaultMaxItemsPerRow     = 4
	DefaultAdMaxResizePercent = 20
)

// Config holds the immutable layout parameters of a [Calculator].
type Config struct {
	// ContainerWidth is the target row width in layout units.
	ContainerWidth float64 `json:"container_width" bson:"container_width"`
	// Gap separates adjacent tiles in a row and adjacent rows.
	Gap float64 `json:"gap" bson:"gap"`
	// MinRowHeight and MaxRowHeight bound the integer height search (inclusive).
	MinRowHeight int `json:"min_row_height" bson:"min_row_height"`
	MaxRowHeight int `json:"max_row_height" bson:"max_row_height"`
	// MaxItemsPerRow is the lookahead window size.
	MaxItemsPerRow int `json:"max_items_per_row" bson:"max_items_per_row"`
	// MinItemWidth is the floor for non-ad tiles in rows that hold an ad.
	MinItemWidth float64 `json:"min_item_width" bson:"min_item_width"`
	// AdMaxResizePercent caps how much an ad may shrink, in percent of its width.
	AdMaxResizePercent float64 `json:"ad_max_resize_percent" bson:"ad_max_resize_percent"`
}

// DefaultConfig returns the default parameters for the given container width.
func DefaultConfig(containerWidth float64) Config {
	return Config{
		ContainerWidth:     containerWidth,
		Gap:                DefaultGap,
		MinRowHeight:       DefaultMinRowHeight,
		MaxRowHeight:       DefaultMaxRowHeight,
		MaxItemsPerRow:     DefaultMaxItemsPerRow,
		MinItemWidth:       DefaultMinItemWidth,
		AdMaxResizePercent: DefaultAdMaxResizePercent,
	}
}

// Validate reports the first configuration violation as an INVALID_CONFIG error.
func (c Config) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"container_width", c.ContainerWidth},
		{"gap", c.Gap},
		{"min_item_width", c.MinItemWidth},
		{"ad_max_resize_percent", c.AdMaxResizePercent},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return errs.NewField(errs.ErrCodeInvalidConfig, f.name, "must be finite, got %v", f.v)
		}
	}

	switch {
	case c.ContainerWidth <= 0:
		return errs.NewField(errs.ErrCodeInvalidConfig, "container_width", "must be positive, got %v", c.ContainerWidth)
	case c.Gap < 0:
		return errs.NewField(errs.ErrCodeInvalidConfig, "gap", "must not be negative, got %v", c.Gap)
	case c.MinRowHeight < 1:
		return errs.NewField(errs.ErrCodeInvalidConfig, "min_row_height", "must be at least 1, got %d", c.MinRowHeight)
	case c.MinRowHeight > c.MaxRowHeight:
		return errs.NewField(errs.ErrCodeInvalidConfig, "min_row_height", "%d exceeds max_row_height %d", c.MinRowHeight, c.MaxRowHeight)
	case c.MaxItemsPerRow < 1:
		return errs.NewField(errs.ErrCodeInvalidConfig, "max_items_per_row", "must be at least 1, got %d", c.MaxItemsPerRow)
	case c.MinItemWidth < 0:
		return errs.NewField(errs.ErrCodeInvalidConfig, "min_item_width", "must not be negative, got %v", c.MinItemWidth)
	case c.AdMaxResizePercent < 0 || c.AdMaxResizePercent > 100:
		return errs.NewField(errs.ErrCodeInvalidConfig, "ad_max_resize_percent", "must be within [0, 100], got %v", c.AdMaxResizePercent)
	}
	return nil
}
