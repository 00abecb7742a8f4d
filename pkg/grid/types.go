package grid

import (
	"slices"
	"strings"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatText = "txt"
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatPNG, FormatJSON, FormatText}

// ValidFormat reports whether f names a supported output format.
func ValidFormat(f string) bool {
	return slices.Contains(Formats, strings.ToLower(f))
}

// Built-in profile names.
const (
	ProfileGIFs     = "gifs"
	ProfileStickers = "stickers"
	ProfileClips    = "clips"
)
