package cache

import "github.com/matzehuels/masonry/pkg/masonry"

// Keyer generates cache keys.
type Keyer interface {
	// LayoutKey names the layout computed for a tile list.
	LayoutKey(tilesHash string, opts LayoutKeyOpts) string
	// ArtifactKey names a rendered layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds everything besides the tiles that shapes a layout.
type LayoutKeyOpts struct {
	Profile string         `json:"profile"`
	Config  masonry.Config `json:"config"`
}

// ArtifactKeyOpts holds render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Labels     bool    `json:"labels"`
	Background string  `json:"background"`
	Scale      float64 `json:"scale"`
	TextWidth  int     `json:"text_width"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(tilesHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", tilesHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
