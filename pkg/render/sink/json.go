package sink

import "github.com/matzehuels/masonry/pkg/grid"

// RenderJSON exports the layout as the canonical pretty-printed document
// accepted by grid.UnmarshalLayout.
func RenderJSON(l grid.Layout) ([]byte, error) {
	return grid.MarshalLayout(l)
}
