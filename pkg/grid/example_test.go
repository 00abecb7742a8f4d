package grid_test

import (
	"fmt"

	"github.com/matzehuels/masonry/pkg/grid"
	"github.com/matzehuels/masonry/pkg/masonry"
)

func ExampleFromRows() {
	tiles, _ := grid.ParseTiles([]byte(`[
		{"id": "1", "width": 160, "height": 90},
		{"id": "2", "width": 160, "height": 90}
	]`))

	cfg := masonry.DefaultConfig(361)
	rows, _ := masonry.CreateRows(tiles, cfg)
	l := grid.FromRows(rows, cfg, masonry.Invalid(tiles))

	for _, b := range l.Blocks() {
		fmt.Printf("%s %.0fx%.0f at %.0f,%.0f\n", b.ID, b.Width, b.Height, b.X, b.Y)
	}
	// Output:
	// 1 180x101 at 0,0
	// 2 180x101 at 181,0
}
