// Package grid provides serialization types for tiles and computed layouts.
//
// This package defines the canonical wire format for masonry data, used for
// JSON files, API responses, caching and storage (every type carries both
// json and bson tags).
//
// # Architecture
//
// The package sits at the serialization boundary between the calculator's
// in-memory rows and external formats:
//
//   - [Layout], [Row], [Block]: serialization types (this package)
//   - masonry.Row, masonry.PlacedTile: in-memory layout
//
// Use [FromRows] and [Layout.MasonryRows] to convert between them.
//
// # Tile Input
//
// [ParseTiles] accepts three document shapes:
//
//	[{"id": "1", "kind": "image", "width": 320, "height": 180}, ...]
//	{"tiles": [...]}
//	{"data": [...], "current_page": 1, "has_next": true}   // API search page
//
// # Constants
//
// This package is the single source of truth for output format names:
//
//	grid.FormatSVG   // "svg"
//	grid.FormatPNG   // "png"
//	grid.FormatJSON  // "json"
//	grid.FormatText  // "txt"
package grid
