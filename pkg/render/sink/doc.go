// Package sink renders computed grid layouts into output formats.
//
// # Overview
//
// A "sink" transforms a [grid.Layout] into bytes:
//
//   - SVG: one rectangle per tile, coloured by kind
//   - PNG: raster output through Graphviz with pinned node positions
//   - JSON: the canonical layout document
//   - Text: a terminal preview built from lipgloss blocks
//
// Sinks are pure: they never modify the layout and are safe for concurrent
// use. [Render] dispatches on a format name from [grid.Formats].
//
// [grid.Layout]: github.com/matzehuels/masonry/pkg/grid.Layout
// [grid.Formats]: github.com/matzehuels/masonry/pkg/grid.Formats
package sink
