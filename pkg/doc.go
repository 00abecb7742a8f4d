// Package pkg provides the core libraries for masonry grid layouts.
//
// # Overview
//
// Masonry packs media tiles (images, clips and inline ads) of varying aspect
// ratios into rows that exactly span a container, the way search result grids
// do. The pkg directory is organized into four areas:
//
//  1. [masonry] - The layout calculator (row packing, ad fitting, positions)
//  2. [media], [grid], [config] - Inputs, wire formats and layout profiles
//  3. [cache], [store], [observability] - Infrastructure
//  4. [pipeline], [feed], [render/sink] - Orchestration, paging and output
//
// # Architecture
//
// The typical data flow:
//
//	Search page / tiles document
//	         ↓
//	   media, grid.ParseTiles
//	         ↓
//	   pipeline.Runner.Layout  ← config profile, cache
//	         ↓
//	   grid.Layout  → store
//	         ↓
//	   sink (svg, png, json, txt)
//
// For infinite scroll, [feed] holds the growing tile list, decides when the
// next page is due and lays the whole list out again after every append.
package pkg
