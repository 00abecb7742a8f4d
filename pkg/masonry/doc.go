// Package masonry arranges media tiles into justified rows.
//
// # Overview
//
// A masonry grid packs heterogeneous tiles (images, video clips and inline
// ads) of varying aspect ratios into rows that fill a fixed-width container.
// Every tile in a row shares one height; widths follow from each tile's
// aspect ratio and are then nudged so the row spans the container exactly.
//
// # Row Formation
//
// Rows are formed greedily from a lookahead window of at most
// [Config.MaxItemsPerRow] tiles:
//
//  1. Ad rule: an ad deep in the window (index > 1) truncates the window to
//     its first two tiles. An ad at index 0 or 1 pins the row height to the
//     ad's declared height.
//  2. Height search: every integer height in [Config.MinRowHeight,
//     Config.MaxRowHeight] is tried and the prefix of the window whose total
//     width deviates least from the container is kept.
//  3. Reconciliation: the leftover width is spread evenly over the non-ad
//     tiles of the row.
//  4. Ad shrink: non-ad tiles squeezed below [Config.MinItemWidth] are clamped
//     back up and the ad gives up width (at most
//     [Config.AdMaxResizePercent] percent) to absorb the overflow.
//
// A final pass ([Position]) assigns x/y coordinates.
//
// # Usage
//
//	calc, err := masonry.New(masonry.DefaultConfig(390))
//	if err != nil {
//	    return err
//	}
//	rows := calc.CreateRows(tiles)
//	for _, row := range rows {
//	    for _, t := range row.Tiles {
//	        draw(t.ID, t.X, t.Y, t.Width, t.Height)
//	    }
//	}
//
// # Invalid Tiles
//
// Tiles whose intrinsic width or height is not a finite positive number are
// skipped. [Invalid] lists them so callers can report data-quality problems.
//
// # Concurrency
//
// A [Calculator] holds only its immutable [Config] and may be shared between
// goroutines. Layout passes are pure and deterministic.
package masonry
