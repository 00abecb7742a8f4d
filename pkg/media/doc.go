// Package media normalises media API shapes into layout tiles.
//
// The layout calculator only understands flat [masonry.Tile] values. Anything
// that can report an ID, a kind, intrinsic dimensions and a content payload
// satisfies [Source] and can be converted with [ToTile].
//
// The package also models Klipy-style search responses: paginated lists of
// gifs, stickers, clips and inline ads, each with its own nested file layout.
// [DecodePage] reads one page and [Page.Tiles] flattens it:
//
//	page, err := media.DecodePage(resp.Body)
//	if err != nil {
//	    return err
//	}
//	rows := calc.CreateRows(page.Tiles())
//
// Dimension extraction per type:
//
//   - clip: file_meta.gif
//   - gif, sticker: file.xs.gif
//   - ad: the declared creative size
//
// Items with missing data report zero dimensions, which the calculator skips.
package media
