// Package feed keeps a growing, paginated tile list laid out.
//
// A [Feed] owns the ordered tiles fetched so far and re-runs the masonry
// calculator on the full list after every change, returning an immutable
// [Snapshot]. It also tracks pagination state so renderers can ask
// [Feed.ShouldLoadMore] when a row scrolls into view.
//
//	f := feed.New(calc)
//	snap := f.AppendPage(page)
//	if f.ShouldLoadMore(lastVisibleRow) {
//	    if next, ok := f.NextPage(); ok {
//	        fetch(next)
//	    }
//	}
//
// [Debouncer] helps callers re-trigger layout only once a burst of changes
// (typing in a search box, rapid page arrivals) has settled.
package feed
