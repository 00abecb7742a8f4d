package feed

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/media"
)

// Snapshot is the laid-out state of a feed after one change.
type Snapshot struct {
	Rows    []masonry.Row  `json:"rows"`
	Tiles   int            `json:"tiles"`
	Skipped []masonry.Tile `json:"skipped,omitempty"`
	Page    int            `json:"page"`
	HasNext bool           `json:"has_next"`
	Version uint64         `json:"version"`
}

// Height returns the canvas height of the snapshot.
func (s Snapshot) Height(gap float64) float64 {
	return masonry.CanvasHeight(s.Rows, gap)
}

// Option configures a Feed.
type Option func(*Feed)

// WithPrefetchItems also triggers loading once no more than n tiles remain
// below the last visible row.
func WithPrefetchItems(n int) Option {
	return func(f *Feed) { f.prefetch = max(0, n) }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(f *Feed) {
		if l != nil {
			f.logger = l
		}
	}
}

// Feed is safe for concurrent use.
type Feed struct {
	calc     *masonry.Calculator
	prefetch int
	logger   *log.Logger

	mu      sync.Mutex
	tiles   []masonry.Tile
	rows    []masonry.Row
	skipped []masonry.Tile
	page    int
	hasNext bool
	loading bool
	version uint64
}

// New returns an empty feed laid out by calc.
func New(calc *masonry.Calculator, opts ...Option) *Feed {
	f := &Feed{
		calc:    calc,
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
		hasNext: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// AppendPage adds a fetched page and re-lays out the feed.
func (f *Feed) AppendPage(p media.Page) Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.page = max(f.page, p.CurrentPage)
	f.hasNext = p.HasNext
	return f.appendLocked(p.Tiles())
}

// AppendTiles adds tiles that arrived outside of page boundaries.
func (f *Feed) AppendTiles(tiles []masonry.Tile, hasNext bool) Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.page++
	f.hasNext = hasNext
	return f.appendLocked(tiles)
}

func (f *Feed) appendLocked(tiles []masonry.Tile) Snapshot {
	f.loading = false
	f.tiles = append(f.tiles, tiles...)
	f.relayoutLocked()
	return f.snapshotLocked()
}

// Reset clears the feed for a new query.
func (f *Feed) Reset() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tiles = nil
	f.page = 0
	f.hasNext = true
	f.loading = false
	f.relayoutLocked()
	return f.snapshotLocked()
}

// Snapshot returns the current state without changing it.
func (f *Feed) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// Len returns the number of tiles held, including skipped ones.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tiles)
}

// ShouldLoadMore reports whether another page should be fetched now that
// row lastVisibleRow is on screen.
func (f *Feed) ShouldLoadMore(lastVisibleRow int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.hasNext || f.loading {
		return false
	}
	if len(f.rows) == 0 {
		return true
	}
	if lastVisibleRow >= len(f.rows)-1 {
		return true
	}
	if f.prefetch == 0 || lastVisibleRow < 0 {
		return false
	}
	below := 0
	for _, r := range f.rows[lastVisibleRow+1:] {
		below += r.Len()
	}
	return below <= f.prefetch
}

// NextPage marks a fetch as in flight and returns the page to request.
// It returns false when no more pages exist or a fetch is already running.
// The next Append or Reset clears the in-flight mark.
func (f *Feed) NextPage() (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.hasNext || f.loading {
		return 0, false
	}
	f.loading = true
	return f.page + 1, true
}

// CancelLoad clears the in-flight mark after a failed fetch.
func (f *Feed) CancelLoad() {
	f.mu.Lock()
	f.loading = false
	f.mu.Unlock()
}

func (f *Feed) relayoutLocked() {
	f.version++
	f.rows = f.calc.CreateRows(f.tiles)
	f.skipped = masonry.Invalid(f.tiles)
	f.logger.Debug("feed relayout",
		"version", f.version,
		"tiles", len(f.tiles),
		"rows", len(f.rows),
		"skipped", len(f.skipped))
}

func (f *Feed) snapshotLocked() Snapshot {
	return Snapshot{
		Rows:    f.rows,
		Tiles:   masonry.Count(f.rows),
		Skipped: f.skipped,
		Page:    f.page,
		HasNext: f.hasNext,
		Version: f.version,
	}
}
