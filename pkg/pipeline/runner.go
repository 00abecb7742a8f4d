package pipeline

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/masonry/pkg/cache"
	errs "github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/grid"
	"github.com/matzehuels/masonry/pkg/store"
)

// Runner executes the pipeline with caching. Both CLI and API use it so
// caching behaves the same everywhere.
//
// The Runner holds no per-run state; many goroutines may share one. Identical
// concurrent layout requests are computed once.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store
	Logger *log.Logger

	group singleflight.Group
}

// NewRunner creates a runner. A nil keyer uses the default keyer, a nil cache
// disables caching and a nil store disables Save.
func NewRunner(c cache.Cache, keyer cache.Keyer, st store.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Store:  st,
		Logger: logger,
	}
}

// Save persists l, assigning an ID if it has none.
func (r *Runner) Save(ctx context.Context, l grid.Layout) (grid.Layout, error) {
	if r.Store == nil {
		return grid.Layout{}, errs.New(errs.ErrCodeUnsupported, "no layout store configured")
	}
	saved, err := r.Store.Save(ctx, l)
	if err != nil {
		return grid.Layout{}, err
	}
	r.Logger.Info("saved layout", "id", saved.ID, "tiles", saved.Count())
	return saved, nil
}

// Get loads a saved layout.
func (r *Runner) Get(ctx context.Context, id string) (grid.Layout, error) {
	if r.Store == nil {
		return grid.Layout{}, errs.New(errs.ErrCodeUnsupported, "no layout store configured")
	}
	return r.Store.Get(ctx, id)
}

// Close releases the cache and the store.
func (r *Runner) Close() error {
	var errList []error
	if r.Cache != nil {
		errList = append(errList, r.Cache.Close())
	}
	if r.Store != nil {
		errList = append(errList, r.Store.Close())
	}
	return errors.Join(errList...)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
