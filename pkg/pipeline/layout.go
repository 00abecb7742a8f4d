package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/masonry/pkg/cache"
	"github.com/matzehuels/masonry/pkg/grid"
	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/observability"
)

const keyTypeLayout = "layout"

// Layout packs tiles into rows using the options' profile. Results are
// cached by tile list and resolved config unless opts.Refresh is set.
func (r *Runner) Layout(ctx context.Context, tiles []masonry.Tile, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	cfg, err := opts.Config()
	if err != nil {
		return nil, err
	}

	tilesHash, err := cache.HashJSON(tiles)
	if err != nil {
		return nil, fmt.Errorf("hash tiles: %w", err)
	}
	key := r.Keyer.LayoutKey(tilesHash, cache.LayoutKeyOpts{Profile: opts.Profile, Config: cfg})

	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, opts.Profile, len(tiles))
	start := time.Now()

	if !opts.Refresh {
		if l, ok := r.cachedLayout(ctx, key); ok {
			opts.Logger.Debug("layout cache hit", "profile", opts.Profile, "tiles", len(tiles))
			hooks.OnLayoutComplete(ctx, opts.Profile, len(l.Rows), time.Since(start), nil)
			return newResult(l, tilesHash, len(tiles), time.Since(start), true), nil
		}
	}

	v, err, shared := r.group.Do(key, func() (any, error) {
		return r.computeLayout(ctx, key, tiles, cfg, opts.Profile)
	})
	elapsed := time.Since(start)
	if err != nil {
		hooks.OnLayoutComplete(ctx, opts.Profile, 0, elapsed, err)
		return nil, err
	}
	l := v.(grid.Layout)
	hooks.OnLayoutComplete(ctx, opts.Profile, len(l.Rows), elapsed, nil)

	opts.Logger.Info("computed layout",
		"profile", opts.Profile,
		"tiles", l.Count(),
		"rows", len(l.Rows),
		"skipped", len(l.Skipped),
		"shared", shared,
		"duration", elapsed)

	return newResult(l, tilesHash, len(tiles), elapsed, false), nil
}

func (r *Runner) cachedLayout(ctx context.Context, key string) (grid.Layout, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("layout cache read failed", "err", err)
		return grid.Layout{}, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
		return grid.Layout{}, false
	}
	l, err := grid.UnmarshalLayout(data)
	if err != nil {
		// Stale or corrupt entry: recompute.
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
		return grid.Layout{}, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeLayout)
	return l, true
}

func (r *Runner) computeLayout(ctx context.Context, key string, tiles []masonry.Tile, cfg masonry.Config, profile string) (grid.Layout, error) {
	calc, err := masonry.New(cfg)
	if err != nil {
		return grid.Layout{}, err
	}
	rows := calc.CreateRows(tiles)
	l := grid.FromRows(rows, cfg, masonry.Invalid(tiles))
	l.Profile = profile

	if data, err := grid.MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("layout cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeLayout, len(data))
		}
	}
	return l, nil
}

func newResult(l grid.Layout, tilesHash string, tiles int, d time.Duration, hit bool) *Result {
	return &Result{
		Layout:    l,
		TilesHash: tilesHash,
		Skipped:   l.Skipped,
		CacheHit:  hit,
		Stats: Stats{
			Tiles:      tiles,
			Rows:       len(l.Rows),
			Skipped:    len(l.Skipped),
			LayoutTime: d,
		},
	}
}
