package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/masonry/pkg/cache"
	"github.com/matzehuels/masonry/pkg/grid"
	"github.com/matzehuels/masonry/pkg/observability"
	"github.com/matzehuels/masonry/pkg/render/sink"
)

const keyTypeArtifact = "artifact"

// Render produces one artifact per requested format. Artifacts are cached by
// layout content, so a stored layout and its unsaved original share entries.
func (r *Runner) Render(ctx context.Context, l grid.Layout, opts Options) (map[string][]byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	layoutHash, err := contentHash(l)
	if err != nil {
		return nil, fmt.Errorf("hash layout: %w", err)
	}

	hooks := observability.Layout()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		}

		data, err := sink.Render(ctx, l, format, opts.RenderOptions())
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("artifact cache write failed", "format", format, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}

	elapsed := time.Since(start)
	hooks.OnRenderComplete(ctx, opts.Formats, elapsed, nil)
	opts.Logger.Debug("rendered outputs", "formats", opts.Formats, "duration", elapsed)
	return artifacts, nil
}

// contentHash hashes a layout ignoring its identity fields.
func contentHash(l grid.Layout) (string, error) {
	l.ID = ""
	l.CreatedAt = time.Time{}
	return cache.HashJSON(l)
}
