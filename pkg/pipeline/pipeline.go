// Package pipeline runs the tiles → layout → render flow shared by the CLI
// and the HTTP service.
//
// # Architecture
//
// The pipeline has two stages, each cached independently:
//
//  1. Layout: resolve a profile into a [masonry.Config] and pack the tiles
//     into justified rows
//  2. Render: turn a [grid.Layout] into one artifact per output format
//
// Layouts can also be persisted through a [store.Store].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, nil, logger)
//	res, err := runner.Layout(ctx, tiles, pipeline.Options{Profile: "clips", ContainerWidth: 390})
//	if err != nil {
//	    return err
//	}
//	artifacts, err := runner.Render(ctx, res.Layout, pipeline.Options{Formats: []string{"svg"}})
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/masonry/pkg/cache"
	"github.com/matzehuels/masonry/pkg/config"
	errs "github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/grid"
	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultProfile is used when Options.Profile is empty.
	DefaultProfile = grid.ProfileGIFs

	// DefaultContainerWidth applies when neither the options nor the profile
	// set a width. It matches a typical phone viewport in points.
	DefaultContainerWidth = 390.0
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. It supports JSON for API requests.
type Options struct {
	// Layout options
	Profile        string  `json:"profile,omitempty"`
	ContainerWidth float64 `json:"container_width,omitempty"`
	Refresh        bool    `json:"refresh,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Labels     bool     `json:"labels,omitempty"`
	Background string   `json:"background,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	TextWidth  int      `json:"text_width,omitempty"`

	// Runtime options (not serialized)
	Logger     *log.Logger  `json:"-"`
	ConfigFile string       `json:"-"`
	Profiles   *config.File `json:"-"`

	validated bool
}

// Result is the outcome of a layout run.
type Result struct {
	// Layout is the computed grid.
	Layout grid.Layout

	// TilesHash identifies the input tile list.
	TilesHash string

	// Skipped lists the IDs of tiles with unusable dimensions.
	Skipped []string

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether the layout came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Tiles      int
	Rows       int
	Skipped    int
	LayoutTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !grid.ValidFormat(format) {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(grid.Formats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults. It loads
// the profile file when Profiles is nil. Calling it again is a no-op.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Profile == "" {
		o.Profile = DefaultProfile
	}
	if err := errs.ValidateProfileName(o.Profile); err != nil {
		return err
	}
	if o.ContainerWidth < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "container_width must not be negative, got %g", o.ContainerWidth)
	}
	if o.Profiles == nil {
		f, path, err := config.LoadDefault(o.ConfigFile)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "load profiles")
		}
		if path != "" {
			o.Logger.Debug("loaded profiles", "path", path)
		}
		o.Profiles = &f
	}
	if o.ContainerWidth == 0 && !o.profileSetsWidth() {
		o.ContainerWidth = DefaultContainerWidth
	}

	formats := make([]string, 0, len(o.Formats))
	for _, f := range o.Formats {
		formats = append(formats, strings.ToLower(f))
	}
	if len(formats) == 0 {
		formats = []string{grid.FormatSVG}
	}
	o.Formats = formats
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	o.validated = true
	return nil
}

func (o *Options) profileSetsWidth() bool {
	if o.Profiles.Default.ContainerWidth != nil {
		return true
	}
	p, ok := o.Profiles.Profiles[o.Profile]
	return ok && p.ContainerWidth != nil
}

// Config resolves the calculator config for the options' profile and width.
func (o *Options) Config() (masonry.Config, error) {
	if err := o.ValidateAndSetDefaults(); err != nil {
		return masonry.Config{}, err
	}
	return o.Profiles.Resolve(o.Profile, o.ContainerWidth)
}

// RenderOptions returns the sink options.
func (o *Options) RenderOptions() sink.Options {
	return sink.Options{
		Labels:     o.Labels,
		Background: o.Background,
		Scale:      o.Scale,
		TextWidth:  o.TextWidth,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Labels:     o.Labels,
		Background: o.Background,
		Scale:      o.Scale,
		TextWidth:  o.TextWidth,
	}
}
