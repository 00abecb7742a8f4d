// Package config loads per-content-type layout profiles.
//
// Different media grids want different packing: clip grids use fewer, taller
// tiles per row than gif or sticker grids. A profile overrides any subset of
// [masonry.Config]; [File.Resolve] overlays the named profile on the file's
// default profile and on [masonry.DefaultConfig].
//
// Profiles are read from TOML or YAML, chosen by file extension:
//
//	[default]
//	gap = 2
//
//	[profiles.clips]
//	max_items_per_row = 2
//	min_row_height = 90
//	max_row_height = 240
//
// [Find] looks for a file at an explicit path, then $MASONRY_CONFIG, then
// $XDG_CONFIG_HOME/masonry/config.toml (or ~/.config/masonry/config.toml).
// With no file the built-in profiles apply.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/grid"
	"github.com/matzehuels/masonry/pkg/masonry"
)

const (
	// EnvConfig names the environment variable holding a config file path.
	EnvConfig = "MASONRY_CONFIG"

	appName  = "masonry"
	fileName = "config.toml"
)

// Profile overrides selected calculator parameters. Nil fields inherit.
type Profile struct {
	Description        string   `toml:"description" yaml:"description" json:"description,omitempty"`
	ContainerWidth     *float64 `toml:"container_width" yaml:"container_width" json:"container_width,omitempty"`
	Gap                *float64 `toml:"gap" yaml:"gap" json:"gap,omitempty"`
	MinRowHeight       *int     `toml:"min_row_height" yaml:"min_row_height" json:"min_row_height,omitempty"`
	MaxRowHeight       *int     `toml:"max_row_height" yaml:"max_row_height" json:"max_row_height,omitempty"`
	MaxItemsPerRow     *int     `toml:"max_items_per_row" yaml:"max_items_per_row" json:"max_items_per_row,omitempty"`
	MinItemWidth       *float64 `toml:"min_item_width" yaml:"min_item_width" json:"min_item_width,omitempty"`
	AdMaxResizePercent *float64 `toml:"ad_max_resize_percent" yaml:"ad_max_resize_percent" json:"ad_max_resize_percent,omitempty"`
}

// Apply returns cfg with the profile's set fields overridden.
func (p Profile) Apply(cfg masonry.Config) masonry.Config {
	if p.ContainerWidth != nil {
		cfg.ContainerWidth = *p.ContainerWidth
	}
	if p.Gap != nil {
		cfg.Gap = *p.Gap
	}
	if p.MinRowHeight != nil {
		cfg.MinRowHeight = *p.MinRowHeight
	}
	if p.MaxRowHeight != nil {
		cfg.MaxRowHeight = *p.MaxRowHeight
	}
	if p.MaxItemsPerRow != nil {
		cfg.MaxItemsPerRow = *p.MaxItemsPerRow
	}
	if p.MinItemWidth != nil {
		cfg.MinItemWidth = *p.MinItemWidth
	}
	if p.AdMaxResizePercent != nil {
		cfg.AdMaxResizePercent = *p.AdMaxResizePercent
	}
	return cfg
}

// merge overlays o's set fields on p.
func (p Profile) merge(o Profile) Profile {
	if o.Description != "" {
		p.Description = o.Description
	}
	if o.ContainerWidth != nil {
		p.ContainerWidth = o.ContainerWidth
	}
	if o.Gap != nil {
		p.Gap = o.Gap
	}
	if o.MinRowHeight != nil {
		p.MinRowHeight = o.MinRowHeight
	}
	if o.MaxRowHeight != nil {
		p.MaxRowHeight = o.MaxRowHeight
	}
	if o.MaxItemsPerRow != nil {
		p.MaxItemsPerRow = o.MaxItemsPerRow
	}
	if o.MinItemWidth != nil {
		p.MinItemWidth = o.MinItemWidth
	}
	if o.AdMaxResizePercent != nil {
		p.AdMaxResizePercent = o.AdMaxResizePercent
	}
	return p
}

// File is a set of named profiles.
type File struct {
	Default  Profile            `toml:"default" yaml:"default" json:"default"`
	Profiles map[string]Profile `toml:"profiles" yaml:"profiles" json:"profiles"`
}

func ptr[T any](v T) *T { return &v }

// Builtin returns the built-in profiles.
func Builtin() File {
	return File{
		Profiles: map[string]Profile{
			grid.ProfileGIFs: {
				Description:    "animated gifs, four per row",
				MaxItemsPerRow: ptr(4),
			},
			grid.ProfileStickers: {
				Description:    "transparent stickers, four per row",
				MaxItemsPerRow: ptr(4),
				MinItemWidth:   ptr(60.0),
			},
			grid.ProfileClips: {
				Description:    "video clips, two taller tiles per row",
				MaxItemsPerRow: ptr(2),
				MinRowHeight:   ptr(90),
				MaxRowHeight:   ptr(240),
			},
		},
	}
}

// Names returns the profile names in sorted order.
func (f File) Names() []string {
	return slices.Sorted(maps.Keys(f.Profiles))
}

// Resolve builds the calculator config for a profile. An empty name uses
// only the default profile. containerWidth <= 0 keeps the profile's width.
func (f File) Resolve(name string, containerWidth float64) (masonry.Config, error) {
	cfg := f.Default.Apply(masonry.DefaultConfig(0))
	if name != "" {
		if err := errs.ValidateProfileName(name); err != nil {
			return masonry.Config{}, err
		}
		p, ok := f.Profiles[name]
		if !ok {
			return masonry.Config{}, errs.New(errs.ErrCodeInvalidProfile,
				"unknown profile %q (available: %s)", name, strings.Join(f.Names(), ", "))
		}
		cfg = p.Apply(cfg)
	}
	if containerWidth > 0 {
		cfg.ContainerWidth = containerWidth
	}
	if err := cfg.Validate(); err != nil {
		return masonry.Config{}, fmt.Errorf("profile %q: %w", name, err)
	}
	return cfg, nil
}

// Merge overlays o on f. Profiles present in both are merged field by field.
func (f File) Merge(o File) File {
	out := File{
		Default:  f.Default.merge(o.Default),
		Profiles: maps.Clone(f.Profiles),
	}
	if out.Profiles == nil {
		out.Profiles = make(map[string]Profile)
	}
	for name, p := range o.Profiles {
		out.Profiles[name] = out.Profiles[name].merge(p)
	}
	return out
}

// Validate checks profile names and that every profile resolves.
func (f File) Validate() error {
	for _, name := range f.Names() {
		if _, err := f.Resolve(name, 1); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Loading
// =============================================================================

// Parse decodes a profile file. format is "toml", "yaml" or "yml".
func Parse(data []byte, format string) (File, error) {
	var f File
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "toml":
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return File{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode toml profiles")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return File{}, errs.New(errs.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return File{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode yaml profiles")
		}
	default:
		return File{}, errs.New(errs.ErrCodeUnsupported, "unsupported config format %q", format)
	}
	return f, nil
}

// Load reads path and merges it over the built-in profiles.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}
	f, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	merged := Builtin().Merge(f)
	if err := merged.Validate(); err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return merged, nil
}

// Find returns the config file to use, or "" when none exists.
// An explicit path or $MASONRY_CONFIG must exist.
func Find(explicit string) (string, error) {
	for _, p := range []string{explicit, os.Getenv(EnvConfig)} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return p, nil
	}

	dir, err := Dir()
	if err != nil {
		return "", nil
	}
	for _, name := range []string{fileName, "config.yaml", "config.yml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("config file: %w", err)
		}
	}
	return "", nil
}

// LoadDefault finds and loads the config file, falling back to the built-in
// profiles. It returns the path that was loaded, if any.
func LoadDefault(explicit string) (File, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return File{}, "", err
	}
	if path == "" {
		return Builtin(), "", nil
	}
	f, err := Load(path)
	return f, path, err
}

// Dir returns the configuration directory (XDG standard, ~/.config/masonry).
func Dir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
