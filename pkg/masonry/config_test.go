package masonry

import (
	"math"
	"testing"

	errs "github.com/matzehuels/masonry/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig(390)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig(390).Validate() = %v", err)
	}
	if cfg.Gap != 1 || cfg.MinItemWidth != 50 || cfg.MinRowHeight != 50 ||
		cfg.MaxRowHeight != 180 || cfg.MaxItemsPerRow != 4 || cfg.AdMaxResizePercent != 20 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"zero container", func(c *Config) { c.ContainerWidth = 0 }, "container_width"},
		{"negative container", func(c *Config) { c.ContainerWidth = -10 }, "container_width"},
		{"NaN container", func(c *Config) { c.ContainerWidth = math.NaN() }, "container_width"},
		{"Inf container", func(c *Config) { c.ContainerWidth = math.Inf(1) }, "container_width"},
		{"negative gap", func(c *Config) { c.Gap = -1 }, "gap"},
		{"zero min height", func(c *Config) { c.MinRowHeight = 0 }, "min_row_height"},
		{"min above max", func(c *Config) { c.MinRowHeight = 200 }, "min_row_height"},
		{"zero items per row", func(c *Config) { c.MaxItemsPerRow = 0 }, "max_items_per_row"},
		{"negative min item width", func(c *Config) { c.MinItemWidth = -1 }, "min_item_width"},
		{"resize above 100", func(c *Config) { c.AdMaxResizePercent = 101 }, "ad_max_resize_percent"},
		{"negative resize", func(c *Config) { c.AdMaxResizePercent = -5 }, "ad_max_resize_percent"},
		{"NaN resize", func(c *Config) { c.AdMaxResizePercent = math.NaN() }, "ad_max_resize_percent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(390)
			tt.modify(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errs.Is(err, errs.ErrCodeInvalidConfig) {
				t.Errorf("Validate() code = %v, want %v", errs.GetCode(err), errs.ErrCodeInvalidConfig)
			}
			if got := errs.GetField(err); got != tt.field {
				t.Errorf("Validate() field = %q, want %q", got, tt.field)
			}
			if _, err := New(cfg); err == nil {
				t.Error("New() accepted invalid config")
			}
		})
	}
}

func TestConfigValidateEdges(t *testing.T) {
	cfg := DefaultConfig(390)
	cfg.MinRowHeight, cfg.MaxRowHeight = 120, 120
	cfg.Gap = 0
	cfg.AdMaxResizePercent = 100
	cfg.MinItemWidth = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}
