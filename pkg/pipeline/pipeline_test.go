package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/masonry/pkg/config"
	errs "github.com/matzehuels/masonry/pkg/errors"
)

func builtin() *config.File {
	f := config.Builtin()
	return &f
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"txt", false},
		{"SVG", false},
		{"pdf", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	assert.NoError(t, ValidateFormats([]string{"svg", "png"}))
	assert.NoError(t, ValidateFormats(nil))

	err := ValidateFormats([]string{"svg", "gif"})
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidFormat))
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Profiles: builtin(), Formats: []string{"SVG", "Json"}}
	require.NoError(t, opts.ValidateAndSetDefaults())

	assert.Equal(t, DefaultProfile, opts.Profile)
	assert.Equal(t, DefaultContainerWidth, opts.ContainerWidth)
	assert.Equal(t, []string{"svg", "json"}, opts.Formats)
	assert.NotNil(t, opts.Logger)

	// Idempotent.
	require.NoError(t, opts.ValidateAndSetDefaults())
}

func TestValidateAndSetDefaultsFormatsNotAliased(t *testing.T) {
	formats := []string{"SVG"}
	opts := Options{Profiles: builtin(), Formats: formats}
	require.NoError(t, opts.ValidateAndSetDefaults())
	assert.Equal(t, "SVG", formats[0])
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"bad profile name", Options{Profile: "Clips"}, errs.ErrCodeInvalidProfile},
		{"negative width", Options{ContainerWidth: -1}, errs.ErrCodeInvalidInput},
		{"bad format", Options{Formats: []string{"bmp"}}, errs.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Profiles = builtin()
			err := tt.opts.ValidateAndSetDefaults()
			assert.True(t, errs.Is(err, tt.code), "err = %v", err)
		})
	}
}

func TestProfileWidthWins(t *testing.T) {
	w := 600.0
	f := config.Builtin()
	p := f.Profiles["clips"]
	p.ContainerWidth = &w
	f.Profiles["clips"] = p

	opts := Options{Profile: "clips", Profiles: &f}
	cfg, err := opts.Config()
	require.NoError(t, err)
	assert.Equal(t, 600.0, cfg.ContainerWidth)
	assert.Equal(t, 2, cfg.MaxItemsPerRow)
}

func TestConfigUnknownProfile(t *testing.T) {
	opts := Options{Profile: "nope", Profiles: builtin()}
	_, err := opts.Config()
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidProfile))
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Labels: true, Scale: 2}
	k := opts.ArtifactKeyOpts("png")
	assert.Equal(t, "png", k.Format)
	assert.True(t, k.Labels)
	assert.Equal(t, 2.0, k.Scale)
}
