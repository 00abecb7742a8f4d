package errors

import (
	"strings"
	"testing"
)

func TestValidateTileID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"numeric", "4815162342", false},
		{"slug", "dancing-cat-42", false},
		{"unicode", "gif-ñ", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 257), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTileID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTileID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidTile) {
				t.Errorf("ValidateTileID(%q) code = %v", tt.input, GetCode(err))
			}
		})
	}
}

func TestValidateLayoutID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"uuid", "2f1c6d3e-8a7b-4c3d-9e2f-1a2b3c4d5e6f", false},
		{"short", "abc", false},
		{"underscore", "my_layout", false},

		{"empty", "", true},
		{"path traversal", "../etc", true},
		{"slash", "a/b", true},
		{"leading dash", "-abc", true},
		{"dot suffix", "abc.svg", true},
		{"too long", strings.Repeat("a", 300), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLayoutID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLayoutID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateProfileName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"gifs", "gifs", false},
		{"with dash", "clips-dense", false},
		{"with digit", "grid2", false},

		{"empty", "", true},
		{"uppercase", "Clips", true},
		{"leading digit", "2grid", true},
		{"space", "my profile", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfileName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProfileName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
