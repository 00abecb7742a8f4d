package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxIDLength bounds tile and layout identifiers.
const maxIDLength = 256

// ValidateTileID validates a tile identifier.
//
// Tile IDs come from upstream media APIs and are echoed back to renderers and
// stored alongside layouts, so the rules are conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateTileID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidTile, "tile id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidTile, "tile id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTile, "tile id contains invalid control characters")
		}
	}

	return nil
}

// layoutIDRegex matches identifiers safe to use as file names, cache keys and
// URL path segments.
var layoutIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateLayoutID validates a stored layout identifier.
// It rejects anything that could escape a directory or a URL segment.
func ValidateLayoutID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "layout id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidID, "layout id too long (max %d characters)", maxIDLength)
	}

	if !layoutIDRegex.MatchString(id) {
		return New(ErrCodeInvalidID, "invalid layout id: %q", id)
	}

	return nil
}

// profileNameRegex matches profile names such as "gifs" or "clips-dense".
var profileNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidateProfileName validates a layout profile name.
// Names are lowercase so that "Clips" and "clips" resolve to the same profile.
func ValidateProfileName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidProfile, "profile name cannot be empty")
	}

	if strings.ToLower(name) != name {
		return New(ErrCodeInvalidProfile, "profile names must be lowercase: %q", name)
	}

	if !profileNameRegex.MatchString(name) {
		return New(ErrCodeInvalidProfile, "invalid profile name: %q", name)
	}

	return nil
}
