package audio

import (
	"regexp"
	"strings"
)

var nonAlphaNumeric = regexp.MustCompile(`[^a-zA-Z0-9_\-\.]`)
var multipleSpaces = regexp.MustCompile(`\s+`)

// SafeFilename derives a storage filename from a track title, keeping only
// filesystem-safe characters and capping the length.
func SafeFilename(title string) string {
	base := strings.TrimSpace(title)
	if base == "" {
		base = "Untitled_Track"
	}

	base = multipleSpaces.ReplaceAllString(base, "_")
	base = nonAlphaNumeric.ReplaceAllString(base, "")

	maxLength := 150
	if len(base) > maxLength {
		base = base[:maxLength]
	}
	if base == "" {
		base = "fallback_filename"
	}
	return base + ".mp3"
}
