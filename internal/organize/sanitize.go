package organize

import (
	"regexp"
	"strings"
)

// invalidChars matches everything that cannot appear in a path segment
// on at least one supported platform: < > : " / \ | ? * and ASCII
// control characters (0x00-0x1f).
var invalidChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// trailingGroup matches one trailing parenthesized or bracketed group,
// e.g. "(2004)" or "[FLAC]", including surrounding whitespace.
var trailingGroup = regexp.MustCompile(`\s*(\([^)]*\)|\[[^\]]*\])\s*$`)

// SanitizeName converts an arbitrary artist or album string into a
// filesystem-safe path segment.
//
// The following transformations are applied, in order:
//   - Leading/trailing whitespace is trimmed
//   - Trailing periods are removed (Windows doesn't allow them)
//   - Invalid characters are replaced with underscore
//   - An empty result becomes the literal "Unknown"
//
// SanitizeName is deterministic and has no side effects.
//
// Example:
//
//	SanitizeName("AC/DC")      // Returns "AC_DC"
//	SanitizeName("Trailing.")  // Returns "Trailing"
//	SanitizeName("   ")        // Returns "Unknown"
func SanitizeName(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimRight(value, ".")
	value = invalidChars.ReplaceAllString(value, "_")
	if value == "" {
		return "Unknown"
	}
	return value
}

// cleanAlbumDirName strips trailing parenthesized/bracketed groups
// from an album name taken from a directory, so that
// "Album (Remastered) [FLAC]" reduces to "Album". Groups are removed
// one at a time until none remain.
func cleanAlbumDirName(value string) string {
	cleaned := strings.TrimSpace(value)
	for {
		next := strings.TrimSpace(trailingGroup.ReplaceAllString(cleaned, ""))
		if next == cleaned {
			return cleaned
		}
		cleaned = next
	}
}
