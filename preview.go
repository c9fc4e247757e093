package pagesense

import (
	"context"
	"strings"
)

// MaxPreviewLength is the maximum number of characters in a text preview.
const MaxPreviewLength = 200

// Previewer derives a bounded plain-text preview of the page at a URL.
type Previewer interface {
	// Preview fetches url and returns at most MaxPreviewLength characters of
	// its main text. Returns ENOCONTENT if the page has no text.
	Preview(ctx context.Context, url string) (string, error)
}

// Truncate returns the first n characters of s.
// Characters are runes, so multi-byte text is never split mid-character.
func Truncate(s string, n int) string {
	if n < 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// CollapseWhitespace trims s and replaces every run of whitespace,
// including newlines, with a single space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
