package extractor

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var illFormed = runes.ReplaceIllFormed()

// Sanitize replaces (not drops) byte sequences that cannot round-trip through
// UTF-8, so records always serialize cleanly.
func Sanitize(text string) string {
	out, _, err := transform.String(illFormed, text)
	if err != nil {
		return text
	}
	return out
}
