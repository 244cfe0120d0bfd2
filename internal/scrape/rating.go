package scrape

import (
	"fmt"
	"strings"
)

// Star glyphs used by the source site's rating markup.
const (
	starGlyph = '★'
	halfGlyph = '½'
)

// ParseStars converts a star-glyph rating string ("★★★½") to a decimal.
// Each full star counts 1.0 and a trailing half symbol counts 0.5.
// The empty string parses to 0 (no rating glyphs present).
func ParseStars(s string) (float64, error) {
	s = strings.TrimSpace(s)

	var rating float64
	halves := 0

	for _, r := range s {
		switch r {
		case starGlyph:
			if halves > 0 {
				return 0, fmt.Errorf("unexpected star after half symbol in %q", s)
			}
			rating += 1.0
		case halfGlyph:
			halves++
			rating += 0.5
		default:
			return 0, fmt.Errorf("unexpected rune %q in rating %q", r, s)
		}
	}

	if halves > 1 || rating > 5.0 {
		return 0, fmt.Errorf("rating %q out of range", s)
	}

	return rating, nil
}

// FormatStars renders a decimal rating back into star glyphs. It is the
// inverse of ParseStars for valid half-step ratings; 0 renders as the
// empty string.
func FormatStars(rating float64) string {
	if rating <= 0 {
		return ""
	}

	if rating > 5.0 {
		rating = 5.0
	}

	full := int(rating)
	half := rating-float64(full) >= 0.5

	var b strings.Builder
	for range full {
		b.WriteRune(starGlyph)
	}

	if half {
		b.WriteRune(halfGlyph)
	}

	return b.String()
}
