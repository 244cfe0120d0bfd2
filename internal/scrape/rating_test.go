package scrape

import (
	"strings"
	"testing"
)

func TestParseStars_RoundTrip(t *testing.T) {
	// Every representable rating: g full stars plus optional half.
	for g := 0; g <= 5; g++ {
		for h := 0; h <= 1; h++ {
			if g == 5 && h == 1 {
				continue // 5.5 is not representable
			}

			glyphs := strings.Repeat("★", g)
			if h == 1 {
				glyphs += "½"
			}

			want := float64(g) + 0.5*float64(h)

			got, err := ParseStars(glyphs)
			if err != nil {
				t.Fatalf("ParseStars(%q): %v", glyphs, err)
			}
			if got != want {
				t.Errorf("ParseStars(%q) = %v, want %v", glyphs, got, want)
			}

			if back := FormatStars(got); back != glyphs {
				t.Errorf("FormatStars(%v) = %q, want %q", got, back, glyphs)
			}
		}
	}
}

func TestParseStars_Invalid(t *testing.T) {
	tests := []string{
		"★★★★★½", // above maximum
		"½½",     // repeated half
		"½★",     // half before star
		"4.5",    // numeric text
		"**",     // wrong glyphs
	}

	for _, in := range tests {
		if _, err := ParseStars(in); err == nil {
			t.Errorf("ParseStars(%q) succeeded, want error", in)
		}
	}
}

func TestParseStars_Whitespace(t *testing.T) {
	got, err := ParseStars("  ★★½ ")
	if err != nil || got != 2.5 {
		t.Errorf("ParseStars with whitespace = %v, %v; want 2.5, nil", got, err)
	}
}
