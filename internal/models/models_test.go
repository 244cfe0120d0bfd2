package models

import (
	"testing"
	"time"
)

func TestMovieValidate(t *testing.T) {
	nextYear := time.Now().Year() + 1

	tests := []struct {
		name    string
		movie   Movie
		wantErr error
	}{
		{
			name:  "valid full record",
			movie: Movie{ExternalID: "the-thing", Title: "The Thing", Year: 1982, Rating: Ptr(4.5), RuntimeMinutes: 109},
		},
		{
			name:  "valid minimal record",
			movie: Movie{ExternalID: "stalker", Title: "Stalker"},
		},
		{
			name:  "pending release year allowed",
			movie: Movie{ExternalID: "upcoming", Title: "Upcoming", Year: nextYear},
		},
		{
			name:    "missing external id",
			movie:   Movie{Title: "No ID"},
			wantErr: ErrMissingExternalID,
		},
		{
			name:    "missing title",
			movie:   Movie{ExternalID: "no-title"},
			wantErr: ErrMissingTitle,
		},
		{
			name:    "rating above maximum",
			movie:   Movie{ExternalID: "x", Title: "X", Rating: Ptr(5.5)},
			wantErr: ErrRatingOutOfRange,
		},
		{
			name:    "negative external rating",
			movie:   Movie{ExternalID: "x", Title: "X", ExternalRating: Ptr(-0.5)},
			wantErr: ErrRatingOutOfRange,
		},
		{
			name:    "negative runtime",
			movie:   Movie{ExternalID: "x", Title: "X", RuntimeMinutes: -1},
			wantErr: ErrNegativeRuntime,
		},
		{
			name:    "year too far in the future",
			movie:   Movie{ExternalID: "x", Title: "X", Year: nextYear + 1},
			wantErr: ErrYearOutOfRange,
		},
		{
			name:    "three digit year",
			movie:   Movie{ExternalID: "x", Title: "X", Year: 999},
			wantErr: ErrYearOutOfRange,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.movie.Validate()
			if err != tc.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestSplitPeople(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"John Carpenter", []string{"John Carpenter"}},
		{"Joel Coen, Ethan Coen", []string{"Joel Coen", "Ethan Coen"}},
		{"  A ,, B ", []string{"A", "B"}},
	}

	for _, tc := range tests {
		got := SplitPeople(tc.in)
		if len(got) != len(tc.want) {
			t.Errorf("SplitPeople(%q) = %v, want %v", tc.in, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("SplitPeople(%q)[%d] = %q, want %q", tc.in, i, got[i], tc.want[i])
			}
		}
	}
}

func TestFormatRuntime(t *testing.T) {
	tests := []struct {
		minutes int64
		want    string
	}{
		{0, "0m"},
		{-5, "0m"},
		{45, "45m"},
		{60, "1h"},
		{125, "2h 5m"},
		{24 * 60, "1d"},
		{177365, "123d 4h 5m"},
	}

	for _, tc := range tests {
		if got := FormatRuntime(tc.minutes); got != tc.want {
			t.Errorf("FormatRuntime(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}
