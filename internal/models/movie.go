// Package models defines data types for the film diary store.
package models

import (
	"strings"
	"time"
)

// Rating bounds for both personal and site-wide ratings.
const (
	MinRating = 0.0
	MaxRating = 5.0
)

// Movie represents one film entry scraped from a diary profile.
// Director, Cast and Writers hold comma-joined names in credit order.
type Movie struct {
	ExternalID     string    `json:"external_id"`
	Title          string    `json:"title"`
	Year           int       `json:"year,omitempty"`
	Rating         *float64  `json:"rating,omitempty"`
	ExternalRating *float64  `json:"external_rating,omitempty"`
	RuntimeMinutes int       `json:"runtime_minutes,omitempty"`
	Director       string    `json:"director,omitempty"`
	Cast           string    `json:"cast,omitempty"`
	Writers        string    `json:"writers,omitempty"`
	PosterURL      string    `json:"poster_url,omitempty"`
	SourceURL      string    `json:"source_url"`
	DateAdded      time.Time `json:"date_added"`
}

// Validate checks that required fields are present and numeric fields are in range.
func (m *Movie) Validate() error {
	if m.ExternalID == "" {
		return ErrMissingExternalID
	}

	if m.Title == "" {
		return ErrMissingTitle
	}

	if err := validateRating(m.Rating); err != nil {
		return err
	}

	if err := validateRating(m.ExternalRating); err != nil {
		return err
	}

	if m.RuntimeMinutes < 0 {
		return ErrNegativeRuntime
	}

	// Films can carry a release year one past the current year (pending release).
	if m.Year != 0 && (m.Year < 1000 || m.Year > time.Now().Year()+1) {
		return ErrYearOutOfRange
	}

	return nil
}

func validateRating(r *float64) error {
	if r == nil {
		return nil
	}

	if *r < MinRating || *r > MaxRating {
		return ErrRatingOutOfRange
	}

	return nil
}

// SplitPeople splits a comma-joined credit list into individual names,
// preserving credit order and dropping empty entries.
func SplitPeople(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	names := make([]string, 0, len(parts))

	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}

	return names
}

// JoinPeople joins names into the stored comma-separated form.
func JoinPeople(names []string) string {
	return strings.Join(names, ", ")
}

// Ptr returns a pointer to v. Convenience for optional rating fields.
func Ptr[T any](v T) *T {
	return &v
}
