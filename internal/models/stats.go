package models

import "fmt"

// StatsSnapshot holds aggregates derived from the current record set.
// It is recomputed on every request and never cached across store mutations.
//
// All slices carry explicit orderings so repeated calls over an identical
// record set produce bit-identical output.
type StatsSnapshot struct {
	TotalMovies           int           `json:"total_movies"`
	AverageRating         float64       `json:"average_rating"`
	AverageExternalRating float64       `json:"average_external_rating"`
	TotalRuntimeMinutes   int64         `json:"total_runtime_minutes"`
	TotalRuntimeFormatted string        `json:"total_runtime_formatted"`
	MoviesByYear          []YearCount   `json:"movies_by_year"`
	TopMovies             []Movie       `json:"top_movies"`
	TopDirectors          []PersonCount `json:"top_directors"`
	TopActors             []PersonCount `json:"top_actors"`
	TopWriters            []PersonCount `json:"top_writers"`
}

// YearCount is one bucket of the per-year histogram.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// PersonCount pairs a credited person with the number of distinct
// movies they appear in.
type PersonCount struct {
	Name   string `json:"name"`
	Movies int    `json:"movies"`
}

// FormatRuntime renders a minute total as a compact duration like "123d 4h 5m".
// Zero components are omitted except that zero total renders as "0m".
func FormatRuntime(totalMinutes int64) string {
	if totalMinutes <= 0 {
		return "0m"
	}

	days := totalMinutes / (24 * 60)
	hours := (totalMinutes % (24 * 60)) / 60
	minutes := totalMinutes % 60

	out := ""
	if days > 0 {
		out += fmt.Sprintf("%dd ", days)
	}

	if hours > 0 {
		out += fmt.Sprintf("%dh ", hours)
	}

	if minutes > 0 || out == "" {
		out += fmt.Sprintf("%dm", minutes)
	}

	if out[len(out)-1] == ' ' {
		out = out[:len(out)-1]
	}

	return out
}
