package client

import "time"

// Movie mirrors the server's movie record.
type Movie struct {
	ExternalID     string    `json:"external_id"`
	Title          string    `json:"title"`
	Year           int       `json:"year"`
	Rating         *float64  `json:"rating"`
	ExternalRating *float64  `json:"external_rating"`
	RuntimeMinutes int       `json:"runtime_minutes"`
	Director       string    `json:"director"`
	Cast           string    `json:"cast"`
	Writers        string    `json:"writers"`
	PosterURL      string    `json:"poster_url"`
	SourceURL      string    `json:"source_url"`
	DateAdded      time.Time `json:"date_added"`
}

// RunSummary reports the outcome of one import run.
type RunSummary struct {
	RunID      string    `json:"run_id"`
	Username   string    `json:"username"`
	Refresh    bool      `json:"refresh"`
	Pages      int       `json:"pages"`
	Inserted   int       `json:"inserted"`
	Updated    int       `json:"updated"`
	Skipped    int       `json:"skipped"`
	Errored    int       `json:"errored"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Aborted    bool      `json:"aborted"`
	Error      string    `json:"error,omitempty"`
}

// YearCount is one bucket of the per-year histogram.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// PersonCount pairs a credited person with their movie count.
type PersonCount struct {
	Name   string `json:"name"`
	Movies int    `json:"movies"`
}

// StatsSnapshot holds aggregate film diary statistics.
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

// HealthResponse is the liveness check payload.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}
