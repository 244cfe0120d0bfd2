package api

import (
	"context"

	"github.com/reellog/reellog/internal/models"
)

// LibraryService answers read queries and bulk deletion over stored movies.
type LibraryService interface {
	GetMovie(ctx context.Context, externalID string) (*models.Movie, error)
	ListMovies(ctx context.Context) ([]models.Movie, error)
	SearchMovies(ctx context.Context, term string) ([]models.Movie, error)
	MoviesByRating(ctx context.Context, threshold float64) ([]models.Movie, error)
	MoviesByYear(ctx context.Context, year int) ([]models.Movie, error)
	DeleteAll(ctx context.Context) error
}

// ImportService triggers scrape runs.
type ImportService interface {
	Run(ctx context.Context, username string, refresh bool) (*models.RunSummary, error)
}

// StatsService computes aggregate snapshots.
type StatsService interface {
	Compute(ctx context.Context) (*models.StatsSnapshot, error)
}
