package api

import (
	"context"

	"github.com/reellog/reellog/internal/models"
)

// mockLibrary implements LibraryService with function fields.
type mockLibrary struct {
	getMovie       func(ctx context.Context, externalID string) (*models.Movie, error)
	listMovies     func(ctx context.Context) ([]models.Movie, error)
	searchMovies   func(ctx context.Context, term string) ([]models.Movie, error)
	moviesByRating func(ctx context.Context, threshold float64) ([]models.Movie, error)
	moviesByYear   func(ctx context.Context, year int) ([]models.Movie, error)
	deleteAll      func(ctx context.Context) error
}

func (m *mockLibrary) GetMovie(ctx context.Context, externalID string) (*models.Movie, error) {
	return m.getMovie(ctx, externalID)
}

func (m *mockLibrary) ListMovies(ctx context.Context) ([]models.Movie, error) {
	return m.listMovies(ctx)
}

func (m *mockLibrary) SearchMovies(ctx context.Context, term string) ([]models.Movie, error) {
	return m.searchMovies(ctx, term)
}

func (m *mockLibrary) MoviesByRating(ctx context.Context, threshold float64) ([]models.Movie, error) {
	return m.moviesByRating(ctx, threshold)
}

func (m *mockLibrary) MoviesByYear(ctx context.Context, year int) ([]models.Movie, error) {
	return m.moviesByYear(ctx, year)
}

func (m *mockLibrary) DeleteAll(ctx context.Context) error {
	return m.deleteAll(ctx)
}

// mockImporter implements ImportService with a function field.
type mockImporter struct {
	run func(ctx context.Context, username string, refresh bool) (*models.RunSummary, error)
}

func (m *mockImporter) Run(ctx context.Context, username string, refresh bool) (*models.RunSummary, error) {
	return m.run(ctx, username, refresh)
}

// mockStats implements StatsService with a function field.
type mockStats struct {
	compute func(ctx context.Context) (*models.StatsSnapshot, error)
}

func (m *mockStats) Compute(ctx context.Context) (*models.StatsSnapshot, error) {
	return m.compute(ctx)
}
