package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/reellog/reellog/internal/metrics"
	"github.com/reellog/reellog/internal/models"
)

// LibraryStore is the data-access interface LibraryService depends on.
type LibraryStore interface {
	GetMovie(ctx context.Context, externalID string) (*models.Movie, error)
	ListMovies(ctx context.Context) ([]models.Movie, error)
	SearchMovies(ctx context.Context, term string) ([]models.Movie, error)
	MoviesByRating(ctx context.Context, threshold float64) ([]models.Movie, error)
	MoviesByYear(ctx context.Context, year int) ([]models.Movie, error)
	CountMovies(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

// LibraryService answers read queries over the stored film diary.
type LibraryService struct {
	store LibraryStore
	log   *logrus.Logger
}

// NewLibraryService creates a LibraryService.
func NewLibraryService(store LibraryStore, log *logrus.Logger) *LibraryService {
	return &LibraryService{store: store, log: log}
}

// GetMovie returns a single record by external ID.
func (s *LibraryService) GetMovie(ctx context.Context, externalID string) (*models.Movie, error) {
	return s.store.GetMovie(ctx, externalID)
}

// ListMovies returns every stored record, newest first.
func (s *LibraryService) ListMovies(ctx context.Context) ([]models.Movie, error) {
	return s.store.ListMovies(ctx)
}

// SearchMovies returns records whose title contains term, case-insensitively.
// A blank term matches everything.
func (s *LibraryService) SearchMovies(ctx context.Context, term string) ([]models.Movie, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.store.ListMovies(ctx)
	}

	return s.store.SearchMovies(ctx, term)
}

// MoviesByRating returns records rated at or above threshold. Unrated
// records never match.
func (s *LibraryService) MoviesByRating(ctx context.Context, threshold float64) ([]models.Movie, error) {
	if threshold < 0 || threshold > 5 {
		return nil, models.ErrRatingOutOfRange
	}

	return s.store.MoviesByRating(ctx, threshold)
}

// MoviesByYear returns records released in the given year.
func (s *LibraryService) MoviesByYear(ctx context.Context, year int) ([]models.Movie, error) {
	return s.store.MoviesByYear(ctx, year)
}

// DeleteAll wipes the stored diary.
func (s *LibraryService) DeleteAll(ctx context.Context) error {
	if err := s.store.DeleteAll(ctx); err != nil {
		return err
	}

	s.log.Warn("all movies deleted")
	metrics.MovieCount.Set(0)

	return nil
}
