package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/reellog/reellog/internal/models"
)

// movieColumns is the canonical column list used by every movie query.
const movieColumns = `external_id, title, year, rating, external_rating,
	runtime_minutes, director, "cast", writers, poster_url, source_url, date_added`

// MovieStore handles movie record CRUD and indexed queries.
type MovieStore struct {
	Base
}

// NewMovieStore creates a new MovieStore.
func NewMovieStore(base Base) *MovieStore {
	return &MovieStore{Base: base}
}

// InsertMovie inserts a new movie record. date_added is set by the database
// at insert time and never mutated afterwards. A conflicting external_id
// returns models.ErrDuplicateKey.
func (s *MovieStore) InsertMovie(ctx context.Context, m *models.Movie) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `INSERT INTO movies (` + movieColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())`

	_, err := s.Pool.Exec(ctx, query,
		m.ExternalID, m.Title, m.Year, m.Rating, m.ExternalRating,
		m.RuntimeMinutes, m.Director, m.Cast, m.Writers, m.PosterURL, m.SourceURL,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.ErrDuplicateKey
		}

		return fmt.Errorf("inserting movie %s: %w", m.ExternalID, err)
	}

	return nil
}

// UpdateMovie overwrites all mutable fields of an existing record.
// external_id and date_added are preserved. Returns models.ErrMovieNotFound
// when no record with the given external_id exists.
func (s *MovieStore) UpdateMovie(ctx context.Context, m *models.Movie) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `UPDATE movies SET
			title = $2, year = $3, rating = $4, external_rating = $5,
			runtime_minutes = $6, director = $7, "cast" = $8, writers = $9,
			poster_url = $10, source_url = $11
		WHERE external_id = $1`

	tag, err := s.Pool.Exec(ctx, query,
		m.ExternalID, m.Title, m.Year, m.Rating, m.ExternalRating,
		m.RuntimeMinutes, m.Director, m.Cast, m.Writers, m.PosterURL, m.SourceURL,
	)
	if err != nil {
		return fmt.Errorf("updating movie %s: %w", m.ExternalID, err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrMovieNotFound
	}

	return nil
}

// MovieExists reports whether a record with the given external_id is stored.
func (s *MovieStore) MovieExists(ctx context.Context, externalID string) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var exists bool

	err := s.Pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM movies WHERE external_id = $1)", externalID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking movie existence: %w", err)
	}

	return exists, nil
}

// GetMovie returns a single record by external_id.
func (s *MovieStore) GetMovie(ctx context.Context, externalID string) (*models.Movie, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE external_id = $1", externalID)

	m, err := scanMovie(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrMovieNotFound
		}

		return nil, fmt.Errorf("getting movie %s: %w", externalID, err)
	}

	return m, nil
}

// ListMovies returns every stored record. The ordering (newest first,
// external_id as tie-break) is deterministic for a given store state.
func (s *MovieStore) ListMovies(ctx context.Context) ([]models.Movie, error) {
	return s.queryMovies(ctx,
		"SELECT "+movieColumns+" FROM movies ORDER BY date_added DESC, external_id ASC")
}

// SearchMovies returns records whose title contains term, case-insensitive.
func (s *MovieStore) SearchMovies(ctx context.Context, term string) ([]models.Movie, error) {
	pattern := "%" + escapeLike(term) + "%"

	return s.queryMovies(ctx,
		"SELECT "+movieColumns+` FROM movies WHERE title ILIKE $1 ESCAPE '\'
			ORDER BY title ASC, external_id ASC`, pattern)
}

// MoviesByRating returns records with a personal rating at or above threshold,
// highest rated first, ties broken by title.
func (s *MovieStore) MoviesByRating(ctx context.Context, threshold float64) ([]models.Movie, error) {
	return s.queryMovies(ctx,
		"SELECT "+movieColumns+` FROM movies WHERE rating >= $1
			ORDER BY rating DESC, title ASC, external_id ASC`, threshold)
}

// MoviesByYear returns records released in the given year, newest addition first.
func (s *MovieStore) MoviesByYear(ctx context.Context, year int) ([]models.Movie, error) {
	return s.queryMovies(ctx,
		"SELECT "+movieColumns+` FROM movies WHERE year = $1
			ORDER BY date_added DESC, external_id ASC`, year)
}

// CountMovies returns the total number of stored records.
func (s *MovieStore) CountMovies(ctx context.Context) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int
	if err := s.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM movies").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting movies: %w", err)
	}

	return count, nil
}

// DeleteAll irreversibly clears all stored movie records.
func (s *MovieStore) DeleteAll(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := s.Pool.Exec(ctx, "TRUNCATE movies"); err != nil {
		return fmt.Errorf("clearing movie store: %w", err)
	}

	return nil
}

func (s *MovieStore) queryMovies(ctx context.Context, query string, args ...any) ([]models.Movie, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying movies: %w", err)
	}
	defer rows.Close()

	movies := []models.Movie{}

	for rows.Next() {
		m, err := scanMovie(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning movie row: %w", err)
		}

		movies = append(movies, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating movie rows: %w", err)
	}

	return movies, nil
}

// scanMovie reads one movie row via the provided scan function.
func scanMovie(scan func(dest ...any) error) (*models.Movie, error) {
	var m models.Movie

	err := scan(
		&m.ExternalID, &m.Title, &m.Year, &m.Rating, &m.ExternalRating,
		&m.RuntimeMinutes, &m.Director, &m.Cast, &m.Writers,
		&m.PosterURL, &m.SourceURL, &m.DateAdded,
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// escapeLike escapes LIKE metacharacters in a user-supplied search term.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

	return r.Replace(term)
}
