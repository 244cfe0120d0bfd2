package service

import (
	"context"
	"sync"

	"github.com/reellog/reellog/internal/models"
)

// mockStore records calls and returns configured responses. Unset function
// fields fall back to an in-memory map so importer tests can exercise full
// runs without a database.
type mockStore struct {
	mu     sync.Mutex
	calls  []string
	movies map[string]models.Movie

	insertMovie func(ctx context.Context, m *models.Movie) error
	updateMovie func(ctx context.Context, m *models.Movie) error
	movieExists func(ctx context.Context, externalID string) (bool, error)
}

func newMockStore() *mockStore {
	return &mockStore{movies: make(map[string]models.Movie)}
}

func (m *mockStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockStore) callCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, c := range m.calls {
		if c == name {
			n++
		}
	}

	return n
}

func (m *mockStore) InsertMovie(ctx context.Context, mv *models.Movie) error {
	m.record("InsertMovie")

	if m.insertMovie != nil {
		return m.insertMovie(ctx, mv)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.movies[mv.ExternalID]; ok {
		return models.ErrDuplicateKey
	}
	m.movies[mv.ExternalID] = *mv

	return nil
}

func (m *mockStore) UpdateMovie(ctx context.Context, mv *models.Movie) error {
	m.record("UpdateMovie")

	if m.updateMovie != nil {
		return m.updateMovie(ctx, mv)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.movies[mv.ExternalID]; !ok {
		return models.ErrMovieNotFound
	}
	m.movies[mv.ExternalID] = *mv

	return nil
}

func (m *mockStore) MovieExists(ctx context.Context, externalID string) (bool, error) {
	m.record("MovieExists")

	if m.movieExists != nil {
		return m.movieExists(ctx, externalID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.movies[externalID]

	return ok, nil
}

func (m *mockStore) CountMovies(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.movies), nil
}

func (m *mockStore) seed(mv models.Movie) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movies[mv.ExternalID] = mv
}

func (m *mockStore) get(externalID string) (models.Movie, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mv, ok := m.movies[externalID]

	return mv, ok
}

// mockFetcher serves scripted markup per URL and records every request.
type mockFetcher struct {
	mu   sync.Mutex
	urls []string

	fetch func(ctx context.Context, url string) (string, error)
}

func (f *mockFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	f.urls = append(f.urls, url)
	f.mu.Unlock()

	return f.fetch(ctx, url)
}

func (f *mockFetcher) fetched(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.urls {
		if u == url {
			return true
		}
	}

	return false
}

// mockLibraryStore backs LibraryService and StatsService tests.
type mockLibraryStore struct {
	mu    sync.Mutex
	calls []string

	getMovie       func(ctx context.Context, externalID string) (*models.Movie, error)
	listMovies     func(ctx context.Context) ([]models.Movie, error)
	searchMovies   func(ctx context.Context, term string) ([]models.Movie, error)
	moviesByRating func(ctx context.Context, threshold float64) ([]models.Movie, error)
	moviesByYear   func(ctx context.Context, year int) ([]models.Movie, error)
	countMovies    func(ctx context.Context) (int, error)
	deleteAll      func(ctx context.Context) error
}

func (m *mockLibraryStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockLibraryStore) GetMovie(ctx context.Context, externalID string) (*models.Movie, error) {
	m.record("GetMovie")
	return m.getMovie(ctx, externalID)
}

func (m *mockLibraryStore) ListMovies(ctx context.Context) ([]models.Movie, error) {
	m.record("ListMovies")
	return m.listMovies(ctx)
}

func (m *mockLibraryStore) SearchMovies(ctx context.Context, term string) ([]models.Movie, error) {
	m.record("SearchMovies")
	return m.searchMovies(ctx, term)
}

func (m *mockLibraryStore) MoviesByRating(ctx context.Context, threshold float64) ([]models.Movie, error) {
	m.record("MoviesByRating")
	return m.moviesByRating(ctx, threshold)
}

func (m *mockLibraryStore) MoviesByYear(ctx context.Context, year int) ([]models.Movie, error) {
	m.record("MoviesByYear")
	return m.moviesByYear(ctx, year)
}

func (m *mockLibraryStore) CountMovies(ctx context.Context) (int, error) {
	m.record("CountMovies")
	return m.countMovies(ctx)
}

func (m *mockLibraryStore) DeleteAll(ctx context.Context) error {
	m.record("DeleteAll")
	return m.deleteAll(ctx)
}
