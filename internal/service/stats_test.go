package service

import (
	"context"
	"reflect"
	"testing"

	"github.com/reellog/reellog/internal/models"
)

func statsOver(t *testing.T, movies []models.Movie) *models.StatsSnapshot {
	t.Helper()

	store := &mockLibraryStore{
		listMovies: func(context.Context) ([]models.Movie, error) { return movies, nil },
	}

	snap, err := NewStatsService(store, quietLog()).Compute(context.Background())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	return snap
}

func TestStats_EmptyLibrary(t *testing.T) {
	snap := statsOver(t, nil)

	if snap.TotalMovies != 0 {
		t.Errorf("TotalMovies = %d, want 0", snap.TotalMovies)
	}
	if snap.AverageRating != 0 {
		t.Errorf("AverageRating = %v, want 0", snap.AverageRating)
	}
	if snap.TotalRuntimeFormatted != "0m" {
		t.Errorf("TotalRuntimeFormatted = %q, want \"0m\"", snap.TotalRuntimeFormatted)
	}
	if snap.TopMovies == nil || snap.MoviesByYear == nil {
		t.Error("slices must be empty, not nil, for stable JSON output")
	}
}

func TestStats_AverageExcludesUnrated(t *testing.T) {
	movies := []models.Movie{
		{ExternalID: "a", Title: "A", Rating: models.Ptr(5.0)},
		{ExternalID: "b", Title: "B", Rating: models.Ptr(4.0)},
		{ExternalID: "c", Title: "C"}, // unrated, not a zero
		{ExternalID: "d", Title: "D", Rating: models.Ptr(3.0)},
	}

	snap := statsOver(t, movies)

	if snap.AverageRating != 4.0 {
		t.Errorf("AverageRating = %v, want 4.0", snap.AverageRating)
	}
}

func TestStats_AverageRounding(t *testing.T) {
	movies := []models.Movie{
		{ExternalID: "a", Title: "A", Rating: models.Ptr(5.0)},
		{ExternalID: "b", Title: "B", Rating: models.Ptr(4.0)},
		{ExternalID: "c", Title: "C", Rating: models.Ptr(4.0)},
	}

	snap := statsOver(t, movies)

	// 13/3 = 4.333... rounds to two places.
	if snap.AverageRating != 4.33 {
		t.Errorf("AverageRating = %v, want 4.33", snap.AverageRating)
	}
}

func TestStats_RuntimeTotals(t *testing.T) {
	movies := []models.Movie{
		{ExternalID: "a", Title: "A", RuntimeMinutes: 100},
		{ExternalID: "b", Title: "B", RuntimeMinutes: 50},
		{ExternalID: "c", Title: "C"}, // unknown runtime contributes nothing
	}

	snap := statsOver(t, movies)

	if snap.TotalRuntimeMinutes != 150 {
		t.Errorf("TotalRuntimeMinutes = %d, want 150", snap.TotalRuntimeMinutes)
	}
	if snap.TotalRuntimeFormatted != "2h 30m" {
		t.Errorf("TotalRuntimeFormatted = %q, want \"2h 30m\"", snap.TotalRuntimeFormatted)
	}
}

func TestStats_YearHistogramSorted(t *testing.T) {
	movies := []models.Movie{
		{ExternalID: "a", Title: "A", Year: 1999},
		{ExternalID: "b", Title: "B", Year: 1982},
		{ExternalID: "c", Title: "C", Year: 1999},
		{ExternalID: "d", Title: "D"}, // unknown year excluded
	}

	snap := statsOver(t, movies)

	want := []models.YearCount{{Year: 1982, Count: 1}, {Year: 1999, Count: 2}}
	if !reflect.DeepEqual(snap.MoviesByYear, want) {
		t.Errorf("MoviesByYear = %v, want %v", snap.MoviesByYear, want)
	}
}

func TestStats_TopMoviesTieBreaks(t *testing.T) {
	movies := []models.Movie{
		{ExternalID: "c", Title: "Carrie", Rating: models.Ptr(4.0)},
		{ExternalID: "b", Title: "Blow Out", Rating: models.Ptr(4.0), ExternalRating: models.Ptr(4.2)},
		{ExternalID: "a", Title: "Alien", Rating: models.Ptr(5.0)},
		{ExternalID: "u", Title: "Unrated"},
	}

	snap := statsOver(t, movies)

	got := make([]string, len(snap.TopMovies))
	for i, m := range snap.TopMovies {
		got[i] = m.ExternalID
	}

	// Rating desc, then site rating desc, then title; unrated excluded.
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopMovies order = %v, want %v", got, want)
	}
}

func TestStats_TopMoviesCapped(t *testing.T) {
	movies := make([]models.Movie, 15)
	for i := range movies {
		movies[i] = models.Movie{
			ExternalID: string(rune('a' + i)),
			Title:      string(rune('a' + i)),
			Rating:     models.Ptr(3.0),
		}
	}

	snap := statsOver(t, movies)

	if len(snap.TopMovies) != topListSize {
		t.Errorf("len(TopMovies) = %d, want %d", len(snap.TopMovies), topListSize)
	}
}

func TestStats_TopPeople(t *testing.T) {
	movies := []models.Movie{
		{ExternalID: "a", Title: "A", Director: "John Carpenter", Cast: "Kurt Russell, Keith David"},
		{ExternalID: "b", Title: "B", Director: "John Carpenter", Cast: "Kurt Russell"},
		{ExternalID: "c", Title: "C", Director: "Ridley Scott", Cast: "Sigourney Weaver"},
	}

	snap := statsOver(t, movies)

	wantDirectors := []models.PersonCount{
		{Name: "John Carpenter", Movies: 2},
		{Name: "Ridley Scott", Movies: 1},
	}
	if !reflect.DeepEqual(snap.TopDirectors, wantDirectors) {
		t.Errorf("TopDirectors = %v, want %v", snap.TopDirectors, wantDirectors)
	}

	if snap.TopActors[0].Name != "Kurt Russell" || snap.TopActors[0].Movies != 2 {
		t.Errorf("TopActors[0] = %v, want Kurt Russell with 2", snap.TopActors[0])
	}
}

func TestStats_TopPeopleNameTieBreak(t *testing.T) {
	movies := []models.Movie{
		{ExternalID: "a", Title: "A", Director: "Zed Zimmer"},
		{ExternalID: "b", Title: "B", Director: "Ann Archer"},
	}

	snap := statsOver(t, movies)

	if snap.TopDirectors[0].Name != "Ann Archer" {
		t.Errorf("equal counts must order by name, got %v first", snap.TopDirectors[0].Name)
	}
}

func TestStats_Deterministic(t *testing.T) {
	movies := []models.Movie{
		{ExternalID: "a", Title: "A", Year: 1999, Rating: models.Ptr(4.0), Director: "X, Y", Cast: "P, Q, R"},
		{ExternalID: "b", Title: "B", Year: 1982, Rating: models.Ptr(4.0), Director: "Y", Cast: "Q"},
		{ExternalID: "c", Title: "C", Year: 1982, Rating: models.Ptr(2.5), Writers: "W"},
	}

	first := statsOver(t, movies)
	for range 10 {
		if next := statsOver(t, movies); !reflect.DeepEqual(first, next) {
			t.Fatal("repeated computation over identical records diverged")
		}
	}
}
