package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/reellog/reellog/internal/models"
)

func seedMovie(id, title string, rating *float64) *models.Movie {
	return &models.Movie{
		ExternalID: id,
		Title:      title,
		Rating:     rating,
		SourceURL:  "https://letterboxd.com/film/" + id + "/",
	}
}

func TestInsertAndGetMovie(t *testing.T) {
	ms := setupMovieStore(t)
	ctx := context.Background()

	in := &models.Movie{
		ExternalID:     "the-thing",
		Title:          "The Thing",
		Year:           1982,
		Rating:         models.Ptr(4.5),
		ExternalRating: models.Ptr(4.1),
		RuntimeMinutes: 109,
		Director:       "John Carpenter",
		Cast:           "Kurt Russell, Wilford Brimley",
		Writers:        "Bill Lancaster",
		PosterURL:      "https://example.com/thing.jpg",
		SourceURL:      "https://letterboxd.com/film/the-thing/",
	}

	if err := ms.InsertMovie(ctx, in); err != nil {
		t.Fatalf("InsertMovie: %v", err)
	}

	got, err := ms.GetMovie(ctx, "the-thing")
	if err != nil {
		t.Fatalf("GetMovie: %v", err)
	}

	if got.Title != "The Thing" || got.Year != 1982 || got.RuntimeMinutes != 109 {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.Rating == nil || *got.Rating != 4.5 {
		t.Errorf("Rating = %v, want 4.5", got.Rating)
	}
	if got.DateAdded.IsZero() {
		t.Error("DateAdded not set on insert")
	}
}

func TestInsertMovie_DuplicateKey(t *testing.T) {
	ms := setupMovieStore(t)
	ctx := context.Background()

	if err := ms.InsertMovie(ctx, seedMovie("dup", "Dup", nil)); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	err := ms.InsertMovie(ctx, seedMovie("dup", "Dup Again", nil))
	if !errors.Is(err, models.ErrDuplicateKey) {
		t.Fatalf("second insert err = %v, want ErrDuplicateKey", err)
	}
}

func TestUpdateMovie_PreservesDateAdded(t *testing.T) {
	ms := setupMovieStore(t)
	ctx := context.Background()

	if err := ms.InsertMovie(ctx, seedMovie("stalker", "Stalker", nil)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	before, err := ms.GetMovie(ctx, "stalker")
	if err != nil {
		t.Fatalf("get before update: %v", err)
	}

	updated := seedMovie("stalker", "Stalker", models.Ptr(5.0))
	updated.Year = 1979
	if err := ms.UpdateMovie(ctx, updated); err != nil {
		t.Fatalf("UpdateMovie: %v", err)
	}

	after, err := ms.GetMovie(ctx, "stalker")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}

	if after.Year != 1979 || after.Rating == nil || *after.Rating != 5.0 {
		t.Errorf("update not applied: %+v", after)
	}
	if !after.DateAdded.Equal(before.DateAdded) {
		t.Errorf("DateAdded mutated by update: %v != %v", after.DateAdded, before.DateAdded)
	}
}

func TestUpdateMovie_NotFound(t *testing.T) {
	ms := setupMovieStore(t)

	err := ms.UpdateMovie(context.Background(), seedMovie("missing", "Missing", nil))
	if !errors.Is(err, models.ErrMovieNotFound) {
		t.Fatalf("err = %v, want ErrMovieNotFound", err)
	}
}

func TestMovieExists(t *testing.T) {
	ms := setupMovieStore(t)
	ctx := context.Background()

	exists, err := ms.MovieExists(ctx, "nothing")
	if err != nil || exists {
		t.Fatalf("MovieExists(nothing) = %v, %v; want false, nil", exists, err)
	}

	if err := ms.InsertMovie(ctx, seedMovie("something", "Something", nil)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	exists, err = ms.MovieExists(ctx, "something")
	if err != nil || !exists {
		t.Fatalf("MovieExists(something) = %v, %v; want true, nil", exists, err)
	}
}

func TestSearchMovies_CaseInsensitive(t *testing.T) {
	ms := setupMovieStore(t)
	ctx := context.Background()

	for id, title := range map[string]string{
		"alien":     "Alien",
		"aliens":    "Aliens",
		"the-thing": "The Thing",
	} {
		if err := ms.InsertMovie(ctx, seedMovie(id, title, nil)); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}

	got, err := ms.SearchMovies(ctx, "ALIEN")
	if err != nil {
		t.Fatalf("SearchMovies: %v", err)
	}

	if len(got) != 2 || got[0].Title != "Alien" || got[1].Title != "Aliens" {
		t.Errorf("SearchMovies(ALIEN) = %v", titles(got))
	}
}

func TestSearchMovies_EscapesWildcards(t *testing.T) {
	ms := setupMovieStore(t)
	ctx := context.Background()

	if err := ms.InsertMovie(ctx, seedMovie("percent", "100% Wolf", nil)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := ms.InsertMovie(ctx, seedMovie("plain", "Wolf", nil)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := ms.SearchMovies(ctx, "100%")
	if err != nil {
		t.Fatalf("SearchMovies: %v", err)
	}

	if len(got) != 1 || got[0].ExternalID != "percent" {
		t.Errorf("SearchMovies(100%%) = %v, want only the literal match", titles(got))
	}
}

func TestMoviesByRating_OrderAndThreshold(t *testing.T) {
	ms := setupMovieStore(t)
	ctx := context.Background()

	seeds := []*models.Movie{
		seedMovie("b", "B", models.Ptr(5.0)),
		seedMovie("a", "A", models.Ptr(5.0)),
		seedMovie("c", "C", models.Ptr(4.5)),
		seedMovie("d", "D", models.Ptr(2.0)),
		seedMovie("unrated", "Unrated", nil),
	}
	for _, m := range seeds {
		if err := ms.InsertMovie(ctx, m); err != nil {
			t.Fatalf("insert %s: %v", m.ExternalID, err)
		}
	}

	got, err := ms.MoviesByRating(ctx, 4.0)
	if err != nil {
		t.Fatalf("MoviesByRating: %v", err)
	}

	want := []string{"A", "B", "C"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", titles(got), want)
	}
	for i := range want {
		if got[i].Title != want[i] {
			t.Errorf("position %d = %q, want %q", i, got[i].Title, want[i])
		}
	}
}

func TestDeleteAll(t *testing.T) {
	ms := setupMovieStore(t)
	ctx := context.Background()

	if err := ms.InsertMovie(ctx, seedMovie("gone", "Gone", nil)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := ms.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}

	all, err := ms.ListMovies(ctx)
	if err != nil {
		t.Fatalf("ListMovies: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("store not empty after DeleteAll: %v", titles(all))
	}

	count, err := ms.CountMovies(ctx)
	if err != nil || count != 0 {
		t.Errorf("CountMovies = %d, %v; want 0, nil", count, err)
	}
}

func titles(ms []models.Movie) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Title
	}

	return out
}
