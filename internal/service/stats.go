package service

import (
	"context"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/reellog/reellog/internal/models"
)

const topListSize = 10

// StatsStore is the data-access interface StatsService depends on.
type StatsStore interface {
	ListMovies(ctx context.Context) ([]models.Movie, error)
}

// StatsService derives aggregate statistics from the full record set.
// Every call recomputes from scratch; two calls over the same records
// yield bit-identical snapshots.
type StatsService struct {
	store StatsStore
	log   *logrus.Logger
}

// NewStatsService creates a StatsService.
func NewStatsService(store StatsStore, log *logrus.Logger) *StatsService {
	return &StatsService{store: store, log: log}
}

// Compute builds a snapshot over all stored records.
func (s *StatsService) Compute(ctx context.Context) (*models.StatsSnapshot, error) {
	movies, err := s.store.ListMovies(ctx)
	if err != nil {
		return nil, err
	}

	snap := &models.StatsSnapshot{
		TotalMovies:  len(movies),
		MoviesByYear: []models.YearCount{},
		TopMovies:    []models.Movie{},
		TopDirectors: []models.PersonCount{},
		TopActors:    []models.PersonCount{},
		TopWriters:   []models.PersonCount{},
	}
	if len(movies) == 0 {
		snap.TotalRuntimeFormatted = models.FormatRuntime(0)

		return snap, nil
	}

	var (
		ratingSum     float64
		ratingCount   int
		externalSum   float64
		externalCount int
		runtimeTotal  int64
	)

	years := make(map[int]int)
	directors := make(map[string]int)
	actors := make(map[string]int)
	writers := make(map[string]int)

	for i := range movies {
		m := &movies[i]

		if m.Rating != nil {
			ratingSum += *m.Rating
			ratingCount++
		}

		if m.ExternalRating != nil {
			externalSum += *m.ExternalRating
			externalCount++
		}

		runtimeTotal += int64(m.RuntimeMinutes)

		if m.Year > 0 {
			years[m.Year]++
		}

		countPeople(directors, m.Director)
		countPeople(actors, m.Cast)
		countPeople(writers, m.Writers)
	}

	if ratingCount > 0 {
		snap.AverageRating = round2(ratingSum / float64(ratingCount))
	}

	if externalCount > 0 {
		snap.AverageExternalRating = round2(externalSum / float64(externalCount))
	}

	snap.TotalRuntimeMinutes = runtimeTotal
	snap.TotalRuntimeFormatted = models.FormatRuntime(runtimeTotal)
	snap.MoviesByYear = yearHistogram(years)
	snap.TopMovies = topMovies(movies)
	snap.TopDirectors = topPeople(directors)
	snap.TopActors = topPeople(actors)
	snap.TopWriters = topPeople(writers)

	return snap, nil
}

// countPeople increments the tally for each name in a comma-joined credit
// list. A movie contributes at most one count per person.
func countPeople(tally map[string]int, joined string) {
	seen := make(map[string]bool)

	for _, name := range models.SplitPeople(joined) {
		if seen[name] {
			continue
		}
		seen[name] = true
		tally[name]++
	}
}

// round2 rounds to two decimal places so averages are stable across
// platforms and insertion orders.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// yearHistogram flattens the per-year map into buckets ordered by year.
func yearHistogram(years map[int]int) []models.YearCount {
	out := make([]models.YearCount, 0, len(years))
	for year, count := range years {
		out = append(out, models.YearCount{Year: year, Count: count})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })

	return out
}

// topMovies returns the highest-rated records: personal rating first,
// site rating second, title as the final tie-break. Unrated records sort
// below rated ones.
func topMovies(movies []models.Movie) []models.Movie {
	rated := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		if m.Rating != nil {
			rated = append(rated, m)
		}
	}

	sort.Slice(rated, func(i, j int) bool {
		a, b := &rated[i], &rated[j]
		if *a.Rating != *b.Rating {
			return *a.Rating > *b.Rating
		}

		ae, be := deref(a.ExternalRating), deref(b.ExternalRating)
		if ae != be {
			return ae > be
		}

		if a.Title != b.Title {
			return a.Title < b.Title
		}

		return a.ExternalID < b.ExternalID
	})

	if len(rated) > topListSize {
		rated = rated[:topListSize]
	}

	return rated
}

// topPeople returns the most-credited people: count descending, name
// ascending on ties.
func topPeople(tally map[string]int) []models.PersonCount {
	out := make([]models.PersonCount, 0, len(tally))
	for name, count := range tally {
		out = append(out, models.PersonCount{Name: name, Movies: count})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Movies != out[j].Movies {
			return out[i].Movies > out[j].Movies
		}

		return out[i].Name < out[j].Name
	})

	if len(out) > topListSize {
		out = out[:topListSize]
	}

	return out
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}

	return *p
}
