// Package service provides business logic between API handlers and data stores.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/reellog/reellog/internal/metrics"
	"github.com/reellog/reellog/internal/models"
	"github.com/reellog/reellog/internal/scrape"
	"github.com/reellog/reellog/internal/ws"
)

// Fetcher retrieves a page of markup from the source site.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// ImportStore is the data-access interface the importer depends on.
type ImportStore interface {
	InsertMovie(ctx context.Context, m *models.Movie) error
	UpdateMovie(ctx context.Context, m *models.Movie) error
	MovieExists(ctx context.Context, externalID string) (bool, error)
	CountMovies(ctx context.Context) (int, error)
}

// EventPublisher broadcasts progress events to connected clients.
type EventPublisher interface {
	BroadcastEvent(eventType string, data json.RawMessage)
}

// usernamePattern matches the slugs the source site allows in profile URLs.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{1,64}$`)

// ImportService walks a profile's paginated film diary and reconciles every
// entry into the store. At most one run is active at a time.
type ImportService struct {
	store   ImportStore
	fetcher Fetcher
	events  EventPublisher
	log     *logrus.Logger
	baseURL string
	workers int

	mu sync.Mutex // held for the duration of a run
}

// NewImportService creates an ImportService. events may be nil.
func NewImportService(store ImportStore, fetcher Fetcher, events EventPublisher, baseURL string, workers int, log *logrus.Logger) *ImportService {
	if workers < 1 {
		workers = 1
	}

	return &ImportService{
		store:   store,
		fetcher: fetcher,
		events:  events,
		log:     log,
		baseURL: baseURL,
		workers: workers,
	}
}

// runTracker accumulates per-entry outcomes across detail workers.
type runTracker struct {
	mu       sync.Mutex
	inserted int
	updated  int
	skipped  int
	errored  int
}

func (t *runTracker) add(a Action) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch a {
	case ActionInsert:
		t.inserted++
	case ActionUpdate:
		t.updated++
	case ActionSkip:
		t.skipped++
	}
}

func (t *runTracker) fail() {
	t.mu.Lock()
	t.errored++
	t.mu.Unlock()
}

// Run imports the diary of username. With refresh, entries already in the
// store are re-fetched and overwritten; otherwise they are skipped without a
// detail-page fetch. The returned summary is non-nil whenever a run actually
// started, including aborted runs.
func (s *ImportService) Run(ctx context.Context, username string, refresh bool) (*models.RunSummary, error) {
	if !usernamePattern.MatchString(username) {
		return nil, models.ErrInvalidUsername
	}

	if !s.mu.TryLock() {
		return nil, models.ErrImportRunning
	}
	defer s.mu.Unlock()

	metrics.ImportRunning.Set(1)
	defer metrics.ImportRunning.Set(0)

	summary := &models.RunSummary{
		RunID:     uuid.New().String(),
		Username:  username,
		Refresh:   refresh,
		StartedAt: time.Now().UTC(),
	}

	log := s.log.WithFields(logrus.Fields{"run_id": summary.RunID, "username": username, "refresh": refresh})
	log.Info("import run started")
	s.publish(ws.EventRunStarted, summary)

	tracker := &runTracker{}
	runErr := s.walkPages(ctx, log, username, refresh, summary, tracker)

	summary.Inserted = tracker.inserted
	summary.Updated = tracker.updated
	summary.Skipped = tracker.skipped
	summary.Errored = tracker.errored
	summary.FinishedAt = time.Now().UTC()

	if runErr != nil {
		summary.Aborted = true
		summary.Error = runErr.Error()
		log.WithError(runErr).Warn("import run aborted")
	} else {
		log.WithFields(logrus.Fields{
			"pages":    summary.Pages,
			"inserted": summary.Inserted,
			"updated":  summary.Updated,
			"skipped":  summary.Skipped,
			"errored":  summary.Errored,
		}).Info("import run finished")
	}

	s.refreshMovieCount(ctx)
	s.publish(ws.EventRunFinished, summary)

	if runErr != nil {
		return summary, runErr
	}

	return summary, nil
}

// walkPages advances through listing pages until NotFound, an empty page, or
// a fatal fetch error. Cancellation is honored between pages; entries already
// dispatched run to completion.
func (s *ImportService) walkPages(ctx context.Context, log *logrus.Entry, username string, refresh bool, summary *models.RunSummary, tracker *runTracker) error {
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("import cancelled: %w", err)
		}

		start := time.Now()

		markup, err := s.fetcher.Fetch(ctx, scrape.ListingURL(s.baseURL, username, page))
		if err != nil {
			if errors.Is(err, scrape.ErrNotFound) {
				// End of pagination. An unknown user looks the same as a
				// user with zero pages; either way the run completes.
				return nil
			}

			metrics.PagesFetched.WithLabelValues("error").Inc()

			return fmt.Errorf("fetch listing page %d: %w", page, err)
		}

		metrics.PagesFetched.WithLabelValues("listing").Inc()
		metrics.FetchDuration.Observe(time.Since(start).Seconds())

		entries, err := scrape.ParseListing(markup)
		if err != nil {
			// A listing page without its poster grid gives us neither
			// entries nor a way forward. Count it and stop.
			tracker.fail()
			log.WithError(err).WithField("page", page).Warn("malformed listing page, stopping pagination")

			return nil
		}

		summary.Pages++

		if len(entries) == 0 {
			return nil
		}

		s.publish(ws.EventPageFetched, map[string]any{
			"run_id":  summary.RunID,
			"page":    page,
			"entries": len(entries),
		})

		if err := s.importEntries(ctx, log, entries, refresh, summary.RunID, tracker); err != nil {
			return err
		}
	}
}

// importEntries reconciles one listing page's entries, fetching detail pages
// with a bounded worker group. The shared politeness gate inside the fetcher
// still spaces the actual requests.
func (s *ImportService) importEntries(ctx context.Context, log *logrus.Entry, entries []scrape.ListingEntry, refresh bool, runID string, tracker *runTracker) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, entry := range entries {
		g.Go(func() error {
			return s.importEntry(gctx, log, entry, refresh, runID, tracker)
		})
	}

	return g.Wait()
}

// importEntry handles a single diary entry end to end. Entry-level failures
// (malformed detail page, storage error) are absorbed into the error count;
// only fatal fetch errors propagate and abort the run.
func (s *ImportService) importEntry(ctx context.Context, log *logrus.Entry, entry scrape.ListingEntry, refresh bool, runID string, tracker *runTracker) error {
	exists, err := s.store.MovieExists(ctx, entry.ExternalID)
	if err != nil {
		tracker.fail()
		log.WithError(err).WithField("external_id", entry.ExternalID).Error("existence check failed")

		return nil
	}

	action := Reconcile(exists, refresh)
	if action == ActionSkip {
		tracker.add(ActionSkip)
		metrics.RecordsImported.WithLabelValues("skipped").Inc()

		return nil
	}

	movie, err := s.fetchMovie(ctx, entry)
	if err != nil {
		if scrape.IsMalformed(err) {
			tracker.fail()
			metrics.RecordsImported.WithLabelValues("errored").Inc()
			log.WithError(err).WithField("external_id", entry.ExternalID).Warn("skipping malformed entry")

			return nil
		}

		return fmt.Errorf("fetch detail for %s: %w", entry.ExternalID, err)
	}

	if err := s.storeMovie(ctx, movie, action); err != nil {
		tracker.fail()
		metrics.RecordsImported.WithLabelValues("errored").Inc()
		log.WithError(err).WithField("external_id", entry.ExternalID).Error("store write failed")

		return nil
	}

	tracker.add(action)
	metrics.RecordsImported.WithLabelValues(action.outcome()).Inc()
	s.publish(ws.EventMovieImported, map[string]any{
		"run_id":      runID,
		"external_id": movie.ExternalID,
		"title":       movie.Title,
		"action":      action.String(),
	})

	return nil
}

// fetchMovie retrieves and parses the detail page for an entry, merging it
// with the listing-level fields into a full record.
func (s *ImportService) fetchMovie(ctx context.Context, entry scrape.ListingEntry) (*models.Movie, error) {
	start := time.Now()

	markup, err := s.fetcher.Fetch(ctx, scrape.DetailURL(s.baseURL, entry.FilmLink))
	if err != nil {
		return nil, err
	}

	metrics.PagesFetched.WithLabelValues("detail").Inc()
	metrics.FetchDuration.Observe(time.Since(start).Seconds())

	detail, err := scrape.ParseDetail(markup)
	if err != nil {
		return nil, err
	}

	return &models.Movie{
		ExternalID:     entry.ExternalID,
		Title:          entry.Title,
		Year:           detail.Year,
		Rating:         entry.Rating,
		ExternalRating: detail.ExternalRating,
		RuntimeMinutes: detail.RuntimeMinutes,
		Director:       detail.Director,
		Cast:           detail.Cast,
		Writers:        detail.Writers,
		PosterURL:      detail.PosterURL,
		SourceURL:      scrape.DetailURL(s.baseURL, entry.FilmLink),
	}, nil
}

// storeMovie performs the reconciled write. An insert that loses a race to a
// concurrent worker degrades to a skip.
func (s *ImportService) storeMovie(ctx context.Context, movie *models.Movie, action Action) error {
	if err := movie.Validate(); err != nil {
		return err
	}

	if action == ActionUpdate {
		return s.store.UpdateMovie(ctx, movie)
	}

	err := s.store.InsertMovie(ctx, movie)
	if errors.Is(err, models.ErrDuplicateKey) {
		return nil
	}

	return err
}

func (s *ImportService) refreshMovieCount(ctx context.Context) {
	count, err := s.store.CountMovies(ctx)
	if err != nil {
		return
	}
	metrics.MovieCount.Set(float64(count))
}

// publish marshals v and broadcasts it, dropping the event if no publisher
// is configured.
func (s *ImportService) publish(eventType string, v any) {
	if s.events == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		return
	}

	s.events.BroadcastEvent(eventType, data)
}
