package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// politenessInterval is the minimum delay between consecutive outbound
// requests to the source site. Fixed, not user-tunable.
const politenessInterval = 500 * time.Millisecond

// Fetch limits.
const (
	maxRetries     = 2 // attempts beyond the first for transient failures
	retryBaseDelay = 1 * time.Second
	requestTimeout = 15 * time.Second
	maxBodySize    = 10 << 20 // 10 MB
)

const userAgent = "reellog/1.0 (+https://github.com/reellog/reellog)"

// Gate serializes outbound request dispatch. The production gate enforces
// the politeness interval; tests substitute a zero-delay gate.
type Gate interface {
	Wait(ctx context.Context) error
}

// NewGate returns the production politeness gate shared by all fetches in
// a run.
func NewGate() Gate {
	return rate.NewLimiter(rate.Every(politenessInterval), 1)
}

// Fetcher issues rate-limited HTTP GETs for profile and film pages and
// classifies failures into NotFound, Blocked, and Transient. It keeps no
// cache and has no side effects beyond the network call.
type Fetcher struct {
	client *http.Client
	gate   Gate
	log    *logrus.Logger
}

// NewFetcher creates a Fetcher sharing the given dispatch gate.
func NewFetcher(gate Gate, log *logrus.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: requestTimeout},
		gate:   gate,
		log:    log,
	}
}

// Fetch retrieves the page at url and returns its markup. Transient
// failures are retried with exponential backoff up to the fixed bound;
// NotFound and Blocked are returned immediately.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	var markup string

	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(retryBaseDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		body, err := f.fetchOnce(ctx, url)
		if err != nil {
			if IsTransient(err) {
				f.log.WithError(err).WithField("url", url).Warn("transient fetch failure, will retry")

				return retry.RetryableError(err)
			}

			return err
		}

		markup = body

		return nil
	})
	if err != nil {
		return "", err
	}

	return markup, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (string, error) {
	if err := f.gate.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for politeness gate: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		return "", &TransientError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			return "", &TransientError{Err: fmt.Errorf("reading response body: %w", err)}
		}

		return string(body), nil

	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return "", fmt.Errorf("%s: %w", url, ErrNotFound)

	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("%s returned status %d: %w", url, resp.StatusCode, ErrBlocked)

	case resp.StatusCode >= 500:
		return "", &TransientError{Status: resp.StatusCode, Err: fmt.Errorf("server error from %s", url)}

	default:
		return "", fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
}
