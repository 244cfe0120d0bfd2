// Package store provides data access for the movie record store.
//
// The store owns the persisted shape of a movie record and the dedup key
// invariant (external_id is unique). Writes are atomic per record: a record
// is either fully written or not written at all.
package store

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/reellog/reellog/internal/dbpool"
)

const defaultQueryTimeout = 30 * time.Second

// Base contains shared dependencies for stores.
type Base struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}
