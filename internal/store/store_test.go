package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/reellog/reellog/internal/dbpool"
	"github.com/reellog/reellog/internal/store"
)

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var sharedEnv *testEnv

func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if sharedEnv != nil {
		return sharedEnv
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := dbpool.NewPool(ctx, dbURL)
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	sharedEnv = &testEnv{
		pool: pool,
		log:  log,
	}

	return sharedEnv
}

// setupMovieStore returns a MovieStore against an emptied movies table.
func setupMovieStore(t *testing.T) *store.MovieStore {
	t.Helper()

	env := getTestEnv(t)
	ms := store.NewMovieStore(store.Base{Pool: env.pool, Log: env.log})

	if err := ms.DeleteAll(context.Background()); err != nil {
		t.Fatalf("clearing movies table: %v", err)
	}

	return ms
}
