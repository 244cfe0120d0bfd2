// Command reellog-server runs the film diary API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/reellog/reellog/internal/api"
	"github.com/reellog/reellog/internal/config"
	"github.com/reellog/reellog/internal/db"
	"github.com/reellog/reellog/internal/db/migrations"
	"github.com/reellog/reellog/internal/dbpool"
	"github.com/reellog/reellog/internal/scrape"
	"github.com/reellog/reellog/internal/service"
	"github.com/reellog/reellog/internal/store"
	"github.com/reellog/reellog/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := run(log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func run(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return err
	}

	hub := ws.NewHub(log)
	go hub.Run(ctx)

	movies := store.NewMovieStore(store.Base{Pool: pool, Log: log})
	fetcher := scrape.NewFetcher(scrape.NewGate(), log)

	deps := &api.RouterDeps{
		Log:         log,
		Pool:        pool,
		Hub:         hub,
		Library:     service.NewLibraryService(movies, log),
		Importer:    service.NewImportService(movies, fetcher, hub, cfg.SourceBaseURL, cfg.ScrapeWorkers, log),
		Stats:       service.NewStatsService(movies, log),
		CORSOrigins: cfg.CORSOrigins,
		Version:     config.Version,
		SourceURL:   cfg.SourceBaseURL,
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(ctx, deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr()).Info("server listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	hub.Shutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("forced shutdown")

		return err
	}

	log.Info("server stopped")

	return nil
}
