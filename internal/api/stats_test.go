package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/reellog/reellog/internal/models"
)

func TestStats_Get(t *testing.T) {
	stats := &mockStats{
		compute: func(context.Context) (*models.StatsSnapshot, error) {
			return &models.StatsSnapshot{
				TotalMovies:           2,
				AverageRating:         4.25,
				TotalRuntimeMinutes:   250,
				TotalRuntimeFormatted: "4h 10m",
			}, nil
		},
	}

	w, body := doRequest(t, testRouter(nil, nil, stats), http.MethodGet, "/api/v1/stats", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body["total_movies"] != float64(2) {
		t.Errorf("total_movies = %v, want 2", body["total_movies"])
	}
	if body["total_runtime_formatted"] != "4h 10m" {
		t.Errorf("total_runtime_formatted = %v", body["total_runtime_formatted"])
	}
}

func TestStats_GetError(t *testing.T) {
	stats := &mockStats{
		compute: func(context.Context) (*models.StatsSnapshot, error) {
			return nil, errors.New("pool closed")
		},
	}

	w, body := doRequest(t, testRouter(nil, nil, stats), http.MethodGet, "/api/v1/stats", "")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if body["code"] != ErrCodeInternalError {
		t.Errorf("error body = %v", body)
	}
}
