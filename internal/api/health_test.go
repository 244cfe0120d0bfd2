package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHealth_LivenessWithoutDatabase(t *testing.T) {
	health := NewHealthHandler(nil, testLog(), "test", "")

	r := gin.New()
	r.GET("/api/v1/health", health.Liveness)

	w, body := doRequest(t, r, http.MethodGet, "/api/v1/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v", body["status"])
	}
	if body["version"] != "test" {
		t.Errorf("version = %v", body["version"])
	}
	if body["database"] != "not_configured" {
		t.Errorf("database = %v, want not_configured", body["database"])
	}
	if _, ok := body["uptime_seconds"]; !ok {
		t.Error("uptime_seconds missing")
	}
}
