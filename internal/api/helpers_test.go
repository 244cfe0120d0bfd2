package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLog() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return log
}

// testRouter wires handlers onto a bare engine without the middleware stack,
// mirroring the production route table.
func testRouter(library LibraryService, importer ImportService, stats StatsService) *gin.Engine {
	log := testLog()
	r := gin.New()
	api := r.Group("/api/v1")

	if library != nil {
		movies := NewMovieHandler(library, log)
		api.GET("/movies", movies.List)
		api.GET("/movies/search", movies.Search)
		api.GET("/movies/by-rating", movies.ByRating)
		api.GET("/movies/by-year", movies.ByYear)
		api.GET("/movies/:id", movies.Get)
		api.DELETE("/movies", movies.DeleteAll)
	}

	if importer != nil {
		api.POST("/import", NewImportHandler(importer, log).Trigger)
	}

	if stats != nil {
		api.GET("/stats", NewStatsHandler(stats, log).Get)
	}

	return r
}

func doRequest(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("response is not JSON: %v\n%s", err, w.Body.String())
		}
	}

	return w, decoded
}

func TestValidatePathID(t *testing.T) {
	if err := validatePathID(""); err == nil {
		t.Error("empty ID must be rejected")
	}
	if err := validatePathID(strings.Repeat("x", 256)); err == nil {
		t.Error("overlong ID must be rejected")
	}
	if err := validatePathID("the-thing"); err != nil {
		t.Errorf("valid ID rejected: %v", err)
	}
}
