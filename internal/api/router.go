package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/reellog/reellog/internal/dbpool"
	"github.com/reellog/reellog/internal/middleware"
	"github.com/reellog/reellog/internal/ws"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	Pool        *dbpool.Pool
	Hub         *ws.Hub
	Library     LibraryService
	Importer    ImportService
	Stats       StatsService
	CORSOrigins []string
	Version     string
	SourceURL   string
}

// Router-level limits.
const (
	maxBodySize = 1 << 20 // 1 MB; the largest accepted body is a tiny import request
	rateLimit   = 100     // requests per second per IP
	rateBurst   = 200     // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())

	// Metrics endpoint (outside the API group, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Pool, log, deps.Version, deps.SourceURL)
	movies := NewMovieHandler(deps.Library, log)
	imports := NewImportHandler(deps.Importer, log)
	stats := NewStatsHandler(deps.Stats, log)

	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// Import.
	api.POST("/import", imports.Trigger)

	// Movies. Static segments registered before the :id wildcard.
	api.GET("/movies", movies.List)
	api.GET("/movies/search", movies.Search)
	api.GET("/movies/by-rating", movies.ByRating)
	api.GET("/movies/by-year", movies.ByYear)
	api.GET("/movies/:id", movies.Get)
	api.DELETE("/movies", movies.DeleteAll)

	// Stats.
	api.GET("/stats", stats.Get)

	// WebSocket endpoint for import progress.
	api.GET("/ws", wsHandler(ctx, log, deps.Hub, deps.CORSOrigins))
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	return r
}
