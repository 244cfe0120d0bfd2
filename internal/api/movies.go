package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/reellog/reellog/internal/metrics"
	"github.com/reellog/reellog/internal/models"
)

// MovieHandler serves movie query endpoints.
type MovieHandler struct {
	library LibraryService
	log     *logrus.Logger
}

// NewMovieHandler creates a MovieHandler with the given service and logger.
func NewMovieHandler(library LibraryService, log *logrus.Logger) *MovieHandler {
	return &MovieHandler{library: library, log: log}
}

// List handles GET /api/v1/movies.
func (h *MovieHandler) List(c *gin.Context) {
	movies, err := h.library.ListMovies(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("listing movies")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"movies": movies, "count": len(movies)})
}

// Get handles GET /api/v1/movies/:id.
func (h *MovieHandler) Get(c *gin.Context) {
	externalID := c.Param("id")
	if err := validatePathID(externalID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	movie, err := h.library.GetMovie(c.Request.Context(), externalID)
	if err != nil {
		if errors.Is(err, models.ErrMovieNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "movie not found")

			return
		}

		h.log.WithError(err).Error("getting movie")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, movie)
}

// Search handles GET /api/v1/movies/search?q=term.
func (h *MovieHandler) Search(c *gin.Context) {
	movies, err := h.library.SearchMovies(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.log.WithError(err).Error("searching movies")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"movies": movies, "count": len(movies)})
}

// ByRating handles GET /api/v1/movies/by-rating?min=3.5.
func (h *MovieHandler) ByRating(c *gin.Context) {
	threshold, err := strconv.ParseFloat(c.DefaultQuery("min", "0"), 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "min must be a number")

		return
	}

	movies, err := h.library.MoviesByRating(c.Request.Context(), threshold)
	if err != nil {
		if errors.Is(err, models.ErrRatingOutOfRange) {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "min must be between 0 and 5")

			return
		}

		h.log.WithError(err).Error("listing movies by rating")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"movies": movies, "count": len(movies)})
}

// ByYear handles GET /api/v1/movies/by-year?year=1982.
func (h *MovieHandler) ByYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 0 {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "year must be a non-negative integer")

		return
	}

	movies, err := h.library.MoviesByYear(c.Request.Context(), year)
	if err != nil {
		h.log.WithError(err).Error("listing movies by year")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"movies": movies, "count": len(movies)})
}

// DeleteAll handles DELETE /api/v1/movies.
func (h *MovieHandler) DeleteAll(c *gin.Context) {
	if err := h.library.DeleteAll(c.Request.Context()); err != nil {
		h.log.WithError(err).Error("deleting all movies")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	metrics.MovieCount.Set(0)
	h.log.Warn("library wiped via API")

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
