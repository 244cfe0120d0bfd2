package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StatsHandler serves the aggregate statistics endpoint.
type StatsHandler struct {
	stats StatsService
	log   *logrus.Logger
}

// NewStatsHandler creates a StatsHandler with the given service and logger.
func NewStatsHandler(stats StatsService, log *logrus.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, log: log}
}

// Get handles GET /api/v1/stats. The snapshot is recomputed on every call.
func (h *StatsHandler) Get(c *gin.Context) {
	snap, err := h.stats.Compute(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("computing stats")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, snap)
}
