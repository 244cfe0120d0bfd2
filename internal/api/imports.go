package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/reellog/reellog/internal/models"
	"github.com/reellog/reellog/internal/scrape"
)

// ImportHandler serves the import trigger endpoint.
type ImportHandler struct {
	importer ImportService
	log      *logrus.Logger
}

// NewImportHandler creates an ImportHandler with the given service and logger.
func NewImportHandler(importer ImportService, log *logrus.Logger) *ImportHandler {
	return &ImportHandler{importer: importer, log: log}
}

// importRequest is the JSON body for POST /api/v1/import.
type importRequest struct {
	Username string `json:"username"`
	Refresh  bool   `json:"refresh"`
}

// Trigger handles POST /api/v1/import. The run executes synchronously; the
// response carries the full run summary. Progress is streamed over the
// WebSocket endpoint while the request is in flight.
func (h *ImportHandler) Trigger(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	summary, err := h.importer.Run(c.Request.Context(), req.Username, req.Refresh)
	if err != nil {
		h.respondRunError(c, summary, err)

		return
	}

	c.JSON(http.StatusOK, summary)
}

// respondRunError maps run failures onto HTTP statuses. Aborted runs still
// carry their partial summary so callers can see committed progress.
func (h *ImportHandler) respondRunError(c *gin.Context, summary *models.RunSummary, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidUsername):
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid username")
	case errors.Is(err, models.ErrImportRunning):
		respondError(c, http.StatusConflict, ErrCodeImportRunning, "an import is already running")
	case errors.Is(err, scrape.ErrBlocked):
		h.abortedJSON(c, summary, ErrCodeBlocked, "source site blocked the request")
	default:
		h.log.WithError(err).Error("import run failed")
		h.abortedJSON(c, summary, ErrCodeUpstreamError, "import aborted: "+err.Error())
	}
}

func (h *ImportHandler) abortedJSON(c *gin.Context, summary *models.RunSummary, code, message string) {
	c.JSON(http.StatusBadGateway, gin.H{
		"code":    code,
		"message": message,
		"summary": summary,
	})
}
