package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printlab/quote-api/internal/services"
)

// StatsHandler serves aggregate submission counts
type StatsHandler struct {
	service services.QuoteServiceInterface
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service services.QuoteServiceInterface) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to compute stats", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
