package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printlab/quote-api/internal/models"
	"github.com/printlab/quote-api/internal/services"
)

// QuoteHandler handles quote form submission endpoints
type QuoteHandler struct {
	service services.QuoteServiceInterface
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(service services.QuoteServiceInterface) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// SubmitForm handles POST /api/submit-form
func (h *QuoteHandler) SubmitForm(c *gin.Context) {
	var req models.SubmitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		attachError(c, err)
		c.JSON(http.StatusBadRequest, models.SubmitQuoteResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	resp, err := h.service.SubmitQuoteForm(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		// No internals leaked: persistence failures surface as a generic message
		attachError(c, err)
		c.JSON(http.StatusInternalServerError, models.SubmitQuoteResponse{
			Success: false,
			Message: "Internal server error. Please try again later.",
		})
		return
	}

	if !resp.Success {
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}
