package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "alphafusion/internal/errors"
	"alphafusion/internal/scoring"
	"alphafusion/internal/services"
)

// TrendHandler handles the trending stocks list.
type TrendHandler struct {
	trendService services.TrendServicer
}

// NewTrendHandler creates a new TrendHandler.
func NewTrendHandler(trendService services.TrendServicer) *TrendHandler {
	return &TrendHandler{trendService: trendService}
}

// TrendQuery holds the optional trend filter.
type TrendQuery struct {
	Recommendation string `form:"recommendation" binding:"omitempty,recommendation"`
}

// GetTrends handles listing trending stocks.
// @Summary     Get trends
// @Description Trending stocks ordered by trend score, each with a buy/hold/sell recommendation
// @Tags        trends
// @Produce     json
// @Param       recommendation query string false "Filter by recommendation (buy/hold/sell)"
// @Success     200 {object} map[string][]models.TrendRecord "Trends"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /trends [get]
func (h *TrendHandler) GetTrends(c *gin.Context) {
	var query TrendQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "recommendation must be 'buy', 'hold' or 'sell'"))
		return
	}

	var filter *scoring.Recommendation
	if rec, ok := scoring.ParseRecommendation(query.Recommendation); ok {
		filter = &rec
	}

	trends, err := h.trendService.ListTrends(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trends": trends})
}
