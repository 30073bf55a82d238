package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"alphafusion/internal/services"
	"alphafusion/internal/technical"
)

// AnalyticsHandler exposes the fundamental, technical and sentiment engines.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
	sentimentService services.SentimentServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer, sentimentService services.SentimentServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService, sentimentService: sentimentService}
}

// GetFundamental handles fundamental scoring.
// @Summary     Fundamental analysis
// @Description Score a company's latest financials (P/E, P/B, ROE, margins, growth, leverage)
// @Tags        analytics
// @Produce     json
// @Param       ticker query string true "Symbol or provider ticker, e.g. TCS or TCS.NS"
// @Success     200 {object} fundamental.Report "Fundamental report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Unknown ticker"
// @Failure     502 {object} ErrorResponse "Market data unavailable"
// @Router      /analytics/fundamental [get]
func (h *AnalyticsHandler) GetFundamental(c *gin.Context) {
	ticker, err := requiredTicker(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.analyticsService.Fundamental(c.Request.Context(), ticker)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetTechnical handles technical analysis.
// @Summary     Technical analysis
// @Description Indicator score, signal, smart stop and chart series for a ticker
// @Tags        analytics
// @Produce     json
// @Param       ticker      query string true  "Symbol or provider ticker"
// @Param       period_days query int    false "Days of closing prices in the history series (default 90, max 365)"
// @Success     200 {object} technical.Report "Technical report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Unknown ticker"
// @Failure     422 {object} ErrorResponse "Not enough price history"
// @Failure     502 {object} ErrorResponse "Market data unavailable"
// @Router      /analytics/technical [get]
func (h *AnalyticsHandler) GetTechnical(c *gin.Context) {
	ticker, err := requiredTicker(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	periodDays, err := queryInt(c, "period_days", technical.DefaultPeriodDays)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.analyticsService.Technical(c.Request.Context(), ticker, periodDays)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetCredibility handles the signal backtest.
// @Summary     Signal credibility
// @Description Replay the technical signal over two years of history and measure how often it called the move
// @Tags        analytics
// @Produce     json
// @Param       ticker  query string true  "Symbol or provider ticker"
// @Param       horizon query int    false "Trading days to look ahead (default 10, max 60)"
// @Param       step    query int    false "Trading days between samples (default 5, max 60)"
// @Success     200 {object} technical.CredibilityReport "Credibility report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Unknown ticker"
// @Failure     422 {object} ErrorResponse "Not enough price history"
// @Failure     502 {object} ErrorResponse "Market data unavailable"
// @Router      /analytics/credibility [get]
func (h *AnalyticsHandler) GetCredibility(c *gin.Context) {
	ticker, err := requiredTicker(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	horizon, err := queryInt(c, "horizon", technical.DefaultHorizon)
	if err != nil {
		respondWithError(c, err)
		return
	}
	step, err := queryInt(c, "step", technical.DefaultStep)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.analyticsService.Credibility(c.Request.Context(), ticker, horizon, step)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetSentiment handles reads from the sentiment cache.
// @Summary     News sentiment
// @Description Cached monthly news sentiment. Without a ticker, every cached company is returned.
// @Tags        analytics
// @Produce     json
// @Param       ticker query string false "Symbol or provider ticker"
// @Success     200 {object} models.SentimentScore "Sentiment for one ticker"
// @Success     200 {object} map[string][]models.SentimentScore "All cached sentiment"
// @Failure     404 {object} ErrorResponse "No sentiment data"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/sentiment [get]
func (h *AnalyticsHandler) GetSentiment(c *gin.Context) {
	if ticker := strings.TrimSpace(c.Query("ticker")); ticker != "" {
		score, err := h.sentimentService.GetSentiment(c.Request.Context(), ticker)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, score)
		return
	}

	scores, err := h.sentimentService.ListSentiment(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sentiment": scores})
}

// RefreshSentiment starts a background sentiment refresh.
// @Summary     Refresh sentiment
// @Description Re-score every catalog company in the background
// @Tags        analytics
// @Produce     json
// @Security    ApiKeyAuth
// @Success     202 {object} map[string]string "Refresh started"
// @Failure     401 {object} ErrorResponse "Invalid or missing API key"
// @Failure     409 {object} ErrorResponse "Refresh already running"
// @Failure     503 {object} ErrorResponse "Job endpoints not configured"
// @Router      /analytics/sentiment/refresh [post]
func (h *AnalyticsHandler) RefreshSentiment(c *gin.Context) {
	if err := h.sentimentService.StartRefresh(c.Request.Context()); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "started"})
}

// GetCombined handles the combined report.
// @Summary     Combined analysis
// @Description Fundamental, technical and sentiment sections fetched concurrently. A failing section is reported under errors.
// @Tags        analytics
// @Produce     json
// @Param       ticker query string true "Symbol or provider ticker"
// @Success     200 {object} services.CombinedReport "Combined report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/combined [get]
func (h *AnalyticsHandler) GetCombined(c *gin.Context) {
	ticker, err := requiredTicker(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.analyticsService.Combined(c.Request.Context(), ticker)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
