package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alphafusion/internal/services"
)

// MarketHandler serves the index strip and the live quote feed.
type MarketHandler struct {
	stockService services.StockServicer
	live         http.Handler
}

// NewMarketHandler creates a new MarketHandler. live upgrades requests to
// the websocket quote feed.
func NewMarketHandler(stockService services.StockServicer, live http.Handler) *MarketHandler {
	return &MarketHandler{stockService: stockService, live: live}
}

// GetIndices handles listing the market indices.
// @Summary     Get market indices
// @Description Latest quotes for NIFTY 50, SENSEX and NIFTY BANK
// @Tags        market
// @Produce     json
// @Success     200 {object} map[string][]models.Stock "Indices"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /market/indices [get]
func (h *MarketHandler) GetIndices(c *gin.Context) {
	indices, err := h.stockService.Indices(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"indices": indices})
}

// Live upgrades the request to a websocket that receives every quote tick.
// @Summary     Live quotes
// @Description Websocket stream of {"type":"quotes","data":[...]} messages, one per tick
// @Tags        market
// @Success     101 "Switching protocols"
// @Failure     403 "Origin not allowed"
// @Router      /market/live [get]
func (h *MarketHandler) Live(c *gin.Context) {
	h.live.ServeHTTP(c.Writer, c.Request)
}
