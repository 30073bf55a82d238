package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "alphafusion/internal/errors"
	"alphafusion/internal/pagination"
	"alphafusion/internal/services"
)

// StockHandler handles catalog search requests.
type StockHandler struct {
	stockService services.StockServicer
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockService services.StockServicer) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// SearchStocks handles catalog search.
// @Summary     Search stocks
// @Description Case-insensitive substring search on symbol or company name. An empty query lists the catalog.
// @Tags        stocks
// @Produce     json
// @Param       search    query string false "Symbol or name fragment"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Stock] "Paginated stocks"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stocks [get]
func (h *StockHandler) SearchStocks(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.stockService.Search(c.Request.Context(), c.Query("search"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetStock handles fetching a single catalog entry.
// @Summary     Get a stock
// @Description Get a catalog entry by symbol (case-insensitive)
// @Tags        stocks
// @Produce     json
// @Param       symbol path string true "Stock symbol"
// @Success     200 {object} models.Stock "Stock"
// @Failure     404 {object} ErrorResponse "Stock not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stocks/{symbol} [get]
func (h *StockHandler) GetStock(c *gin.Context) {
	stock, err := h.stockService.GetBySymbol(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stock": stock})
}
