package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "alphafusion/internal/errors"
	"alphafusion/internal/models"
	"alphafusion/internal/services"
)

// BucketHandler handles the session bucket and its holdings.
type BucketHandler struct {
	bucketService services.BucketServicer
	auditService  services.AuditServicer
}

// NewBucketHandler creates a new BucketHandler.
func NewBucketHandler(bucketService services.BucketServicer, auditService services.AuditServicer) *BucketHandler {
	return &BucketHandler{bucketService: bucketService, auditService: auditService}
}

// BucketResponse is a bucket with its holdings in display order.
type BucketResponse struct {
	Bucket   *models.Bucket   `json:"bucket"`
	Holdings []models.Holding `json:"holdings"`
}

// GetBucket handles listing the session's holdings, newest first.
// @Summary     Get bucket
// @Description Get the session bucket with its holdings, newest first
// @Tags        bucket
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} BucketResponse "Bucket"
// @Failure     401 {object} ErrorResponse "Unauthorized or session expired"
// @Failure     404 {object} ErrorResponse "Bucket not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bucket [get]
func (h *BucketHandler) GetBucket(c *gin.Context) {
	bucketID, err := getBucketID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	bucket, err := h.bucketService.GetBucket(c.Request.Context(), bucketID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	holdings, err := h.bucketService.ListHoldings(c.Request.Context(), bucketID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, BucketResponse{Bucket: bucket, Holdings: holdings})
}

// GetSummary handles the bucket totals.
// @Summary     Get bucket summary
// @Description Total value (₹, Indian grouping) and investable/risky counts
// @Tags        bucket
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.BucketSummary "Summary"
// @Failure     401 {object} ErrorResponse "Unauthorized or session expired"
// @Failure     404 {object} ErrorResponse "Bucket not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bucket/summary [get]
func (h *BucketHandler) GetSummary(c *gin.Context) {
	bucketID, err := getBucketID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.bucketService.Summary(c.Request.Context(), bucketID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// AddHolding handles adding a stock to the bucket. A symbol already in the
// bucket has its price and quantity replaced.
// @Summary     Add a holding
// @Description Validate the form and add the stock, or update it when the symbol is already held
// @Tags        bucket
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body services.HoldingForm true "Holding form"
// @Success     201 {object} services.AddHoldingResult "Holding added"
// @Success     200 {object} services.AddHoldingResult "Existing holding updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized or session expired"
// @Failure     404 {object} ErrorResponse "Bucket not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bucket/holdings [post]
func (h *BucketHandler) AddHolding(c *gin.Context) {
	bucketID, err := getBucketID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var form services.HoldingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid request body"))
		return
	}
	input, err := form.Validate()
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.bucketService.AddHolding(c.Request.Context(), bucketID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), services.AuditEntry{
		BucketID:     bucketID,
		Action:       models.AuditAddHolding,
		ResourceType: "holding",
		ResourceID:   result.Holding.ID,
		IPAddress:    c.ClientIP(),
		Changes: map[string]any{
			"symbol":   input.Symbol,
			"price":    input.Price.String(),
			"quantity": input.Quantity,
			"merged":   result.Merged,
		},
	})

	status := http.StatusCreated
	if result.Merged {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// RemoveHolding handles removing one holding from the bucket.
// @Summary     Remove a holding
// @Description Remove a single holding; the order of the rest is unchanged
// @Tags        bucket
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Holding ID"
// @Success     200 {object} MessageResponse "Holding removed"
// @Failure     401 {object} ErrorResponse "Unauthorized or session expired"
// @Failure     404 {object} ErrorResponse "Holding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bucket/holdings/{id} [delete]
func (h *BucketHandler) RemoveHolding(c *gin.Context) {
	bucketID, err := getBucketID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	holding, err := h.bucketService.RemoveHolding(c.Request.Context(), bucketID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), services.AuditEntry{
		BucketID:     bucketID,
		Action:       models.AuditRemoveHolding,
		ResourceType: "holding",
		ResourceID:   holding.ID,
		IPAddress:    c.ClientIP(),
		Changes:      map[string]any{"symbol": holding.Symbol},
	})

	c.JSON(http.StatusOK, MessageResponse{Message: "Holding removed"})
}
