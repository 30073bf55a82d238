package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "alphafusion/internal/errors"
	"alphafusion/internal/middleware"
	"alphafusion/internal/models"
	"alphafusion/internal/services"
)

// SessionHandler hands out anonymous bucket sessions.
type SessionHandler struct {
	bucketService services.BucketServicer
	auditService  services.AuditServicer
	secret        []byte
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(bucketService services.BucketServicer, auditService services.AuditServicer, secret []byte) *SessionHandler {
	return &SessionHandler{bucketService: bucketService, auditService: auditService, secret: secret}
}

// SessionResponse represents a newly created session.
type SessionResponse struct {
	Token     string    `json:"token"`
	BucketID  string    `json:"bucket_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateSession creates an empty bucket and returns its session token.
// @Summary     Create a session
// @Description Create an empty bucket and return a bearer token scoped to it
// @Tags        sessions
// @Produce     json
// @Success     201 {object} SessionResponse "Session created"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	bucket, err := h.bucketService.CreateBucket(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateSessionToken(h.secret, bucket.ID, bucket.ExpiresAt)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(c.Request.Context(), services.AuditEntry{
		BucketID:     bucket.ID,
		Action:       models.AuditCreateSession,
		ResourceType: "bucket",
		ResourceID:   bucket.ID,
		IPAddress:    c.ClientIP(),
	})

	c.JSON(http.StatusCreated, SessionResponse{
		Token:     token,
		BucketID:  bucket.ID,
		ExpiresAt: bucket.ExpiresAt,
	})
}
