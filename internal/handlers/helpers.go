package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "alphafusion/internal/errors"
	"alphafusion/internal/logger"
	"alphafusion/internal/middleware"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// getBucketID extracts the session's bucket ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getBucketID(c *gin.Context) (string, error) {
	bucketID, ok := middleware.BucketID(c)
	if !ok {
		return "", apperrors.ErrUnauthorized
	}
	return bucketID, nil
}

// requiredTicker reads the ticker query parameter.
func requiredTicker(c *gin.Context) (string, error) {
	ticker := strings.TrimSpace(c.Query("ticker"))
	if ticker == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "ticker is required")
	}
	return ticker, nil
}

// queryInt parses an optional integer query parameter, returning def when it
// is absent.
func queryInt(c *gin.Context, param string, def int) (int, error) {
	raw := c.Query(param)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, param+" must be an integer")
	}
	return n, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
				"request_id", middleware.RequestID(c),
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{
			Error: ErrorDetail{Code: appErr.Code, Message: appErr.Message},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"request_id", middleware.RequestID(c),
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    apperrors.ErrInternalServer.Code,
			Message: apperrors.ErrInternalServer.Message,
		},
	})
}
