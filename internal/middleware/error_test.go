package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "alphafusion/internal/errors"
)

func setupErrorRouter(handler gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogging(), ErrorHandler())
	r.GET("/boom", handler)
	return r
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
		wantMsg  string
	}{
		{
			name:     "app error keeps its code",
			err:      apperrors.ErrStockNotFound,
			wantCode: http.StatusNotFound,
			wantBody: "STOCK_NOT_FOUND",
		},
		{
			name:     "wrapped app error hides the cause",
			err:      apperrors.Wrap(apperrors.ErrUpstreamUnavailable, errors.New("dial tcp: timeout")),
			wantCode: http.StatusBadGateway,
			wantBody: "UPSTREAM_UNAVAILABLE",
		},
		{
			name:     "plain error becomes internal",
			err:      errors.New("db is on fire"),
			wantCode: http.StatusInternalServerError,
			wantBody: "INTERNAL_ERROR",
			wantMsg:  "An internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupErrorRouter(func(c *gin.Context) { _ = c.Error(tt.err) })

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", http.NoBody))

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			errObj := parseBody(t, rec)["error"].(map[string]interface{})
			if errObj["code"] != tt.wantBody {
				t.Errorf("expected code %s, got %v", tt.wantBody, errObj["code"])
			}
			if tt.wantMsg != "" && errObj["message"] != tt.wantMsg {
				t.Errorf("expected message %q, got %v", tt.wantMsg, errObj["message"])
			}
		})
	}
}

func TestErrorHandler_LeavesWrittenResponses(t *testing.T) {
	r := setupErrorRouter(func(c *gin.Context) {
		c.JSON(http.StatusTeapot, gin.H{"ok": true})
		_ = c.Error(errors.New("late failure"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", http.NoBody))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rec.Code)
	}
}
