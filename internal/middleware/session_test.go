package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("session-test-secret")

func setupSessionRouter() *gin.Engine {
	r := gin.New()
	r.Use(SessionMiddleware(testSecret))
	r.GET("/bucket", func(c *gin.Context) {
		id, _ := BucketID(c)
		c.JSON(http.StatusOK, gin.H{"bucket_id": id})
	})
	return r
}

func doSessionRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/bucket", http.NoBody)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSessionMiddleware(t *testing.T) {
	valid, err := GenerateSessionToken(testSecret, "bucket-1", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	expired, err := GenerateSessionToken(testSecret, "bucket-1", time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	foreign, err := GenerateSessionToken([]byte("other-secret"), "bucket-1", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{name: "valid_token", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "missing_header", header: "", wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "wrong_scheme", header: "Token " + valid, wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "expired_token", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized, wantCode: "SESSION_EXPIRED"},
		{name: "foreign_signature", header: "Bearer " + foreign, wantStatus: http.StatusUnauthorized, wantCode: "SESSION_EXPIRED"},
		{name: "garbage_token", header: "Bearer abc.def.ghi", wantStatus: http.StatusUnauthorized, wantCode: "SESSION_EXPIRED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doSessionRequest(setupSessionRouter(), tt.header)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}

			body := parseBody(t, rec)
			if tt.wantCode == "" {
				if body["bucket_id"] != "bucket-1" {
					t.Errorf("expected bucket_id bucket-1, got %v", body["bucket_id"])
				}
				return
			}
			errObj, ok := body["error"].(map[string]interface{})
			if !ok {
				t.Fatal("expected error object in response")
			}
			if errObj["code"] != tt.wantCode {
				t.Errorf("error code = %v, want %s", errObj["code"], tt.wantCode)
			}
		})
	}
}

func TestParseSessionToken_RejectsNoneAlgorithm(t *testing.T) {
	claims := &SessionClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "bucket-1",
		Issuer:    sessionIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	if _, err := ParseSessionToken(testSecret, signed); err == nil {
		t.Error("expected unsigned token to be rejected")
	}
}
