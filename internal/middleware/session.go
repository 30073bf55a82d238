package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "alphafusion/internal/errors"
)

const (
	bucketIDKey   = "bucketID"
	sessionIssuer = "alphafusion-api"
)

// SessionClaims are the claims carried by a bucket session token. The
// subject is the bucket ID.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a session token for a bucket that expires at expiresAt.
func GenerateSessionToken(secret []byte, bucketID string, expiresAt time.Time) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    sessionIssuer,
			Subject:   bucketID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseSessionToken validates a session token and returns the bucket ID.
func ParseSessionToken(secret []byte, tokenString string) (string, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithIssuer(sessionIssuer))

	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid session token: %w", err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("session token has no subject")
	}
	return claims.Subject, nil
}

// SessionMiddleware resolves the bearer session token to a bucket ID and
// stores it in the context.
func SessionMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.Split(c.GetHeader("Authorization"), " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortWithAppError(c, apperrors.ErrUnauthorized)
			return
		}

		bucketID, err := ParseSessionToken(secret, parts[1])
		if err != nil {
			abortWithAppError(c, apperrors.ErrSessionExpired)
			return
		}

		c.Set(bucketIDKey, bucketID)
		c.Next()
	}
}

// BucketID returns the bucket ID set by SessionMiddleware.
func BucketID(c *gin.Context) (string, bool) {
	v, ok := c.Get(bucketIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
