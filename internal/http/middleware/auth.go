// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file resolves the caller's identity for every request. Two sources are
// accepted:
//
//   - Authorization: Bearer <JWT>, signed with HS256. The user id is taken
//     from the "user_id" claim, falling back to the registered subject.
//   - X-User-ID header, for internal traffic behind a trusted gateway that
//     already terminated authentication.
//
// The resolved id is stored in the Gin context under the "userID" key.
// Requests with no identity at all pass through unchanged; endpoint handlers
// respond 401 where an identity is required. A present-but-invalid bearer
// token is rejected here with 401, before any handler runs.
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// userIDKey is the Gin context key under which the caller's id is stored.
	userIDKey = "userID"
	// headerUserID carries a pre-authenticated identity from a trusted gateway.
	headerUserID = "X-User-ID"
)

// AuthClaims is the JWT claim set accepted by Auth.
type AuthClaims struct {
	UserID string `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for userID with the given lifetime.
// Used by tests and local tooling; the API itself never issues tokens.
func GenerateToken(secret, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AuthClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Auth resolves the caller's identity from a bearer token or the X-User-ID
// header and stores it in the Gin context.
//
// Behavior:
//   - Valid bearer token: identity set from its claims.
//   - Invalid, expired, or non-HS256 bearer token: 401 with the standard
//     error envelope, request aborted.
//   - No Authorization header: X-User-ID is trusted when present; otherwise
//     the request proceeds anonymously and handlers decide.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if uid := strings.TrimSpace(c.GetHeader(headerUserID)); uid != "" {
				c.Set(userIDKey, uid)
			}
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || strings.TrimSpace(tokenString) == "" {
			abortUnauthorized(c, "invalid Authorization header format")
			return
		}

		claims := &AuthClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		uid := claims.UserID
		if uid == "" {
			uid = claims.Subject
		}
		if uid == "" {
			abortUnauthorized(c, "token carries no user identity")
			return
		}

		c.Set(userIDKey, uid)
		c.Next()
	}
}

// abortUnauthorized writes the standard 401 envelope and stops the chain.
func abortUnauthorized(c *gin.Context, msg string) {
	rid, _ := c.Get(requestIDKey)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": asString(rid),
		"code":       "unauthorized",
		"message":    msg,
	})
}
