package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const authTestSecret = "test-signing-secret"

// authRouter builds a minimal engine with Auth installed and a probe
// endpoint that echoes whatever identity the middleware resolved.
func authRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(secret))
	r.GET("/whoami", func(c *gin.Context) {
		uid, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"user_id": uid})
	})
	return r
}

func serveAuth(t *testing.T, r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func whoami(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v (body=%s)", err, w.Body.String())
	}
	return body.UserID
}

func TestAuth_ValidBearerToken(t *testing.T) {
	r := authRouter(authTestSecret)

	tok, err := GenerateToken(authTestSecret, "user-42", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := serveAuth(t, r, map[string]string{"Authorization": "Bearer " + tok})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body=%s)", w.Code, w.Body.String())
	}
	if got := whoami(t, w); got != "user-42" {
		t.Fatalf("user id = %q, want %q", got, "user-42")
	}
}

func TestAuth_SubjectFallback(t *testing.T) {
	// A token without the user_id claim still identifies the caller via sub.
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "sub-only",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(authTestSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	r := authRouter(authTestSecret)
	w := serveAuth(t, r, map[string]string{"Authorization": "Bearer " + tok})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := whoami(t, w); got != "sub-only" {
		t.Fatalf("user id = %q, want %q", got, "sub-only")
	}
}

func TestAuth_RejectedTokens(t *testing.T) {
	r := authRouter(authTestSecret)

	expired, err := GenerateToken(authTestSecret, "user-42", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	wrongSecret, err := GenerateToken("other-secret", "user-42", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	// RS256 header with garbage payload exercises the algorithm check.
	rsHeader := "eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9.e30.sig"

	noIdentity := func() string {
		now := time.Now()
		claims := jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(authTestSecret))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return tok
	}()

	cases := []struct {
		name   string
		header string
	}{
		{"expired token", "Bearer " + expired},
		{"wrong secret", "Bearer " + wrongSecret},
		{"non-HMAC algorithm", "Bearer " + rsHeader},
		{"garbage token", "Bearer not.a.jwt"},
		{"missing Bearer prefix", expired},
		{"empty token after prefix", "Bearer   "},
		{"no user identity in claims", "Bearer " + noIdentity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serveAuth(t, r, map[string]string{"Authorization": tc.header})
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401 (body=%s)", w.Code, w.Body.String())
			}
			var env struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if env.Code != "unauthorized" {
				t.Fatalf("code = %q, want %q", env.Code, "unauthorized")
			}
			if env.Message == "" {
				t.Fatal("expected a non-empty message")
			}
		})
	}
}

func TestAuth_TrustedHeaderFallback(t *testing.T) {
	r := authRouter(authTestSecret)

	t.Run("X-User-ID accepted without Authorization", func(t *testing.T) {
		w := serveAuth(t, r, map[string]string{"X-User-ID": "  gw-user  "})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if got := whoami(t, w); got != "gw-user" {
			t.Fatalf("user id = %q, want trimmed %q", got, "gw-user")
		}
	})

	t.Run("bearer token wins over X-User-ID", func(t *testing.T) {
		tok, err := GenerateToken(authTestSecret, "token-user", time.Hour)
		if err != nil {
			t.Fatalf("GenerateToken: %v", err)
		}
		w := serveAuth(t, r, map[string]string{
			"Authorization": "Bearer " + tok,
			"X-User-ID":     "header-user",
		})
		if got := whoami(t, w); got != "token-user" {
			t.Fatalf("user id = %q, want %q", got, "token-user")
		}
	})

	t.Run("anonymous request passes through", func(t *testing.T) {
		w := serveAuth(t, r, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if got := whoami(t, w); got != "" {
			t.Fatalf("user id = %q, want empty", got)
		}
	})
}
