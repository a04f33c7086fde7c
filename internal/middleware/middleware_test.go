package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"assessment-backend/internal/services"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(auth *services.AuthService) *gin.Engine {
	r := gin.New()
	r.GET("/me", JWTAuth(auth), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint(UserIDKey)})
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	auth := services.NewAuthService(nil, "test-secret")
	token, err := auth.GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	foreign, err := services.NewAuthService(nil, "other-secret").GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
		{"foreign secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	r := newAuthRouter(auth)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
			if tt.want == http.StatusOK && w.Body.String() != `{"user_id":42}` {
				t.Fatalf("unexpected body %s", w.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(RequestIDHeader)
	if generated == "" || w.Body.String() != generated {
		t.Fatalf("expected a generated id echoed in header and context, got header %q body %q", generated, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" || w.Body.String() != "abc-123" {
		t.Fatalf("caller id not kept: header %q body %q", got, w.Body.String())
	}
}
