package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"assessment-backend/internal/apperr"
	"assessment-backend/internal/services"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperr.NotFound("assessment"), http.StatusNotFound},
		{apperr.Validation("score above max_score"), http.StatusUnprocessableEntity},
		{apperr.Conflict("duplicate"), http.StatusConflict},
		{apperr.Referenced("question"), http.StatusConflict},
		{fmt.Errorf("login: %w", services.ErrInvalidCredentials), http.StatusUnauthorized},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusOf(tt.err); got != tt.want {
			t.Errorf("statusOf(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestRespondErrorHidesInternalErrors(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, errors.New("pq: password authentication failed"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if w.Body.String() != `{"error":"internal server error"}` {
		t.Fatalf("internal detail leaked: %s", w.Body.String())
	}
	if len(c.Errors) != 1 {
		t.Fatalf("expected the error to be recorded on the context, got %d", len(c.Errors))
	}
}

func TestParseID(t *testing.T) {
	for _, raw := range []string{"0", "-1", "abc", ""} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: raw}}
		if _, ok := parseID(c, "id", "question"); ok {
			t.Fatalf("%q should be rejected", raw)
		}
		if w.Code != http.StatusBadRequest || w.Body.String() != `{"error":"invalid question id"}` {
			t.Fatalf("%q: unexpected response %d %s", raw, w.Code, w.Body.String())
		}
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "17"}}
	if id, ok := parseID(c, "id", "question"); !ok || id != 17 {
		t.Fatalf("expected 17, got %d (ok=%v)", id, ok)
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		query  string
		ok     bool
		expect services.Page
	}{
		{"", true, services.Page{}},
		{"?skip=20&limit=10", true, services.Page{Skip: 20, Limit: 10}},
		{"?skip=-1", false, services.Page{}},
		{"?limit=501", false, services.Page{}},
		{"?limit=ten", false, services.Page{}},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/items"+tt.query, nil)

		page, ok := parsePage(c)
		if ok != tt.ok {
			t.Fatalf("%q: ok = %v, want %v", tt.query, ok, tt.ok)
		}
		if ok && page != tt.expect {
			t.Fatalf("%q: page = %+v, want %+v", tt.query, page, tt.expect)
		}
		if !ok && w.Code != http.StatusBadRequest {
			t.Fatalf("%q: expected 400, got %d", tt.query, w.Code)
		}
	}
}

func TestOptionalQueryID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/users", nil)
	if id, ok := optionalQueryID(c, "group_id"); !ok || id != 0 {
		t.Fatalf("absent filter should be 0, got %d (ok=%v)", id, ok)
	}

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/users?group_id=3", nil)
	if id, ok := optionalQueryID(c, "group_id"); !ok || id != 3 {
		t.Fatalf("expected 3, got %d (ok=%v)", id, ok)
	}

	w := httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/users?group_id=0", nil)
	if _, ok := optionalQueryID(c, "group_id"); ok || w.Code != http.StatusBadRequest {
		t.Fatalf("group_id=0 should be rejected, got %d", w.Code)
	}
}
