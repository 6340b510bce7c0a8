package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newCtx(method, target string, opts ...CtxOption) (*Ctx, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	return NewCtx(rec, req, opts...), rec
}

func TestCtxMethodIsUppercased(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/x", nil)
	req.Method = "get"
	c := NewCtx(rec, req)

	if got := c.Method(); got != "GET" {
		t.Errorf("Method() = %q, want %q", got, "GET")
	}
}

func TestCtxURI(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"/users/42", "/users/42"},
		{"/users/42?page=2", "/users/42?page=2"},
		{"/", "/"},
	}

	for _, tt := range tests {
		c, _ := newCtx("GET", tt.target)
		if got := c.URI(); got != tt.want {
			t.Errorf("URI(%q) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestCtxJSONWritesOnce(t *testing.T) {
	c, rec := newCtx("GET", "/x")

	if err := c.JSON(http.StatusCreated, map[string]int{"n": 1}); err != nil {
		t.Fatalf("first JSON: %v", err)
	}
	if err := c.JSON(http.StatusOK, map[string]int{"n": 2}); err != nil {
		t.Fatalf("second JSON: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if got := rec.Body.String(); got != "{\"n\":1}\n" {
		t.Errorf("body = %q, want first payload only", got)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestCtxErrorIsIdempotent(t *testing.T) {
	c, rec := newCtx("GET", "/x")

	c.Error(http.StatusBadRequest, "bad input")
	c.Error(http.StatusInternalServerError, "later failure")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if got := rec.Body.String(); got != "{\"error\":\"bad input\"}\n" {
		t.Errorf("body = %q, want first error only", got)
	}
}

func TestCtxNotFound(t *testing.T) {
	c, rec := newCtx("GET", "/missing")
	c.NotFound()

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if got := rec.Body.String(); got != "{\"error\":\"not found\"}\n" {
		t.Errorf("body = %q", got)
	}
}

func TestCtxFailHTTPErrorKeepsStatus(t *testing.T) {
	c, rec := newCtx("GET", "/x")
	c.Fail(Forbidden("no access"))

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if got := rec.Body.String(); got != "{\"error\":\"no access\"}\n" {
		t.Errorf("body = %q", got)
	}
}

func TestCtxFailDetailFollowsMode(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	t.Run("development", func(t *testing.T) {
		c, rec := newCtx("GET", "/x", WithDevMode(true))
		c.Fail(cause)
		if !strings.Contains(rec.Body.String(), "connection refused") {
			t.Errorf("body = %q, want full detail in dev mode", rec.Body.String())
		}
	})

	t.Run("production", func(t *testing.T) {
		c, rec := newCtx("GET", "/x")
		c.Fail(cause)
		if strings.Contains(rec.Body.String(), "connection refused") {
			t.Errorf("body = %q, must not leak detail in production", rec.Body.String())
		}
		if got := rec.Body.String(); got != "{\"error\":\"internal server error\"}\n" {
			t.Errorf("body = %q", got)
		}
	})
}

func TestCtxBindJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/x", strings.NewReader(`{"name":"widget"}`))
	c := NewCtx(rec, req)

	var body struct {
		Name string `json:"name"`
	}
	if err := c.BindJSON(&body); err != nil {
		t.Fatalf("BindJSON: %v", err)
	}
	if body.Name != "widget" {
		t.Errorf("name = %q, want %q", body.Name, "widget")
	}
}

func TestCtxValues(t *testing.T) {
	c, _ := newCtx("GET", "/x")

	type key struct{}
	if got := c.Value(key{}); got != nil {
		t.Errorf("Value before SetValue = %v, want nil", got)
	}
	c.SetValue(key{}, "stored")
	if got := c.Value(key{}); got != "stored" {
		t.Errorf("Value = %v, want %q", got, "stored")
	}
}

func TestCtxQuery(t *testing.T) {
	c, _ := newCtx("GET", "/x?page=3&page=4")
	if got := c.Query("page"); got != "3" {
		t.Errorf("Query(page) = %q, want %q", got, "3")
	}
	if got := c.Query("absent"); got != "" {
		t.Errorf("Query(absent) = %q, want empty", got)
	}
}
