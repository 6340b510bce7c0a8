package viaduct_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/viaduct-dev/viaduct"
)

func TestFacadeEndToEnd(t *testing.T) {
	users := viaduct.ActionMap{
		"show": func(c *viaduct.Ctx, params ...string) error {
			return c.JSON(http.StatusOK, map[string]string{"id": params[0]})
		},
	}

	app := viaduct.New(func(reg *viaduct.Registry) {
		reg.Get("/ping", func(c *viaduct.Ctx, params ...string) error {
			return c.JSON(http.StatusOK, map[string]string{"pong": "yes"})
		})
		reg.Group("/api", func(r *viaduct.Registry) {
			r.Get("/users/{id}", "users@show")
		})
	}, viaduct.WithController("users", users))

	srv := httptest.NewServer(app)
	defer srv.Close()

	t.Run("literal route", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/ping")
		if err != nil {
			t.Fatalf("GET /ping: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}
	})

	t.Run("controller route with parameter", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/users/alice-42")
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		defer resp.Body.Close()

		var body map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["id"] != "alice-42" {
			t.Errorf("id = %q, want alice-42", body["id"])
		}
	})

	t.Run("unmatched path", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/nope")
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})
}

func TestFacadeErrorConstructors(t *testing.T) {
	app := viaduct.New(func(reg *viaduct.Registry) {
		reg.Get("/teapot", func(c *viaduct.Ctx, params ...string) error {
			return &viaduct.HTTPError{Code: http.StatusTeapot, Message: "short and stout"}
		})
	})

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest("GET", "/teapot", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", rec.Code)
	}
}
