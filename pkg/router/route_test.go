package router

import (
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/viaduct-dev/viaduct/pkg/server"
)

var errFixture = errors.New("fixture failure")

// recordingMiddleware appends its name to trace then continues the chain.
func recordingMiddleware(name string, trace *[]string) Middleware {
	return MiddlewareFunc(func(c *server.Ctx, next func() error) error {
		*trace = append(*trace, name)
		return next()
	})
}

func TestExecuteMiddlewareOrder(t *testing.T) {
	// Group middleware [A, B] plus route middleware [C] must run A, B, C,
	// then the handler.
	var trace []string

	reg := NewRegistry()
	reg.RegisterMiddleware("A", recordingMiddleware("A", &trace))
	reg.RegisterMiddleware("B", recordingMiddleware("B", &trace))
	reg.RegisterMiddleware("C", recordingMiddleware("C", &trace))
	reg.Group("/api", func(r *Registry) {
		r.Get("/widgets", func(c *server.Ctx, params ...string) error {
			trace = append(trace, "handler")
			return c.JSON(http.StatusOK, nil)
		}, "C")
	}, "A", "B")

	c, _ := newTestCtx("GET", "/api/widgets")
	reg.Dispatch(c)

	want := []string{"A", "B", "C", "handler"}
	if !reflect.DeepEqual(trace, want) {
		t.Errorf("execution order = %v, want %v", trace, want)
	}
}

func TestExecuteMiddlewareHaltsWithoutContinuation(t *testing.T) {
	var trace []string

	reg := NewRegistry()
	reg.RegisterMiddleware("A", recordingMiddleware("A", &trace))
	reg.RegisterMiddleware("B", MiddlewareFunc(func(c *server.Ctx, next func() error) error {
		trace = append(trace, "B")
		// Produce a response and stop the chain without calling next.
		return c.JSON(http.StatusForbidden, map[string]string{"error": "denied"})
	}))
	reg.RegisterMiddleware("C", recordingMiddleware("C", &trace))
	reg.Get("/guarded", func(c *server.Ctx, params ...string) error {
		trace = append(trace, "handler")
		return nil
	}, "A", "B", "C")

	c, rec := newTestCtx("GET", "/guarded")
	reg.Dispatch(c)

	want := []string{"A", "B"}
	if !reflect.DeepEqual(trace, want) {
		t.Errorf("execution order = %v, want %v", trace, want)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestExecuteMiddlewareHaltSynthesizesNoResponse(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterMiddleware("silent", MiddlewareFunc(func(c *server.Ctx, next func() error) error {
		// Halts without producing a response; the dispatcher must not
		// synthesize one either.
		return nil
	}))
	reg.Get("/void", func(c *server.Ctx, params ...string) error {
		t.Error("handler must not run after a halt")
		return nil
	}, "silent")

	c, rec := newTestCtx("GET", "/void")
	reg.Dispatch(c)

	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
	if c.Written() {
		t.Error("no response should have been emitted")
	}
}

func TestExecuteUnresolvableMiddleware(t *testing.T) {
	reg := NewRegistry()
	reg.Get("/broken", func(c *server.Ctx, params ...string) error {
		t.Error("handler must not run with a broken middleware chain")
		return nil
	}, "ghost")

	c, rec := newTestCtx("GET", "/broken", server.WithDevMode(true))
	reg.Dispatch(c)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if got := decodeError(t, rec); got == "" {
		t.Error("expected an error body")
	}
}

func TestExecuteStringHandlerReference(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterController("users", ActionMap{
		"show": func(c *server.Ctx, params ...string) error {
			return c.JSON(http.StatusOK, map[string]string{"id": params[0]})
		},
	})
	reg.Get("/users/{id}", "users@show")

	c, rec := newTestCtx("GET", "/users/42")
	reg.Dispatch(c)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if body := rec.Body.String(); body != "{\"id\":\"42\"}\n" {
		t.Errorf("body = %q, want id 42", body)
	}
}

func TestExecuteHandlerResolutionFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler string
		setup   func(*Registry)
	}{
		{"malformed reference", "usersshow", func(reg *Registry) {}},
		{"unknown controller", "ghosts@list", func(reg *Registry) {}},
		{"unknown action", "users@vanish", func(reg *Registry) {
			reg.RegisterController("users", ActionMap{})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			tt.setup(reg)
			reg.Get("/r", tt.handler)

			c, rec := newTestCtx("GET", "/r")
			reg.Dispatch(c)

			if rec.Code != http.StatusInternalServerError {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
			}
		})
	}
}

func TestExecuteResolutionErrorKind(t *testing.T) {
	reg := NewRegistry()
	reg.Get("/r", "ghosts@list")

	routes := reg.Routes()
	c, _ := newTestCtx("GET", "/r")
	err := routes[0].execute(c, reg, nil)

	var de *DispatchError
	if !errors.As(err, &de) {
		t.Fatalf("error = %T, want *DispatchError", err)
	}
	if de.Kind != KindHandlerResolution {
		t.Errorf("kind = %q, want %q", de.Kind, KindHandlerResolution)
	}
	if de.Ref != "ghosts@list" {
		t.Errorf("ref = %q, want %q", de.Ref, "ghosts@list")
	}
}

func TestExecuteMiddlewareConfigErrorKind(t *testing.T) {
	reg := NewRegistry()
	reg.Get("/r", noopHandler, "ghost")

	routes := reg.Routes()
	c, _ := newTestCtx("GET", "/r")
	err := routes[0].execute(c, reg, nil)

	var de *DispatchError
	if !errors.As(err, &de) {
		t.Fatalf("error = %T, want *DispatchError", err)
	}
	if de.Kind != KindMiddlewareConfig {
		t.Errorf("kind = %q, want %q", de.Kind, KindMiddlewareConfig)
	}
}

func TestExecutePanicCarriesStack(t *testing.T) {
	reg := NewRegistry()
	reg.Get("/boom", func(c *server.Ctx, params ...string) error {
		panic(errFixture)
	})

	routes := reg.Routes()
	c, _ := newTestCtx("GET", "/boom")
	err := routes[0].execute(c, reg, nil)

	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %T, want *PanicError", err)
	}
	if len(pe.Stack) == 0 {
		t.Error("expected a captured stack")
	}
	if pe.Route != "/boom" {
		t.Errorf("route = %q, want %q", pe.Route, "/boom")
	}
}

func TestExecuteMiddlewareErrorStopsChain(t *testing.T) {
	var trace []string

	reg := NewRegistry()
	reg.RegisterMiddleware("failing", MiddlewareFunc(func(c *server.Ctx, next func() error) error {
		trace = append(trace, "failing")
		return errFixture
	}))
	reg.RegisterMiddleware("later", recordingMiddleware("later", &trace))
	reg.Get("/r", func(c *server.Ctx, params ...string) error {
		trace = append(trace, "handler")
		return nil
	}, "failing", "later")

	c, rec := newTestCtx("GET", "/r")
	reg.Dispatch(c)

	if !reflect.DeepEqual(trace, []string{"failing"}) {
		t.Errorf("execution order = %v, want [failing]", trace)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestComposeAndChain(t *testing.T) {
	var trace []string
	c, _ := newTestCtx("GET", "/")

	combined := Chain(
		recordingMiddleware("outer", &trace),
		recordingMiddleware("inner", &trace),
	)
	err := combined.Handle(c, func() error {
		trace = append(trace, "handler")
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"outer", "inner", "handler"}; !reflect.DeepEqual(trace, want) {
		t.Errorf("execution order = %v, want %v", trace, want)
	}
}
