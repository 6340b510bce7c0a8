package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// Ctx carries one inbound request and its guarded response writer through a
// single dispatch cycle. It is immutable on the request side for the duration
// of the cycle.
type Ctx struct {
	w      *responseWriter
	req    *http.Request
	logger *slog.Logger
	dev    bool
	values map[any]any
}

// CtxOption configures a Ctx at construction time.
type CtxOption func(*Ctx)

// WithLogger sets the logger handed to middleware and handlers.
func WithLogger(logger *slog.Logger) CtxOption {
	return func(c *Ctx) {
		c.logger = logger
	}
}

// WithDevMode enables full error detail in failure responses.
// In production mode server faults are reported with a generic message.
func WithDevMode(dev bool) CtxOption {
	return func(c *Ctx) {
		c.dev = dev
	}
}

// NewCtx wraps an http.ResponseWriter and http.Request for one dispatch cycle.
func NewCtx(w http.ResponseWriter, r *http.Request, opts ...CtxOption) *Ctx {
	c := &Ctx{
		w:      wrapResponseWriter(w),
		req:    r,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Method returns the upper-cased HTTP method of the request.
func (c *Ctx) Method() string {
	return strings.ToUpper(c.req.Method)
}

// Path returns the URL path of the request.
func (c *Ctx) Path() string {
	return c.req.URL.Path
}

// URI returns the path plus raw query string, the form route templates are
// matched against.
func (c *Ctx) URI() string {
	if c.req.URL.RawQuery == "" {
		return c.req.URL.Path
	}
	return c.req.URL.Path + "?" + c.req.URL.RawQuery
}

// Query returns the first query value for the given key.
func (c *Ctx) Query(key string) string {
	return c.req.URL.Query().Get(key)
}

// Header returns the request headers.
func (c *Ctx) Header() http.Header {
	return c.req.Header
}

// Request returns the underlying http.Request.
func (c *Ctx) Request() *http.Request {
	return c.req
}

// ResponseWriter returns the guarded response writer. Handlers that need to
// take over the connection (e.g. a WebSocket upgrade) go through this.
func (c *Ctx) ResponseWriter() http.ResponseWriter {
	return c.w
}

// StdContext returns the request's context.Context.
func (c *Ctx) StdContext() context.Context {
	return c.req.Context()
}

// Logger returns the request-scoped logger.
func (c *Ctx) Logger() *slog.Logger {
	return c.logger
}

// DevMode reports whether full error detail is enabled.
func (c *Ctx) DevMode() bool {
	return c.dev
}

// SetValue stores a value on the Ctx for later middleware and the handler.
func (c *Ctx) SetValue(key, value any) {
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = value
}

// Value returns a value previously stored with SetValue, or nil.
func (c *Ctx) Value(key any) any {
	return c.values[key]
}

// BindJSON decodes the request body into v.
func (c *Ctx) BindJSON(v any) error {
	defer c.req.Body.Close()
	return json.NewDecoder(c.req.Body).Decode(v)
}

// Written reports whether a response has already been emitted.
func (c *Ctx) Written() bool {
	return c.w.Written()
}

// Status returns the response status code, or 200 if nothing was written yet.
func (c *Ctx) Status() int {
	return c.w.Status()
}

// BytesWritten returns the number of response body bytes written so far.
func (c *Ctx) BytesWritten() int {
	return c.w.Size()
}

// JSON writes a JSON response with the given status code. It is a no-op if a
// response has already been emitted for this request.
func (c *Ctx) JSON(status int, v any) error {
	if c.w.Written() {
		return nil
	}
	c.w.Header().Set("Content-Type", "application/json")
	c.w.WriteHeader(status)
	return json.NewEncoder(c.w).Encode(v)
}

// Error emits a standardized JSON error body with the given status code.
// At most one response is ever emitted per request; a second call is a no-op.
func (c *Ctx) Error(status int, message string) {
	if c.w.Written() {
		return
	}
	c.JSON(status, map[string]string{"error": message})
}

// NotFound emits the standardized 404 response.
func (c *Ctx) NotFound() {
	c.Error(http.StatusNotFound, "not found")
}

// Fail terminates the request with an error response. An *HTTPError keeps its
// own status code and message; anything else is a server fault, reported with
// full detail in development and a generic message in production.
func (c *Ctx) Fail(err error) {
	var he *HTTPError
	if errors.As(err, &he) {
		c.Error(he.Code, he.Message)
		return
	}
	msg := "internal server error"
	if c.dev && err != nil {
		msg = err.Error()
	}
	c.Error(http.StatusInternalServerError, msg)
}
