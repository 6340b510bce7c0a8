package router

import (
	"fmt"
	"strings"

	"github.com/viaduct-dev/viaduct/pkg/server"
)

// Registry is the request-scoped list of declared routes plus the active
// declaration context: the current path prefix and accumulated group
// middleware. It is write-only while declarations run and read-only once
// dispatch begins.
//
// Group derives a new Registry value instead of mutating the receiver, so a
// group's prefix and middleware never leak past its declaring function, also
// when that function panics.
type Registry struct {
	routes      *[]*Route
	prefix      string // normalized to end in "/"
	middleware  []string
	middlewares map[string]Middleware
	controllers map[string]Controller
}

// NewRegistry returns an empty registry with empty resolution maps.
// Applications normally get a registry from App; NewRegistry exists for
// embedding the dispatch cycle directly.
func NewRegistry() *Registry {
	routes := make([]*Route, 0, 16)
	return &Registry{
		routes:      &routes,
		prefix:      "/",
		middlewares: make(map[string]Middleware),
		controllers: make(map[string]Controller),
	}
}

// RegisterMiddleware makes a middleware available to routes under the given
// identifier.
func (reg *Registry) RegisterMiddleware(name string, mw Middleware) {
	if mw == nil {
		panic("router: nil middleware registered as " + name)
	}
	reg.middlewares[name] = mw
}

// RegisterController makes a controller available to "Name@action" handler
// references under the given name.
func (reg *Registry) RegisterController(name string, ctrl Controller) {
	if ctrl == nil {
		panic("router: nil controller registered as " + name)
	}
	reg.controllers[name] = ctrl
}

func (reg *Registry) lookupMiddleware(name string) (Middleware, bool) {
	mw, ok := reg.middlewares[name]
	return mw, ok
}

func (reg *Registry) lookupController(name string) (Controller, bool) {
	ctrl, ok := reg.controllers[name]
	return ctrl, ok
}

// Handle declares a route. The path is joined onto the active group prefix
// and the group middleware accumulation precedes the route's own middleware.
// The handler is an inline HandlerFunc or a "Name@action" string, resolved
// at execute time. Declaration bugs (unknown method, unsupported handler
// type) panic: they are programmer errors, not request failures.
func (reg *Registry) Handle(method, path string, handler any, mw ...string) {
	m, ok := parseMethod(method)
	if !ok {
		panic(fmt.Sprintf("router: unknown method %q", method))
	}
	switch handler.(type) {
	case HandlerFunc, func(c *server.Ctx, params ...string) error, string:
	case nil:
		panic("router: nil handler for " + path)
	default:
		panic(fmt.Sprintf("router: unsupported handler type %T for %s", handler, path))
	}

	full := joinPath(reg.prefix, path)
	middleware := make([]string, 0, len(reg.middleware)+len(mw))
	middleware = append(middleware, reg.middleware...)
	middleware = append(middleware, mw...)

	rt := &Route{
		method:     m,
		path:       full,
		handler:    handler,
		middleware: middleware,
		pat:        compiledPattern(full),
	}
	*reg.routes = append(*reg.routes, rt)
}

// Get declares a GET route.
func (reg *Registry) Get(path string, handler any, mw ...string) {
	reg.Handle("GET", path, handler, mw...)
}

// Post declares a POST route.
func (reg *Registry) Post(path string, handler any, mw ...string) {
	reg.Handle("POST", path, handler, mw...)
}

// Put declares a PUT route.
func (reg *Registry) Put(path string, handler any, mw ...string) {
	reg.Handle("PUT", path, handler, mw...)
}

// Patch declares a PATCH route.
func (reg *Registry) Patch(path string, handler any, mw ...string) {
	reg.Handle("PATCH", path, handler, mw...)
}

// Delete declares a DELETE route.
func (reg *Registry) Delete(path string, handler any, mw ...string) {
	reg.Handle("DELETE", path, handler, mw...)
}

// Options declares an OPTIONS route.
func (reg *Registry) Options(path string, handler any, mw ...string) {
	reg.Handle("OPTIONS", path, handler, mw...)
}

// Any declares a route matching every inbound method.
func (reg *Registry) Any(path string, handler any, mw ...string) {
	reg.Handle("ANY", path, handler, mw...)
}

// Group runs body against a derived registry whose prefix is extended by the
// group's prefix and whose middleware accumulation is extended by mw. Routes
// the body declares land in the same route list. The receiver is untouched,
// so declarations after the group are unaffected regardless of how the body
// returns.
func (reg *Registry) Group(prefix string, body func(*Registry), mw ...string) {
	if body == nil {
		panic("router: nil group body for " + prefix)
	}
	middleware := make([]string, 0, len(reg.middleware)+len(mw))
	middleware = append(middleware, reg.middleware...)
	middleware = append(middleware, mw...)

	derived := &Registry{
		routes:      reg.routes,
		prefix:      normalizePrefix(joinPath(reg.prefix, prefix)),
		middleware:  middleware,
		middlewares: reg.middlewares,
		controllers: reg.controllers,
	}
	body(derived)
}

// Clear removes every declared route. The resolution maps are kept.
func (reg *Registry) Clear() {
	*reg.routes = (*reg.routes)[:0]
}

// Routes returns the declared routes in registration order.
func (reg *Registry) Routes() []*Route {
	return append([]*Route(nil), *reg.routes...)
}

// joinPath joins path fragments into an absolute path with no double slashes
// and no trailing slash; the root path stays "/".
func joinPath(parts ...string) string {
	var segs []string
	for _, p := range parts {
		for _, s := range strings.Split(p, "/") {
			if s != "" {
				segs = append(segs, s)
			}
		}
	}
	if len(segs) == 0 {
		return "/"
	}
	return "/" + strings.Join(segs, "/")
}

// normalizePrefix makes a joined path usable as a group prefix, which always
// ends in "/".
func normalizePrefix(p string) string {
	if p == "/" {
		return p
	}
	return p + "/"
}
