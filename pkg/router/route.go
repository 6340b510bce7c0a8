package router

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/viaduct-dev/viaduct/pkg/server"
)

// Method is one of the fixed set of HTTP methods a route can be declared
// with. MethodAny matches every inbound method.
type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodOptions Method = "OPTIONS"
	MethodAny     Method = "ANY"
)

// parseMethod normalizes and validates a declared method string.
func parseMethod(s string) (Method, bool) {
	switch m := Method(strings.ToUpper(s)); m {
	case MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete, MethodOptions, MethodAny:
		return m, true
	}
	return "", false
}

// HandlerFunc is a terminal route handler. Captured path parameters are
// passed positionally, in placeholder declaration order.
type HandlerFunc func(c *server.Ctx, params ...string) error

// Controller resolves action names for "Name@action" route references.
// Controllers are registered by name at startup and looked up at dispatch
// time, so a referenced controller need not exist until a route using it
// actually executes.
type Controller interface {
	Action(name string) (HandlerFunc, bool)
}

// ActionMap is a map-backed Controller.
type ActionMap map[string]HandlerFunc

// Action implements Controller.
func (m ActionMap) Action(name string) (HandlerFunc, bool) {
	fn, ok := m[name]
	return fn, ok
}

// Route is one registered route: method, normalized path template, handler
// reference and the ordered middleware identifiers to run before it.
// Immutable once registered.
type Route struct {
	method     Method
	path       string
	handler    any // HandlerFunc or "Name@action" string
	middleware []string
	pat        *pattern
}

// Method returns the route's declared method.
func (rt *Route) Method() Method {
	return rt.method
}

// Path returns the route's normalized path template.
func (rt *Route) Path() string {
	return rt.path
}

// Middleware returns the route's middleware identifiers in execution order.
func (rt *Route) Middleware() []string {
	return append([]string(nil), rt.middleware...)
}

// HandlerRef returns a printable reference for the route's handler: the
// "Name@action" string for controller routes, or "func" for function
// handlers.
func (rt *Route) HandlerRef() string {
	if ref, ok := rt.handler.(string); ok {
		return ref
	}
	return "func"
}

// match tests an inbound method and request URI against the route. On
// success it returns the captured parameters. It has no side effects;
// execute takes the parameters explicitly.
func (rt *Route) match(method, uri string) (bool, []string) {
	if rt.method != MethodAny && rt.method != Method(method) {
		return false, nil
	}
	return rt.pat.match(uri)
}

// execute runs the route's middleware chain and, if every middleware invokes
// its continuation, the handler. Middleware identifiers and handler
// references are resolved at the point the chain reaches them. Panics in
// middleware or handler code surface as a *PanicError.
func (rt *Route) execute(c *server.Ctx, reg *Registry, params []string) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Route: rt.path, Value: v, Stack: debug.Stack()}
		}
	}()

	var run func(i int) error
	run = func(i int) error {
		if i == len(rt.middleware) {
			return rt.invoke(c, reg, params)
		}
		name := rt.middleware[i]
		mw, ok := reg.lookupMiddleware(name)
		if !ok {
			return &DispatchError{
				Kind:  KindMiddlewareConfig,
				Route: rt.path,
				Ref:   name,
				Err:   fmt.Errorf("middleware %q is not registered", name),
			}
		}
		return mw.Handle(c, func() error { return run(i + 1) })
	}
	return run(0)
}

// invoke resolves the handler reference and calls it with the captured
// parameters.
func (rt *Route) invoke(c *server.Ctx, reg *Registry, params []string) error {
	switch h := rt.handler.(type) {
	case HandlerFunc:
		return h(c, params...)
	case func(c *server.Ctx, params ...string) error:
		return h(c, params...)
	case string:
		name, action, ok := strings.Cut(h, "@")
		if !ok {
			return &DispatchError{
				Kind:  KindHandlerResolution,
				Route: rt.path,
				Ref:   h,
				Err:   fmt.Errorf("handler reference %q is not of the form Name@action", h),
			}
		}
		ctrl, ok := reg.lookupController(name)
		if !ok {
			return &DispatchError{
				Kind:  KindHandlerResolution,
				Route: rt.path,
				Ref:   h,
				Err:   fmt.Errorf("controller %q is not registered", name),
			}
		}
		fn, ok := ctrl.Action(action)
		if !ok {
			return &DispatchError{
				Kind:  KindHandlerResolution,
				Route: rt.path,
				Ref:   h,
				Err:   fmt.Errorf("controller %q has no action %q", name, action),
			}
		}
		return fn(c, params...)
	default:
		return &DispatchError{
			Kind:  KindHandlerResolution,
			Route: rt.path,
			Err:   fmt.Errorf("unsupported handler type %T", rt.handler),
		}
	}
}
