package router

import "github.com/viaduct-dev/viaduct/pkg/server"

// Middleware processes a request before the route handler runs.
type Middleware interface {
	// Handle processes the request and decides whether the chain continues.
	// Calling next runs the rest of the chain: later middleware, then the
	// handler. Returning without calling next halts the chain: no further
	// middleware, no handler, and no synthesized response; the middleware is
	// expected to have produced one itself. Returning an error stops the
	// chain and reports a failure.
	Handle(c *server.Ctx, next func() error) error
}

// MiddlewareFunc is a function adapter for Middleware.
type MiddlewareFunc func(c *server.Ctx, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(c *server.Ctx, next func() error) error {
	return f(c, next)
}

// Compose builds a handler chain from middleware and a final handler.
// Middleware runs in order (first to last), with the handler at the end.
func Compose(c *server.Ctx, mw []Middleware, handler func() error) error {
	chain := handler
	for i := len(mw) - 1; i >= 0; i-- {
		m := mw[i]
		next := chain
		chain = func() error {
			return m.Handle(c, next)
		}
	}
	return chain()
}

// Chain combines multiple middleware into one, preserving order.
func Chain(middleware ...Middleware) Middleware {
	return MiddlewareFunc(func(c *server.Ctx, next func() error) error {
		return Compose(c, middleware, next)
	})
}
