package router

import (
	"errors"

	"github.com/viaduct-dev/viaduct/pkg/server"
)

// Dispatch matches the request against every declared route and executes the
// best match, exactly once.
//
// Among all matching routes the one with the longest path-template string
// wins; ties go to the first registered, since the comparison is strict.
// The metric is the raw character length of the template; a literal route
// beats a parameterized one only when it happens to be textually longer
// (/users/export over /users/{id} for a request to /users/export). Existing
// route sets rely on this exact ordering, so keep the metric as is.
//
// With no match the standardized 404 is emitted; that is an expected outcome
// and is not logged as an error. Any failure out of the selected route is
// logged and handed to the response collaborator, whose write-once guard
// makes the report idempotent. There are no retries: handlers may have side
// effects, so a failed dispatch is surfaced, never repeated.
func (reg *Registry) Dispatch(c *server.Ctx) {
	var best *Route
	var bestParams []string

	method := c.Method()
	uri := c.URI()
	for _, rt := range *reg.routes {
		ok, params := rt.match(method, uri)
		if !ok {
			continue
		}
		if best == nil || len(rt.path) > len(best.path) {
			best, bestParams = rt, params
		}
	}

	if best == nil {
		c.NotFound()
		return
	}

	if err := best.execute(c, reg, bestParams); err != nil {
		logFailure(c, best, err)
		c.Fail(err)
	}
}

// logFailure records a dispatch failure on the request logger. Panics carry
// their stack.
func logFailure(c *server.Ctx, rt *Route, err error) {
	attrs := []any{
		"method", c.Method(),
		"route", rt.path,
		"error", err,
	}
	var pe *PanicError
	if errors.As(err, &pe) {
		attrs = append(attrs, "stack", string(pe.Stack))
	}
	var de *DispatchError
	if errors.As(err, &de) {
		attrs = append(attrs, "kind", string(de.Kind))
	}
	c.Logger().Error("dispatch failed", attrs...)
}
