// Package viaduct provides the public API for the Viaduct request
// dispatcher.
//
// This is the recommended import for most applications:
//
//	import "github.com/viaduct-dev/viaduct"
//
// Usage:
//
//	app := viaduct.New(func(reg *viaduct.Registry) {
//	    reg.Get("/users/{id}", "users@show")
//	    reg.Group("/api", func(r *viaduct.Registry) {
//	        r.Get("/reports", reports, "auth")
//	    })
//	}, viaduct.WithController("users", users))
//
//	http.ListenAndServe(":3000", app)
package viaduct

import (
	"github.com/viaduct-dev/viaduct/pkg/router"
	"github.com/viaduct-dev/viaduct/pkg/server"
)

// =============================================================================
// Request context (server.Ctx exposed as viaduct.Ctx)
// =============================================================================

// Ctx carries one request through middleware and handlers. It exposes the
// request (Method, Path, Query, BindJSON) and the guarded response side
// (JSON, Error, Fail) with the write-once guarantee.
type Ctx = server.Ctx

// CtxOption configures a Ctx at construction time.
type CtxOption = server.CtxOption

// =============================================================================
// Routing (re-export from pkg/router)
// =============================================================================

// App is a dispatching http.Handler built from route declarations.
type App = router.App

// Registry collects route declarations for one dispatch cycle.
type Registry = router.Registry

// Route is one registered route.
type Route = router.Route

// HandlerFunc is a terminal route handler.
type HandlerFunc = router.HandlerFunc

// Controller resolves action names for "Name@action" route references.
type Controller = router.Controller

// ActionMap is a map-backed Controller.
type ActionMap = router.ActionMap

// Middleware wraps route execution with an explicit continuation.
type Middleware = router.Middleware

// MiddlewareFunc adapts a function to the Middleware interface.
type MiddlewareFunc = router.MiddlewareFunc

// Option configures an App.
type Option = router.Option

// New builds an App from a declaration function.
var New = router.New

// NewRegistry creates an empty standalone Registry.
var NewRegistry = router.NewRegistry

// Chain combines middleware into one, running them in order.
var Chain = router.Chain

// App construction options.
var (
	WithLogger     = router.WithLogger
	WithDevMode    = router.WithDevMode
	WithMiddleware = router.WithMiddleware
	WithController = router.WithController
)

// =============================================================================
// Errors (re-export from pkg/server)
// =============================================================================

// HTTPError carries an HTTP status code and client-facing message.
type HTTPError = server.HTTPError

// HTTP error constructors.
var (
	BadRequest          = server.BadRequest
	BadRequestf         = server.BadRequestf
	Unauthorized        = server.Unauthorized
	Forbidden           = server.Forbidden
	NotFound            = server.NotFound
	Conflict            = server.Conflict
	UnprocessableEntity = server.UnprocessableEntity
	InternalError       = server.InternalError
	ServiceUnavailable  = server.ServiceUnavailable
)
