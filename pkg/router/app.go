package router

import (
	"log/slog"
	"net/http"

	"github.com/viaduct-dev/viaduct/pkg/server"
)

// App turns a route declaration function into an http.Handler.
//
// The declarations are replayed into a fresh Registry for every inbound
// request and the registry is discarded when the dispatch cycle ends, so
// route state never leaks between requests. The middleware and controller
// maps are populated once at startup and shared read-only across requests.
type App struct {
	declare     func(*Registry)
	middlewares map[string]Middleware
	controllers map[string]Controller
	logger      *slog.Logger
	dev         bool
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger handed to every request's Ctx.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithDevMode enables full error detail in failure responses.
func WithDevMode(dev bool) Option {
	return func(a *App) {
		a.dev = dev
	}
}

// WithMiddleware registers a middleware under an identifier routes can name.
func WithMiddleware(name string, mw Middleware) Option {
	return func(a *App) {
		if mw == nil {
			panic("router: nil middleware registered as " + name)
		}
		a.middlewares[name] = mw
	}
}

// WithController registers a controller for "Name@action" handler references.
func WithController(name string, ctrl Controller) Option {
	return func(a *App) {
		if ctrl == nil {
			panic("router: nil controller registered as " + name)
		}
		a.controllers[name] = ctrl
	}
}

// New creates an App from a route declaration function.
func New(declare func(*Registry), opts ...Option) *App {
	if declare == nil {
		panic("router: nil declaration function")
	}
	a := &App{
		declare:     declare,
		middlewares: make(map[string]Middleware),
		controllers: make(map[string]Controller),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ServeHTTP implements http.Handler: one registry build and one dispatch
// cycle per request.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c := server.NewCtx(w, r,
		server.WithLogger(a.logger),
		server.WithDevMode(a.dev),
	)
	reg := a.Registry()
	a.declare(reg)
	reg.Dispatch(c)
}

// Registry returns a fresh registry wired with the app's middleware and
// controller maps but no routes declared yet. The CLI uses this to print the
// route table without serving a request.
func (a *App) Registry() *Registry {
	routes := make([]*Route, 0, 16)
	return &Registry{
		routes:      &routes,
		prefix:      "/",
		middlewares: a.middlewares,
		controllers: a.controllers,
	}
}

// Declare replays the app's route declarations into reg.
func (a *App) Declare(reg *Registry) {
	a.declare(reg)
}
