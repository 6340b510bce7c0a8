// Package router implements request dispatch for viaduct JSON APIs.
//
// The router provides:
//   - Route declaration with {name} path placeholders
//   - Nested groups that extend the path prefix and middleware list
//   - Competitive matching with a longest-template tie-break
//   - An ordered middleware chain with explicit continuation control
//   - Lazy resolution of "Name@action" handler references
//
// # Declaration
//
// Routes are declared into a Registry, usually inside the declaration
// function handed to New:
//
//	app := router.New(func(r *router.Registry) {
//	    r.Get("/health", healthHandler)
//	    r.Group("/api", func(r *router.Registry) {
//	        r.Get("/users/{id}", "users@show")
//	        r.Post("/users", "users@create")
//	    }, "auth")
//	},
//	    router.WithController("users", usersController),
//	    router.WithMiddleware("auth", authMiddleware),
//	)
//	http.ListenAndServe(":8080", app)
//
// The declarations run again for every inbound request: the Registry is a
// request-scoped value, built, dispatched once, and discarded. Only the
// middleware and controller maps, populated at startup, are shared across
// requests, along with the compiled-pattern cache, which is keyed by
// template string and safe to recompute.
//
// # Matching
//
// A {name} placeholder captures one path segment of [a-zA-Z0-9_-]+.
// Templates with no placeholders match only their exact literal path.
// A trailing slash and a query-string suffix on the request are ignored.
// When several routes match, the one with the longest template string wins;
// ties go to the first registered.
//
// # Middleware
//
// Route middleware is named by identifier and resolved when the chain
// reaches it. Each middleware receives the request context and a
// continuation; not invoking the continuation halts the chain, and the
// middleware is then responsible for having produced a response.
package router
