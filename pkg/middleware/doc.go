// Package middleware provides production-grade middleware for viaduct
// applications.
//
// This package includes:
//   - OpenTelemetry distributed tracing middleware
//   - Prometheus metrics middleware
//   - Structured request logging middleware
//
// Middleware is registered on the application by name and referenced from
// route declarations by the same name:
//
//	app := router.New(declare,
//	    router.WithMiddleware("metrics", middleware.Prometheus()),
//	    router.WithMiddleware("tracing", middleware.OpenTelemetry()),
//	    router.WithMiddleware("logging", middleware.Logging(nil)),
//	)
package middleware
