package middleware

import (
	"context"
	"fmt"

	"github.com/viaduct-dev/viaduct/pkg/router"
	"github.com/viaduct-dev/viaduct/pkg/server"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for viaduct applications.
const defaultTracerName = "viaduct"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "viaduct").
	TracerName string

	// Filter determines which requests to trace.
	// Return true to trace the request, false to skip.
	// If nil, all requests are traced.
	Filter func(c *server.Ctx) bool

	// AttributeExtractor extracts custom attributes from the context.
	// Called for each traced request.
	AttributeExtractor func(c *server.Ctx) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithRequestFilter sets a filter function for requests.
func WithRequestFilter(filter func(c *server.Ctx) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(c *server.Ctx) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// defaultOTelConfig returns the default OpenTelemetry configuration.
func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
		Filter:     nil,
	}
}

// OpenTelemetry creates middleware that traces every dispatched request.
//
// The middleware:
//   - Creates a span per request named "<METHOD> <path>"
//   - Stores the span context on the Ctx for downstream calls
//   - Records errors and sets span status
//   - Records the response status code as a span attribute
//
// Example:
//
//	app := router.New(declare,
//	    router.WithMiddleware("tracing", middleware.OpenTelemetry(
//	        middleware.WithTracerName("my-app"),
//	    )),
//	)
//
// The tracer uses the global OpenTelemetry tracer provider. Configure it
// in your main() before starting the server:
//
//	tp := sdktrace.NewTracerProvider(
//	    sdktrace.WithBatcher(exporter),
//	    sdktrace.WithResource(resource.NewWithAttributes(
//	        semconv.SchemaURL,
//	        semconv.ServiceName("my-app"),
//	    )),
//	)
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) router.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Resolve tracer from global provider
	config.tracer = otel.Tracer(config.TracerName)

	return router.MiddlewareFunc(func(c *server.Ctx, next func() error) error {
		if config.Filter != nil && !config.Filter(c) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("http.request.method", c.Method()),
			attribute.String("url.path", c.Path()),
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(c)...)
		}

		spanCtx, span := config.tracer.Start(
			c.StdContext(),
			formatSpanName(c),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		// Store the span context so handlers can reach it via
		// middleware.SpanFromContext or middleware.TraceContext.
		c.SetValue(spanContextKey{}, spanCtx)

		err := next()

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.SetAttributes(attribute.Int("http.response.status_code", c.Status()))

		return err
	})
}

// spanContextKey is the key for storing the span context in Ctx values.
type spanContextKey struct{}

// SpanFromContext retrieves the current trace span from the context.
// Returns nil if no span is available.
//
// Example:
//
//	func MyHandler(c *server.Ctx, params ...string) error {
//	    if span := middleware.SpanFromContext(c); span != nil {
//	        span.SetAttributes(attribute.Int("my.count", 42))
//	    }
//	    return nil
//	}
func SpanFromContext(c *server.Ctx) trace.Span {
	if spanCtx, ok := c.Value(spanContextKey{}).(context.Context); ok {
		return trace.SpanFromContext(spanCtx)
	}
	return nil
}

// formatSpanName creates a span name from the request.
func formatSpanName(c *server.Ctx) string {
	path := c.Path()
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("%s %s", c.Method(), path)
}

// TraceContext returns the trace context from the Ctx for propagation.
// Use this to propagate trace context to external services.
//
// Example:
//
//	func MyHandler(c *server.Ctx, params ...string) error {
//	    traceCtx := middleware.TraceContext(c)
//	    req, _ := http.NewRequestWithContext(traceCtx, "GET", url, nil)
//	    return nil
//	}
func TraceContext(c *server.Ctx) context.Context {
	if spanCtx, ok := c.Value(spanContextKey{}).(context.Context); ok {
		return spanCtx
	}
	return c.StdContext()
}
