package main

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gorilla/websocket"

	"github.com/viaduct-dev/viaduct/internal/config"
	"github.com/viaduct-dev/viaduct/pkg/middleware"
	"github.com/viaduct-dev/viaduct/pkg/router"
	"github.com/viaduct-dev/viaduct/pkg/server"
	"github.com/viaduct-dev/viaduct/pkg/upload"
)

// widgets is an in-memory demo resource served by the example API.
var widgets = map[string]string{
	"1": "anchor bolt",
	"2": "cable tray",
	"3": "deck plate",
}

// newApp assembles the demo application: controllers, named middleware, the
// upload store and the route declarations.
func newApp(cfg *config.Config, logger *slog.Logger) (*router.App, error) {
	store, err := newUploadStore(cfg)
	if err != nil {
		return nil, err
	}

	widgetController := router.ActionMap{
		"list": func(c *server.Ctx, params ...string) error {
			return c.JSON(http.StatusOK, widgets)
		},
		"show": func(c *server.Ctx, params ...string) error {
			name, ok := widgets[params[0]]
			if !ok {
				return server.NotFound("widget not found")
			}
			return c.JSON(http.StatusOK, map[string]string{"id": params[0], "name": name})
		},
		"export": func(c *server.Ctx, params ...string) error {
			names := make([]string, 0, len(widgets))
			for _, name := range widgets {
				names = append(names, name)
			}
			return c.JSON(http.StatusOK, map[string]any{"count": len(names), "names": names})
		},
	}

	declare := func(reg *router.Registry) {
		reg.Get("/healthz", func(c *server.Ctx, params ...string) error {
			return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
		})

		reg.Group("/api/v1", func(r *router.Registry) {
			r.Get("/widgets", "widgets@list")
			r.Get("/widgets/export", "widgets@export")
			r.Get("/widgets/{id}", "widgets@show")
			r.Post("/uploads", upload.HandlerWithConfig(store, &upload.Config{
				MaxFileSize: cfg.Uploads.MaxSizeBytes,
			}))
			r.Any("/echo", echoHandler())
		}, "logging", "metrics", "tracing")
	}

	return router.New(declare,
		router.WithLogger(logger),
		router.WithDevMode(cfg.IsDevelopment()),
		router.WithController("widgets", widgetController),
		router.WithMiddleware("logging", middleware.Logging(logger)),
		router.WithMiddleware("metrics", middleware.Prometheus(
			middleware.WithNamespace(cfg.Metrics.Namespace),
		)),
		router.WithMiddleware("tracing", middleware.OpenTelemetry()),
	), nil
}

// newUploadStore picks the upload backend from configuration: S3 when a
// bucket is set, the local disk otherwise.
func newUploadStore(cfg *config.Config) (upload.Store, error) {
	if cfg.Uploads.S3Bucket != "" {
		client := s3.New(s3.Options{Region: os.Getenv("AWS_REGION")})
		return upload.NewS3Store(client, cfg.Uploads.S3Bucket, cfg.Uploads.S3Prefix, cfg.Uploads.MaxSizeBytes), nil
	}
	return upload.NewDiskStore(cfg.Uploads.Dir, cfg.Uploads.MaxSizeBytes)
}

// echoHandler upgrades the connection to a WebSocket and echoes every
// message back, prefixed with its sequence number.
func echoHandler() router.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	return func(c *server.Ctx, params ...string) error {
		conn, err := upgrader.Upgrade(c.ResponseWriter(), c.Request(), nil)
		if err != nil {
			// Upgrade already wrote the handshake failure.
			return nil
		}
		defer conn.Close()

		for seq := 1; ; seq++ {
			mt, msg, err := conn.ReadMessage()
			if err != nil {
				return nil
			}
			reply := append([]byte(strconv.Itoa(seq)+": "), msg...)
			if err := conn.WriteMessage(mt, reply); err != nil {
				return nil
			}
		}
	}
}
