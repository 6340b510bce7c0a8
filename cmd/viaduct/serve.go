package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/viaduct-dev/viaduct/internal/config"
	"github.com/viaduct-dev/viaduct/internal/errors"
)

func serveCmd() *cobra.Command {
	var (
		port int
		host string
		dev  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server with the declared routes.

Configuration comes from viaduct.json in the working directory,
overridden by environment variables and the flags below.

Examples:
  viaduct serve
  viaduct serve --port=8080
  viaduct serve --dev`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host, dev)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from viaduct.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from viaduct.json)")
	cmd.Flags().BoolVar(&dev, "dev", false, "Enable development mode error detail")

	return cmd
}

func runServe(port int, host string, dev bool) error {
	cfg := loadConfig()

	// Command-line overrides win over file and environment.
	if port > 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if dev {
		cfg.Environment = config.EnvDevelopment
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	app, err := newApp(cfg, logger)
	if err != nil {
		return errors.FromError(err, "E300")
	}

	mux := http.NewServeMux()
	if cfg.Metrics.Enabled {
		mux.Handle(cfg.Metrics.Path, promhttp.Handler())
	}
	mux.Handle("/", app)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	printBanner()
	success("Listening on http://%s", cfg.Addr())
	if cfg.Metrics.Enabled {
		info("Metrics on %s", cfg.Metrics.Path)
	}
	if cfg.IsDevelopment() {
		warn("Development mode: error responses carry full detail")
	}
	printRouteTable(app)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if strings.Contains(err.Error(), "address already in use") {
			return errors.New("E301").
				WithDetail(fmt.Sprintf("Port %d is taken on %s", cfg.Server.Port, cfg.Server.Host)).
				WithSuggestion("Stop the other process or pass --port")
		}
		return errors.FromError(err, "E300")
	case sig := <-stop:
		info("Received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return errors.FromError(err, "E300")
		}
		success("Server stopped")
		return nil
	}
}

// loadConfig reads viaduct.json from the working directory, falling back to
// defaults plus environment overrides when the file does not exist.
func loadConfig() *config.Config {
	wd, err := os.Getwd()
	if err != nil {
		return config.FromEnv()
	}
	cfg, err := config.Load(wd)
	if err != nil {
		return config.FromEnv()
	}
	return cfg
}

// newLogger builds the process logger: text in development, JSON otherwise.
func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}
