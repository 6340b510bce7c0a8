package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viaduct-dev/viaduct/internal/errors"
	"github.com/viaduct-dev/viaduct/pkg/router"
)

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the declared route table",
		Long:  `Replay the application's route declarations and print the resulting table.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			app, err := newApp(cfg, logger)
			if err != nil {
				return errors.FromError(err, "E200")
			}

			printRouteTable(app)
			return nil
		},
	}
}

// printRouteTable prints one line per declared route: method, template,
// handler reference and middleware chain.
func printRouteTable(app *router.App) {
	reg := app.Registry()
	app.Declare(reg)

	routes := reg.Routes()
	fmt.Println()
	info("%-7s %-32s %-18s %s", "METHOD", "PATH", "HANDLER", "MIDDLEWARE")
	for _, rt := range routes {
		mw := strings.Join(rt.Middleware(), ", ")
		if mw == "" {
			mw = "-"
		}
		info("%-7s %-32s %-18s %s", rt.Method(), rt.Path(), rt.HandlerRef(), mw)
	}
	fmt.Println()
}
