package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/viaduct-dev/viaduct/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ╦┬┌─┐┌┬┐┬ ┬┌─┐┌┬┐
  ╚╗╔╝│├─┤ │││ ││   │
   ╚╝ ┴┴ ┴─┴┘└─┘└─┘ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "viaduct",
		Short: "Request dispatch for JSON APIs",
		Long: `Viaduct is a declarative request dispatcher for Go JSON APIs.

Routes are declared with path templates and named middleware, then
matched and executed per request. Features include:

  • Path templates with named placeholders
  • Named middleware chains with explicit continuation
  • Controller@action handler references
  • Prometheus metrics and OpenTelemetry tracing
  • Temporary upload storage (disk or S3)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		routesCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

// printBanner prints the Viaduct ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
