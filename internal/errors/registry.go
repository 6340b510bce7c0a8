package errors

// template holds the registered fields for a known error code.
type template struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
//
// Code ranges:
//
//	E1xx - configuration
//	E2xx - route declarations
//	E3xx - server / runtime
//	E4xx - CLI usage
var registry = map[string]template{
	"E100": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "viaduct.json could not be located in the project directory.",
		DocURL:   "https://viaduct.dev/docs/errors/E100",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "viaduct.json exists but could not be parsed.",
		DocURL:   "https://viaduct.dev/docs/errors/E101",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		DocURL:   "https://viaduct.dev/docs/errors/E102",
	},
	"E200": {
		Category: CategoryRoutes,
		Message:  "Invalid route declaration",
		Detail:   "A route was declared with an unknown method or unsupported handler.",
		DocURL:   "https://viaduct.dev/docs/errors/E200",
	},
	"E201": {
		Category: CategoryRoutes,
		Message:  "Unknown middleware identifier",
		Detail:   "A route references middleware that was never registered on the application.",
		DocURL:   "https://viaduct.dev/docs/errors/E201",
	},
	"E202": {
		Category: CategoryRoutes,
		Message:  "Unknown controller reference",
		Detail:   "A route references a controller or action that was never registered.",
		DocURL:   "https://viaduct.dev/docs/errors/E202",
	},
	"E300": {
		Category: CategoryServer,
		Message:  "Server failed to start",
		DocURL:   "https://viaduct.dev/docs/errors/E300",
	},
	"E301": {
		Category: CategoryServer,
		Message:  "Port already in use",
		Detail:   "Another process is listening on the configured port.",
		DocURL:   "https://viaduct.dev/docs/errors/E301",
	},
	"E400": {
		Category: CategoryCLI,
		Message:  "Invalid command usage",
		DocURL:   "https://viaduct.dev/docs/errors/E400",
	},
}
