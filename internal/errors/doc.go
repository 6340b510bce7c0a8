// Package errors provides coded, user-facing errors for the viaduct CLI.
//
// Every known failure mode has a registered code (E1xx configuration, E2xx
// route declarations, E3xx server, E4xx CLI usage) carrying a message,
// optional detail, a fix suggestion and a documentation link. The CLI prints
// these with PrintError for consistent terminal output.
//
//	return errors.New("E301").
//	    WithDetail(fmt.Sprintf("Port %d is taken", port)).
//	    WithSuggestion("Stop the other process or pass --port")
package errors
