// Package server provides the request/response boundary for viaduct.
//
// A Ctx wraps one inbound http.Request together with a guarded response
// writer. It is constructed once per request, handed to every middleware
// and handler in the dispatch cycle, and discarded when the cycle ends.
//
// The response side guarantees at most one response per request: once a
// status has been written, further JSON, Error, or NotFound calls are
// no-ops. Error detail for server faults is environment-dependent: the
// full error message in development, a generic message in production.
package server
