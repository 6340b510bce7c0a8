package server

import (
	"bufio"
	"net"
	"net/http"
)

// ResponseWriter extends http.ResponseWriter with methods to inspect the
// response. It also implements http.Flusher and http.Hijacker when the
// underlying ResponseWriter supports them.
type ResponseWriter interface {
	http.ResponseWriter
	// Status returns the HTTP status code of the response.
	Status() int
	// Size returns the number of bytes written to the response body.
	Size() int
	// Written returns whether the response has been written to.
	Written() bool
}

// responseWriter wraps http.ResponseWriter and tracks response status and
// size. The first WriteHeader wins; later calls are discarded, which is what
// makes the error-report path idempotent.
type responseWriter struct {
	http.ResponseWriter
	status  int
	size    int
	written bool
}

// Compile-time interface checks
var (
	_ http.ResponseWriter = (*responseWriter)(nil)
	_ http.Flusher        = (*responseWriter)(nil)
	_ http.Hijacker       = (*responseWriter)(nil)
	_ ResponseWriter      = (*responseWriter)(nil)
)

func wrapResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w}
}

// Status returns the HTTP status code of the response. If not yet written,
// it returns 200 OK.
func (rw *responseWriter) Status() int {
	if rw.status == 0 {
		return http.StatusOK
	}
	return rw.status
}

// Size returns the number of bytes written to the response body.
func (rw *responseWriter) Size() int {
	return rw.size
}

// Written returns whether the response has been written to.
func (rw *responseWriter) Written() bool {
	return rw.written
}

// WriteHeader sends an HTTP response header with the provided status code.
// Calls after the first are no-ops.
func (rw *responseWriter) WriteHeader(status int) {
	if rw.written {
		return
	}
	rw.status = status
	rw.written = true
	rw.ResponseWriter.WriteHeader(status)
}

// Write writes the data to the connection as part of an HTTP reply.
func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.written = true
		rw.status = http.StatusOK
	}
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// Unwrap returns the underlying http.ResponseWriter.
// This enables http.ResponseController to access the original ResponseWriter.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Flush implements http.Flusher.
func (rw *responseWriter) Flush() {
	http.NewResponseController(rw.ResponseWriter).Flush()
}

// Hijack implements http.Hijacker. Taking over the connection counts as
// having written the response.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	conn, buf, err := http.NewResponseController(rw.ResponseWriter).Hijack()
	if err == nil {
		rw.written = true
	}
	return conn, buf, err
}
