package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseWriterDefaults(t *testing.T) {
	rw := wrapResponseWriter(httptest.NewRecorder())

	if rw.Written() {
		t.Error("fresh writer must not report written")
	}
	if got := rw.Status(); got != http.StatusOK {
		t.Errorf("Status() = %d, want %d before any write", got, http.StatusOK)
	}
	if got := rw.Size(); got != 0 {
		t.Errorf("Size() = %d, want 0", got)
	}
}

func TestResponseWriterFirstHeaderWins(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := wrapResponseWriter(rec)

	rw.WriteHeader(http.StatusTeapot)
	rw.WriteHeader(http.StatusOK)

	if got := rw.Status(); got != http.StatusTeapot {
		t.Errorf("Status() = %d, want %d", got, http.StatusTeapot)
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("recorded code = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if !rw.Written() {
		t.Error("writer must report written after WriteHeader")
	}
}

func TestResponseWriterWriteImpliesOK(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := wrapResponseWriter(rec)

	n, err := rw.Write([]byte("hello"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != 5 {
		t.Errorf("n = %d, want 5", n)
	}
	if got := rw.Status(); got != http.StatusOK {
		t.Errorf("Status() = %d, want %d", got, http.StatusOK)
	}
	if got := rw.Size(); got != 5 {
		t.Errorf("Size() = %d, want 5", got)
	}
	if !rw.Written() {
		t.Error("writer must report written after body write")
	}
}

func TestResponseWriterSizeAccumulates(t *testing.T) {
	rw := wrapResponseWriter(httptest.NewRecorder())

	rw.Write([]byte("abc"))
	rw.Write([]byte("de"))

	if got := rw.Size(); got != 5 {
		t.Errorf("Size() = %d, want 5", got)
	}
}
