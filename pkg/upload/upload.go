package upload

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/viaduct-dev/viaduct/pkg/router"
	"github.com/viaduct-dev/viaduct/pkg/server"
)

// ErrNotFound is returned when a temp file doesn't exist.
var ErrNotFound = errors.New("upload: file not found")

// ErrExpired is returned when a temp file has expired.
var ErrExpired = errors.New("upload: file expired")

// ErrTooLarge is returned when a file exceeds the size limit.
var ErrTooLarge = errors.New("upload: file too large")

// Store is the interface for upload storage backends.
// Implement this interface to use S3, GCS, or other storage.
type Store interface {
	// Save stores the uploaded file and returns a temp ID.
	// The file is stored temporarily until Claim is called.
	Save(ctx context.Context, filename string, contentType string, size int64, r io.Reader) (tempID string, err error)

	// Claim retrieves and removes a temp file, returning a file handle.
	// After claiming, the temp file is deleted (or marked for deletion).
	Claim(ctx context.Context, tempID string) (*File, error)

	// Cleanup removes expired temp files.
	// Call this periodically (e.g., every 5 minutes).
	Cleanup(ctx context.Context, maxAge time.Duration) error
}

// File represents an uploaded file.
type File struct {
	// ID is the unique identifier for this upload.
	ID string

	// Filename is the original filename from the client.
	Filename string

	// ContentType is the MIME type of the file.
	ContentType string

	// Size is the file size in bytes.
	Size int64

	// Path is the local filesystem path (for DiskStore).
	Path string

	// URL is the remote URL (for S3/CDN storage).
	URL string

	// Reader provides access to the file contents.
	// May be nil if the file is stored on disk (use Path instead).
	Reader io.ReadCloser
}

// Close closes the file reader if open.
func (f *File) Close() error {
	if f.Reader != nil {
		return f.Reader.Close()
	}
	return nil
}

// Config holds configuration for the upload handler.
type Config struct {
	// MaxFileSize is the maximum allowed file size in bytes.
	// Default: 10MB.
	MaxFileSize int64

	// TempExpiry is how long temp files live before cleanup.
	// Default: 1 hour.
	TempExpiry time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxFileSize: 10 * 1024 * 1024, // 10MB
		TempExpiry:  time.Hour,
	}
}

// Handler returns a route handler for file uploads.
// Declare it on a POST route: reg.Post("/upload", upload.Handler(store))
//
// The handler expects a multipart form with a "file" field and responds
// with the temp ID:
//
//	{"temp_id": "abc123"}
func Handler(store Store) router.HandlerFunc {
	return HandlerWithConfig(store, DefaultConfig())
}

// HandlerWithConfig returns an upload handler with custom configuration.
func HandlerWithConfig(store Store, config *Config) router.HandlerFunc {
	maxSize := config.MaxFileSize
	if maxSize <= 0 {
		maxSize = 10 * 1024 * 1024 // 10MB default
	}

	return func(c *server.Ctx, params ...string) error {
		req := c.Request()

		// Limit request body size before parsing.
		req.Body = http.MaxBytesReader(c.ResponseWriter(), req.Body, maxSize)

		if err := req.ParseMultipartForm(32 << 20); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
				return &server.HTTPError{Code: http.StatusRequestEntityTooLarge, Message: "file too large"}
			}
			return server.BadRequestf("malformed multipart form")
		}

		file, header, err := req.FormFile("file")
		if err != nil {
			return server.BadRequestf("no file provided")
		}
		defer file.Close()

		tempID, err := store.Save(
			c.StdContext(),
			header.Filename,
			header.Header.Get("Content-Type"),
			header.Size,
			file,
		)
		if err != nil {
			if errors.Is(err, ErrTooLarge) {
				return &server.HTTPError{Code: http.StatusRequestEntityTooLarge, Message: "file too large"}
			}
			return server.InternalError(err)
		}

		return c.JSON(http.StatusOK, map[string]string{"temp_id": tempID})
	}
}

// Claim retrieves a temp file by ID.
// Call this in a handler after receiving the temp_id.
//
// Example:
//
//	file, err := upload.Claim(c.StdContext(), store, tempID)
//	if err != nil {
//	    return err
//	}
//	defer file.Close()
//	// Use file.Path or file.Reader
func Claim(ctx context.Context, store Store, tempID string) (*File, error) {
	return store.Claim(ctx, tempID)
}
