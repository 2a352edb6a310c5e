package blob

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"atlas/internal/catalog"
	"atlas/internal/config"
	"atlas/internal/textutil"
)

// Store uploads catalogue images and returns publicly referenceable URLs.
type Store interface {
	// Upload writes the payload under the given key and returns the URL the
	// catalogue should record.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Delete removes a previously uploaded object. Unknown URLs are ignored.
	Delete(ctx context.Context, url string) error
	// Describe names the backing storage for logs and status output.
	Describe() string
}

// NewStore selects S3 storage when an endpoint is configured and falls back to
// the local media directory otherwise.
func NewStore(cfg *config.Config) (Store, error) {
	if cfg.Storage.Endpoint != "" {
		return newS3Store(cfg.Storage)
	}
	return newLocalStore(cfg.MediaDir())
}

// Key builds the object key for a catalogue image upload. The millisecond
// timestamp keeps repeated uploads of the same filename distinct.
func Key(category catalog.Category, filename string) string {
	return KeyAt(category, filename, time.Now())
}

// KeyAt is Key with an explicit timestamp, for deterministic tests.
func KeyAt(category catalog.Category, filename string, at time.Time) string {
	name := textutil.SanitizeFileName(filepath.Base(filename))
	return fmt.Sprintf("locations/%s_%d_%s", category, at.UnixMilli(), name)
}

// ContentType guesses a MIME type from the filename extension, defaulting to
// a generic binary type.
func ContentType(filename string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
