package bulkimage

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"atlas/internal/blob"
	"atlas/internal/catalog"
	"atlas/internal/logging"
)

// ImageStore is the catalogue surface the updater needs.
type ImageStore interface {
	UpdateImage(ctx context.Context, id, imageURL, imageName string) (*catalog.Record, error)
}

// Updater uploads a file's payload to blob storage and points the matched
// record's image reference at the resulting URL.
type Updater struct {
	blobs  blob.Store
	store  ImageStore
	logger *slog.Logger
}

// NewUpdater wires the blob and catalogue stores together. A nil logger
// disables logging.
func NewUpdater(blobs blob.Store, store ImageStore, logger *slog.Logger) *Updater {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Updater{blobs: blobs, store: store, logger: logger}
}

// Apply implements Applier.
func (u *Updater) Apply(ctx context.Context, m Match) (string, error) {
	data, err := os.ReadFile(m.File.Path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", m.File.Name, err)
	}

	key := blob.Key(m.Record.Category, m.File.Name)
	url, err := u.blobs.Upload(ctx, key, data, blob.ContentType(m.File.Name))
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", m.File.Name, err)
	}

	if _, err := u.store.UpdateImage(ctx, m.Record.ID, url, m.File.Name); err != nil {
		return "", fmt.Errorf("update record %s: %w", m.Record.ID, err)
	}

	u.logger.Info("image updated",
		logging.String("file", m.File.Name),
		logging.String(logging.FieldRecordID, m.Record.ID),
		logging.String("url", url))
	return url, nil
}
