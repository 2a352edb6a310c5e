package testsupport

import (
	"context"
	"testing"

	"atlas/internal/catalog"
	"atlas/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewRecord creates a catalogue record for tests using the provided store.
func NewRecord(t testing.TB, store *catalog.Store, category catalog.Category, title string) *catalog.Record {
	t.Helper()

	record, err := store.Create(context.Background(), catalog.Record{
		Category:    category,
		Title:       title,
		Description: "test record",
		Location:    "Test City",
	})
	if err != nil {
		t.Fatalf("store.Create: %v", err)
	}
	return record
}
