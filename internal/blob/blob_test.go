package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"atlas/internal/catalog"
	"atlas/internal/testsupport"
)

func TestKeyAtFormat(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	key := KeyAt(catalog.CategoryVisit, "sahara_desert.jpg", at)
	if key != "locations/visit_1700000000000_sahara_desert.jpg" {
		t.Fatalf("unexpected key %q", key)
	}
}

func TestKeyAtStripsDirectories(t *testing.T) {
	at := time.UnixMilli(42)
	key := KeyAt(catalog.CategoryStadium, "/tmp/uploads/stadium.png", at)
	if key != "locations/stadium_42_stadium.png" {
		t.Fatalf("unexpected key %q", key)
	}
}

func TestContentType(t *testing.T) {
	if ct := ContentType("photo.jpg"); ct != "image/jpeg" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if ct := ContentType("archive.bin.unknownext"); ct != "application/octet-stream" {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestNewStoreFallsBackToLocal(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := NewStore(cfg)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if !strings.HasPrefix(store.Describe(), "local directory") {
		t.Fatalf("expected local store, got %q", store.Describe())
	}
}

func TestLocalStoreUploadAndDelete(t *testing.T) {
	root := t.TempDir()
	store, err := newLocalStore(root)
	if err != nil {
		t.Fatalf("newLocalStore: %v", err)
	}

	ctx := context.Background()
	url, err := store.Upload(ctx, "locations/visit_1_sahara.jpg", []byte("payload"), "image/jpeg")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.HasPrefix(url, "file://") {
		t.Fatalf("expected file URL, got %q", url)
	}

	target := filepath.Join(root, "locations", "visit_1_sahara.jpg")
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read uploaded file: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("unexpected payload %q", data)
	}

	if err := store.Delete(ctx, url); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err: %v", err)
	}
}

func TestLocalStoreDeleteIgnoresForeignURLs(t *testing.T) {
	store, err := newLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("newLocalStore: %v", err)
	}
	if err := store.Delete(context.Background(), "https://cdn.example.com/a.jpg"); err != nil {
		t.Fatalf("Delete foreign URL: %v", err)
	}
	if err := store.Delete(context.Background(), "file:///etc/passwd"); err != nil {
		t.Fatalf("Delete outside root: %v", err)
	}
}
