package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"atlas/internal/catalog"
	"atlas/internal/testsupport"
)

func TestCreateAssignsIDAndPlaceholder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	record, err := store.Create(ctx, catalog.Record{
		Category:    catalog.CategoryVisit,
		Title:       "Sahara Desert",
		Description: "Vast dunes south of the Atlas mountains",
		Location:    "Merzouga",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if record.ID == "" {
		t.Fatal("expected record ID to be assigned")
	}
	if record.ImageURL != catalog.PlaceholderImageURL {
		t.Fatalf("expected placeholder image URL, got %q", record.ImageURL)
	}

	fetched, err := store.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.Title != "Sahara Desert" {
		t.Fatalf("unexpected fetched record: %#v", fetched)
	}
	if fetched.Category != catalog.CategoryVisit {
		t.Fatalf("unexpected category %q", fetched.Category)
	}
}

func TestCreateRequiresTitle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	_, err := store.Create(context.Background(), catalog.Record{
		Category: catalog.CategoryVisit,
		Title:    "   ",
	})
	if !errors.Is(err, catalog.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	_, err := store.Create(context.Background(), catalog.Record{
		Category: catalog.Category("museum"),
		Title:    "Bardo Museum",
	})
	if !errors.Is(err, catalog.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	_, err := store.GetByID(context.Background(), "missing-id")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	first, err := store.Create(ctx, catalog.Record{Category: catalog.CategoryVisit, Title: "Old Medina"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	second, err := store.Create(ctx, catalog.Record{Category: catalog.CategoryVisit, Title: "Chefchaouen"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, catalog.Record{Category: catalog.CategoryStadium, Title: "Grand Stade"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	records, err := store.List(ctx, catalog.CategoryVisit)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != second.ID || records[1].ID != first.ID {
		t.Fatalf("expected newest-first ordering, got %q then %q", records[0].Title, records[1].Title)
	}
}

func TestUpdatePersistsFields(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	record := testsupport.NewRecord(t, store, catalog.CategoryAccommodation, "Riad Fes")
	record.Description = "Traditional courtyard hotel"
	record.Price = "120 EUR"
	if err := store.Update(ctx, record); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	fetched, err := store.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.Description != "Traditional courtyard hotel" || fetched.Price != "120 EUR" {
		t.Fatalf("update not persisted: %#v", fetched)
	}
}

func TestUpdateImageRewritesReference(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	record := testsupport.NewRecord(t, store, catalog.CategoryVisit, "Sahara Desert")

	updated, err := store.UpdateImage(ctx, record.ID, "https://cdn.example.com/sahara.jpg", "sahara_desert.jpg")
	if err != nil {
		t.Fatalf("UpdateImage failed: %v", err)
	}
	if updated.ImageURL != "https://cdn.example.com/sahara.jpg" {
		t.Fatalf("unexpected image URL %q", updated.ImageURL)
	}
	if updated.ImageName != "sahara_desert.jpg" {
		t.Fatalf("unexpected image name %q", updated.ImageName)
	}
	if !updated.HasImage() {
		t.Fatal("expected HasImage to report true after update")
	}
}

func TestUpdateImageNotFound(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	_, err := store.UpdateImage(context.Background(), "missing-id", "https://cdn.example.com/x.jpg", "x.jpg")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteAndClear(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	record := testsupport.NewRecord(t, store, catalog.CategoryEvent, "Gnaoua Festival")
	testsupport.NewRecord(t, store, catalog.CategoryEvent, "Mawazine")

	deleted, err := store.Delete(ctx, record.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !deleted {
		t.Fatal("expected Delete to report a removed row")
	}

	deleted, err = store.Delete(ctx, record.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted {
		t.Fatal("expected second Delete to report no removed row")
	}

	removed, err := store.Clear(ctx, catalog.CategoryEvent)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 cleared record, got %d", removed)
	}
}

func TestCountStats(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	testsupport.NewRecord(t, store, catalog.CategoryVisit, "Sahara Desert")
	testsupport.NewRecord(t, store, catalog.CategoryVisit, "Atlas Mountains")
	testsupport.NewRecord(t, store, catalog.CategoryFeature, "Desert Tours")

	stats, err := store.CountStats(context.Background())
	if err != nil {
		t.Fatalf("CountStats failed: %v", err)
	}
	if stats.Total != 3 {
		t.Fatalf("expected total 3, got %d", stats.Total)
	}
	if stats.PerCategory[catalog.CategoryVisit] != 2 {
		t.Fatalf("expected 2 visit records, got %d", stats.PerCategory[catalog.CategoryVisit])
	}
	if stats.PerCategory[catalog.CategoryFeature] != 1 {
		t.Fatalf("expected 1 feature record, got %d", stats.PerCategory[catalog.CategoryFeature])
	}
}
