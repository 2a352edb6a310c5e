package bulkimage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"atlas/internal/blob"
	"atlas/internal/catalog"
	"atlas/internal/testsupport"
)

type fakeApplier struct {
	failOn map[string]error
	seen   []string
}

func (f *fakeApplier) Apply(ctx context.Context, m Match) (string, error) {
	f.seen = append(f.seen, m.File.Name)
	if err, ok := f.failOn[m.File.Name]; ok {
		return "", err
	}
	return "https://cdn.example.com/" + m.File.Name, nil
}

func matchFor(name, id, title string) Match {
	return Match{
		File:   File{Name: name},
		Record: &catalog.Record{ID: id, Category: catalog.CategoryVisit, Title: title},
	}
}

func TestRunCountsSuccessesAndErrors(t *testing.T) {
	applier := &fakeApplier{failOn: map[string]error{
		"broken.jpg": errors.New("upload refused"),
	}}
	matches := []Match{
		matchFor("sahara.jpg", "r1", "Sahara Desert"),
		matchFor("broken.jpg", "r2", "Atlas Mountains"),
		matchFor("chefchaouen.jpg", "r3", "Chefchaouen"),
	}

	summary := Run(context.Background(), matches, applier, nil)
	if summary.SuccessCount != 2 || summary.ErrorCount != 1 {
		t.Fatalf("unexpected counts: %d/%d", summary.SuccessCount, summary.ErrorCount)
	}
	if len(summary.Items) != 3 {
		t.Fatalf("expected 3 item outcomes, got %d", len(summary.Items))
	}
	if summary.Items[1].Err == nil {
		t.Fatal("expected error recorded for broken.jpg")
	}
	if len(applier.seen) != 3 {
		t.Fatalf("expected all items attempted, got %v", applier.seen)
	}
}

func TestRunProgressMonotonicEndsAtHundred(t *testing.T) {
	applier := &fakeApplier{}
	matches := []Match{
		matchFor("a.jpg", "r1", "A"),
		matchFor("b.jpg", "r2", "B"),
		matchFor("c.jpg", "r3", "C"),
	}

	var percents []int
	Run(context.Background(), matches, applier, func(p Progress) {
		percents = append(percents, p.Percent)
	})

	if len(percents) != 3 {
		t.Fatalf("expected 3 progress callbacks, got %d", len(percents))
	}
	for i := 1; i < len(percents); i++ {
		if percents[i] < percents[i-1] {
			t.Fatalf("progress regressed: %v", percents)
		}
	}
	if percents[len(percents)-1] != 100 {
		t.Fatalf("expected final percent 100, got %d", percents[len(percents)-1])
	}
}

func TestRunProgressRounds(t *testing.T) {
	applier := &fakeApplier{}
	var matches []Match
	for i := 0; i < 3; i++ {
		matches = append(matches, matchFor(fmt.Sprintf("f%d.jpg", i), fmt.Sprintf("r%d", i), "T"))
	}

	var percents []int
	Run(context.Background(), matches, applier, func(p Progress) {
		percents = append(percents, p.Percent)
	})
	expected := []int{33, 67, 100}
	for i, want := range expected {
		if percents[i] != want {
			t.Fatalf("expected percents %v, got %v", expected, percents)
		}
	}
}

func TestRunCanceledContextFailsRemaining(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	applier := &fakeApplier{}
	matches := []Match{
		matchFor("a.jpg", "r1", "A"),
		matchFor("b.jpg", "r2", "B"),
	}

	var percents []int
	summary := Run(ctx, matches, applier, func(p Progress) {
		percents = append(percents, p.Percent)
	})
	if summary.SuccessCount != 0 || summary.ErrorCount != 2 {
		t.Fatalf("unexpected counts: %d/%d", summary.SuccessCount, summary.ErrorCount)
	}
	if len(applier.seen) != 0 {
		t.Fatalf("expected no items attempted after cancel, got %v", applier.seen)
	}
	if len(percents) != 2 || percents[len(percents)-1] != 100 {
		t.Fatalf("expected progress to reach 100 for canceled items, got %v", percents)
	}
}

func TestUpdaterAppliesEndToEnd(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	blobs, err := blob.NewStore(cfg)
	if err != nil {
		t.Fatalf("blob.NewStore: %v", err)
	}

	ctx := context.Background()
	sahara := testsupport.NewRecord(t, store, catalog.CategoryVisit, "Sahara Desert")
	chefchaouen := testsupport.NewRecord(t, store, catalog.CategoryVisit, "Chefchaouen")

	dir := t.TempDir()
	saharaPath := filepath.Join(dir, "sahara_desert.jpg")
	chefPath := filepath.Join(dir, "chefchaouen.jpg")
	testsupport.WriteFile(t, saharaPath, 64)
	testsupport.WriteFile(t, chefPath, 64)

	session := NewSession([]*catalog.Record{sahara, chefchaouen})
	if err := session.SelectFiles([]File{
		{Name: "sahara_desert.jpg", Path: saharaPath},
		{Name: "chefchaouen.jpg", Path: chefPath},
		{Name: "unknown.png", Path: filepath.Join(dir, "missing.png")},
	}); err != nil {
		t.Fatalf("SelectFiles: %v", err)
	}

	matched, err := session.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	defer session.Finish()
	if len(matched) != 2 {
		t.Fatalf("expected 2 matched files, got %d", len(matched))
	}

	summary := Run(ctx, matched, NewUpdater(blobs, store, nil), nil)
	if summary.SuccessCount != 2 || summary.ErrorCount != 0 {
		t.Fatalf("unexpected counts: %d/%d", summary.SuccessCount, summary.ErrorCount)
	}

	updated, err := store.GetByID(ctx, sahara.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.ImageName != "sahara_desert.jpg" {
		t.Fatalf("unexpected image name %q", updated.ImageName)
	}
	if !updated.HasImage() {
		t.Fatalf("expected image URL recorded, got %q", updated.ImageURL)
	}
}
