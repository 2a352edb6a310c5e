package bulkimage

import (
	"errors"
	"testing"

	"atlas/internal/catalog"
)

func sessionRecords() []*catalog.Record {
	return []*catalog.Record{
		{ID: "r1", Category: catalog.CategoryVisit, Title: "Sahara Desert"},
		{ID: "r2", Category: catalog.CategoryVisit, Title: "Atlas Mountains"},
		{ID: "r3", Category: catalog.CategoryVisit, Title: "Chefchaouen"},
	}
}

func TestSelectFilesComputesMatches(t *testing.T) {
	session := NewSession(sessionRecords())
	if err := session.SelectFiles([]File{
		{Name: "sahara_desert.jpg"},
		{Name: "unknown.png"},
	}); err != nil {
		t.Fatalf("SelectFiles: %v", err)
	}

	matches := session.Matches()
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Record == nil || matches[0].Record.ID != "r1" {
		t.Fatalf("expected sahara_desert.jpg matched to r1, got %#v", matches[0].Record)
	}
	if matches[1].Record != nil {
		t.Fatalf("expected unknown.png unmatched, got %#v", matches[1].Record)
	}
	if session.MatchedCount() != 1 || session.TotalCount() != 2 {
		t.Fatalf("unexpected counts: matched=%d total=%d", session.MatchedCount(), session.TotalCount())
	}
}

func TestSelectFilesEmptyKeepsWorkingSet(t *testing.T) {
	session := NewSession(sessionRecords())
	if err := session.SelectFiles([]File{{Name: "sahara_desert.jpg"}}); err != nil {
		t.Fatalf("SelectFiles: %v", err)
	}
	if err := session.SelectFiles(nil); err != nil {
		t.Fatalf("SelectFiles empty: %v", err)
	}
	if session.TotalCount() != 1 {
		t.Fatalf("expected working set preserved, got %d files", session.TotalCount())
	}
}

func TestAssignOverridesAndReanalyzeDiscards(t *testing.T) {
	session := NewSession(sessionRecords())
	if err := session.SelectFiles([]File{{Name: "unknown.png"}}); err != nil {
		t.Fatalf("SelectFiles: %v", err)
	}

	if err := session.Assign("unknown.png", "r3"); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	matches := session.Matches()
	if matches[0].Record == nil || matches[0].Record.ID != "r3" {
		t.Fatalf("expected manual assignment to r3, got %#v", matches[0].Record)
	}

	if err := session.Reanalyze(); err != nil {
		t.Fatalf("Reanalyze: %v", err)
	}
	if got := session.Matches()[0].Record; got != nil {
		t.Fatalf("expected reanalyze to discard override, got %#v", got)
	}
}

func TestAssignIgnoresUnknownRecordID(t *testing.T) {
	session := NewSession(sessionRecords())
	if err := session.SelectFiles([]File{{Name: "sahara_desert.jpg"}}); err != nil {
		t.Fatalf("SelectFiles: %v", err)
	}
	if err := session.Assign("sahara_desert.jpg", "nope"); err != nil {
		t.Fatalf("Assign unknown id: %v", err)
	}
	if got := session.Matches()[0].Record; got == nil || got.ID != "r1" {
		t.Fatalf("expected pairing unchanged, got %#v", got)
	}
}

func TestFilterMatchesFilenameAndTitle(t *testing.T) {
	session := NewSession(sessionRecords())
	if err := session.SelectFiles([]File{
		{Name: "sahara_desert.jpg"},
		{Name: "atlas_mountains.jpg"},
		{Name: "unknown.png"},
	}); err != nil {
		t.Fatalf("SelectFiles: %v", err)
	}

	if got := session.Filter("SAHARA"); len(got) != 1 || got[0].File.Name != "sahara_desert.jpg" {
		t.Fatalf("unexpected filter result: %#v", got)
	}
	if got := session.Filter("Mountains"); len(got) != 1 || got[0].File.Name != "atlas_mountains.jpg" {
		t.Fatalf("unexpected title filter result: %#v", got)
	}
	if got := session.Filter(""); len(got) != 3 {
		t.Fatalf("expected empty query to return everything, got %d", len(got))
	}
}

func TestBeginGatesMutations(t *testing.T) {
	session := NewSession(sessionRecords())
	if err := session.SelectFiles([]File{{Name: "sahara_desert.jpg"}}); err != nil {
		t.Fatalf("SelectFiles: %v", err)
	}

	matched, err := session.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if len(matched) != 1 {
		t.Fatalf("expected 1 matched file, got %d", len(matched))
	}

	if err := session.SelectFiles([]File{{Name: "other.jpg"}}); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy from SelectFiles, got %v", err)
	}
	if err := session.Reanalyze(); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy from Reanalyze, got %v", err)
	}
	if err := session.Assign("sahara_desert.jpg", "r2"); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy from Assign, got %v", err)
	}
	if _, err := session.Begin(); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy from second Begin, got %v", err)
	}

	session.Finish()
	if err := session.Reanalyze(); err != nil {
		t.Fatalf("Reanalyze after Finish: %v", err)
	}
}

func TestBeginRequiresMatches(t *testing.T) {
	session := NewSession(sessionRecords())
	if err := session.SelectFiles([]File{{Name: "unknown.png"}}); err != nil {
		t.Fatalf("SelectFiles: %v", err)
	}
	if _, err := session.Begin(); !errors.Is(err, ErrNoMatches) {
		t.Fatalf("expected ErrNoMatches, got %v", err)
	}
}
