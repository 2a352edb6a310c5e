package match

import (
	"path/filepath"
	"strings"

	"atlas/internal/catalog"
)

// Normalize reduces a filename to a comparable form: the extension is
// stripped, underscores and hyphens become spaces, and the result is
// lowercased and trimmed.
func Normalize(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	return strings.TrimSpace(strings.ToLower(base))
}

// Best returns the candidate record a filename most plausibly belongs to, or
// nil when nothing matches. Only the filename is normalized; titles are
// compared as written, lower-cased. Candidates are considered in order, with
// three tiers of decreasing confidence:
//
//  1. a record whose image name tag equals the raw filename, case-insensitively
//  2. a record whose lower-cased title equals the normalized filename
//  3. the first record whose lower-cased title contains, or is contained in,
//     the normalized filename
//
// The function reads its inputs only; repeated calls with the same arguments
// return the same result.
func Best(filename string, candidates []*catalog.Record) *catalog.Record {
	normalized := Normalize(filename)

	for _, record := range candidates {
		if record.ImageName != "" && strings.EqualFold(record.ImageName, filename) {
			return record
		}
	}

	for _, record := range candidates {
		if strings.ToLower(record.Title) == normalized {
			return record
		}
	}

	if normalized == "" {
		return nil
	}
	for _, record := range candidates {
		title := strings.ToLower(record.Title)
		if title == "" {
			continue
		}
		if strings.Contains(title, normalized) || strings.Contains(normalized, title) {
			return record
		}
	}

	return nil
}
