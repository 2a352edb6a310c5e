package catalog

import (
	"strings"
	"time"
)

// Category identifies which catalogue collection a record belongs to.
type Category string

const (
	CategoryVisit         Category = "visit"
	CategoryAccommodation Category = "accommodation"
	CategoryStadium       Category = "stadium"
	CategoryFeature       Category = "feature"
	CategoryEvent         Category = "event"
)

// PlaceholderImageURL is stored for records without an uploaded image.
const PlaceholderImageURL = "/api/placeholder/300/200"

var allCategories = []Category{
	CategoryVisit,
	CategoryAccommodation,
	CategoryStadium,
	CategoryFeature,
	CategoryEvent,
}

var categorySet = func() map[Category]struct{} {
	set := make(map[Category]struct{}, len(allCategories))
	for _, category := range allCategories {
		set[category] = struct{}{}
	}
	return set
}()

// AllCategories returns the ordered list of known categories.
func AllCategories() []Category {
	cp := make([]Category, len(allCategories))
	copy(cp, allCategories)
	return cp
}

// ParseCategory converts a string into a known Category.
func ParseCategory(value string) (Category, bool) {
	normalized := Category(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := categorySet[normalized]
	return normalized, ok
}

// RequiresLocation reports whether records in this category carry a location.
// Feature articles are the only category without one.
func (c Category) RequiresLocation() bool {
	return c != CategoryFeature
}

// Record is a catalogue entry persisted in SQLite.
type Record struct {
	ID          string
	Category    Category
	Title       string
	Description string
	Location    string
	Price       string
	History     string
	ImageURL    string
	ImageName   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasImage reports whether the record carries an uploaded image rather than
// the placeholder.
func (r Record) HasImage() bool {
	url := strings.TrimSpace(r.ImageURL)
	return url != "" && url != PlaceholderImageURL
}

// Stats aggregates record counts per category.
type Stats struct {
	Total       int
	PerCategory map[Category]int
}
