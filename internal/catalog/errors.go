package catalog

import "errors"

// ErrNotFound indicates the requested record does not exist. Bulk operations
// rely on this sentinel to record a per-item failure reason instead of
// treating a missing record as a generic fault.
var ErrNotFound = errors.New("record not found")

// ErrTitleRequired indicates an attempt to persist a record without a title.
// Titles are the primary matching key; untitled records would be invisible to
// filename matching.
var ErrTitleRequired = errors.New("record title is required")

// ErrUnknownCategory indicates a category outside the known collection set.
var ErrUnknownCategory = errors.New("unknown category")
