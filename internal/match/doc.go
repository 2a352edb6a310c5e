// Package match pairs image filenames with catalogue records.
//
// Matching is purely lexical: filenames are normalized to lowercase
// space-separated words, titles are lower-cased as written, and the two are
// compared by image name tag, exact title, and substring containment in that
// order. The package holds no state and performs no IO, so callers can re-run
// it freely over a working set.
package match
