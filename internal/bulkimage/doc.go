// Package bulkimage drives batch image updates against the catalogue.
//
// A Session holds the working set: files selected for upload, a snapshot of
// candidate records, and the automatic pairing computed by the match package.
// Pairings can be overridden per file or recomputed wholesale. Run then walks
// the matched subset sequentially, uploading each payload and rewriting the
// record's image reference. Individual failures are recorded and the run
// carries on; the caller receives one Summary with success and error counts
// when everything has been attempted.
package bulkimage
