// Package catalog persists tourism catalogue records in SQLite and exposes
// the operations the CLI and bulk workflows build on.
//
// The Store manages database connections, schema initialization, per-category
// listing, and image reference updates. Records carry the editorial fields
// (title, description, location, price, history) plus the image URL and the
// image name tag that filename matching keys on.
//
// Schema changes bump the version in schema.go; the store refuses to open a
// database written by a different schema version.
package catalog
