// Package blob stores catalogue image payloads and hands back the URLs the
// catalogue records.
//
// Two backends implement Store: an S3-compatible client used when a storage
// endpoint is configured, and a local filesystem store under the data
// directory used otherwise. Object keys follow the
// locations/<category>_<millis>_<filename> convention in both backends.
package blob
