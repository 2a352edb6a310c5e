// Package notifications delivers catalogue workflow events via ntfy.
//
// The default implementation publishes to the topic configured in config.toml
// and gracefully degrades to a no-op when no topic is set. Per-event toggles
// let operators subscribe to imports, bulk image runs, or errors
// independently. All workflow code depends only on the Service interface.
package notifications
