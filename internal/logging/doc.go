// Package logging builds slog loggers with console and JSON handlers plus
// helper constructors for attrs and component-scoped loggers.
//
// The console handler renders "TIME LEVEL component: message key=value" lines
// for interactive use; the JSON handler emits machine-readable records with
// normalized ts/level/msg keys. Both honor the configured level.
package logging
