// Package logging builds the slog loggers used across ytcatalog.
//
// Every component receives a *slog.Logger tagged with a "component" attribute
// via NewComponentLogger. Tests and wiring code that cannot fail use NewNop.
package logging
