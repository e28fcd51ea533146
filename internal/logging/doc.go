// Package logging configures structured slog loggers for the CLI and the
// correction engine.
//
// Two output formats are supported: a human-oriented console format and
// machine-readable JSON. Construction goes through Options or directly from
// application config; attribute helpers mirror the slog constructors so call
// sites stay terse.
package logging
