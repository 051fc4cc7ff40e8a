// Package logging provides the structured logger used by the eyeosee tooling.
package logging

// Logger is a structured, leveled logger.
//
// Every method takes a message and optional key/value pairs:
//
//	logger.Info("container generated", "output", path, "items", 4)
//
// Logger writes to stderr or a log file, never to stdout.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// With returns a Logger that adds args to every record.
	With(args ...any) Logger
}
