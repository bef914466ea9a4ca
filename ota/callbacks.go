package ota

import "time"

// Update phases reported through ProgressCallback.
const (
	// PhaseParsing - parsing the image header from the source
	PhaseParsing = "parsing"

	// PhaseVersionCheck - querying and comparing firmware versions
	PhaseVersionCheck = "version-check"

	// PhaseBegin - allocating the co-processor staging area
	PhaseBegin = "beginning"

	// PhaseTransfer - streaming firmware chunks
	PhaseTransfer = "transferring"

	// PhaseEnd - finalizing and validating the staged image
	PhaseEnd = "finalizing"

	// PhaseComplete - transfer finished successfully
	PhaseComplete = "complete"
)

// Progress contains information about a running update.
// Passed to ProgressCallback during Update.
type Progress struct {
	// Phase is the current update phase (see Phase constants)
	Phase string

	// BytesWritten is the number of image bytes transferred so far
	BytesWritten int

	// TotalBytes is the structurally computed image size
	TotalBytes int

	// Percentage is the completion percentage (0.0 to 100.0)
	Percentage float64

	// Chunks is the number of write calls issued so far
	Chunks int

	// Elapsed is the time since the update started
	Elapsed time.Duration
}

// ProgressCallback is called periodically during an update to report
// progress. Implementations should return quickly: the callback runs on
// the transfer goroutine between blocking write round trips.
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the
// updater. This allows integration with any logging framework.
//
// Example with the standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Warn(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Warn logs a warning with optional key-value pairs
	Warn(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
