package logging

// LogEntry represents a structured log record with fields particularly relevant to optimization runs.
type LogEntry struct {
	// Standard fields
	Time     int64
	Severity Severity
	Message  string
	File     string
	Line     int
	Function string

	// Run-specific fields
	RunID      string // Identifier of the optimization run, if any
	Generation int    // Generation counter at the time of logging (0 if unknown)

	// General structured data
	Fields map[string]interface{}
}
