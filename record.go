package sinklog

import (
	"os"
	"path/filepath"
	"time"
)

// StructuredData maps RFC 5424 SD-IDs to parameter name/value pairs.
// SD-IDs and parameter names are passed through unvalidated; an ID
// containing a space or ']' corrupts the syslog frame.
type StructuredData map[string]map[string]string

// SourceLocation identifies the code position that emitted a record.
type SourceLocation struct {
	Module   string
	Function string
	Line     int
}

// ProcessInfo identifies the emitting process.
type ProcessInfo struct {
	PID  int
	Name string
}

// Record is a single log entry. Immutable once created.
type Record struct {
	Time    time.Time
	Level   int64
	Logger  string
	Message string
	Source  *SourceLocation
	Process ProcessInfo
	Data    StructuredData
}

// currentProcess is captured once; pid and name do not change
var currentProcess = ProcessInfo{
	PID:  os.Getpid(),
	Name: filepath.Base(os.Args[0]),
}

// newRecord assembles a record with the current time and process identity.
func newRecord(logger string, level int64, message string, data StructuredData) Record {
	return Record{
		Time:    time.Now(),
		Level:   level,
		Logger:  logger,
		Message: message,
		Process: currentProcess,
		Data:    data,
	}
}
