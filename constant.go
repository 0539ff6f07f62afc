package sinklog

// Log level constants, spaced to leave room for intermediate levels
const (
	LevelDebug    int64 = -4
	LevelInfo     int64 = 0
	LevelWarning  int64 = 4
	LevelError    int64 = 8
	LevelCritical int64 = 12
)

// Default ANSI color escapes per level
const (
	DefaultDebugColor    = "\x1b[34;20m" // Blue
	DefaultInfoColor     = "\x1b[38;20m" // Grey
	DefaultWarningColor  = "\x1b[33;20m" // Yellow
	DefaultErrorColor    = "\x1b[31;20m" // Red
	DefaultCriticalColor = "\x1b[31;1m"  // Bold red
	DefaultResetColor    = "\x1b[0m"
)

// File sink defaults
const (
	DefaultMaxBytes    int64 = 10 * 1024 * 1024
	DefaultBackupCount int64 = 5
	DefaultEncoding          = "utf-8"
)

// Mail sink defaults
const (
	DefaultSMTPPort     int64 = 587
	DefaultMailCapacity int64 = 100
)

// Syslog sink defaults
const (
	DefaultSyslogPort int64 = 1514
	// RFC 5424 facility for user-level messages
	facilityUser = 1
)

// Fixed date/time patterns shared by all sinks
const (
	compactTimeFormat = "2006-01-02 15:04:05"
	rfc5424TimeFormat = "2006-01-02T15:04:05.999999"
)
