package sinklog

import (
	"golang.org/x/time/rate"
)

// Logger is a named front end bound to exactly one sink. Records below the
// configured minimum level are dropped before formatting. Sink write errors
// are reported as diagnostics; callers that need the error use the sink
// directly via Sink().
type Logger struct {
	name    string
	level   int64
	sink    Sink
	limiter *rate.Limiter // nil = unlimited
}

func newLogger(name string, level int64, sink Sink) *Logger {
	return &Logger{
		name:  name,
		level: level,
		sink:  sink,
	}
}

// Name returns the logger's registered name.
func (l *Logger) Name() string { return l.name }

// Sink returns the underlying sink, for callers needing write errors or the
// flushable handle.
func (l *Logger) Sink() Sink { return l.sink }

// SetRateLimit caps emitted records per second; excess records are dropped.
// A limit of 0 disables rate limiting.
func (l *Logger) SetRateLimit(perSecond int64) {
	if perSecond <= 0 {
		l.limiter = nil
		return
	}
	l.limiter = rate.NewLimiter(rate.Limit(perSecond), int(perSecond))
}

// Debug logs a message at debug level
func (l *Logger) Debug(args ...any) {
	l.log(LevelDebug, nil, args...)
}

// Info logs a message at info level
func (l *Logger) Info(args ...any) {
	l.log(LevelInfo, nil, args...)
}

// Warning logs a message at warning level
func (l *Logger) Warning(args ...any) {
	l.log(LevelWarning, nil, args...)
}

// Error logs a message at error level
func (l *Logger) Error(args ...any) {
	l.log(LevelError, nil, args...)
}

// Critical logs a message at critical level
func (l *Logger) Critical(args ...any) {
	l.log(LevelCritical, nil, args...)
}

// Structured logs a message carrying RFC 5424 structured data. Only the
// syslog sink renders the data; other sinks emit the message line alone.
func (l *Logger) Structured(level int64, data StructuredData, args ...any) {
	l.log(level, data, args...)
}

// Flush forces the sink to emit buffered data.
func (l *Logger) Flush() error {
	return l.sink.Flush()
}

// log is the single emit path shared by all level methods.
func (l *Logger) log(level int64, data StructuredData, args ...any) {
	if level < l.level {
		return
	}
	if l.limiter != nil && !l.limiter.Allow() {
		return
	}

	rec := newRecord(l.name, level, renderMessage(args...), data)
	if l.level == LevelDebug {
		// The verbose pattern needs the emitting call site
		rec.Source = callerLocation(2)
	}

	if err := l.sink.Write(rec); err != nil {
		diagf("%v", err)
	}
}
