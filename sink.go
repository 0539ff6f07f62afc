package sinklog

import (
	"io"
	"os"
	"sync"
)

// Sink is a configured destination that accepts log records.
// Sinks serialize their own writes; rollover and buffer-flush sequences are
// atomic with respect to Write on the same sink.
type Sink interface {
	// Write persists or transmits one record.
	Write(rec Record) error
	// Flush forces buffered data out (mail send, file sync).
	Flush() error
	// Close flushes and releases the sink's resources.
	Close() error
}

// ConsoleSink writes colored lines to stdout or stderr.
type ConsoleSink struct {
	mu        sync.Mutex
	w         io.Writer
	formatter *Formatter
}

// NewConsoleSink creates a console sink. Console construction cannot fail;
// it is the degradation target for every other sink.
func NewConsoleSink(cfg ConsoleConfig) *ConsoleSink {
	level, err := NormalizeLevel(cfg.Level, LevelInfo)
	if err != nil {
		diagf("%v", err)
	}

	var w io.Writer = os.Stderr
	if cfg.Target == "stdout" {
		w = os.Stdout
	}

	colors := cfg.Colors
	if colors == (LevelColors{}) {
		colors = DefaultColors()
	}

	return &ConsoleSink{
		w:         w,
		formatter: NewFormatter(level, parseTimeZoneStyle(cfg.TimeZone)).WithColors(colors),
	}
}

// newConsoleSinkWriter is the test seam for capturing console output.
func newConsoleSinkWriter(w io.Writer, level int64, zone TimeZoneStyle, colors LevelColors) *ConsoleSink {
	return &ConsoleSink{
		w:         w,
		formatter: NewFormatter(level, zone).WithColors(colors),
	}
}

// Write renders and emits one line.
func (s *ConsoleSink) Write(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := s.formatter.Format(rec)
	line = append(line, '\n')
	_, err := s.w.Write(line)
	return err
}

// Flush is a no-op for console output.
func (s *ConsoleSink) Flush() error { return nil }

// Close is a no-op; the sink does not own its writer.
func (s *ConsoleSink) Close() error { return nil }
