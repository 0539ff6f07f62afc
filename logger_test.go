package sinklog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureSink records every record handed to Write.
type captureSink struct {
	records []Record
	flushed int
	closed  int
}

func (s *captureSink) Write(rec Record) error { s.records = append(s.records, rec); return nil }
func (s *captureSink) Flush() error           { s.flushed++; return nil }
func (s *captureSink) Close() error           { s.closed++; return nil }

func TestLoggerLevelGate(t *testing.T) {
	sink := &captureSink{}
	lg := newLogger("app", LevelWarning, sink)

	lg.Debug("dropped")
	lg.Info("dropped")
	lg.Warning("kept")
	lg.Error("kept")
	lg.Critical("kept")

	require.Len(t, sink.records, 3)
	assert.Equal(t, LevelWarning, sink.records[0].Level)
	assert.Equal(t, LevelError, sink.records[1].Level)
	assert.Equal(t, LevelCritical, sink.records[2].Level)
}

func TestLoggerRecordFields(t *testing.T) {
	sink := &captureSink{}
	lg := newLogger("worker", LevelInfo, sink)

	lg.Info("job", 42, "done")

	require.Len(t, sink.records, 1)
	rec := sink.records[0]
	assert.Equal(t, "worker", rec.Logger)
	assert.Equal(t, "job 42 done", rec.Message)
	assert.False(t, rec.Time.IsZero())
	assert.Equal(t, currentProcess, rec.Process)
	assert.Nil(t, rec.Source, "call site captured only at debug level")
}

func TestLoggerDebugCapturesCallSite(t *testing.T) {
	sink := &captureSink{}
	lg := newLogger("app", LevelDebug, sink)

	lg.Debug("trace me")

	require.Len(t, sink.records, 1)
	src := sink.records[0].Source
	require.NotNil(t, src)
	assert.Equal(t, "logger_test", src.Module)
	assert.Contains(t, src.Function, "TestLoggerDebugCapturesCallSite")
	assert.Greater(t, src.Line, 0)
}

func TestLoggerStructuredData(t *testing.T) {
	sink := &captureSink{}
	lg := newLogger("app", LevelInfo, sink)

	data := StructuredData{"meta@1": {"key": "value"}}
	lg.Structured(LevelError, data, "with data")

	require.Len(t, sink.records, 1)
	assert.Equal(t, data, sink.records[0].Data)
	assert.Equal(t, "with data", sink.records[0].Message)
}

func TestLoggerRateLimit(t *testing.T) {
	sink := &captureSink{}
	lg := newLogger("app", LevelInfo, sink)
	lg.SetRateLimit(5)

	for i := 0; i < 100; i++ {
		lg.Info("burst")
	}
	// A limiter of 5/s with burst 5 passes at most a handful of the tight loop
	assert.LessOrEqual(t, len(sink.records), 6)
	assert.GreaterOrEqual(t, len(sink.records), 1)

	lg.SetRateLimit(0)
	before := len(sink.records)
	for i := 0; i < 50; i++ {
		lg.Info("unlimited")
	}
	assert.Equal(t, before+50, len(sink.records))
}

func TestLoggerWriteErrorIsDiagnosed(t *testing.T) {
	buf := captureDiagnostics(t)

	lg := newLogger("app", LevelInfo, &failingSink{})
	lg.Info("will fail")

	assert.Contains(t, buf.String(), "write refused")
}

type failingSink struct{}

func (failingSink) Write(Record) error { return fmtErrorf("write refused") }
func (failingSink) Flush() error       { return nil }
func (failingSink) Close() error       { return nil }

func TestLoggerFlushDelegates(t *testing.T) {
	sink := &captureSink{}
	lg := newLogger("app", LevelInfo, sink)

	require.NoError(t, lg.Flush())
	assert.Equal(t, 1, sink.flushed)
}
