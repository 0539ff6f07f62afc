package sinklog

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatterCompactPattern(t *testing.T) {
	f := NewFormatter(LevelInfo, TimeZoneLocal)
	rec := Record{
		Time:    time.Date(2024, 3, 15, 9, 30, 45, 0, time.Local),
		Level:   LevelWarning,
		Logger:  "root",
		Message: "compact line",
		Process: currentProcess,
	}

	assert.Equal(t, "2024-03-15 09:30:45 - root - WARNING - compact line", string(f.Format(rec)))
}

func TestFormatterVerbosePattern(t *testing.T) {
	f := NewFormatter(LevelDebug, TimeZoneLocal)
	rec := Record{
		Time:    time.Date(2024, 3, 15, 9, 30, 45, 7*int(time.Millisecond), time.Local),
		Level:   LevelDebug,
		Logger:  "root",
		Message: "verbose line",
		Process: ProcessInfo{PID: 4242, Name: "testproc"},
		Source:  &SourceLocation{Module: "format_test", Function: "TestFormatterVerbosePattern", Line: 33},
	}

	out := string(f.Format(rec))
	assert.Equal(t,
		"2024-03-15 09:30:45,007 - root - DEBUG - <PID 4242:testproc> - format_test:TestFormatterVerbosePattern:33 - verbose line",
		out)
}

func TestFormatterVerboseWithoutSource(t *testing.T) {
	f := NewFormatter(LevelDebug, TimeZoneLocal)
	rec := Record{
		Time:    time.Date(2024, 3, 15, 9, 30, 45, 0, time.Local),
		Level:   LevelDebug,
		Logger:  "root",
		Message: "no source",
		Process: ProcessInfo{PID: 1, Name: "p"},
	}
	assert.Contains(t, string(f.Format(rec)), " - ?:?:0 - ")
}

func TestFormatterUTC(t *testing.T) {
	f := NewFormatter(LevelInfo, TimeZoneUTC)
	east := time.FixedZone("EAST", 3*3600)
	rec := Record{
		Time:    time.Date(2024, 3, 15, 12, 0, 0, 0, east),
		Level:   LevelInfo,
		Logger:  "root",
		Message: "utc line",
		Process: currentProcess,
	}

	assert.True(t, strings.HasPrefix(string(f.Format(rec)), "2024-03-15 09:00:00 - "))
}

func TestFormatterColorWrapping(t *testing.T) {
	f := NewFormatter(LevelInfo, TimeZoneLocal).WithColors(DefaultColors())

	tests := []struct {
		level int64
		color string
	}{
		{LevelDebug, DefaultDebugColor},
		{LevelInfo, DefaultInfoColor},
		{LevelWarning, DefaultWarningColor},
		{LevelError, DefaultErrorColor},
		{LevelCritical, DefaultCriticalColor},
	}

	for _, tt := range tests {
		out := string(f.Format(Record{
			Time:    time.Now(),
			Level:   tt.level,
			Logger:  "root",
			Message: "colored",
			Process: currentProcess,
		}))
		assert.True(t, strings.HasPrefix(out, tt.color), "level %s", levelToString(tt.level))
		assert.True(t, strings.HasSuffix(out, DefaultResetColor), "level %s", levelToString(tt.level))
	}
}

func TestParseTimeZoneStyle(t *testing.T) {
	assert.Equal(t, TimeZoneUTC, parseTimeZoneStyle("utc"))
	assert.Equal(t, TimeZoneUTC, parseTimeZoneStyle(" UTC "))
	assert.Equal(t, TimeZoneLocal, parseTimeZoneStyle("local"))
	assert.Equal(t, TimeZoneLocal, parseTimeZoneStyle("gibberish"))
	assert.Equal(t, TimeZoneLocal, parseTimeZoneStyle(""))
}

func TestRenderMessage(t *testing.T) {
	assert.Equal(t, "plain", renderMessage("plain"))
	assert.Equal(t, "a b 3", renderMessage("a", "b", 3))
	assert.Equal(t, "count 42 ok true", renderMessage("count", int64(42), "ok", true))
	assert.Equal(t, "pi 3.5", renderMessage("pi", 3.5))
	assert.Equal(t, "nil", renderMessage(nil))
	assert.Equal(t, "boom", renderMessage(errors.New("boom")))

	// Unsupported types go through spew
	out := renderMessage(struct{ A int }{A: 1})
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "1")
}

func TestFormatterBufferReuse(t *testing.T) {
	f := NewFormatter(LevelInfo, TimeZoneLocal)
	rec := Record{Time: time.Now(), Level: LevelInfo, Logger: "root", Message: "one", Process: currentProcess}

	first := f.Format(rec)
	firstCopy := string(first)

	rec.Message = "two"
	second := string(f.Format(rec))

	assert.NotEqual(t, firstCopy, second)
	assert.Regexp(t, regexp.MustCompile(`one$`), firstCopy)
	require.Regexp(t, regexp.MustCompile(`two$`), second)
}
