package sinklog

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// TimeZoneStyle selects local or UTC rendering of timestamps.
type TimeZoneStyle string

const (
	TimeZoneLocal TimeZoneStyle = "local"
	TimeZoneUTC   TimeZoneStyle = "utc"
)

// parseTimeZoneStyle normalizes user input; anything but "utc" is local.
func parseTimeZoneStyle(s string) TimeZoneStyle {
	if strings.ToLower(strings.TrimSpace(s)) == "utc" {
		return TimeZoneUTC
	}
	return TimeZoneLocal
}

// LevelColors holds the ANSI escapes used to wrap console lines per level.
type LevelColors struct {
	Debug    string
	Info     string
	Warning  string
	Error    string
	Critical string
	Reset    string
}

// DefaultColors returns the stock color table.
func DefaultColors() LevelColors {
	return LevelColors{
		Debug:    DefaultDebugColor,
		Info:     DefaultInfoColor,
		Warning:  DefaultWarningColor,
		Error:    DefaultErrorColor,
		Critical: DefaultCriticalColor,
		Reset:    DefaultResetColor,
	}
}

func (c LevelColors) forLevel(level int64) string {
	switch {
	case level >= LevelCritical:
		return c.Critical
	case level >= LevelError:
		return c.Error
	case level >= LevelWarning:
		return c.Warning
	case level >= LevelInfo:
		return c.Info
	default:
		return c.Debug
	}
}

// Formatter renders records as single text lines without a trailing newline.
// The verbose pattern (pid, source location, millisecond timestamps) is
// selected when the configured sink level is DEBUG; all other levels use the
// compact pattern. Not safe for concurrent use; each sink owns one instance
// and serializes access with its own mutex.
type Formatter struct {
	verbose bool
	utc     bool
	colors  *LevelColors
	buf     []byte
}

// NewFormatter creates a formatter for the given sink level and zone style.
func NewFormatter(level int64, zone TimeZoneStyle) *Formatter {
	return &Formatter{
		verbose: level == LevelDebug,
		utc:     zone == TimeZoneUTC,
		buf:     make([]byte, 0, 256),
	}
}

// WithColors enables ANSI color wrapping, used for console destinations.
func (f *Formatter) WithColors(colors LevelColors) *Formatter {
	c := colors
	f.colors = &c
	return f
}

// Format renders a record. The returned slice is reused on the next call.
func (f *Formatter) Format(rec Record) []byte {
	f.buf = f.buf[:0]

	if f.colors != nil {
		f.buf = append(f.buf, f.colors.forLevel(rec.Level)...)
	}

	t := rec.Time
	if f.utc {
		t = t.UTC()
	}
	f.buf = t.AppendFormat(f.buf, compactTimeFormat)
	if f.verbose {
		f.buf = append(f.buf, ',')
		ms := t.Nanosecond() / int(time.Millisecond)
		if ms < 100 {
			f.buf = append(f.buf, '0')
		}
		if ms < 10 {
			f.buf = append(f.buf, '0')
		}
		f.buf = strconv.AppendInt(f.buf, int64(ms), 10)
	}

	f.buf = append(f.buf, " - "...)
	f.buf = append(f.buf, rec.Logger...)
	f.buf = append(f.buf, " - "...)
	f.buf = append(f.buf, levelToString(rec.Level)...)
	f.buf = append(f.buf, " - "...)

	if f.verbose {
		f.buf = append(f.buf, "<PID "...)
		f.buf = strconv.AppendInt(f.buf, int64(rec.Process.PID), 10)
		f.buf = append(f.buf, ':')
		f.buf = append(f.buf, rec.Process.Name...)
		f.buf = append(f.buf, "> - "...)
		if rec.Source != nil {
			f.buf = append(f.buf, rec.Source.Module...)
			f.buf = append(f.buf, ':')
			f.buf = append(f.buf, rec.Source.Function...)
			f.buf = append(f.buf, ':')
			f.buf = strconv.AppendInt(f.buf, int64(rec.Source.Line), 10)
		} else {
			f.buf = append(f.buf, "?:?:0"...)
		}
		f.buf = append(f.buf, " - "...)
	}

	f.buf = append(f.buf, rec.Message...)

	if f.colors != nil {
		f.buf = append(f.buf, f.colors.Reset...)
	}
	return f.buf
}

// renderMessage joins log arguments space-separated into the message body.
func renderMessage(args ...any) string {
	var buf []byte
	for i, arg := range args {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = appendValue(buf, arg)
	}
	return string(buf)
}

// appendValue converts a value to its text representation.
// Unsupported types are delegated to spew for compact structured output.
func appendValue(buf []byte, v any) []byte {
	switch val := v.(type) {
	case string:
		return append(buf, val...)
	case int:
		return strconv.AppendInt(buf, int64(val), 10)
	case int64:
		return strconv.AppendInt(buf, val, 10)
	case uint:
		return strconv.AppendUint(buf, uint64(val), 10)
	case uint64:
		return strconv.AppendUint(buf, val, 10)
	case float32:
		return strconv.AppendFloat(buf, float64(val), 'f', -1, 32)
	case float64:
		return strconv.AppendFloat(buf, val, 'f', -1, 64)
	case bool:
		return strconv.AppendBool(buf, val)
	case nil:
		return append(buf, "nil"...)
	case time.Time:
		return val.AppendFormat(buf, compactTimeFormat)
	case error:
		return append(buf, val.Error()...)
	case fmt.Stringer:
		return append(buf, val.String()...)
	default:
		var b bytes.Buffer
		dumper := &spew.ConfigState{
			Indent:                  " ",
			MaxDepth:                10,
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		}
		dumper.Fdump(&b, val)
		return append(buf, bytes.TrimSpace(b.Bytes())...)
	}
}
