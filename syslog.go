package sinklog

import (
	"fmt"
	"net"
	"os"
	"sort"
	"strconv"
	"sync"
)

// SyslogFormatter renders one record as an RFC 5424 message:
//
//	VERSION TIMESTAMP HOSTNAME APPNAME PROCID MSGID STRUCTURED-DATA MESSAGE
//
// SD-IDs and parameter names are emitted unvalidated; a malformed ID
// containing a space or ']' corrupts the frame. Parameter values have ']',
// '"' and '\' escaped with a backslash prefix.
type SyslogFormatter struct {
	appName string
	base    *Formatter
	buf     []byte
}

// NewSyslogFormatter creates a formatter; appName may be empty ('-').
func NewSyslogFormatter(appName string, level int64, zone TimeZoneStyle) *SyslogFormatter {
	return &SyslogFormatter{
		appName: appName,
		base:    NewFormatter(level, zone),
		buf:     make([]byte, 0, 512),
	}
}

// Format renders a record. The returned slice is reused on the next call.
func (f *SyslogFormatter) Format(rec Record) []byte {
	f.buf = f.buf[:0]

	f.buf = append(f.buf, "1 "...)
	f.buf = appendRFC5424Time(f.buf, rec)
	f.buf = append(f.buf, ' ')

	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "-"
	}
	f.buf = append(f.buf, hostname...)
	f.buf = append(f.buf, ' ')

	appName := f.appName
	if appName == "" {
		appName = "-"
	}
	f.buf = append(f.buf, appName...)
	f.buf = append(f.buf, ' ')

	f.buf = strconv.AppendInt(f.buf, int64(rec.Process.PID), 10)
	f.buf = append(f.buf, " - "...) // MSGID is unused

	f.buf = appendStructuredData(f.buf, rec.Data)
	f.buf = append(f.buf, ' ')

	f.buf = append(f.buf, f.base.Format(rec)...)
	return f.buf
}

// appendRFC5424Time renders the record time as ISO-8601 with fractional
// seconds, suffixed 'Z' when the UTC offset is zero, '±HH:MM' otherwise.
func appendRFC5424Time(buf []byte, rec Record) []byte {
	t := rec.Time
	buf = t.AppendFormat(buf, rfc5424TimeFormat)

	_, offset := t.Zone()
	if offset == 0 {
		return append(buf, 'Z')
	}
	sign := byte('+')
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	hrs := offset / 3600
	mins := (offset % 3600) / 60
	return append(buf, fmt.Sprintf("%c%02d:%02d", sign, hrs, mins)...)
}

// appendStructuredData renders SD elements back to back, or '-' when empty.
// Elements and params are sorted for deterministic output.
func appendStructuredData(buf []byte, data StructuredData) []byte {
	if len(data) == 0 {
		return append(buf, '-')
	}

	sdids := make([]string, 0, len(data))
	for sdid := range data {
		sdids = append(sdids, sdid)
	}
	sort.Strings(sdids)

	for _, sdid := range sdids {
		buf = append(buf, '[')
		buf = append(buf, sdid...)

		params := data[sdid]
		names := make([]string, 0, len(params))
		for name := range params {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			buf = append(buf, ' ')
			buf = append(buf, name...)
			buf = append(buf, '=', '"')
			buf = appendEscapedSDValue(buf, params[name])
			buf = append(buf, '"')
		}
		buf = append(buf, ']')
	}
	return buf
}

// appendEscapedSDValue escapes ']', '"' and '\' with a backslash prefix.
func appendEscapedSDValue(buf []byte, value string) []byte {
	for i := 0; i < len(value); i++ {
		switch c := value[i]; c {
		case ']', '"', '\\':
			buf = append(buf, '\\', c)
		default:
			buf = append(buf, c)
		}
	}
	return buf
}

// SyslogSink transmits RFC 5424 frames over UDP, best effort.
// Each frame is the formatter output prefixed with '<PRI>' where
// PRI = facility*8 + severity.
type SyslogSink struct {
	mu        sync.Mutex
	conn      net.Conn
	formatter *SyslogFormatter
}

// NewSyslogSink resolves and connects the target endpoint. Construction
// fails when the endpoint cannot be resolved; the caller is expected to
// fall back to a console sink.
func NewSyslogSink(cfg SyslogConfig) (*SyslogSink, error) {
	cfg.normalize()

	level, err := NormalizeLevel(cfg.Level, LevelInfo)
	if err != nil {
		diagf("%v", err)
	}

	addr := net.JoinHostPort(cfg.Address, strconv.FormatInt(cfg.Port, 10))
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, fmtErrorf("failed to dial syslog endpoint '%s': %w", addr, err)
	}

	return &SyslogSink{
		conn:      conn,
		formatter: NewSyslogFormatter(cfg.AppName, level, parseTimeZoneStyle(cfg.TimeZone)),
	}, nil
}

// Write frames and sends one record. Send failures are returned once,
// never retried.
func (s *SyslogSink) Write(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pri := facilityUser*8 + severityOf(rec.Level)
	frame := make([]byte, 0, 512)
	frame = append(frame, '<')
	frame = strconv.AppendInt(frame, int64(pri), 10)
	frame = append(frame, '>')
	frame = append(frame, s.formatter.Format(rec)...)

	if _, err := s.conn.Write(frame); err != nil {
		return fmtErrorf("failed to send syslog frame: %w", err)
	}
	return nil
}

// Flush is a no-op; frames are sent synchronously.
func (s *SyslogSink) Flush() error { return nil }

// Close closes the socket.
func (s *SyslogSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}
