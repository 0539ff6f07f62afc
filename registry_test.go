package sinklog

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureDiagnostics(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := diagWriter
	diagWriter = &buf
	t.Cleanup(func() { diagWriter = old })
	return &buf
}

func TestRegistryConsole(t *testing.T) {
	reg := NewRegistry()
	defer reg.Close()

	lg := reg.Console(ConsoleConfig{Name: "app", Level: "INFO"})
	require.NotNil(t, lg)
	assert.Equal(t, "app", lg.Name())

	got, ok := reg.Get("app")
	require.True(t, ok)
	assert.Same(t, lg, got)

	_, ok = reg.Get("missing")
	assert.False(t, ok)
}

func TestRegistryConsoleDefaultName(t *testing.T) {
	reg := NewRegistry()
	defer reg.Close()

	lg := reg.Console(ConsoleConfig{})
	assert.Equal(t, "root", lg.Name())
}

func TestRegistryFileFallbackToConsole(t *testing.T) {
	buf := captureDiagnostics(t)

	reg := NewRegistry()
	defer reg.Close()

	// Unopenable path: parent directory does not exist
	lg := reg.File(FileConfig{
		Name:  "File",
		Level: "INFO",
		Path:  filepath.Join(t.TempDir(), "missing", "app.log"),
	})
	require.NotNil(t, lg)

	_, isConsole := lg.Sink().(*ConsoleSink)
	assert.True(t, isConsole, "file sink must degrade to console")
	assert.Contains(t, buf.String(), "changing to console output")

	// Log calls still succeed, just routed elsewhere
	lg.Info("routed to console")
}

func TestRegistryFileSuccess(t *testing.T) {
	reg := NewRegistry()
	defer reg.Close()

	lg := reg.File(FileConfig{
		Name:  "File",
		Level: "INFO",
		Path:  filepath.Join(t.TempDir(), "app.log"),
	})
	_, isFile := lg.Sink().(*FileSink)
	assert.True(t, isFile)
}

func TestRegistryMailFallback(t *testing.T) {
	buf := captureDiagnostics(t)

	reg := NewRegistry()
	defer reg.Close()

	// Missing host forces degradation; the flushable handle is nil
	lg, handle := reg.Mail(MailConfig{Name: "SMTP", Level: "INFO"})
	require.NotNil(t, lg)
	assert.Nil(t, handle)

	_, isConsole := lg.Sink().(*ConsoleSink)
	assert.True(t, isConsole)
	assert.Contains(t, buf.String(), "changing to console output")
}

func TestRegistryMailSuccess(t *testing.T) {
	reg := NewRegistry()
	defer reg.Close()

	lg, handle := reg.Mail(MailConfig{
		Name:     "SMTP",
		Level:    "INFO",
		Host:     "mail.example.com",
		From:     "app@example.com",
		To:       []string{"ops@example.com"},
		Capacity: 10,
	})
	require.NotNil(t, handle)
	assert.Same(t, handle, lg.Sink())
}

func TestRegistrySyslog(t *testing.T) {
	reg := NewRegistry()
	defer reg.Close()

	// UDP dial to localhost succeeds without a listener
	lg := reg.Syslog(SyslogConfig{Name: "SysLog", Level: "INFO", Address: "127.0.0.1", Port: 1514})
	_, isSyslog := lg.Sink().(*SyslogSink)
	assert.True(t, isSyslog)
}

func TestRegistryDuplicateNameIsFatal(t *testing.T) {
	captureDiagnostics(t)

	exitCode := -1
	oldExit := osExit
	osExit = func(code int) { exitCode = code; panic("exit") }
	defer func() { osExit = oldExit }()

	reg := NewRegistry()
	defer reg.Close()

	reg.Console(ConsoleConfig{Name: "dup"})
	assert.PanicsWithValue(t, "exit", func() {
		reg.Console(ConsoleConfig{Name: "dup"})
	})
	assert.Equal(t, 1, exitCode)
}

func TestRegistryCloseFlushesMailSink(t *testing.T) {
	reg := NewRegistry()

	_, handle := reg.Mail(MailConfig{
		Name:     "SMTP",
		Level:    "INFO",
		Host:     "mail.example.com",
		From:     "app@example.com",
		To:       []string{"ops@example.com"},
		Capacity: 100,
	})
	require.NotNil(t, handle)

	sender := &recordingSender{}
	handle.SetSender(sender)
	require.NoError(t, handle.Write(newRecord("SMTP", LevelInfo, "buffered at exit", nil)))

	require.NoError(t, reg.Close())
	assert.Len(t, sender.sends, 1, "Close must flush buffered sinks")

	// Registry is reusable after Close
	lg := reg.Console(ConsoleConfig{Name: "fresh"})
	assert.NotNil(t, lg)
}
