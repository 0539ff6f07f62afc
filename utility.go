package sinklog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// diagWriter receives diagnostics for recovered configuration and
// construction errors. Overridable for tests.
var diagWriter io.Writer = os.Stderr

// osExit is swapped out in tests for the fatal registry path.
var osExit = os.Exit

// diagf prints a recoverable diagnostic with the package prefix.
func diagf(format string, args ...any) {
	if !strings.HasPrefix(format, "sinklog: ") {
		format = "sinklog: " + format
	}
	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}
	fmt.Fprintf(diagWriter, format, args...)
}

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "sinklog: ") {
		format = "sinklog: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// callerLocation resolves the source location skip frames above the caller.
func callerLocation(skip int) *SourceLocation {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return nil
	}
	function := "(unknown)"
	if fn := runtime.FuncForPC(pc); fn != nil {
		function = filepath.Base(fn.Name())
		if i := strings.LastIndex(function, "."); i >= 0 {
			function = function[i+1:]
		}
	}
	return &SourceLocation{
		Module:   strings.TrimSuffix(filepath.Base(file), ".go"),
		Function: function,
		Line:     line,
	}
}

// fileExists reports whether path exists as a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
