package sinklog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"warn", LevelWarning, false},
		{"Warning", LevelWarning, false},
		{"error", LevelError, false},
		{"critical", LevelCritical, false},
		{" info ", LevelInfo, false},
		{"verbose", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := Level(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestNormalizeLevel(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"warn", LevelWarning},
		{"WARNING", LevelWarning},
		{"Warning123", LevelWarning},
		{"debug", LevelDebug},
		{"deb", LevelDebug},
		{"xxERRORxx", LevelError},
		{"crit", LevelCritical},
		{"info", LevelInfo},
	}

	for _, tt := range tests {
		got, err := NormalizeLevel(tt.input, LevelInfo)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestNormalizeLevelFallback(t *testing.T) {
	got, err := NormalizeLevel("nonsense", LevelInfo)
	assert.Error(t, err)
	assert.Equal(t, LevelInfo, got)

	// Empty input selects the fallback without complaint
	got, err = NormalizeLevel("", LevelError)
	assert.NoError(t, err)
	assert.Equal(t, LevelError, got)
}

func TestNormalizeLevelDiagnosticPath(t *testing.T) {
	// The configuration layer reports the recoverable error as a diagnostic
	var buf bytes.Buffer
	old := diagWriter
	diagWriter = &buf
	defer func() { diagWriter = old }()

	sink := NewConsoleSink(ConsoleConfig{Level: "nonsense"})
	require.NotNil(t, sink)
	assert.Contains(t, buf.String(), "could not parse level 'nonsense'")
}

func TestLevelToString(t *testing.T) {
	assert.Equal(t, "DEBUG", levelToString(LevelDebug))
	assert.Equal(t, "INFO", levelToString(LevelInfo))
	assert.Equal(t, "WARNING", levelToString(LevelWarning))
	assert.Equal(t, "ERROR", levelToString(LevelError))
	assert.Equal(t, "CRITICAL", levelToString(LevelCritical))
}
