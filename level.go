package sinklog

import (
	"strings"
)

// canonicalLevels lists level names in classification priority order.
var canonicalLevels = []struct {
	name  string
	level int64
}{
	{"DEBUG", LevelDebug},
	{"INFO", LevelInfo},
	{"WARNING", LevelWarning},
	{"ERROR", LevelError},
	{"CRITICAL", LevelCritical},
}

// Level converts a level string to its numeric constant.
func Level(levelStr string) (int64, error) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	case "critical":
		return LevelCritical, nil
	default:
		return 0, fmtErrorf("invalid level string: '%s' (use debug, info, warning, error, critical)", levelStr)
	}
}

// NormalizeLevel classifies arbitrary input into one of the five canonical
// levels. Matching is case-insensitive: the input may contain a canonical
// name ("Warning123"), or be a leading fragment of one ("warn"). Names are
// tried in DEBUG, INFO, WARNING, ERROR, CRITICAL order. Empty input selects
// the fallback silently. On no match the
// fallback level is returned along with a non-nil error the caller may
// report; the error is recoverable.
func NormalizeLevel(input string, fallback int64) (int64, error) {
	upper := strings.ToUpper(strings.TrimSpace(input))
	if upper == "" {
		return fallback, nil
	}
	for _, c := range canonicalLevels {
		if strings.Contains(upper, c.name) {
			return c.level, nil
		}
		// A fragment like "warn" or "crit" selects the full name
		if len(upper) >= 3 && strings.HasPrefix(c.name, upper) {
			return c.level, nil
		}
	}
	return fallback, fmtErrorf("could not parse level '%s', using default %s", input, levelToString(fallback))
}

// levelToString converts a numeric level to its canonical name.
func levelToString(level int64) string {
	switch level {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return "INFO"
	}
}

// severityOf maps a level to its RFC 5424 severity value.
func severityOf(level int64) int {
	switch {
	case level >= LevelCritical:
		return 2
	case level >= LevelError:
		return 3
	case level >= LevelWarning:
		return 4
	case level >= LevelInfo:
		return 6
	default:
		return 7
	}
}
