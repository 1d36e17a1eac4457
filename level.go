package structlog

import (
	"fmt"
	"strings"
)

// Level is the severity of a log record.
// Levels are ordered: LevelDebug < LevelInfo < LevelWarn < LevelError.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel converts a level keyword to a Level. Matching is
// case-insensitive and "warning" is accepted as an alias for "warn".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// SeverityNumber maps the level to the OpenTelemetry severity number
// carried in the collector envelope.
func (l Level) SeverityNumber() int {
	switch l {
	case LevelDebug:
		return 5
	case LevelInfo:
		return 9
	case LevelWarn:
		return 13
	case LevelError:
		return 17
	}
	return 9
}

// SeverityText is the uppercase level keyword carried in the collector
// envelope.
func (l Level) SeverityText() string {
	return strings.ToUpper(l.String())
}
