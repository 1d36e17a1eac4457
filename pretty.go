package structlog

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// ANSI escape codes used by the pretty renderer.
const (
	colorReset  = "\x1b[0m"
	colorBold   = "\x1b[1m"
	colorDim    = "\x1b[2m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorCyan   = "\x1b[36m"
)

func levelColor(l Level) string {
	switch l {
	case LevelDebug:
		return colorCyan
	case LevelInfo:
		return colorGreen
	case LevelWarn:
		return colorYellow
	case LevelError:
		return colorRed
	}
	return ""
}

// renderPretty produces the human-readable form: a summary line with
// time, level, service, optional category/trace/duration markers and the
// message, followed by the context as indented JSON when present.
// Color codes are applied only when colorize is true.
func renderPretty(r *Record, colorize bool) string {
	paint := func(text, code string) string {
		if !colorize || code == "" {
			return text
		}
		return code + text + colorReset
	}

	parts := make([]string, 0, 8)
	parts = append(parts, paint(r.Timestamp.UTC().Format("15:04:05"), colorDim))
	parts = append(parts, paint(strings.ToUpper(r.Level.String()), levelColor(r.Level)))
	if r.Service != "" {
		parts = append(parts, paint(r.Service, colorBold))
	}
	if r.Category != "" && r.Category != DefaultCategory {
		parts = append(parts, r.Category)
	}
	if v, ok := r.Fields["trace_id"]; ok {
		if s := fmt.Sprint(v); s != "" {
			short := []rune(s)
			if len(short) > 8 {
				short = short[:8]
			}
			parts = append(parts, fmt.Sprintf("[%s...]", string(short)))
		}
	}
	if v, ok := r.Fields["duration_ms"]; ok {
		parts = append(parts, fmt.Sprintf("(%vms)", v))
	}
	parts = append(parts, "-")
	if r.Message != "" {
		parts = append(parts, r.Message)
	}
	line := strings.Join(parts, " ")

	if len(r.Context) == 0 {
		return line
	}
	data, err := json.MarshalIndent(r.Context, "", "  ")
	if err != nil {
		data = appendObject(nil, r.Context)
	}
	return line + "\n" + paint(string(data), colorDim)
}
