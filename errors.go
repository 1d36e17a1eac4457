package structlog

import (
	"fmt"
	"runtime/debug"
)

// SerializeError converts an error into a loggable map holding the
// concrete type name, the message, and the goroutine stack at the capture
// site. Returns nil for a nil error.
func SerializeError(err error) map[string]any {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if msg == "" {
		msg = "Error"
	}
	return map[string]any{
		"name":    fmt.Sprintf("%T", err),
		"message": msg,
		"stack":   string(debug.Stack()),
	}
}
