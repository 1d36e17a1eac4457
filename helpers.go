package structlog

import (
	"fmt"

	"github.com/google/uuid"
)

// NewRequestID returns a fresh correlation identifier suitable for
// WithRequest or a request_id field.
func NewRequestID() string {
	return "req_" + uuid.New().String()
}

// LogRequest emits an info record describing an inbound HTTP request.
// method and url land in the context; promotable keys supplied in kv
// (request_id, trace_id, ...) take their usual root positions.
func (l *Logger) LogRequest(method, url string, kv ...any) {
	args := append([]any{"method", method, "url", url}, kv...)
	l.emit(LevelInfo, "HTTP Request", args)
}

// LogResponse emits an info record describing a completed HTTP exchange,
// with status_code and duration_ms promoted to the record root.
func (l *Logger) LogResponse(method, url string, statusCode int, durationMS int64, kv ...any) {
	args := append([]any{
		"method", method,
		"url", url,
		"status_code", statusCode,
		"duration_ms", durationMS,
	}, kv...)
	l.emit(LevelInfo, "HTTP Response", args)
}

// LogError serializes err into the context (an "err" payload plus
// error_type and error_message) and emits an error-level record carrying
// the error text as its message. Keys in kv win over the generated ones.
func (l *Logger) LogError(err error, kv ...any) {
	if err == nil {
		return
	}
	msg := err.Error()
	if msg == "" {
		msg = "Error occurred"
	}
	args := append([]any{
		"err", SerializeError(err),
		"error_type", fmt.Sprintf("%T", err),
		"error_message", msg,
	}, kv...)
	l.emit(LevelError, msg, args)
}
