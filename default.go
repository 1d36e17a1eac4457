package structlog

import "sync"

var (
	defaultOnce   sync.Once
	defaultLogger *Logger
)

// Default returns the process-wide logger, created from the environment
// on first use.
func Default() *Logger {
	defaultOnce.Do(func() {
		defaultLogger = New(LoadConfig())
	})
	return defaultLogger
}

func Debug(msg string, kv ...any) { Default().Debug(msg, kv...) }
func Info(msg string, kv ...any)  { Default().Info(msg, kv...) }
func Warn(msg string, kv ...any)  { Default().Warn(msg, kv...) }
func Error(msg string, kv ...any) { Default().Error(msg, kv...) }
