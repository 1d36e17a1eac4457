// Package structlog emits schema-stable structured log records to the
// local console and, when configured, to a remote telemetry collector.
//
// Records render as canonical single-line JSON for machines, or as a
// colorized human-readable line on interactive terminals. Collector
// delivery is fire-and-forget: emitting never blocks on the network and
// never returns an error to the caller.
package structlog

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// consoleSink serializes line writes so concurrent emitters never
// interleave output.
type consoleSink struct {
	mu  sync.Mutex
	out io.Writer
}

func (s *consoleSink) writeLine(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, line)
}

// bindings is the inheritable state of a logger: identity overrides,
// bound root fields, and bound context entries.
type bindings struct {
	service     string
	environment string
	version     string
	category    string
	fields      map[string]any
	ctx         map[string]any
}

func (b bindings) clone() bindings {
	nb := b
	nb.fields = make(map[string]any, len(b.fields))
	for k, v := range b.fields {
		nb.fields[k] = v
	}
	nb.ctx = make(map[string]any, len(b.ctx))
	for k, v := range b.ctx {
		nb.ctx[k] = v
	}
	return nb
}

// Logger emits structured records. Loggers are cheap to derive and safe
// for concurrent use; children share the sink, the forwarder, and the
// event identity sequence.
type Logger struct {
	cfg    Config
	binds  bindings
	pretty bool
	color  bool
	sink   *consoleSink
	fwd    *forwarder
}

// New returns a Logger writing to stdout with warnings on stderr. When
// cfg.Target selects the collector, every record is also forwarded to
// cfg.Endpoint.
func New(cfg Config) *Logger {
	return NewWithOutput(cfg, os.Stdout, os.Stderr)
}

// NewWithOutput is New with explicit output and warning writers. Pretty
// rendering applies only for console-only targets, and only when forced
// or when out is a terminal; color additionally requires the terminal.
func NewWithOutput(cfg Config, out, warnw io.Writer) *Logger {
	tty := isTerminal(out)
	l := &Logger{
		cfg:    cfg,
		pretty: cfg.Target == TargetStdout && (cfg.ForcePretty || tty),
		sink:   &consoleSink{out: out},
	}
	l.color = l.pretty && tty
	if cfg.Target == TargetCollector {
		l.fwd = newForwarder(cfg.Endpoint, warnw)
	}
	return l
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (l *Logger) Debug(msg string, kv ...any) { l.emit(LevelDebug, msg, kv) }
func (l *Logger) Info(msg string, kv ...any)  { l.emit(LevelInfo, msg, kv) }
func (l *Logger) Warn(msg string, kv ...any)  { l.emit(LevelWarn, msg, kv) }
func (l *Logger) Error(msg string, kv ...any) { l.emit(LevelError, msg, kv) }

// Log emits a record at an explicit level.
func (l *Logger) Log(level Level, msg string, kv ...any) { l.emit(level, msg, kv) }

func (l *Logger) emit(level Level, msg string, kv []any) {
	if level < l.cfg.MinLevel {
		return
	}
	rec := l.buildRecord(time.Now(), level, msg, kv)

	// Pretty rendering and collector forwarding are mutually exclusive:
	// pretty requires the console-only target.
	if l.pretty {
		l.sink.writeLine(renderPretty(rec, l.color))
		return
	}
	machine := rec.MachineJSON()
	l.sink.writeLine(string(machine))
	if l.fwd != nil {
		l.fwd.enqueue(buildEnvelope(rec.Timestamp, rec.Level, machine))
	}
}

func (l *Logger) buildRecord(now time.Time, level Level, msg string, kv []any) *Record {
	fields, ctx, eventID := classify(kv)

	rec := &Record{
		Timestamp:   now.UTC(),
		Level:       level,
		Message:     msg,
		Service:     l.cfg.Service,
		Environment: l.cfg.Environment,
		Version:     l.cfg.Version,
		Category:    DefaultCategory,
		EventID:     eventID,
	}
	if l.binds.service != "" {
		rec.Service = l.binds.service
	}
	if l.binds.environment != "" {
		rec.Environment = l.binds.environment
	}
	if l.binds.version != "" {
		rec.Version = l.binds.version
	}
	if l.binds.category != "" {
		rec.Category = l.binds.category
	}
	if rec.EventID == "" {
		rec.EventID = nextEventID(now)
	}

	merged := make(map[string]any, len(l.binds.fields)+len(fields))
	for k, v := range l.binds.fields {
		merged[k] = v
	}
	for k, v := range fields {
		if v == nil {
			// An explicit nil unsets a bound root field.
			delete(merged, k)
			continue
		}
		merged[k] = v
	}
	rec.Fields = merged

	mc := make(map[string]any, len(l.binds.ctx)+len(ctx))
	for k, v := range l.binds.ctx {
		mc[k] = v
	}
	for k, v := range ctx {
		mc[k] = v
	}
	rec.Context = mc
	return rec
}

// With returns a child logger with additional bound state. The keys
// service, environment, version, and category override record identity;
// root field names bind promoted fields; a "context" map merges into the
// bound context; every other key becomes a bound context entry. Nil
// values are skipped.
func (l *Logger) With(kv ...any) *Logger {
	child := *l
	child.binds = l.binds.clone()
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		var val any
		if i+1 < len(kv) {
			val = kv[i+1]
		}
		if val == nil {
			continue
		}
		switch key {
		case "service":
			if s, ok := val.(string); ok {
				child.binds.service = s
			}
		case "environment":
			if s, ok := val.(string); ok {
				child.binds.environment = s
			}
		case "version":
			if s, ok := val.(string); ok {
				child.binds.version = s
			}
		case "category":
			if s, ok := val.(string); ok {
				child.binds.category = s
			}
		case "context":
			if m, ok := val.(map[string]any); ok {
				for k, v := range m {
					if v != nil {
						child.binds.ctx[k] = v
					}
				}
			}
		default:
			if rootFieldSet[key] {
				child.binds.fields[key] = val
			} else {
				child.binds.ctx[key] = val
			}
		}
	}
	return &child
}

// WithCategory returns a child logger with the category bound.
func (l *Logger) WithCategory(category string) *Logger {
	return l.With("category", category)
}

// WithTrace returns a child logger carrying trace correlation fields.
// Empty identifiers are skipped.
func (l *Logger) WithTrace(traceID, spanID string) *Logger {
	kv := make([]any, 0, 4)
	if traceID != "" {
		kv = append(kv, "trace_id", traceID)
	}
	if spanID != "" {
		kv = append(kv, "span_id", spanID)
	}
	return l.With(kv...)
}

// WithRequest returns a child logger carrying request correlation fields.
// Empty identifiers are skipped.
func (l *Logger) WithRequest(requestID, userHash string) *Logger {
	kv := make([]any, 0, 4)
	if requestID != "" {
		kv = append(kv, "request_id", requestID)
	}
	if userHash != "" {
		kv = append(kv, "user_hash", userHash)
	}
	return l.With(kv...)
}

// Flush blocks until records already handed to the forwarder have been
// attempted, or until ctx is done. A no-op for console-only loggers.
func (l *Logger) Flush(ctx context.Context) error {
	if l.fwd == nil {
		return nil
	}
	return l.fwd.flushQueued(ctx)
}

// Close drains and stops the collector forwarder shared by this logger
// and its children. Local output stays usable afterwards.
func (l *Logger) Close() {
	if l.fwd != nil {
		l.fwd.close()
	}
}
