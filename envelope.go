package structlog

import (
	"time"

	json "github.com/goccy/go-json"
)

// The collector accepts a minimal OTLP/HTTP-shaped envelope carrying one
// record per request. The machine-rendered JSON line travels opaquely in
// body.stringValue; the collector parses it out of the envelope unchanged.

type otlpEnvelope struct {
	ResourceLogs []otlpResourceLogs `json:"resourceLogs"`
}

type otlpResourceLogs struct {
	ScopeLogs []otlpScopeLogs `json:"scopeLogs"`
}

type otlpScopeLogs struct {
	LogRecords []otlpLogRecord `json:"logRecords"`
}

type otlpLogRecord struct {
	TimeUnixNano   int64    `json:"timeUnixNano"`
	SeverityNumber int      `json:"severityNumber"`
	SeverityText   string   `json:"severityText"`
	Body           otlpBody `json:"body"`
}

type otlpBody struct {
	StringValue string `json:"stringValue"`
}

// buildEnvelope wraps one machine-rendered line for delivery. The record
// timestamp has millisecond precision, so timeUnixNano is an exact
// multiple of 1e6.
func buildEnvelope(ts time.Time, level Level, machine []byte) []byte {
	envelope := otlpEnvelope{
		ResourceLogs: []otlpResourceLogs{{
			ScopeLogs: []otlpScopeLogs{{
				LogRecords: []otlpLogRecord{{
					TimeUnixNano:   ts.UnixMilli() * int64(time.Millisecond),
					SeverityNumber: level.SeverityNumber(),
					SeverityText:   level.SeverityText(),
					Body:           otlpBody{StringValue: string(machine)},
				}},
			}},
		}},
	}
	data, _ := json.Marshal(envelope)
	return data
}
