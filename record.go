package structlog

import "time"

// DefaultCategory is the category assigned when none is bound or supplied.
const DefaultCategory = "application"

// rootFieldNames are the caller-supplied keys promoted out of the context
// to the record root, in the order they appear in machine output.
var rootFieldNames = []string{
	"request_id",
	"user_hash",
	"source",
	"duration_ms",
	"status_code",
	"tags",
	"trace_id",
	"span_id",
}

var rootFieldSet = func() map[string]bool {
	m := make(map[string]bool, len(rootFieldNames))
	for _, name := range rootFieldNames {
		m[name] = true
	}
	return m
}()

// Record is one assembled log entry. Fields holds the promoted root
// fields keyed by their canonical names; Context holds everything else.
type Record struct {
	Timestamp   time.Time
	Level       Level
	Message     string
	Service     string
	Environment string
	Version     string
	Category    string
	EventID     string
	Fields      map[string]any
	Context     map[string]any
}
