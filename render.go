package structlog

import (
	"fmt"
	"sort"

	json "github.com/goccy/go-json"
)

// timestampLayout renders UTC instants with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// MachineJSON renders the record as its canonical single-line JSON form:
// the eight fixed fields, promoted root fields in canonical order, then
// context (always present, possibly empty). It never fails; values that
// cannot be marshaled are coerced to their string form.
func (r *Record) MachineJSON() []byte {
	buf := make([]byte, 0, 256)
	buf = append(buf, '{')
	buf = appendKey(buf, "timestamp")
	buf = appendValue(buf, r.Timestamp.UTC().Format(timestampLayout))
	buf = append(buf, ',')
	buf = appendKey(buf, "level")
	buf = appendValue(buf, r.Level.String())
	buf = append(buf, ',')
	buf = appendKey(buf, "message")
	buf = appendValue(buf, r.Message)
	buf = append(buf, ',')
	buf = appendKey(buf, "service")
	buf = appendValue(buf, r.Service)
	buf = append(buf, ',')
	buf = appendKey(buf, "environment")
	buf = appendValue(buf, r.Environment)
	buf = append(buf, ',')
	buf = appendKey(buf, "version")
	buf = appendValue(buf, r.Version)
	buf = append(buf, ',')
	buf = appendKey(buf, "category")
	buf = appendValue(buf, r.Category)
	buf = append(buf, ',')
	buf = appendKey(buf, "event_id")
	buf = appendValue(buf, r.EventID)

	for _, name := range rootFieldNames {
		if v, ok := r.Fields[name]; ok {
			buf = append(buf, ',')
			buf = appendKey(buf, name)
			buf = appendValue(buf, v)
		}
	}

	buf = append(buf, ',')
	buf = appendKey(buf, "context")
	buf = appendObject(buf, r.Context)
	buf = append(buf, '}')
	return buf
}

// appendKey appends `"key":`. Fixed and root field names need no escaping.
func appendKey(dst []byte, key string) []byte {
	dst = append(dst, '"')
	dst = append(dst, key...)
	return append(dst, '"', ':')
}

// appendValue marshals v and appends it. A value the encoder rejects is
// replaced by its fmt string form so a record can always be rendered.
func appendValue(dst []byte, v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		b, _ = json.Marshal(fmt.Sprintf("%v", v))
	}
	return append(dst, b...)
}

// appendObject renders a map with sorted keys, coercing each value
// independently so one bad value cannot take the whole object down.
func appendObject(dst []byte, m map[string]any) []byte {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	dst = append(dst, '{')
	for i, k := range keys {
		if i > 0 {
			dst = append(dst, ',')
		}
		kb, _ := json.Marshal(k)
		dst = append(dst, kb...)
		dst = append(dst, ':')
		dst = appendValue(dst, m[k])
	}
	return append(dst, '}')
}
