package structlog

import "fmt"

// classify splits variadic key/value arguments into promoted root fields
// and open context entries.
//
// Two keys are special: "context" merges a map[string]any into the context
// (explicit keys win over merged ones), and "event_id" overrides the
// generated identity for this record. Root-named keys keep nil values so
// the caller can unset a bound root field; nil context values are dropped.
// Non-string keys are coerced to their string form. A dangling key with no
// value reads as nil.
func classify(kv []any) (fields, ctx map[string]any, eventID string) {
	fields = make(map[string]any)
	ctx = make(map[string]any)
	var merged map[string]any

	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		var val any
		if i+1 < len(kv) {
			val = kv[i+1]
		}

		switch {
		case key == "context":
			m, ok := val.(map[string]any)
			if !ok {
				break
			}
			if merged == nil {
				merged = make(map[string]any, len(m))
			}
			for k, v := range m {
				merged[k] = v
			}
		case key == "event_id":
			if s, ok := val.(string); ok && s != "" {
				eventID = s
			}
		case rootFieldSet[key]:
			fields[key] = val
		default:
			if val != nil {
				ctx[key] = val
			}
		}
	}

	for k, v := range merged {
		if v == nil {
			continue
		}
		if _, ok := ctx[k]; !ok {
			ctx[k] = v
		}
	}
	return fields, ctx, eventID
}
