package structlog

import "testing"

func TestClassify_PromotesRootFields(t *testing.T) {
	fields, ctx, _ := classify([]any{
		"request_id", "req-1",
		"user_hash", "u-2",
		"source", "api",
		"duration_ms", 250,
		"status_code", 200,
		"tags", []string{"a", "b"},
		"trace_id", "t-3",
		"span_id", "s-4",
		"component", "checkout",
	})

	for _, name := range rootFieldNames {
		if _, ok := fields[name]; !ok {
			t.Errorf("%s should be promoted to the root", name)
		}
	}
	if _, ok := ctx["component"]; !ok {
		t.Error("component should stay in context")
	}
	if _, ok := fields["component"]; ok {
		t.Error("component must not be promoted")
	}
}

func TestClassify_LastWriteWins(t *testing.T) {
	fields, ctx, _ := classify([]any{
		"trace_id", "first",
		"trace_id", "second",
		"attempt", 1,
		"attempt", 2,
	})
	if fields["trace_id"] != "second" {
		t.Errorf("trace_id = %v, want second", fields["trace_id"])
	}
	if ctx["attempt"] != 2 {
		t.Errorf("attempt = %v, want 2", ctx["attempt"])
	}
}

func TestClassify_ContextMapMerge(t *testing.T) {
	fields, ctx, _ := classify([]any{
		"context", map[string]any{"region": "eu", "attempt": 1, "skipped": nil},
		"attempt", 2,
	})
	if ctx["region"] != "eu" {
		t.Errorf("region = %v, want eu", ctx["region"])
	}
	if ctx["attempt"] != 2 {
		t.Errorf("explicit key must win over merged map, attempt = %v", ctx["attempt"])
	}
	if _, ok := ctx["skipped"]; ok {
		t.Error("nil values in a context map must be dropped")
	}
	if len(fields) != 0 {
		t.Errorf("no fields expected, got %v", fields)
	}
}

func TestClassify_ContextMapKeysAreNotPromoted(t *testing.T) {
	fields, ctx, _ := classify([]any{
		"context", map[string]any{"trace_id": "inside-map"},
	})
	if _, ok := fields["trace_id"]; ok {
		t.Error("root names inside a context map must not be promoted")
	}
	if ctx["trace_id"] != "inside-map" {
		t.Errorf("trace_id = %v, want inside-map", ctx["trace_id"])
	}
}

func TestClassify_EventIDOverride(t *testing.T) {
	_, _, eventID := classify([]any{"event_id", "evt_1_99"})
	if eventID != "evt_1_99" {
		t.Errorf("eventID = %q, want evt_1_99", eventID)
	}

	_, ctx, eventID := classify([]any{"event_id", 42})
	if eventID != "" {
		t.Errorf("non-string event_id must be ignored, got %q", eventID)
	}
	if len(ctx) != 0 {
		t.Errorf("no context expected, got %v", ctx)
	}
}

func TestClassify_NilHandling(t *testing.T) {
	fields, ctx, _ := classify([]any{
		"request_id", nil,
		"note", nil,
	})
	if v, ok := fields["request_id"]; !ok || v != nil {
		t.Error("nil root field must be kept as an unset marker")
	}
	if _, ok := ctx["note"]; ok {
		t.Error("nil context value must be dropped")
	}
}

func TestClassify_NonStringKey(t *testing.T) {
	_, ctx, _ := classify([]any{42, "answer"})
	if ctx["42"] != "answer" {
		t.Errorf("non-string key should be coerced, got %v", ctx)
	}
}

func TestClassify_DanglingKey(t *testing.T) {
	fields, ctx, _ := classify([]any{"component", "api", "orphan"})
	if ctx["component"] != "api" {
		t.Errorf("component = %v, want api", ctx["component"])
	}
	if _, ok := ctx["orphan"]; ok {
		t.Error("dangling key must be dropped")
	}
	if len(fields) != 0 {
		t.Errorf("no fields expected, got %v", fields)
	}
}
