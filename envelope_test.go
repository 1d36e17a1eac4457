package structlog

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
)

func TestBuildEnvelope_ExactBytes(t *testing.T) {
	machine := []byte(`{"level":"warn"}`)
	got := string(buildEnvelope(fixedTime(), LevelWarn, machine))

	want := `{"resourceLogs":[{"scopeLogs":[{"logRecords":[{"timeUnixNano":1767323045678000000,"severityNumber":13,"severityText":"WARN","body":{"stringValue":"{\"level\":\"warn\"}"}}]}]}]}`
	if got != want {
		t.Errorf("envelope mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestBuildEnvelope_Severity(t *testing.T) {
	cases := []struct {
		level  Level
		number int
		text   string
	}{
		{LevelDebug, 5, "DEBUG"},
		{LevelInfo, 9, "INFO"},
		{LevelWarn, 13, "WARN"},
		{LevelError, 17, "ERROR"},
	}
	for _, c := range cases {
		var env otlpEnvelope
		if err := json.Unmarshal(buildEnvelope(time.Now(), c.level, []byte("{}")), &env); err != nil {
			t.Fatalf("level %s: invalid envelope: %v", c.level, err)
		}
		lr := env.ResourceLogs[0].ScopeLogs[0].LogRecords[0]
		if lr.SeverityNumber != c.number {
			t.Errorf("level %s: severityNumber = %d, want %d", c.level, lr.SeverityNumber, c.number)
		}
		if lr.SeverityText != c.text {
			t.Errorf("level %s: severityText = %q, want %q", c.level, lr.SeverityText, c.text)
		}
	}
}

func TestBuildEnvelope_BodyCarriesLineVerbatim(t *testing.T) {
	rec := &Record{
		Timestamp:   fixedTime(),
		Level:       LevelError,
		Message:     "payment failed",
		Service:     "checkout",
		Environment: "production",
		Version:     "1.2.3",
		Category:    DefaultCategory,
		EventID:     "evt_1_9",
		Fields:      map[string]any{"status_code": 502},
		Context:     map[string]any{"order": "ord_1"},
	}
	machine := rec.MachineJSON()

	var env otlpEnvelope
	if err := json.Unmarshal(buildEnvelope(rec.Timestamp, rec.Level, machine), &env); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	if body := env.ResourceLogs[0].ScopeLogs[0].LogRecords[0].Body.StringValue; body != string(machine) {
		t.Errorf("body.stringValue differs from the machine line\n got: %s\nwant: %s", body, machine)
	}
}

func TestBuildEnvelope_NanoTimestamp(t *testing.T) {
	ts := time.Now()
	var env otlpEnvelope
	if err := json.Unmarshal(buildEnvelope(ts, LevelInfo, []byte("{}")), &env); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	nano := env.ResourceLogs[0].ScopeLogs[0].LogRecords[0].TimeUnixNano
	if nano != ts.UnixMilli()*int64(time.Millisecond) {
		t.Errorf("timeUnixNano = %d, want %d", nano, ts.UnixMilli()*int64(time.Millisecond))
	}
	if nano%int64(time.Millisecond) != 0 {
		t.Errorf("timeUnixNano %d should be a whole number of milliseconds", nano)
	}
}
