package logger

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"
)

// tempLogger returns a logger writing to a temp file plus a reader for it.
func tempLogger(t *testing.T, level Level) (*Logger, func() string) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "log-*.jsonl")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	t.Cleanup(func() { f.Close() })

	read := func() string {
		data, err := os.ReadFile(f.Name())
		if err != nil {
			t.Fatalf("reading log file: %v", err)
		}
		return string(data)
	}
	return New(level, f), read
}

func TestInfoWritesJSONEntry(t *testing.T) {
	l, read := tempLogger(t, LevelInfo)

	l.Info("Site verified", Fields{"conference": "GopherCon", "status": "ok"})

	var entry LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(read())), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}

	if entry.Level != "INFO" {
		t.Errorf("expected level INFO, got %s", entry.Level)
	}
	if entry.Message != "Site verified" {
		t.Errorf("unexpected message %q", entry.Message)
	}
	if entry.Fields["conference"] != "GopherCon" {
		t.Errorf("expected conference field, got %v", entry.Fields)
	}
	if entry.Timestamp == "" {
		t.Error("expected a timestamp")
	}
}

func TestErrorIncludesErrorString(t *testing.T) {
	l, read := tempLogger(t, LevelInfo)

	l.Error("Navigation failed", Fields{"website": "https://x.example"}, os.ErrDeadlineExceeded)

	var entry LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(read())), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	if entry.Error == "" {
		t.Error("expected error string in entry")
	}
}

func TestLevelFiltering(t *testing.T) {
	l, read := tempLogger(t, LevelWarn)

	l.Debug("too quiet", nil)
	l.Info("still too quiet", nil)
	l.Warn("loud enough", nil)

	out := read()
	if strings.Contains(out, "too quiet") {
		t.Error("messages below the minimum level should be discarded")
	}
	if !strings.Contains(out, "loud enough") {
		t.Error("expected WARN message to be logged")
	}
}

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("sites.ok")
	m.IncrCounter("sites.ok")
	m.IncrCounter("sites.dead")
	m.RecordTiming("browser.visit", 2*time.Second)
	m.RecordTiming("browser.visit", 4*time.Second)

	snapshot := m.GetSnapshot()

	counters := snapshot["counters"].(map[string]int64)
	if counters["sites.ok"] != 2 {
		t.Errorf("expected sites.ok counter 2, got %d", counters["sites.ok"])
	}
	if counters["sites.dead"] != 1 {
		t.Errorf("expected sites.dead counter 1, got %d", counters["sites.dead"])
	}

	timings := snapshot["timings"].(map[string]map[string]interface{})
	visit, ok := timings["browser.visit"]
	if !ok {
		t.Fatal("expected browser.visit timing stats")
	}
	if visit["count"] != 2 {
		t.Errorf("expected count 2, got %v", visit["count"])
	}
	if visit["average"] != "3s" {
		t.Errorf("expected average 3s, got %v", visit["average"])
	}
	if visit["min"] != "2s" || visit["max"] != "4s" {
		t.Errorf("unexpected min/max: %v / %v", visit["min"], visit["max"])
	}
}
