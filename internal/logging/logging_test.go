package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Format: HumanFormat, Level: WarnLevel, Output: &buf})

	logger.Debug("debug msg", nil)
	logger.Info("info msg", nil)
	logger.Warn("warn msg", nil)
	logger.Error("error msg", nil)

	out := buf.String()
	if strings.Contains(out, "debug msg") || strings.Contains(out, "info msg") {
		t.Errorf("below-threshold messages were logged: %q", out)
	}
	if !strings.Contains(out, "warn msg") || !strings.Contains(out, "error msg") {
		t.Errorf("at-or-above-threshold messages missing: %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Format: JSONFormat, Level: InfoLevel, Output: &buf})

	logger.Info("sorted dataset", Fields{"records": 4})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry["message"] != "sorted dataset" {
		t.Errorf("message = %v, want %q", entry["message"], "sorted dataset")
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	fields, ok := entry["fields"].(map[string]interface{})
	if !ok || fields["records"] != float64(4) {
		t.Errorf("fields = %v, want records=4", entry["fields"])
	}
}

func TestHumanFormatDeterministicFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Format: HumanFormat, Level: InfoLevel, Output: &buf})

	logger.Info("msg", Fields{"b": 2, "a": 1, "c": 3})

	out := buf.String()
	if !strings.Contains(out, "a=1 b=2 c=3") {
		t.Errorf("fields not sorted: %q", out)
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Format: JSONFormat, Level: InfoLevel, Output: &buf})

	child := logger.With(Fields{"component": "store"})
	child.Info("opened", Fields{"path": "/tmp/x.db"})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	fields := entry["fields"].(map[string]interface{})
	if fields["component"] != "store" {
		t.Errorf("static field missing: %v", fields)
	}
	if fields["path"] != "/tmp/x.db" {
		t.Errorf("call field missing: %v", fields)
	}

	// Parent is unaffected
	buf.Reset()
	logger.Info("plain", nil)
	if strings.Contains(buf.String(), "component") {
		t.Errorf("parent logger gained static fields: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DebugLevel},
		{"error", ErrorLevel},
		{"bogus", InfoLevel},
		{"", InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
