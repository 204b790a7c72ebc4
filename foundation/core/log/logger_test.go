// File: logger_test.go
// Title: Logger Tests
// Description: Tests for level filtering, context fields, formatters, timers and
//              severity-aware error logging.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial logger tests
// - 2026-10-19 v0.2.0: Adapted to the synchronous logger

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	mdwerror "github.com/msto63/khwarizmi/foundation/core/error"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := NewWithConfig(Config{
		Level:  level,
		Format: format,
		Output: buf,
		Name:   "test",
	})
	return logger, buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, FormatJSON)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown")
	logger.Audit("always")

	lines := decodeLines(t, buf)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %s", len(lines), buf.String())
	}
	if lines[2]["level"] != "audit" {
		t.Errorf("last level = %v, want audit", lines[2]["level"])
	}
}

func TestLogger_ContextFields(t *testing.T) {
	base, buf := newBufferLogger(LevelInfo, FormatJSON)
	logger := base.WithField("component", "solver").WithRequestID("req-1")

	logger.Info("solved", Fields{"steps": 2})
	base.Info("plain")

	lines := decodeLines(t, buf)
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[0]["component"] != "solver" || lines[0]["request_id"] != "req-1" {
		t.Errorf("context missing: %v", lines[0])
	}
	if lines[0]["steps"] != float64(2) {
		t.Errorf("steps = %v", lines[0]["steps"])
	}
	if _, ok := lines[1]["component"]; ok {
		t.Error("WithField must not modify the original logger")
	}
	if lines[0]["logger"] != "test" {
		t.Errorf("logger = %v", lines[0]["logger"])
	}
}

func TestLogger_LogErrorUsesSeverity(t *testing.T) {
	logger, buf := newBufferLogger(LevelTrace, FormatJSON)

	logger.LogError(mdwerror.New("no equals sign").WithCode(mdwerror.CodeNoEqualsSign))
	logger.LogError(mdwerror.New("db down").WithCode(mdwerror.CodeDatabaseError))
	logger.LogError(errors.New("plain"))
	logger.LogError(nil)

	lines := decodeLines(t, buf)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}

	wantLevels := []string{"info", "error", "warn"}
	for i, want := range wantLevels {
		if lines[i]["level"] != want {
			t.Errorf("line %d level = %v, want %s", i, lines[i]["level"], want)
		}
	}
	if lines[0]["error_code"] != "NO_EQUALS_SIGN" {
		t.Errorf("error_code = %v", lines[0]["error_code"])
	}
	if lines[0]["error_category"] != "algebra" {
		t.Errorf("error_category = %v", lines[0]["error_category"])
	}
	if _, ok := lines[0]["alert"]; ok {
		t.Error("low severity must not alert")
	}
	if lines[1]["alert"] != true {
		t.Errorf("database error alert = %v, want true", lines[1]["alert"])
	}
	if _, ok := lines[0]["error_details"]; !ok {
		t.Error("coded errors should carry error_details")
	}
}

func TestLogger_TextFormat(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)
	logger.WithRequestID("abc").Info("solved", Fields{"b": 2, "a": 1})

	line := buf.String()
	for _, want := range []string{"[INF]", "{test}", "(req=abc)", "solved", "[a=1 b=2]"} {
		if !strings.Contains(line, want) {
			t.Errorf("text output %q missing %q", line, want)
		}
	}
}

func TestLogger_Caller(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatJSON)
	logger.WithCaller(0).Info("where")

	lines := decodeLines(t, buf)
	caller, _ := lines[0]["caller"].(string)
	if !strings.HasPrefix(caller, "logger_test.go:") {
		t.Errorf("caller = %q", caller)
	}
}

func TestTimer_Stop(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)

	timer := logger.StartTimer("solve").WithField("input", "2x=4")
	if d := timer.Stop(); d < 0 {
		t.Errorf("Stop() = %v, want >= 0", d)
	}
	if d := timer.Stop(); d != 0 {
		t.Errorf("second Stop() = %v, want 0", d)
	}

	lines := decodeLines(t, buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[0]["message"] != "solve completed" || lines[0]["input"] != "2x=4" {
		t.Errorf("unexpected entry %v", lines[0])
	}
}

func TestTimer_StopWithError(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatJSON)

	logger.StartTimer("solve").StopWithError(errors.New("boom"))

	lines := decodeLines(t, buf)
	if len(lines) != 1 || lines[0]["level"] != "warn" || lines[0]["message"] != "solve failed" {
		t.Errorf("unexpected output %v", lines)
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		err  bool
	}{
		{"debug", LevelDebug, false},
		{" WARNING ", LevelWarn, false},
		{"trc", LevelTrace, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if got != tt.want || (err != nil) != tt.err {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}

	if f, err := ParseFormat("console"); err != nil || f != FormatConsole {
		t.Errorf("ParseFormat(console) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestConsoleFormatter_Colors(t *testing.T) {
	f := NewConsoleFormatter()
	f.DisableTimestamp = true

	out, err := f.Format(NewEntry(LevelError, "bad"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(out), LevelError.Color()) {
		t.Errorf("missing color prefix: %q", out)
	}

	f.DisableColors = true
	out, _ = f.Format(NewEntry(LevelError, "bad"))
	if string(out) != "[ERR] bad\n" {
		t.Errorf("plain output = %q", out)
	}
}
