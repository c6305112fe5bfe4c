package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		" DEBUG ": slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewHandler_JSONAddsStacktraceOnError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, "INFO", "json"))

	logger.Error("boom", "id", 7)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "boom" {
		t.Errorf("msg = %v", rec["msg"])
	}
	if st, _ := rec["stacktrace"].(string); st == "" {
		t.Error("expected stacktrace on ERROR record")
	}
}

func TestNewHandler_NoStacktraceBelowError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, "DEBUG", "json"))

	logger.Warn("careful")

	if strings.Contains(buf.String(), "stacktrace") {
		t.Errorf("unexpected stacktrace in %s", buf.String())
	}
}

func TestNewHandler_TextFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	h := newHandler(&buf, "WARN", "text")
	logger := slog.New(h)

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("INFO record should be filtered at WARN level")
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "k=v") {
		t.Errorf("expected text output, got %q", out)
	}
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("DEBUG should be disabled at WARN level")
	}
}

func TestStackHandler_WithAttrsKeepsWrapping(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, "INFO", "json")).With("component", "test").WithGroup("g")

	logger.Error("boom")

	if !strings.Contains(buf.String(), "stacktrace") || !strings.Contains(buf.String(), `"component":"test"`) {
		t.Errorf("expected attrs and stacktrace, got %s", buf.String())
	}
}
