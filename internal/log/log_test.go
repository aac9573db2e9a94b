package log

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"DEBUG":   LevelDebug,
		"warn":    LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"info":    LevelInfo,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	SetLevel(LevelWarn)
	defer SetLevel(LevelInfo)

	Debug("debug line")
	Info("info line")
	Warn("warn line", "path", "events.csv")
	Error("error line", errors.New("boom"), "rows", 3)

	out := buf.String()
	if strings.Contains(out, "debug line") || strings.Contains(out, "info line") {
		t.Errorf("lines below WARN should be dropped, got:\n%s", out)
	}
	if !strings.Contains(out, "[WARN] warn line path=events.csv") {
		t.Errorf("missing warn line, got:\n%s", out)
	}
	if !strings.Contains(out, "[ERROR] error line err=boom rows=3") {
		t.Errorf("missing error line, got:\n%s", out)
	}
}

func TestFormatKVsQuotesSpaces(t *testing.T) {
	got := formatKVs("name", "Summer Sale", "count", 2, "dangling")
	want := ` name="Summer Sale" count=2`
	if got != want {
		t.Errorf("formatKVs = %q, want %q", got, want)
	}
}
