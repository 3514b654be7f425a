package logx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Abraxas-365/resumeforge/pkg/kernel"
	"github.com/Abraxas-365/resumeforge/pkg/logx"
)

func TestJSONFormatterFieldsAndContext(t *testing.T) {
	var buf bytes.Buffer
	l := logx.NewLogger(&logx.Config{Level: logx.LevelDebug, Format: logx.FormatJSON, Output: &buf})

	ctx := context.WithValue(context.Background(), kernel.RequestIDKey, "req-42")
	l.WithField("score", 71).WithContext(ctx).WithError(errors.New("boom")).Warn("scored")

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if got["message"] != "scored" || got["level"] != "WARN" {
		t.Fatalf("got %v", got)
	}
	if got["request_id"] != "req-42" || got["error"] != "boom" || got["score"] != float64(71) {
		t.Fatalf("fields missing: %v", got)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := logx.NewLogger(&logx.Config{Level: logx.LevelWarn, Format: logx.FormatConsole, Output: &buf})

	l.WithField("a", 1).Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered, got %q", buf.String())
	}

	l.WithFields(logx.Fields{"b": 2, "a": 1}).Error("shown")
	line := buf.String()
	if !strings.Contains(line, "shown") || !strings.Contains(line, "a=1 b=2") {
		t.Fatalf("console line = %q", line)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]logx.Level{
		"debug":   logx.LevelDebug,
		"WARNING": logx.LevelWarn,
		"off":     logx.LevelOff,
		"bogus":   logx.LevelInfo,
	}
	for in, want := range cases {
		if got := logx.ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
