package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/argcmd/pkg/config"
	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"error", log.ErrorLevel},
		{"", log.WarnLevel},
		{"loud", log.WarnLevel},
	}

	for _, tc := range testCases {
		if got := ParseLevel(tc.input); got != tc.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.expected)
		}
	}
}

func TestNewWithConfig(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithConfig("demo", config.LogConfig{Level: "info"}, &buf)

	l.Debug("hidden")
	l.Info("shown", "name", "foo")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message logged at info level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "demo") {
		t.Errorf("expected prefixed info message, got %q", out)
	}
}
