package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{
		Level:      LevelDebug,
		Output:     &buf,
		JSON:       true,
		AddSource:  false,
		TimeFormat: time.RFC3339,
	}

	logger := New(cfg)
	if logger == nil {
		t.Fatal("New logger should not be nil")
	}

	t.Run("Levels", func(t *testing.T) {
		buf.Reset()
		logger.Debug("debug msg")
		if !strings.Contains(buf.String(), "debug msg") {
			t.Error("debug logging failed")
		}

		buf.Reset()
		logger.Info("info msg")
		if !strings.Contains(buf.String(), "info msg") {
			t.Error("info logging failed")
		}

		buf.Reset()
		logger.Error("error msg")
		if !strings.Contains(buf.String(), "error msg") {
			t.Error("error logging failed")
		}
	})

	t.Run("JSONOutput", func(t *testing.T) {
		buf.Reset()
		logger.Info("structured", "key", "value", "count", 3)

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if entry["key"] != "value" {
			t.Errorf("expected key=value, got %v", entry["key"])
		}
	})

	t.Run("LevelFiltering", func(t *testing.T) {
		logger.SetLevel(LevelWarn)
		defer logger.SetLevel(LevelDebug)

		buf.Reset()
		logger.Info("should be dropped")
		if buf.Len() != 0 {
			t.Error("info should be filtered at warn level")
		}

		buf.Reset()
		logger.Warn("should pass")
		if buf.Len() == 0 {
			t.Error("warn should not be filtered at warn level")
		}
	})
}

func TestConsoleHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Output: &buf})

	logger.Info("hello", "port", 80)
	out := buf.String()
	if !strings.Contains(out, "[info]") {
		t.Errorf("expected level tag in output, got %q", out)
	}
	if !strings.Contains(out, "port=80") {
		t.Errorf("expected attribute in output, got %q", out)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Output: &buf})

	logger.WithComponent("probe").Info("scanning")
	out := buf.String()
	if !strings.Contains(out, "probe:") {
		t.Errorf("expected component header in output, got %q", out)
	}
	if strings.Contains(out, "component=") {
		t.Errorf("component should be promoted to header, got %q", out)
	}
}

func TestQuotedAttrValues(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Output: &buf})

	logger.Info("msg", "server", "New York, NY")
	if !strings.Contains(buf.String(), `server="New York, NY"`) {
		t.Errorf("expected quoted value, got %q", buf.String())
	}
}
