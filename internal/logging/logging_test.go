package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew(t *testing.T) {
	t.Run("ConsoleOnly", func(t *testing.T) {
		var buf bytes.Buffer
		logger, closer := New(&buf, Options{Level: "warn"})
		defer closer.Close()

		logger.Info("hidden")
		logger.Warn("shown", "room_id", "r1")
		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Errorf("Expected info to be filtered, got %q", out)
		}
		if !strings.Contains(out, "shown") || !strings.Contains(out, "r1") {
			t.Errorf("Expected warning with attrs, got %q", out)
		}
	})

	t.Run("ConsoleAndFile", func(t *testing.T) {
		var buf bytes.Buffer
		path := filepath.Join(t.TempDir(), "app.log")
		logger, closer := New(&buf, Options{Level: "info", File: path})

		logger.With("user_id", "u1").Info("vote cast", "date", "2024-05-01")
		if err := closer.Close(); err != nil {
			t.Fatalf("Failed to close file sink: %v", err)
		}

		if !strings.Contains(buf.String(), "vote cast") {
			t.Errorf("Expected console output, got %q", buf.String())
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Expected log file: %v", err)
		}
		var line map[string]any
		if err := json.Unmarshal(bytes.TrimSpace(data), &line); err != nil {
			t.Fatalf("Expected one JSON line, got %q: %v", data, err)
		}
		if line["msg"] != "vote cast" || line["user_id"] != "u1" || line["date"] != "2024-05-01" {
			t.Errorf("Unexpected JSON record %v", line)
		}
	})
}
