package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"plexextras/internal/config"
)

func TestConsoleHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	WithComponent(logger, "collector").Info("scan complete", "items", 42, "section", "Movies A")

	line := buf.String()
	if !strings.Contains(line, " INFO collector: scan complete") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "items=42") {
		t.Fatalf("missing int attr: %q", line)
	}
	if !strings.Contains(line, `section="Movies A"`) {
		t.Fatalf("string with spaces should be quoted: %q", line)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("suppressed")
	logger.Warn("kept")
	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info record should be suppressed: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestJSONHandlerEmitsLowercaseLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("hello", slog.String("k", "v"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("parse json log: %v", err)
	}
	if record["level"] != "info" {
		t.Fatalf("level = %v", record["level"])
	}
	if record["msg"] != "hello" {
		t.Fatalf("msg = %v", record["msg"])
	}
	if record["k"] != "v" {
		t.Fatalf("attr = %v", record["k"])
	}
}

func TestNewFromConfigLogDirControlsFileSink(t *testing.T) {
	cfg := &config.Config{}
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "console"
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")

	if _, err := NewFromConfig(cfg); err != nil {
		t.Fatalf("new from config: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.LogDir, "plexextras.log")); err != nil {
		t.Fatalf("log file not created: %v", err)
	}

	cfg.Paths.LogDir = ""
	if _, err := NewFromConfig(cfg); err != nil {
		t.Fatalf("stdout-only logger: %v", err)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
