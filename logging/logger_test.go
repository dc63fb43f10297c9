package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestLogger(t *testing.T) (*Logger, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.log")
	logger, err := NewLogger(false, path)
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}
	return logger, path
}

func TestLoggerWritesToFile(t *testing.T) {
	logger, path := newTestLogger(t)

	logger.Info("conversion complete", zap.String("output", "out.png"))
	if err := logger.Sync(); err != nil {
		t.Logf("Sync() returned %v (stdout sync is not fatal)", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "conversion complete") {
		t.Errorf("log file missing message, got: %s", data)
	}
	if !strings.Contains(string(data), `"output":"out.png"`) {
		t.Errorf("log file missing structured field, got: %s", data)
	}
}

func TestLoggerRedactsSensitiveFields(t *testing.T) {
	logger, path := newTestLogger(t)

	logger.Info("configured",
		zap.String("openai_api_key", "sk-proj-veryverysecretkey1234567890"),
		zap.String("note", "key is sk-abc123def456ghi789jkl012mno"),
	)
	logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if strings.Contains(string(data), "secret") || strings.Contains(string(data), "sk-abc123") {
		t.Errorf("log file leaked sensitive data: %s", data)
	}
	if !strings.Contains(string(data), RedactedPlaceholder) {
		t.Errorf("log file missing redaction placeholder: %s", data)
	}
}

func TestLoggerWith(t *testing.T) {
	logger, path := newTestLogger(t)

	child := logger.With(zap.String("correlation_id", "abcd1234"))
	child.Info("step one")
	child.Info("step two")
	logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if strings.Count(string(data), "abcd1234") != 2 {
		t.Errorf("child logger did not attach field to every entry: %s", data)
	}
}

func TestLoggerDebugLevelByMode(t *testing.T) {
	dir := t.TempDir()

	prodPath := filepath.Join(dir, "prod.log")
	prod, err := NewLogger(false, prodPath)
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}
	prod.Debug("hidden in production")
	prod.Sync()

	data, _ := os.ReadFile(prodPath)
	if strings.Contains(string(data), "hidden in production") {
		t.Errorf("production logger emitted debug entry")
	}

	devPath := filepath.Join(dir, "dev.log")
	dev, err := NewLogger(true, devPath)
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}
	dev.Debug("visible in development")
	dev.Sync()

	data, _ = os.ReadFile(devPath)
	if !strings.Contains(string(data), "visible in development") {
		t.Errorf("development logger dropped debug entry")
	}
}

func TestNilLoggerSync(t *testing.T) {
	var logger *Logger
	if err := logger.Sync(); err != nil {
		t.Errorf("nil Logger Sync() = %v, want nil", err)
	}
}
