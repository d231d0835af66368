package telemetry

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestOpenWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tusavi.log")
	logger, err := Open(path, "info")
	if err != nil {
		t.Fatalf("open logger: %v", err)
	}
	logger.Info("round completed", "score", 120)
	logger.Debug("hidden")
	if err := logger.Close(); err != nil {
		t.Fatalf("close logger: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "round completed") || !strings.Contains(out, "score=120") {
		t.Fatalf("unexpected log output: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered at info level")
	}
}

func TestOpenRejectsBadLevel(t *testing.T) {
	if _, err := Open("", "loud"); err == nil {
		t.Fatalf("expected invalid level error")
	}
}

func TestNewWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, log.WarnLevel)
	logger.Info("quiet")
	logger.Warn("sound failed", "err", "no tty")
	if strings.Contains(buf.String(), "quiet") {
		t.Fatalf("info should be filtered at warn level")
	}
	if !strings.Contains(buf.String(), "sound failed") {
		t.Fatalf("expected warn line, got %q", buf.String())
	}
	if err := Discard().Close(); err != nil {
		t.Fatalf("close discard: %v", err)
	}
}
