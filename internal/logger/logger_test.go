package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestVerboseToggle(t *testing.T) {
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	var buf bytes.Buffer
	SetOutput(&buf)

	SetVerbose(false)
	Debug("hidden %d", 1)
	if buf.Len() != 0 {
		t.Errorf("expected no output when verbose is off, got %q", buf.String())
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected IsVerbose to report true")
	}
	Debug("shown %d", 2)
	Info("info line")
	Warn("warn line")
	Section("Ingest")

	out := buf.String()
	for _, want := range []string{"[DEBUG] shown 2", "[INFO] info line", "[WARN] warn line", "=== Ingest ==="} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
}
