package logger

import (
	"bytes"
	"os"
	"testing"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false after SetVerbose(false)")
	}
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("indexed %d chunks", 7)

	if buf.String() != "[DEBUG] indexed 7 chunks\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("should not appear")

	if buf.String() != "" {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestSection(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Entity Resolution")

	if buf.String() != "\n=== Entity Resolution ===\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestInfoAndWarn_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Info("info %s", "msg")
	Warn("warn %s", "msg")

	want := "[INFO] info msg\n[WARN] warn msg\n"
	if buf.String() != want {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestError_IgnoresVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Error("ingest failed: %v", "boom")

	if buf.String() != "[ERROR] ingest failed: boom\n" {
		t.Errorf("expected error output even when not verbose, got %q", buf.String())
	}
}
