package logutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetLogger_SharesOutput(t *testing.T) {
	t.Cleanup(func() { SetOutput(io.Discard) })
	var buf bytes.Buffer
	l1 := GetLogger("[one] ")
	SetOutput(&buf)
	l2 := GetLogger("[two] ")

	l1.Print("first")
	l2.Print("second")

	got := buf.String()
	if !strings.Contains(got, "[one] ") || !strings.Contains(got, "first") {
		t.Errorf("output %q lacks message from first logger", got)
	}
	if !strings.Contains(got, "[two] ") || !strings.Contains(got, "second") {
		t.Errorf("output %q lacks message from second logger", got)
	}
}

func TestSetOutputFile(t *testing.T) {
	t.Cleanup(func() { SetOutput(io.Discard) })
	fname := filepath.Join(t.TempDir(), "log")
	logger := GetLogger("[test] ")

	if err := SetOutputFile(fname); err != nil {
		t.Fatalf("SetOutputFile -> %v", err)
	}
	logger.Print("to file")
	if err := SetOutputFile(""); err != nil {
		t.Fatalf("SetOutputFile(\"\") -> %v", err)
	}

	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file contains %q, want message", data)
	}
}

func TestSetOutputFile_BadPath(t *testing.T) {
	err := SetOutputFile(filepath.Join(t.TempDir(), "no", "such", "dir", "log"))
	if err == nil {
		t.Errorf("SetOutputFile to nonexistent dir -> nil error")
	}
}
