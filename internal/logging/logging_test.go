package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTraceWritesStructuredEntryWhenEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "trace.log")
	Configure(Options{FilePath: path, Trace: true})
	t.Cleanup(func() { SetTraceEnabled(false) })

	Trace("menu.cursor", map[string]interface{}{"cursor": 2})
	Flush()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"event":"menu.cursor"`) {
		t.Fatalf("expected trace event in log, got:\n%s", data)
	}
	if !strings.Contains(string(data), `"cursor":2`) {
		t.Fatalf("expected payload in log, got:\n%s", data)
	}
}

func TestTraceDisabledWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiet.log")
	Configure(Options{FilePath: path})

	Trace("menu.cursor", map[string]interface{}{"cursor": 1})
	Flush()

	if data, err := os.ReadFile(path); err == nil && strings.Contains(string(data), "menu.cursor") {
		t.Fatalf("expected no trace output, got:\n%s", data)
	}
}

func TestErrorIsRecorded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.log")
	Configure(Options{FilePath: path})

	Error(nil)
	Error(errors.New("login refused"))
	Flush()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "login refused") {
		t.Fatalf("expected error message in log, got:\n%s", data)
	}
	if got := Path(); got != path {
		t.Fatalf("expected path %q, got %q", path, got)
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if parseLevel("bogus").String() != "info" {
		t.Fatalf("expected info for unknown level")
	}
	if parseLevel(" DEBUG ").String() != "debug" {
		t.Fatalf("expected debug level")
	}
}

func TestConfigureClosesPreviousFile(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	Configure(Options{FilePath: first})
	Info("before switch")
	Configure(Options{FilePath: second})
	Info("after switch")
	Flush()

	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read first log: %v", err)
	}
	if strings.Contains(string(data), "after switch") {
		t.Fatalf("entries leaked into the replaced file:\n%s", data)
	}
	if got := Path(); got != second {
		t.Fatalf("expected path %q, got %q", second, got)
	}

	fds, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Skip("no /proc fd listing on this platform")
	}
	for _, fd := range fds {
		if target, err := os.Readlink(filepath.Join("/proc/self/fd", fd.Name())); err == nil && target == first {
			t.Fatalf("replaced log file %s is still open", first)
		}
	}
}
