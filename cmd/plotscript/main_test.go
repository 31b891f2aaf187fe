package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.pls")
	if err := os.WriteFile(good, []byte("(begin (define a 2) ; comment\n (* a 21))"), 0o644); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.pls")
	if err := os.WriteFile(bad, []byte("(+ 1"), 0o644); err != nil {
		t.Fatal(err)
	}

	for i, tt := range []struct {
		args   []string
		code   int
		stdout string
		stderr string
	}{
		{args: []string{"-e", "(+ 1 2)"}, code: 0, stdout: "(3)\n"},
		{args: []string{"-e", `(get-property "size" (set-size (make-point 1 1) 2))`}, code: 0, stdout: "(2)\n"},
		{args: []string{"-e", "(+ 1"}, code: 1, stderr: "Error: Invalid Program. Could not parse.\n"},
		{args: []string{"-e", "nope"}, code: 1, stderr: "Error: during handle lookup: unknown symbol nope\n"},
		{args: []string{good}, code: 0, stdout: "(42)\n"},
		{args: []string{bad}, code: 1, stderr: "Error: Invalid Program. Could not parse.\n"},
		{args: []string{filepath.Join(dir, "missing.pls")}, code: 1, stderr: "Error: Could not open file for reading.\n"},
		{args: []string{dir}, code: 1, stderr: "Error: Could not open file for reading.\n"},
		{args: []string{"a", "b", "c"}, code: 1, stderr: "Error: Incorrect number of command line arguments.\n"},
		{args: []string{"-x", "(+ 1 2)"}, code: 1, stderr: "Error: Incorrect number of command line arguments.\n"},
	} {
		var stdout, stderr bytes.Buffer
		code := run(tt.args, &stdout, &stderr)
		if code != tt.code {
			t.Errorf("%d) %v: got exit %d want %d", i, tt.args, code, tt.code)
		}
		if stdout.String() != tt.stdout {
			t.Errorf("%d) %v: got stdout %q want %q", i, tt.args, stdout.String(), tt.stdout)
		}
		if stderr.String() != tt.stderr {
			t.Errorf("%d) %v: got stderr %q want %q", i, tt.args, stderr.String(), tt.stderr)
		}
	}
}

func TestRunBadStartup(t *testing.T) {
	dir := t.TempDir()
	unparsable := filepath.Join(dir, "unparsable.pls")
	if err := os.WriteFile(unparsable, []byte("(begin"), 0o644); err != nil {
		t.Fatal(err)
	}
	failing := filepath.Join(dir, "failing.pls")
	if err := os.WriteFile(failing, []byte("(undefined 1)"), 0o644); err != nil {
		t.Fatal(err)
	}

	for i, tt := range []struct {
		startup string
		want    string
	}{
		{startup: unparsable, want: "Error: Invalid Startup Program. Could not parse."},
		{startup: failing, want: "Start-up failed"},
		{startup: filepath.Join(dir, "missing.pls"), want: "Start-up failed"},
	} {
		t.Setenv("PLOTSCRIPT_STARTUP", tt.startup)
		var stdout, stderr bytes.Buffer
		if code := run([]string{"-e", "(+ 1 2)"}, &stdout, &stderr); code != 1 {
			t.Errorf("%d) got exit %d want 1", i, code)
		}
		if !strings.HasPrefix(stderr.String(), tt.want) {
			t.Errorf("%d) got stderr %q want prefix %q", i, stderr.String(), tt.want)
		}
		if stdout.Len() != 0 {
			t.Errorf("%d) unexpected stdout %q", i, stdout.String())
		}
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("PLOTSCRIPT_STARTUP", "")
	t.Setenv("PLOTSCRIPT_HISTORY", "/tmp/hist")
	t.Setenv("PLOTSCRIPT_LOG_LEVEL", "debug")
	cfg := loadConfig()
	if cfg.startup != "" || cfg.history != "/tmp/hist" || cfg.logLevel.String() != "DEBUG" {
		t.Fatalf("got %+v", cfg)
	}
	t.Setenv("PLOTSCRIPT_LOG_LEVEL", "loud")
	if cfg := loadConfig(); cfg.logLevel.String() != "WARN" {
		t.Fatalf("bad level should fall back to WARN, got %s", cfg.logLevel)
	}
}
