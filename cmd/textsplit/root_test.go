package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/freud/split-text-smartly/internal/config"
	"github.com/freud/split-text-smartly/internal/core/domain"
)

func testConfig() config.Config {
	return config.Config{
		SplitMaxRowLength: domain.DefaultMaxRowLength,
		SplitMaxRows:      domain.DefaultMaxRows,
		SplitBackend:      config.SplitBackendLocal,
	}
}

func execute(t *testing.T, cfg config.Config, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(cfg)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSplitArguments(t *testing.T) {
	out, err := execute(t, testConfig(), "", "--max-row-length", "4", "--max-rows", "1000", "abc", "def")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "abc \ndef\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestSplitStdinWithPadding(t *testing.T) {
	out, err := execute(t, testConfig(), "hello\n", "-w", "8", "-n", "3", "--fill")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "hello\n\n\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestSplitFileAsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(path, []byte("  ab  "), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}

	out, err := execute(t, testConfig(), "", "-f", path, "--trim", "--json")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var result domain.SplitResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if !reflect.DeepEqual(result.Rows, []string{"ab"}) || !result.Options.TrimSentence {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestSplitUsesConfigDefaultsWhenFlagsUnset(t *testing.T) {
	cfg := testConfig()
	cfg.SplitMaxRowLength = 3

	out, err := execute(t, cfg, "", "abcdef")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "abc\ndef\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestSplitRejectsInvalidOptions(t *testing.T) {
	_, err := execute(t, testConfig(), "", "--max-rows", "0", "abc")
	if !domain.IsKind(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected invalid config error, got %v", err)
	}
}

func TestSplitRejectsArgumentsWithFile(t *testing.T) {
	if _, err := execute(t, testConfig(), "", "-f", "x.txt", "abc"); err == nil {
		t.Fatalf("expected error when both arguments and --file are given")
	}
}

func TestSplitRejectsInvalidUTF8(t *testing.T) {
	for _, stdin := range []string{"ab\xffcd", "\xc3"} {
		_, err := execute(t, testConfig(), stdin)
		if !domain.IsKind(err, domain.ErrInvalidInput) {
			t.Fatalf("%q: expected invalid input error, got %v", stdin, err)
		}
	}

	_, err := execute(t, testConfig(), "", "ab\xffcd")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input error for argument, got %v", err)
	}
}

func TestFlagDefaultsMatchEngineDefaults(t *testing.T) {
	cmd := newRootCmd(testConfig())
	for flag, want := range map[string]string{"max-row-length": "100", "max-rows": "10", "trim": "false", "fill": "false"} {
		if got := cmd.Flags().Lookup(flag).DefValue; got != want {
			t.Fatalf("--%s default = %s, want %s", flag, got, want)
		}
	}
}
