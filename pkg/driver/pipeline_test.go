package driver

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/YulinWu/interpreter/pkg/interpreter"
	"github.com/YulinWu/interpreter/pkg/parser"
	"github.com/YulinWu/interpreter/pkg/semantic"
	"github.com/YulinWu/interpreter/pkg/typechecker"
)

func runSource(t *testing.T, src string, cfg Config) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Run(src, Options{Path: "test.ii", Stdout: &stdout, Stderr: &stderr, Config: cfg})
	return stdout.String(), stderr.String(), err
}

func TestRunEndToEnd(t *testing.T) {
	out, diag, err := runSource(t, "int x; x = 3; print x + 1;", DefaultConfig())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if out != "4" || diag != "" {
		t.Fatalf("stdout = %q, stderr = %q", out, diag)
	}
}

func TestRunUninitializedVariable(t *testing.T) {
	out, _, err := runSource(t, "int x; print x;", DefaultConfig())
	var serr *semantic.Error
	if !errors.As(err, &serr) || !strings.Contains(serr.Message, "may not have been initialized") {
		t.Fatalf("error = %v", err)
	}
	if out != "" {
		t.Fatalf("program produced output %q", out)
	}
}

func TestRunReportsWarnings(t *testing.T) {
	out, diag, err := runSource(t, "int x = 1;\nx + 1;\nprint x;", DefaultConfig())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if out != "1" {
		t.Fatalf("stdout = %q", out)
	}
	if want := "test.ii:2:1: warning: computed value is not used: (x + 1)\n"; diag != want {
		t.Fatalf("stderr = %q, want %q", diag, want)
	}
}

func TestRunWarningSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Quiet = true
	_, diag, err := runSource(t, "1;", cfg)
	if err != nil || diag != "" {
		t.Fatalf("quiet run: stderr = %q, err = %v", diag, err)
	}

	cfg = DefaultConfig()
	cfg.WarningsAsErrors = true
	out, diag, err := runSource(t, `1; print "ran";`, cfg)
	var werr *WarningsError
	if !errors.As(err, &werr) || werr.Count != 1 {
		t.Fatalf("error = %v, want WarningsError", err)
	}
	if out != "" || !strings.Contains(diag, "warning:") {
		t.Fatalf("stdout = %q, stderr = %q", out, diag)
	}
}

func TestRunStageErrors(t *testing.T) {
	cases := []struct {
		src    string
		target any
		want   string
	}{
		{"int x = ;", new(*parser.Error), "test.ii:1:9: syntax error: "},
		{"print y;", new(*semantic.Error), "test.ii:1:7: semantic error: variable y cannot be resolved"},
		{"int x = 1.5;", new(*typechecker.Error), "test.ii:1:9: type error: cannot initialize int x with a value of type float"},
		{"int a[2]; a[2] = 1;", new(*interpreter.RuntimeError), "test.ii:1:11: runtime error: index (2) out of range"},
	}
	for _, tc := range cases {
		_, _, err := runSource(t, tc.src, DefaultConfig())
		if err == nil || !errors.As(err, tc.target) {
			t.Fatalf("%q: error = %v (%T)", tc.src, err, err)
		}
		if got := DescribeDiagnostic(ErrorDiagnostic("test.ii", err)); !strings.HasPrefix(got, tc.want) {
			t.Fatalf("%q: diagnostic = %q, want prefix %q", tc.src, got, tc.want)
		}
	}
}

func TestRunHonoursCallDepth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCallDepth = 10
	_, _, err := runSource(t, "int f(int n) { if (n == 0) return 0; return f(n - 1); } print f(20);", cfg)
	if err == nil || !strings.Contains(err.Error(), "call depth exceeded") {
		t.Fatalf("error = %v", err)
	}
	out, _, err := runSource(t, "int f(int n) { if (n == 0) return 0; return f(n - 1); } print f(9);", cfg)
	if err != nil || out != "0" {
		t.Fatalf("output = %q, err = %v", out, err)
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.ii")
	if err := os.WriteFile(path, []byte(`print "hello\n";`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var out bytes.Buffer
	if err := RunFile(path, "", Options{Stdout: &out, Config: DefaultConfig()}); err != nil {
		t.Fatalf("RunFile returned error: %v", err)
	}
	if out.String() != "hello\n" {
		t.Fatalf("output = %q", out.String())
	}
	if err := RunFile(filepath.Join(t.TempDir(), "missing.ii"), "", Options{}); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestCompileKeepsWarningsOnFailure(t *testing.T) {
	prog, err := Compile("1;\nprint z;")
	if err == nil {
		t.Fatalf("expected semantic error")
	}
	if prog == nil || len(prog.Warnings) != 1 || prog.Warnings[0].Pos.Line != 1 {
		t.Fatalf("warnings = %+v", prog)
	}
}
