package driver

import (
	"bytes"
	"testing"

	"github.com/YulinWu/interpreter/pkg/parser"
)

func TestSessionKeepsState(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(DefaultConfig(), &out)
	for _, chunk := range []string{
		"int x = 2;",
		"int square(int n) { return n * n; }",
		"x = square(x + 1);",
		"print x;",
	} {
		if _, err := s.Eval(chunk); err != nil {
			t.Fatalf("Eval(%q) returned error: %v", chunk, err)
		}
	}
	if out.String() != "9" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestSessionRollsBackFailedChunks(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(DefaultConfig(), &out)
	if _, err := s.Eval("int x = 1;"); err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	// Each failure happens in a different pass after y or g was declared.
	for _, chunk := range []string{
		"int y = 1; print z;",
		"int y = 1; y = 1.5;",
		"int g() { return 1; } int y = 1; int a[1]; a[5] = 0;",
	} {
		if _, err := s.Eval(chunk); err == nil {
			t.Fatalf("Eval(%q) succeeded", chunk)
		}
	}
	// y and g are free again and x survived.
	if _, err := s.Eval("int y = x + 1; int g() { return 2; } print y + g();"); err != nil {
		t.Fatalf("Eval after rollback returned error: %v", err)
	}
	if out.String() != "4" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestSessionIncompleteInput(t *testing.T) {
	s := NewSession(DefaultConfig(), nil)
	_, err := s.Eval("int f(int n) {")
	if !parser.IsIncomplete(err) {
		t.Fatalf("error = %v, want incomplete input", err)
	}
	_, err = s.Eval("int 1;")
	if err == nil || parser.IsIncomplete(err) {
		t.Fatalf("error = %v, want a complete syntax error", err)
	}
}
