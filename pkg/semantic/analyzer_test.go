package semantic

import (
	"errors"
	"strings"
	"testing"

	"github.com/YulinWu/interpreter/pkg/ast"
	"github.com/YulinWu/interpreter/pkg/parser"
	"github.com/YulinWu/interpreter/pkg/types"
)

func analyzeSource(t *testing.T, src string) ([]Warning, error) {
	t.Helper()
	prog, err := parser.ParseProgram(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	_, warnings, err := Analyze(prog)
	return warnings, err
}

func expectSemanticError(t *testing.T, src, fragment string) *Error {
	t.Helper()
	_, err := analyzeSource(t, src)
	if err == nil {
		t.Fatalf("%q: expected semantic error containing %q", src, fragment)
	}
	var serr *Error
	if !errors.As(err, &serr) {
		t.Fatalf("%q: error %T is not *semantic.Error", src, err)
	}
	if !strings.Contains(serr.Message, fragment) {
		t.Fatalf("%q: error %q does not contain %q", src, serr.Message, fragment)
	}
	return serr
}

func TestAssignedVariableHasNoDiagnostics(t *testing.T) {
	warnings, err := analyzeSource(t, "int x; x = 3; print x + 1;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
}

func TestUseBeforeInitialization(t *testing.T) {
	serr := expectSemanticError(t, "int x;\nprint x;", "local variable x may not have been initialized")
	if serr.Pos != (ast.Position{Line: 2, Column: 7}) {
		t.Fatalf("error at %s, want 2:7", serr.Pos)
	}
}

func TestResolutionErrors(t *testing.T) {
	cases := []struct {
		src      string
		fragment string
	}{
		{"print y;", "variable y cannot be resolved"},
		{"y = 1;", "variable y cannot be resolved"},
		{"int x = 1; int x = 2;", "double declaration of variable x"},
		{"int a[2]; float a;", "double declaration of variable a"},
		{"int x = 1; 3 = x;", "left hand side must be an lvalue"},
		{"int x = 1; (x + 1) = 2;", "left hand side must be an lvalue"},
		{"5++;", "must be an lvalue"},
		{"print f(1);", "use of undeclared function f"},
		{"return 1;", "return outside of a function"},
		{"int f(int a, int a) { return a; }", "double declaration of variable a"},
		{"int f() { return 1; } int f() { return 2; }", "function f already declared at 1:1"},
		{"{ int t = 1; } print t;", "variable t cannot be resolved"},
		{"int g = 1; int f() { return g; }", "variable g cannot be resolved"},
		{"int f(int n) { int n = 2; return n; }", "double declaration of variable n"},
	}
	for _, tc := range cases {
		expectSemanticError(t, tc.src, tc.fragment)
	}
}

func TestShadowingIsAllowed(t *testing.T) {
	src := "int x = 1; { string x = \"inner\"; print x; } print x;"
	if _, err := analyzeSource(t, src); err != nil {
		t.Fatalf("shadowing rejected: %v", err)
	}
}

func TestAssignmentMarksInitializedBeforeRecursing(t *testing.T) {
	// The lvalue is marked first, so the right side may read it.
	if _, err := analyzeSource(t, "int x; x = x + 1;"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestForwardAndRecursiveCalls(t *testing.T) {
	src := `
print even(4);
boolean even(int n) { if (n == 0) return true; return odd(n - 1); }
boolean odd(int n) { if (n == 0) return false; return even(n - 1); }
`
	if _, err := analyzeSource(t, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUnusedValueWarnings(t *testing.T) {
	src := "int x = 1;\nx + 1;\nx = 2;\nx++;\n--x;\nint i = 0;\nfor (i; i < 3; i + 1) { f(); }\nvoid f() { 7; }"
	warnings, err := analyzeSource(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	for _, w := range warnings {
		if w.Message != "computed value is not used" {
			t.Fatalf("unexpected warning %q", w.Message)
		}
		got = append(got, w.Pos.String())
	}
	// The function body is analyzed where it appears in the source.
	want := []string{"2:1", "7:6", "7:16", "8:12"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("warnings at %v, want %v", got, want)
	}
}

func TestWarningString(t *testing.T) {
	w := Warning{Pos: ast.Position{Line: 3, Column: 5}, Message: msgUnusedValue}
	if got := w.String(); got != "3:5: warning: computed value is not used" {
		t.Fatalf("Warning.String() = %q", got)
	}
}

func TestArraysAreInitializedOnDeclaration(t *testing.T) {
	if _, err := analyzeSource(t, "int n = 2; float m[n][n + 1]; print m[0][1];"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNestedFunctionDeclarationRejected(t *testing.T) {
	prog := ast.Prog(ast.Block(ast.Fn(types.Void, "inner", nil)))
	_, _, err := Analyze(prog)
	if err == nil || !strings.Contains(err.Error(), "must be declared at top level") {
		t.Fatalf("expected top level error, got %v", err)
	}
}

func TestCheckpointRestoresScope(t *testing.T) {
	functions := FunctionTable{}
	an := NewAnalyzer(functions)
	first, _ := parser.ParseProgram("int a = 1;")
	if _, err := an.Analyze(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	restore := an.Checkpoint()
	second, _ := parser.ParseProgram("int b = a; print nope;")
	if _, err := an.Analyze(second); err == nil {
		t.Fatalf("expected error for unresolved name")
	}
	restore()
	third, _ := parser.ParseProgram("int b = a + 1; print b;")
	if _, err := an.Analyze(third); err != nil {
		t.Fatalf("b should not survive the failed chunk: %v", err)
	}
}

func TestFunctionTableCollect(t *testing.T) {
	prog, _ := parser.ParseProgram("int one() { return 1; }")
	table, err := BuildFunctionTable(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clone := table.Clone()
	again, _ := parser.ParseProgram("int two() { return 2; }\nint one() { return 3; }")
	if err := clone.Collect(again); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if _, ok := clone.Lookup("two"); ok {
		t.Fatalf("failed Collect must not add any function")
	}
	if _, ok := table.Lookup("one"); !ok {
		t.Fatalf("one missing from table")
	}
}
