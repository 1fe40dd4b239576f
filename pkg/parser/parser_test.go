package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/YulinWu/interpreter/pkg/ast"
	"github.com/YulinWu/interpreter/pkg/printer"
	"github.com/YulinWu/interpreter/pkg/types"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := ParseProgram(src)
	if err != nil {
		t.Fatalf("ParseProgram(%q) returned error: %v", src, err)
	}
	return prog
}

func parseExpr(t *testing.T, src string) ast.Expression {
	t.Helper()
	prog := mustParse(t, src+";")
	if len(prog.Body) != 1 {
		t.Fatalf("expected one statement, got %d", len(prog.Body))
	}
	expr, ok := prog.Body[0].(ast.Expression)
	if !ok {
		t.Fatalf("statement is %T, not an expression", prog.Body[0])
	}
	return expr
}

func TestPrecedence(t *testing.T) {
	cases := map[string]string{
		"1 + 2 * 3":             "(1 + (2 * 3))",
		"1 - 2 - 3":             "((1 - 2) - 3)",
		"a || b && c":           "(a || (b && c))",
		"a == b < c":            "(a == (b < c))",
		"-x * y":                "(-x * y)",
		"!a && b":               "(!a && b)",
		"(1 + 2) * 3":           "((1 + 2) * 3)",
		"x = y = 2":             "x = y = 2",
		"a[i + 1][j]++":         "a[(i + 1)][j]++",
		"++i + f(1, g())":       "(++i + f(1, g()))",
		"s + \"tab\\t\" * 2":    "(s + (\"tab\\t\" * 2))",
		"x % 2 != 0 || 1.5 > y": "(((x % 2) != 0) || (1.5 > y))",
	}
	for src, want := range cases {
		if got := printer.Print(parseExpr(t, src)); got != want {
			t.Fatalf("%s parsed as %s, want %s", src, got, want)
		}
	}
}

func TestDeclarations(t *testing.T) {
	prog := mustParse(t, "int x; float y = 1.5; string s[2][3]; boolean b = !true;")
	if len(prog.Body) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(prog.Body))
	}
	x := prog.Body[0].(*ast.VariableDeclaration)
	if x.Name.Name != "x" || x.Type != types.Int || x.Initializer != nil {
		t.Fatalf("unexpected declaration %+v", x)
	}
	arr := prog.Body[2].(*ast.ArrayDeclaration)
	if arr.ArrayType() != types.ArrayOf(types.String, 2) || len(arr.Dimensions) != 2 {
		t.Fatalf("unexpected array declaration type %s", arr.ArrayType())
	}
}

func TestFunctionDeclaration(t *testing.T) {
	prog := mustParse(t, "int add(int a, int b) { return a + b; }\nvoid hi() { print \"hi\"; return; }\nprint add(1, 2);")
	fns := prog.Functions()
	if len(fns) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(fns))
	}
	add := fns[0]
	if add.Name.Name != "add" || add.ReturnType != types.Int || len(add.Params) != 2 || add.Params[1].Type != types.Int {
		t.Fatalf("unexpected function %+v", add)
	}
	if fns[1].ReturnType != types.Void {
		t.Fatalf("hi returns %s", fns[1].ReturnType)
	}
}

func TestControlFlow(t *testing.T) {
	src := "int i; for (i = 0; i < 3; i++) { if (i == 1) print i; else ; } while (false) ; for (;;) { }"
	prog := mustParse(t, src)
	loop := prog.Body[1].(*ast.ForStatement)
	if loop.Init == nil || loop.Condition == nil || loop.Update == nil {
		t.Fatalf("for clauses missing: %+v", loop)
	}
	forever := prog.Body[3].(*ast.ForStatement)
	if forever.Init != nil || forever.Condition != nil || forever.Update != nil {
		t.Fatalf("empty for clauses should be nil: %+v", forever)
	}
	ifStmt := loop.Body.(*ast.BlockStatement).Body[0].(*ast.IfStatement)
	if _, ok := ifStmt.Else.(*ast.BlockStatement); !ok {
		t.Fatalf("empty else should become an empty block, got %T", ifStmt.Else)
	}
}

func TestPositions(t *testing.T) {
	prog := mustParse(t, "int x;\n  x = 3 + y;")
	assign := prog.Body[1].(*ast.AssignmentExpression)
	if assign.Pos() != (ast.Position{Line: 2, Column: 3}) {
		t.Fatalf("assignment at %s", assign.Pos())
	}
	bin := assign.Right.(*ast.BinaryExpression)
	if bin.Right.Pos() != (ast.Position{Line: 2, Column: 11}) {
		t.Fatalf("y at %s", bin.Right.Pos())
	}
}

func TestSyntaxErrors(t *testing.T) {
	cases := []struct {
		src        string
		msg        string
		incomplete bool
	}{
		{"int x", "syntax error at 1:6: expected \";\"", true},
		{"print 1 +;", "syntax error at 1:10: expected an expression", false},
		{"{ int f() { } }", "function declarations are only allowed at top level", false},
		{"void x;", "variable cannot have type void", false},
		{"int f(void a) {}", "parameter cannot have type void", false},
		{"f()[0];", "only variables can be indexed", false},
		{"x = @;", "syntax error at 1:5: unexpected character '@'", false},
		{"while (x) {", "expected \"}\" to close block opened at 1:11", true},
		{"/* open", "unterminated comment", true},
		{"if (x) int y;", "declaration is not allowed here", false},
		{"print 99999999999999999999;", "out of range", false},
	}
	for _, tc := range cases {
		_, err := ParseProgram(tc.src)
		if err == nil {
			t.Fatalf("%q: expected syntax error", tc.src)
		}
		var perr *Error
		if !errors.As(err, &perr) {
			t.Fatalf("%q: error %T is not *parser.Error", tc.src, err)
		}
		if !strings.Contains(err.Error(), tc.msg) {
			t.Fatalf("%q: error %q does not contain %q", tc.src, err.Error(), tc.msg)
		}
		if IsIncomplete(err) != tc.incomplete {
			t.Fatalf("%q: IsIncomplete = %v, want %v", tc.src, IsIncomplete(err), tc.incomplete)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	src := `
int fib(int n) {
    if (n < 2) return n;
    return fib(n - 1) + fib(n - 2);
}
int a[2][2];
a[0][1] = fib(10);
string s = "v=" + a[0][1];
print s;
`
	first := printer.Print(mustParse(t, src))
	second := printer.Print(mustParse(t, first))
	if first != second {
		t.Fatalf("printer output does not round-trip\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}
