package interpreter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/YulinWu/interpreter/pkg/ast"
	"github.com/YulinWu/interpreter/pkg/parser"
	"github.com/YulinWu/interpreter/pkg/semantic"
	"github.com/YulinWu/interpreter/pkg/typechecker"
	"github.com/YulinWu/interpreter/pkg/types"
)

// run pushes src through every pass and returns what the program printed.
func run(t *testing.T, src string, opts ...Option) (string, error) {
	t.Helper()
	prog, err := parser.ParseProgram(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	functions, _, err := semantic.Analyze(prog)
	if err != nil {
		t.Fatalf("semantic error: %v", err)
	}
	resolved, err := typechecker.Check(prog, functions)
	if err != nil {
		t.Fatalf("type error: %v", err)
	}
	var out bytes.Buffer
	opts = append(opts, WithOutput(&out))
	err = New(functions, resolved, opts...).Run(prog)
	return out.String(), err
}

func mustRun(t *testing.T, src string) string {
	t.Helper()
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("runtime error: %v", err)
	}
	return out
}

func expectRuntimeError(t *testing.T, src, fragment string) *RuntimeError {
	t.Helper()
	_, err := run(t, src)
	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected RuntimeError, got %v", err)
	}
	if rerr.Internal {
		t.Fatalf("unexpected internal error: %v", err)
	}
	if !strings.Contains(rerr.Message, fragment) {
		t.Fatalf("error %q does not mention %q", rerr.Message, fragment)
	}
	return rerr
}

func TestPrograms(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"assign and add", "int x; x = 3; print x + 1;", "4"},
		{"string repetition", `string s; s = "ab" * 3; print s;`, "ababab"},
		{"zero repetition", `print "ab" * 0;`, ""},
		{"promotion", "print 1 + 2.5;", "3.5"},
		{"float result", "float f = 1.0; print f * 2;", "2.0"},
		{"int division truncates", "print 7 / 2; print \" \"; print -7 / 2;", "3 -3"},
		{"int modulus", "print 7 % 3;", "1"},
		{"float modulus", "print 7.5 % 2;", "1.5"},
		{"float division by zero", "print 1.0 / 0;", "+Inf"},
		{"negation", "int x = 4; print -x; print -(-2.5);", "-42.5"},
		{"concatenation formats operands", `print "n=" + 3 + "," + 2.0 + "," + true;`, "n=3,2.0,true"},
		{"string comparison", `print "abc" < "abd"; print "a" == "a";`, "truetrue"},
		{"mixed comparison", "print 1 < 1.5; print 2 == 2.0;", "truetrue"},
		{"boolean equality", "print true == false; print true != false;", "falsetrue"},
		{"not", "print !(1 < 2);", "false"},
		{"escapes", `print "a\tb\n";`, "a\tb\n"},
		{"if else", "int x = 5; if (x > 3) print \"big\"; else print \"small\";", "big"},
		{"else if", "int x = 2; if (x == 1) print 1; else if (x == 2) print 2; else print 3;", "2"},
		{"while", "int i = 0; while (i < 3) { print i; i = i + 1; }", "012"},
		{"for", "int i; for (i = 0; i < 4; i++) print i;", "0123"},
		{"prefix and postfix", "int i = 1; print i++; print i; print ++i; print i--; print --i;", "12331"},
		{"float increment", "float f = 0.5; f++; print f;", "1.5"},
		{"chained assignment", "int a; int b; a = b = 7; print a + b;", "14"},
		{"block scoping", "int x = 1; { int y = 2; x = x + y; } { int y = 10; x = x + y; } print x;", "13"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mustRun(t, tc.src); got != tc.want {
				t.Fatalf("output = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestInfiniteForWithReturn(t *testing.T) {
	src := `
int firstSquareOver(int n) {
    int i;
    for (i = 0; ; i++) {
        if (i * i > n) return i;
    }
}
print firstSquareOver(50);`
	if got := mustRun(t, src); got != "8" {
		t.Fatalf("output = %q", got)
	}
}

func TestShortCircuit(t *testing.T) {
	src := `
boolean touch() {
    print "touched";
    return true;
}
boolean b;
b = false && touch();
b = true || touch();
print b;
b = true && touch();
`
	if got := mustRun(t, src); got != "truetouched" {
		t.Fatalf("output = %q, want %q", got, "truetouched")
	}
}

func TestArrays(t *testing.T) {
	src := `
int a[3][4];
a[2][3] = 7;
a[0][0] = a[2][3] * 2;
a[1][1]++;
print a[0][0] + a[1][1] + a[2][3];
print " ";
print a;`
	want := "22 [[14, 0, 0, 0], [0, 1, 0, 0], [0, 0, 0, 7]]"
	if got := mustRun(t, src); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestArrayBounds(t *testing.T) {
	for _, src := range []string{
		"int a[3][4]; a[3][0] = 1;",
		"int a[3][4]; print a[0][4];",
		"int a[3][4]; int i = -1; print a[i][0];",
	} {
		rerr := expectRuntimeError(t, src, "out of range")
		if rerr.Pos.Line != 1 {
			t.Fatalf("%q: error position %s", src, rerr.Pos)
		}
	}
}

func TestArrayDimensions(t *testing.T) {
	if got := mustRun(t, "float f = 2.9; string s[f][3.2]; s[1][2] = \"x\"; print s;"); got != `[[, , ], [, , x]]` {
		t.Fatalf("output = %q", got)
	}
	expectRuntimeError(t, "int n = -1; int a[n];", "negative array dimension -1")
	expectRuntimeError(t, "int a[100000][100000];", "exceeds the limit")
}

func TestArrayCopy(t *testing.T) {
	src := `
int a[2];
int b[2];
b[1] = 5;
a = b;
b[1] = 6;
print a[1];
print "a" + a;`
	if got := mustRun(t, src); got != "5a[0, 5]" {
		t.Fatalf("output = %q", got)
	}
	expectRuntimeError(t, "int a[2]; int b[3]; a = b;", "cannot copy")
}

func TestArraysAreFrameScoped(t *testing.T) {
	src := `
int i;
for (i = 0; i < 3; i++) {
    int a[2];
    a[0] = a[0] + i;
    print a[0];
}`
	if got := mustRun(t, src); got != "012" {
		t.Fatalf("output = %q, want fresh storage per iteration", got)
	}
}

func TestFunctions(t *testing.T) {
	src := `
int fib(int n) {
    if (n < 2) return n;
    return fib(n - 1) + fib(n - 2);
}
boolean isEven(int n) {
    if (n == 0) return true;
    return isOdd(n - 1);
}
boolean isOdd(int n) {
    if (n == 0) return false;
    return isEven(n - 1);
}
void greet(string who) {
    print "hi " + who;
    return;
    print "unreachable";
}
print fib(10);
print isOdd(7);
greet("there");`
	if got := mustRun(t, src); got != "55truehi there" {
		t.Fatalf("output = %q", got)
	}
}

func TestFunctionScopeIsIsolated(t *testing.T) {
	src := `
int bump(int x) {
    x = x + 1;
    return x;
}
int x = 1;
print bump(x);
print x;`
	if got := mustRun(t, src); got != "21" {
		t.Fatalf("output = %q", got)
	}
}

func TestArgumentsEvaluateLeftToRight(t *testing.T) {
	src := `
int pair(int a, int b) { return a * 10 + b; }
int i = 1;
print pair(i++, i++);`
	if got := mustRun(t, src); got != "12" {
		t.Fatalf("output = %q", got)
	}
}

func TestMissingReturn(t *testing.T) {
	src := `
int f(int n) {
    if (n > 0) return n;
}
print f(1);
print f(0);`
	out, err := run(t, src)
	if out != "1" {
		t.Fatalf("output before failure = %q", out)
	}
	var rerr *RuntimeError
	if !errors.As(err, &rerr) || !strings.Contains(rerr.Message, "function f ended without returning a value") {
		t.Fatalf("error = %v", err)
	}
}

func TestCallDepth(t *testing.T) {
	src := `
int down(int n) { return down(n + 1); }
print down(0);`
	_, err := run(t, src, WithMaxCallDepth(50))
	var rerr *RuntimeError
	if !errors.As(err, &rerr) || !strings.Contains(rerr.Message, "call depth exceeded") {
		t.Fatalf("error = %v", err)
	}
}

func TestDivisionByZero(t *testing.T) {
	expectRuntimeError(t, "int z = 0; print 1 / z;", "integer division by zero")
	expectRuntimeError(t, "int z = 0; print 1 % z;", "integer modulus by zero")
}

func TestNegativeRepetition(t *testing.T) {
	rerr := expectRuntimeError(t, `int n = -2; print "x" * n;`, "negative repetition count -2")
	if rerr.Pos != (ast.Position{Line: 1, Column: 19}) {
		t.Fatalf("position = %s", rerr.Pos)
	}
}

func TestRuntimeErrorStopsOutput(t *testing.T) {
	out, err := run(t, `print "a"; int a[1]; a[1] = 1; print "b";`)
	if err == nil || out != "a" {
		t.Fatalf("output = %q, err = %v", out, err)
	}
	if got := err.Error(); !strings.HasPrefix(got, "runtime error at 1:") {
		t.Fatalf("rendered error = %q", got)
	}
}

func TestMissingResolvedTypeIsInternal(t *testing.T) {
	prog := ast.Prog(ast.Print(ast.Int(1)))
	err := New(semantic.FunctionTable{}, typechecker.InferenceMap{}).Run(prog)
	var rerr *RuntimeError
	if !errors.As(err, &rerr) || !rerr.Internal {
		t.Fatalf("error = %v, want internal error", err)
	}
	if !strings.Contains(err.Error(), "internal error") {
		t.Fatalf("rendered error = %q", err.Error())
	}
}

func TestCheckpointRestoresBindings(t *testing.T) {
	interp := New(semantic.FunctionTable{}, typechecker.InferenceMap{})
	restore := interp.Checkpoint()
	decl := ast.VarDecl(types.Int, "x", nil)
	if err := interp.Run(ast.Prog(decl)); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if _, ok := interp.Lookup("x"); !ok {
		t.Fatalf("x not bound after declaration")
	}
	restore()
	if _, ok := interp.Lookup("x"); ok {
		t.Fatalf("x still bound after restore")
	}
}
