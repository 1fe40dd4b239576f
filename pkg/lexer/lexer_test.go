package lexer

import "testing"

func types(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func expectTypes(t *testing.T, src string, want ...TokenType) []Token {
	t.Helper()
	toks := Tokenize(src)
	got := types(toks)
	want = append(want, EOF)
	if len(got) != len(want) {
		t.Fatalf("Tokenize(%q) = %v, want %v", src, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tokenize(%q)[%d] = %s, want %s", src, i, got[i], want[i])
		}
	}
	return toks
}

func TestDeclarationTokens(t *testing.T) {
	toks := expectTypes(t, "int x = 3;", KW_INT, IDENT, ASSIGN, INT, SEMI)
	if toks[1].Lex != "x" || toks[3].Lex != "3" {
		t.Fatalf("unexpected lexemes: %+v", toks)
	}
}

func TestOperators(t *testing.T) {
	expectTypes(t, "+ - * / % ++ -- == != < <= > >= && || ! =",
		PLUS, MINUS, STAR, SLASH, PERCENT, INC, DEC, EQ, NE, LT, LE, GT, GE, ANDAND, OROR, NOT, ASSIGN)
	expectTypes(t, "( ) { } [ ] ; ,", LPAREN, RPAREN, LBRACE, RBRACE, LBRACK, RBRACK, SEMI, COMMA)
}

func TestKeywords(t *testing.T) {
	expectTypes(t, "int float boolean string void if else while for print return true false",
		KW_INT, KW_FLOAT, KW_BOOLEAN, KW_STRING, KW_VOID, KW_IF, KW_ELSE, KW_WHILE, KW_FOR, KW_PRINT, KW_RETURN, KW_TRUE, KW_FALSE)
	toks := expectTypes(t, "integer _tmp x1", IDENT, IDENT, IDENT)
	if toks[0].Lex != "integer" {
		t.Fatalf("keyword prefix split identifier: %q", toks[0].Lex)
	}
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		src  string
		typ  TokenType
		text string
	}{
		{"42", INT, "42"},
		{"1.5", FLOAT, "1.5"},
		{"2.", FLOAT, "2."},
		{".5", FLOAT, ".5"},
		{"1e3", FLOAT, "1e3"},
		{"2.5E-2", FLOAT, "2.5E-2"},
	}
	for _, tc := range cases {
		toks := expectTypes(t, tc.src, tc.typ)
		if toks[0].Lex != tc.text {
			t.Fatalf("%q lexed as %q", tc.src, toks[0].Lex)
		}
	}
	// An exponent marker without digits is not part of the number.
	expectTypes(t, "1e", INT, IDENT)
}

func TestStringEscapes(t *testing.T) {
	toks := expectTypes(t, `"a\tb\n\"q\"\\"`, STRING)
	if want := "a\tb\n\"q\"\\"; toks[0].Lex != want {
		t.Fatalf("decoded %q, want %q", toks[0].Lex, want)
	}
}

func TestComments(t *testing.T) {
	expectTypes(t, "// line\nx /* block\n spanning */ y", IDENT, IDENT)
}

func TestPositions(t *testing.T) {
	toks := Tokenize("int x;\n  print x;")
	kw := toks[3]
	if kw.Type != KW_PRINT || kw.Line != 2 || kw.Col != 3 {
		t.Fatalf("print token at %d:%d (%s)", kw.Line, kw.Col, kw.Type)
	}
}

func TestIllegalInput(t *testing.T) {
	cases := []struct {
		src  string
		msg  string
		line int
		col  int
	}{
		{"x @", "unexpected character '@'", 1, 3},
		{"a & b", "unexpected character '&'", 1, 3},
		{`"open`, "unterminated string literal", 1, 1},
		{`"bad\q"`, `invalid escape sequence \q`, 1, 1},
		{"x\n /* never closed", "unterminated comment", 2, 2},
	}
	for _, tc := range cases {
		var bad Token
		for _, tok := range Tokenize(tc.src) {
			if tok.Type == ILLEGAL {
				bad = tok
				break
			}
		}
		if bad.Type != ILLEGAL {
			t.Fatalf("%q: no ILLEGAL token", tc.src)
		}
		if bad.Lex != tc.msg || bad.Line != tc.line || bad.Col != tc.col {
			t.Fatalf("%q: got %q at %d:%d, want %q at %d:%d", tc.src, bad.Lex, bad.Line, bad.Col, tc.msg, tc.line, tc.col)
		}
	}
}
