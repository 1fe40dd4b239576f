package lexer

import (
	"fmt"
	"strings"
	"unicode"
)

type Lexer struct {
	src  []rune
	pos  int
	line int
	col  int
}

func New(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, col: 1}
}

// Tokenize lexes src to completion. The last token is always EOF.
func Tokenize(src string) []Token {
	l := New(src)
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

func (l *Lexer) peek(n int) rune {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

func (l *Lexer) advance() {
	if l.atEnd() {
		return
	}
	if l.src[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

// skipTrivia consumes whitespace and comments. It returns an ILLEGAL token
// if a block comment is left open.
func (l *Lexer) skipTrivia() (Token, bool) {
	for !l.atEnd() {
		ch := l.peek(0)
		switch {
		case unicode.IsSpace(ch):
			l.advance()
		case ch == '/' && l.peek(1) == '/':
			for !l.atEnd() && l.peek(0) != '\n' {
				l.advance()
			}
		case ch == '/' && l.peek(1) == '*':
			open := Token{Type: ILLEGAL, Lex: "unterminated comment", Line: l.line, Col: l.col}
			l.advance()
			l.advance()
			for {
				if l.atEnd() {
					return open, false
				}
				if l.peek(0) == '*' && l.peek(1) == '/' {
					l.advance()
					l.advance()
					break
				}
				l.advance()
			}
		default:
			return Token{}, true
		}
	}
	return Token{}, true
}

func (l *Lexer) Next() Token {
	if bad, ok := l.skipTrivia(); !ok {
		return bad
	}
	tok := Token{Line: l.line, Col: l.col}
	if l.atEnd() {
		tok.Type = EOF
		return tok
	}
	ch := l.peek(0)
	switch {
	case unicode.IsLetter(ch) || ch == '_':
		tok.Lex = l.scanWhile(func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' })
		if kw, ok := keywords[tok.Lex]; ok {
			tok.Type = kw
		} else {
			tok.Type = IDENT
		}
		return tok
	case isDigit(ch) || ch == '.' && isDigit(l.peek(1)):
		tok.Type, tok.Lex = l.scanNumber()
		return tok
	case ch == '"':
		tok.Type, tok.Lex = l.scanString()
		return tok
	}

	l.advance()
	two := func(next rune, matched, single TokenType) {
		if l.peek(0) == next {
			l.advance()
			tok.Type, tok.Lex = matched, string([]rune{ch, next})
			return
		}
		tok.Type, tok.Lex = single, string(ch)
	}
	switch ch {
	case '(':
		tok.Type, tok.Lex = LPAREN, "("
	case ')':
		tok.Type, tok.Lex = RPAREN, ")"
	case '{':
		tok.Type, tok.Lex = LBRACE, "{"
	case '}':
		tok.Type, tok.Lex = RBRACE, "}"
	case '[':
		tok.Type, tok.Lex = LBRACK, "["
	case ']':
		tok.Type, tok.Lex = RBRACK, "]"
	case ';':
		tok.Type, tok.Lex = SEMI, ";"
	case ',':
		tok.Type, tok.Lex = COMMA, ","
	case '*':
		tok.Type, tok.Lex = STAR, "*"
	case '/':
		tok.Type, tok.Lex = SLASH, "/"
	case '%':
		tok.Type, tok.Lex = PERCENT, "%"
	case '+':
		two('+', INC, PLUS)
	case '-':
		two('-', DEC, MINUS)
	case '=':
		two('=', EQ, ASSIGN)
	case '!':
		two('=', NE, NOT)
	case '<':
		two('=', LE, LT)
	case '>':
		two('=', GE, GT)
	case '&':
		two('&', ANDAND, ILLEGAL)
	case '|':
		two('|', OROR, ILLEGAL)
	default:
		tok.Type = ILLEGAL
	}
	if tok.Type == ILLEGAL {
		tok.Lex = fmt.Sprintf("unexpected character %q", ch)
	}
	return tok
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func (l *Lexer) scanWhile(pred func(rune) bool) string {
	var sb strings.Builder
	for !l.atEnd() && pred(l.peek(0)) {
		sb.WriteRune(l.peek(0))
		l.advance()
	}
	return sb.String()
}

// scanNumber reads 12, 1.5, 2., .5 and exponent forms such as 1e3 or 2.5E-2.
func (l *Lexer) scanNumber() (TokenType, string) {
	typ := INT
	var sb strings.Builder
	sb.WriteString(l.scanWhile(isDigit))
	if l.peek(0) == '.' {
		typ = FLOAT
		sb.WriteRune('.')
		l.advance()
		sb.WriteString(l.scanWhile(isDigit))
	}
	if e := l.peek(0); e == 'e' || e == 'E' {
		sign := l.peek(1)
		switch {
		case isDigit(sign):
			typ = FLOAT
			sb.WriteRune(e)
			l.advance()
			sb.WriteString(l.scanWhile(isDigit))
		case (sign == '+' || sign == '-') && isDigit(l.peek(2)):
			typ = FLOAT
			sb.WriteRune(e)
			sb.WriteRune(sign)
			l.advance()
			l.advance()
			sb.WriteString(l.scanWhile(isDigit))
		}
	}
	return typ, sb.String()
}

func (l *Lexer) scanString() (TokenType, string) {
	l.advance() // opening quote
	var sb strings.Builder
	for {
		if l.atEnd() || l.peek(0) == '\n' {
			return ILLEGAL, "unterminated string literal"
		}
		ch := l.peek(0)
		l.advance()
		switch ch {
		case '"':
			return STRING, sb.String()
		case '\\':
			if l.atEnd() {
				return ILLEGAL, "unterminated string literal"
			}
			esc := l.peek(0)
			l.advance()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '0':
				sb.WriteByte(0)
			case '"', '\\':
				sb.WriteRune(esc)
			default:
				return ILLEGAL, fmt.Sprintf("invalid escape sequence \\%c", esc)
			}
		default:
			sb.WriteRune(ch)
		}
	}
}
