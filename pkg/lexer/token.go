package lexer

import "fmt"

type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Identifiers + literals
	IDENT
	INT
	FLOAT
	STRING

	// Keywords
	KW_INT
	KW_FLOAT
	KW_BOOLEAN
	KW_STRING
	KW_VOID
	KW_IF
	KW_ELSE
	KW_WHILE
	KW_FOR
	KW_PRINT
	KW_RETURN
	KW_TRUE
	KW_FALSE

	// Symbols
	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }
	LBRACK // [
	RBRACK // ]
	SEMI   // ;
	COMMA  // ,
	ASSIGN // =

	// Arithmetic
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	INC     // ++
	DEC     // --

	// Comparison
	EQ // ==
	NE // !=
	LT // <
	LE // <=
	GT // >
	GE // >=

	// Logical
	ANDAND // &&
	OROR   // ||
	NOT    // !
)

var keywords = map[string]TokenType{
	"int":     KW_INT,
	"float":   KW_FLOAT,
	"boolean": KW_BOOLEAN,
	"string":  KW_STRING,
	"void":    KW_VOID,
	"if":      KW_IF,
	"else":    KW_ELSE,
	"while":   KW_WHILE,
	"for":     KW_FOR,
	"print":   KW_PRINT,
	"return":  KW_RETURN,
	"true":    KW_TRUE,
	"false":   KW_FALSE,
}

var names = [...]string{
	EOF:        "end of file",
	ILLEGAL:    "illegal token",
	IDENT:      "identifier",
	INT:        "integer literal",
	FLOAT:      "float literal",
	STRING:     "string literal",
	KW_INT:     "int",
	KW_FLOAT:   "float",
	KW_BOOLEAN: "boolean",
	KW_STRING:  "string",
	KW_VOID:    "void",
	KW_IF:      "if",
	KW_ELSE:    "else",
	KW_WHILE:   "while",
	KW_FOR:     "for",
	KW_PRINT:   "print",
	KW_RETURN:  "return",
	KW_TRUE:    "true",
	KW_FALSE:   "false",
	LPAREN:     "(",
	RPAREN:     ")",
	LBRACE:     "{",
	RBRACE:     "}",
	LBRACK:     "[",
	RBRACK:     "]",
	SEMI:       ";",
	COMMA:      ",",
	ASSIGN:     "=",
	PLUS:       "+",
	MINUS:      "-",
	STAR:       "*",
	SLASH:      "/",
	PERCENT:    "%",
	INC:        "++",
	DEC:        "--",
	EQ:         "==",
	NE:         "!=",
	LT:         "<",
	LE:         "<=",
	GT:         ">",
	GE:         ">=",
	ANDAND:     "&&",
	OROR:       "||",
	NOT:        "!",
}

func (t TokenType) String() string {
	if int(t) >= 0 && int(t) < len(names) {
		return names[t]
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// IsTypeKeyword reports whether t names a type.
func (t TokenType) IsTypeKeyword() bool {
	switch t {
	case KW_INT, KW_FLOAT, KW_BOOLEAN, KW_STRING, KW_VOID:
		return true
	default:
		return false
	}
}

// Token is one lexeme. For STRING the Lex field holds the decoded value; for
// ILLEGAL it holds a description of the problem.
type Token struct {
	Type TokenType
	Lex  string
	Line int
	Col  int
}

func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "end of file"
	case IDENT, INT, FLOAT:
		return fmt.Sprintf("%s %q", t.Type, t.Lex)
	case STRING:
		return fmt.Sprintf("string literal %q", t.Lex)
	default:
		return fmt.Sprintf("%q", t.Type.String())
	}
}
