// Package parser builds a syntax tree from source text by recursive descent.
package parser

import (
	"fmt"

	"github.com/YulinWu/interpreter/pkg/ast"
	"github.com/YulinWu/interpreter/pkg/lexer"
	"github.com/YulinWu/interpreter/pkg/types"
)

type Parser struct {
	toks []lexer.Token
	pos  int
}

func New(src string) *Parser {
	return &Parser{toks: lexer.Tokenize(src)}
}

// ParseProgram parses a complete source file.
func ParseProgram(src string) (*ast.Program, error) {
	return New(src).ParseProgram()
}

func (p *Parser) ParseProgram() (*ast.Program, error) {
	start := p.position()
	var body []ast.Statement
	for p.cur().Type != lexer.EOF {
		var (
			stmt ast.Statement
			err  error
		)
		if p.atFunctionDeclaration() {
			stmt, err = p.parseFunctionDeclaration()
		} else {
			stmt, err = p.parseStatement()
		}
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			body = append(body, stmt)
		}
	}
	return ast.SetPos(ast.NewProgram(body), start), nil
}

func (p *Parser) cur() lexer.Token { return p.peek(0) }

func (p *Parser) peek(n int) lexer.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) position() ast.Position {
	tok := p.cur()
	return ast.Position{Line: tok.Line, Column: tok.Col}
}

func (p *Parser) errorf(format string, args ...any) error {
	tok := p.cur()
	err := &Error{Pos: ast.Position{Line: tok.Line, Column: tok.Col}}
	switch tok.Type {
	case lexer.ILLEGAL:
		err.Message = tok.Lex
		err.Incomplete = tok.Lex == "unterminated comment"
	case lexer.EOF:
		err.Message = fmt.Sprintf(format, args...)
		err.Incomplete = true
	default:
		err.Message = fmt.Sprintf(format, args...)
	}
	return err
}

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	if p.cur().Type != tt {
		return lexer.Token{}, p.errorf("expected %q, got %s", tt.String(), p.cur())
	}
	return p.advance(), nil
}

func (p *Parser) atFunctionDeclaration() bool {
	return p.cur().Type.IsTypeKeyword() && p.peek(1).Type == lexer.IDENT && p.peek(2).Type == lexer.LPAREN
}

func (p *Parser) parseType() (types.Type, error) {
	tok := p.cur()
	if !tok.Type.IsTypeKeyword() {
		return types.Invalid, p.errorf("expected a type, got %s", tok)
	}
	p.advance()
	typ, _ := types.Lookup(tok.Lex)
	return typ, nil
}

func (p *Parser) parseScalarType(what string) (types.Type, error) {
	if p.cur().Type == lexer.KW_VOID {
		return types.Invalid, p.errorf("%s cannot have type void", what)
	}
	return p.parseType()
}

func (p *Parser) parseIdentifier() (*ast.Identifier, error) {
	pos := p.position()
	tok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	return ast.SetPos(ast.NewIdentifier(tok.Lex), pos), nil
}

func (p *Parser) parseFunctionDeclaration() (*ast.FunctionDeclaration, error) {
	pos := p.position()
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var params []*ast.Parameter
	if p.cur().Type != lexer.RPAREN {
		for {
			param, err := p.parseParameter()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if p.cur().Type != lexer.COMMA {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if p.cur().Type != lexer.LBRACE {
		return nil, p.errorf("expected function body, got %s", p.cur())
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.SetPos(ast.NewFunctionDeclaration(name, params, ret, body), pos), nil
}

func (p *Parser) parseParameter() (*ast.Parameter, error) {
	pos := p.position()
	typ, err := p.parseScalarType("parameter")
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	return ast.SetPos(ast.NewParameter(name, typ), pos), nil
}
