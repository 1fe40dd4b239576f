package parser

import (
	"github.com/YulinWu/interpreter/pkg/ast"
	"github.com/YulinWu/interpreter/pkg/lexer"
)

// parseStatement returns a nil statement for an empty ";".
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch tok := p.cur(); {
	case tok.Type == lexer.LBRACE:
		return p.parseBlock()
	case tok.Type == lexer.KW_IF:
		return p.parseIf()
	case tok.Type == lexer.KW_WHILE:
		return p.parseWhile()
	case tok.Type == lexer.KW_FOR:
		return p.parseFor()
	case tok.Type == lexer.KW_PRINT:
		return p.parsePrint()
	case tok.Type == lexer.KW_RETURN:
		return p.parseReturn()
	case tok.Type == lexer.SEMI:
		p.advance()
		return nil, nil
	case p.atFunctionDeclaration():
		return nil, p.errorf("function declarations are only allowed at top level")
	case tok.Type.IsTypeKeyword():
		return p.parseDeclaration()
	default:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMI); err != nil {
			return nil, err
		}
		return expr, nil
	}
}

func (p *Parser) parseBlock() (*ast.BlockStatement, error) {
	pos := p.position()
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var body []ast.Statement
	for p.cur().Type != lexer.RBRACE {
		if p.cur().Type == lexer.EOF {
			return nil, p.errorf("expected \"}\" to close block opened at %s", pos)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			body = append(body, stmt)
		}
	}
	p.advance()
	return ast.SetPos(ast.NewBlockStatement(body), pos), nil
}

// parseBody parses a loop or branch body; an empty ";" becomes an empty block.
func (p *Parser) parseBody() (ast.Statement, error) {
	pos := p.position()
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if stmt == nil {
		return ast.SetPos(ast.NewBlockStatement(nil), pos), nil
	}
	if _, ok := stmt.(*ast.VariableDeclaration); ok {
		return nil, &Error{Pos: pos, Message: "declaration is not allowed here"}
	}
	if _, ok := stmt.(*ast.ArrayDeclaration); ok {
		return nil, &Error{Pos: pos, Message: "declaration is not allowed here"}
	}
	return stmt, nil
}

func (p *Parser) parseCondition() (ast.Expression, error) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *Parser) parseIf() (*ast.IfStatement, error) {
	pos := p.position()
	p.advance()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	var els ast.Statement
	if p.cur().Type == lexer.KW_ELSE {
		p.advance()
		if els, err = p.parseBody(); err != nil {
			return nil, err
		}
	}
	return ast.SetPos(ast.NewIfStatement(cond, then, els), pos), nil
}

func (p *Parser) parseWhile() (*ast.WhileStatement, error) {
	pos := p.position()
	p.advance()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return ast.SetPos(ast.NewWhileStatement(cond, body), pos), nil
}

func (p *Parser) parseFor() (*ast.ForStatement, error) {
	pos := p.position()
	p.advance()
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var clauses [3]ast.Expression
	for i, end := range []lexer.TokenType{lexer.SEMI, lexer.SEMI, lexer.RPAREN} {
		if p.cur().Type != end {
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			clauses[i] = expr
		}
		if _, err := p.expect(end); err != nil {
			return nil, err
		}
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return ast.SetPos(ast.NewForStatement(clauses[0], clauses[1], clauses[2], body), pos), nil
}

func (p *Parser) parsePrint() (*ast.PrintStatement, error) {
	pos := p.position()
	p.advance()
	arg, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return ast.SetPos(ast.NewPrintStatement(arg), pos), nil
}

func (p *Parser) parseReturn() (*ast.ReturnStatement, error) {
	pos := p.position()
	p.advance()
	var arg ast.Expression
	if p.cur().Type != lexer.SEMI {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		arg = expr
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return ast.SetPos(ast.NewReturnStatement(arg), pos), nil
}

// parseDeclaration handles `T x;`, `T x = e;` and `T x[d1][d2]...;`.
func (p *Parser) parseDeclaration() (ast.Statement, error) {
	pos := p.position()
	typ, err := p.parseScalarType("variable")
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	var stmt ast.Statement
	switch p.cur().Type {
	case lexer.LBRACK:
		var dims []ast.Expression
		for p.cur().Type == lexer.LBRACK {
			p.advance()
			dim, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RBRACK); err != nil {
				return nil, err
			}
			dims = append(dims, dim)
		}
		stmt = ast.SetPos(ast.NewArrayDeclaration(name, typ, dims), pos)
	case lexer.ASSIGN:
		p.advance()
		init, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt = ast.SetPos(ast.NewVariableDeclaration(name, typ, init), pos)
	default:
		stmt = ast.SetPos(ast.NewVariableDeclaration(name, typ, nil), pos)
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return stmt, nil
}
