package parser

import (
	"strconv"

	"github.com/YulinWu/interpreter/pkg/ast"
	"github.com/YulinWu/interpreter/pkg/lexer"
)

// Binary precedence levels, loosest first.
var binaryLevels = []map[lexer.TokenType]string{
	{lexer.OROR: ast.OpOr},
	{lexer.ANDAND: ast.OpAnd},
	{lexer.EQ: ast.OpEq, lexer.NE: ast.OpNe},
	{lexer.LT: ast.OpLt, lexer.LE: ast.OpLe, lexer.GT: ast.OpGt, lexer.GE: ast.OpGe},
	{lexer.PLUS: ast.OpAdd, lexer.MINUS: ast.OpSub},
	{lexer.STAR: ast.OpMul, lexer.SLASH: ast.OpDiv, lexer.PERCENT: ast.OpMod},
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignment()
}

// parseAssignment is right associative. Any left operand is accepted here;
// whether it is assignable is decided during analysis.
func (p *Parser) parseAssignment() (ast.Expression, error) {
	left, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}
	if p.cur().Type != lexer.ASSIGN {
		return left, nil
	}
	p.advance()
	right, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return ast.SetPos(ast.NewAssignmentExpression(left, right), left.Pos()), nil
}

func (p *Parser) parseBinary(level int) (ast.Expression, error) {
	if level == len(binaryLevels) {
		return p.parseUnary()
	}
	left, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := binaryLevels[level][p.cur().Type]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		left = ast.SetPos(ast.NewBinaryExpression(op, left, right), left.Pos())
	}
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	pos := p.position()
	switch p.cur().Type {
	case lexer.MINUS, lexer.NOT:
		op := ast.OpNeg
		if p.advance().Type == lexer.NOT {
			op = ast.OpNot
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.SetPos(ast.NewUnaryExpression(op, operand), pos), nil
	case lexer.INC, lexer.DEC:
		op := p.advance().Lex
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.SetPos(ast.NewIncrementExpression(op, true, operand), pos), nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.cur().Type == lexer.LBRACK {
		id, ok := expr.(*ast.Identifier)
		if !ok {
			return nil, p.errorf("only variables can be indexed")
		}
		var indices []ast.Expression
		for p.cur().Type == lexer.LBRACK {
			p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RBRACK); err != nil {
				return nil, err
			}
			indices = append(indices, index)
		}
		expr = ast.SetPos(ast.NewIndexExpression(id, indices), id.Pos())
	}
	if t := p.cur().Type; t == lexer.INC || t == lexer.DEC {
		op := p.advance().Lex
		expr = ast.SetPos(ast.NewIncrementExpression(op, false, expr), expr.Pos())
	}
	return expr, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	pos := p.position()
	tok := p.cur()
	switch tok.Type {
	case lexer.INT:
		v, err := strconv.ParseInt(tok.Lex, 10, 64)
		if err != nil {
			return nil, p.errorf("integer literal %s out of range", tok.Lex)
		}
		p.advance()
		return ast.SetPos(ast.NewIntegerLiteral(v), pos), nil
	case lexer.FLOAT:
		v, err := strconv.ParseFloat(tok.Lex, 64)
		if err != nil {
			return nil, p.errorf("invalid float literal %s", tok.Lex)
		}
		p.advance()
		return ast.SetPos(ast.NewFloatLiteral(v), pos), nil
	case lexer.STRING:
		p.advance()
		return ast.SetPos(ast.NewStringLiteral(tok.Lex), pos), nil
	case lexer.KW_TRUE, lexer.KW_FALSE:
		p.advance()
		return ast.SetPos(ast.NewBooleanLiteral(tok.Type == lexer.KW_TRUE), pos), nil
	case lexer.IDENT:
		id := ast.SetPos(ast.NewIdentifier(tok.Lex), pos)
		p.advance()
		if p.cur().Type != lexer.LPAREN {
			return id, nil
		}
		p.advance()
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		return ast.SetPos(ast.NewFunctionCall(id, args), pos), nil
	case lexer.LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, p.errorf("expected an expression, got %s", tok)
}

// parseArguments reads a call's arguments after the opening parenthesis.
func (p *Parser) parseArguments() ([]ast.Expression, error) {
	var args []ast.Expression
	if p.cur().Type == lexer.RPAREN {
		p.advance()
		return args, nil
	}
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur().Type != lexer.COMMA {
			break
		}
		p.advance()
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}
