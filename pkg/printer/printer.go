// Package printer renders syntax trees back to canonical source text.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/YulinWu/interpreter/pkg/ast"
)

const DefaultIndent = 4

type Printer struct {
	indent string
	sb     strings.Builder
	depth  int
}

func New(indent int) *Printer {
	if indent < 0 {
		indent = 0
	}
	return &Printer{indent: strings.Repeat(" ", indent)}
}

// Print renders node with the default indent.
func Print(node ast.Node) string {
	return New(DefaultIndent).Print(node)
}

// Print renders any node. Statements end with a newline; expressions do not.
func (p *Printer) Print(node ast.Node) string {
	p.sb.Reset()
	p.depth = 0
	switch n := node.(type) {
	case *ast.Program:
		for i, stmt := range n.Body {
			if _, ok := stmt.(*ast.FunctionDeclaration); ok && i > 0 {
				p.sb.WriteByte('\n')
			}
			p.statement(stmt)
		}
	case ast.Expression:
		p.sb.WriteString(p.expr(n, false))
	case ast.Statement:
		p.statement(n)
	case *ast.Parameter:
		p.sb.WriteString(n.Type.String() + " " + n.Name.Name)
	default:
		fmt.Fprintf(&p.sb, "<%s>", node.NodeType())
	}
	return p.sb.String()
}

func (p *Printer) line(text string) {
	p.sb.WriteString(strings.Repeat(p.indent, p.depth))
	p.sb.WriteString(text)
	p.sb.WriteByte('\n')
}

func (p *Printer) block(b *ast.BlockStatement, header string) {
	p.line(header + "{")
	p.depth++
	for _, stmt := range b.Body {
		p.statement(stmt)
	}
	p.depth--
	p.line("}")
}

// body prints the statement governed by a control header.
func (p *Printer) body(header string, stmt ast.Statement) {
	if b, ok := stmt.(*ast.BlockStatement); ok {
		p.block(b, header+" ")
		return
	}
	p.line(header)
	p.depth++
	p.statement(stmt)
	p.depth--
}

func (p *Printer) statement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		p.block(s, "")
	case *ast.IfStatement:
		p.ifStatement(s, "")
	case *ast.WhileStatement:
		p.body("while ("+p.expr(s.Condition, false)+")", s.Body)
	case *ast.ForStatement:
		header := fmt.Sprintf("for (%s; %s; %s)", p.optional(s.Init), p.optional(s.Condition), p.optional(s.Update))
		p.body(header, s.Body)
	case *ast.VariableDeclaration:
		if s.Initializer == nil {
			p.line(fmt.Sprintf("%s %s;", s.Type, s.Name.Name))
		} else {
			p.line(fmt.Sprintf("%s %s = %s;", s.Type, s.Name.Name, p.expr(s.Initializer, false)))
		}
	case *ast.ArrayDeclaration:
		var sb strings.Builder
		for _, dim := range s.Dimensions {
			sb.WriteString("[" + p.expr(dim, false) + "]")
		}
		p.line(fmt.Sprintf("%s %s%s;", s.ElementType, s.Name.Name, sb.String()))
	case *ast.PrintStatement:
		p.line("print " + p.expr(s.Argument, false) + ";")
	case *ast.ReturnStatement:
		if s.Argument == nil {
			p.line("return;")
		} else {
			p.line("return " + p.expr(s.Argument, false) + ";")
		}
	case *ast.FunctionDeclaration:
		params := make([]string, len(s.Params))
		for i, param := range s.Params {
			params[i] = param.Type.String() + " " + param.Name.Name
		}
		p.block(s.Body, fmt.Sprintf("%s %s(%s) ", s.ReturnType, s.Name.Name, strings.Join(params, ", ")))
	case ast.Expression:
		p.line(p.expr(s, false) + ";")
	default:
		p.line(fmt.Sprintf("<%s>", stmt.NodeType()))
	}
}

// ifStatement renders else-if chains flat.
func (p *Printer) ifStatement(s *ast.IfStatement, prefix string) {
	p.body(prefix+"if ("+p.expr(s.Condition, false)+")", s.Then)
	switch els := s.Else.(type) {
	case nil:
	case *ast.IfStatement:
		p.ifStatement(els, "else ")
	default:
		p.body("else", els)
	}
}

func (p *Printer) optional(expr ast.Expression) string {
	if expr == nil {
		return ""
	}
	return p.expr(expr, false)
}

// expr renders an expression. Nested assignments are parenthesised so the
// output parses back to the same tree.
func (p *Printer) expr(expr ast.Expression, nested bool) string {
	switch e := expr.(type) {
	case *ast.Identifier:
		return e.Name
	case *ast.IntegerLiteral:
		return strconv.FormatInt(e.Value, 10)
	case *ast.FloatLiteral:
		return FormatFloat(e.Value)
	case *ast.BooleanLiteral:
		return strconv.FormatBool(e.Value)
	case *ast.StringLiteral:
		return Quote(e.Value)
	case *ast.UnaryExpression:
		return e.Operator + p.operand(e.Operand)
	case *ast.BinaryExpression:
		return "(" + p.expr(e.Left, true) + " " + e.Operator + " " + p.expr(e.Right, true) + ")"
	case *ast.AssignmentExpression:
		text := p.expr(e.Left, true) + " = " + p.expr(e.Right, false)
		if nested {
			return "(" + text + ")"
		}
		return text
	case *ast.IncrementExpression:
		if e.Prefix {
			return e.Operator + p.operand(e.Operand)
		}
		return p.operand(e.Operand) + e.Operator
	case *ast.FunctionCall:
		args := make([]string, len(e.Arguments))
		for i, arg := range e.Arguments {
			args[i] = p.expr(arg, false)
		}
		return e.Callee.Name + "(" + strings.Join(args, ", ") + ")"
	case *ast.IndexExpression:
		var sb strings.Builder
		sb.WriteString(e.Array.Name)
		for _, index := range e.Indices {
			sb.WriteString("[" + p.expr(index, false) + "]")
		}
		return sb.String()
	default:
		return fmt.Sprintf("<%s>", expr.NodeType())
	}
}

// operand renders the operand of a unary or increment operator, adding
// parentheses unless it is atomic.
func (p *Printer) operand(expr ast.Expression) string {
	switch expr.(type) {
	case *ast.Identifier, *ast.IntegerLiteral, *ast.FloatLiteral, *ast.BooleanLiteral,
		*ast.StringLiteral, *ast.FunctionCall, *ast.IndexExpression, *ast.BinaryExpression:
		return p.expr(expr, true)
	default:
		return "(" + p.expr(expr, false) + ")"
	}
}

// FormatFloat renders f in shortest round-trip form, keeping a decimal point
// or exponent so the text reads back as a float.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}

// Quote renders s as a string literal using only the escapes the lexer
// understands.
func Quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case 0:
			sb.WriteString(`\0`)
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
