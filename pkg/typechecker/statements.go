package typechecker

import (
	"github.com/YulinWu/interpreter/pkg/ast"
	"github.com/YulinWu/interpreter/pkg/types"
)

func (c *Checker) checkStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		c.scope.EnterScope()
		defer c.scope.ExitScope()
		for _, inner := range s.Body {
			if err := c.checkStatement(inner); err != nil {
				return err
			}
		}
		return nil
	case *ast.IfStatement:
		if err := c.checkCondition("if", s.Condition); err != nil {
			return err
		}
		if err := c.checkStatement(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			return c.checkStatement(s.Else)
		}
		return nil
	case *ast.WhileStatement:
		if err := c.checkCondition("while", s.Condition); err != nil {
			return err
		}
		return c.checkStatement(s.Body)
	case *ast.ForStatement:
		if s.Init != nil {
			if _, err := c.checkExpression(s.Init); err != nil {
				return err
			}
		}
		if s.Condition != nil {
			if err := c.checkCondition("for", s.Condition); err != nil {
				return err
			}
		}
		if s.Update != nil {
			if _, err := c.checkExpression(s.Update); err != nil {
				return err
			}
		}
		return c.checkStatement(s.Body)
	case *ast.VariableDeclaration:
		if !s.Type.IsScalar() {
			return errorf(s, "variable %s cannot have type %s", s.Name.Name, s.Type)
		}
		if err := c.define(s.Name, s.Type); err != nil {
			return err
		}
		if s.Initializer == nil {
			return nil
		}
		init, err := c.checkValue(s.Initializer, "initializer")
		if err != nil {
			return err
		}
		if !types.CanAssign(s.Type, init) {
			return errorf(s.Initializer, "cannot initialize %s %s with a value of type %s", s.Type, s.Name.Name, init)
		}
		return nil
	case *ast.ArrayDeclaration:
		arrayType := s.ArrayType()
		if !arrayType.IsValid() {
			return errorf(s, "invalid array type for %s", s.Name.Name)
		}
		for _, dim := range s.Dimensions {
			typ, err := c.checkExpression(dim)
			if err != nil {
				return err
			}
			if !typ.IsNumeric() {
				return errorf(dim, "array dimension must be numeric, got %s", typ)
			}
		}
		return c.define(s.Name, arrayType)
	case *ast.PrintStatement:
		_, err := c.checkValue(s.Argument, "print argument")
		return err
	case *ast.ReturnStatement:
		return c.checkReturn(s)
	case *ast.FunctionDeclaration:
		return errorf(s, "function %s must be declared at top level", s.Name.Name)
	case ast.Expression:
		_, err := c.checkExpression(s)
		return err
	default:
		return errorf(stmt, "unsupported statement %s", stmt.NodeType())
	}
}

func (c *Checker) checkCondition(construct string, cond ast.Expression) error {
	typ, err := c.checkExpression(cond)
	if err != nil {
		return err
	}
	if typ != types.Boolean {
		return errorf(cond, "%s condition must be boolean, got %s", construct, typ)
	}
	return nil
}

func (c *Checker) checkReturn(s *ast.ReturnStatement) error {
	if len(c.returnTypeStack) == 0 {
		return errorf(s, "return outside of a function")
	}
	want := c.returnTypeStack[len(c.returnTypeStack)-1]
	if s.Argument == nil {
		if want != types.Void {
			return errorf(s, "missing return value in function returning %s", want)
		}
		return nil
	}
	if want == types.Void {
		return errorf(s.Argument, "void function cannot return a value")
	}
	got, err := c.checkValue(s.Argument, "return value")
	if err != nil {
		return err
	}
	if !types.CanAssign(want, got) {
		return errorf(s.Argument, "cannot return %s from function returning %s", got, want)
	}
	return nil
}
