package interpreter

import (
	"io"
	"math"

	"github.com/YulinWu/interpreter/pkg/ast"
	"github.com/YulinWu/interpreter/pkg/runtime"
)

func (i *Interpreter) execute(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		return i.executeBlock(s.Body)
	case *ast.IfStatement:
		cond, err := i.evalCondition(s.Condition)
		if err != nil {
			return err
		}
		if cond {
			return i.execute(s.Then)
		}
		if s.Else != nil {
			return i.execute(s.Else)
		}
		return nil
	case *ast.WhileStatement:
		for {
			cond, err := i.evalCondition(s.Condition)
			if err != nil {
				return err
			}
			if !cond {
				return nil
			}
			if err := i.execute(s.Body); err != nil {
				return err
			}
		}
	case *ast.ForStatement:
		return i.executeFor(s)
	case *ast.VariableDeclaration:
		if err := i.define(s.Name, runtime.Zero(s.Type)); err != nil {
			return err
		}
		if s.Initializer == nil {
			return nil
		}
		val, err := i.evaluate(s.Initializer)
		if err != nil {
			return err
		}
		if err := i.scope.Set(s.Name.Name, val); err != nil {
			return internalError(s.Name, "%v", err)
		}
		return nil
	case *ast.ArrayDeclaration:
		return i.executeArrayDeclaration(s)
	case *ast.PrintStatement:
		val, err := i.evaluate(s.Argument)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(i.out, runtime.Format(val)); err != nil {
			return runtimeErrorf(s, "print: %v", err)
		}
		return nil
	case *ast.ReturnStatement:
		if s.Argument == nil {
			return returnSignal{}
		}
		val, err := i.evaluate(s.Argument)
		if err != nil {
			return err
		}
		return returnSignal{value: val}
	case *ast.FunctionDeclaration:
		return internalError(s, "function %s declared below top level", s.Name.Name)
	case ast.Expression:
		_, err := i.evaluate(s)
		return err
	default:
		return internalError(stmt, "unsupported statement %s", stmt.NodeType())
	}
}

// executeBlock runs stmts in a new frame that is released on every exit path.
func (i *Interpreter) executeBlock(stmts []ast.Statement) error {
	i.scope.EnterScope()
	defer i.scope.ExitScope()
	return i.executeStatements(stmts)
}

func (i *Interpreter) executeStatements(stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// executeFor runs init once, then (condition, body, update) until the
// condition is false. A missing condition is always true.
func (i *Interpreter) executeFor(s *ast.ForStatement) error {
	if s.Init != nil {
		if _, err := i.evaluate(s.Init); err != nil {
			return err
		}
	}
	for {
		if s.Condition != nil {
			cond, err := i.evalCondition(s.Condition)
			if err != nil {
				return err
			}
			if !cond {
				return nil
			}
		}
		if err := i.execute(s.Body); err != nil {
			return err
		}
		if s.Update != nil {
			if _, err := i.evaluate(s.Update); err != nil {
				return err
			}
		}
	}
}

// executeArrayDeclaration evaluates each dimension, truncating floats toward
// zero, and binds freshly zeroed storage in the current frame.
func (i *Interpreter) executeArrayDeclaration(s *ast.ArrayDeclaration) error {
	dims := make([]int64, len(s.Dimensions))
	for n, dimExpr := range s.Dimensions {
		val, err := i.evalArithmetic(dimExpr)
		if err != nil {
			return err
		}
		switch v := val.(type) {
		case runtime.IntegerValue:
			dims[n] = v.Val
		case runtime.FloatValue:
			if math.IsNaN(v.Val) || math.Abs(v.Val) > math.MaxInt32 {
				return runtimeErrorf(dimExpr, "array dimension %s is out of range", runtime.Format(v))
			}
			dims[n] = int64(v.Val)
		default:
			return internalError(dimExpr, "array dimension evaluated to %s", val.Kind())
		}
	}
	arr, err := runtime.NewArray(s.ElementType, dims)
	if err != nil {
		return runtimeErrorf(s, "%v", err)
	}
	return i.define(s.Name, arr)
}

func (i *Interpreter) define(name *ast.Identifier, val runtime.Value) error {
	if err := i.scope.Define(name.Name, val); err != nil {
		return internalError(name, "%v", err)
	}
	return nil
}
