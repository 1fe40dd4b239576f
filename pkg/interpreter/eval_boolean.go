package interpreter

import (
	"github.com/YulinWu/interpreter/pkg/ast"
	"github.com/YulinWu/interpreter/pkg/runtime"
	"github.com/YulinWu/interpreter/pkg/types"
)

func (i *Interpreter) evalBoolean(expr ast.Expression) (runtime.Value, error) {
	if val, ok, err := i.evalShared(expr); ok {
		if err != nil {
			return nil, err
		}
		if _, isBool := val.(runtime.BoolValue); !isBool {
			return nil, internalError(expr, "expected a boolean, got %s", val.Kind())
		}
		return val, nil
	}
	switch e := expr.(type) {
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: e.Value}, nil
	case *ast.UnaryExpression:
		if e.Operator != ast.OpNot {
			return nil, internalError(e, "operator %s in boolean context", e.Operator)
		}
		b, err := i.evalCondition(e.Operand)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: !b}, nil
	case *ast.BinaryExpression:
		switch e.Operator {
		case ast.OpAnd, ast.OpOr:
			return i.evalLogical(e)
		case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe, ast.OpEq, ast.OpNe:
			return i.evalComparison(e)
		}
		return nil, internalError(e, "operator %s in boolean context", e.Operator)
	default:
		return nil, internalError(expr, "%s in boolean context", expr.NodeType())
	}
}

// evalLogical never evaluates the right operand once the left one decides
// the result.
func (i *Interpreter) evalLogical(e *ast.BinaryExpression) (runtime.Value, error) {
	left, err := i.evalCondition(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Operator == ast.OpAnd && !left {
		return runtime.BoolValue{Val: false}, nil
	}
	if e.Operator == ast.OpOr && left {
		return runtime.BoolValue{Val: true}, nil
	}
	right, err := i.evalCondition(e.Right)
	if err != nil {
		return nil, err
	}
	return runtime.BoolValue{Val: right}, nil
}

// evalComparison fetches both operands from the evaluator for their type and
// applies the operator.
func (i *Interpreter) evalComparison(e *ast.BinaryExpression) (runtime.Value, error) {
	leftType, err := i.typeOf(e.Left)
	if err != nil {
		return nil, err
	}
	rightType, err := i.typeOf(e.Right)
	if err != nil {
		return nil, err
	}

	var cmp int
	switch {
	case leftType.IsNumeric() && rightType.IsNumeric():
		left, err := i.evalArithmetic(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.evalArithmetic(e.Right)
		if err != nil {
			return nil, err
		}
		cmp = compareNumbers(left, right)
	case leftType == types.String && rightType == types.String:
		left, err := i.evalString(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.evalString(e.Right)
		if err != nil {
			return nil, err
		}
		cmp = compareStrings(left, right)
	case leftType == types.Boolean && rightType == types.Boolean:
		if e.Operator != ast.OpEq && e.Operator != ast.OpNe {
			return nil, internalError(e, "operator %s applied to booleans", e.Operator)
		}
		left, err := i.evalCondition(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.evalCondition(e.Right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: (left == right) == (e.Operator == ast.OpEq)}, nil
	default:
		return nil, internalError(e, "operator %s applied to %s and %s", e.Operator, leftType, rightType)
	}

	var result bool
	switch e.Operator {
	case ast.OpLt:
		result = cmp == -1
	case ast.OpLe:
		result = cmp == -1 || cmp == 0
	case ast.OpGt:
		result = cmp == 1
	case ast.OpGe:
		result = cmp == 1 || cmp == 0
	case ast.OpEq:
		result = cmp == 0
	case ast.OpNe:
		result = cmp != 0
	}
	return runtime.BoolValue{Val: result}, nil
}
