package interpreter

import (
	"strings"

	"github.com/YulinWu/interpreter/pkg/ast"
	"github.com/YulinWu/interpreter/pkg/runtime"
)

func (i *Interpreter) evalString(expr ast.Expression) (runtime.Value, error) {
	if val, ok, err := i.evalShared(expr); ok {
		if err != nil {
			return nil, err
		}
		if _, isString := val.(runtime.StringValue); !isString {
			return nil, internalError(expr, "expected a string, got %s", val.Kind())
		}
		return val, nil
	}
	switch e := expr.(type) {
	case *ast.StringLiteral:
		return runtime.StringValue{Val: e.Value}, nil
	case *ast.BinaryExpression:
		switch e.Operator {
		case ast.OpAdd:
			return i.evalConcat(e)
		case ast.OpMul:
			return i.evalRepeat(e)
		}
		return nil, internalError(e, "operator %s in string context", e.Operator)
	default:
		return nil, internalError(expr, "%s in string context", expr.NodeType())
	}
}

// evalConcat renders the right operand, whatever its type, as print would.
func (i *Interpreter) evalConcat(e *ast.BinaryExpression) (runtime.Value, error) {
	left, err := i.evalString(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	return runtime.StringValue{Val: left.(runtime.StringValue).Val + runtime.Format(right)}, nil
}

func (i *Interpreter) evalRepeat(e *ast.BinaryExpression) (runtime.Value, error) {
	left, err := i.evalString(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evalArithmetic(e.Right)
	if err != nil {
		return nil, err
	}
	count, ok := right.(runtime.IntegerValue)
	if !ok {
		return nil, internalError(e.Right, "repetition count evaluated to %s", right.Kind())
	}
	if count.Val < 0 {
		return nil, runtimeErrorf(e, "negative repetition count %d", count.Val)
	}
	s := left.(runtime.StringValue).Val
	if s != "" && count.Val > int64(maxStringLen/len(s)) {
		return nil, runtimeErrorf(e, "repeated string would exceed %d bytes", maxStringLen)
	}
	return runtime.StringValue{Val: strings.Repeat(s, int(count.Val))}, nil
}

// maxStringLen caps the result of a repetition.
const maxStringLen = 1 << 28

func compareStrings(l, r runtime.Value) int {
	return strings.Compare(l.(runtime.StringValue).Val, r.(runtime.StringValue).Val)
}
