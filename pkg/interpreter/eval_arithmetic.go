package interpreter

import (
	"math"

	"github.com/YulinWu/interpreter/pkg/ast"
	"github.com/YulinWu/interpreter/pkg/runtime"
	"github.com/YulinWu/interpreter/pkg/types"
)

// evalArithmetic evaluates an Int or Float expression. Mixed operands are
// promoted to the resolved type of the node.
func (i *Interpreter) evalArithmetic(expr ast.Expression) (runtime.Value, error) {
	if val, ok, err := i.evalShared(expr); ok {
		if err != nil {
			return nil, err
		}
		return expectNumeric(expr, val)
	}
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: e.Value}, nil
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: e.Value}, nil
	case *ast.UnaryExpression:
		if e.Operator != ast.OpNeg {
			return nil, internalError(e, "operator %s in arithmetic context", e.Operator)
		}
		operand, err := i.evalArithmetic(e.Operand)
		if err != nil {
			return nil, err
		}
		switch v := operand.(type) {
		case runtime.IntegerValue:
			return runtime.IntegerValue{Val: -v.Val}, nil
		case runtime.FloatValue:
			return runtime.FloatValue{Val: -v.Val}, nil
		}
		return nil, internalError(e, "cannot negate %s", operand.Kind())
	case *ast.BinaryExpression:
		return i.evalArithmeticBinary(e)
	default:
		return nil, internalError(expr, "%s in arithmetic context", expr.NodeType())
	}
}

func (i *Interpreter) evalArithmeticBinary(e *ast.BinaryExpression) (runtime.Value, error) {
	left, err := i.evalArithmetic(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evalArithmetic(e.Right)
	if err != nil {
		return nil, err
	}
	typ, err := i.typeOf(e)
	if err != nil {
		return nil, err
	}
	if typ == types.Float {
		return floatOp(e, toFloat(left), toFloat(right))
	}
	l, lok := left.(runtime.IntegerValue)
	r, rok := right.(runtime.IntegerValue)
	if !lok || !rok {
		return nil, internalError(e, "int operator %s applied to %s and %s", e.Operator, left.Kind(), right.Kind())
	}
	return intOp(e, l.Val, r.Val)
}

func intOp(e *ast.BinaryExpression, l, r int64) (runtime.Value, error) {
	switch e.Operator {
	case ast.OpAdd:
		return runtime.IntegerValue{Val: l + r}, nil
	case ast.OpSub:
		return runtime.IntegerValue{Val: l - r}, nil
	case ast.OpMul:
		return runtime.IntegerValue{Val: l * r}, nil
	case ast.OpDiv:
		if r == 0 {
			return nil, runtimeErrorf(e, "integer division by zero")
		}
		return runtime.IntegerValue{Val: l / r}, nil
	case ast.OpMod:
		if r == 0 {
			return nil, runtimeErrorf(e, "integer modulus by zero")
		}
		return runtime.IntegerValue{Val: l % r}, nil
	default:
		return nil, internalError(e, "operator %s in arithmetic context", e.Operator)
	}
}

// floatOp follows IEEE 754; division by zero yields an infinity or NaN.
func floatOp(e *ast.BinaryExpression, l, r float64) (runtime.Value, error) {
	switch e.Operator {
	case ast.OpAdd:
		return runtime.FloatValue{Val: l + r}, nil
	case ast.OpSub:
		return runtime.FloatValue{Val: l - r}, nil
	case ast.OpMul:
		return runtime.FloatValue{Val: l * r}, nil
	case ast.OpDiv:
		return runtime.FloatValue{Val: l / r}, nil
	case ast.OpMod:
		return runtime.FloatValue{Val: math.Mod(l, r)}, nil
	default:
		return nil, internalError(e, "operator %s in arithmetic context", e.Operator)
	}
}

func toFloat(v runtime.Value) float64 {
	switch n := v.(type) {
	case runtime.IntegerValue:
		return float64(n.Val)
	case runtime.FloatValue:
		return n.Val
	}
	return math.NaN()
}

func expectNumeric(expr ast.Expression, val runtime.Value) (runtime.Value, error) {
	switch val.(type) {
	case runtime.IntegerValue, runtime.FloatValue:
		return val, nil
	}
	return nil, internalError(expr, "expected a number, got %s", val.Kind())
}

// compareNumbers orders two numeric values, promoting to float when either
// side is a float.
func compareNumbers(l, r runtime.Value) int {
	li, lok := l.(runtime.IntegerValue)
	ri, rok := r.(runtime.IntegerValue)
	if lok && rok {
		switch {
		case li.Val < ri.Val:
			return -1
		case li.Val > ri.Val:
			return 1
		}
		return 0
	}
	lf, rf := toFloat(l), toFloat(r)
	switch {
	case lf < rf:
		return -1
	case lf > rf:
		return 1
	case lf == rf:
		return 0
	}
	// NaN is unordered.
	return 2
}
