package typechecker

import (
	"github.com/YulinWu/interpreter/pkg/ast"
	"github.com/YulinWu/interpreter/pkg/types"
)

var binaryCategories = map[string]types.Category{
	ast.OpAdd: types.Additive,
	ast.OpSub: types.Subtractive,
	ast.OpMul: types.Multiplicative,
	ast.OpDiv: types.Division,
	ast.OpMod: types.Modulus,
	ast.OpLt:  types.Relational,
	ast.OpLe:  types.Relational,
	ast.OpGt:  types.Relational,
	ast.OpGe:  types.Relational,
	ast.OpEq:  types.Equality,
	ast.OpNe:  types.Equality,
	ast.OpAnd: types.Logical,
	ast.OpOr:  types.Logical,
}

// checkValue checks an expression whose result is consumed and therefore
// must not be void.
func (c *Checker) checkValue(expr ast.Expression, role string) (types.Type, error) {
	typ, err := c.checkExpression(expr)
	if err != nil {
		return types.Invalid, err
	}
	if !typ.IsValue() {
		return types.Invalid, errorf(expr, "%s has no value (type %s)", role, typ)
	}
	return typ, nil
}

func (c *Checker) checkExpression(expr ast.Expression) (types.Type, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return c.record(e, types.Int), nil
	case *ast.FloatLiteral:
		return c.record(e, types.Float), nil
	case *ast.BooleanLiteral:
		return c.record(e, types.Boolean), nil
	case *ast.StringLiteral:
		return c.record(e, types.String), nil
	case *ast.Identifier:
		typ, ok := c.scope.Lookup(e.Name)
		if !ok {
			return types.Invalid, errorf(e, "undefined variable %s", e.Name)
		}
		return c.record(e, typ), nil
	case *ast.UnaryExpression:
		return c.checkUnary(e)
	case *ast.BinaryExpression:
		return c.checkBinary(e)
	case *ast.AssignmentExpression:
		return c.checkAssignment(e)
	case *ast.IncrementExpression:
		typ, err := c.checkExpression(e.Operand)
		if err != nil {
			return types.Invalid, err
		}
		if !typ.IsNumeric() {
			return types.Invalid, errorf(e, "operator %s is not defined for %s", e.Operator, typ)
		}
		return c.record(e, typ), nil
	case *ast.FunctionCall:
		return c.checkCall(e)
	case *ast.IndexExpression:
		return c.checkIndex(e)
	default:
		return types.Invalid, errorf(expr, "unsupported expression %s", expr.NodeType())
	}
}

func (c *Checker) checkUnary(e *ast.UnaryExpression) (types.Type, error) {
	operand, err := c.checkExpression(e.Operand)
	if err != nil {
		return types.Invalid, err
	}
	var (
		result types.Type
		ok     bool
	)
	switch e.Operator {
	case ast.OpNeg:
		result, ok = operand.Negate()
	case ast.OpNot:
		result, ok = operand.Not()
	}
	if !ok {
		return types.Invalid, errorf(e, "operator %s is not defined for %s", e.Operator, operand)
	}
	return c.record(e, result), nil
}

func (c *Checker) checkBinary(e *ast.BinaryExpression) (types.Type, error) {
	category, ok := binaryCategories[e.Operator]
	if !ok {
		return types.Invalid, errorf(e, "unknown operator %s", e.Operator)
	}
	left, err := c.checkExpression(e.Left)
	if err != nil {
		return types.Invalid, err
	}
	right, err := c.checkExpression(e.Right)
	if err != nil {
		return types.Invalid, err
	}
	result, ok := types.Binary(category, left, right)
	if !ok {
		return types.Invalid, errorf(e, "operator %s is not defined for %s and %s", e.Operator, left, right)
	}
	return c.record(e, result), nil
}

func (c *Checker) checkAssignment(e *ast.AssignmentExpression) (types.Type, error) {
	target, err := c.checkExpression(e.Left)
	if err != nil {
		return types.Invalid, err
	}
	source, err := c.checkValue(e.Right, "assigned expression")
	if err != nil {
		return types.Invalid, err
	}
	if !types.CanAssign(target, source) {
		return types.Invalid, errorf(e, "cannot assign %s to %s", source, target)
	}
	return c.record(e, target), nil
}

func (c *Checker) checkCall(e *ast.FunctionCall) (types.Type, error) {
	fn, ok := c.functions.Lookup(e.Callee.Name)
	if !ok {
		return types.Invalid, errorf(e.Callee, "undefined function %s", e.Callee.Name)
	}
	if len(e.Arguments) != len(fn.Params) {
		return types.Invalid, errorf(e, "function %s expects %d arguments, got %d", fn.Name.Name, len(fn.Params), len(e.Arguments))
	}
	for i, arg := range e.Arguments {
		typ, err := c.checkValue(arg, "argument")
		if err != nil {
			return types.Invalid, err
		}
		param := fn.Params[i]
		if !types.CanAssign(param.Type, typ) {
			return types.Invalid, errorf(arg, "argument %d of %s must be %s, got %s", i+1, fn.Name.Name, param.Type, typ)
		}
	}
	return c.record(e, fn.ReturnType), nil
}

func (c *Checker) checkIndex(e *ast.IndexExpression) (types.Type, error) {
	arrayType, err := c.checkExpression(e.Array)
	if err != nil {
		return types.Invalid, err
	}
	if !arrayType.IsArray() {
		return types.Invalid, errorf(e.Array, "%s is not an array (type %s)", e.Array.Name, arrayType)
	}
	if len(e.Indices) != arrayType.Dims() {
		return types.Invalid, errorf(e, "array %s has %d dimensions, got %d indices", e.Array.Name, arrayType.Dims(), len(e.Indices))
	}
	for _, index := range e.Indices {
		typ, err := c.checkExpression(index)
		if err != nil {
			return types.Invalid, err
		}
		if typ != types.Int {
			return types.Invalid, errorf(index, "array index must be int, got %s", typ)
		}
	}
	return c.record(e, arrayType.Elem()), nil
}
