package interpreter

import (
	"github.com/YulinWu/interpreter/pkg/ast"
	"github.com/YulinWu/interpreter/pkg/runtime"
	"github.com/YulinWu/interpreter/pkg/types"
)

func (i *Interpreter) typeOf(expr ast.Expression) (types.Type, error) {
	typ, ok := i.types.TypeOf(expr)
	if !ok {
		return types.Invalid, internalError(expr, "%s has no resolved type", expr.NodeType())
	}
	return typ, nil
}

// evaluate is the single entry point for expressions. Every resolved type
// maps to exactly one domain evaluator.
func (i *Interpreter) evaluate(expr ast.Expression) (runtime.Value, error) {
	typ, err := i.typeOf(expr)
	if err != nil {
		return nil, err
	}
	switch typ.Kind() {
	case types.KindBoolean:
		return i.evalBoolean(expr)
	case types.KindString:
		return i.evalString(expr)
	case types.KindInt, types.KindFloat:
		return i.evalArithmetic(expr)
	case types.KindArray:
		return i.evalArray(expr)
	case types.KindVoid:
		return i.evalVoid(expr)
	default:
		return nil, internalError(expr, "no evaluator for type %s", typ)
	}
}

func (i *Interpreter) evalCondition(expr ast.Expression) (bool, error) {
	val, err := i.evalBoolean(expr)
	if err != nil {
		return false, err
	}
	b, ok := val.(runtime.BoolValue)
	if !ok {
		return false, internalError(expr, "condition evaluated to %s", val.Kind())
	}
	return b.Val, nil
}

// evalShared handles the expression shapes common to every value domain:
// variable and element reads, assignment, increment and calls. ok is false
// when expr is none of those.
func (i *Interpreter) evalShared(expr ast.Expression) (val runtime.Value, ok bool, err error) {
	switch e := expr.(type) {
	case *ast.Identifier:
		val, found := i.scope.Lookup(e.Name)
		if !found {
			return nil, true, internalError(e, "variable %s is not bound", e.Name)
		}
		return val, true, nil
	case *ast.IndexExpression:
		arr, indices, err := i.resolveElement(e)
		if err != nil {
			return nil, true, err
		}
		val, err := arr.Get(indices)
		if err != nil {
			return nil, true, runtimeErrorf(e, "%v", err)
		}
		return val, true, nil
	case *ast.AssignmentExpression:
		val, err := i.evalAssignment(e)
		return val, true, err
	case *ast.IncrementExpression:
		val, err := i.evalIncrement(e)
		return val, true, err
	case *ast.FunctionCall:
		val, err := i.callFunction(e)
		return val, true, err
	default:
		return nil, false, nil
	}
}

func (i *Interpreter) lookupArray(id *ast.Identifier) (*runtime.ArrayValue, error) {
	val, ok := i.scope.Lookup(id.Name)
	if !ok {
		return nil, internalError(id, "variable %s is not bound", id.Name)
	}
	arr, ok := val.(*runtime.ArrayValue)
	if !ok {
		return nil, internalError(id, "%s holds %s, not an array", id.Name, val.Kind())
	}
	return arr, nil
}

// resolveElement finds the array and evaluates the indices, left to right.
func (i *Interpreter) resolveElement(e *ast.IndexExpression) (*runtime.ArrayValue, []int64, error) {
	arr, err := i.lookupArray(e.Array)
	if err != nil {
		return nil, nil, err
	}
	indices := make([]int64, len(e.Indices))
	for n, indexExpr := range e.Indices {
		val, err := i.evalArithmetic(indexExpr)
		if err != nil {
			return nil, nil, err
		}
		idx, ok := val.(runtime.IntegerValue)
		if !ok {
			return nil, nil, internalError(indexExpr, "index evaluated to %s", val.Kind())
		}
		indices[n] = idx.Val
	}
	return arr, indices, nil
}

// store writes val to the location denoted by target.
func (i *Interpreter) store(target ast.Expression, val runtime.Value) error {
	switch t := target.(type) {
	case *ast.Identifier:
		if err := i.scope.Set(t.Name, val); err != nil {
			return internalError(t, "%v", err)
		}
		return nil
	case *ast.IndexExpression:
		arr, indices, err := i.resolveElement(t)
		if err != nil {
			return err
		}
		if err := arr.Set(indices, val); err != nil {
			return runtimeErrorf(t, "%v", err)
		}
		return nil
	default:
		return internalError(target, "%s is not assignable", target.NodeType())
	}
}

// evalAssignment evaluates the source through the evaluator for its type
// and stores it. Array targets receive a copy of the source elements.
func (i *Interpreter) evalAssignment(e *ast.AssignmentExpression) (runtime.Value, error) {
	if idx, ok := e.Left.(*ast.IndexExpression); ok {
		arr, indices, err := i.resolveElement(idx)
		if err != nil {
			return nil, err
		}
		val, err := i.evaluate(e.Right)
		if err != nil {
			return nil, err
		}
		if err := arr.Set(indices, val); err != nil {
			return nil, runtimeErrorf(idx, "%v", err)
		}
		return val, nil
	}
	val, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	if src, ok := val.(*runtime.ArrayValue); ok {
		id, ok := e.Left.(*ast.Identifier)
		if !ok {
			return nil, internalError(e, "array assigned to %s", e.Left.NodeType())
		}
		dst, err := i.lookupArray(id)
		if err != nil {
			return nil, err
		}
		if dst != src {
			if err := dst.CopyFrom(src); err != nil {
				return nil, runtimeErrorf(e, "%v", err)
			}
		}
		return dst, nil
	}
	if err := i.store(e.Left, val); err != nil {
		return nil, err
	}
	return val, nil
}

// evalIncrement applies ++ or --; prefix forms yield the new value, postfix
// forms the old one.
func (i *Interpreter) evalIncrement(e *ast.IncrementExpression) (runtime.Value, error) {
	var (
		old     runtime.Value
		arr     *runtime.ArrayValue
		indices []int64
		err     error
	)
	if idx, ok := e.Operand.(*ast.IndexExpression); ok {
		// Index expressions are evaluated once.
		if arr, indices, err = i.resolveElement(idx); err != nil {
			return nil, err
		}
		if old, err = arr.Get(indices); err != nil {
			return nil, runtimeErrorf(idx, "%v", err)
		}
	} else if old, err = i.evaluate(e.Operand); err != nil {
		return nil, err
	}

	delta := int64(1)
	if e.Operator == ast.OpDec {
		delta = -1
	}
	var updated runtime.Value
	switch v := old.(type) {
	case runtime.IntegerValue:
		updated = runtime.IntegerValue{Val: v.Val + delta}
	case runtime.FloatValue:
		updated = runtime.FloatValue{Val: v.Val + float64(delta)}
	default:
		return nil, internalError(e, "operator %s applied to %s", e.Operator, old.Kind())
	}

	if arr != nil {
		if err := arr.Set(indices, updated); err != nil {
			return nil, runtimeErrorf(e, "%v", err)
		}
	} else if err := i.store(e.Operand, updated); err != nil {
		return nil, err
	}
	if e.Prefix {
		return updated, nil
	}
	return old, nil
}

// evalVoid handles expressions without a value; only calls qualify.
func (i *Interpreter) evalVoid(expr ast.Expression) (runtime.Value, error) {
	call, ok := expr.(*ast.FunctionCall)
	if !ok {
		return nil, internalError(expr, "%s cannot have type void", expr.NodeType())
	}
	return i.callFunction(call)
}
