package interpreter

import (
	"github.com/YulinWu/interpreter/pkg/ast"
	"github.com/YulinWu/interpreter/pkg/runtime"
)

// evalArray yields array storage. Arrays appear only as names, as the
// result of a whole-array assignment, or as operands of concatenation and
// print.
func (i *Interpreter) evalArray(expr ast.Expression) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return i.lookupArray(e)
	case *ast.AssignmentExpression:
		return i.evalAssignment(e)
	default:
		return nil, internalError(expr, "%s in array context", expr.NodeType())
	}
}
