package typechecker

import (
	"fmt"

	"github.com/YulinWu/interpreter/pkg/ast"
)

// Error is a fatal type error.
type Error struct {
	Pos     ast.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("type error at %s: %s", e.Pos, e.Message)
}

func errorf(node ast.Node, format string, args ...any) error {
	return &Error{Pos: node.Pos(), Message: fmt.Sprintf(format, args...)}
}
