package semantic

import (
	"fmt"

	"github.com/YulinWu/interpreter/pkg/ast"
)

// Error is a fatal violation of the static rules.
type Error struct {
	Pos     ast.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("semantic error at %s: %s", e.Pos, e.Message)
}

func errorf(node ast.Node, format string, args ...any) error {
	return &Error{Pos: node.Pos(), Message: fmt.Sprintf(format, args...)}
}

// Warning is a non-fatal diagnostic. Node is the construct it refers to.
type Warning struct {
	Pos     ast.Position
	Message string
	Node    ast.Node
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: warning: %s", w.Pos, w.Message)
}

const msgUnusedValue = "computed value is not used"
