package parser

import (
	"errors"
	"fmt"

	"github.com/YulinWu/interpreter/pkg/ast"
)

// Error is a syntax error at a source position.
type Error struct {
	Pos     ast.Position
	Message string
	// Incomplete is set when the input ended before the construct did, so more
	// text could still make it valid.
	Incomplete bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Message)
}

// IsIncomplete reports whether err is a syntax error caused only by input
// ending too early.
func IsIncomplete(err error) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Incomplete
}
