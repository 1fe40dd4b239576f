// Package interpreter executes a checked program by walking its tree. Each
// expression is routed to the evaluator for its resolved type.
package interpreter

import (
	"fmt"
	"io"

	"github.com/YulinWu/interpreter/pkg/ast"
	"github.com/YulinWu/interpreter/pkg/runtime"
	"github.com/YulinWu/interpreter/pkg/symtab"
	"github.com/YulinWu/interpreter/pkg/types"
)

const DefaultMaxCallDepth = 10000

// Functions resolves a callee to its declaration.
type Functions interface {
	Lookup(name string) (*ast.FunctionDeclaration, bool)
}

// Types exposes the resolved type of each expression.
type Types interface {
	TypeOf(expr ast.Expression) (types.Type, bool)
}

// Interpreter holds the runtime scope stack. The root frame stays open between
// calls to Run so a session can execute a program in chunks.
type Interpreter struct {
	functions    Functions
	types        Types
	scope        *symtab.Table[runtime.Value]
	out          io.Writer
	depth        int
	maxCallDepth int
}

type Option func(*Interpreter)

// WithOutput sets the destination of print statements.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithMaxCallDepth bounds nested calls; n <= 0 keeps the default.
func WithMaxCallDepth(n int) Option {
	return func(i *Interpreter) {
		if n > 0 {
			i.maxCallDepth = n
		}
	}
}

func New(functions Functions, resolved Types, opts ...Option) *Interpreter {
	scope := symtab.New[runtime.Value]()
	scope.EnterScope()
	i := &Interpreter{
		functions:    functions,
		types:        resolved,
		scope:        scope,
		out:          io.Discard,
		maxCallDepth: DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run executes the top-level statements of prog. Function declarations are
// skipped; they run only when called.
func (i *Interpreter) Run(prog *ast.Program) error {
	for _, stmt := range prog.Body {
		if _, ok := stmt.(*ast.FunctionDeclaration); ok {
			continue
		}
		if err := i.execute(stmt); err != nil {
			if _, ok := err.(returnSignal); ok {
				return internalError(stmt, "return escaped its function")
			}
			return err
		}
	}
	return nil
}

// Lookup returns the value bound to name in the root scope chain.
func (i *Interpreter) Lookup(name string) (runtime.Value, bool) {
	return i.scope.Lookup(name)
}

// Checkpoint returns a function that restores the root bindings. Array
// storage is shared with the snapshot, so element writes are not undone.
func (i *Interpreter) Checkpoint() (restore func()) {
	saved := i.scope.Clone()
	return func() {
		i.scope = saved
		i.depth = 0
	}
}

// RuntimeError aborts execution at a source position.
type RuntimeError struct {
	Pos      ast.Position
	Message  string
	Internal bool
}

func (e *RuntimeError) Error() string {
	if e.Internal {
		return fmt.Sprintf("runtime error at %s: internal error: %s", e.Pos, e.Message)
	}
	return fmt.Sprintf("runtime error at %s: %s", e.Pos, e.Message)
}

func runtimeErrorf(node ast.Node, format string, args ...any) error {
	return &RuntimeError{Pos: node.Pos(), Message: fmt.Sprintf(format, args...)}
}

// internalError marks a state the type checker should have ruled out.
func internalError(node ast.Node, format string, args ...any) error {
	return &RuntimeError{Pos: node.Pos(), Message: fmt.Sprintf(format, args...), Internal: true}
}

type returnSignal struct {
	value runtime.Value
}

func (r returnSignal) Error() string {
	return "return"
}
