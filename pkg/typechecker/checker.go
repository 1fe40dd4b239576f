// Package typechecker assigns a type to every expression and rejects operator,
// assignment and call misuse before execution.
package typechecker

import (
	"fmt"

	"github.com/YulinWu/interpreter/pkg/ast"
	"github.com/YulinWu/interpreter/pkg/symtab"
	"github.com/YulinWu/interpreter/pkg/types"
)

// InferenceMap records the resolved type of each expression node.
type InferenceMap map[ast.Expression]types.Type

// TypeOf returns the resolved type of expr.
func (m InferenceMap) TypeOf(expr ast.Expression) (types.Type, bool) {
	typ, ok := m[expr]
	return typ, ok
}

// Functions resolves a callee to its declaration.
type Functions interface {
	Lookup(name string) (*ast.FunctionDeclaration, bool)
}

// Checker walks a program bottom-up, storing each expression's type. The root
// scope persists across calls to Check.
type Checker struct {
	infer           InferenceMap
	functions       Functions
	scope           *symtab.Table[types.Type]
	returnTypeStack []types.Type
}

func New(functions Functions) *Checker {
	scope := symtab.New[types.Type]()
	scope.EnterScope()
	return &Checker{
		infer:     make(InferenceMap),
		functions: functions,
		scope:     scope,
	}
}

// Check type checks prog against a fresh checker.
func Check(prog *ast.Program, functions Functions) (InferenceMap, error) {
	c := New(functions)
	if err := c.Check(prog); err != nil {
		return nil, err
	}
	return c.Inferred(), nil
}

// Check assigns types to the expressions of prog. Resolved types accumulate
// in the checker's InferenceMap.
func (c *Checker) Check(prog *ast.Program) error {
	if prog == nil {
		return fmt.Errorf("typechecker: program is nil")
	}
	for _, stmt := range prog.Body {
		var err error
		if fn, ok := stmt.(*ast.FunctionDeclaration); ok {
			err = c.checkFunction(fn)
		} else {
			err = c.checkStatement(stmt)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Inferred exposes the resolved types for the execution engine.
func (c *Checker) Inferred() InferenceMap { return c.infer }

// Checkpoint returns a function that restores the root scope to its current
// bindings.
func (c *Checker) Checkpoint() (restore func()) {
	saved := c.scope.Clone()
	return func() {
		c.scope = saved
		c.returnTypeStack = nil
	}
}

func (c *Checker) record(expr ast.Expression, typ types.Type) types.Type {
	c.infer[expr] = typ
	return typ
}

func (c *Checker) define(name *ast.Identifier, typ types.Type) error {
	if err := c.scope.Define(name.Name, typ); err != nil {
		return errorf(name, "%s already declared in this scope", name.Name)
	}
	return nil
}

func (c *Checker) checkFunction(fn *ast.FunctionDeclaration) error {
	outer := c.scope
	c.scope = symtab.New[types.Type]()
	c.returnTypeStack = append(c.returnTypeStack, fn.ReturnType)
	defer func() {
		c.scope = outer
		c.returnTypeStack = c.returnTypeStack[:len(c.returnTypeStack)-1]
	}()

	c.scope.EnterScope()
	defer c.scope.ExitScope()
	for _, param := range fn.Params {
		if !param.Type.IsScalar() {
			return errorf(param, "parameter %s cannot have type %s", param.Name.Name, param.Type)
		}
		if err := c.define(param.Name, param.Type); err != nil {
			return err
		}
	}
	for _, stmt := range fn.Body.Body {
		if err := c.checkStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}
