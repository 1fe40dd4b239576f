// Package semantic validates name resolution, initialization and lvalue rules
// before a program is type checked.
package semantic

import (
	"errors"

	"github.com/YulinWu/interpreter/pkg/ast"
	"github.com/YulinWu/interpreter/pkg/symtab"
)

// Analyzer walks a program with a scoped table whose slot records whether the
// variable is definitely initialized. The root frame stays open between calls
// to Analyze so a session can analyze a program in chunks.
type Analyzer struct {
	functions  FunctionTable
	scope      *symtab.Table[bool]
	inFunction bool
	warnings   []Warning
}

func NewAnalyzer(functions FunctionTable) *Analyzer {
	scope := symtab.New[bool]()
	scope.EnterScope()
	return &Analyzer{functions: functions, scope: scope}
}

// Analyze runs the function table builder and the analyzer over prog.
func Analyze(prog *ast.Program) (FunctionTable, []Warning, error) {
	functions, err := BuildFunctionTable(prog)
	if err != nil {
		return nil, nil, err
	}
	warnings, err := NewAnalyzer(functions).Analyze(prog)
	return functions, warnings, err
}

// Analyze checks the top-level statements of prog in the root scope. Warnings
// gathered before a fatal error are returned alongside it.
func (a *Analyzer) Analyze(prog *ast.Program) ([]Warning, error) {
	a.warnings = nil
	for _, stmt := range prog.Body {
		if fn, ok := stmt.(*ast.FunctionDeclaration); ok {
			if err := a.analyzeFunction(fn); err != nil {
				return a.warnings, err
			}
			continue
		}
		if err := a.analyzeStatement(stmt); err != nil {
			return a.warnings, err
		}
	}
	return a.warnings, nil
}

// Checkpoint returns a function that restores the root scope to its current
// bindings.
func (a *Analyzer) Checkpoint() (restore func()) {
	saved := a.scope.Clone()
	return func() {
		a.scope = saved
		a.inFunction = false
	}
}

func (a *Analyzer) warn(node ast.Node, msg string) {
	a.warnings = append(a.warnings, Warning{Pos: node.Pos(), Message: msg, Node: node})
}

// analyzeFunction checks a body against a fresh table holding only the
// parameters; top-level variables are not visible inside functions.
func (a *Analyzer) analyzeFunction(fn *ast.FunctionDeclaration) error {
	outer, outerIn := a.scope, a.inFunction
	a.scope, a.inFunction = symtab.New[bool](), true
	defer func() { a.scope, a.inFunction = outer, outerIn }()

	a.scope.EnterScope()
	defer a.scope.ExitScope()
	for _, param := range fn.Params {
		if err := a.define(param.Name, true); err != nil {
			return err
		}
	}
	for _, stmt := range fn.Body.Body {
		if err := a.analyzeStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) define(name *ast.Identifier, initialized bool) error {
	if err := a.scope.Define(name.Name, initialized); err != nil {
		if errors.Is(err, symtab.ErrDuplicate) {
			return errorf(name, "double declaration of variable %s", name.Name)
		}
		return err
	}
	return nil
}

func (a *Analyzer) analyzeBlock(block *ast.BlockStatement) error {
	a.scope.EnterScope()
	defer a.scope.ExitScope()
	for _, stmt := range block.Body {
		if err := a.analyzeStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		return a.analyzeBlock(s)
	case *ast.IfStatement:
		if err := a.analyzeExpression(s.Condition); err != nil {
			return err
		}
		if err := a.analyzeStatement(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			return a.analyzeStatement(s.Else)
		}
		return nil
	case *ast.WhileStatement:
		if err := a.analyzeExpression(s.Condition); err != nil {
			return err
		}
		return a.analyzeStatement(s.Body)
	case *ast.ForStatement:
		// Clauses are visited in execution order: init, condition, body, update.
		if err := a.analyzeClause(s.Init); err != nil {
			return err
		}
		if s.Condition != nil {
			if err := a.analyzeExpression(s.Condition); err != nil {
				return err
			}
		}
		if err := a.analyzeStatement(s.Body); err != nil {
			return err
		}
		return a.analyzeClause(s.Update)
	case *ast.VariableDeclaration:
		if err := a.define(s.Name, s.Initializer != nil); err != nil {
			return err
		}
		if s.Initializer != nil {
			return a.analyzeExpression(s.Initializer)
		}
		return nil
	case *ast.ArrayDeclaration:
		if err := a.define(s.Name, true); err != nil {
			return err
		}
		for _, dim := range s.Dimensions {
			if err := a.analyzeExpression(dim); err != nil {
				return err
			}
		}
		return nil
	case *ast.PrintStatement:
		return a.analyzeExpression(s.Argument)
	case *ast.ReturnStatement:
		if !a.inFunction {
			return errorf(s, "return outside of a function")
		}
		if s.Argument != nil {
			return a.analyzeExpression(s.Argument)
		}
		return nil
	case *ast.FunctionDeclaration:
		return errorf(s, "function %s must be declared at top level", s.Name.Name)
	case ast.Expression:
		return a.analyzeClause(s)
	default:
		return errorf(stmt, "unsupported statement %s", stmt.NodeType())
	}
}

// analyzeClause handles an expression whose value is discarded.
func (a *Analyzer) analyzeClause(expr ast.Expression) error {
	if expr == nil {
		return nil
	}
	if !ast.HasSideEffect(expr) {
		a.warn(expr, msgUnusedValue)
	}
	return a.analyzeExpression(expr)
}

func (a *Analyzer) analyzeExpression(expr ast.Expression) error {
	switch e := expr.(type) {
	case *ast.IntegerLiteral, *ast.FloatLiteral, *ast.BooleanLiteral, *ast.StringLiteral:
		return nil
	case *ast.Identifier:
		initialized, ok := a.scope.Lookup(e.Name)
		if !ok {
			return errorf(e, "variable %s cannot be resolved", e.Name)
		}
		if !initialized {
			return errorf(e, "local variable %s may not have been initialized", e.Name)
		}
		return nil
	case *ast.UnaryExpression:
		return a.analyzeExpression(e.Operand)
	case *ast.BinaryExpression:
		if err := a.analyzeExpression(e.Left); err != nil {
			return err
		}
		return a.analyzeExpression(e.Right)
	case *ast.AssignmentExpression:
		if !ast.IsLValue(e.Left) {
			return errorf(e.Left, "left hand side must be an lvalue")
		}
		if id, ok := e.Left.(*ast.Identifier); ok {
			if err := a.scope.Set(id.Name, true); err != nil {
				return errorf(id, "variable %s cannot be resolved", id.Name)
			}
		}
		if err := a.analyzeExpression(e.Left); err != nil {
			return err
		}
		return a.analyzeExpression(e.Right)
	case *ast.IncrementExpression:
		if !ast.IsLValue(e.Operand) {
			return errorf(e.Operand, "operand of %s must be an lvalue", e.Operator)
		}
		return a.analyzeExpression(e.Operand)
	case *ast.FunctionCall:
		if _, ok := a.functions.Lookup(e.Callee.Name); !ok {
			return errorf(e.Callee, "use of undeclared function %s", e.Callee.Name)
		}
		for _, arg := range e.Arguments {
			if err := a.analyzeExpression(arg); err != nil {
				return err
			}
		}
		return nil
	case *ast.IndexExpression:
		if err := a.analyzeExpression(e.Array); err != nil {
			return err
		}
		for _, index := range e.Indices {
			if err := a.analyzeExpression(index); err != nil {
				return err
			}
		}
		return nil
	default:
		return errorf(expr, "unsupported expression %s", expr.NodeType())
	}
}
