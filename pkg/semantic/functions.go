package semantic

import "github.com/YulinWu/interpreter/pkg/ast"

// FunctionTable maps a function name to its top-level declaration.
type FunctionTable map[string]*ast.FunctionDeclaration

// BuildFunctionTable collects every function declared directly under the
// program root so calls may precede the declaration.
func BuildFunctionTable(prog *ast.Program) (FunctionTable, error) {
	table := make(FunctionTable)
	if err := table.Collect(prog); err != nil {
		return nil, err
	}
	return table, nil
}

// Collect adds the top-level functions of prog to the table. A name that is
// already present is an error and leaves the table unchanged.
func (t FunctionTable) Collect(prog *ast.Program) error {
	fns := prog.Functions()
	seen := make(map[string]*ast.FunctionDeclaration, len(fns))
	for _, fn := range fns {
		name := fn.Name.Name
		prev, ok := t[name]
		if !ok {
			prev, ok = seen[name]
		}
		if ok {
			return errorf(fn.Name, "function %s already declared at %s", name, prev.Pos())
		}
		seen[name] = fn
	}
	for name, fn := range seen {
		t[name] = fn
	}
	return nil
}

func (t FunctionTable) Lookup(name string) (*ast.FunctionDeclaration, bool) {
	fn, ok := t[name]
	return fn, ok
}

func (t FunctionTable) Clone() FunctionTable {
	out := make(FunctionTable, len(t))
	for name, fn := range t {
		out[name] = fn
	}
	return out
}
