package interpreter

import (
	"github.com/YulinWu/interpreter/pkg/ast"
	"github.com/YulinWu/interpreter/pkg/runtime"
	"github.com/YulinWu/interpreter/pkg/symtab"
	"github.com/YulinWu/interpreter/pkg/types"
)

// callFunction evaluates the arguments in the caller's scope, then runs the
// body against a fresh scope stack whose only frame holds the parameters.
func (i *Interpreter) callFunction(call *ast.FunctionCall) (runtime.Value, error) {
	fn, ok := i.functions.Lookup(call.Callee.Name)
	if !ok {
		return nil, internalError(call, "function %s is not declared", call.Callee.Name)
	}
	if len(call.Arguments) != len(fn.Params) {
		return nil, internalError(call, "function %s expects %d arguments, got %d", fn.Name.Name, len(fn.Params), len(call.Arguments))
	}
	args := make([]runtime.Value, len(call.Arguments))
	for n, arg := range call.Arguments {
		val, err := i.evaluate(arg)
		if err != nil {
			return nil, err
		}
		args[n] = val
	}

	if i.depth >= i.maxCallDepth {
		return nil, runtimeErrorf(call, "call depth exceeded (%d)", i.maxCallDepth)
	}
	i.depth++
	caller := i.scope
	callee := symtab.New[runtime.Value]()
	callee.EnterScope()
	i.scope = callee
	defer func() {
		i.scope = caller
		i.depth--
	}()

	for n, param := range fn.Params {
		if err := i.define(param.Name, args[n]); err != nil {
			return nil, err
		}
	}
	err := i.executeStatements(fn.Body.Body)
	if ret, ok := err.(returnSignal); ok {
		if ret.value == nil {
			return runtime.VoidValue{}, nil
		}
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}
	if fn.ReturnType != types.Void {
		return nil, runtimeErrorf(call, "function %s ended without returning a value", fn.Name.Name)
	}
	return runtime.VoidValue{}, nil
}
