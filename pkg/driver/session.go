package driver

import (
	"io"

	"github.com/YulinWu/interpreter/pkg/ast"
	"github.com/YulinWu/interpreter/pkg/interpreter"
	"github.com/YulinWu/interpreter/pkg/parser"
	"github.com/YulinWu/interpreter/pkg/semantic"
	"github.com/YulinWu/interpreter/pkg/typechecker"
)

// Session evaluates a program one chunk at a time. Variables and functions
// declared by earlier chunks stay visible to later ones.
type Session struct {
	functions semantic.FunctionTable
	analyzer  *semantic.Analyzer
	checker   *typechecker.Checker
	interp    *interpreter.Interpreter
}

func NewSession(cfg Config, out io.Writer) *Session {
	if out == nil {
		out = io.Discard
	}
	functions := make(semantic.FunctionTable)
	checker := typechecker.New(functions)
	return &Session{
		functions: functions,
		analyzer:  semantic.NewAnalyzer(functions),
		checker:   checker,
		interp: interpreter.New(functions, checker.Inferred(),
			interpreter.WithOutput(out),
			interpreter.WithMaxCallDepth(cfg.MaxCallDepth)),
	}
}

// Eval parses, checks and runs src. If any pass fails, the declarations made
// by src are rolled back in every pass so the session stays consistent.
// Writes to array elements made before a runtime failure are kept.
func (s *Session) Eval(src string) ([]semantic.Warning, error) {
	prog, err := parser.ParseProgram(src)
	if err != nil {
		return nil, err
	}
	return s.EvalProgram(prog)
}

// EvalProgram is Eval for an already parsed chunk.
func (s *Session) EvalProgram(prog *ast.Program) (warnings []semantic.Warning, err error) {
	restore := s.checkpoint()
	defer func() {
		if err != nil {
			restore()
		}
	}()

	if err := s.functions.Collect(prog); err != nil {
		return nil, err
	}
	if warnings, err = s.analyzer.Analyze(prog); err != nil {
		return warnings, err
	}
	if err := s.checker.Check(prog); err != nil {
		return warnings, err
	}
	return warnings, s.interp.Run(prog)
}

func (s *Session) checkpoint() (restore func()) {
	functions := s.functions.Clone()
	restoreAnalyzer := s.analyzer.Checkpoint()
	restoreChecker := s.checker.Checkpoint()
	restoreInterp := s.interp.Checkpoint()
	return func() {
		// The table is shared by every pass, so it is trimmed in place.
		for name := range s.functions {
			if _, ok := functions[name]; !ok {
				delete(s.functions, name)
			}
		}
		restoreAnalyzer()
		restoreChecker()
		restoreInterp()
	}
}
