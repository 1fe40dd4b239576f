// Package driver sequences the passes over a source file and carries the
// configuration, manifest and diagnostics shared by the CLI and the REPL.
package driver

import (
	"fmt"
	"io"
	"os"

	"github.com/YulinWu/interpreter/pkg/ast"
	"github.com/YulinWu/interpreter/pkg/interpreter"
	"github.com/YulinWu/interpreter/pkg/parser"
	"github.com/YulinWu/interpreter/pkg/semantic"
	"github.com/YulinWu/interpreter/pkg/typechecker"
)

// Program is a parsed and checked source file, ready to execute.
type Program struct {
	AST       *ast.Program
	Functions semantic.FunctionTable
	Types     typechecker.InferenceMap
	Warnings  []semantic.Warning
}

// Compile runs every static pass: parsing, function table construction,
// semantic analysis and type assignment. The returned program is non-nil
// whenever parsing succeeded, so warnings found before a later failure are
// still available.
func Compile(src string) (*Program, error) {
	tree, err := parser.ParseProgram(src)
	if err != nil {
		return nil, err
	}
	prog := &Program{AST: tree}
	functions, err := semantic.BuildFunctionTable(tree)
	if err != nil {
		return prog, err
	}
	prog.Functions = functions
	prog.Warnings, err = semantic.NewAnalyzer(functions).Analyze(tree)
	if err != nil {
		return prog, err
	}
	prog.Types, err = typechecker.Check(tree, functions)
	if err != nil {
		return prog, err
	}
	return prog, nil
}

// Options configures Run.
type Options struct {
	// Path labels diagnostics; it is not read.
	Path   string
	Stdout io.Writer
	Stderr io.Writer
	Config Config
}

// Run compiles and executes src. Warnings go to opts.Stderr unless quiet;
// the returned error is the first fatal diagnostic.
func Run(src string, opts Options) error {
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	prog, err := Compile(src)
	if prog != nil {
		ReportWarnings(stderr, opts.Path, prog.Warnings, opts.Config)
	}
	if err != nil {
		return err
	}
	if opts.Config.WarningsAsErrors && len(prog.Warnings) > 0 {
		return &WarningsError{Count: len(prog.Warnings)}
	}
	interp := interpreter.New(prog.Functions, prog.Types,
		interpreter.WithOutput(stdout),
		interpreter.WithMaxCallDepth(opts.Config.MaxCallDepth))
	return interp.Run(prog.AST)
}

// RunFile reads path, or path as of rev when rev is not empty, and runs it.
func RunFile(path, rev string, opts Options) error {
	src, err := ReadSource(path, rev)
	if err != nil {
		return err
	}
	if opts.Path == "" {
		opts.Path = path
		if rev != "" {
			opts.Path = fmt.Sprintf("%s@%s", path, rev)
		}
	}
	return Run(src, opts)
}

// ReadSource loads a script from disk or from git history.
func ReadSource(path, rev string) (string, error) {
	if rev != "" {
		return ReadAtRevision(path, rev)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// ReportWarnings writes one line per warning unless cfg is quiet. Warnings
// that will fail the run are printed even when quiet.
func ReportWarnings(w io.Writer, path string, warnings []semantic.Warning, cfg Config) {
	if cfg.Quiet && !cfg.WarningsAsErrors {
		return
	}
	for _, warning := range warnings {
		fmt.Fprintln(w, DescribeDiagnostic(WarningDiagnostic(path, warning)))
	}
}
