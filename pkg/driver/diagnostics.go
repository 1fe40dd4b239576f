package driver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/YulinWu/interpreter/pkg/ast"
	"github.com/YulinWu/interpreter/pkg/interpreter"
	"github.com/YulinWu/interpreter/pkg/parser"
	"github.com/YulinWu/interpreter/pkg/printer"
	"github.com/YulinWu/interpreter/pkg/semantic"
	"github.com/YulinWu/interpreter/pkg/typechecker"
)

// DiagnosticSeverity captures diagnostic levels.
type DiagnosticSeverity string

const (
	SeverityError   DiagnosticSeverity = "error"
	SeverityWarning DiagnosticSeverity = "warning"
)

// DiagnosticLocation references a source position.
type DiagnosticLocation struct {
	Path   string
	Line   int
	Column int
}

// Diagnostic is a located message from one of the passes.
type Diagnostic struct {
	Severity DiagnosticSeverity
	Stage    string
	Message  string
	Location DiagnosticLocation
}

// ErrorDiagnostic classifies err by the pass that produced it.
func ErrorDiagnostic(path string, err error) Diagnostic {
	diag := Diagnostic{Severity: SeverityError, Message: err.Error(), Location: DiagnosticLocation{Path: path}}
	var (
		syntaxErr   *parser.Error
		semanticErr *semantic.Error
		typeErr     *typechecker.Error
		runtimeErr  *interpreter.RuntimeError
		warnErr     *WarningsError
	)
	switch {
	case errors.As(err, &syntaxErr):
		diag.Stage, diag.Message = "syntax", syntaxErr.Message
		diag.Location.set(syntaxErr.Pos)
	case errors.As(err, &semanticErr):
		diag.Stage, diag.Message = "semantic", semanticErr.Message
		diag.Location.set(semanticErr.Pos)
	case errors.As(err, &typeErr):
		diag.Stage, diag.Message = "type", typeErr.Message
		diag.Location.set(typeErr.Pos)
	case errors.As(err, &runtimeErr):
		diag.Stage, diag.Message = "runtime", runtimeErr.Message
		if runtimeErr.Internal {
			diag.Message = "internal error: " + runtimeErr.Message
		}
		diag.Location.set(runtimeErr.Pos)
	case errors.As(err, &warnErr):
		diag.Message = warnErr.Error()
	}
	return diag
}

// WarningDiagnostic renders w, quoting the expression it refers to.
func WarningDiagnostic(path string, w semantic.Warning) Diagnostic {
	diag := Diagnostic{Severity: SeverityWarning, Message: w.Message, Location: DiagnosticLocation{Path: path}}
	diag.Location.set(w.Pos)
	if expr, ok := w.Node.(ast.Expression); ok {
		diag.Message = fmt.Sprintf("%s: %s", w.Message, printer.Print(expr))
	}
	return diag
}

func (l *DiagnosticLocation) set(pos ast.Position) {
	if pos.IsValid() {
		l.Line, l.Column = pos.Line, pos.Column
	}
}

// DescribeDiagnostic formats a diagnostic for CLI output, for example
// "main.ii:3:5: type error: cannot assign float to int".
func DescribeDiagnostic(diag Diagnostic) string {
	message := strings.TrimSpace(diag.Message)
	label := string(diag.Severity)
	if diag.Stage != "" {
		label = diag.Stage + " " + label
	}
	if location := formatDiagnosticLocation(diag.Location); location != "" {
		return fmt.Sprintf("%s: %s: %s", location, label, message)
	}
	return fmt.Sprintf("%s: %s", label, message)
}

func formatDiagnosticLocation(loc DiagnosticLocation) string {
	path := strings.TrimSpace(loc.Path)
	switch {
	case path != "" && loc.Line > 0 && loc.Column > 0:
		return fmt.Sprintf("%s:%d:%d", path, loc.Line, loc.Column)
	case path != "":
		return path
	case loc.Line > 0 && loc.Column > 0:
		return fmt.Sprintf("%d:%d", loc.Line, loc.Column)
	default:
		return ""
	}
}

// WarningsError stops a run when warnings are treated as errors.
type WarningsError struct {
	Count int
}

func (e *WarningsError) Error() string {
	if e.Count == 1 {
		return "1 warning treated as error"
	}
	return fmt.Sprintf("%d warnings treated as errors", e.Count)
}
