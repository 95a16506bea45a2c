// Package errors formats static (lex/parse) errors with source context —
// a file/line/column header, the offending source line, and a caret
// pointing at the column — adapted from
// _examples/CWBudde-go-dws/internal/errors/errors.go.
package errors

import (
	"fmt"
	"strings"

	"github.com/solarix95/neoada/internal/token"
)

// CompilerError is a single static error with position and source context.
type CompilerError struct {
	Code    string
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// New creates a CompilerError.
func New(code string, pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Code: code, Pos: pos, Message: message, Source: source, File: file}
}

func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders the error with a source-line excerpt and caret. If color
// is true, ANSI codes highlight the caret and message.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Code)
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors renders every error in errs, separated by blank lines.
func FormatErrors(errs []*CompilerError, color bool) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Format(color)
	}
	return strings.Join(parts, "\n\n")
}

// Positioned is implemented by the lexer's and parser's own error types, so
// FromErrors can recover the code/position they already carry without this
// package importing either of them.
type Positioned interface {
	error
	ErrorCode() string
	Position() token.Position
}

// FromErrors converts accumulated lexer/parser errors into CompilerErrors
// carrying source context, for pretty CLI output.
func FromErrors(errs []error, source, file string) []*CompilerError {
	out := make([]*CompilerError, 0, len(errs))
	for _, err := range errs {
		if p, ok := err.(Positioned); ok {
			out = append(out, New(p.ErrorCode(), p.Position(), err.Error(), source, file))
			continue
		}
		out = append(out, New("Error", token.Position{}, err.Error(), source, file))
	}
	return out
}
