// Package errors formats source-level syntax errors (lexer/parser
// failures) with source context and a caret pointing at the offending
// column, for display at the cmd/ecma CLI boundary.
//
// Grounded on the teacher's internal/errors package (CompilerError: source
// + position + caret-annotated Format), kept almost verbatim since
// "report a line/column failure against its source line" is identical
// between a Pascal and an ECMAScript front end — only the error types it
// adapts (internal/lexer.LexError, internal/parser.SyntaxError) changed.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/cwbudde/go-ecma/internal/lexer"
	"github.com/cwbudde/go-ecma/internal/parser"
)

// CompilerError is a single lexer/parser failure with enough context to
// render a caret-annotated source excerpt.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Line    int
	Column  int
}

// NewCompilerError builds a CompilerError directly from a line/column.
func NewCompilerError(line, column int, message, source, file string) *CompilerError {
	return &CompilerError{Message: message, Source: source, File: file, Line: line, Column: column}
}

// FromError adapts a lexer or parser error (however deeply wrapped with
// fmt.Errorf's %w) into a CompilerError, falling back to a positionless
// message for any other error type.
func FromError(err error, source, file string) *CompilerError {
	var lexErr *lexer.LexError
	if stderrors.As(err, &lexErr) {
		return NewCompilerError(lexErr.Line, lexErr.Column, lexErr.Msg, source, file)
	}
	var synErr *parser.SyntaxError
	if stderrors.As(err, &synErr) {
		return NewCompilerError(synErr.Line, synErr.Column, synErr.Msg, source, file)
	}
	return NewCompilerError(0, 0, err.Error(), source, file)
}

// Error implements the error interface.
func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders the error with a source-line excerpt and caret. If color
// is true, ANSI escapes highlight the caret and message (the same "dumb"
// always-on escapes the teacher used, no isatty detection).
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: %s\n", e.File, e.Line, e.Column, e.Message)
	} else {
		fmt.Fprintf(&sb, "%d:%d: %s\n", e.Line, e.Column, e.Message)
	}

	line := e.sourceLine(e.Line)
	if line == "" {
		return strings.TrimSuffix(sb.String(), "\n")
	}

	lineNumStr := fmt.Sprintf("%4d | ", e.Line)
	sb.WriteString(lineNumStr)
	sb.WriteString(line)
	sb.WriteString("\n")

	sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Column-1))
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString("^")
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *CompilerError) sourceLine(n int) string {
	if e.Source == "" || n < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if n > len(lines) {
		return ""
	}
	return lines[n-1]
}
