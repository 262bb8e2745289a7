package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cwbudde/go-ecma/internal/lexer"
	"github.com/cwbudde/go-ecma/internal/parser"
)

func TestFormatIncludesSourceLineAndCaret(t *testing.T) {
	source := "let x = ;\n"
	e := NewCompilerError(1, 9, "unexpected ';'", source, "script.js")
	got := e.Format(false)
	if !strings.Contains(got, "script.js:1:9") {
		t.Errorf("Format() missing file:line:col header: %q", got)
	}
	if !strings.Contains(got, "let x = ;") {
		t.Errorf("Format() missing source line: %q", got)
	}
	if !strings.Contains(got, "^") {
		t.Errorf("Format() missing caret: %q", got)
	}
}

func TestFormatWithoutFileOmitsFileName(t *testing.T) {
	e := NewCompilerError(2, 1, "boom", "a\nb\n", "")
	got := e.Format(false)
	if !strings.HasPrefix(got, "2:1: boom") {
		t.Errorf("Format() without a file name = %q, want it to start with \"2:1: boom\"", got)
	}
}

func TestFormatWithoutSourceSkipsCaret(t *testing.T) {
	e := NewCompilerError(1, 1, "boom", "", "f.js")
	got := e.Format(false)
	if strings.Contains(got, "^") {
		t.Errorf("Format() with no source should not draw a caret: %q", got)
	}
}

func TestFromErrorAdaptsLexError(t *testing.T) {
	lexErr := &lexer.LexError{Line: 3, Column: 5, Msg: "unterminated string"}
	wrapped := fmt.Errorf("wrapped: %w", lexErr)
	ce := FromError(wrapped, "irrelevant", "f.js")
	if ce.Line != 3 || ce.Column != 5 || ce.Message != "unterminated string" {
		t.Errorf("FromError(LexError) = %+v, want Line=3 Column=5 Message=%q", ce, "unterminated string")
	}
}

func TestFromErrorAdaptsSyntaxError(t *testing.T) {
	synErr := &parser.SyntaxError{Line: 7, Column: 2, Msg: "expected expression"}
	ce := FromError(synErr, "irrelevant", "f.js")
	if ce.Line != 7 || ce.Column != 2 || ce.Message != "expected expression" {
		t.Errorf("FromError(SyntaxError) = %+v, want Line=7 Column=2 Message=%q", ce, "expected expression")
	}
}

func TestFromErrorFallsBackForUnknownErrors(t *testing.T) {
	ce := FromError(fmt.Errorf("plain failure"), "src", "f.js")
	if ce.Line != 0 || ce.Column != 0 || ce.Message != "plain failure" {
		t.Errorf("FromError(plain) = %+v, want a positionless CompilerError", ce)
	}
}
