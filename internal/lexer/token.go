// Package lexer implements the tokenizer for the engine's default
// ECMAScript front end (SPEC_FULL.md §0/§2/§6: "a concrete ESTree-producing
// front end kept in-tree as the engine's default parser plug-in").
//
// Grounded on the teacher's internal/lexer (a hand-written scanner over a
// rune slice with a lookahead buffer): kept the same scan-and-classify
// shape, rebuilt entirely for ECMAScript's token grammar (DWScript's
// Pascal-style keywords/operators/string quoting do not apply).
package lexer

// Kind discriminates a Token's lexical category.
type Kind int

const (
	EOF Kind = iota
	Identifier
	Keyword
	Number
	BigIntLiteral
	String
	Template // raw template-literal text between backticks, substitutions unparsed
	Punct
)

// Token is one lexical unit with its source span.
type Token struct {
	Kind   Kind
	Value  string // identifier name, keyword text, punctuator text, or raw literal text
	Line   int
	Column int
	Start  int
	End    int
}

var keywords = map[string]bool{
	"var": true, "let": true, "const": true, "function": true, "return": true,
	"if": true, "else": true, "for": true, "while": true, "do": true,
	"break": true, "continue": true, "throw": true, "try": true, "catch": true,
	"finally": true, "switch": true, "case": true, "default": true, "new": true,
	"delete": true, "typeof": true, "void": true, "in": true, "instanceof": true,
	"this": true, "true": true, "false": true, "null": true, "undefined": true,
	"with": true,
}

// IsKeyword reports whether name is a reserved word of the supported
// subset (§GLOSSARY "ReservedWord").
func IsKeyword(name string) bool { return keywords[name] }
