// Package ast defines the ESTree-compatible Abstract Syntax Tree node types
// consumed by the evaluator. Any ECMAScript-aware parser may produce this
// shape; internal/parser is the engine's default front end, not the only
// legal one (see engine.Engine.RunProgram).
package ast

// Position is a 1-indexed line/column source location.
type Position struct {
	Line   int
	Column int
}

// Loc is the start/end source span of a node, matching ESTree's `loc`.
type Loc struct {
	Start Position
	End   Position
}

// Node is the base interface every AST node satisfies. Kind is the
// ESTree-style discriminator the evaluator's syntax-directed dispatch
// switches on (see pkg/evaluator.Dispatch).
type Node interface {
	Kind() string
	Location() Loc
	// Range returns the node's [Start, Stop) offsets as stored on the node;
	// function objects do not record their source text from it.
	Range() [2]int
}

// base is embedded by every concrete node to provide Location/Range.
type base struct {
	Loc   Loc
	Start int
	Stop  int
}

func (b base) Location() Loc { return b.Loc }
func (b base) Range() [2]int { return [2]int{b.Start, b.Stop} }

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Pattern is a binding target: Identifier, ArrayPattern, ObjectPattern,
// AssignmentPattern, or RestElement. Used by parameter lists, variable
// declarators, and destructuring assignment.
type Pattern interface {
	Node
	patternNode()
}

// Program is the root node produced by parsing a script (module support is
// named but not specified further, per the distilled spec's Non-goals).
type Program struct {
	base
	Body []Statement
}

func (*Program) Kind() string { return "Program" }
