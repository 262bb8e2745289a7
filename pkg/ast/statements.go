package ast

func (*ExpressionStatement) statementNode() {}
func (*BlockStatement) statementNode()      {}
func (*EmptyStatement) statementNode()      {}
func (*VariableDeclaration) statementNode() {}
func (*IfStatement) statementNode()         {}
func (*ForStatement) statementNode()        {}
func (*ForInStatement) statementNode()      {}
func (*ForOfStatement) statementNode()      {}
func (*WhileStatement) statementNode()      {}
func (*DoWhileStatement) statementNode()    {}
func (*BreakStatement) statementNode()      {}
func (*ContinueStatement) statementNode()   {}
func (*ReturnStatement) statementNode()     {}
func (*ThrowStatement) statementNode()      {}
func (*TryStatement) statementNode()        {}
func (*SwitchStatement) statementNode()     {}
func (*LabeledStatement) statementNode()    {}
func (*WithStatement) statementNode()       {}
func (*FunctionDeclaration) statementNode() {}

// ExpressionStatement is a bare expression used as a statement.
type ExpressionStatement struct {
	base
	Expr Expression
}

func (*ExpressionStatement) Kind() string { return "ExpressionStatement" }

// BlockStatement is `{ stmts }` — the unit on which
// BlockDeclarationInstantiation (§4.5) runs.
type BlockStatement struct {
	base
	Body []Statement
}

func (*BlockStatement) Kind() string { return "BlockStatement" }

// EmptyStatement is a bare `;`.
type EmptyStatement struct{ base }

func (*EmptyStatement) Kind() string { return "EmptyStatement" }

// VariableDeclaratorNode is one `name = init` entry of a VariableDeclaration.
type VariableDeclaratorNode struct {
	base
	ID   Pattern
	Init Expression // nil if no initializer
}

func (*VariableDeclaratorNode) Kind() string { return "VariableDeclarator" }

// DeclKind is var | let | const, governing mutability and TDZ per §3.6/§4.2.
type DeclKind string

const (
	DeclVar   DeclKind = "var"
	DeclLet   DeclKind = "let"
	DeclConst DeclKind = "const"
)

// VariableDeclaration is `var|let|const a = 1, b;`.
type VariableDeclaration struct {
	base
	DKind        DeclKind
	Declarations []*VariableDeclaratorNode
}

func (*VariableDeclaration) Kind() string { return "VariableDeclaration" }

// IfStatement is `if (test) cons else alt?`.
type IfStatement struct {
	base
	Test       Expression
	Consequent Statement
	Alternate  Statement // nil if no else clause
}

func (*IfStatement) Kind() string { return "IfStatement" }

// ForStatement is the C-style `for (init; test; update) body`. Init may be a
// *VariableDeclaration, an Expression, or nil.
type ForStatement struct {
	base
	Init   Node
	Test   Expression
	Update Expression
	Body   Statement
}

func (*ForStatement) Kind() string { return "ForStatement" }

// ForInStatement is `for (left in right) body`.
type ForInStatement struct {
	base
	Left  Node // *VariableDeclaration or Pattern
	Right Expression
	Body  Statement
}

func (*ForInStatement) Kind() string { return "ForInStatement" }

// ForOfStatement is `for (left of right) body`, optionally `for await`.
type ForOfStatement struct {
	base
	Left  Node
	Right Expression
	Body  Statement
	Await bool
}

func (*ForOfStatement) Kind() string { return "ForOfStatement" }

// WhileStatement is `while (test) body`.
type WhileStatement struct {
	base
	Test Expression
	Body Statement
}

func (*WhileStatement) Kind() string { return "WhileStatement" }

// DoWhileStatement is `do body while (test);`.
type DoWhileStatement struct {
	base
	Body Statement
	Test Expression
}

func (*DoWhileStatement) Kind() string { return "DoWhileStatement" }

// BreakStatement is `break label?;`.
type BreakStatement struct {
	base
	Label string // empty if unlabeled
}

func (*BreakStatement) Kind() string { return "BreakStatement" }

// ContinueStatement is `continue label?;`.
type ContinueStatement struct {
	base
	Label string
}

func (*ContinueStatement) Kind() string { return "ContinueStatement" }

// ReturnStatement is `return expr?;`.
type ReturnStatement struct {
	base
	Argument Expression // nil if bare `return;`
}

func (*ReturnStatement) Kind() string { return "ReturnStatement" }

// ThrowStatement is `throw expr;`.
type ThrowStatement struct {
	base
	Argument Expression
}

func (*ThrowStatement) Kind() string { return "ThrowStatement" }

// CatchClause is the `catch (param?) { body }` part of a TryStatement.
type CatchClause struct {
	base
	Param Pattern // nil for parameterless catch
	Body  *BlockStatement
}

func (*CatchClause) Kind() string { return "CatchClause" }

// TryStatement is `try { } catch { } finally { }`; Handler and Finalizer
// are independently optional per §4.5.
type TryStatement struct {
	base
	Block     *BlockStatement
	Handler   *CatchClause
	Finalizer *BlockStatement
}

func (*TryStatement) Kind() string { return "TryStatement" }

// SwitchCase is one `case test:`/`default:` arm.
type SwitchCase struct {
	base
	Test       Expression // nil for `default`
	Consequent []Statement
}

func (*SwitchCase) Kind() string { return "SwitchCase" }

// SwitchStatement is `switch (disc) { cases }`.
type SwitchStatement struct {
	base
	Discriminant Expression
	Cases        []*SwitchCase
}

func (*SwitchStatement) Kind() string { return "SwitchStatement" }

// LabeledStatement is `label: stmt`.
type LabeledStatement struct {
	base
	Label string
	Body  Statement
}

func (*LabeledStatement) Kind() string { return "LabeledStatement" }

// WithStatement is `with (obj) body` — backed by an Object environment
// record (§3.6).
type WithStatement struct {
	base
	Object Expression
	Body   Statement
}

func (*WithStatement) Kind() string { return "WithStatement" }

// FunctionDeclaration is `function name(params) { body }`.
type FunctionDeclaration struct {
	base
	ID        *Identifier
	Params    []Pattern
	Body      *BlockStatement
	Generator bool
	Async     bool
}

func (*FunctionDeclaration) Kind() string { return "FunctionDeclaration" }
