package evaluator

import (
	"github.com/cwbudde/go-ecma/pkg/ast"
	"github.com/cwbudde/go-ecma/pkg/completion"
)

// evalProgram implements ScriptEvaluation's body (§4.8): runs
// GlobalDeclarationInstantiation, then the top-level statement list
// against the global environment already pushed on the context stack by
// the caller (pkg/engine).
func evalProgram(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.Program)
	return ev.evalStatementList(n.Body)
}

// RegisterDefaults wires every built-in expression and statement handler
// into d under OpEvaluation, keyed by AST node kind (§4.3, §9 "plugins
// register additional handlers without touching a core switch").
func RegisterDefaults(d *Dispatch) {
	d.Register(OpEvaluation, "Program", evalProgram)

	d.Register(OpEvaluation, "Literal", evalLiteral)
	d.Register(OpEvaluation, "ThisExpression", evalThis)
	d.Register(OpEvaluation, "Identifier", evalIdentifier)
	d.Register(OpEvaluation, "SequenceExpression", evalSequence)
	d.Register(OpEvaluation, "ArrayExpression", evalArray)
	d.Register(OpEvaluation, "ObjectExpression", evalObject)
	d.Register(OpEvaluation, "FunctionExpression", evalFunctionExpression)
	d.Register(OpEvaluation, "ArrowFunctionExpression", evalArrowFunction)
	d.Register(OpEvaluation, "TemplateLiteral", evalTemplateLiteral)
	d.Register(OpEvaluation, "ConditionalExpression", evalConditional)
	d.Register(OpEvaluation, "LogicalExpression", evalLogical)
	d.Register(OpEvaluation, "UnaryExpression", evalUnary)
	d.Register(OpEvaluation, "UpdateExpression", evalUpdate)
	d.Register(OpEvaluation, "BinaryExpression", evalBinary)
	d.Register(OpEvaluation, "MemberExpression", evalMember)
	d.Register(OpEvaluation, "AssignmentExpression", evalAssignment)
	d.Register(OpEvaluation, "CallExpression", evalCall)
	d.Register(OpEvaluation, "NewExpression", evalNew)

	d.Register(OpEvaluation, "ExpressionStatement", evalExpressionStatement)
	d.Register(OpEvaluation, "EmptyStatement", evalEmptyStatement)
	d.Register(OpEvaluation, "BlockStatement", evalBlockStatement)
	d.Register(OpEvaluation, "VariableDeclaration", evalVariableDeclaration)
	d.Register(OpEvaluation, "IfStatement", evalIfStatement)
	d.Register(OpEvaluation, "WhileStatement", evalWhileStatement)
	d.Register(OpEvaluation, "DoWhileStatement", evalDoWhileStatement)
	d.Register(OpEvaluation, "ForStatement", evalForStatement)
	d.Register(OpEvaluation, "ForOfStatement", evalForOfStatement)
	d.Register(OpEvaluation, "ForInStatement", evalForInStatement)
	d.Register(OpEvaluation, "BreakStatement", evalBreakStatement)
	d.Register(OpEvaluation, "ContinueStatement", evalContinueStatement)
	d.Register(OpEvaluation, "ReturnStatement", evalReturnStatement)
	d.Register(OpEvaluation, "ThrowStatement", evalThrowStatement)
	d.Register(OpEvaluation, "TryStatement", evalTryStatement)
	d.Register(OpEvaluation, "SwitchStatement", evalSwitchStatement)
	d.Register(OpEvaluation, "LabeledStatement", evalLabeledStatement)
	d.Register(OpEvaluation, "WithStatement", evalWithStatement)
	d.Register(OpEvaluation, "FunctionDeclaration", evalFunctionDeclaration)
}
