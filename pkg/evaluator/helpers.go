package evaluator

import (
	"github.com/cwbudde/go-ecma/pkg/ast"
	"github.com/cwbudde/go-ecma/pkg/completion"
	"github.com/cwbudde/go-ecma/pkg/value"
)

// Eval runs the Evaluation syntax-directed operation on node (§4.3).
func (ev *Evaluator) Eval(node ast.Node) (completion.Record, error) {
	r, err := ev.Dispatch.Invoke(ev, OpEvaluation, node)
	if err != nil {
		return completion.Record{}, err
	}
	if isNotApplicable(r) {
		return completion.Record{}, unsupportedNode(node)
	}
	return r, nil
}

// EvalValue implements the convenience evaluateValue(node) (§4.3):
// Evaluation followed by GetValue, mapping EMPTY to undefined.
func (ev *Evaluator) EvalValue(node ast.Node) (value.Value, *completion.Record, error) {
	c, err := ev.Eval(node)
	if err != nil {
		return nil, nil, err
	}
	if c.IsAbrupt() {
		return nil, &c, nil
	}
	v, err := ev.GetValue(c)
	if err != nil {
		return nil, nil, err
	}
	return v, nil, nil
}

// val is shorthand used throughout the handler bodies below: evaluate node
// to a value, returning early (as a completion) on abrupt completion or
// Go error.
func (ev *Evaluator) val(node ast.Node) (value.Value, completion.Record, bool, error) {
	v, abrupt, err := ev.EvalValue(node)
	if err != nil {
		return nil, completion.Record{}, false, err
	}
	if abrupt != nil {
		return nil, *abrupt, true, nil
	}
	return v, completion.Record{}, false, nil
}

func unsupportedNode(node ast.Node) error {
	return &UnsupportedNodeError{Kind: node.Kind()}
}

// UnsupportedNodeError is an engine error (§7: "unsupported AST" bubbles as
// a host exception, never a throw completion) — raised when no handler in
// the dispatch table claims a node kind.
type UnsupportedNodeError struct{ Kind string }

func (e *UnsupportedNodeError) Error() string { return "evaluator: unsupported node kind " + e.Kind }

// evalStatementList implements the shared "yield the last non-empty
// value" behaviour of statement lists (§4.5), used by Program, BlockStatement
// bodies, and switch-case fallthrough runs.
func (ev *Evaluator) evalStatementList(stmts []ast.Statement) (completion.Record, error) {
	result := completion.NormalEmpty()
	for _, s := range stmts {
		c, err := ev.Eval(s)
		if err != nil {
			return completion.Record{}, err
		}
		c = completion.UpdateEmpty(c, result.Val)
		if c.IsAbrupt() {
			return c, nil
		}
		result = c
	}
	return result, nil
}
