// Package evaluator implements the syntax-directed evaluator (§4.3–§4.9,
// L4): a pluggable dispatch table over AST node kinds, the core expression
// and statement handlers, declaration instantiation, and ordinary/arrow/
// bound function call-and-construct semantics.
package evaluator

import (
	"github.com/cwbudde/go-ecma/pkg/ast"
	"github.com/cwbudde/go-ecma/pkg/completion"
	"github.com/cwbudde/go-ecma/pkg/value"
)

// Op names one of the named syntax-directed operations (§4.3).
type Op string

const (
	OpEvaluation             Op = "Evaluation"
	OpBindingInitialization  Op = "BindingInitialization"
	OpLabelledEvaluation     Op = "LabelledEvaluation"
	OpNamedEvaluation        Op = "NamedEvaluation"
	OpArgumentListEvaluation Op = "ArgumentListEvaluation"
	OpInstantiateFunction    Op = "InstantiateFunctionObject"
)

// napMarker is the payload of the NotApplicable sentinel completion
// (§4.3, §9 dispatch re-architecture note): a handler returns it to mean
// "try the next handler registered for (op, kind)".
type napMarker struct{}

func (napMarker) Kind() value.Kind { return value.KindUndefined }
func (napMarker) GoString() string { return "<not-applicable>" }

// NotApplicable is the sentinel completion signalling a handler does not
// apply to the given node.
var NotApplicable = completion.Record{Val: napMarker{}}

func isNotApplicable(r completion.Record) bool {
	_, ok := r.Val.(napMarker)
	return ok && r.Ref == nil
}

// Handler is one registered behaviour for a given (Op, AST node kind)
// pair. extra carries operation-specific parameters (e.g. the label set
// for LabelledEvaluation, the rhs value for BindingInitialization, the
// name for NamedEvaluation). Returning NotApplicable causes the dispatcher
// to try the next handler; any other return (including a normal empty
// completion) is final.
type Handler func(ev *Evaluator, node ast.Node, extra ...any) (completion.Record, error)

// Dispatch is the per-engine (op, node-kind) → ordered handler list table
// (§4.3, §9): plug-ins register additional handlers without touching a
// core switch statement.
type Dispatch struct {
	table map[Op]map[string][]Handler
}

// NewDispatch creates an empty dispatch table.
func NewDispatch() *Dispatch {
	return &Dispatch{table: make(map[Op]map[string][]Handler)}
}

// Register appends h to the handler chain for (op, kind). Handlers
// registered earlier are tried first.
func (d *Dispatch) Register(op Op, kind string, h Handler) {
	if d.table[op] == nil {
		d.table[op] = make(map[string][]Handler)
	}
	d.table[op][kind] = append(d.table[op][kind], h)
}

// Invoke runs the handler chain for (op, node.Kind()) in registration
// order, returning the first non-NotApplicable result. If every handler
// returns NotApplicable (or none are registered), Invoke itself returns
// NotApplicable so callers can distinguish "no handler" from "handler
// produced empty".
func (d *Dispatch) Invoke(ev *Evaluator, op Op, node ast.Node, extra ...any) (completion.Record, error) {
	handlers := d.table[op][node.Kind()]
	for _, h := range handlers {
		res, err := h(ev, node, extra...)
		if err != nil {
			return completion.Record{}, err
		}
		if !isNotApplicable(res) {
			return res, nil
		}
	}
	return NotApplicable, nil
}
