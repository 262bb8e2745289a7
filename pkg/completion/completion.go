// Package completion implements the Completion Record (§3.5), the sole
// control-flow currency of the evaluator (§4.1): every core operation
// returns one, and abrupt completions short-circuit surrounding operations
// until a construct that targets their kind consumes them.
//
// Grounded on the teacher's runtime.ControlFlow (internal/interp/runtime/
// execution_context.go), generalised from a bare break/continue/exit/return
// flag into a value-carrying record with an explicit target label, per the
// distilled spec's richer completion model.
package completion

import "github.com/cwbudde/go-ecma/pkg/value"

// Kind discriminates a Completion's control-flow meaning.
type Kind int

const (
	Normal Kind = iota
	Throw
	Return
	Break
	Continue
)

func (k Kind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Throw:
		return "throw"
	case Return:
		return "return"
	case Break:
		return "break"
	case Continue:
		return "continue"
	default:
		return "unknown"
	}
}

// empty is the sentinel EMPTY value (§3.5): "no value produced", distinct
// from `undefined`. Statement lists use UpdateEmpty to paper over it with
// the last non-empty result.
type emptyT struct{}

func (emptyT) Kind() value.Kind { return value.KindUndefined }
func (emptyT) GoString() string { return "<empty>" }

// Empty is the completion-record EMPTY sentinel.
var Empty value.Value = emptyT{}

// IsEmpty reports whether v is the EMPTY sentinel.
func IsEmpty(v value.Value) bool {
	_, ok := v.(emptyT)
	return ok
}

// Record is a Completion: a Kind tag, a carried Value (which may be EMPTY
// for Normal, or a Reference produced by evaluating an expression to a
// reference rather than a value — see pkg/completion.Reference), and for
// Break/Continue an optional Target label (empty string means unlabeled).
type Record struct {
	K      Kind
	Val    value.Value
	Ref    *Reference // non-nil when this Normal completion carries a Reference, not a Value
	Target string
}

// NormalValue builds a Normal completion carrying a plain value.
func NormalValue(v value.Value) Record { return Record{K: Normal, Val: v} }

// NormalEmpty builds a Normal completion carrying EMPTY.
func NormalEmpty() Record { return Record{K: Normal, Val: Empty} }

// NormalRef builds a Normal completion carrying a Reference (§4.3:
// Evaluation returns Normal(value | reference | EMPTY)).
func NormalRef(r *Reference) Record { return Record{K: Normal, Ref: r} }

// ThrowCompletion builds an abrupt Throw completion carrying the thrown
// value (always an Error object per convention, but the algorithm permits
// any value, e.g. `throw 'e'`).
func ThrowCompletion(v value.Value) Record { return Record{K: Throw, Val: v} }

// ReturnCompletion builds an abrupt Return completion.
func ReturnCompletion(v value.Value) Record { return Record{K: Return, Val: v} }

// BreakCompletion builds an abrupt Break completion, optionally targeting a
// label.
func BreakCompletion(target string) Record { return Record{K: Break, Val: Empty, Target: target} }

// ContinueCompletion builds an abrupt Continue completion, optionally
// targeting a label.
func ContinueCompletion(target string) Record {
	return Record{K: Continue, Val: Empty, Target: target}
}

// IsAbrupt reports whether this completion is not Normal (§3.5).
func (r Record) IsAbrupt() bool { return r.K != Normal }

// UpdateEmpty substitutes an EMPTY value in r with prior, so that statement
// lists preserve the last non-empty result (§4.1). Only applies when r's
// carried value is EMPTY; an abrupt completion's kind/target are untouched.
func UpdateEmpty(r Record, prior value.Value) Record {
	if r.Ref == nil && IsEmpty(r.Val) {
		r.Val = prior
	}
	return r
}
