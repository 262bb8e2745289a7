// Package execctx implements the execution context stack (§3.9): each
// running piece of code (script, function call, builtin call) pushes a
// context carrying its current realm, lexical/variable environments, and
// (for function code) its function object; control returns by popping.
package execctx

import (
	"github.com/cwbudde/go-ecma/pkg/environment"
	"github.com/cwbudde/go-ecma/pkg/realm"
	"github.com/cwbudde/go-ecma/pkg/value"
)

// Context is a single execution context (§3.9). Builtin contexts (native
// Go functions called as [[Call]]) carry no AST node and no variable
// environment of their own; they run in the calling realm with LexicalEnv
// left nil.
type Context struct {
	Realm *realm.Realm

	LexicalEnv environment.Record
	VarEnv     environment.Record

	// Function is the running function object, nil for script/global code.
	Function *value.Object

	// Node is the AST node currently being evaluated, used to build stack
	// traces and Error.stack (§3.9, §7).
	Node any

	// GeneratorState, when non-nil, marks this as a suspended generator
	// context's saved state (§4.9); resumption reinstalls it rather than
	// pushing a fresh context.
	GeneratorState any
}

// Stack is the execution context stack (§3.9): a LIFO of Contexts, with the
// running context always Stack.Top().
type Stack struct {
	frames []*Context
}

// NewStack creates an empty context stack.
func NewStack() *Stack { return &Stack{} }

// Push installs ctx as the new running context.
func (s *Stack) Push(ctx *Context) { s.frames = append(s.frames, ctx) }

// Pop removes and returns the running context. Popping an empty stack is a
// caller bug and panics, mirroring the spec's invariant that the context
// stack is never empty while code executes.
func (s *Stack) Pop() *Context {
	n := len(s.frames)
	ctx := s.frames[n-1]
	s.frames = s.frames[:n-1]
	return ctx
}

// Top returns the running context, or nil if the stack is empty (no code is
// currently executing).
func (s *Stack) Top() *Context {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// Len reports the current stack depth. The stack itself places no limit on
// its depth.
func (s *Stack) Len() int { return len(s.frames) }

// Frames returns a snapshot of the stack from innermost to outermost,
// suitable for building an Error's stack trace string.
func (s *Stack) Frames() []*Context {
	out := make([]*Context, len(s.frames))
	for i, f := range s.frames {
		out[i] = s.frames[len(s.frames)-1-i]
	}
	return out
}
