// Package engine wires the lexer/parser front end, the evaluator, and the
// builtin plugin set into a single invokable interpreter -- the host-facing
// entry point that pkg/evaluator's syntax-directed handlers never provide
// on their own.
//
// Grounded on the teacher's cmd/dwscript/cmd runScript pipeline
// (lex -> parse -> (semantic) -> interp.Run), generalised into a reusable
// type instead of inline RunE body, so both cmd/ecma and embedding hosts
// share one construction path.
package engine

import (
	"fmt"

	"github.com/cwbudde/go-ecma/internal/parser"
	"github.com/cwbudde/go-ecma/pkg/ast"
	"github.com/cwbudde/go-ecma/pkg/builtins"
	"github.com/cwbudde/go-ecma/pkg/completion"
	"github.com/cwbudde/go-ecma/pkg/evaluator"
	"github.com/cwbudde/go-ecma/pkg/execctx"
	"github.com/cwbudde/go-ecma/pkg/plugin"
	"github.com/cwbudde/go-ecma/pkg/realm"
	"github.com/cwbudde/go-ecma/pkg/value"
)

// Engine hosts one realm/evaluator pair and runs scripts against it,
// honouring whatever global bindings earlier scripts left behind (§5 "a
// host may evaluate several scripts against one realm").
type Engine struct {
	Realm     *realm.Realm
	Evaluator *evaluator.Evaluator
	installer *plugin.Installer
}

// Option configures an Engine at construction time.
type Option func(*Engine) error

// New creates an Engine with the default builtin plugin set installed
// (§6/§7), applying any additional options in order.
func New(opts ...Option) (*Engine, error) {
	r := realm.New()
	ev := evaluator.New(r)
	e := &Engine{Realm: r, Evaluator: ev, installer: plugin.NewInstaller()}

	if err := builtins.InstallAll(ev, r); err != nil {
		return nil, fmt.Errorf("engine: installing builtins: %w", err)
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// WithPlugin installs an additional host-supplied plugin (§6 "a host may
// install feature plug-ins"), after the default builtin set.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Engine) error {
		return e.Install(p)
	}
}

// Install installs p (and its dependencies) against this engine's
// realm/evaluator, idempotently.
func (e *Engine) Install(p plugin.Plugin) error {
	return e.installer.Install(e.Evaluator, e.Realm, p)
}

// RunScript parses source and evaluates it as a Script (§4.8
// ScriptEvaluation): pushes a global execution context, runs
// GlobalDeclarationInstantiation, evaluates the program body, drains the
// job queue, then pops the context.
//
// filename is used only for parse error messages.
func (e *Engine) RunScript(filename, source string) (value.Value, error) {
	program, err := parser.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return e.RunProgram(program)
}

// RunProgram evaluates an already-parsed Program against this engine's
// global environment.
func (e *Engine) RunProgram(program *ast.Program) (value.Value, error) {
	ev := e.Evaluator
	ctx := &execctx.Context{
		Realm:      e.Realm,
		LexicalEnv: e.Realm.GlobalEnv,
		VarEnv:     e.Realm.GlobalEnv,
	}
	ev.Contexts.Push(ctx)
	defer ev.Contexts.Pop()

	if err := ev.GlobalDeclarationInstantiation(e.Realm.GlobalEnv, program.Body); err != nil {
		return nil, err
	}

	c, err := ev.Eval(program)
	if err != nil {
		return nil, err
	}
	if c.K == completion.Throw {
		return nil, &evaluator.ThrownError{Value: c.Val}
	}
	v, err := ev.GetValue(c)
	if err != nil {
		return nil, err
	}
	ev.Jobs.Drain()
	return v, nil
}

// Throw is a convenience wrapper over Evaluator.Throw for host code that
// needs to synthesize a script exception (e.g. argument validation in a
// host-supplied native function).
func (e *Engine) Throw(name, message string) error {
	c := e.Evaluator.Throw(name, message)
	return &evaluator.ThrownError{Value: c.Val}
}

// Intrinsic looks up a well-known intrinsic object by name (e.g.
// "%Array.prototype%"), for host code that needs to extend a builtin
// prototype after engine construction.
func (e *Engine) Intrinsic(name string) (*value.Object, bool) {
	return e.Realm.Intrinsic(name)
}

// Global returns the realm's global object, for host code that wants to
// inspect or add bindings directly.
func (e *Engine) Global() *value.Object {
	return e.Realm.GlobalObject
}
