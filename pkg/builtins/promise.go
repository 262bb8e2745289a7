package builtins

import (
	"github.com/cwbudde/go-ecma/pkg/evaluator"
	"github.com/cwbudde/go-ecma/pkg/realm"
	"github.com/cwbudde/go-ecma/pkg/value"
)

// promiseState tracks a Promise's internal [[PromiseState]]/[[PromiseResult]]
// and reaction lists (§4.9), stored behind the "PromiseInternals" slot.
type promiseState struct {
	status    string // "pending" | "fulfilled" | "rejected"
	result    value.Value
	onFulfill []func(value.Value)
	onReject  []func(value.Value)
}

// PromisePlugin installs Promise, resolving reactions through the
// evaluator's job queue (§4.9 "micro-tasks run after the current
// synchronous evaluation drains") rather than inventing a second
// scheduler.
type PromisePlugin struct{}

func (PromisePlugin) ID() string          { return "promise" }
func (PromisePlugin) DependsOn() []string { return []string{"object", "errors"} }

func (PromisePlugin) Install(ev *evaluator.Evaluator, r *realm.Realm) error {
	objectProto, _ := r.Intrinsic("%Object.prototype%")
	promiseProto := value.NewObject(objectProto)
	promiseProto.ClassName = "Promise"
	r.SetIntrinsic("%Promise.prototype%", promiseProto)

	method(ev, promiseProto, "then", 2, promiseThen)
	method(ev, promiseProto, "catch", 1, promiseCatch)
	method(ev, promiseProto, "finally", 1, promiseFinally)

	promiseCtor := ev.NewNativeConstructor("Promise", 1, promiseCallThrows, promiseConstruct)
	promiseCtor.DefineValue("prototype", promiseProto, false)
	promiseProto.DefineValue("constructor", promiseCtor, false)
	method(ev, promiseCtor, "resolve", 1, promiseResolveStatic)
	method(ev, promiseCtor, "reject", 1, promiseRejectStatic)
	method(ev, promiseCtor, "all", 1, promiseAll)
	defineGlobal(r, "Promise", promiseCtor)
	return nil
}

func newPendingPromise(ev *evaluator.Evaluator) *value.Object {
	proto := mustIntrinsic(ev, "%Promise.prototype%")
	o := value.NewObject(proto)
	o.ClassName = "Promise"
	o.SetSlot("PromiseInternals", &promiseState{status: "pending"})
	return o
}

func stateOf(o *value.Object) *promiseState {
	s, _ := o.Slot("PromiseInternals")
	ps, _ := s.(*promiseState)
	return ps
}

func resolvePromise(ev *evaluator.Evaluator, p *value.Object, v value.Value) {
	ps := stateOf(p)
	if ps == nil || ps.status != "pending" {
		return
	}
	if inner, ok := v.(*value.Object); ok && inner.ClassName == "Promise" {
		promiseThenInternal(ev, inner, func(rv value.Value) { resolvePromise(ev, p, rv) }, func(rv value.Value) { rejectPromise(ev, p, rv) })
		return
	}
	ps.status = "fulfilled"
	ps.result = v
	fns := ps.onFulfill
	ps.onFulfill, ps.onReject = nil, nil
	for _, fn := range fns {
		fn := fn
		ev.Jobs.Enqueue(func() { fn(v) })
	}
}

func rejectPromise(ev *evaluator.Evaluator, p *value.Object, v value.Value) {
	ps := stateOf(p)
	if ps == nil || ps.status != "pending" {
		return
	}
	ps.status = "rejected"
	ps.result = v
	fns := ps.onReject
	ps.onFulfill, ps.onReject = nil, nil
	for _, fn := range fns {
		fn := fn
		ev.Jobs.Enqueue(func() { fn(v) })
	}
}

func promiseThenInternal(ev *evaluator.Evaluator, p *value.Object, onF, onR func(value.Value)) {
	ps := stateOf(p)
	switch ps.status {
	case "pending":
		ps.onFulfill = append(ps.onFulfill, onF)
		ps.onReject = append(ps.onReject, onR)
	case "fulfilled":
		v := ps.result
		ev.Jobs.Enqueue(func() { onF(v) })
	case "rejected":
		v := ps.result
		ev.Jobs.Enqueue(func() { onR(v) })
	}
}

func promiseCallThrows(_ *evaluator.Evaluator, _ value.Value, _ []value.Value) (value.Value, error) {
	return nil, &evaluator.ThrownError{Value: value.NewString("TypeError: Promise constructor cannot be invoked without 'new'")}
}

func promiseConstruct(ev *evaluator.Evaluator, args []value.Value, _ *value.Object) (value.Value, error) {
	executor, ok := arg(args, 0).(*value.Object)
	if !ok || !executor.IsCallable() {
		return nil, &evaluator.ThrownError{Value: value.NewString("TypeError: Promise resolver is not a function")}
	}
	p := newPendingPromise(ev)
	resolveFn := ev.NewNativeFunction("resolve", 1, func(ev *evaluator.Evaluator, _ value.Value, a []value.Value) (value.Value, error) {
		resolvePromise(ev, p, arg(a, 0))
		return value.Undefined, nil
	})
	rejectFn := ev.NewNativeFunction("reject", 1, func(ev *evaluator.Evaluator, _ value.Value, a []value.Value) (value.Value, error) {
		rejectPromise(ev, p, arg(a, 0))
		return value.Undefined, nil
	})
	if _, err := executor.CallAsFunction(value.Undefined, []value.Value{resolveFn, rejectFn}); err != nil {
		if te, ok := err.(*evaluator.ThrownError); ok {
			rejectPromise(ev, p, te.Value)
		} else {
			return nil, err
		}
	}
	return p, nil
}

func promiseThen(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	p, ok := this.(*value.Object)
	if !ok || p.ClassName != "Promise" {
		return nil, &evaluator.ThrownError{Value: value.NewString("TypeError: not a Promise")}
	}
	onFulfilled, _ := arg(args, 0).(*value.Object)
	onRejected, _ := arg(args, 1).(*value.Object)
	result := newPendingPromise(ev)
	promiseThenInternal(ev, p,
		func(v value.Value) { runReaction(ev, result, onFulfilled, v, true) },
		func(v value.Value) { runReaction(ev, result, onRejected, v, false) },
	)
	return result, nil
}

func runReaction(ev *evaluator.Evaluator, result *value.Object, handler *value.Object, v value.Value, wasFulfilled bool) {
	if handler == nil || !handler.IsCallable() {
		if wasFulfilled {
			resolvePromise(ev, result, v)
		} else {
			rejectPromise(ev, result, v)
		}
		return
	}
	r, err := handler.CallAsFunction(value.Undefined, []value.Value{v})
	if err != nil {
		if te, ok := err.(*evaluator.ThrownError); ok {
			rejectPromise(ev, result, te.Value)
			return
		}
		rejectPromise(ev, result, value.NewString(err.Error()))
		return
	}
	resolvePromise(ev, result, r)
}

func promiseCatch(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	return promiseThen(ev, this, []value.Value{value.Undefined, arg(args, 0)})
}

func promiseFinally(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	onFinally, _ := arg(args, 0).(*value.Object)
	wrap := ev.NewNativeFunction("", 1, func(ev *evaluator.Evaluator, _ value.Value, a []value.Value) (value.Value, error) {
		if onFinally != nil && onFinally.IsCallable() {
			if _, err := onFinally.CallAsFunction(value.Undefined, nil); err != nil {
				return nil, err
			}
		}
		return arg(a, 0), nil
	})
	return promiseThen(ev, this, []value.Value{wrap, wrap})
}

func promiseResolveStatic(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	v := arg(args, 0)
	if inner, ok := v.(*value.Object); ok && inner.ClassName == "Promise" {
		return inner, nil
	}
	p := newPendingPromise(ev)
	resolvePromise(ev, p, v)
	return p, nil
}

func promiseRejectStatic(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	p := newPendingPromise(ev)
	rejectPromise(ev, p, arg(args, 0))
	return p, nil
}

func promiseAll(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	iterable, err := ev.ToObject(arg(args, 0))
	if err != nil {
		return nil, err
	}
	n := arrLen(iterable)
	result := newPendingPromise(ev)
	if n == 0 {
		resolvePromise(ev, result, value.NewArray(arrProtoValue(ev), nil))
		return result, nil
	}
	results := make([]value.Value, n)
	remaining := n
	for i := 0; i < n; i++ {
		i := i
		v, err := arrGet(iterable, i)
		if err != nil {
			return nil, err
		}
		item, ok := v.(*value.Object)
		if !ok || item.ClassName != "Promise" {
			p := newPendingPromise(ev)
			resolvePromise(ev, p, v)
			item = p
		}
		promiseThenInternal(ev, item, func(rv value.Value) {
			results[i] = rv
			remaining--
			if remaining == 0 {
				resolvePromise(ev, result, value.NewArray(arrProtoValue(ev), results))
			}
		}, func(rv value.Value) {
			rejectPromise(ev, result, rv)
		})
	}
	return result, nil
}
