package builtins

import (
	"math"
	"math/rand"

	"github.com/cwbudde/go-ecma/pkg/evaluator"
	"github.com/cwbudde/go-ecma/pkg/realm"
	"github.com/cwbudde/go-ecma/pkg/value"
)

// MathPlugin installs the global Math object (§7.2), a plain ordinary
// object (not a constructor) carrying constant properties and native
// methods over float64 arithmetic from the standard math package --
// grounded on the teacher's math-function builtin group, which likewise
// wraps Go's math package one function at a time.
type MathPlugin struct{}

func (MathPlugin) ID() string          { return "math" }
func (MathPlugin) DependsOn() []string { return []string{"object"} }

func (MathPlugin) Install(ev *evaluator.Evaluator, r *realm.Realm) error {
	objectProto, _ := r.Intrinsic("%Object.prototype%")
	m := value.NewObject(objectProto)

	m.DefineValue("PI", value.Number(math.Pi), false)
	m.DefineValue("E", value.Number(math.E), false)
	m.DefineValue("LN2", value.Number(math.Ln2), false)
	m.DefineValue("LN10", value.Number(math.Log(10)), false)
	m.DefineValue("SQRT2", value.Number(math.Sqrt2), false)

	unary := map[string]func(float64) float64{
		"abs": math.Abs, "floor": math.Floor, "ceil": math.Ceil,
		"trunc": math.Trunc, "sqrt": math.Sqrt, "cbrt": math.Cbrt,
		"log": math.Log, "log2": math.Log2, "log10": math.Log10,
		"exp": math.Exp, "sin": math.Sin, "cos": math.Cos, "tan": math.Tan,
		"asin": math.Asin, "acos": math.Acos, "atan": math.Atan,
		"sign": mathSign, "round": mathRound,
	}
	for name, fn := range unary {
		fn := fn
		method(ev, m, name, 1, func(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
			n, err := ev.ToNumber(arg(args, 0))
			if err != nil {
				return nil, err
			}
			return value.Number(fn(float64(n))), nil
		})
	}
	method(ev, m, "max", 2, mathMax)
	method(ev, m, "min", 2, mathMin)
	method(ev, m, "pow", 2, mathPow)
	method(ev, m, "atan2", 2, mathAtan2)
	method(ev, m, "random", 0, func(ev *evaluator.Evaluator, _ value.Value, _ []value.Value) (value.Value, error) {
		return value.Number(rand.Float64()), nil
	})

	defineGlobal(r, "Math", m)
	return nil
}

func mathSign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return x
	}
}

func mathRound(x float64) float64 { return math.Floor(x + 0.5) }

func mathMax(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	best := math.Inf(-1)
	for _, a := range args {
		n, err := ev.ToNumber(a)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(float64(n)) {
			return value.Number(nan()), nil
		}
		if float64(n) > best {
			best = float64(n)
		}
	}
	return value.Number(best), nil
}

func mathMin(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	best := math.Inf(1)
	for _, a := range args {
		n, err := ev.ToNumber(a)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(float64(n)) {
			return value.Number(nan()), nil
		}
		if float64(n) < best {
			best = float64(n)
		}
	}
	return value.Number(best), nil
}

func mathPow(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	base, err := ev.ToNumber(arg(args, 0))
	if err != nil {
		return nil, err
	}
	exp, err := ev.ToNumber(arg(args, 1))
	if err != nil {
		return nil, err
	}
	return value.Number(math.Pow(float64(base), float64(exp))), nil
}

func mathAtan2(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	y, err := ev.ToNumber(arg(args, 0))
	if err != nil {
		return nil, err
	}
	x, err := ev.ToNumber(arg(args, 1))
	if err != nil {
		return nil, err
	}
	return value.Number(math.Atan2(float64(y), float64(x))), nil
}
