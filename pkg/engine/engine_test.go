package engine

import (
	"testing"

	"github.com/cwbudde/go-ecma/pkg/value"
)

// ============================================================================
// Basic expression/statement evaluation
// ============================================================================

func TestRunScriptArithmetic(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := e.RunScript("<test>", "1 + 2 * 3;")
	if err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	if got != value.Number(7) {
		t.Errorf("1 + 2 * 3 = %v, want 7", got)
	}
}

func TestRunScriptVariablesAndControlFlow(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   value.Value
	}{
		{"let binding", "let x = 5; x;", value.Number(5)},
		{"const binding", "const c = 1; c;", value.Number(1)},
		{"if/else", "let y; if (1 < 2) { y = 'yes'; } else { y = 'no'; } y;", value.NewString("yes")},
		{"while loop accumulates", "let total = 0; let i = 0; while (i < 5) { total = total + i; i = i + 1; } total;", value.Number(10)},
		{"for loop", "let total = 0; for (let i = 0; i < 4; i = i + 1) { total = total + i; } total;", value.Number(6)},
		{"function call", "function add(a, b) { return a + b; } add(2, 3);", value.Number(5)},
		{"arrow function", "const square = x => x * x; square(4);", value.Number(16)},
		{"closures capture outer scope", "function makeAdder(n) { return x => x + n; } makeAdder(10)(5);", value.Number(15)},
		{"string concatenation", "'a' + 'b' + 1;", value.NewString("ab1")},
		{"ternary", "true ? 'y' : 'n';", value.NewString("y")},
		{"typeof undefined variable-like literal", "typeof undefined;", value.NewString("undefined")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New()
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			got, err := e.RunScript("<test>", tt.script)
			if err != nil {
				t.Fatalf("RunScript(%q): %v", tt.script, err)
			}
			switch want := tt.want.(type) {
			case *value.String:
				gs, ok := got.(*value.String)
				if !ok || gs.String() != want.String() {
					t.Errorf("result = %v, want %v", got, want)
				}
			default:
				if got != tt.want {
					t.Errorf("result = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

// ============================================================================
// Thrown exceptions surface as ThrownError
// ============================================================================

func TestRunScriptThrowPropagates(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = e.RunScript("<test>", "null.foo;")
	if err == nil {
		t.Fatal("accessing a property of null should throw")
	}
}

func TestRunScriptUserThrow(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = e.RunScript("<test>", "throw new TypeError('boom');")
	if err == nil {
		t.Fatal("explicit throw should propagate as an error")
	}
}

// ============================================================================
// Builtins wired through InstallAll are reachable end-to-end
// ============================================================================

func TestRunScriptArrayMethods(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := e.RunScript("<test>", "[1, 2, 3].map(x => x * 2).reduce((a, b) => a + b, 0);")
	if err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	if got != value.Number(12) {
		t.Errorf("array map/reduce chain = %v, want 12", got)
	}
}

func TestRunScriptJSONRoundTrip(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := e.RunScript("<test>", "JSON.parse(JSON.stringify({a: 1, b: [2, 3]})).b[1];")
	if err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	if got != value.Number(3) {
		t.Errorf("JSON round-trip result = %v, want 3", got)
	}
}

func TestRunScriptStringMethods(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := e.RunScript("<test>", "'Hello World'.toLowerCase().split(' ').join('-');")
	if err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	s, ok := got.(*value.String)
	if !ok || s.String() != "hello-world" {
		t.Errorf("string method chain = %v, want hello-world", got)
	}
}

func TestRunScriptMathAndNumber(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := e.RunScript("<test>", "Math.max(1, Math.sqrt(16), 2);")
	if err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	if got != value.Number(4) {
		t.Errorf("Math.max(1, sqrt(16), 2) = %v, want 4", got)
	}
}

// ============================================================================
// Re-running a script against an existing engine preserves global state
// ============================================================================

func TestEngineReusableAcrossScripts(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := e.RunScript("<first>", "var counter = 1;"); err != nil {
		t.Fatalf("first RunScript: %v", err)
	}
	got, err := e.RunScript("<second>", "counter = counter + 1; counter;")
	if err != nil {
		t.Fatalf("second RunScript: %v", err)
	}
	if got != value.Number(2) {
		t.Errorf("counter after second script = %v, want 2", got)
	}
}

// ============================================================================
// Intrinsic / Global accessors
// ============================================================================

func TestIntrinsicLookup(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := e.Intrinsic("%Object.prototype%"); !ok {
		t.Error("InstallAll should register %Object.prototype%")
	}
	if _, ok := e.Intrinsic("%NoSuchIntrinsic%"); ok {
		t.Error("unregistered intrinsic should not be found")
	}
}

func TestGlobalObjectNotNil(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if e.Global() == nil {
		t.Error("Global() should never be nil")
	}
}
