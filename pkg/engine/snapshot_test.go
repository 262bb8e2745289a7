package engine

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestRunScriptSnapshots mirrors the teacher's fixture_test.go pattern: run
// a script end-to-end and snapshot its GoString() rendering, rather than
// hand-writing an expected literal for every structural result.
func TestRunScriptSnapshots(t *testing.T) {
	scripts := []struct {
		name   string
		script string
	}{
		{"object_literal", "({name: 'Ada', age: 36}).name + ' is ' + ({name: 'Ada', age: 36}).age;"},
		{"array_of_objects", "JSON.stringify([{x: 1}, {x: 2}].map(o => o.x * 10));"},
		{"error_to_string", "(function() { try { null.foo; } catch (e) { return e.toString(); } })();"},
		{"nested_function_closure", "(function outer() { let n = 0; return function inner() { n += 1; return n; }; })()();"},
	}
	for _, tt := range scripts {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New()
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			got, err := e.RunScript("<snapshot>", tt.script)
			if err != nil {
				t.Fatalf("RunScript(%q): %v", tt.script, err)
			}
			snaps.MatchSnapshot(t, got.GoString())
		})
	}
}
