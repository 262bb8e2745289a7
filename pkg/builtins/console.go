package builtins

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cwbudde/go-ecma/pkg/evaluator"
	"github.com/cwbudde/go-ecma/pkg/realm"
	"github.com/cwbudde/go-ecma/pkg/value"
)

// Stdout and Stderr are the destinations console.log/info/debug and
// console.warn/error write to, respectively. An embedding host can
// redirect these before calling InstallAll to capture script output
// instead of inheriting the process's own streams.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// ConsolePlugin installs the host-integration `console` object (not part
// of the language proper, but present in every hosted ECMAScript
// environment the teacher's own CLI emulates via stdout/stderr writes).
type ConsolePlugin struct{}

func (ConsolePlugin) ID() string          { return "console" }
func (ConsolePlugin) DependsOn() []string { return []string{"object"} }

func (ConsolePlugin) Install(ev *evaluator.Evaluator, r *realm.Realm) error {
	objectProto, _ := r.Intrinsic("%Object.prototype%")
	console := value.NewObject(objectProto)
	method(ev, console, "log", 0, consoleWriter(Stdout))
	method(ev, console, "info", 0, consoleWriter(Stdout))
	method(ev, console, "debug", 0, consoleWriter(Stdout))
	method(ev, console, "warn", 0, consoleWriter(Stderr))
	method(ev, console, "error", 0, consoleWriter(Stderr))
	defineGlobal(r, "console", console)
	return nil
}

func consoleWriter(w io.Writer) func(*evaluator.Evaluator, value.Value, []value.Value) (value.Value, error) {
	return func(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			s, err := consoleFormat(ev, a)
			if err != nil {
				return nil, err
			}
			parts[i] = s
		}
		line := ""
		for i, p := range parts {
			if i > 0 {
				line += " "
			}
			line += p
		}
		fmt.Fprintln(w, line)
		return value.Undefined, nil
	}
}

func consoleFormat(ev *evaluator.Evaluator, v value.Value) (string, error) {
	if o, ok := v.(*value.Object); ok && !o.IsCallable() {
		var b strings.Builder
		if ok2, err := writeJSONValue(ev, &b, o, "", ""); err == nil && ok2 {
			return b.String(), nil
		}
	} else if ok {
		return "[Function]", nil
	}
	s, err := ev.ToString(v)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}
