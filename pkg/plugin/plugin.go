// Package plugin defines the host-facing extension contract (SPEC_FULL.md
// §6 "a host may... install feature plug-ins"): a Plugin installs its
// intrinsics into a realm and registers any syntax-directed handlers it
// needs, declaring its dependencies on other plugins by name so an
// Installer can order installation correctly regardless of the order a
// host lists them in.
//
// Grounded on the teacher's internal/units package (a unit registry that
// topologically orders `uses`-clause dependencies before initializing
// each unit): generalised from compile-time DWScript unit loading into
// runtime engine-feature installation, since plugins here are a purely
// runtime concept with no source-level `uses` syntax.
package plugin

import (
	"fmt"

	"github.com/cwbudde/go-ecma/pkg/evaluator"
	"github.com/cwbudde/go-ecma/pkg/realm"
)

// Plugin is one installable unit of engine functionality: a builtin
// object family (Array, String, Math, ...), a host integration (console),
// or a syntax-operation override supplied by an embedder.
type Plugin interface {
	// ID names the plugin, used for dependency resolution and duplicate
	// detection.
	ID() string

	// DependsOn lists the IDs of plugins that must be installed first
	// (e.g. "array" depends on "object" for %Array.prototype%'s own
	// prototype chain).
	DependsOn() []string

	// Install creates this plugin's intrinsics in r and registers any
	// additional syntax-directed handlers on ev's dispatch table.
	Install(ev *evaluator.Evaluator, r *realm.Realm) error
}

// Installer topologically orders and installs a set of plugins exactly
// once each, per the teacher's unit-dependency resolution shape.
type Installer struct {
	plugins   map[string]Plugin
	installed map[string]bool
}

// NewInstaller creates an empty Installer.
func NewInstaller() *Installer {
	return &Installer{plugins: make(map[string]Plugin), installed: make(map[string]bool)}
}

// Add registers p, so a later InstallAll can resolve it as a dependency
// even if the host never installs it directly.
func (in *Installer) Add(p Plugin) {
	in.plugins[p.ID()] = p
}

// Install installs p and every plugin it (transitively) depends on,
// against ev/r, in dependency order. Installing an already-installed
// plugin is a no-op (idempotent install, per the teacher's
// already-initialized-unit short-circuit).
func (in *Installer) Install(ev *evaluator.Evaluator, r *realm.Realm, p Plugin) error {
	in.Add(p)
	return in.installByID(ev, r, p.ID(), nil)
}

func (in *Installer) installByID(ev *evaluator.Evaluator, r *realm.Realm, id string, chain []string) error {
	if in.installed[id] {
		return nil
	}
	for _, c := range chain {
		if c == id {
			return fmt.Errorf("plugin: dependency cycle detected at %q", id)
		}
	}
	p, ok := in.plugins[id]
	if !ok {
		return fmt.Errorf("plugin: unknown dependency %q", id)
	}
	chain = append(chain, id)
	for _, dep := range p.DependsOn() {
		if err := in.installByID(ev, r, dep, chain); err != nil {
			return err
		}
	}
	if err := p.Install(ev, r); err != nil {
		return fmt.Errorf("plugin %q: %w", id, err)
	}
	in.installed[id] = true
	return nil
}

// Installed reports whether id has already been installed on this
// Installer.
func (in *Installer) Installed(id string) bool { return in.installed[id] }
