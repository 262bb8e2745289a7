package environment

// ModuleRecord is a DeclarativeRecord plus import-link bindings (§3.6).
// Module *resolution* (locating and linking another module) is named but
// not specified by the distilled spec (§1 Non-goals: "module loaders"); this
// type only carries the binding shape a host's loader would populate.
type ModuleRecord struct {
	*DeclarativeRecord
	// imports maps a local name to the (module, exportName) it is linked to.
	// Resolution of the referenced module is the host loader's job.
	imports map[string]ImportBinding
}

// ImportBinding names the external module and export an import binding is
// linked to.
type ImportBinding struct {
	ModuleSpecifier string
	ExportName      string
}

// NewModuleRecord creates a module environment record.
func NewModuleRecord(outer Record) *ModuleRecord {
	return &ModuleRecord{DeclarativeRecord: NewDeclarativeRecord(outer), imports: make(map[string]ImportBinding)}
}

// CreateImportBinding links name to an export of another module; the
// binding behaves as an immutable binding once initialised by the loader
// via InitializeBinding.
func (r *ModuleRecord) CreateImportBinding(name string, link ImportBinding) error {
	if err := r.CreateImmutableBinding(name, true); err != nil {
		return err
	}
	r.imports[name] = link
	return nil
}

// ImportLink returns the (module, export) a name is linked to, if any.
func (r *ModuleRecord) ImportLink(name string) (ImportBinding, bool) {
	l, ok := r.imports[name]
	return l, ok
}
