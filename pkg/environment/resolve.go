package environment

// ResolveBinding implements identifier resolution (§4.2): starting from
// rec, walk outer links calling HasBinding; on hit, return that record.
// Returns nil when the name is unresolvable (the caller builds an
// unresolvable Reference — see pkg/completion.Reference).
func ResolveBinding(rec Record, name string) Record {
	for cur := rec; cur != nil; cur = cur.Outer() {
		if cur.HasBinding(name) {
			return cur
		}
	}
	return nil
}
