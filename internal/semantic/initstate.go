package semantic

// InitTracker implements definite-assignment analysis: it records, per
// variable symbol, whether a read at the current program point is known
// to follow an initializing write (§4.5.4). Missing from the map means
// "not known to be initialized", so a fresh tracker behaves as if
// everything starts uninitialized without needing to pre-populate it.
type InitTracker struct {
	state map[*Symbol]bool
}

// NewInitTracker returns an empty tracker.
func NewInitTracker() *InitTracker {
	return &InitTracker{state: make(map[*Symbol]bool)}
}

// Clone copies the tracker's state so each branch of an if/while can
// track assignment independently before being joined back with Merge.
func (t *InitTracker) Clone() *InitTracker {
	clone := make(map[*Symbol]bool, len(t.state))
	for k, v := range t.state {
		clone[k] = v
	}
	return &InitTracker{state: clone}
}

// SetInitialized records sym's assignment state at the current point.
func (t *InitTracker) SetInitialized(sym *Symbol, initialized bool) {
	t.state[sym] = initialized
}

// IsInitialized reports whether sym is known to be initialized here.
func (t *InitTracker) IsInitialized(sym *Symbol) bool {
	return t.state[sym]
}

// Merge returns a new tracker reflecting the join of two divergent
// branches: a symbol is initialized in the result only if it is
// initialized in both inputs — the standard definite-assignment join.
// Symbols declared fresh inside only one branch (and absent from the
// other's map) are treated as uninitialized in that branch, per the
// zero-value default above.
func Merge(a, b *InitTracker) *InitTracker {
	merged := make(map[*Symbol]bool, len(a.state)+len(b.state))
	for sym, initInA := range a.state {
		merged[sym] = initInA && b.state[sym]
	}
	for sym, initInB := range b.state {
		if _, seen := merged[sym]; !seen {
			merged[sym] = initInB && a.state[sym]
		}
	}
	return &InitTracker{state: merged}
}

// DiscardLoopBody returns the tracker as it stood before a loop body ran:
// since the body may execute zero times, any assignment made only inside
// it cannot be assumed definite afterward (§4.5.4's discard-on-loop-body
// rule). before must be a Clone taken prior to walking the body.
func DiscardLoopBody(before *InitTracker) *InitTracker {
	return before.Clone()
}
