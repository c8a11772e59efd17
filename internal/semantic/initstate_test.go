package semantic

import "testing"

func TestInitTrackerSetAndIsInitialized(t *testing.T) {
	tr := NewInitTracker()
	sym := &Symbol{Name: "x"}
	if tr.IsInitialized(sym) {
		t.Fatalf("fresh tracker should report uninitialized")
	}
	tr.SetInitialized(sym, true)
	if !tr.IsInitialized(sym) {
		t.Fatalf("expected x to be initialized after SetInitialized(true)")
	}
}

func TestInitTrackerCloneIsIndependent(t *testing.T) {
	tr := NewInitTracker()
	sym := &Symbol{Name: "x"}
	tr.SetInitialized(sym, true)

	clone := tr.Clone()
	clone.SetInitialized(sym, false)

	if !tr.IsInitialized(sym) {
		t.Fatalf("mutating the clone should not affect the original tracker")
	}
	if clone.IsInitialized(sym) {
		t.Fatalf("clone should reflect its own mutation")
	}
}

func TestMergeRequiresInitializationOnBothBranches(t *testing.T) {
	x, y, z := &Symbol{Name: "x"}, &Symbol{Name: "y"}, &Symbol{Name: "z"}

	thenBranch := NewInitTracker()
	thenBranch.SetInitialized(x, true)
	thenBranch.SetInitialized(y, true)

	elseBranch := NewInitTracker()
	elseBranch.SetInitialized(x, true)
	elseBranch.SetInitialized(z, true)

	merged := Merge(thenBranch, elseBranch)
	if !merged.IsInitialized(x) {
		t.Fatalf("x initialized on both branches should merge to initialized")
	}
	if merged.IsInitialized(y) {
		t.Fatalf("y initialized on only one branch should merge to uninitialized")
	}
	if merged.IsInitialized(z) {
		t.Fatalf("z initialized on only one branch should merge to uninitialized")
	}
}

func TestDiscardLoopBodyRevertsToPreLoopState(t *testing.T) {
	sym := &Symbol{Name: "x"}
	before := NewInitTracker()

	afterBody := before.Clone()
	afterBody.SetInitialized(sym, true)

	reverted := DiscardLoopBody(before)
	if reverted.IsInitialized(sym) {
		t.Fatalf("a loop body's assignment must not survive DiscardLoopBody, since the body may run zero times")
	}
}
