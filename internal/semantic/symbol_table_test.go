package semantic

import "testing"

func TestSymbolTableLookupWalksEnclosingScopes(t *testing.T) {
	global := NewSymbolTable(ScopeGlobal)
	global.Insert(&Symbol{Name: "g"})

	fn := NewChildScope(global, ScopeFunction)
	fn.Insert(&Symbol{Name: "f"})

	block := NewChildScope(fn, ScopeBlock)
	block.Insert(&Symbol{Name: "b"})

	if block.Lookup("g") == nil {
		t.Fatalf("expected to find global symbol from nested block scope")
	}
	if block.Lookup("f") == nil {
		t.Fatalf("expected to find function-scope symbol from nested block scope")
	}
	if block.LookupLocal("g") != nil {
		t.Fatalf("LookupLocal must not see parent-scope symbols")
	}
	if global.Lookup("b") != nil {
		t.Fatalf("a parent scope must not see a child's symbols")
	}
}

func TestSymbolTableOverloadsAccumulateUnderOneName(t *testing.T) {
	scope := NewSymbolTable(ScopeGlobal)
	one := &Symbol{Name: "f", Kind: SymFunction}
	two := &Symbol{Name: "f", Kind: SymFunction}
	scope.Insert(one)
	scope.Insert(two)

	overloads := scope.Overloads("f")
	if len(overloads) != 2 {
		t.Fatalf("got %d overloads, want 2", len(overloads))
	}
	if overloads[0] != one || overloads[1] != two {
		t.Fatalf("overloads should preserve insertion order")
	}
	if scope.LookupLocal("f") != one {
		t.Fatalf("LookupLocal should return the first-declared overload")
	}
}

func TestSymbolTableOverloadsInChainFindsFirstNonEmptyScope(t *testing.T) {
	global := NewSymbolTable(ScopeGlobal)
	global.Insert(&Symbol{Name: "f", Kind: SymFunction})
	global.Insert(&Symbol{Name: "f", Kind: SymFunction})

	fn := NewChildScope(global, ScopeFunction)
	fn.Insert(&Symbol{Name: "g", Kind: SymVariable})

	if len(fn.OverloadsInChain("f")) != 2 {
		t.Fatalf("expected to inherit both global overloads of 'f' through the chain")
	}
	if len(fn.OverloadsInChain("g")) != 1 {
		t.Fatalf("expected the single local 'g' binding")
	}
	if fn.OverloadsInChain("nonexistent") != nil {
		t.Fatalf("expected nil for a name bound nowhere in the chain")
	}
}

func TestSymbolTableAllReturnsEveryLocalSymbol(t *testing.T) {
	scope := NewSymbolTable(ScopeGlobal)
	scope.Insert(&Symbol{Name: "a"})
	scope.Insert(&Symbol{Name: "b"})
	scope.Insert(&Symbol{Name: "b"})

	all := scope.All()
	if len(all) != 3 {
		t.Fatalf("got %d symbols, want 3", len(all))
	}
}

func TestSymbolTableParentAndKind(t *testing.T) {
	global := NewSymbolTable(ScopeGlobal)
	class := NewChildScope(global, ScopeClass)

	if class.Parent() != global {
		t.Fatalf("Parent() should return the enclosing scope")
	}
	if class.Kind() != ScopeClass {
		t.Fatalf("Kind() = %v, want ScopeClass", class.Kind())
	}
	if global.Parent() != nil {
		t.Fatalf("the root scope must have a nil parent")
	}
}
