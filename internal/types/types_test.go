package types

import "testing"

func TestCanonicalizationByPointerEquality(t *testing.T) {
	c := NewCache()

	i32a := c.Builtin(I32)
	i32b := c.Builtin(I32)
	if i32a != i32b {
		t.Fatal("two constructions of builtin(i32) must be pointer-equal")
	}

	pa := c.Pointer(c.Builtin(I32))
	pb := c.Pointer(c.Builtin(I32))
	if pa != pb {
		t.Fatal("two constructions of pointer(i32) must be pointer-equal")
	}

	aa := c.Array(c.Builtin(I32), 5)
	ab := c.Array(c.Builtin(I32), 5)
	if aa != ab {
		t.Fatal("two constructions of array(i32, 5) must be pointer-equal")
	}

	if c.Array(c.Builtin(I32), 5) == c.Array(c.Builtin(I32), 6) {
		t.Fatal("arrays of different size must not be equal")
	}
	if c.Builtin(I32) == c.Builtin(I64) {
		t.Fatal("distinct builtin kinds must not be equal")
	}
}

func TestInvalidEqualsOnlyItself(t *testing.T) {
	c := NewCache()
	if c.Invalid() != c.Invalid() {
		t.Fatal("Invalid must be a stable singleton within one cache")
	}
	if c.Invalid() == c.Builtin(I32) {
		t.Fatal("Invalid must not equal any other type")
	}
}

func TestFreshCachePerRun(t *testing.T) {
	c1 := NewCache()
	c2 := NewCache()
	if c1.Builtin(I32) == c2.Builtin(I32) {
		t.Fatal("caches from different runs must not share interned values")
	}
}

func TestArrayToViewCoercion(t *testing.T) {
	c := NewCache()
	arr := c.Array(c.Builtin(I32), 3)
	view := c.View(c.Builtin(I32))
	if !CanCoerce(arr, view) {
		t.Fatal("array(i32,3) should coerce to view(i32)")
	}
	if CanCoerce(view, arr) {
		t.Fatal("view should not coerce back to array")
	}
}

func TestNullCoercesToAnyPointer(t *testing.T) {
	c := NewCache()
	null := c.Builtin(Null)
	ptr := c.Pointer(c.Builtin(I32))
	if !CanCoerce(null, ptr) {
		t.Fatal("null should coerce to any pointer type")
	}
	if CanCoerce(null, c.Builtin(I32)) {
		t.Fatal("null should not coerce to a non-pointer type")
	}
}

func TestFitsIntLiteralRangeChecks(t *testing.T) {
	if FitsIntLiteral(256, false, U8) {
		t.Fatal("256 should not fit in u8")
	}
	if !FitsIntLiteral(255, false, U8) {
		t.Fatal("255 should fit in u8")
	}
	if FitsIntLiteral(1, true, U32) {
		t.Fatal("-1 should not fit in an unsigned type")
	}
	if !FitsIntLiteral(128, true, I8) {
		t.Fatal("-128 should fit in i8")
	}
	if FitsIntLiteral(129, true, I8) {
		t.Fatal("-129 should not fit in i8")
	}
}

func TestCastLegalTable(t *testing.T) {
	c := NewCache()
	if !CastLegal(c.Builtin(I32), c.Builtin(F64)) {
		t.Fatal("arithmetic <-> arithmetic cast should be legal")
	}
	if !CastLegal(c.Builtin(Bool), c.Builtin(I32)) {
		t.Fatal("bool -> arithmetic cast should be legal")
	}
	ptrI32 := c.Pointer(c.Builtin(I32))
	ptrU8 := c.Pointer(c.Builtin(U8))
	if !CastLegal(ptrI32, ptrU8) {
		t.Fatal("pointer <-> pointer cast should be legal")
	}
	if !CastLegal(ptrI32, c.Builtin(Usize)) {
		t.Fatal("pointer -> usize cast should be legal")
	}
	if CastLegal(ptrI32, c.Builtin(U32)) {
		t.Fatal("pointer -> u32 (non-usize) cast should not be legal")
	}
	if CastLegal(c.Builtin(Bool), c.Builtin(Bool)) != true {
		t.Fatal("identity cast should always be legal")
	}
}
