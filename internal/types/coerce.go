package types

// CanCoerce reports whether a value of type from may be implicitly
// converted to type to, per §3.1's coercion list. Integer- and
// float-literal-magnitude coercions are not decided here — those depend on
// the literal's actual value, not just its pseudo-type, and are checked by
// the semantic package via FitsIntLiteral/FitsFloatLiteral against the
// concrete literal node. CanCoerce covers the remaining, value-independent
// rules: null -> pointer, uninit -> anything, and array -> view.
func CanCoerce(from, to Type) bool {
	if from == to {
		return true
	}
	if IsNull(from) && to.Kind() == KindPointer {
		return true
	}
	if IsUninit(from) {
		return true
	}
	if from.Kind() == KindArray && to.Kind() == KindView {
		return ArrayElem(from) == ViewElem(to)
	}
	return false
}

// CastLegal implements the `as` cast table from §4.5.5: any arithmetic
// <-> arithmetic; bool -> arithmetic; pointer <-> pointer; pointer <->
// usize only; null -> pointer.
func CastLegal(from, to Type) bool {
	if from == to {
		return true
	}
	if IsArithmetic(from) && IsArithmetic(to) {
		return true
	}
	if IsBool(from) && IsArithmetic(to) {
		return true
	}
	if from.Kind() == KindPointer && to.Kind() == KindPointer {
		return true
	}
	if from.Kind() == KindPointer && to.Kind() == KindBuiltin && BuiltinKindOf(to) == Usize {
		return true
	}
	if from.Kind() == KindBuiltin && BuiltinKindOf(from) == Usize && to.Kind() == KindPointer {
		return true
	}
	if IsNull(from) && to.Kind() == KindPointer {
		return true
	}
	return false
}
