package types

// IsBasicType reports whether t is a builtin scalar (including the
// pseudo-types null/uninit).
func IsBasicType(t Type) bool { return t.Kind() == KindBuiltin }

// IsSigned reports whether t is one of the signed integer builtins.
func IsSigned(t Type) bool {
	if t.Kind() != KindBuiltin {
		return false
	}
	switch BuiltinKindOf(t) {
	case I8, I16, I32, I64, Isize:
		return true
	default:
		return false
	}
}

// IsUnsigned reports whether t is one of the unsigned integer builtins.
func IsUnsigned(t Type) bool {
	if t.Kind() != KindBuiltin {
		return false
	}
	switch BuiltinKindOf(t) {
	case U8, U16, U32, U64, Usize:
		return true
	default:
		return false
	}
}

// IsInteger reports whether t is any integer builtin, signed or unsigned.
func IsInteger(t Type) bool { return IsSigned(t) || IsUnsigned(t) }

// IsFloat reports whether t is f32 or f64.
func IsFloat(t Type) bool {
	if t.Kind() != KindBuiltin {
		return false
	}
	k := BuiltinKindOf(t)
	return k == F32 || k == F64
}

// IsArithmetic reports whether t supports the arithmetic operators.
func IsArithmetic(t Type) bool { return IsInteger(t) || IsFloat(t) }

// IsBool reports whether t is the builtin bool type.
func IsBool(t Type) bool {
	return t.Kind() == KindBuiltin && BuiltinKindOf(t) == Bool
}

// IsPointerLike reports whether t is a Pointer, View, or HeapArray — any
// type whose representation is, or contains, a raw address.
func IsPointerLike(t Type) bool {
	switch t.Kind() {
	case KindPointer, KindView, KindHeapArray:
		return true
	default:
		return false
	}
}

// IsNull reports whether t is the null pseudo-type.
func IsNull(t Type) bool {
	return t.Kind() == KindBuiltin && BuiltinKindOf(t) == Null
}

// IsUninit reports whether t is the uninit pseudo-type.
func IsUninit(t Type) bool {
	return t.Kind() == KindBuiltin && BuiltinKindOf(t) == Uninit
}

// IsVoid reports whether t is the builtin void type.
func IsVoid(t Type) bool {
	return t.Kind() == KindBuiltin && BuiltinKindOf(t) == Void
}

// IntRange returns the [min, max] range representable by an integer
// builtin kind, as a signed magnitude (min) and unsigned magnitude (max).
// Only meaningful when IsInteger(Builtin(k)) holds.
func IntRange(k BuiltinKind) (min int64, max uint64) {
	switch k {
	case I8:
		return -128, 127
	case I16:
		return -32768, 32767
	case I32:
		return -2147483648, 2147483647
	case I64, Isize:
		return -9223372036854775808, 9223372036854775807
	case U8:
		return 0, 255
	case U16:
		return 0, 65535
	case U32:
		return 0, 4294967295
	case U64, Usize:
		return 0, 18446744073709551615
	default:
		return 0, 0
	}
}

// FitsIntLiteral implements the numeric semantics of §4.1: a literal is
// stored as an unsigned 64-bit magnitude with a separate sign flag.
// `has_minus_sign => target signed && magnitude <= |T::MIN|`; otherwise
// `magnitude <= T::MAX`.
func FitsIntLiteral(magnitude uint64, negative bool, target BuiltinKind) bool {
	min, max := IntRange(target)
	if negative {
		if min == 0 {
			return false // unsigned target cannot hold a negative literal
		}
		// |T::MIN| as uint64, careful with I64/Isize's min overflowing int64 negation.
		absMin := uint64(-(min + 1)) + 1
		return magnitude <= absMin
	}
	return magnitude <= max
}

// FitsFloatLiteral reports whether a float literal's magnitude is within
// the target float type's finite range.
func FitsFloatLiteral(magnitude float64, target BuiltinKind) bool {
	switch target {
	case F32:
		return magnitude <= 3.4028234663852886e+38
	case F64:
		return true
	default:
		return false
	}
}
