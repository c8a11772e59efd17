// Package types implements the canonical, hash-consed representation of
// shiro's type system. Every constructor interns its result through a
// Cache so that two structurally identical types are also the same Go
// pointer: equality is always `a == b`, never a field-by-field walk.
package types

import "fmt"

// Kind tags the concrete shape of a Type.
type Kind int

const (
	KindInvalid Kind = iota
	KindBuiltin
	KindPointer
	KindArray
	KindHeapArray
	KindView
	KindUserUnresolved
	KindClass
	KindVariable
)

// BuiltinKind enumerates the fixed set of builtin scalar types, including
// the two pseudo-types (Null, Uninit) used only during inference.
type BuiltinKind int

const (
	Void BuiltinKind = iota
	Bool
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	Isize
	Usize
	F32
	F64
	Null
	Uninit
)

var builtinNames = map[BuiltinKind]string{
	Void: "void", Bool: "bool",
	I8: "i8", I16: "i16", I32: "i32", I64: "i64",
	U8: "u8", U16: "u16", U32: "u32", U64: "u64",
	Isize: "isize", Usize: "usize",
	F32: "f32", F64: "f64",
	Null: "null", Uninit: "uninit",
}

func (k BuiltinKind) String() string { return builtinNames[k] }

// Type is the common interface implemented by every interned type value.
// Equality between two Types is always pointer equality: `a == b`. The
// Cache that produced a Type is the only thing that may construct one.
type Type interface {
	Kind() Kind
	String() string
	typeNode() // unexported marker: only this package may implement Type
}

type invalidType struct{}

func (*invalidType) Kind() Kind    { return KindInvalid }
func (*invalidType) String() string { return "<invalid>" }
func (*invalidType) typeNode()     {}

type builtinType struct{ kind BuiltinKind }

func (*builtinType) Kind() Kind        { return KindBuiltin }
func (b *builtinType) String() string  { return b.kind.String() }
func (*builtinType) typeNode()         {}

// BuiltinKind returns the scalar kind of a builtin Type. Callers should
// only invoke this after confirming t.Kind() == KindBuiltin.
func BuiltinKindOf(t Type) BuiltinKind { return t.(*builtinType).kind }

type pointerType struct{ pointee Type }

func (*pointerType) Kind() Kind         { return KindPointer }
func (p *pointerType) String() string   { return "*" + p.pointee.String() }
func (*pointerType) typeNode()          {}
func PointeeOf(t Type) Type             { return t.(*pointerType).pointee }

type arrayType struct {
	elem Type
	size int64
}

func (*arrayType) Kind() Kind       { return KindArray }
func (a *arrayType) String() string { return fmt.Sprintf("[%s, %d]", a.elem.String(), a.size) }
func (*arrayType) typeNode()        {}
func ArrayElem(t Type) Type         { return t.(*arrayType).elem }
func ArraySize(t Type) int64        { return t.(*arrayType).size }

type heapArrayType struct{ elem Type }

func (*heapArrayType) Kind() Kind       { return KindHeapArray }
func (h *heapArrayType) String() string { return "heap_array[" + h.elem.String() + "]" }
func (*heapArrayType) typeNode()        {}
func HeapArrayElem(t Type) Type         { return t.(*heapArrayType).elem }

type viewType struct{ elem Type }

func (*viewType) Kind() Kind       { return KindView }
func (v *viewType) String() string { return "view[" + v.elem.String() + "]" }
func (*viewType) typeNode()        {}
func ViewElem(t Type) Type         { return t.(*viewType).elem }

// userUnresolvedType names a type not yet bound to a class symbol (a
// generic class not yet instantiated).
type userUnresolvedType struct {
	name     string
	typeArgs []Type
}

func (*userUnresolvedType) Kind() Kind       { return KindUserUnresolved }
func (u *userUnresolvedType) String() string { return u.name + typeArgsSuffix(u.typeArgs) }
func (*userUnresolvedType) typeNode()        {}
func UnresolvedName(t Type) string           { return t.(*userUnresolvedType).name }
func UnresolvedTypeArgs(t Type) []Type       { return t.(*userUnresolvedType).typeArgs }

// classType refers to a resolved user-defined class. Symbol is an opaque
// handle (the semantic package's *Symbol); types does not depend on
// semantic, so it is carried as an `any` and type-asserted by callers that
// do import both packages.
type classType struct {
	name     string
	symbol   any
	typeArgs []Type
}

func (*classType) Kind() Kind       { return KindClass }
func (c *classType) String() string { return c.name + typeArgsSuffix(c.typeArgs) }
func (*classType) typeNode()        {}
func ClassName(t Type) string       { return t.(*classType).name }
func ClassSymbol(t Type) any        { return t.(*classType).symbol }
func ClassTypeArgs(t Type) []Type   { return t.(*classType).typeArgs }

// variableType is a type-parameter placeholder, valid only within a
// template's scope; substituted away at instantiation time.
type variableType struct{ name string }

func (*variableType) Kind() Kind       { return KindVariable }
func (v *variableType) String() string { return v.name }
func (*variableType) typeNode()        {}
func VariableName(t Type) string       { return t.(*variableType).name }

func typeArgsSuffix(args []Type) string {
	if len(args) == 0 {
		return ""
	}
	s := "<"
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ">"
}
