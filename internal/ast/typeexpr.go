package ast

import "github.com/shiro-lang/shiro/internal/lexer"

// NamedTypeExpr is a parsed `Name` or `Name<TypeArgs>` type reference,
// resolved by the semantic analyzer into either a Class or
// UserUnresolved types.Type (§4.1).
type NamedTypeExpr struct {
	base
	Name     string
	TypeArgs []TypeExpr
}

func (t *NamedTypeExpr) Kind() NodeKind { return KindNamedTypeExpr }
func (t *NamedTypeExpr) typeExprNode()  {}

func NewNamedTypeExpr(name string, args []TypeExpr, pos, end lexer.Position) *NamedTypeExpr {
	return &NamedTypeExpr{base: newBase(pos, end), Name: name, TypeArgs: args}
}

// BuiltinTypeExpr is one of the fixed builtin keywords (i32, bool, ...).
type BuiltinTypeExpr struct {
	base
	Keyword lexer.TokenType
}

func (t *BuiltinTypeExpr) Kind() NodeKind { return KindBuiltinTypeExpr }
func (t *BuiltinTypeExpr) typeExprNode()  {}

func NewBuiltinTypeExpr(kw lexer.TokenType, pos, end lexer.Position) *BuiltinTypeExpr {
	return &BuiltinTypeExpr{base: newBase(pos, end), Keyword: kw}
}

// PointerTypeExpr is `*T`.
type PointerTypeExpr struct {
	base
	Pointee TypeExpr
}

func (t *PointerTypeExpr) Kind() NodeKind { return KindPointerTypeExpr }
func (t *PointerTypeExpr) typeExprNode()  {}

func NewPointerTypeExpr(pointee TypeExpr, pos, end lexer.Position) *PointerTypeExpr {
	return &PointerTypeExpr{base: newBase(pos, end), Pointee: pointee}
}

// ArrayTypeExpr is `[T, N]` where N may be an arbitrary constant
// expression, resolved to a literal size during type elaboration (§4.1).
type ArrayTypeExpr struct {
	base
	Elem     TypeExpr
	SizeExpr Expr
}

func (t *ArrayTypeExpr) Kind() NodeKind { return KindArrayTypeExpr }
func (t *ArrayTypeExpr) typeExprNode()  {}

func NewArrayTypeExpr(elem TypeExpr, size Expr, pos, end lexer.Position) *ArrayTypeExpr {
	return &ArrayTypeExpr{base: newBase(pos, end), Elem: elem, SizeExpr: size}
}

// ViewTypeExpr is `view[T]`.
type ViewTypeExpr struct {
	base
	Elem TypeExpr
}

func (t *ViewTypeExpr) Kind() NodeKind { return KindViewTypeExpr }
func (t *ViewTypeExpr) typeExprNode()  {}

func NewViewTypeExpr(elem TypeExpr, pos, end lexer.Position) *ViewTypeExpr {
	return &ViewTypeExpr{base: newBase(pos, end), Elem: elem}
}
