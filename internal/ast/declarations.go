package ast

import "github.com/shiro-lang/shiro/internal/lexer"

// VarDecl is `var name[: type] [= expr];`. TypeExpr is nil when the
// variable's type is inferred from InitExpr.
type VarDecl struct {
	base
	Name     string
	TypeExpr TypeExpr
	InitExpr Expr
}

func (d *VarDecl) Kind() NodeKind { return KindVarDecl }
func (d *VarDecl) declNode()      {}

// NewVarDecl constructs a VarDecl.
func NewVarDecl(name string, te TypeExpr, init Expr, pos, end lexer.Position) *VarDecl {
	return &VarDecl{base: newBase(pos, end), Name: name, TypeExpr: te, InitExpr: init}
}

// ParamDecl is a single function or method parameter.
type ParamDecl struct {
	base
	Name     string
	TypeExpr TypeExpr
}

func (d *ParamDecl) Kind() NodeKind { return KindParamDecl }
func (d *ParamDecl) declNode()      {}

// NewParamDecl constructs a ParamDecl.
func NewParamDecl(name string, te TypeExpr, pos, end lexer.Position) *ParamDecl {
	return &ParamDecl{base: newBase(pos, end), Name: name, TypeExpr: te}
}

// MemberDecl is a VarDecl nested inside a ClassDef.
type MemberDecl struct {
	base
	Name     string
	TypeExpr TypeExpr
	InitExpr Expr // default-value expression, owned by this node
}

func (d *MemberDecl) Kind() NodeKind { return KindMemberDecl }
func (d *MemberDecl) declNode()      {}

// NewMemberDecl constructs a MemberDecl.
func NewMemberDecl(name string, te TypeExpr, init Expr, pos, end lexer.Position) *MemberDecl {
	return &MemberDecl{base: newBase(pos, end), Name: name, TypeExpr: te, InitExpr: init}
}

// TypeParamDecl is a single `<T, ...>` generic type parameter.
type TypeParamDecl struct {
	base
	Name string
}

func (d *TypeParamDecl) Kind() NodeKind { return KindTypeParamDecl }
func (d *TypeParamDecl) declNode()      {}

// NewTypeParamDecl constructs a TypeParamDecl.
func NewTypeParamDecl(name string, pos, end lexer.Position) *TypeParamDecl {
	return &TypeParamDecl{base: newBase(pos, end), Name: name}
}
