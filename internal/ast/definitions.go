package ast

import "github.com/shiro-lang/shiro/internal/lexer"

// FnDef is a top-level or nested function definition.
type FnDef struct {
	base
	Name       string
	Params     []*ParamDecl
	ReturnType TypeExpr // nil means void
	Body       *CompoundStmt
	TypeParams []*TypeParamDecl
	Exported   bool
	Extern     string // non-empty carries the external ABI/linkage name
}

func (d *FnDef) Kind() NodeKind     { return KindFnDef }
func (d *FnDef) topLevelDefNode()   {}
func (d *FnDef) IsTemplate() bool   { return len(d.TypeParams) > 0 }

// NewFnDef constructs an FnDef.
func NewFnDef(name string, pos, end lexer.Position) *FnDef {
	return &FnDef{base: newBase(pos, end), Name: name}
}

// MethodDef is an FnDef nested inside a ClassDef; it is represented as a
// distinct node (rather than reusing FnDef directly) so that the
// semantic analyzer's declaration collector can tell at a glance whether
// a definition needs an implicit `self` parameter.
type MethodDef struct {
	base
	Name       string
	Params     []*ParamDecl
	ReturnType TypeExpr
	Body       *CompoundStmt
	TypeParams []*TypeParamDecl
	Exported   bool
}

func (d *MethodDef) Kind() NodeKind   { return KindMethodDef }
func (d *MethodDef) IsTemplate() bool { return len(d.TypeParams) > 0 }

// NewMethodDef constructs a MethodDef.
func NewMethodDef(name string, pos, end lexer.Position) *MethodDef {
	return &MethodDef{base: newBase(pos, end), Name: name}
}

// ClassDef declares a class with its members and methods, optionally
// generic over TypeParams.
type ClassDef struct {
	base
	Name       string
	Members    []*MemberDecl
	Methods    []*MethodDef
	TypeParams []*TypeParamDecl
	Exported   bool
}

func (d *ClassDef) Kind() NodeKind     { return KindClassDef }
func (d *ClassDef) topLevelDefNode()   {}
func (d *ClassDef) IsTemplate() bool   { return len(d.TypeParams) > 0 }

// NewClassDef constructs a ClassDef.
func NewClassDef(name string, pos, end lexer.Position) *ClassDef {
	return &ClassDef{base: newBase(pos, end), Name: name}
}

// ImportDef is `import Namespace.Module;`. Only legal before any other
// top-level definition (§4.4); the parser still returns the node on a
// later occurrence and attaches a diagnostic.
type ImportDef struct {
	base
	Namespace string
	Module    string
}

func (d *ImportDef) Kind() NodeKind   { return KindImportDef }
func (d *ImportDef) topLevelDefNode() {}

// NewImportDef constructs an ImportDef.
func NewImportDef(namespace, module string, pos, end lexer.Position) *ImportDef {
	return &ImportDef{base: newBase(pos, end), Namespace: namespace, Module: module}
}
