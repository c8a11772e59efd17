// Package ast defines shiro's abstract syntax tree: declarations,
// definitions, expressions, statements and the Root of one parsed file,
// plus the visitor/transformer dispatch contract described in §3.2/§4.2.
package ast

import (
	"fmt"

	"github.com/shiro-lang/shiro/internal/lexer"
	"github.com/shiro-lang/shiro/internal/types"
)

// NodeKind tags the concrete shape of a Node. Walk and TransformChildren
// dispatch with Go type switches, not on NodeKind; it is kept here mainly
// so diagnostics and the printer can name a node kind without a type
// assertion.
type NodeKind int

const (
	KindRoot NodeKind = iota

	KindVarDecl
	KindParamDecl
	KindMemberDecl
	KindTypeParamDecl

	KindFnDef
	KindMethodDef
	KindClassDef
	KindImportDef

	KindIntLit
	KindFloatLit
	KindBoolLit
	KindStrLit
	KindNullLit
	KindUninitLit
	KindRefExpr
	KindSelfExpr
	KindParenExpr
	KindUnaryOp
	KindBinOp
	KindCallExpr
	KindCastExpr
	KindCoercionExpr
	KindAccessExpr
	KindMemberAccess
	KindMethodCall
	KindConstructExpr
	KindArrayLit
	KindArraySubscript
	KindArraySlice

	KindCompoundStmt
	KindDeclStmt
	KindExprStmt
	KindIfStmt
	KindWhileStmt
	KindReturnStmt
	KindIncDecStmt

	KindNamedTypeExpr
	KindPointerTypeExpr
	KindArrayTypeExpr
	KindViewTypeExpr
	KindBuiltinTypeExpr
)

var kindNames = [...]string{
	"Root",
	"VarDecl", "ParamDecl", "MemberDecl", "TypeParamDecl",
	"FnDef", "MethodDef", "ClassDef", "ImportDef",
	"IntLit", "FloatLit", "BoolLit", "StrLit", "NullLit", "UninitLit",
	"RefExpr", "SelfExpr", "ParenExpr", "UnaryOp", "BinOp", "CallExpr",
	"CastExpr", "CoercionExpr", "AccessExpr", "MemberAccess", "MethodCall",
	"ConstructExpr", "ArrayLit", "ArraySubscript", "ArraySlice",
	"CompoundStmt", "DeclStmt", "ExprStmt", "IfStmt", "WhileStmt",
	"ReturnStmt", "IncDecStmt",
	"NamedTypeExpr", "PointerTypeExpr", "ArrayTypeExpr", "ViewTypeExpr", "BuiltinTypeExpr",
}

func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Node is the interface satisfied by every tree element. Position carries
// begin/end source locations (§3.2); ID is a stable, process-local
// identifier that tells two nodes apart. Nodes do not own diagnostics;
// those are recorded in a diag.Bag by source position.
type Node interface {
	Kind() NodeKind
	Pos() lexer.Position
	EndPos() lexer.Position
	ID() NodeID
}

// NodeID stably identifies a node for the lifetime of one compilation run.
type NodeID uint64

var nextID NodeID

func newID() NodeID {
	nextID++
	return nextID
}

// base is embedded by every concrete node to supply ID/Pos/EndPos.
type base struct {
	id      NodeID
	pos     lexer.Position
	endPos  lexer.Position
}

func newBase(pos, endPos lexer.Position) base {
	return base{id: newID(), pos: pos, endPos: endPos}
}

func (b base) ID() NodeID             { return b.id }
func (b base) Pos() lexer.Position    { return b.pos }
func (b base) EndPos() lexer.Position { return b.endPos }

// Expr is any node that produces a value. Every expression carries a Type
// once the type-checker has run (nil before, Invalid after a failed
// check); the poison Invalid type suppresses cascading diagnostics (§7).
type Expr interface {
	Node
	exprNode()
	GetType() types.Type
	SetType(types.Type)
}

// Stmt is any node that performs an action without producing a value.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is a declaration: VarDecl, ParamDecl, MemberDecl, TypeParamDecl.
type Decl interface {
	Node
	declNode()
}

// TopLevelDef is a FnDef, ClassDef or ImportDef appearing directly inside
// a Root.
type TopLevelDef interface {
	Node
	topLevelDefNode()
}

// TypeExpr is the parsed (not yet resolved) syntactic form of a type
// annotation: a name, a pointer/array/view wrapper, or a builtin keyword.
// §4.1 describes the separate resolver pass that turns these into
// interned types.Type values.
type TypeExpr interface {
	Node
	typeExprNode()
}

// exprTypeBox is embedded by concrete Expr nodes to carry their resolved
// type alongside the positional base.
type exprTypeBox struct {
	base
	typ types.Type
}

func (e *exprTypeBox) exprNode()           {}
func (e *exprTypeBox) GetType() types.Type { return e.typ }
func (e *exprTypeBox) SetType(t types.Type) { e.typ = t }

// Root is the parser's output for one source file: the ordered list of
// top-level definitions plus any import directives, which must precede
// every other definition (§4.4).
type Root struct {
	base
	File    string
	Imports []*ImportDef
	Defs    []TopLevelDef
}

func (r *Root) Kind() NodeKind { return KindRoot }

// NewRoot constructs a Root spanning the given file.
func NewRoot(file string, pos, endPos lexer.Position) *Root {
	return &Root{base: newBase(pos, endPos), File: file}
}
