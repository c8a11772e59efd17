package ast

import "github.com/shiro-lang/shiro/internal/lexer"

// CompoundStmt is a `{ ... }` block of statements.
type CompoundStmt struct {
	base
	Statements []Stmt
}

func (s *CompoundStmt) Kind() NodeKind { return KindCompoundStmt }
func (s *CompoundStmt) stmtNode()      {}

func NewCompoundStmt(stmts []Stmt, pos, end lexer.Position) *CompoundStmt {
	return &CompoundStmt{base: newBase(pos, end), Statements: stmts}
}

// DeclStmt wraps a VarDecl appearing in statement position.
type DeclStmt struct {
	base
	Decl *VarDecl
}

func (s *DeclStmt) Kind() NodeKind { return KindDeclStmt }
func (s *DeclStmt) stmtNode()      {}

func NewDeclStmt(decl *VarDecl, pos, end lexer.Position) *DeclStmt {
	return &DeclStmt{base: newBase(pos, end), Decl: decl}
}

// ExprStmt is an expression evaluated for its side effect.
type ExprStmt struct {
	base
	Expr Expr
}

func (s *ExprStmt) Kind() NodeKind { return KindExprStmt }
func (s *ExprStmt) stmtNode()      {}

func NewExprStmt(expr Expr, pos, end lexer.Position) *ExprStmt {
	return &ExprStmt{base: newBase(pos, end), Expr: expr}
}

// IfStmt is `if (cond) then [else else_]`.
type IfStmt struct {
	base
	Cond Expr
	Then Stmt
	Else Stmt // nil when no else clause
}

func (s *IfStmt) Kind() NodeKind { return KindIfStmt }
func (s *IfStmt) stmtNode()      {}

func NewIfStmt(cond Expr, then, els Stmt, pos, end lexer.Position) *IfStmt {
	return &IfStmt{base: newBase(pos, end), Cond: cond, Then: then, Else: els}
}

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	base
	Cond Expr
	Body Stmt
}

func (s *WhileStmt) Kind() NodeKind { return KindWhileStmt }
func (s *WhileStmt) stmtNode()      {}

func NewWhileStmt(cond Expr, body Stmt, pos, end lexer.Position) *WhileStmt {
	return &WhileStmt{base: newBase(pos, end), Cond: cond, Body: body}
}

// ReturnStmt is `return [value];`.
type ReturnStmt struct {
	base
	Value Expr // nil for a bare `return;`
}

func (s *ReturnStmt) Kind() NodeKind { return KindReturnStmt }
func (s *ReturnStmt) stmtNode()      {}

func NewReturnStmt(value Expr, pos, end lexer.Position) *ReturnStmt {
	return &ReturnStmt{base: newBase(pos, end), Value: value}
}

// IncDecStmt is `target++;` or `target--;` used as a standalone statement.
type IncDecStmt struct {
	base
	Target      Expr
	IsIncrement bool
}

func (s *IncDecStmt) Kind() NodeKind { return KindIncDecStmt }
func (s *IncDecStmt) stmtNode()      {}

func NewIncDecStmt(target Expr, isIncrement bool, pos, end lexer.Position) *IncDecStmt {
	return &IncDecStmt{base: newBase(pos, end), Target: target, IsIncrement: isIncrement}
}
