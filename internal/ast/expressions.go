package ast

import "github.com/shiro-lang/shiro/internal/lexer"

// IntLit is an integer literal. Magnitude is stored unsigned with a
// separate sign flag, per §4.1's numeric semantics; Suffix carries an
// explicit type suffix such as "u8" when present in the source.
type IntLit struct {
	exprTypeBox
	Magnitude uint64
	Negative  bool
	Suffix    string
}

func (e *IntLit) Kind() NodeKind { return KindIntLit }

func NewIntLit(magnitude uint64, negative bool, suffix string, pos, end lexer.Position) *IntLit {
	return &IntLit{exprTypeBox: exprTypeBox{base: newBase(pos, end)}, Magnitude: magnitude, Negative: negative, Suffix: suffix}
}

// FloatLit is a floating-point literal.
type FloatLit struct {
	exprTypeBox
	Value  float64
	Suffix string
}

func (e *FloatLit) Kind() NodeKind { return KindFloatLit }

func NewFloatLit(value float64, suffix string, pos, end lexer.Position) *FloatLit {
	return &FloatLit{exprTypeBox: exprTypeBox{base: newBase(pos, end)}, Value: value, Suffix: suffix}
}

// BoolLit is `true` or `false`.
type BoolLit struct {
	exprTypeBox
	Value bool
}

func (e *BoolLit) Kind() NodeKind { return KindBoolLit }

func NewBoolLit(value bool, pos, end lexer.Position) *BoolLit {
	return &BoolLit{exprTypeBox: exprTypeBox{base: newBase(pos, end)}, Value: value}
}

// StrLit is a string literal, already unescaped by the lexer.
type StrLit struct {
	exprTypeBox
	Value string
}

func (e *StrLit) Kind() NodeKind { return KindStrLit }

func NewStrLit(value string, pos, end lexer.Position) *StrLit {
	return &StrLit{exprTypeBox: exprTypeBox{base: newBase(pos, end)}, Value: value}
}

// NullLit is the `null` literal.
type NullLit struct{ exprTypeBox }

func (e *NullLit) Kind() NodeKind { return KindNullLit }

func NewNullLit(pos, end lexer.Position) *NullLit {
	return &NullLit{exprTypeBox{base: newBase(pos, end)}}
}

// UninitLit is the `uninit` literal, used to mark storage as
// intentionally left uninitialized for the definite-assignment pass.
type UninitLit struct{ exprTypeBox }

func (e *UninitLit) Kind() NodeKind { return KindUninitLit }

func NewUninitLit(pos, end lexer.Position) *UninitLit {
	return &UninitLit{exprTypeBox{base: newBase(pos, end)}}
}

// RefExpr names an identifier to be resolved by the type-checker. Symbol
// is populated (as an opaque `any`, to avoid an import cycle with the
// semantic package) once resolution succeeds.
type RefExpr struct {
	exprTypeBox
	Name   string
	Symbol any
}

func (e *RefExpr) Kind() NodeKind { return KindRefExpr }

func NewRefExpr(name string, pos, end lexer.Position) *RefExpr {
	return &RefExpr{exprTypeBox: exprTypeBox{base: newBase(pos, end)}, Name: name}
}

// SelfExpr is the implicit receiver inside a method body.
type SelfExpr struct{ exprTypeBox }

func (e *SelfExpr) Kind() NodeKind { return KindSelfExpr }

func NewSelfExpr(pos, end lexer.Position) *SelfExpr {
	return &SelfExpr{exprTypeBox{base: newBase(pos, end)}}
}

// ParenExpr is a parenthesized expression, kept as its own node so the
// printer can round-trip explicit grouping.
type ParenExpr struct {
	exprTypeBox
	Inner Expr
}

func (e *ParenExpr) Kind() NodeKind { return KindParenExpr }

func NewParenExpr(inner Expr, pos, end lexer.Position) *ParenExpr {
	return &ParenExpr{exprTypeBox: exprTypeBox{base: newBase(pos, end)}, Inner: inner}
}

// UnaryOp is a prefix unary operator: +, -, !, *, &, ++, --.
type UnaryOp struct {
	exprTypeBox
	Operator lexer.TokenType
	Operand  Expr
}

func (e *UnaryOp) Kind() NodeKind { return KindUnaryOp }

func NewUnaryOp(op lexer.TokenType, operand Expr, pos, end lexer.Position) *UnaryOp {
	return &UnaryOp{exprTypeBox: exprTypeBox{base: newBase(pos, end)}, Operator: op, Operand: operand}
}

// BinOp is a binary operator: arithmetic, relational, equality, or
// assignment-family, per the precedence table in §4.4.
type BinOp struct {
	exprTypeBox
	Operator lexer.TokenType
	Left     Expr
	Right    Expr
}

func (e *BinOp) Kind() NodeKind { return KindBinOp }

func NewBinOp(op lexer.TokenType, left, right Expr, pos, end lexer.Position) *BinOp {
	return &BinOp{exprTypeBox: exprTypeBox{base: newBase(pos, end)}, Operator: op, Left: left, Right: right}
}

// CallExpr is `callee(args...)` before the analyzer has determined
// whether callee denotes a free function or a bound method.
type CallExpr struct {
	exprTypeBox
	Callee Expr
	Args   []Expr
}

func (e *CallExpr) Kind() NodeKind { return KindCallExpr }

func NewCallExpr(callee Expr, args []Expr, pos, end lexer.Position) *CallExpr {
	return &CallExpr{exprTypeBox: exprTypeBox{base: newBase(pos, end)}, Callee: callee, Args: args}
}

// CastExpr is an explicit `expr as Type`.
type CastExpr struct {
	exprTypeBox
	Operand  Expr
	TypeExpr TypeExpr
}

func (e *CastExpr) Kind() NodeKind { return KindCastExpr }

func NewCastExpr(operand Expr, te TypeExpr, pos, end lexer.Position) *CastExpr {
	return &CastExpr{exprTypeBox: exprTypeBox{base: newBase(pos, end)}, Operand: operand, TypeExpr: te}
}

// CoercionExpr is a compiler-inserted implicit conversion wrapping Inner;
// it never appears in parser output, only after the type-checker runs.
type CoercionExpr struct {
	exprTypeBox
	Inner Expr
}

func (e *CoercionExpr) Kind() NodeKind { return KindCoercionExpr }

// NewCoercionExpr wraps inner in a CoercionExpr. The caller sets the
// target type with SetType immediately after construction. The position
// is copied from inner so diagnostics still point at the original
// expression.
func NewCoercionExpr(inner Expr) *CoercionExpr {
	return &CoercionExpr{exprTypeBox: exprTypeBox{base: newBase(inner.Pos(), inner.EndPos())}, Inner: inner}
}

// AccessExpr is the parser's form of `outer.inner`, before name
// resolution decides whether it is a namespace-qualified access, a
// member access, or a method call (§4.5.3).
type AccessExpr struct {
	exprTypeBox
	Outer Expr
	Inner string
}

func (e *AccessExpr) Kind() NodeKind { return KindAccessExpr }

func NewAccessExpr(outer Expr, inner string, pos, end lexer.Position) *AccessExpr {
	return &AccessExpr{exprTypeBox: exprTypeBox{base: newBase(pos, end)}, Outer: outer, Inner: inner}
}

// MemberAccess is the resolved form of an AccessExpr that denotes a field
// read, produced by the access transformer.
type MemberAccess struct {
	exprTypeBox
	Instance Expr
	Member   string
	Symbol   any
}

func (e *MemberAccess) Kind() NodeKind { return KindMemberAccess }

func NewMemberAccess(instance Expr, member string, pos, end lexer.Position) *MemberAccess {
	return &MemberAccess{exprTypeBox: exprTypeBox{base: newBase(pos, end)}, Instance: instance, Member: member}
}

// MethodCall is the resolved form of a CallExpr whose callee transformed
// to a bound method.
type MethodCall struct {
	exprTypeBox
	Instance  Expr
	Method    string
	Args      []Expr
	Symbol    any
	IsBuiltin bool
}

func (e *MethodCall) Kind() NodeKind { return KindMethodCall }

func NewMethodCall(instance Expr, method string, args []Expr, pos, end lexer.Position) *MethodCall {
	return &MethodCall{exprTypeBox: exprTypeBox{base: newBase(pos, end)}, Instance: instance, Method: method, Args: args}
}

// MemberInit is one `field = expr` entry inside a ConstructExpr.
type MemberInit struct {
	Name string
	Expr Expr
}

// ConstructExpr is class construction: `Name { f1 = e1, ... }`, optionally
// `Name<TypeArgs>{...}` for template classes.
type ConstructExpr struct {
	exprTypeBox
	ClassTypeExpr TypeExpr
	MemberInits   []MemberInit
}

func (e *ConstructExpr) Kind() NodeKind { return KindConstructExpr }

func NewConstructExpr(classTypeExpr TypeExpr, inits []MemberInit, pos, end lexer.Position) *ConstructExpr {
	return &ConstructExpr{exprTypeBox: exprTypeBox{base: newBase(pos, end)}, ClassTypeExpr: classTypeExpr, MemberInits: inits}
}

// ArrayLit is `[e1, e2, ...]`.
type ArrayLit struct {
	exprTypeBox
	Elements []Expr
}

func (e *ArrayLit) Kind() NodeKind { return KindArrayLit }

func NewArrayLit(elements []Expr, pos, end lexer.Position) *ArrayLit {
	return &ArrayLit{exprTypeBox: exprTypeBox{base: newBase(pos, end)}, Elements: elements}
}

// ArraySubscript is `target[index]`.
type ArraySubscript struct {
	exprTypeBox
	Target Expr
	Index  Expr
}

func (e *ArraySubscript) Kind() NodeKind { return KindArraySubscript }

func NewArraySubscript(target, index Expr, pos, end lexer.Position) *ArraySubscript {
	return &ArraySubscript{exprTypeBox: exprTypeBox{base: newBase(pos, end)}, Target: target, Index: index}
}

// ArraySlice is `target[start..end]`, producing a view.
type ArraySlice struct {
	exprTypeBox
	Target Expr
	Start  Expr
	End    Expr
}

func (e *ArraySlice) Kind() NodeKind { return KindArraySlice }

func NewArraySlice(target, start, end_ Expr, pos, end lexer.Position) *ArraySlice {
	return &ArraySlice{exprTypeBox: exprTypeBox{base: newBase(pos, end)}, Target: target, Start: start, End: end_}
}
