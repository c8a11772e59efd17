package ast

// Visitor is the read-only traversal capability described in §3.2: one
// callback per concrete node kind, dispatched by a type switch in Walk.
// Implementations that only care about a few kinds can embed
// BaseVisitor and override just those methods.
type Visitor interface {
	VisitRoot(*Root)

	VisitVarDecl(*VarDecl)
	VisitParamDecl(*ParamDecl)
	VisitMemberDecl(*MemberDecl)
	VisitTypeParamDecl(*TypeParamDecl)

	VisitFnDef(*FnDef)
	VisitMethodDef(*MethodDef)
	VisitClassDef(*ClassDef)
	VisitImportDef(*ImportDef)

	VisitIntLit(*IntLit)
	VisitFloatLit(*FloatLit)
	VisitBoolLit(*BoolLit)
	VisitStrLit(*StrLit)
	VisitNullLit(*NullLit)
	VisitUninitLit(*UninitLit)
	VisitRefExpr(*RefExpr)
	VisitSelfExpr(*SelfExpr)
	VisitParenExpr(*ParenExpr)
	VisitUnaryOp(*UnaryOp)
	VisitBinOp(*BinOp)
	VisitCallExpr(*CallExpr)
	VisitCastExpr(*CastExpr)
	VisitCoercionExpr(*CoercionExpr)
	VisitAccessExpr(*AccessExpr)
	VisitMemberAccess(*MemberAccess)
	VisitMethodCall(*MethodCall)
	VisitConstructExpr(*ConstructExpr)
	VisitArrayLit(*ArrayLit)
	VisitArraySubscript(*ArraySubscript)
	VisitArraySlice(*ArraySlice)

	VisitCompoundStmt(*CompoundStmt)
	VisitDeclStmt(*DeclStmt)
	VisitExprStmt(*ExprStmt)
	VisitIfStmt(*IfStmt)
	VisitWhileStmt(*WhileStmt)
	VisitReturnStmt(*ReturnStmt)
	VisitIncDecStmt(*IncDecStmt)
}

// BaseVisitor implements every Visitor method as a walk into the node's
// children using the same Visitor, so embedders only need to override
// the kinds they care about.
type BaseVisitor struct{ V Visitor }

func (b BaseVisitor) self() Visitor {
	if b.V != nil {
		return b.V
	}
	return b
}

func (b BaseVisitor) VisitRoot(n *Root) {
	for _, imp := range n.Imports {
		Walk(imp, b.self())
	}
	for _, d := range n.Defs {
		Walk(d, b.self())
	}
}

func (b BaseVisitor) VisitVarDecl(n *VarDecl) {
	if n.TypeExpr != nil {
		Walk(n.TypeExpr, b.self())
	}
	if n.InitExpr != nil {
		Walk(n.InitExpr, b.self())
	}
}
func (b BaseVisitor) VisitParamDecl(n *ParamDecl) {
	if n.TypeExpr != nil {
		Walk(n.TypeExpr, b.self())
	}
}
func (b BaseVisitor) VisitMemberDecl(n *MemberDecl) {
	if n.TypeExpr != nil {
		Walk(n.TypeExpr, b.self())
	}
	if n.InitExpr != nil {
		Walk(n.InitExpr, b.self())
	}
}
func (b BaseVisitor) VisitTypeParamDecl(n *TypeParamDecl) {}

func (b BaseVisitor) VisitFnDef(n *FnDef) {
	for _, p := range n.Params {
		Walk(p, b.self())
	}
	if n.ReturnType != nil {
		Walk(n.ReturnType, b.self())
	}
	if n.Body != nil {
		Walk(n.Body, b.self())
	}
}
func (b BaseVisitor) VisitMethodDef(n *MethodDef) {
	for _, p := range n.Params {
		Walk(p, b.self())
	}
	if n.ReturnType != nil {
		Walk(n.ReturnType, b.self())
	}
	if n.Body != nil {
		Walk(n.Body, b.self())
	}
}
func (b BaseVisitor) VisitClassDef(n *ClassDef) {
	for _, m := range n.Members {
		Walk(m, b.self())
	}
	for _, m := range n.Methods {
		Walk(m, b.self())
	}
}
func (b BaseVisitor) VisitImportDef(n *ImportDef) {}

func (b BaseVisitor) VisitIntLit(n *IntLit)       {}
func (b BaseVisitor) VisitFloatLit(n *FloatLit)   {}
func (b BaseVisitor) VisitBoolLit(n *BoolLit)     {}
func (b BaseVisitor) VisitStrLit(n *StrLit)       {}
func (b BaseVisitor) VisitNullLit(n *NullLit)     {}
func (b BaseVisitor) VisitUninitLit(n *UninitLit) {}
func (b BaseVisitor) VisitRefExpr(n *RefExpr)     {}
func (b BaseVisitor) VisitSelfExpr(n *SelfExpr)   {}
func (b BaseVisitor) VisitParenExpr(n *ParenExpr) { Walk(n.Inner, b.self()) }
func (b BaseVisitor) VisitUnaryOp(n *UnaryOp)     { Walk(n.Operand, b.self()) }
func (b BaseVisitor) VisitBinOp(n *BinOp) {
	Walk(n.Left, b.self())
	Walk(n.Right, b.self())
}
func (b BaseVisitor) VisitCallExpr(n *CallExpr) {
	Walk(n.Callee, b.self())
	for _, a := range n.Args {
		Walk(a, b.self())
	}
}
func (b BaseVisitor) VisitCastExpr(n *CastExpr) {
	Walk(n.Operand, b.self())
	Walk(n.TypeExpr, b.self())
}
func (b BaseVisitor) VisitCoercionExpr(n *CoercionExpr) { Walk(n.Inner, b.self()) }
func (b BaseVisitor) VisitAccessExpr(n *AccessExpr)     { Walk(n.Outer, b.self()) }
func (b BaseVisitor) VisitMemberAccess(n *MemberAccess) { Walk(n.Instance, b.self()) }
func (b BaseVisitor) VisitMethodCall(n *MethodCall) {
	Walk(n.Instance, b.self())
	for _, a := range n.Args {
		Walk(a, b.self())
	}
}
func (b BaseVisitor) VisitConstructExpr(n *ConstructExpr) {
	Walk(n.ClassTypeExpr, b.self())
	for _, mi := range n.MemberInits {
		Walk(mi.Expr, b.self())
	}
}
func (b BaseVisitor) VisitArrayLit(n *ArrayLit) {
	for _, e := range n.Elements {
		Walk(e, b.self())
	}
}
func (b BaseVisitor) VisitArraySubscript(n *ArraySubscript) {
	Walk(n.Target, b.self())
	Walk(n.Index, b.self())
}
func (b BaseVisitor) VisitArraySlice(n *ArraySlice) {
	Walk(n.Target, b.self())
	if n.Start != nil {
		Walk(n.Start, b.self())
	}
	if n.End != nil {
		Walk(n.End, b.self())
	}
}

func (b BaseVisitor) VisitCompoundStmt(n *CompoundStmt) {
	for _, s := range n.Statements {
		Walk(s, b.self())
	}
}
func (b BaseVisitor) VisitDeclStmt(n *DeclStmt) { Walk(n.Decl, b.self()) }
func (b BaseVisitor) VisitExprStmt(n *ExprStmt) { Walk(n.Expr, b.self()) }
func (b BaseVisitor) VisitIfStmt(n *IfStmt) {
	Walk(n.Cond, b.self())
	Walk(n.Then, b.self())
	if n.Else != nil {
		Walk(n.Else, b.self())
	}
}
func (b BaseVisitor) VisitWhileStmt(n *WhileStmt) {
	Walk(n.Cond, b.self())
	Walk(n.Body, b.self())
}
func (b BaseVisitor) VisitReturnStmt(n *ReturnStmt) {
	if n.Value != nil {
		Walk(n.Value, b.self())
	}
}
func (b BaseVisitor) VisitIncDecStmt(n *IncDecStmt) { Walk(n.Target, b.self()) }

// Walk dispatches node to the matching Visitor method by concrete type.
// Type-expression nodes are not walked at all: no Visitor method is
// called for them and their child TypeExprs are not visited.
func Walk(node Node, v Visitor) {
	switch n := node.(type) {
	case *Root:
		v.VisitRoot(n)
	case *VarDecl:
		v.VisitVarDecl(n)
	case *ParamDecl:
		v.VisitParamDecl(n)
	case *MemberDecl:
		v.VisitMemberDecl(n)
	case *TypeParamDecl:
		v.VisitTypeParamDecl(n)
	case *FnDef:
		v.VisitFnDef(n)
	case *MethodDef:
		v.VisitMethodDef(n)
	case *ClassDef:
		v.VisitClassDef(n)
	case *ImportDef:
		v.VisitImportDef(n)
	case *IntLit:
		v.VisitIntLit(n)
	case *FloatLit:
		v.VisitFloatLit(n)
	case *BoolLit:
		v.VisitBoolLit(n)
	case *StrLit:
		v.VisitStrLit(n)
	case *NullLit:
		v.VisitNullLit(n)
	case *UninitLit:
		v.VisitUninitLit(n)
	case *RefExpr:
		v.VisitRefExpr(n)
	case *SelfExpr:
		v.VisitSelfExpr(n)
	case *ParenExpr:
		v.VisitParenExpr(n)
	case *UnaryOp:
		v.VisitUnaryOp(n)
	case *BinOp:
		v.VisitBinOp(n)
	case *CallExpr:
		v.VisitCallExpr(n)
	case *CastExpr:
		v.VisitCastExpr(n)
	case *CoercionExpr:
		v.VisitCoercionExpr(n)
	case *AccessExpr:
		v.VisitAccessExpr(n)
	case *MemberAccess:
		v.VisitMemberAccess(n)
	case *MethodCall:
		v.VisitMethodCall(n)
	case *ConstructExpr:
		v.VisitConstructExpr(n)
	case *ArrayLit:
		v.VisitArrayLit(n)
	case *ArraySubscript:
		v.VisitArraySubscript(n)
	case *ArraySlice:
		v.VisitArraySlice(n)
	case *CompoundStmt:
		v.VisitCompoundStmt(n)
	case *DeclStmt:
		v.VisitDeclStmt(n)
	case *ExprStmt:
		v.VisitExprStmt(n)
	case *IfStmt:
		v.VisitIfStmt(n)
	case *WhileStmt:
		v.VisitWhileStmt(n)
	case *ReturnStmt:
		v.VisitReturnStmt(n)
	case *IncDecStmt:
		v.VisitIncDecStmt(n)
	case TypeExpr:
		// type-expression nodes carry no visitor-relevant children beyond
		// what callers that care about types already walk explicitly.
	}
}
