package ast

// Transformer is the rewriting counterpart to Visitor (§3.2, §4.2): each
// callback may return a replacement node. Callers are responsible for
// substituting the returned node for the original child and discarding
// the original subtree when it differs — this is the mechanism by which
// AccessExpr becomes MemberAccess or MethodCall once name resolution has
// run (§4.5.3).
//
// Only expression-producing and statement-producing transforms are
// modeled as a capability surface; declarations and definitions are
// mutated in place by the semantic passes since nothing in this core
// replaces a whole FnDef or ClassDef wholesale except template
// instantiation, which clones via Clone (clone.go, called from
// templates.go in the semantic package) rather than through this
// visitor-shaped API.
type Transformer interface {
	TransformExpr(Expr) Expr
	TransformStmt(Stmt) Stmt
}

// TransformChildren walks every child of node, replacing each with the
// result of t.TransformExpr/TransformStmt, then returns node itself with
// its children updated in place. It does not transform node itself —
// callers call t.TransformExpr(node) (or TransformStmt) first and only
// fall back to TransformChildren for the generic default case.
func TransformChildren(node Node, t Transformer) {
	switch n := node.(type) {
	case *Root:
		for _, d := range n.Defs {
			TransformChildren(d, t) // top-level defs are mutated in place, not replaced
		}
	case *VarDecl:
		if n.InitExpr != nil {
			n.InitExpr = t.TransformExpr(n.InitExpr)
		}
	case *MemberDecl:
		if n.InitExpr != nil {
			n.InitExpr = t.TransformExpr(n.InitExpr)
		}
	case *FnDef:
		if n.Body != nil {
			n.Body = t.TransformStmt(n.Body).(*CompoundStmt)
		}
	case *MethodDef:
		if n.Body != nil {
			n.Body = t.TransformStmt(n.Body).(*CompoundStmt)
		}
	case *ClassDef:
		for _, m := range n.Members {
			TransformChildren(m, t)
		}
		for _, m := range n.Methods {
			TransformChildren(m, t)
		}
	case *ParenExpr:
		n.Inner = t.TransformExpr(n.Inner)
	case *UnaryOp:
		n.Operand = t.TransformExpr(n.Operand)
	case *BinOp:
		n.Left = t.TransformExpr(n.Left)
		n.Right = t.TransformExpr(n.Right)
	case *CallExpr:
		n.Callee = t.TransformExpr(n.Callee)
		for i, a := range n.Args {
			n.Args[i] = t.TransformExpr(a)
		}
	case *CastExpr:
		n.Operand = t.TransformExpr(n.Operand)
	case *CoercionExpr:
		n.Inner = t.TransformExpr(n.Inner)
	case *AccessExpr:
		n.Outer = t.TransformExpr(n.Outer)
	case *MemberAccess:
		n.Instance = t.TransformExpr(n.Instance)
	case *MethodCall:
		n.Instance = t.TransformExpr(n.Instance)
		for i, a := range n.Args {
			n.Args[i] = t.TransformExpr(a)
		}
	case *ConstructExpr:
		for i, mi := range n.MemberInits {
			mi.Expr = t.TransformExpr(mi.Expr)
			n.MemberInits[i] = mi
		}
	case *ArrayLit:
		for i, e := range n.Elements {
			n.Elements[i] = t.TransformExpr(e)
		}
	case *ArraySubscript:
		n.Target = t.TransformExpr(n.Target)
		n.Index = t.TransformExpr(n.Index)
	case *ArraySlice:
		n.Target = t.TransformExpr(n.Target)
		if n.Start != nil {
			n.Start = t.TransformExpr(n.Start)
		}
		if n.End != nil {
			n.End = t.TransformExpr(n.End)
		}
	case *CompoundStmt:
		for i, s := range n.Statements {
			n.Statements[i] = t.TransformStmt(s)
		}
	case *DeclStmt:
		TransformChildren(n.Decl, t)
	case *ExprStmt:
		if n.Expr != nil {
			n.Expr = t.TransformExpr(n.Expr)
		}
	case *IfStmt:
		n.Cond = t.TransformExpr(n.Cond)
		n.Then = t.TransformStmt(n.Then)
		if n.Else != nil {
			n.Else = t.TransformStmt(n.Else)
		}
	case *WhileStmt:
		n.Cond = t.TransformExpr(n.Cond)
		n.Body = t.TransformStmt(n.Body)
	case *ReturnStmt:
		if n.Value != nil {
			n.Value = t.TransformExpr(n.Value)
		}
	case *IncDecStmt:
		n.Target = t.TransformExpr(n.Target)
	}
}
