package ast

import (
	"fmt"
	"strings"
)

// Print renders node as an indented outline, one line per node, matching
// the shape golden fixtures compare against. Source locations are
// included only when showLoc is true, since tests normally want to
// compare structure without pinning exact columns.
func Print(node Node, showLoc bool) string {
	var b strings.Builder
	p := &printer{out: &b, showLoc: showLoc}
	Walk(node, p)
	return b.String()
}

type printer struct {
	BaseVisitor
	out     *strings.Builder
	indent  int
	showLoc bool
}

const printIndentWidth = 2

func (p *printer) writeLine(node Node, label string) {
	fmt.Fprintf(p.out, "%*s%s", p.indent, "", label)
	if p.showLoc {
		pos, end := node.Pos(), node.EndPos()
		fmt.Fprintf(p.out, " <%d:%d, %d:%d>", pos.Line, pos.Column, end.Line, end.Column)
	}
	p.out.WriteString("\n")
}

func (p *printer) nested(f func()) {
	p.indent += printIndentWidth
	f()
	p.indent -= printIndentWidth
}

func (p *printer) VisitRoot(n *Root) {
	p.writeLine(n, "Root")
	p.nested(func() {
		for _, imp := range n.Imports {
			Walk(imp, p)
		}
		for _, d := range n.Defs {
			Walk(d, p)
		}
	})
}

func (p *printer) VisitVarDecl(n *VarDecl) {
	label := fmt.Sprintf("VarDecl '%s'", n.Name)
	if n.TypeExpr != nil {
		label += fmt.Sprintf(" '%s'", TypeExprText(n.TypeExpr))
	}
	p.writeLine(n, label)
	if n.InitExpr != nil {
		p.nested(func() { Walk(n.InitExpr, p) })
	}
}

func (p *printer) VisitParamDecl(n *ParamDecl) {
	p.writeLine(n, fmt.Sprintf("ParamDecl '%s' '%s'", n.Name, TypeExprText(n.TypeExpr)))
}

func (p *printer) VisitMemberDecl(n *MemberDecl) {
	label := fmt.Sprintf("MemberDecl '%s'", n.Name)
	if n.TypeExpr != nil {
		label += fmt.Sprintf(" '%s'", TypeExprText(n.TypeExpr))
	}
	p.writeLine(n, label)
	if n.InitExpr != nil {
		p.nested(func() { Walk(n.InitExpr, p) })
	}
}

func (p *printer) VisitTypeParamDecl(n *TypeParamDecl) {
	p.writeLine(n, fmt.Sprintf("TypeParamDecl '%s'", n.Name))
}

func (p *printer) VisitFnDef(n *FnDef) {
	label := fmt.Sprintf("FnDef '%s'", n.Name)
	if n.Exported {
		label += " export"
	}
	if n.Extern != "" {
		label += fmt.Sprintf(" extern=%q", n.Extern)
	}
	p.writeLine(n, label)
	p.nested(func() {
		for _, tp := range n.TypeParams {
			Walk(tp, p)
		}
		for _, param := range n.Params {
			Walk(param, p)
		}
		if n.ReturnType != nil {
			p.writeLine(n.ReturnType, fmt.Sprintf("ReturnType '%s'", TypeExprText(n.ReturnType)))
		}
		if n.Body != nil {
			Walk(n.Body, p)
		}
	})
}

func (p *printer) VisitMethodDef(n *MethodDef) {
	label := fmt.Sprintf("MethodDef '%s'", n.Name)
	if n.Exported {
		label += " export"
	}
	p.writeLine(n, label)
	p.nested(func() {
		for _, tp := range n.TypeParams {
			Walk(tp, p)
		}
		for _, param := range n.Params {
			Walk(param, p)
		}
		if n.ReturnType != nil {
			p.writeLine(n.ReturnType, fmt.Sprintf("ReturnType '%s'", TypeExprText(n.ReturnType)))
		}
		if n.Body != nil {
			Walk(n.Body, p)
		}
	})
}

func (p *printer) VisitClassDef(n *ClassDef) {
	label := fmt.Sprintf("ClassDef '%s'", n.Name)
	if n.Exported {
		label += " export"
	}
	p.writeLine(n, label)
	p.nested(func() {
		for _, tp := range n.TypeParams {
			Walk(tp, p)
		}
		for _, m := range n.Members {
			Walk(m, p)
		}
		for _, m := range n.Methods {
			Walk(m, p)
		}
	})
}

func (p *printer) VisitImportDef(n *ImportDef) {
	p.writeLine(n, fmt.Sprintf("ImportDef '%s' as '%s'", n.Module, n.Namespace))
}

func (p *printer) VisitIntLit(n *IntLit) {
	sign := ""
	if n.Negative {
		sign = "-"
	}
	p.writeLine(n, fmt.Sprintf("IntLit %s%d%s", sign, n.Magnitude, n.Suffix))
}

func (p *printer) VisitFloatLit(n *FloatLit) {
	p.writeLine(n, fmt.Sprintf("FloatLit %g%s", n.Value, n.Suffix))
}

func (p *printer) VisitBoolLit(n *BoolLit) {
	p.writeLine(n, fmt.Sprintf("BoolLit %t", n.Value))
}

func (p *printer) VisitStrLit(n *StrLit) {
	p.writeLine(n, fmt.Sprintf("StrLit %q", n.Value))
}

func (p *printer) VisitNullLit(n *NullLit)       { p.writeLine(n, "NullLit") }
func (p *printer) VisitUninitLit(n *UninitLit)   { p.writeLine(n, "UninitLit") }
func (p *printer) VisitRefExpr(n *RefExpr)       { p.writeLine(n, fmt.Sprintf("RefExpr '%s'", n.Name)) }
func (p *printer) VisitSelfExpr(n *SelfExpr)     { p.writeLine(n, "SelfExpr") }

func (p *printer) VisitParenExpr(n *ParenExpr) {
	p.writeLine(n, "ParenExpr")
	p.nested(func() { Walk(n.Inner, p) })
}

func (p *printer) VisitUnaryOp(n *UnaryOp) {
	p.writeLine(n, fmt.Sprintf("UnaryOp '%s'", unaryOpText(n.Operator)))
	p.nested(func() { Walk(n.Operand, p) })
}

func (p *printer) VisitBinOp(n *BinOp) {
	p.writeLine(n, fmt.Sprintf("BinOp '%s'", binOpText(n.Operator)))
	p.nested(func() {
		Walk(n.Left, p)
		Walk(n.Right, p)
	})
}

func (p *printer) VisitCallExpr(n *CallExpr) {
	p.writeLine(n, "CallExpr")
	p.nested(func() {
		Walk(n.Callee, p)
		for _, a := range n.Args {
			Walk(a, p)
		}
	})
}

func (p *printer) VisitCastExpr(n *CastExpr) {
	p.writeLine(n, fmt.Sprintf("CastExpr '%s'", TypeExprText(n.TypeExpr)))
	p.nested(func() { Walk(n.Operand, p) })
}

func (p *printer) VisitCoercionExpr(n *CoercionExpr) {
	typeStr := "?"
	if n.GetType() != nil {
		typeStr = n.GetType().String()
	}
	p.writeLine(n, fmt.Sprintf("CoercionExpr '%s'", typeStr))
	p.nested(func() { Walk(n.Inner, p) })
}

func (p *printer) VisitAccessExpr(n *AccessExpr) {
	p.writeLine(n, fmt.Sprintf("AccessExpr '%s'", n.Inner))
	p.nested(func() { Walk(n.Outer, p) })
}

func (p *printer) VisitMemberAccess(n *MemberAccess) {
	p.writeLine(n, fmt.Sprintf("MemberAccess '%s'", n.Member))
	p.nested(func() { Walk(n.Instance, p) })
}

func (p *printer) VisitMethodCall(n *MethodCall) {
	label := fmt.Sprintf("MethodCall '%s'", n.Method)
	if n.IsBuiltin {
		label += " builtin"
	}
	p.writeLine(n, label)
	p.nested(func() {
		Walk(n.Instance, p)
		for _, a := range n.Args {
			Walk(a, p)
		}
	})
}

func (p *printer) VisitConstructExpr(n *ConstructExpr) {
	p.writeLine(n, fmt.Sprintf("ConstructExpr '%s'", TypeExprText(n.ClassTypeExpr)))
	p.nested(func() {
		for _, mi := range n.MemberInits {
			fmt.Fprintf(p.out, "%*sMemberInit '%s'\n", p.indent, "", mi.Name)
			p.nested(func() { Walk(mi.Expr, p) })
		}
	})
}

func (p *printer) VisitArrayLit(n *ArrayLit) {
	p.writeLine(n, "ArrayLit")
	p.nested(func() {
		for _, e := range n.Elements {
			Walk(e, p)
		}
	})
}

func (p *printer) VisitArraySubscript(n *ArraySubscript) {
	p.writeLine(n, "ArraySubscript")
	p.nested(func() {
		Walk(n.Target, p)
		Walk(n.Index, p)
	})
}

func (p *printer) VisitArraySlice(n *ArraySlice) {
	p.writeLine(n, "ArraySlice")
	p.nested(func() {
		Walk(n.Target, p)
		if n.Start != nil {
			Walk(n.Start, p)
		}
		if n.End != nil {
			Walk(n.End, p)
		}
	})
}

func (p *printer) VisitCompoundStmt(n *CompoundStmt) {
	p.writeLine(n, "CompoundStmt")
	p.nested(func() {
		for _, s := range n.Statements {
			Walk(s, p)
		}
	})
}

func (p *printer) VisitDeclStmt(n *DeclStmt) {
	p.writeLine(n, "DeclStmt")
	p.nested(func() { Walk(n.Decl, p) })
}

func (p *printer) VisitExprStmt(n *ExprStmt) {
	p.writeLine(n, "ExprStmt")
	p.nested(func() { Walk(n.Expr, p) })
}

func (p *printer) VisitIfStmt(n *IfStmt) {
	p.writeLine(n, "IfStmt")
	p.nested(func() {
		Walk(n.Cond, p)
		Walk(n.Then, p)
		if n.Else != nil {
			Walk(n.Else, p)
		}
	})
}

func (p *printer) VisitWhileStmt(n *WhileStmt) {
	p.writeLine(n, "WhileStmt")
	p.nested(func() {
		Walk(n.Cond, p)
		Walk(n.Body, p)
	})
}

func (p *printer) VisitReturnStmt(n *ReturnStmt) {
	p.writeLine(n, "ReturnStmt")
	if n.Value != nil {
		p.nested(func() { Walk(n.Value, p) })
	}
}

func (p *printer) VisitIncDecStmt(n *IncDecStmt) {
	op := "++"
	if !n.IsIncrement {
		op = "--"
	}
	p.writeLine(n, fmt.Sprintf("IncDecStmt '%s'", op))
	p.nested(func() { Walk(n.Target, p) })
}
