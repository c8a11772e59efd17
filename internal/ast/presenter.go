package ast

import (
	"fmt"
	"strings"

	"github.com/shiro-lang/shiro/internal/lexer"
)

// Present renders node back into something close to surface syntax, on a
// single line, for use in diagnostic messages (e.g. "cannot call
// Present(callee)(args)") and REPL-style echoing. It does not attempt to
// reproduce the original source exactly — whitespace and comments are
// lost — only an unambiguous one-line fragment.
func Present(node Node) string {
	var b strings.Builder
	p := &presenter{out: &b}
	Walk(node, p)
	return b.String()
}

type presenter struct {
	BaseVisitor
	out *strings.Builder
}

func (p *presenter) self() Visitor { return p }

func (p *presenter) VisitRoot(n *Root) {
	fmt.Fprintf(p.out, "Source: %s", n.File)
}

func (p *presenter) VisitVarDecl(n *VarDecl) {
	fmt.Fprintf(p.out, "var %s", n.Name)
	if n.TypeExpr != nil {
		p.out.WriteString(": ")
		p.out.WriteString(TypeExprText(n.TypeExpr))
	}
	if n.InitExpr != nil {
		p.out.WriteString(" = ")
		Walk(n.InitExpr, p)
	}
}

func (p *presenter) VisitParamDecl(n *ParamDecl) {
	fmt.Fprintf(p.out, "%s: ", n.Name)
	if n.TypeExpr != nil {
		p.out.WriteString(TypeExprText(n.TypeExpr))
	}
}

func (p *presenter) VisitMemberDecl(n *MemberDecl) {
	fmt.Fprintf(p.out, "%s: ", n.Name)
	if n.TypeExpr != nil {
		p.out.WriteString(TypeExprText(n.TypeExpr))
	}
}

func (p *presenter) VisitTypeParamDecl(n *TypeParamDecl) { p.out.WriteString(n.Name) }

func (p *presenter) VisitFnDef(n *FnDef) {
	if n.Exported {
		p.out.WriteString("export ")
	}
	fmt.Fprintf(p.out, "fn %s(", n.Name)
	p.presentParams(n.Params)
	p.out.WriteString(")")
	if n.ReturnType != nil {
		p.out.WriteString(" -> ")
		p.out.WriteString(TypeExprText(n.ReturnType))
	}
}

func (p *presenter) VisitMethodDef(n *MethodDef) {
	fmt.Fprintf(p.out, "fn %s(", n.Name)
	p.presentParams(n.Params)
	p.out.WriteString(")")
	if n.ReturnType != nil {
		p.out.WriteString(" -> ")
		p.out.WriteString(TypeExprText(n.ReturnType))
	}
}

func (p *presenter) presentParams(params []*ParamDecl) {
	for i, param := range params {
		Walk(param, p)
		if i+1 < len(params) {
			p.out.WriteString(", ")
		}
	}
}

func (p *presenter) VisitClassDef(n *ClassDef) {
	fmt.Fprintf(p.out, "class %s", n.Name)
}

func (p *presenter) VisitImportDef(n *ImportDef) {
	fmt.Fprintf(p.out, "import %s as %s", n.Module, n.Namespace)
}

func (p *presenter) VisitIntLit(n *IntLit) {
	if n.Negative {
		p.out.WriteString("-")
	}
	fmt.Fprintf(p.out, "%d%s", n.Magnitude, n.Suffix)
}

func (p *presenter) VisitFloatLit(n *FloatLit) {
	fmt.Fprintf(p.out, "%g%s", n.Value, n.Suffix)
}

func (p *presenter) VisitBoolLit(n *BoolLit) {
	if n.Value {
		p.out.WriteString("true")
	} else {
		p.out.WriteString("false")
	}
}

func (p *presenter) VisitStrLit(n *StrLit) {
	fmt.Fprintf(p.out, "%q", n.Value)
}

func (p *presenter) VisitNullLit(n *NullLit)       { p.out.WriteString("null") }
func (p *presenter) VisitUninitLit(n *UninitLit)   { p.out.WriteString("uninit") }
func (p *presenter) VisitRefExpr(n *RefExpr)       { p.out.WriteString(n.Name) }
func (p *presenter) VisitSelfExpr(n *SelfExpr)     { p.out.WriteString("self") }
func (p *presenter) VisitParenExpr(n *ParenExpr) {
	p.out.WriteString("(")
	Walk(n.Inner, p)
	p.out.WriteString(")")
}

func (p *presenter) VisitUnaryOp(n *UnaryOp) {
	p.out.WriteString(unaryOpText(n.Operator))
	Walk(n.Operand, p)
}

func (p *presenter) VisitBinOp(n *BinOp) {
	Walk(n.Left, p)
	fmt.Fprintf(p.out, " %s ", binOpText(n.Operator))
	Walk(n.Right, p)
}

func (p *presenter) VisitCallExpr(n *CallExpr) {
	Walk(n.Callee, p)
	p.out.WriteString("(")
	for i, a := range n.Args {
		Walk(a, p)
		if i+1 < len(n.Args) {
			p.out.WriteString(", ")
		}
	}
	p.out.WriteString(")")
}

func (p *presenter) VisitCastExpr(n *CastExpr) {
	Walk(n.Operand, p)
	p.out.WriteString(" as ")
	p.out.WriteString(TypeExprText(n.TypeExpr))
}

func (p *presenter) VisitCoercionExpr(n *CoercionExpr) {
	Walk(n.Inner, p)
}

func (p *presenter) VisitAccessExpr(n *AccessExpr) {
	Walk(n.Outer, p)
	fmt.Fprintf(p.out, ".%s", n.Inner)
}

func (p *presenter) VisitMemberAccess(n *MemberAccess) {
	Walk(n.Instance, p)
	fmt.Fprintf(p.out, ".%s", n.Member)
}

func (p *presenter) VisitMethodCall(n *MethodCall) {
	Walk(n.Instance, p)
	fmt.Fprintf(p.out, ".%s(", n.Method)
	for i, a := range n.Args {
		Walk(a, p)
		if i+1 < len(n.Args) {
			p.out.WriteString(", ")
		}
	}
	p.out.WriteString(")")
}

func (p *presenter) VisitConstructExpr(n *ConstructExpr) {
	p.out.WriteString(TypeExprText(n.ClassTypeExpr))
	p.out.WriteString("{")
	for i, mi := range n.MemberInits {
		fmt.Fprintf(p.out, "%s = ", mi.Name)
		Walk(mi.Expr, p)
		if i+1 < len(n.MemberInits) {
			p.out.WriteString(", ")
		}
	}
	p.out.WriteString("}")
}

func (p *presenter) VisitArrayLit(n *ArrayLit) {
	p.out.WriteString("[")
	for i, e := range n.Elements {
		Walk(e, p)
		if i+1 < len(n.Elements) {
			p.out.WriteString(", ")
		}
	}
	p.out.WriteString("]")
}

func (p *presenter) VisitArraySubscript(n *ArraySubscript) {
	Walk(n.Target, p)
	p.out.WriteString("[")
	Walk(n.Index, p)
	p.out.WriteString("]")
}

func (p *presenter) VisitArraySlice(n *ArraySlice) {
	Walk(n.Target, p)
	p.out.WriteString("[")
	if n.Start != nil {
		Walk(n.Start, p)
	}
	p.out.WriteString("..")
	if n.End != nil {
		Walk(n.End, p)
	}
	p.out.WriteString("]")
}

func (p *presenter) VisitCompoundStmt(n *CompoundStmt) {
	p.out.WriteString("{ ... }")
}

func (p *presenter) VisitDeclStmt(n *DeclStmt) { Walk(n.Decl, p) }
func (p *presenter) VisitExprStmt(n *ExprStmt) { Walk(n.Expr, p) }

func (p *presenter) VisitIfStmt(n *IfStmt) {
	p.out.WriteString("if (")
	Walk(n.Cond, p)
	p.out.WriteString(") ...")
}

func (p *presenter) VisitWhileStmt(n *WhileStmt) {
	p.out.WriteString("while (")
	Walk(n.Cond, p)
	p.out.WriteString(") ...")
}

func (p *presenter) VisitReturnStmt(n *ReturnStmt) {
	p.out.WriteString("return")
	if n.Value != nil {
		p.out.WriteString(" ")
		Walk(n.Value, p)
	}
}

func (p *presenter) VisitIncDecStmt(n *IncDecStmt) {
	Walk(n.Target, p)
	if n.IsIncrement {
		p.out.WriteString("++")
	} else {
		p.out.WriteString("--")
	}
}

func unaryOpText(t lexer.TokenType) string {
	switch t {
	case lexer.PLUS:
		return "+"
	case lexer.MINUS:
		return "-"
	case lexer.BANG:
		return "!"
	case lexer.STAR:
		return "*"
	case lexer.AMP:
		return "&"
	case lexer.INC:
		return "++"
	case lexer.DEC:
		return "--"
	default:
		return t.String()
	}
}

// TypeExprText renders a parsed type expression back to its surface
// syntax, e.g. "*view[i32]" or "Box<i32>". Used by both the presenter and
// the printer since type syntax never needs the indented outline form.
func TypeExprText(te TypeExpr) string {
	if te == nil {
		return ""
	}
	switch t := te.(type) {
	case *NamedTypeExpr:
		if len(t.TypeArgs) == 0 {
			return t.Name
		}
		parts := make([]string, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			parts[i] = TypeExprText(a)
		}
		return t.Name + "<" + strings.Join(parts, ", ") + ">"
	case *BuiltinTypeExpr:
		return t.Keyword.String()
	case *PointerTypeExpr:
		return "*" + TypeExprText(t.Pointee)
	case *ArrayTypeExpr:
		return "[" + TypeExprText(t.Elem) + ", " + Present(t.SizeExpr) + "]"
	case *ViewTypeExpr:
		return "view[" + TypeExprText(t.Elem) + "]"
	default:
		return "?"
	}
}

func binOpText(t lexer.TokenType) string {
	switch t {
	case lexer.PLUS:
		return "+"
	case lexer.MINUS:
		return "-"
	case lexer.STAR:
		return "*"
	case lexer.SLASH:
		return "/"
	case lexer.PERCENT:
		return "%"
	case lexer.EQ:
		return "=="
	case lexer.NEQ:
		return "!="
	case lexer.LT:
		return "<"
	case lexer.LE:
		return "<="
	case lexer.GT:
		return ">"
	case lexer.GE:
		return ">="
	case lexer.ASSIGN:
		return "="
	case lexer.PLUSEQ:
		return "+="
	case lexer.MINUSEQ:
		return "-="
	case lexer.STAREQ:
		return "*="
	case lexer.SLASHEQ:
		return "/="
	case lexer.PERCENTEQ:
		return "%="
	default:
		return t.String()
	}
}
