package semantic

import (
	"github.com/shiro-lang/shiro/internal/ast"
	"github.com/shiro-lang/shiro/internal/types"
)

// resolveAccess is the access transformer (§4.5.3): given an AccessExpr
// whose Outer operand has already been type-checked, it decides whether
// outer.member denotes a field read or a method — the parser cannot tell
// these apart since it never looks at types, only the analyzer can. It
// returns the node that should replace the AccessExpr.
//
// Field access rewrites to *ast.MemberAccess. A bare method reference
// becomes a *ast.MemberAccess too, typed Invalid. A call
// `outer.member(args)` does not pass through here: transformCallExpr
// hands it to resolveMethodCall, which does its own member lookup once it
// has the arguments and builds the MethodCall.
func (a *Analyzer) resolveAccess(outer ast.Expr, member string, node *ast.AccessExpr) ast.Expr {
	outerType := outer.GetType()
	if outerType == nil || outerType.Kind() == types.KindInvalid {
		return a.poison(node)
	}

	classSym := a.classSymbolOf(outerType)
	if classSym == nil {
		a.ctx.AddError(a.ctx.DiagPos(node.Pos()), "type '%s' has no members", outerType.String())
		return a.poison(node)
	}

	memberSym := classSym.Members.LookupLocal(member)
	if memberSym == nil {
		a.ctx.AddError(a.ctx.DiagPos(node.Pos()), "'%s' has no member '%s'", classSym.Name, member)
		return a.poison(node)
	}

	access := ast.NewMemberAccess(outer, member, node.Pos(), node.EndPos())
	access.Symbol = memberSym
	switch memberSym.Kind {
	case SymMember:
		access.SetType(a.resolveMemberType(classSym, memberSym))
	case SymMethod:
		access.SetType(a.ctx.Cache.Invalid()) // a bare method reference carries no value type
	default:
		access.SetType(a.ctx.Cache.Invalid())
	}
	return access
}

// classSymbolOf returns the class symbol behind t, looking through a
// single level of pointer indirection since shiro auto-derefs one `*`
// for member access (§4.5.3's Open Question, resolved in DESIGN.md).
func (a *Analyzer) classSymbolOf(t types.Type) *Symbol {
	if t.Kind() == types.KindPointer {
		t = types.PointeeOf(t)
	}
	if t.Kind() != types.KindClass {
		return nil
	}
	sym, ok := types.ClassSymbol(t).(*Symbol)
	if !ok {
		return nil
	}
	return sym
}

// resolveMemberType returns memberSym's type, resolving its declared
// TypeExpr in the current scope the first time it is needed and caching
// the result on memberSym.
func (a *Analyzer) resolveMemberType(classSym, memberSym *Symbol) types.Type {
	if memberSym.Type != nil {
		return memberSym.Type
	}
	decl, ok := memberSym.Node.(*ast.MemberDecl)
	if !ok || decl.TypeExpr == nil {
		return a.ctx.Cache.Invalid()
	}
	memberSym.Type = ResolveTypeExpr(a.ctx, decl.TypeExpr)
	return memberSym.Type
}
