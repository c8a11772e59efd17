package ast

// Clone deep-copies node and everything reachable from it, assigning
// fresh NodeIDs throughout. This is what the template instantiator uses
// to get an independent copy of a generic FnDef/ClassDef body before
// substituting concrete type arguments and re-running analysis on it
// (§4.5.6) — re-analyzing the original template AST in place would
// corrupt it for the next instantiation with different arguments.
func Clone(node Node) Node {
	if node == nil {
		return nil
	}
	switch n := node.(type) {
	case *Root:
		c := NewRoot(n.File, n.pos, n.endPos)
		for _, imp := range n.Imports {
			c.Imports = append(c.Imports, Clone(imp).(*ImportDef))
		}
		for _, d := range n.Defs {
			c.Defs = append(c.Defs, Clone(d).(TopLevelDef))
		}
		return c

	case *VarDecl:
		return NewVarDecl(n.Name, cloneTypeExpr(n.TypeExpr), cloneExpr(n.InitExpr), n.pos, n.endPos)
	case *ParamDecl:
		return NewParamDecl(n.Name, cloneTypeExpr(n.TypeExpr), n.pos, n.endPos)
	case *MemberDecl:
		return NewMemberDecl(n.Name, cloneTypeExpr(n.TypeExpr), cloneExpr(n.InitExpr), n.pos, n.endPos)
	case *TypeParamDecl:
		return NewTypeParamDecl(n.Name, n.pos, n.endPos)

	case *FnDef:
		c := NewFnDef(n.Name, n.pos, n.endPos)
		c.ReturnType = cloneTypeExpr(n.ReturnType)
		c.Exported = n.Exported
		c.Extern = n.Extern
		for _, p := range n.Params {
			c.Params = append(c.Params, Clone(p).(*ParamDecl))
		}
		for _, tp := range n.TypeParams {
			c.TypeParams = append(c.TypeParams, Clone(tp).(*TypeParamDecl))
		}
		if n.Body != nil {
			c.Body = Clone(n.Body).(*CompoundStmt)
		}
		return c
	case *MethodDef:
		c := NewMethodDef(n.Name, n.pos, n.endPos)
		c.ReturnType = cloneTypeExpr(n.ReturnType)
		c.Exported = n.Exported
		for _, p := range n.Params {
			c.Params = append(c.Params, Clone(p).(*ParamDecl))
		}
		for _, tp := range n.TypeParams {
			c.TypeParams = append(c.TypeParams, Clone(tp).(*TypeParamDecl))
		}
		if n.Body != nil {
			c.Body = Clone(n.Body).(*CompoundStmt)
		}
		return c
	case *ClassDef:
		c := NewClassDef(n.Name, n.pos, n.endPos)
		c.Exported = n.Exported
		for _, m := range n.Members {
			c.Members = append(c.Members, Clone(m).(*MemberDecl))
		}
		for _, m := range n.Methods {
			c.Methods = append(c.Methods, Clone(m).(*MethodDef))
		}
		for _, tp := range n.TypeParams {
			c.TypeParams = append(c.TypeParams, Clone(tp).(*TypeParamDecl))
		}
		return c
	case *ImportDef:
		return NewImportDef(n.Namespace, n.Module, n.pos, n.endPos)

	case *CompoundStmt:
		c := NewCompoundStmt(nil, n.pos, n.endPos)
		for _, s := range n.Statements {
			c.Statements = append(c.Statements, cloneStmt(s))
		}
		return c
	case *DeclStmt:
		return NewDeclStmt(Clone(n.Decl).(*VarDecl), n.pos, n.endPos)
	case *ExprStmt:
		return NewExprStmt(cloneExpr(n.Expr), n.pos, n.endPos)
	case *IfStmt:
		return NewIfStmt(cloneExpr(n.Cond), cloneStmt(n.Then), cloneStmt(n.Else), n.pos, n.endPos)
	case *WhileStmt:
		return NewWhileStmt(cloneExpr(n.Cond), cloneStmt(n.Body), n.pos, n.endPos)
	case *ReturnStmt:
		return NewReturnStmt(cloneExpr(n.Value), n.pos, n.endPos)
	case *IncDecStmt:
		return NewIncDecStmt(cloneExpr(n.Target), n.IsIncrement, n.pos, n.endPos)

	case *IntLit:
		return NewIntLit(n.Magnitude, n.Negative, n.Suffix, n.pos, n.endPos)
	case *FloatLit:
		return NewFloatLit(n.Value, n.Suffix, n.pos, n.endPos)
	case *BoolLit:
		return NewBoolLit(n.Value, n.pos, n.endPos)
	case *StrLit:
		return NewStrLit(n.Value, n.pos, n.endPos)
	case *NullLit:
		return NewNullLit(n.pos, n.endPos)
	case *UninitLit:
		return NewUninitLit(n.pos, n.endPos)
	case *RefExpr:
		return NewRefExpr(n.Name, n.pos, n.endPos)
	case *SelfExpr:
		return NewSelfExpr(n.pos, n.endPos)
	case *ParenExpr:
		return NewParenExpr(cloneExpr(n.Inner), n.pos, n.endPos)
	case *UnaryOp:
		return NewUnaryOp(n.Operator, cloneExpr(n.Operand), n.pos, n.endPos)
	case *BinOp:
		return NewBinOp(n.Operator, cloneExpr(n.Left), cloneExpr(n.Right), n.pos, n.endPos)
	case *CallExpr:
		c := NewCallExpr(cloneExpr(n.Callee), nil, n.pos, n.endPos)
		for _, a := range n.Args {
			c.Args = append(c.Args, cloneExpr(a))
		}
		return c
	case *CastExpr:
		return NewCastExpr(cloneExpr(n.Operand), cloneTypeExpr(n.TypeExpr), n.pos, n.endPos)
	case *CoercionExpr:
		c := NewCoercionExpr(cloneExpr(n.Inner))
		c.SetType(n.GetType())
		return c
	case *AccessExpr:
		return NewAccessExpr(cloneExpr(n.Outer), n.Inner, n.pos, n.endPos)
	case *MemberAccess:
		return NewMemberAccess(cloneExpr(n.Instance), n.Member, n.pos, n.endPos)
	case *MethodCall:
		c := NewMethodCall(cloneExpr(n.Instance), n.Method, nil, n.pos, n.endPos)
		for _, a := range n.Args {
			c.Args = append(c.Args, cloneExpr(a))
		}
		c.IsBuiltin = n.IsBuiltin
		return c
	case *ConstructExpr:
		inits := make([]MemberInit, len(n.MemberInits))
		for i, mi := range n.MemberInits {
			inits[i] = MemberInit{Name: mi.Name, Expr: cloneExpr(mi.Expr)}
		}
		return NewConstructExpr(cloneTypeExpr(n.ClassTypeExpr), inits, n.pos, n.endPos)
	case *ArrayLit:
		c := NewArrayLit(nil, n.pos, n.endPos)
		for _, e := range n.Elements {
			c.Elements = append(c.Elements, cloneExpr(e))
		}
		return c
	case *ArraySubscript:
		return NewArraySubscript(cloneExpr(n.Target), cloneExpr(n.Index), n.pos, n.endPos)
	case *ArraySlice:
		return NewArraySlice(cloneExpr(n.Target), cloneExpr(n.Start), cloneExpr(n.End), n.pos, n.endPos)

	case *NamedTypeExpr:
		args := make([]TypeExpr, len(n.TypeArgs))
		for i, a := range n.TypeArgs {
			args[i] = cloneTypeExpr(a)
		}
		return NewNamedTypeExpr(n.Name, args, n.pos, n.endPos)
	case *BuiltinTypeExpr:
		return NewBuiltinTypeExpr(n.Keyword, n.pos, n.endPos)
	case *PointerTypeExpr:
		return NewPointerTypeExpr(cloneTypeExpr(n.Pointee), n.pos, n.endPos)
	case *ArrayTypeExpr:
		return NewArrayTypeExpr(cloneTypeExpr(n.Elem), cloneExpr(n.SizeExpr), n.pos, n.endPos)
	case *ViewTypeExpr:
		return NewViewTypeExpr(cloneTypeExpr(n.Elem), n.pos, n.endPos)

	default:
		panic("ast: Clone does not handle this node kind")
	}
}

func cloneExpr(e Expr) Expr {
	if e == nil {
		return nil
	}
	return Clone(e).(Expr)
}

func cloneStmt(s Stmt) Stmt {
	if s == nil {
		return nil
	}
	return Clone(s).(Stmt)
}

func cloneTypeExpr(te TypeExpr) TypeExpr {
	if te == nil {
		return nil
	}
	return Clone(te).(TypeExpr)
}
