package semantic

import (
	"github.com/shiro-lang/shiro/internal/ast"
	"github.com/shiro-lang/shiro/internal/lexer"
	"github.com/shiro-lang/shiro/internal/types"
)

// ResolveTypeExpr turns parsed type syntax into an interned types.Type,
// resolving array-size constant expressions and binding bare names to
// class symbols through ctx's global scope (§4.1). Declared signatures are
// resolved through it at the start of pass 2 (ResolveDeclaredTypes); type
// annotations inside bodies are resolved as each body is checked. It is
// kept separate from ordinary name-reference resolution since type
// expressions never denote a value.
func ResolveTypeExpr(ctx *Context, te ast.TypeExpr) types.Type {
	switch t := te.(type) {
	case *ast.BuiltinTypeExpr:
		return ctx.Cache.Builtin(builtinKindFor(t.Keyword))

	case *ast.PointerTypeExpr:
		pointee := ResolveTypeExpr(ctx, t.Pointee)
		return ctx.Cache.Pointer(pointee)

	case *ast.ArrayTypeExpr:
		elem := ResolveTypeExpr(ctx, t.Elem)
		size, ok := resolveArraySize(ctx, t.SizeExpr)
		if !ok {
			return ctx.Cache.Invalid()
		}
		return ctx.Cache.Array(elem, size)

	case *ast.ViewTypeExpr:
		elem := ResolveTypeExpr(ctx, t.Elem)
		return ctx.Cache.View(elem)

	case *ast.NamedTypeExpr:
		args := make([]types.Type, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			args[i] = ResolveTypeExpr(ctx, a)
		}
		return resolveNamedType(ctx, t, args)

	default:
		return ctx.Cache.Invalid()
	}
}

// resolveArraySize requires the array-size expression to be a literal,
// non-negative integer, per the original's "more advanced resolution"
// TODO left unimplemented upstream — shiro does not support const-folded
// size expressions beyond a bare integer literal either.
func resolveArraySize(ctx *Context, sizeExpr ast.Expr) (int64, bool) {
	lit, ok := sizeExpr.(*ast.IntLit)
	if !ok {
		ctx.AddError(ctx.DiagPos(sizeExpr.Pos()), "invalid array-size expression")
		return 0, false
	}
	if lit.Negative {
		ctx.AddError(ctx.DiagPos(sizeExpr.Pos()), "array size must be > 0")
		return 0, false
	}
	return int64(lit.Magnitude), true
}

// resolveNamedType binds a bare or generic type name to a class symbol.
// A name bound to a type parameter in the current (or an enclosing)
// scope — e.g. "T" inside a template body — resolves directly to its
// concrete argument type rather than going through the global class
// lookup at all (§4.5.6). Ambiguity across two imported modules is an
// error; a name that also exists in the current module's own namespace
// prefers the local one ("ours wins").
func resolveNamedType(ctx *Context, t *ast.NamedTypeExpr, args []types.Type) types.Type {
	if sym := ctx.Current().Lookup(t.Name); sym != nil && sym.Kind == SymTypeParameter {
		return sym.Type
	}

	overloads := ctx.Current().OverloadsInChain(t.Name)
	if len(overloads) == 0 {
		ctx.AddError(ctx.DiagPos(t.Pos()), "undefined type '%s'", t.Name)
		return ctx.Cache.Invalid()
	}

	var selected *Symbol
	for _, sym := range overloads {
		isOurs := sym.ParentNamespace == nil || sym.ParentNamespace == ctx.ModuleNamespace
		switch {
		case isOurs:
			selected = sym
		case selected == nil:
			selected = sym
		default:
			ctx.AddError(ctx.DiagPos(t.Pos()), "ambiguous type name '%s'", t.Name)
		}
		if isOurs {
			break
		}
	}

	switch {
	case selected == nil:
		ctx.AddError(ctx.DiagPos(t.Pos()), "'%s' does not name a type", t.Name)
		return ctx.Cache.Invalid()
	case selected.Kind == SymClass:
		return ctx.Cache.Class(selected.Name, selected, args)
	case selected.Kind == SymClassInstance:
		return ctx.Cache.Class(selected.Name, selected, selected.TypeArguments)
	case selected.Kind == SymTemplateClass:
		// Not instantiated here — a ConstructExpr or a call site drives
		// instantiation through TemplateInstantiator. Until that runs,
		// this name stands for an as-yet-unresolved generic (§4.1).
		return ctx.Cache.UserUnresolved(selected.Name, args)
	default:
		ctx.AddError(ctx.DiagPos(t.Pos()), "'%s' does not name a type", t.Name)
		return ctx.Cache.Invalid()
	}
}

func builtinKindFor(kw lexer.TokenType) types.BuiltinKind {
	switch kw {
	case lexer.BOOL:
		return types.Bool
	case lexer.VOID:
		return types.Void
	case lexer.I8:
		return types.I8
	case lexer.I16:
		return types.I16
	case lexer.I32:
		return types.I32
	case lexer.I64:
		return types.I64
	case lexer.U8:
		return types.U8
	case lexer.U16:
		return types.U16
	case lexer.U32:
		return types.U32
	case lexer.U64:
		return types.U64
	case lexer.ISIZE:
		return types.Isize
	case lexer.USIZE:
		return types.Usize
	case lexer.F32:
		return types.F32
	case lexer.F64:
		return types.F64
	default:
		return types.Void
	}
}
