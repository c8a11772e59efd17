package semantic

import (
	"github.com/shiro-lang/shiro/internal/ast"
	"github.com/shiro-lang/shiro/internal/lexer"
	"github.com/shiro-lang/shiro/internal/types"
)

// Analyzer is pass 2 (§4.5.2): a transformer that performs name
// resolution, coercion insertion, definite-assignment analysis and
// template instantiation over a module already declared by a
// DeclCollector. One Analyzer is used per module; the TemplateInstantiator
// it holds is typically shared across every module in a build-driver run
// so identical instantiations collapse (§4.5.6).
type Analyzer struct {
	ctx       *Context
	templates *TemplateInstantiator

	initState   *InitTracker
	currentFn   *Symbol
	currentSelf types.Type // type of `self` inside the method being checked; nil outside a method

	instantiated map[*Symbol]bool // instance symbols whose body has already been checked
}

func NewAnalyzer(ctx *Context, templates *TemplateInstantiator) *Analyzer {
	return &Analyzer{ctx: ctx, templates: templates, initState: NewInitTracker(), instantiated: make(map[*Symbol]bool)}
}

// poison marks node as having failed analysis: its Type becomes the
// Invalid sentinel so later checks that read it do not cascade further
// diagnostics for the same root cause (§7).
func (a *Analyzer) poison(node ast.Expr) ast.Expr {
	node.SetType(a.ctx.Cache.Invalid())
	return node
}

// ResolveDeclaredTypes runs the type_expr_solver/type_resolver pass over
// every symbol DeclCollector bound in the global scope, populating each
// Symbol's Type/ReturnType/Parameters/Members fields. It must run before
// any function or method body is checked, since bodies reference sibling
// declarations by their resolved signature (§4.1, §4.5.2).
func (a *Analyzer) ResolveDeclaredTypes() {
	for _, sym := range a.ctx.Global.All() {
		a.resolveDeclaredSymbol(sym)
	}
}

func (a *Analyzer) resolveDeclaredSymbol(sym *Symbol) {
	switch sym.Kind {
	case SymFunction, SymTemplateFunction:
		a.withTypeParamPlaceholders(sym.TypeParameters, func() {
			fn := sym.Node.(*ast.FnDef)
			if fn.ReturnType != nil {
				sym.ReturnType = ResolveTypeExpr(a.ctx, fn.ReturnType)
			} else {
				sym.ReturnType = a.ctx.Cache.Builtin(types.Void)
			}
			for i, p := range sym.Parameters {
				p.Type = ResolveTypeExpr(a.ctx, fn.Params[i].TypeExpr)
			}
		})
	case SymClass, SymTemplateClass:
		a.withTypeParamPlaceholders(sym.TypeParameters, func() {
			for _, memberSym := range sym.Members.All() {
				if memberSym.Kind == SymMember {
					a.resolveMemberType(sym, memberSym)
				} else if memberSym.Kind == SymMethod {
					meth := memberSym.Node.(*ast.MethodDef)
					if meth.ReturnType != nil {
						memberSym.ReturnType = ResolveTypeExpr(a.ctx, meth.ReturnType)
					} else {
						memberSym.ReturnType = a.ctx.Cache.Builtin(types.Void)
					}
					for i, p := range memberSym.Parameters {
						p.Type = ResolveTypeExpr(a.ctx, meth.Params[i].TypeExpr)
					}
				}
			}
		})
	}
}

// withTypeParamPlaceholders binds each type parameter to a fresh
// types.Variable for the duration of f, so a template's own declared
// signatures resolve without a concrete instantiation (§3.1's Variable
// kind: "valid only within a template's scope").
func (a *Analyzer) withTypeParamPlaceholders(typeParams []*Symbol, f func()) {
	if len(typeParams) == 0 {
		f()
		return
	}
	scope := a.ctx.PushScope(ScopeFunction)
	for _, tp := range typeParams {
		scope.Insert(&Symbol{Name: tp.Name, Kind: SymTypeParameter, Node: tp.Node, Type: a.ctx.Cache.Variable(tp.Name)})
	}
	f()
	a.ctx.PopScope()
}

// AnalyzeRoot type-checks every function and method body declared in
// root, assuming ResolveDeclaredTypes has already run.
func (a *Analyzer) AnalyzeRoot(root *ast.Root) {
	for _, def := range root.Defs {
		switch d := def.(type) {
		case *ast.FnDef:
			if d.IsTemplate() {
				continue // template bodies are checked per-instantiation, not standalone
			}
			sym := a.ctx.Global.LookupLocal(d.Name)
			a.checkFunctionBody(sym, d)
		case *ast.ClassDef:
			if d.IsTemplate() {
				continue
			}
			classSym := a.ctx.Global.LookupLocal(d.Name)
			for _, meth := range d.Methods {
				methSym := classSym.Members.LookupLocal(meth.Name)
				a.checkMethodBody(classSym, methSym, meth)
			}
		}
	}
}

func (a *Analyzer) checkFunctionBody(sym *Symbol, fn *ast.FnDef) {
	a.currentFn = sym
	a.currentSelf = nil
	a.initState = NewInitTracker()
	a.ctx.PushScope(ScopeFunction)
	defer a.ctx.PopScope()

	for i := range fn.Params {
		paramSym := sym.Parameters[i]
		a.ctx.Current().Insert(paramSym)
		a.initState.SetInitialized(paramSym, true)
	}
	if fn.Body != nil {
		fn.Body = a.TransformStmt(fn.Body).(*ast.CompoundStmt)
	}
}

func (a *Analyzer) checkMethodBody(classSym, methSym *Symbol, meth *ast.MethodDef) {
	a.currentFn = methSym
	a.currentSelf = a.ctx.Cache.Class(classSym.Name, classSym, nil)
	a.initState = NewInitTracker()
	a.ctx.PushScope(ScopeMethod)
	defer a.ctx.PopScope()

	for i := range meth.Params {
		paramSym := methSym.Parameters[i]
		a.ctx.Current().Insert(paramSym)
		a.initState.SetInitialized(paramSym, true)
	}
	if meth.Body != nil {
		meth.Body = a.TransformStmt(meth.Body).(*ast.CompoundStmt)
	}
}

// ---- Statements ----

func (a *Analyzer) TransformStmt(s ast.Stmt) ast.Stmt {
	switch n := s.(type) {
	case *ast.CompoundStmt:
		a.ctx.PushScope(ScopeBlock)
		for i, stmt := range n.Statements {
			n.Statements[i] = a.TransformStmt(stmt)
		}
		a.ctx.PopScope()
		return n

	case *ast.DeclStmt:
		a.checkVarDecl(n.Decl)
		return n

	case *ast.ExprStmt:
		n.Expr = a.TransformExpr(n.Expr)
		return n

	case *ast.IfStmt:
		n.Cond = a.TransformExpr(n.Cond)
		beforeBranch := a.initState
		a.initState = beforeBranch.Clone()
		n.Then = a.TransformStmt(n.Then)
		thenState := a.initState

		a.initState = beforeBranch.Clone()
		if n.Else != nil {
			n.Else = a.TransformStmt(n.Else)
		}
		elseState := a.initState

		a.initState = Merge(thenState, elseState)
		return n

	case *ast.WhileStmt:
		n.Cond = a.TransformExpr(n.Cond)
		before := a.initState.Clone()
		n.Body = a.TransformStmt(n.Body)
		a.initState = DiscardLoopBody(before)
		return n

	case *ast.ReturnStmt:
		if n.Value != nil {
			n.Value = a.TransformExpr(n.Value)
			if a.currentFn != nil {
				n.Value = a.coerce(n.Value, a.currentFn.ReturnType, n.Pos())
			}
		}
		return n

	case *ast.IncDecStmt:
		n.Target = a.TransformExpr(n.Target)
		if ref, ok := n.Target.(*ast.RefExpr); ok {
			if sym, ok := ref.Symbol.(*Symbol); ok {
				a.requireInitialized(sym, n.Pos())
			}
		}
		return n

	default:
		return s
	}
}

func (a *Analyzer) checkVarDecl(decl *ast.VarDecl) {
	var declared types.Type
	if decl.TypeExpr != nil {
		declared = ResolveTypeExpr(a.ctx, decl.TypeExpr)
	}

	if decl.InitExpr != nil {
		decl.InitExpr = a.TransformExpr(decl.InitExpr)
		if declared == nil {
			declared = decl.InitExpr.GetType()
		} else {
			decl.InitExpr = a.coerce(decl.InitExpr, declared, decl.Pos())
		}
	}
	if declared == nil {
		declared = a.ctx.Cache.Invalid()
	}

	sym := &Symbol{Name: decl.Name, Kind: SymVariable, Node: decl, Type: declared}
	if prev := a.ctx.Current().LookupLocal(decl.Name); prev != nil {
		a.ctx.AddError(a.ctx.DiagPos(decl.Pos()), "redeclaration of '%s'", decl.Name)
	}
	a.ctx.Current().Insert(sym)

	_, isUninit := decl.InitExpr.(*ast.UninitLit)
	a.initState.SetInitialized(sym, decl.InitExpr != nil && !isUninit)
}

func (a *Analyzer) requireInitialized(sym *Symbol, pos lexer.Position) {
	if sym.Kind != SymVariable {
		return
	}
	if !a.initState.IsInitialized(sym) {
		a.ctx.AddError(a.ctx.DiagPos(pos), "use of possibly uninitialized variable '%s'", sym.Name)
	}
}

// ---- Expressions ----

func (a *Analyzer) TransformExpr(e ast.Expr) ast.Expr {
	switch n := e.(type) {
	case *ast.IntLit:
		n.SetType(a.defaultIntType(n))
		return n
	case *ast.FloatLit:
		n.SetType(a.defaultFloatType(n))
		return n
	case *ast.BoolLit:
		n.SetType(a.ctx.Cache.Builtin(types.Bool))
		return n
	case *ast.StrLit:
		n.SetType(a.ctx.Cache.HeapArray(a.ctx.Cache.Builtin(types.U8)))
		return n
	case *ast.NullLit:
		n.SetType(a.ctx.Cache.Builtin(types.Null))
		return n
	case *ast.UninitLit:
		n.SetType(a.ctx.Cache.Builtin(types.Uninit))
		return n

	case *ast.RefExpr:
		return a.transformRefExpr(n)
	case *ast.SelfExpr:
		if a.currentSelf == nil {
			a.ctx.AddError(a.ctx.DiagPos(n.Pos()), "'self' used outside a method")
			return a.poison(n)
		}
		n.SetType(a.currentSelf)
		return n

	case *ast.ParenExpr:
		n.Inner = a.TransformExpr(n.Inner)
		n.SetType(n.Inner.GetType())
		return n

	case *ast.UnaryOp:
		return a.transformUnaryOp(n)
	case *ast.BinOp:
		return a.transformBinOp(n)
	case *ast.CallExpr:
		return a.transformCallExpr(n)
	case *ast.CastExpr:
		return a.transformCastExpr(n)
	case *ast.AccessExpr:
		n.Outer = a.TransformExpr(n.Outer)
		return a.resolveAccess(n.Outer, n.Inner, n)
	case *ast.ConstructExpr:
		return a.transformConstructExpr(n)
	case *ast.ArrayLit:
		return a.transformArrayLit(n)
	case *ast.ArraySubscript:
		return a.transformArraySubscript(n)
	case *ast.ArraySlice:
		return a.transformArraySlice(n)

	default:
		return e
	}
}

func (a *Analyzer) defaultIntType(lit *ast.IntLit) types.Type {
	k, ok := builtinKindForSuffix(lit.Suffix)
	if !ok {
		k = types.I32
	}
	target := a.ctx.Cache.Builtin(k)
	if types.FitsIntLiteral(lit.Magnitude, lit.Negative, k) {
		return target
	}
	if min, _ := types.IntRange(k); lit.Negative && min == 0 {
		a.ctx.AddError(a.ctx.DiagPos(lit.Pos()), "negative literal does not fit in unsigned type '%s'", target.String())
	} else {
		a.ctx.AddError(a.ctx.DiagPos(lit.Pos()), "integer literal does not fit in type '%s'", target.String())
	}
	return a.ctx.Cache.Invalid()
}

func (a *Analyzer) defaultFloatType(lit *ast.FloatLit) types.Type {
	k := types.F64
	if lit.Suffix == "f32" {
		k = types.F32
	}
	target := a.ctx.Cache.Builtin(k)
	if !types.FitsFloatLiteral(lit.Value, k) {
		a.ctx.AddError(a.ctx.DiagPos(lit.Pos()), "float literal does not fit in type '%s'", target.String())
		return a.ctx.Cache.Invalid()
	}
	return target
}

func builtinKindForSuffix(suffix string) (types.BuiltinKind, bool) {
	switch suffix {
	case "i8":
		return types.I8, true
	case "i16":
		return types.I16, true
	case "i32":
		return types.I32, true
	case "i64":
		return types.I64, true
	case "u8":
		return types.U8, true
	case "u16":
		return types.U16, true
	case "u32":
		return types.U32, true
	case "u64":
		return types.U64, true
	case "isize":
		return types.Isize, true
	case "usize":
		return types.Usize, true
	default:
		return types.Void, false
	}
}

func (a *Analyzer) transformRefExpr(n *ast.RefExpr) ast.Expr {
	sym := a.ctx.Current().Lookup(n.Name)
	if sym == nil {
		sym = a.ctx.Global.Lookup(n.Name)
	}
	if sym == nil {
		a.ctx.AddError(a.ctx.DiagPos(n.Pos()), "undefined name '%s'", n.Name)
		return a.poison(n)
	}
	n.Symbol = sym
	switch sym.Kind {
	case SymVariable, SymParameter:
		a.requireInitialized(sym, n.Pos())
		n.SetType(sym.Type)
	case SymFunction, SymMethod, SymTemplateFunction, SymFunctionInstance:
		n.SetType(a.ctx.Cache.Invalid()) // callable names carry no standalone value type
	default:
		n.SetType(a.ctx.Cache.Invalid())
	}
	return n
}

func (a *Analyzer) transformUnaryOp(n *ast.UnaryOp) ast.Expr {
	n.Operand = a.TransformExpr(n.Operand)
	operandType := n.Operand.GetType()
	switch n.Operator {
	case lexer.AMP:
		n.SetType(a.ctx.Cache.Pointer(operandType))
	case lexer.STAR:
		if operandType.Kind() != types.KindPointer {
			a.ctx.AddError(a.ctx.DiagPos(n.Pos()), "cannot dereference non-pointer type '%s'", operandType.String())
			return a.poison(n)
		}
		n.SetType(types.PointeeOf(operandType))
	case lexer.BANG:
		n.SetType(a.ctx.Cache.Builtin(types.Bool))
	default: // +, -, ++, --
		n.SetType(operandType)
	}
	return n
}

func (a *Analyzer) transformBinOp(n *ast.BinOp) ast.Expr {
	// The target of a plain `=` is written, not read, so resolving it must
	// not report it as a use of an uninitialized variable.
	var written *Symbol
	if ref, ok := n.Left.(*ast.RefExpr); ok && n.Operator == lexer.ASSIGN {
		if sym := a.ctx.Current().Lookup(ref.Name); sym != nil && !a.initState.IsInitialized(sym) {
			written = sym
			a.initState.SetInitialized(sym, true)
		}
	}
	n.Left = a.TransformExpr(n.Left)
	if written != nil {
		a.initState.SetInitialized(written, false)
	}
	n.Right = a.TransformExpr(n.Right)

	switch n.Operator {
	case lexer.EQ, lexer.NEQ, lexer.LT, lexer.LE, lexer.GT, lexer.GE:
		n.SetType(a.ctx.Cache.Builtin(types.Bool))
		return n
	case lexer.ASSIGN, lexer.PLUSEQ, lexer.MINUSEQ, lexer.STAREQ, lexer.SLASHEQ, lexer.PERCENTEQ:
		n.Right = a.coerce(n.Right, n.Left.GetType(), n.Pos())
		n.SetType(n.Left.GetType())
		if ref, ok := n.Left.(*ast.RefExpr); ok {
			if sym, ok := ref.Symbol.(*Symbol); ok {
				a.initState.SetInitialized(sym, true)
			}
		}
		return n
	default: // + - * / %
		leftType, rightType := n.Left.GetType(), n.Right.GetType()
		if leftType != rightType {
			n.Right = a.coerce(n.Right, leftType, n.Pos())
		}
		n.SetType(leftType)
		return n
	}
}

func (a *Analyzer) transformCallExpr(n *ast.CallExpr) ast.Expr {
	for i, arg := range n.Args {
		n.Args[i] = a.TransformExpr(arg)
	}

	switch callee := n.Callee.(type) {
	case *ast.AccessExpr:
		outer := a.TransformExpr(callee.Outer)
		return a.resolveMethodCall(outer, callee.Inner, n, callee)
	case *ast.RefExpr:
		return a.resolveFreeCall(callee, n)
	default:
		n.Callee = a.TransformExpr(n.Callee)
		a.ctx.AddError(a.ctx.DiagPos(n.Pos()), "expression is not callable")
		return a.poison(n)
	}
}

// resolveMethodCall resolves `outer.member(args)` once outer's type is
// known: it looks the method up on outer's class (through the same
// single-level pointer deref as field access, §4.5.3) and rewrites the
// call into a MethodCall, since a bare AccessExpr cannot itself carry an
// argument list.
func (a *Analyzer) resolveMethodCall(outer ast.Expr, member string, call *ast.CallExpr, acc *ast.AccessExpr) ast.Expr {
	outerType := outer.GetType()
	if outerType == nil || outerType.Kind() == types.KindInvalid {
		return a.poison(call)
	}
	classSym := a.classSymbolOf(outerType)
	if classSym == nil {
		a.ctx.AddError(a.ctx.DiagPos(acc.Pos()), "type '%s' has no members", outerType.String())
		return a.poison(call)
	}
	overloads := classSym.Members.Overloads(member)
	if len(overloads) == 0 {
		a.ctx.AddError(a.ctx.DiagPos(acc.Pos()), "'%s' has no method '%s'", classSym.Name, member)
		return a.poison(call)
	}
	methodSym := a.selectOverload(overloads, call.Args)
	if methodSym == nil {
		a.ctx.AddError(a.ctx.DiagPos(acc.Pos()), "no overload of '%s' matches these arguments", member)
		return a.poison(call)
	}

	mc := ast.NewMethodCall(outer, member, call.Args, call.Pos(), call.EndPos())
	mc.Symbol = methodSym
	mc.IsBuiltin = methodSym.IsBuiltin
	a.coerceArgs(mc.Args, methodSym.Parameters, call.Pos())
	mc.SetType(methodSym.ReturnType)
	return mc
}

// resolveFreeCall resolves a call whose callee is a bare name: an
// ordinary function, or a template function requiring instantiation
// before its signature is known (§4.5.6).
func (a *Analyzer) resolveFreeCall(ref *ast.RefExpr, call *ast.CallExpr) ast.Expr {
	overloads := a.ctx.Current().OverloadsInChain(ref.Name)
	if len(overloads) == 0 {
		overloads = a.ctx.Global.OverloadsInChain(ref.Name)
	}
	if len(overloads) == 0 {
		a.ctx.AddError(a.ctx.DiagPos(ref.Pos()), "undefined function '%s'", ref.Name)
		return a.poison(call)
	}
	sym := a.selectOverload(overloads, call.Args)
	if sym == nil {
		a.ctx.AddError(a.ctx.DiagPos(ref.Pos()), "no overload of '%s' matches these arguments", ref.Name)
		return a.poison(call)
	}

	if sym.Kind == SymTemplateFunction {
		typeArgs := a.inferTypeArgsForCall(sym, call.Args)
		instance, instFn := a.templates.InstantiateFunction(a.ctx, sym, typeArgs)
		a.ensureFunctionInstance(sym, instance, instFn, typeArgs)
		ref.Symbol = instance
		call.Callee = ref
		a.coerceArgs(call.Args, instance.Parameters, call.Pos())
		call.SetType(instance.ReturnType)
		return call
	}

	ref.Symbol = sym
	ref.SetType(a.ctx.Cache.Invalid())
	call.Callee = ref
	a.coerceArgs(call.Args, sym.Parameters, call.Pos())
	call.SetType(sym.ReturnType)
	return call
}

// selectOverload picks the candidate whose arity matches args. shiro's
// overload rule (§4.5.7) goes no further than arity plus a per-argument
// coercion check, so a mismatched argument type is reported by coerce
// against the one arity-matching candidate rather than by searching for
// a better-fitting overload.
func (a *Analyzer) selectOverload(candidates []*Symbol, args []ast.Expr) *Symbol {
	for _, c := range candidates {
		if len(c.Parameters) == len(args) {
			return c
		}
	}
	return nil
}

func (a *Analyzer) coerceArgs(args []ast.Expr, params []*Symbol, pos lexer.Position) {
	for i := range args {
		if i < len(params) && params[i].Type != nil {
			args[i] = a.coerce(args[i], params[i].Type, pos)
		}
	}
}

// inferTypeArgsForCall infers a template function's type arguments from
// the concrete types of its call-site arguments, matching each parameter
// whose declared TypeExpr names a type parameter directly. It does not
// attempt unification through compound shapes such as `[T, N]` or `*T` —
// shiro's generics are used almost exclusively for bare type-parameter
// parameters, so this simplified positional match covers the common case.
func (a *Analyzer) inferTypeArgsForCall(template *Symbol, args []ast.Expr) []types.Type {
	result := make([]types.Type, len(template.TypeParameters))
	fn, _ := template.TemplateAST.(*ast.FnDef)
	if fn != nil {
		for i, p := range fn.Params {
			if i >= len(args) {
				break
			}
			named, ok := p.TypeExpr.(*ast.NamedTypeExpr)
			if !ok {
				continue
			}
			for ti, tp := range template.TypeParameters {
				if tp.Name == named.Name && result[ti] == nil {
					result[ti] = args[i].GetType()
				}
			}
		}
	}
	for i, t := range result {
		if t == nil {
			result[i] = a.ctx.Cache.Invalid()
		}
	}
	return result
}

// ensureFunctionInstance resolves an instantiated template function's
// signature and checks its body exactly once per distinct instantiation
// key; later calls with the same type arguments hit TemplateInstantiator's
// cache and arrive here with instance already marked checked.
func (a *Analyzer) ensureFunctionInstance(template, instance *Symbol, fn *ast.FnDef, args []types.Type) {
	if a.instantiated[instance] {
		return
	}
	a.instantiated[instance] = true

	templateFn, _ := template.TemplateAST.(*ast.FnDef)
	if templateFn != nil {
		BindTypeParamScope(a.ctx, templateFn.TypeParams, args)
		defer a.ctx.PopScope()
	}

	if fn.ReturnType != nil {
		instance.ReturnType = ResolveTypeExpr(a.ctx, fn.ReturnType)
	} else {
		instance.ReturnType = a.ctx.Cache.Builtin(types.Void)
	}
	for _, p := range fn.Params {
		instance.Parameters = append(instance.Parameters, &Symbol{Name: p.Name, Kind: SymParameter, Node: p, Type: ResolveTypeExpr(a.ctx, p.TypeExpr)})
	}

	savedFn, savedSelf, savedInit := a.currentFn, a.currentSelf, a.initState
	a.currentFn, a.currentSelf, a.initState = instance, nil, NewInitTracker()
	a.ctx.PushScope(ScopeFunction)
	for _, p := range instance.Parameters {
		a.ctx.Current().Insert(p)
		a.initState.SetInitialized(p, true)
	}
	if fn.Body != nil {
		fn.Body = a.TransformStmt(fn.Body).(*ast.CompoundStmt)
	}
	a.ctx.PopScope()
	a.currentFn, a.currentSelf, a.initState = savedFn, savedSelf, savedInit
}

func (a *Analyzer) transformConstructExpr(n *ast.ConstructExpr) ast.Expr {
	named, ok := n.ClassTypeExpr.(*ast.NamedTypeExpr)
	if !ok {
		a.ctx.AddError(a.ctx.DiagPos(n.Pos()), "invalid construction target")
		return a.poison(n)
	}
	sym := a.ctx.Current().Lookup(named.Name)
	if sym == nil {
		sym = a.ctx.Global.Lookup(named.Name)
	}
	if sym == nil {
		a.ctx.AddError(a.ctx.DiagPos(n.Pos()), "undefined type '%s'", named.Name)
		return a.poison(n)
	}

	var classSym *Symbol
	var resultType types.Type
	switch sym.Kind {
	case SymClass:
		classSym = sym
		resultType = a.ctx.Cache.Class(sym.Name, sym, nil)
	case SymTemplateClass:
		typeArgs := make([]types.Type, len(named.TypeArgs))
		for i, te := range named.TypeArgs {
			typeArgs[i] = ResolveTypeExpr(a.ctx, te)
		}
		instance, classAST := a.templates.InstantiateClass(a.ctx, sym, typeArgs)
		a.ensureClassInstance(sym, instance, classAST, typeArgs)
		classSym = instance
		resultType = a.ctx.Cache.Class(instance.Name, instance, typeArgs)
	default:
		a.ctx.AddError(a.ctx.DiagPos(n.Pos()), "'%s' does not name a class", named.Name)
		return a.poison(n)
	}

	for i := range n.MemberInits {
		memberSym := classSym.Members.LookupLocal(n.MemberInits[i].Name)
		n.MemberInits[i].Expr = a.TransformExpr(n.MemberInits[i].Expr)
		if memberSym == nil {
			a.ctx.AddError(a.ctx.DiagPos(n.Pos()), "'%s' has no member '%s'", classSym.Name, n.MemberInits[i].Name)
			continue
		}
		n.MemberInits[i].Expr = a.coerce(n.MemberInits[i].Expr, a.resolveMemberType(classSym, memberSym), n.Pos())
	}
	n.SetType(resultType)
	return n
}

// ensureClassInstance populates an instantiated template class's member
// table and checks every method body exactly once per distinct
// instantiation key, mirroring ensureFunctionInstance.
func (a *Analyzer) ensureClassInstance(template, instance *Symbol, classAST *ast.ClassDef, args []types.Type) {
	if a.instantiated[instance] {
		return
	}
	a.instantiated[instance] = true

	BindTypeParamScope(a.ctx, classAST.TypeParams, args)
	defer a.ctx.PopScope()

	for _, m := range classAST.Members {
		instance.Members.Insert(&Symbol{Name: m.Name, Kind: SymMember, Node: m, ParentNamespace: instance, Type: ResolveTypeExpr(a.ctx, m.TypeExpr), DefaultValue: m.InitExpr})
	}
	for _, meth := range classAST.Methods {
		methSym := &Symbol{Name: meth.Name, Kind: SymMethod, Node: meth, ParentNamespace: instance}
		if meth.ReturnType != nil {
			methSym.ReturnType = ResolveTypeExpr(a.ctx, meth.ReturnType)
		} else {
			methSym.ReturnType = a.ctx.Cache.Builtin(types.Void)
		}
		for _, p := range meth.Params {
			methSym.Parameters = append(methSym.Parameters, &Symbol{Name: p.Name, Kind: SymParameter, Node: p, Type: ResolveTypeExpr(a.ctx, p.TypeExpr)})
		}
		instance.Members.Insert(methSym)
	}

	savedSelf := a.currentSelf
	a.currentSelf = a.ctx.Cache.Class(instance.Name, instance, args)
	for _, meth := range classAST.Methods {
		methSym := instance.Members.LookupLocal(meth.Name)
		savedFn, savedInit := a.currentFn, a.initState
		a.currentFn, a.initState = methSym, NewInitTracker()
		a.ctx.PushScope(ScopeMethod)
		for _, p := range methSym.Parameters {
			a.ctx.Current().Insert(p)
			a.initState.SetInitialized(p, true)
		}
		if meth.Body != nil {
			meth.Body = a.TransformStmt(meth.Body).(*ast.CompoundStmt)
		}
		a.ctx.PopScope()
		a.currentFn, a.initState = savedFn, savedInit
	}
	a.currentSelf = savedSelf
}

func (a *Analyzer) transformCastExpr(n *ast.CastExpr) ast.Expr {
	n.Operand = a.TransformExpr(n.Operand)
	target := ResolveTypeExpr(a.ctx, n.TypeExpr)
	if !types.CastLegal(n.Operand.GetType(), target) {
		a.ctx.AddError(a.ctx.DiagPos(n.Pos()), "cannot cast '%s' to '%s'", n.Operand.GetType().String(), target.String())
		n.SetType(a.ctx.Cache.Invalid())
		return n
	}
	n.SetType(target)
	return n
}

func (a *Analyzer) transformArrayLit(n *ast.ArrayLit) ast.Expr {
	var elemType types.Type
	for i, el := range n.Elements {
		n.Elements[i] = a.TransformExpr(el)
		if elemType == nil {
			elemType = n.Elements[i].GetType()
		} else {
			n.Elements[i] = a.coerce(n.Elements[i], elemType, n.Pos())
		}
	}
	if elemType == nil {
		elemType = a.ctx.Cache.Invalid()
	}
	n.SetType(a.ctx.Cache.Array(elemType, int64(len(n.Elements))))
	return n
}

func (a *Analyzer) transformArraySubscript(n *ast.ArraySubscript) ast.Expr {
	n.Target = a.TransformExpr(n.Target)
	n.Index = a.TransformExpr(n.Index)
	targetType := n.Target.GetType()
	switch targetType.Kind() {
	case types.KindArray:
		n.SetType(types.ArrayElem(targetType))
	case types.KindHeapArray:
		n.SetType(types.HeapArrayElem(targetType))
	case types.KindView:
		n.SetType(types.ViewElem(targetType))
	default:
		a.ctx.AddError(a.ctx.DiagPos(n.Pos()), "cannot index type '%s'", targetType.String())
		return a.poison(n)
	}
	return n
}

func (a *Analyzer) transformArraySlice(n *ast.ArraySlice) ast.Expr {
	n.Target = a.TransformExpr(n.Target)
	if n.Start != nil {
		n.Start = a.TransformExpr(n.Start)
	}
	if n.End != nil {
		n.End = a.TransformExpr(n.End)
	}
	targetType := n.Target.GetType()
	var elem types.Type
	switch targetType.Kind() {
	case types.KindArray:
		elem = types.ArrayElem(targetType)
	case types.KindHeapArray:
		elem = types.HeapArrayElem(targetType)
	case types.KindView:
		elem = types.ViewElem(targetType)
	default:
		a.ctx.AddError(a.ctx.DiagPos(n.Pos()), "cannot slice type '%s'", targetType.String())
		return a.poison(n)
	}
	n.SetType(a.ctx.Cache.View(elem))
	return n
}

// coerce wraps expr in a CoercionExpr targeting target when a conversion
// is necessary and legal, per §4.5.5. It never changes expr's identity
// when no conversion is needed, so comparisons against the original node
// elsewhere keep working.
func (a *Analyzer) coerce(expr ast.Expr, target types.Type, pos lexer.Position) ast.Expr {
	if target == nil || expr.GetType() == target {
		return expr
	}
	if expr.GetType() != nil && expr.GetType().Kind() == types.KindInvalid {
		return expr
	}

	if lit, ok := expr.(*ast.IntLit); ok && target.Kind() == types.KindBuiltin {
		k := types.BuiltinKindOf(target)
		if types.IsFloat(target) {
			c := ast.NewCoercionExpr(lit)
			c.SetType(target)
			return c
		}
		if types.IsInteger(target) && types.FitsIntLiteral(lit.Magnitude, lit.Negative, k) {
			c := ast.NewCoercionExpr(lit)
			c.SetType(target)
			return c
		}
	}
	if lit, ok := expr.(*ast.FloatLit); ok && target.Kind() == types.KindBuiltin {
		k := types.BuiltinKindOf(target)
		if types.IsFloat(target) && types.FitsFloatLiteral(lit.Value, k) {
			c := ast.NewCoercionExpr(lit)
			c.SetType(target)
			return c
		}
	}

	if types.CanCoerce(expr.GetType(), target) {
		c := ast.NewCoercionExpr(expr)
		c.SetType(target)
		return c
	}

	a.ctx.AddError(a.ctx.DiagPos(pos), "cannot convert '%s' to '%s'", expr.GetType().String(), target.String())
	return expr
}
