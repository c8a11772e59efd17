package semantic

import (
	"testing"

	"github.com/shiro-lang/shiro/internal/ast"
	"github.com/shiro-lang/shiro/internal/types"
)

func TestInstantiateFunctionCachesByTypeArguments(t *testing.T) {
	ctx, root := runPipeline(t, `
		fn identity<T>(x: T) -> T { return x; }
		fn useA() -> i32 { return identity(1); }
		fn useB() -> i32 { return identity(2); }
	`)
	if ctx.Bag.HasErrors() {
		t.Fatalf("unexpected errors:\n%s", ctx.Bag.Report())
	}

	useA := root.Defs[1].(*ast.FnDef)
	useB := root.Defs[2].(*ast.FnDef)
	callA := useA.Body.Statements[0].(*ast.ReturnStmt).Value.(*ast.CallExpr)
	callB := useB.Body.Statements[0].(*ast.ReturnStmt).Value.(*ast.CallExpr)

	symA := callA.Callee.(*ast.RefExpr).Symbol.(*Symbol)
	symB := callB.Callee.(*ast.RefExpr).Symbol.(*Symbol)
	if symA != symB {
		t.Fatalf("expected identity(i32) and identity(i32) to share one cached instantiation")
	}
}

func TestInstantiateFunctionDistinguishesTypeArguments(t *testing.T) {
	ti := NewTemplateInstantiator()
	ctx := newTestContext()

	template := &Symbol{
		Name: "identity",
		Kind: SymTemplateFunction,
		TemplateAST: &ast.FnDef{
			Name: "identity",
		},
		TypeParameters: []*Symbol{{Name: "T", Kind: SymTypeParameter}},
	}

	i32Arg := []types.Type{ctx.Cache.Builtin(types.I32)}
	f64Arg := []types.Type{ctx.Cache.Builtin(types.F64)}

	instI32, _ := ti.InstantiateFunction(ctx, template, i32Arg)
	instI32Again, _ := ti.InstantiateFunction(ctx, template, i32Arg)
	instF64, _ := ti.InstantiateFunction(ctx, template, f64Arg)

	if instI32 != instI32Again {
		t.Fatalf("expected identical type arguments to hit the same cached instance")
	}
	if instI32 == instF64 {
		t.Fatalf("expected distinct type arguments to produce distinct instances")
	}
	if len(template.Instantiations) != 2 {
		t.Fatalf("got %d recorded instantiations, want 2", len(template.Instantiations))
	}
}

func TestInstantiateClassPopulatesMembersPerInstantiation(t *testing.T) {
	ctx, root := runPipeline(t, `
		class Box<T> {
			value: T;
		}
		fn main() -> i32 {
			var b = Box<i32>{value=1};
			return b.value;
		}
	`)
	if ctx.Bag.HasErrors() {
		t.Fatalf("unexpected errors:\n%s", ctx.Bag.Report())
	}

	tmpl := ctx.Global.LookupLocal("Box")
	if len(tmpl.Instantiations) != 1 {
		t.Fatalf("got %d instantiations of Box, want 1", len(tmpl.Instantiations))
	}
	instance := tmpl.Instantiations[0]
	if instance.Members.LookupLocal("value") == nil {
		t.Fatalf("expected the instantiated Box<i32> to carry a 'value' member symbol")
	}

	main := root.Defs[1].(*ast.FnDef)
	decl := main.Body.Statements[0].(*ast.DeclStmt).Decl
	if decl.InitExpr.GetType().Kind() != types.KindClass {
		t.Fatalf("construct expression type = %v, want KindClass", decl.InitExpr.GetType().Kind())
	}
}

func TestBindTypeParamScopeBindsNameToConcreteArgument(t *testing.T) {
	ctx := newTestContext()
	typeParams := []*ast.TypeParamDecl{{Name: "T"}}
	bound := ctx.Cache.Builtin(types.I32)

	BindTypeParamScope(ctx, typeParams, []types.Type{bound})
	defer ctx.PopScope()

	sym := ctx.Current().LookupLocal("T")
	if sym == nil || sym.Type != bound {
		t.Fatalf("expected 'T' bound to the concrete argument type in the pushed scope")
	}
}
