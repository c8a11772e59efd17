package semantic

import (
	"testing"

	"github.com/shiro-lang/shiro/internal/ast"
	"github.com/shiro-lang/shiro/internal/diag"
	"github.com/shiro-lang/shiro/internal/lexer"
	"github.com/shiro-lang/shiro/internal/types"
)

func newTestContext() *Context {
	return NewContext(types.NewCache(), diag.NewBag(), nil, "test.shiro")
}

var zeroPos lexer.Position

func TestResolveTypeExprBuiltin(t *testing.T) {
	ctx := newTestContext()
	te := ast.NewBuiltinTypeExpr(lexer.I32, zeroPos, zeroPos)
	got := ResolveTypeExpr(ctx, te)
	if types.BuiltinKindOf(got) != types.I32 {
		t.Fatalf("got %s, want i32", got.String())
	}
}

func TestResolveTypeExprPointerAndArray(t *testing.T) {
	ctx := newTestContext()

	ptrTE := ast.NewPointerTypeExpr(ast.NewBuiltinTypeExpr(lexer.U8, zeroPos, zeroPos), zeroPos, zeroPos)
	ptr := ResolveTypeExpr(ctx, ptrTE)
	if ptr.Kind() != types.KindPointer {
		t.Fatalf("got kind %v, want KindPointer", ptr.Kind())
	}
	if types.BuiltinKindOf(types.PointeeOf(ptr)) != types.U8 {
		t.Fatalf("pointee = %s, want u8", types.PointeeOf(ptr).String())
	}

	size := ast.NewIntLit(4, false, "", zeroPos, zeroPos)
	arrTE := ast.NewArrayTypeExpr(ast.NewBuiltinTypeExpr(lexer.I32, zeroPos, zeroPos), size, zeroPos, zeroPos)
	arr := ResolveTypeExpr(ctx, arrTE)
	if arr.Kind() != types.KindArray {
		t.Fatalf("got kind %v, want KindArray", arr.Kind())
	}
}

func TestResolveTypeExprArrayRejectsNegativeSize(t *testing.T) {
	ctx := newTestContext()
	size := ast.NewIntLit(4, true, "", zeroPos, zeroPos)
	arrTE := ast.NewArrayTypeExpr(ast.NewBuiltinTypeExpr(lexer.I32, zeroPos, zeroPos), size, zeroPos, zeroPos)
	got := ResolveTypeExpr(ctx, arrTE)
	if got.Kind() != types.KindInvalid {
		t.Fatalf("expected Invalid for a negative array size")
	}
	if !ctx.Bag.HasErrors() {
		t.Fatalf("expected an error to be recorded for a negative array size")
	}
}

func TestResolveNamedTypeUndefinedIsError(t *testing.T) {
	ctx := newTestContext()
	te := ast.NewNamedTypeExpr("Nope", nil, zeroPos, zeroPos)
	got := ResolveTypeExpr(ctx, te)
	if got.Kind() != types.KindInvalid {
		t.Fatalf("expected Invalid for an undefined type name")
	}
	if !ctx.Bag.HasErrors() {
		t.Fatalf("expected an 'undefined type' diagnostic")
	}
}

func TestResolveNamedTypeBindsClassSymbol(t *testing.T) {
	ctx := newTestContext()
	classSym := &Symbol{Name: "Point", Kind: SymClass, Members: NewSymbolTable(ScopeClass)}
	ctx.Global.Insert(classSym)

	te := ast.NewNamedTypeExpr("Point", nil, zeroPos, zeroPos)
	got := ResolveTypeExpr(ctx, te)
	if got.Kind() != types.KindClass {
		t.Fatalf("got kind %v, want KindClass", got.Kind())
	}
	if types.ClassSymbol(got) != classSym {
		t.Fatalf("expected the class type to carry back the declaring symbol")
	}
}

func TestResolveNamedTypeParameterResolvesToBoundScope(t *testing.T) {
	ctx := newTestContext()
	bound := ctx.Cache.Builtin(types.I32)
	scope := ctx.PushScope(ScopeFunction)
	scope.Insert(&Symbol{Name: "T", Kind: SymTypeParameter, Type: bound})

	te := ast.NewNamedTypeExpr("T", nil, zeroPos, zeroPos)
	got := ResolveTypeExpr(ctx, te)
	if got != bound {
		t.Fatalf("expected 'T' to resolve to its scope-bound concrete type")
	}
}

func TestResolveNamedTypeTemplateClassStaysUnresolved(t *testing.T) {
	ctx := newTestContext()
	tmpl := &Symbol{Name: "Box", Kind: SymTemplateClass, Members: NewSymbolTable(ScopeClass)}
	ctx.Global.Insert(tmpl)

	argTE := ast.NewBuiltinTypeExpr(lexer.I32, zeroPos, zeroPos)
	te := ast.NewNamedTypeExpr("Box", []ast.TypeExpr{argTE}, zeroPos, zeroPos)
	got := ResolveTypeExpr(ctx, te)
	if got.Kind() != types.KindUserUnresolved {
		t.Fatalf("got kind %v, want KindUserUnresolved for an un-instantiated template", got.Kind())
	}
}
