package semantic

import (
	"testing"

	"github.com/shiro-lang/shiro/internal/ast"
	"github.com/shiro-lang/shiro/internal/parser"
)

func parseForDeclare(t *testing.T, src string) *ast.Root {
	t.Helper()
	ctx := newTestContext()
	root := parser.ParseFile("test.shiro", src, ctx.Bag)
	if ctx.Bag.HasErrors() {
		t.Fatalf("unexpected parse errors:\n%s", ctx.Bag.Report())
	}
	return root
}

func TestDeclCollectorBindsFunctionsAndClasses(t *testing.T) {
	ctx := newTestContext()
	root := parser.ParseFile("test.shiro", `
		fn helper() -> i32 { return 1; }
		class Point {
			x: i32;
			fn sum() -> i32 { return self.x; }
		}
	`, ctx.Bag)

	ok := NewDeclCollector(ctx).Run(root)
	if !ok {
		t.Fatalf("unexpected declaration errors:\n%s", ctx.Bag.Report())
	}

	fnSym := ctx.Global.LookupLocal("helper")
	if fnSym == nil || fnSym.Kind != SymFunction {
		t.Fatalf("helper symbol = %+v", fnSym)
	}

	classSym := ctx.Global.LookupLocal("Point")
	if classSym == nil || classSym.Kind != SymClass {
		t.Fatalf("Point symbol = %+v", classSym)
	}
	if classSym.Members.LookupLocal("x") == nil {
		t.Fatalf("expected member 'x' to be bound on Point")
	}
	methSym := classSym.Members.LookupLocal("sum")
	if methSym == nil || methSym.Kind != SymMethod {
		t.Fatalf("sum symbol = %+v", methSym)
	}
}

func TestDeclCollectorOrderIndependentForwardReferences(t *testing.T) {
	// 'second' is declared after 'first' but referenced by it; the
	// collector must bind both before either body is ever type-checked, so
	// later lookups of 'second' from within 'first' succeed regardless of
	// declaration order.
	ctx := newTestContext()
	root := parseForDeclare(t, `
		fn first() -> i32 { return second(); }
		fn second() -> i32 { return 1; }
	`)
	if !NewDeclCollector(ctx).Run(root) {
		t.Fatalf("unexpected declaration errors:\n%s", ctx.Bag.Report())
	}
	if ctx.Global.LookupLocal("second") == nil {
		t.Fatalf("expected 'second' to be bound in the global scope")
	}
}

func TestDeclCollectorRejectsRedeclaration(t *testing.T) {
	ctx := newTestContext()
	root := parseForDeclare(t, `
		fn dup() -> void {}
		fn dup() -> void {}
	`)
	if NewDeclCollector(ctx).Run(root) {
		t.Fatalf("expected a redeclaration error for two top-level 'dup' functions")
	}
	if !ctx.Bag.HasErrors() {
		t.Fatalf("expected the redeclaration to be recorded in the diagnostic bag")
	}
}

func TestDeclCollectorMarksTemplateKinds(t *testing.T) {
	ctx := newTestContext()
	root := parseForDeclare(t, `
		fn identity<T>(x: T) -> T { return x; }
		class Box<T> { value: T; }
	`)
	if !NewDeclCollector(ctx).Run(root) {
		t.Fatalf("unexpected declaration errors:\n%s", ctx.Bag.Report())
	}
	fnSym := ctx.Global.LookupLocal("identity")
	if fnSym.Kind != SymTemplateFunction {
		t.Fatalf("identity kind = %v, want SymTemplateFunction", fnSym.Kind)
	}
	if len(fnSym.TypeParameters) != 1 || fnSym.TypeParameters[0].Name != "T" {
		t.Fatalf("identity type params = %+v", fnSym.TypeParameters)
	}

	classSym := ctx.Global.LookupLocal("Box")
	if classSym.Kind != SymTemplateClass {
		t.Fatalf("Box kind = %v, want SymTemplateClass", classSym.Kind)
	}
}
