package parser

import (
	"testing"

	"github.com/shiro-lang/shiro/internal/ast"
	"github.com/shiro-lang/shiro/internal/diag"
)

func parseSrc(t *testing.T, src string) (*ast.Root, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag()
	root := ParseFile("test.shiro", src, bag)
	return root, bag
}

func requireNoErrors(t *testing.T, bag *diag.Bag) {
	t.Helper()
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors:\n%s", bag.Report())
	}
}

func TestParseSimpleFunction(t *testing.T) {
	root, bag := parseSrc(t, `fn add(a: i32, b: i32) -> i32 { return a + b; }`)
	requireNoErrors(t, bag)
	if len(root.Defs) != 1 {
		t.Fatalf("got %d defs, want 1", len(root.Defs))
	}
	fn, ok := root.Defs[0].(*ast.FnDef)
	if !ok {
		t.Fatalf("def is %T, want *ast.FnDef", root.Defs[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("fn = %+v", fn)
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("body has %d statements, want 1", len(fn.Body.Statements))
	}
	if _, ok := fn.Body.Statements[0].(*ast.ReturnStmt); !ok {
		t.Fatalf("statement is %T, want *ast.ReturnStmt", fn.Body.Statements[0])
	}
}

func TestParseExportedAndExternFunctions(t *testing.T) {
	root, bag := parseSrc(t, `
		export fn helper() -> void {}
		extern "C" fn puts(s: *u8) -> i32;
	`)
	requireNoErrors(t, bag)
	if len(root.Defs) != 2 {
		t.Fatalf("got %d defs, want 2", len(root.Defs))
	}
	helper := root.Defs[0].(*ast.FnDef)
	if !helper.Exported {
		t.Fatalf("helper should be exported")
	}
	puts := root.Defs[1].(*ast.FnDef)
	if puts.Extern != "C" || puts.Body != nil {
		t.Fatalf("puts = %+v, want extern with no body", puts)
	}
}

func TestParseClassWithMembersAndMethods(t *testing.T) {
	root, bag := parseSrc(t, `
		class Point {
			x: i32;
			y: i32 = 0;
			fn length() -> i32 { return self.x; }
		}
	`)
	requireNoErrors(t, bag)
	cls := root.Defs[0].(*ast.ClassDef)
	if len(cls.Members) != 2 || len(cls.Methods) != 1 {
		t.Fatalf("cls = %+v", cls)
	}
	if cls.Members[1].InitExpr == nil {
		t.Fatalf("y should carry a default-value expression")
	}
}

func TestParseGenericFunctionTypeParams(t *testing.T) {
	root, bag := parseSrc(t, `fn identity<T>(x: T) -> T { return x; }`)
	requireNoErrors(t, bag)
	fn := root.Defs[0].(*ast.FnDef)
	if !fn.IsTemplate() || len(fn.TypeParams) != 1 || fn.TypeParams[0].Name != "T" {
		t.Fatalf("fn = %+v", fn)
	}
}

// TestGenericConstructVsComparisonDisambiguation exercises the
// speculative lookahead that tells `Box<i32>{...}` (a generic
// construction) apart from `a < b` followed by an unrelated brace (a
// comparison). Both must parse to their own distinct node shape from the
// identical `IDENT LT ...` prefix.
func TestGenericConstructVsComparisonDisambiguation(t *testing.T) {
	t.Run("generic construction", func(t *testing.T) {
		root, bag := parseSrc(t, `fn make() -> void { var b = Box<i32>{ value = 1 }; }`)
		requireNoErrors(t, bag)
		fn := root.Defs[0].(*ast.FnDef)
		decl := fn.Body.Statements[0].(*ast.DeclStmt).Decl
		construct, ok := decl.InitExpr.(*ast.ConstructExpr)
		if !ok {
			t.Fatalf("init expr is %T, want *ast.ConstructExpr", decl.InitExpr)
		}
		classTE := construct.ClassTypeExpr.(*ast.NamedTypeExpr)
		if classTE.Name != "Box" || len(classTE.TypeArgs) != 1 {
			t.Fatalf("classTE = %+v", classTE)
		}
	})

	t.Run("relational comparison", func(t *testing.T) {
		root, bag := parseSrc(t, `fn make() -> void { var ok = a < b; }`)
		requireNoErrors(t, bag)
		fn := root.Defs[0].(*ast.FnDef)
		decl := fn.Body.Statements[0].(*ast.DeclStmt).Decl
		bin, ok := decl.InitExpr.(*ast.BinOp)
		if !ok {
			t.Fatalf("init expr is %T, want *ast.BinOp", decl.InitExpr)
		}
		if bin.Operator.String() != "<" {
			t.Fatalf("operator = %s, want <", bin.Operator.String())
		}
	})
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	root, bag := parseSrc(t, `fn f() -> void { a = b = 1; }`)
	requireNoErrors(t, bag)
	fn := root.Defs[0].(*ast.FnDef)
	outer := fn.Body.Statements[0].(*ast.ExprStmt).Expr.(*ast.BinOp)
	if _, ok := outer.Right.(*ast.BinOp); !ok {
		t.Fatalf("right operand of outer assignment is %T, want nested *ast.BinOp", outer.Right)
	}
}

func TestParseNegativeIntLiteralFoldsSign(t *testing.T) {
	root, bag := parseSrc(t, `fn f() -> i8 { return -128; }`)
	requireNoErrors(t, bag)
	fn := root.Defs[0].(*ast.FnDef)
	ret := fn.Body.Statements[0].(*ast.ReturnStmt)
	lit, ok := ret.Value.(*ast.IntLit)
	if !ok {
		t.Fatalf("return value is %T, want *ast.IntLit", ret.Value)
	}
	if !lit.Negative || lit.Magnitude != 128 {
		t.Fatalf("lit = %+v", lit)
	}
}

func TestParsePointerArrayAndViewTypes(t *testing.T) {
	root, bag := parseSrc(t, `
		fn f(p: *i32, arr: [i32, 4], v: view[u8]) -> void {}
	`)
	requireNoErrors(t, bag)
	fn := root.Defs[0].(*ast.FnDef)
	if _, ok := fn.Params[0].TypeExpr.(*ast.PointerTypeExpr); !ok {
		t.Fatalf("param 0 is %T, want *ast.PointerTypeExpr", fn.Params[0].TypeExpr)
	}
	arrTE, ok := fn.Params[1].TypeExpr.(*ast.ArrayTypeExpr)
	if !ok {
		t.Fatalf("param 1 is %T, want *ast.ArrayTypeExpr", fn.Params[1].TypeExpr)
	}
	if _, ok := arrTE.SizeExpr.(*ast.IntLit); !ok {
		t.Fatalf("array size is %T, want *ast.IntLit", arrTE.SizeExpr)
	}
	if _, ok := fn.Params[2].TypeExpr.(*ast.ViewTypeExpr); !ok {
		t.Fatalf("param 2 is %T, want *ast.ViewTypeExpr", fn.Params[2].TypeExpr)
	}
}

func TestParseIfWhileAndIncDec(t *testing.T) {
	root, bag := parseSrc(t, `
		fn f(n: i32) -> void {
			var i: i32 = 0;
			while (i < n) {
				if (i == 0) {
					i++;
				} else {
					i = i + 1;
				}
			}
		}
	`)
	requireNoErrors(t, bag)
	fn := root.Defs[0].(*ast.FnDef)
	whileStmt := fn.Body.Statements[1].(*ast.WhileStmt)
	body := whileStmt.Body.(*ast.CompoundStmt)
	ifStmt := body.Statements[0].(*ast.IfStmt)
	thenBlock := ifStmt.Then.(*ast.CompoundStmt)
	if _, ok := thenBlock.Statements[0].(*ast.IncDecStmt); !ok {
		t.Fatalf("then statement is %T, want *ast.IncDecStmt", thenBlock.Statements[0])
	}
	if ifStmt.Else == nil {
		t.Fatalf("expected an else branch")
	}
}

func TestParseMalformedTopLevelRecoversAtNextDef(t *testing.T) {
	root, bag := parseSrc(t, `
		not a valid top level thing ;;;
		fn ok() -> void {}
	`)
	if !bag.HasErrors() {
		t.Fatalf("expected a parse error for the malformed leading tokens")
	}
	if len(root.Defs) != 1 {
		t.Fatalf("got %d defs, want recovery to still find the trailing fn", len(root.Defs))
	}
	if root.Defs[0].(*ast.FnDef).Name != "ok" {
		t.Fatalf("recovered def = %+v", root.Defs[0])
	}
}

func TestParseImportMustPrecedeOtherDefs(t *testing.T) {
	root, bag := parseSrc(t, `
		fn f() -> void {}
		import core.io;
	`)
	if !bag.HasErrors() {
		t.Fatalf("expected an error for a misplaced import")
	}
	if len(root.Imports) != 1 || root.Imports[0].Namespace != "core" {
		t.Fatalf("imports = %+v", root.Imports)
	}
}

func TestParseConstructExprWithoutTypeArgs(t *testing.T) {
	root, bag := parseSrc(t, `fn f() -> void { var p = Point{ x = 1, y = 2 }; }`)
	requireNoErrors(t, bag)
	fn := root.Defs[0].(*ast.FnDef)
	decl := fn.Body.Statements[0].(*ast.DeclStmt).Decl
	construct := decl.InitExpr.(*ast.ConstructExpr)
	if len(construct.MemberInits) != 2 {
		t.Fatalf("construct = %+v", construct)
	}
}
