package ast

import (
	"strings"
	"testing"

	"github.com/shiro-lang/shiro/internal/lexer"
)

func zeroPos() lexer.Position { return lexer.Position{Line: 1, Column: 1} }

func buildSampleFn() *FnDef {
	pos := zeroPos()
	a := NewParamDecl("a", NewBuiltinTypeExpr(lexer.I32, pos, pos), pos, pos)
	b := NewParamDecl("b", NewBuiltinTypeExpr(lexer.I32, pos, pos), pos, pos)
	sum := NewBinOp(lexer.PLUS, NewRefExpr("a", pos, pos), NewRefExpr("b", pos, pos), pos, pos)
	ret := NewReturnStmt(sum, pos, pos)
	body := NewCompoundStmt([]Stmt{ret}, pos, pos)

	fn := NewFnDef("add", pos, pos)
	fn.Params = []*ParamDecl{a, b}
	fn.ReturnType = NewBuiltinTypeExpr(lexer.I32, pos, pos)
	fn.Body = body
	return fn
}

func TestWalkCountsNodes(t *testing.T) {
	fn := buildSampleFn()
	counter := &countingVisitor{}
	counter.V = counter
	Walk(fn, counter)
	if counter.count == 0 {
		t.Fatal("expected Walk to visit at least one node")
	}
}

type countingVisitor struct {
	BaseVisitor
	count int
}

func (c *countingVisitor) VisitFnDef(n *FnDef) {
	c.count++
	for _, p := range n.Params {
		Walk(p, c)
	}
	if n.Body != nil {
		Walk(n.Body, c)
	}
}
func (c *countingVisitor) VisitParamDecl(n *ParamDecl)     { c.count++ }
func (c *countingVisitor) VisitCompoundStmt(n *CompoundStmt) {
	c.count++
	for _, s := range n.Statements {
		Walk(s, c)
	}
}
func (c *countingVisitor) VisitReturnStmt(n *ReturnStmt) {
	c.count++
	if n.Value != nil {
		Walk(n.Value, c)
	}
}
func (c *countingVisitor) VisitBinOp(n *BinOp) {
	c.count++
	Walk(n.Left, c)
	Walk(n.Right, c)
}
func (c *countingVisitor) VisitRefExpr(n *RefExpr) { c.count++ }

func TestPresentRendersSurfaceSyntax(t *testing.T) {
	fn := buildSampleFn()
	got := Present(fn)
	want := "fn add(a: i32, b: i32) -> i32"
	if got != want {
		t.Fatalf("Present() = %q, want %q", got, want)
	}
}

func TestPrintProducesIndentedOutline(t *testing.T) {
	fn := buildSampleFn()
	out := Print(fn, false)
	if !strings.HasPrefix(out, "FnDef 'add'") {
		t.Fatalf("Print() did not start with FnDef line, got:\n%s", out)
	}
	if !strings.Contains(out, "  ParamDecl 'a' 'i32'") {
		t.Fatalf("Print() missing indented ParamDecl line, got:\n%s", out)
	}
	if !strings.Contains(out, "BinOp '+'") {
		t.Fatalf("Print() missing BinOp line, got:\n%s", out)
	}
}

func TestPrintIncludesSourceLocationWhenRequested(t *testing.T) {
	fn := buildSampleFn()
	out := Print(fn, true)
	if !strings.Contains(out, "<1:1, 1:1>") {
		t.Fatalf("Print(showLoc=true) missing location, got:\n%s", out)
	}
}

// renameTransformer rewrites every RefExpr named "a" into one named "renamed".
type renameTransformer struct{}

func (renameTransformer) TransformExpr(e Expr) Expr {
	if ref, ok := e.(*RefExpr); ok && ref.Name == "a" {
		pos := ref.Pos()
		return NewRefExpr("renamed", pos, pos)
	}
	TransformChildren(e, renameTransformer{})
	return e
}

func (renameTransformer) TransformStmt(s Stmt) Stmt {
	TransformChildren(s, renameTransformer{})
	return s
}

func TestTransformChildrenReplacesNestedExpr(t *testing.T) {
	fn := buildSampleFn()
	fn.Body = renameTransformer{}.TransformStmt(fn.Body).(*CompoundStmt)

	binOp := fn.Body.Statements[0].(*ReturnStmt).Value.(*BinOp)
	left, ok := binOp.Left.(*RefExpr)
	if !ok || left.Name != "renamed" {
		t.Fatalf("expected left operand renamed, got %#v", binOp.Left)
	}
	right, ok := binOp.Right.(*RefExpr)
	if !ok || right.Name != "b" {
		t.Fatalf("expected right operand unchanged, got %#v", binOp.Right)
	}
}

func TestNodeIDsAreDistinct(t *testing.T) {
	pos := zeroPos()
	a := NewIntLit(1, false, "", pos, pos)
	b := NewIntLit(1, false, "", pos, pos)
	if a.ID() == b.ID() {
		t.Fatal("expected distinct NodeIDs for distinct nodes")
	}
}

func TestTypeExprTextRendersNestedShapes(t *testing.T) {
	pos := zeroPos()
	te := NewPointerTypeExpr(NewViewTypeExpr(NewBuiltinTypeExpr(lexer.U8, pos, pos), pos, pos), pos, pos)
	got := TypeExprText(te)
	want := "*view[u8]"
	if got != want {
		t.Fatalf("TypeExprText() = %q, want %q", got, want)
	}
}
