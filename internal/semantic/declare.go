package semantic

import (
	"github.com/shiro-lang/shiro/internal/ast"
	"github.com/shiro-lang/shiro/internal/lexer"
)

// DeclCollector is pass 1 (§4.5.1): it walks a Root's top-level
// definitions and binds a Symbol for every function, class, member and
// method, without resolving any declared type yet — that is pass 2's
// job, run once every name in the module is already visible so forward
// references between sibling declarations (§4.5.1's "order-independent
// declarations") work regardless of source order.
type DeclCollector struct {
	ast.BaseVisitor
	ctx *Context
}

func NewDeclCollector(ctx *Context) *DeclCollector {
	dc := &DeclCollector{ctx: ctx}
	dc.V = dc
	return dc
}

// Run collects every top-level declaration in root into dc's context's
// global scope. It returns false if doing so produced new errors (a
// redeclaration, for instance).
func (dc *DeclCollector) Run(root *ast.Root) bool {
	before := dc.ctx.Bag.ErrorCount()
	for _, imp := range root.Imports {
		dc.VisitImportDef(imp)
	}
	for _, def := range root.Defs {
		ast.Walk(def, dc)
	}
	return dc.ctx.Bag.ErrorCount() == before
}

func (dc *DeclCollector) VisitImportDef(n *ast.ImportDef) {
	sym := &Symbol{Name: n.Namespace, Kind: SymNamespace, Node: n}
	if prev := dc.ctx.Global.LookupLocal(n.Namespace); prev != nil {
		dc.redeclError(n.Pos(), n.Namespace, prev)
		return
	}
	dc.ctx.Global.Insert(sym)
}

func (dc *DeclCollector) VisitFnDef(n *ast.FnDef) {
	if prev := dc.ctx.Global.LookupLocal(n.Name); prev != nil {
		dc.redeclError(n.Pos(), n.Name, prev)
		return
	}

	kind := SymFunction
	if n.IsTemplate() {
		kind = SymTemplateFunction
	}
	sym := &Symbol{
		Name:            n.Name,
		Kind:            kind,
		Node:            n,
		ParentNamespace: dc.ctx.ModuleNamespace,
		IsBuiltin:       n.Extern != "",
		ExternABI:       n.Extern,
	}
	for _, p := range n.Params {
		sym.Parameters = append(sym.Parameters, &Symbol{Name: p.Name, Kind: SymParameter, Node: p})
	}
	if n.IsTemplate() {
		sym.TemplateAST = n
		for _, tp := range n.TypeParams {
			sym.TypeParameters = append(sym.TypeParameters, &Symbol{Name: tp.Name, Kind: SymTypeParameter, Node: tp})
		}
	}
	dc.ctx.Global.Insert(sym)
}

func (dc *DeclCollector) VisitClassDef(n *ast.ClassDef) {
	if prev := dc.ctx.Global.LookupLocal(n.Name); prev != nil {
		dc.redeclError(n.Pos(), n.Name, prev)
		return
	}

	kind := SymClass
	if n.IsTemplate() {
		kind = SymTemplateClass
	}
	sym := &Symbol{
		Name:            n.Name,
		Kind:            kind,
		Node:            n,
		ParentNamespace: dc.ctx.ModuleNamespace,
		Members:         NewSymbolTable(ScopeClass),
	}
	if n.IsTemplate() {
		sym.TemplateAST = n
		for _, tp := range n.TypeParams {
			tpSym := &Symbol{Name: tp.Name, Kind: SymTypeParameter, Node: tp}
			sym.TypeParameters = append(sym.TypeParameters, tpSym)
			sym.Members.Insert(tpSym)
		}
	}

	for _, m := range n.Members {
		if prev := sym.Members.LookupLocal(m.Name); prev != nil {
			dc.redeclError(m.Pos(), m.Name, prev)
			continue
		}
		sym.Members.Insert(&Symbol{Name: m.Name, Kind: SymMember, Node: m, ParentNamespace: sym, DefaultValue: m.InitExpr})
	}
	for _, meth := range n.Methods {
		methSym := &Symbol{Name: meth.Name, Kind: SymMethod, Node: meth, ParentNamespace: sym}
		for _, p := range meth.Params {
			methSym.Parameters = append(methSym.Parameters, &Symbol{Name: p.Name, Kind: SymParameter, Node: p})
		}
		sym.Members.Insert(methSym)
	}

	dc.ctx.Global.Insert(sym)
}

func (dc *DeclCollector) redeclError(pos lexer.Position, name string, prev *Symbol) {
	if prev.Node != nil {
		prevPos := prev.Node.Pos()
		dc.ctx.AddError(dc.ctx.DiagPos(pos), "redeclaration of '%s', previously declared at %d:%d", name, prevPos.Line, prevPos.Column)
		return
	}
	dc.ctx.AddError(dc.ctx.DiagPos(pos), "redeclaration of '%s'", name)
}
