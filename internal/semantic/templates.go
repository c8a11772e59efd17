package semantic

import (
	"strings"

	"github.com/shiro-lang/shiro/internal/ast"
	"github.com/shiro-lang/shiro/internal/types"
)

// instantiationKey identifies one (template, type-argument list) pairing
// so repeated uses of the same generic with the same arguments share a
// single instantiated symbol instead of re-analyzing the body every time
// (§4.5.6). Type arguments are interned, so their String() forms are
// already a canonical, order-sensitive fingerprint.
type instantiationKey struct {
	template *Symbol
	args     string
}

func encodeTypeArgs(args []types.Type) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, ",")
}

// TemplateInstantiator owns the cross-instantiation cache described in
// §4.5.6. One instantiator is shared by every module analyzed in the
// same build-driver run so identical instantiations across modules still
// collapse to one instance.
type TemplateInstantiator struct {
	cache map[instantiationKey]*Symbol
}

func NewTemplateInstantiator() *TemplateInstantiator {
	return &TemplateInstantiator{cache: make(map[instantiationKey]*Symbol)}
}

// InstantiateFunction returns the (possibly cached) instance symbol for
// calling template with the given concrete type arguments, together with
// the instance's FnDef. On a cache miss it clones the template's AST and
// records a new instance; it neither binds the type parameters nor checks
// the clone. The caller (the type-checker) binds them with
// BindTypeParamScope and type-checks the returned clone's body.
func (ti *TemplateInstantiator) InstantiateFunction(ctx *Context, template *Symbol, args []types.Type) (*Symbol, *ast.FnDef) {
	key := instantiationKey{template: template, args: encodeTypeArgs(args)}
	if cached, ok := ti.cache[key]; ok {
		return cached, cached.InstantiatedAST.(*ast.FnDef)
	}

	clone := ast.Clone(template.TemplateAST).(*ast.FnDef)
	instance := &Symbol{
		Name:            template.Name,
		Kind:            SymFunctionInstance,
		Node:            clone,
		ParentNamespace: template.ParentNamespace,
		TemplateSymbol:  template,
		TypeArguments:   args,
		InstantiatedAST: clone,
	}
	ti.cache[key] = instance
	// Cached before the body is analyzed so a recursive generic call
	// within its own body resolves to this instance instead of
	// recursing into InstantiateFunction forever.
	template.Instantiations = append(template.Instantiations, instance)
	return instance, clone
}

// InstantiateClass is the class analog of InstantiateFunction: same
// caching rule, but the clone is a ClassDef and the caller drives member
// and method re-analysis instead of a single function body.
func (ti *TemplateInstantiator) InstantiateClass(ctx *Context, template *Symbol, args []types.Type) (*Symbol, *ast.ClassDef) {
	key := instantiationKey{template: template, args: encodeTypeArgs(args)}
	if cached, ok := ti.cache[key]; ok {
		return cached, cached.InstantiatedAST.(*ast.ClassDef)
	}

	clone := ast.Clone(template.TemplateAST).(*ast.ClassDef)
	instance := &Symbol{
		Name:            template.Name,
		Kind:            SymClassInstance,
		Node:            clone,
		ParentNamespace: template.ParentNamespace,
		TemplateSymbol:  template,
		TypeArguments:   args,
		InstantiatedAST: clone,
		Members:         NewSymbolTable(ScopeClass),
	}
	ti.cache[key] = instance
	template.Instantiations = append(template.Instantiations, instance)
	return instance, clone
}

// BindTypeParamScope pushes a scope on ctx binding each of template's
// type-parameter names to a SymTypeParameter symbol carrying the matching
// concrete argument, so name resolution inside the cloned body resolves
// "T" directly to the instantiation's argument instead of to a free
// types.Variable placeholder.
func BindTypeParamScope(ctx *Context, typeParams []*ast.TypeParamDecl, args []types.Type) {
	scope := ctx.PushScope(ScopeFunction)
	for i, tp := range typeParams {
		if i >= len(args) {
			break
		}
		scope.Insert(&Symbol{Name: tp.Name, Kind: SymTypeParameter, Node: tp, Type: args[i]})
	}
}
