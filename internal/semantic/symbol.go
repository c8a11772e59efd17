// Package semantic implements the two-pass semantic analyzer: a
// declaration collector (pass 1) followed by a type-checking transformer
// (pass 2) that performs name resolution, coercion insertion, definite-
// assignment analysis, and template instantiation (§4.5).
package semantic

import (
	"github.com/shiro-lang/shiro/internal/ast"
	"github.com/shiro-lang/shiro/internal/types"
)

// SymbolKind tags what a Symbol denotes.
type SymbolKind int

const (
	SymVariable SymbolKind = iota
	SymFunction
	SymParameter
	SymClass
	SymMember
	SymMethod
	SymNamespace
	SymTypeParameter
	SymTemplateClass
	SymTemplateFunction
	SymClassInstance
	SymFunctionInstance
)

var symbolKindNames = [...]string{
	"variable", "function", "parameter", "class", "member", "method",
	"namespace", "type parameter", "template class", "template function",
	"class instance", "function instance",
}

func (k SymbolKind) String() string {
	if int(k) < len(symbolKindNames) {
		return symbolKindNames[k]
	}
	return "symbol"
}

// Symbol is a flat record for every name bound during analysis; unused
// fields for a given Kind are simply left zero rather than modeled with
// a tagged union, matching how this codebase shapes table entries
// elsewhere (§3.3).
type Symbol struct {
	Name               string
	Kind               SymbolKind
	Node               ast.Node // declaring node; nil for imported/builtin symbols
	Type               types.Type
	ParentNamespace    *Symbol
	FullyQualifiedName string

	// function / method
	Parameters    []*Symbol
	ReturnType    types.Type
	OverloadIndex int
	ExternABI     string
	IsBuiltin     bool
	Overloads     []*Symbol // sibling overloads sharing Name, including this one

	// class
	Members *SymbolTable

	// member
	DefaultValue ast.Expr

	// namespace
	Exports *SymbolTable

	// template class / template function
	TypeParameters []*Symbol
	Instantiations []*Symbol
	TemplateAST    ast.Node
	TemplateScope  *SymbolTable

	// class instance / function instance
	TemplateSymbol  *Symbol
	TypeArguments   []types.Type
	InstantiatedAST ast.Node
}

// Clone produces a shallow copy of sym. When includeAST is false, Node and
// TemplateAST are dropped — used when building an instantiation's symbol
// before its body has been cloned and re-analyzed (§4.5.6). parent, if
// non-nil, overrides ParentNamespace on the copy.
func (sym *Symbol) Clone(includeAST bool, parent *Symbol) *Symbol {
	clone := *sym
	if !includeAST {
		clone.Node = nil
		clone.TemplateAST = nil
	}
	if parent != nil {
		clone.ParentNamespace = parent
	}
	clone.Parameters = append([]*Symbol(nil), sym.Parameters...)
	clone.TypeParameters = append([]*Symbol(nil), sym.TypeParameters...)
	clone.TypeArguments = append([]types.Type(nil), sym.TypeArguments...)
	return &clone
}

// IsCallable reports whether sym can appear as a CallExpr callee.
func (sym *Symbol) IsCallable() bool {
	switch sym.Kind {
	case SymFunction, SymMethod, SymTemplateFunction, SymFunctionInstance:
		return true
	default:
		return false
	}
}
