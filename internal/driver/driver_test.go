package driver

import (
	"testing"

	"github.com/shiro-lang/shiro/internal/ast"
	"github.com/shiro-lang/shiro/internal/manifest"
	"github.com/shiro-lang/shiro/internal/semantic"
)

func TestTopoSortOrdersDependenciesFirst(t *testing.T) {
	mods := []*manifest.Module{
		{Name: "app", Binary: true, Dependencies: []string{"core", "util"}},
		{Name: "core", Dependencies: []string{"util"}},
		{Name: "util"},
	}
	order, err := topoSort(mods)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pos := make(map[string]int, len(order))
	for i, name := range order {
		pos[name] = i
	}
	if pos["util"] > pos["core"] || pos["core"] > pos["app"] {
		t.Fatalf("order = %v, want util before core before app", order)
	}
}

func TestTopoSortDetectsCycle(t *testing.T) {
	mods := []*manifest.Module{
		{Name: "a", Dependencies: []string{"b"}},
		{Name: "b", Dependencies: []string{"a"}},
	}
	if _, err := topoSort(mods); err == nil {
		t.Fatalf("expected a cycle error")
	}
}

func TestTopoSortIsDeterministicAcrossTies(t *testing.T) {
	mods := []*manifest.Module{
		{Name: "z"},
		{Name: "a"},
		{Name: "m"},
	}
	first, err := topoSort(mods)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first[0] != "z" || first[1] != "a" || first[2] != "m" {
		t.Fatalf("order = %v, want manifest declaration order for unrelated modules", first)
	}
}

func TestValidateModulePathsRejectsRootAsSource(t *testing.T) {
	man := &manifest.Manifest{Modules: []*manifest.Module{{Name: "app", Src: "."}}}
	if err := validateModulePaths("/proj", man); err == nil {
		t.Fatalf("expected an error for a module using the project root")
	}
}

func TestValidateModulePathsRejectsOverlap(t *testing.T) {
	man := &manifest.Manifest{Modules: []*manifest.Module{
		{Name: "a", Src: "src"},
		{Name: "b", Src: "src/nested"},
	}}
	if err := validateModulePaths("/proj", man); err == nil {
		t.Fatalf("expected an error for overlapping source directories")
	}
}

func TestValidateModulePathsAcceptsDisjointDirs(t *testing.T) {
	man := &manifest.Manifest{Modules: []*manifest.Module{
		{Name: "a", Src: "src/a"},
		{Name: "b", Src: "src/b"},
	}}
	if err := validateModulePaths("/proj", man); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMergeExportsCopiesOnlyExportedTopLevelSymbols(t *testing.T) {
	from := semantic.NewContext(nil, nil, nil, "dep.shiro")
	exportedFn := &semantic.Symbol{Name: "pub", Kind: semantic.SymFunction, Node: &ast.FnDef{Exported: true}}
	privateFn := &semantic.Symbol{Name: "priv", Kind: semantic.SymFunction, Node: &ast.FnDef{Exported: false}}
	from.Global.Insert(exportedFn)
	from.Global.Insert(privateFn)

	into := semantic.NewContext(nil, nil, nil, "main.shiro")
	mergeExports(into, from)

	if into.Global.LookupLocal("pub") == nil {
		t.Fatalf("expected exported symbol to be merged")
	}
	if into.Global.LookupLocal("priv") != nil {
		t.Fatalf("did not expect unexported symbol to be merged")
	}
}
