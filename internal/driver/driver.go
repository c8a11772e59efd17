// Package driver implements the multi-module build pipeline described in
// spec §4.6: read a project manifest, parse every module's source tree,
// collect declarations, merge exported symbols along dependency edges in
// topological order, then type-check each module.
//
// Every phase runs to completion across every module even after the
// first error, so a single invocation surfaces every diagnostic it can
// (spec §5's "a phase returning failure still runs to completion").
package driver

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kr/pretty"
	"github.com/maruel/natural"

	"github.com/shiro-lang/shiro/internal/ast"
	"github.com/shiro-lang/shiro/internal/diag"
	"github.com/shiro-lang/shiro/internal/manifest"
	"github.com/shiro-lang/shiro/internal/parser"
	"github.com/shiro-lang/shiro/internal/semantic"
	"github.com/shiro-lang/shiro/internal/types"
)

// ManifestFileName is the project manifest's fixed name at the project
// root, per spec §6's document shape.
const ManifestFileName = "shiro.toml"

// Module tracks one manifest entry through discovery, parsing, and
// analysis.
type Module struct {
	Name         string
	Src          string
	Binary       bool
	Dependencies []string

	RootDir string
	Files   []*ast.Root
	Ctx     *semantic.Context
	Symbol  *semantic.Symbol
}

// Result collects everything a build run produced.
type Result struct {
	Project     string
	Modules     []*Module // in dependency order
	Diagnostics *diag.Bag
}

// Options configures a Build run.
type Options struct {
	// Verbose, when set, makes Build write a pretty-printed dump of the
	// resolved build order to Out.
	Verbose bool
	// Out receives verbose diagnostics; defaults to os.Stderr.
	Out io.Writer
}

// Build runs phases 1-6 of spec §4.6 over the project rooted at rootDir
// (a directory containing a shiro.toml manifest). A malformed manifest, a
// module-path error or a dependency cycle ends the build at once; any
// other phase error does not stop it. The returned error reports failure,
// and Result still carries whatever diagnostics and partial analysis the
// modules produced, so callers can print a complete report.
func Build(rootDir string, opts Options) (*Result, error) {
	if opts.Out == nil {
		opts.Out = os.Stderr
	}

	manifestPath := filepath.Join(rootDir, ManifestFileName)
	f, err := os.Open(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	man, bag := manifest.Parse(f, manifestPath)
	f.Close()
	result := &Result{Project: man.ProjectName, Diagnostics: bag}
	if bag.HasErrors() {
		return result, fmt.Errorf("manifest %s is malformed", manifestPath)
	}

	if err := validateModulePaths(rootDir, man); err != nil {
		return result, err
	}

	modules := make(map[string]*Module, len(man.Modules))
	for _, md := range man.Modules {
		modules[md.Name] = &Module{
			Name:         md.Name,
			Src:          md.Src,
			Binary:       md.Binary,
			Dependencies: md.Dependencies,
			RootDir:      filepath.Join(rootDir, md.Src),
		}
	}

	// Phase 2: parse every module's source tree, accumulating diagnostics
	// for every module even once one has failed.
	for _, md := range man.Modules {
		mod := modules[md.Name]
		files, err := discoverSources(mod.RootDir)
		if err != nil {
			bag.Error(diag.Position{File: mod.RootDir}, "discovering sources for module '%s': %v", mod.Name, err)
			continue
		}
		for _, path := range files {
			src, err := os.ReadFile(path)
			if err != nil {
				bag.Error(diag.Position{File: path}, "reading source file: %v", err)
				continue
			}
			mod.Files = append(mod.Files, parser.ParseFile(path, string(src), bag))
		}
	}

	// Phase 3: declaration collection, one context per module.
	cache := types.NewCache()
	for _, md := range man.Modules {
		mod := modules[md.Name]
		mod.Symbol = &semantic.Symbol{Name: mod.Name, Kind: semantic.SymNamespace}
		mod.Ctx = semantic.NewContext(cache, bag, mod.Symbol, mod.RootDir)
		dc := semantic.NewDeclCollector(mod.Ctx)
		for _, root := range mod.Files {
			dc.Run(root)
		}
	}

	// Phase 4 is a no-op here: Dependencies was already populated from the
	// manifest when each Module was built above.

	// Phase 5: topological sort, then merge exports along every edge.
	order, err := topoSort(man.Modules)
	if err != nil {
		return result, err
	}
	if opts.Verbose {
		fmt.Fprintf(opts.Out, "resolved build order:\n%s\n", pretty.Sprint(order))
	}
	for _, name := range order {
		mod := modules[name]
		for _, depName := range mod.Dependencies {
			dep, ok := modules[depName]
			if !ok {
				bag.Error(diag.Position{File: mod.RootDir}, "module '%s' depends on undeclared module '%s'", mod.Name, depName)
				continue
			}
			mergeExports(mod.Ctx, dep.Ctx)
		}
	}

	// Phase 6: type-check every module in dependency order. Template
	// instantiation is shared across the whole run so identical
	// instantiations in different modules collapse to one instance.
	templates := semantic.NewTemplateInstantiator()
	for _, name := range order {
		mod := modules[name]
		analyzer := semantic.NewAnalyzer(mod.Ctx, templates)
		analyzer.ResolveDeclaredTypes()
		for _, root := range mod.Files {
			analyzer.AnalyzeRoot(root)
		}
		result.Modules = append(result.Modules, mod)
	}

	if bag.HasErrors() {
		return result, fmt.Errorf("build failed with %d error(s)", bag.ErrorCount())
	}
	return result, nil
}

// Link runs phase 7 of spec §4.6 over result's Binary modules, in the
// same dependency order Build resolved them in. The core never performs
// codegen or linking itself (spec §1 names the code generator "its own
// concern"); linker is the external collaborator that does. A nil linker
// makes Link a no-op, which is how the `build` CLI subcommand calls it.
func Link(result *Result, linker func(mod *Module) error) error {
	if linker == nil {
		return nil
	}
	var firstErr error
	for _, mod := range result.Modules {
		if !mod.Binary {
			continue
		}
		if err := linker(mod); err != nil {
			result.Diagnostics.Error(diag.Position{File: mod.RootDir}, "link failed for module '%s': %v", mod.Name, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func validateModulePaths(rootDir string, man *manifest.Manifest) error {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return err
	}

	type srcDir struct {
		name string
		path string
	}
	var dirs []srcDir
	for _, m := range man.Modules {
		abs, err := filepath.Abs(filepath.Join(rootDir, m.Src))
		if err != nil {
			return err
		}
		if abs == absRoot {
			return fmt.Errorf("module '%s' uses the project root directory as its source", m.Name)
		}
		dirs = append(dirs, srcDir{m.Name, abs})
	}
	for i := 0; i < len(dirs); i++ {
		for j := i + 1; j < len(dirs); j++ {
			if pathsOverlap(dirs[i].path, dirs[j].path) {
				return fmt.Errorf("modules '%s' and '%s' have overlapping source directories", dirs[i].name, dirs[j].name)
			}
		}
	}
	return nil
}

func pathsOverlap(a, b string) bool {
	if a == b {
		return true
	}
	return strings.HasPrefix(a, b+string(filepath.Separator)) || strings.HasPrefix(b, a+string(filepath.Separator))
}

// discoverSources walks dir recursively for .shiro files, returned in the
// natural (embedded-number-aware) lexicographic order spec §5 requires of
// a directory walk, so module2.shiro still sorts before module10.shiro.
func discoverSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".shiro") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return natural.Less(files[i], files[j]) })
	return files, nil
}

// topoSort orders modules by dependency, breaking ties by manifest
// declaration order so the result is deterministic (spec §5) rather than
// an arbitrary valid topological order.
func topoSort(mods []*manifest.Module) ([]string, error) {
	index := make(map[string]int, len(mods))
	inDegree := make(map[string]int, len(mods))
	dependents := make(map[string][]string, len(mods))
	for i, m := range mods {
		index[m.Name] = i
		inDegree[m.Name] = 0
	}
	for _, m := range mods {
		for _, dep := range m.Dependencies {
			dependents[dep] = append(dependents[dep], m.Name)
			inDegree[m.Name]++
		}
	}

	var ready []string
	for _, m := range mods {
		if inDegree[m.Name] == 0 {
			ready = append(ready, m.Name)
		}
	}

	var order []string
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return index[ready[i]] < index[ready[j]] })
		name := ready[0]
		ready = ready[1:]
		order = append(order, name)
		for _, dependent := range dependents[name] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if len(order) != len(mods) {
		var stuck []string
		for _, m := range mods {
			if inDegree[m.Name] > 0 {
				stuck = append(stuck, m.Name)
			}
		}
		return nil, fmt.Errorf("cyclic module dependency among: %s", strings.Join(stuck, ", "))
	}
	return order, nil
}

// mergeExports copies pointers to from's exported top-level symbols into
// into's global scope (spec §5's "cross-module merging copies pointers to
// exported symbols"). Name collisions are tolerated here; spec §4.5.3
// only requires erroring once an ambiguous reference is actually used.
func mergeExports(into, from *semantic.Context) {
	for _, sym := range from.Global.All() {
		if isExported(sym) {
			into.Global.Insert(sym)
		}
	}
}

func isExported(sym *semantic.Symbol) bool {
	switch n := sym.Node.(type) {
	case *ast.FnDef:
		return n.Exported
	case *ast.ClassDef:
		return n.Exported
	default:
		return false
	}
}
