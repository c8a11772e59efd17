package semantic

import (
	"github.com/shiro-lang/shiro/internal/diag"
	"github.com/shiro-lang/shiro/internal/lexer"
	"github.com/shiro-lang/shiro/internal/types"
)

// Context threads the state both analysis passes share: the type cache,
// the scope stack, the module's own namespace, and the diagnostic bag
// (§4.5).
type Context struct {
	Cache           *types.Cache
	Global          *SymbolTable
	current         *SymbolTable
	ModuleNamespace *Symbol
	Bag             *diag.Bag
	File            string
}

// NewContext creates a fresh analysis context with an empty global scope.
// moduleNamespace may be nil when analyzing a standalone file outside the
// build driver's multi-module manifest flow (§4.6). file is used only to
// stamp diagnostic positions.
func NewContext(cache *types.Cache, bag *diag.Bag, moduleNamespace *Symbol, file string) *Context {
	global := NewSymbolTable(ScopeGlobal)
	return &Context{Cache: cache, Global: global, current: global, Bag: bag, ModuleNamespace: moduleNamespace, File: file}
}

// DiagPos converts a lexer.Position into a diag.Position stamped with
// this context's file.
func (c *Context) DiagPos(pos lexer.Position) diag.Position {
	return diag.Position{File: c.File, Line: pos.Line, Column: pos.Column}
}

// Current returns the innermost active scope.
func (c *Context) Current() *SymbolTable { return c.current }

// PushScope opens a new scope nested inside the current one and makes it
// current; it returns the new scope so callers can inspect it directly.
func (c *Context) PushScope(kind ScopeKind) *SymbolTable {
	c.current = NewChildScope(c.current, kind)
	return c.current
}

// PopScope restores the scope that was current before the matching
// PushScope. Popping past the global scope is a programmer error in this
// package and panics rather than silently corrupting Global.
func (c *Context) PopScope() {
	if c.current.parent == nil {
		panic("semantic: PopScope called with no enclosing scope")
	}
	c.current = c.current.parent
}

func (c *Context) AddError(pos diag.Position, format string, args ...any) {
	c.Bag.Error(pos, format, args...)
}

func (c *Context) AddWarning(pos diag.Position, format string, args ...any) {
	c.Bag.Warning(pos, format, args...)
}
