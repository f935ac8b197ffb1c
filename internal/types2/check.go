package types2

import (
	"errors"

	"github.com/you-not-fish/kucode/internal/syntax"
	"github.com/you-not-fish/kucode/internal/types"
)

// Checker is the type checker.
type Checker struct {
	conf *Config
	info *Info
	tab  *types.Table

	scope  types.ScopeID // current scope
	global types.ScopeID

	// Function context; nil in the start block.
	fn     *types.Func
	fnName string

	errors int
	first  *Error
}

// checkProgram checks the whole program. Groups and function signatures
// are collected before globals and bodies, so functions can call each
// other regardless of declaration order.
func (c *Checker) checkProgram(prog *syntax.Program) {
	c.global = c.tab.EnterScope(types.NoScope, types.GlobalScope)
	c.scope = c.global
	c.recordScope(prog, c.global)

	for _, g := range prog.Groups {
		c.collectGroup(g)
	}

	sigs := make([]*types.Symbol, len(prog.Funcs))
	for i, f := range prog.Funcs {
		sigs[i] = c.collectFunc(f)
	}

	for _, g := range prog.Globals {
		c.globalDecl(g)
	}

	for i, f := range prog.Funcs {
		c.funcBody(f, sigs[i])
	}

	if prog.Body != nil {
		c.fn, c.fnName = nil, ""
		c.blockStmt(prog.Body)
	}
}

// openScope enters a new scope for n below the current one.
func (c *Checker) openScope(n syntax.Node, kind types.ScopeKind) types.ScopeID {
	s := c.tab.EnterScope(c.scope, kind)
	c.scope = s
	c.recordScope(n, s)
	return s
}

// closeScope discards the current scope and returns to its parent.
func (c *Checker) closeScope() {
	s := c.scope
	c.scope = c.tab.Parent(s)
	c.tab.Discard(s)
}

// lookup finds a name in the current scope chain.
func (c *Checker) lookup(name string) *types.Symbol {
	sym, err := c.tab.Lookup(c.scope, name)
	if err != nil {
		return nil
	}
	return sym
}

// declare declares sym under name in the current scope.
func (c *Checker) declare(name *syntax.Name, sym *types.Symbol) {
	err := c.tab.Declare(c.scope, sym)
	switch {
	case errors.Is(err, types.ErrRedeclared):
		prev := c.tab.LookupLocal(c.scope, name.Value)
		c.errorf(Redeclaration, name.Pos(), "%s redeclared in this scope (previous %s at %s)",
			name.Value, prev.Kind, prev.Pos)
		return
	case err != nil:
		c.mismatch(name.Pos(), "%v", err)
		return
	}
	if c.info != nil {
		c.info.Defs[name] = sym
	}
}

func (c *Checker) recordType(e syntax.Expr, x *operand) {
	if c.info == nil {
		return
	}
	c.info.Types[e] = TypeAndValue{Type: x.typ, mode: x.mode}
}

func (c *Checker) recordUse(name *syntax.Name, sym *types.Symbol) {
	if c.info != nil {
		c.info.Uses[name] = sym
	}
}

func (c *Checker) recordScope(n syntax.Node, s types.ScopeID) {
	if c.info != nil {
		c.info.Scopes[n] = s
	}
}
