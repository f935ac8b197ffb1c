package types2

import (
	"github.com/you-not-fish/kucode/internal/syntax"
	"github.com/you-not-fish/kucode/internal/types"
)

// collectGroup declares a group type. Its fields are resolved at once;
// they can only have primitive or list types.
func (c *Checker) collectGroup(decl *syntax.GroupDecl) {
	fields := make([]*types.Symbol, 0, len(decl.Fields))
	seen := make(map[string]bool)
	for _, f := range decl.Fields {
		if seen[f.Name.Value] {
			c.errorf(Redeclaration, f.Name.Pos(), "field %s redeclared in group %s", f.Name.Value, decl.Name.Value)
			continue
		}
		seen[f.Name.Value] = true
		sym := types.NewSymbol(types.FieldSym, f.Name.Value, c.typeRef(f.Type), f.Name.Pos())
		fields = append(fields, sym)
		if c.info != nil {
			c.info.Defs[f.Name] = sym
		}
	}
	g := types.NewGroup(decl.Name.Value, fields)
	c.declare(decl.Name, types.NewSymbol(types.GroupSym, decl.Name.Value, g, decl.Name.Pos()))
}

// collectFunc declares a function with its signature and returns the
// symbol. A redeclared function is reported but its symbol is still
// returned so the body gets checked.
func (c *Checker) collectFunc(decl *syntax.FuncDecl) *types.Symbol {
	params := make([]*types.Symbol, len(decl.Params))
	for i, p := range decl.Params {
		params[i] = types.NewSymbol(types.ParamSym, p.Name.Value, c.typeRef(p.Type), p.Name.Pos())
	}
	sig := types.NewFunc(params, c.typeRef(decl.Result))
	sym := types.NewSymbol(types.FuncSym, decl.Name.Value, sig, decl.Name.Pos())
	c.declare(decl.Name, sym)
	return sym
}

// resolve resolves a name used in an expression or statement. It
// reports UndeclaredIdentifier if the name is unknown.
func (c *Checker) resolve(name *syntax.Name) *types.Symbol {
	sym := c.lookup(name.Value)
	if sym == nil {
		c.errorf(UndeclaredIdentifier, name.Pos(), "undeclared name: %s", name.Value)
		return nil
	}
	c.recordUse(name, sym)
	return sym
}
