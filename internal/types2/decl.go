package types2

import (
	"github.com/you-not-fish/kucode/internal/syntax"
	"github.com/you-not-fish/kucode/internal/types"
)

// globalDecl checks a worldwide declaration.
func (c *Checker) globalDecl(decl *syntax.GlobalDecl) {
	c.varDecl(decl.Fixed, decl.Type, decl.Name, decl.Value)
}

// varDecl checks a variable declaration and declares the variable in
// the current scope. The initializer is checked first, so it cannot
// refer to the variable being declared.
func (c *Checker) varDecl(fixed bool, ref *syntax.TypeRef, name *syntax.Name, init syntax.Expr) {
	typ := c.typeRef(ref)
	if l, ok := init.(*syntax.ListLit); ok && ref.List {
		// A nested literal declares a list of lists.
		for d := listDims(l); d > 1; d-- {
			typ = types.NewList(typ)
		}
	}

	if init != nil {
		var x operand
		c.exprHint(&x, init, typ)
		if !types.IsInvalid(typ) {
			c.assignment(&x, typ, "initialization of "+name.Value)
		}
	}

	kind := types.VarSym
	if fixed {
		kind = types.ConstSym
	}
	c.declare(name, types.NewSymbol(kind, name.Value, typ, name.Pos()))
}

// funcBody checks a function body in a function scope holding the
// parameters.
func (c *Checker) funcBody(decl *syntax.FuncDecl, sym *types.Symbol) {
	sig := sym.Type.(*types.Func)

	c.openScope(decl, types.FuncScope)
	defer c.closeScope()
	c.fn, c.fnName = sig, decl.Name.Value
	defer func() { c.fn, c.fnName = nil, "" }()

	for i, p := range sig.Params() {
		c.declare(decl.Params[i].Name, types.NewSymbol(types.ParamSym, p.Name, p.Type, p.Pos))
	}
	c.stmts(decl.Body.Stmts)
	c.recordScope(decl.Body, c.scope)
}

// assignment checks that x can be stored in a location of type t.
func (c *Checker) assignment(x *operand, t types.Type, context string) bool {
	if !c.hasValue(x) {
		return false
	}
	if types.IsInvalid(x.typ) {
		return false
	}
	if !types.AssignableTo(x.typ, t) {
		if types.IsNumeric(x.typ) && types.IsNumeric(t) {
			c.mismatch(x.pos, "cannot use %s (%s) as %s in %s: implicit narrowing", describe(x.expr), x.typ, t, context)
		} else {
			c.mismatch(x.pos, "cannot use %s (%s) as %s in %s", describe(x.expr), x.typ, t, context)
		}
		return false
	}
	return true
}
