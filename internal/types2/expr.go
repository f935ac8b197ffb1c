package types2

import (
	"strconv"

	"github.com/you-not-fish/kucode/internal/syntax"
	"github.com/you-not-fish/kucode/internal/types"
)

// expr evaluates an expression and sets x to the result.
func (c *Checker) expr(x *operand, e syntax.Expr) {
	c.exprHint(x, e, nil)
}

// exprHint is like expr; hint is the type the context expects and is
// used to type list literals.
func (c *Checker) exprHint(x *operand, e syntax.Expr, hint types.Type) {
	c.exprInternal(x, e, hint)

	if x.mode != invalid {
		c.recordType(e, x)
	}
}

func (c *Checker) exprInternal(x *operand, e syntax.Expr, hint types.Type) {
	x.mode = invalid
	x.pos = e.Pos()
	x.typ = types.Typ[types.Invalid]
	x.expr = e

	switch e := e.(type) {
	case *syntax.Name:
		c.ident(x, e)
	case *syntax.BasicLit:
		c.basicLit(x, e)
	case *syntax.UnaryExpr:
		c.unary(x, e)
	case *syntax.BinaryExpr:
		c.binary(x, e)
	case *syntax.CallExpr:
		c.call(x, e)
	case *syntax.IndexExpr:
		c.index(x, e)
	case *syntax.MemberExpr:
		c.member(x, e)
	case *syntax.SizeExpr:
		c.size(x, e)
	case *syntax.ListLit:
		c.listLit(x, e, hint)
	default:
		c.mismatch(e.Pos(), "unexpected expression %T", e)
	}

	// Operands of e were evaluated into x.
	x.expr = e
	x.pos = e.Pos()
}

// ident evaluates a name used as a value.
func (c *Checker) ident(x *operand, name *syntax.Name) {
	sym := c.resolve(name)
	if sym == nil {
		return
	}

	switch sym.Kind {
	case types.VarSym, types.ParamSym:
		x.mode = variable
		x.typ = sym.Type
	case types.ConstSym:
		x.mode = constant_
		x.typ = sym.Type
	case types.FuncSym:
		c.mismatch(name.Pos(), "function %s used as value", name.Value)
	case types.GroupSym:
		c.mismatch(name.Pos(), "group %s is not a value", name.Value)
	default:
		c.mismatch(name.Pos(), "%s %s is not a value", sym.Kind, name.Value)
	}
}

func (c *Checker) basicLit(x *operand, lit *syntax.BasicLit) {
	t, ok := types.LiteralType(lit.Kind)
	if !ok {
		c.mismatch(lit.Pos(), "unknown literal kind %s", lit.Kind)
		return
	}
	x.mode = constant_
	x.typ = t
}

func (c *Checker) unary(x *operand, e *syntax.UnaryExpr) {
	c.expr(x, e.X)
	if !c.hasValue(x) || types.IsInvalid(x.typ) {
		x.setInvalid()
		return
	}

	switch e.Op {
	case syntax.Sub:
		if !types.IsNumeric(x.typ) {
			c.invalidOp(e.Pos(), "operator - not defined on %s (%s)", describe(e.X), x.typ)
			x.setInvalid()
			return
		}
	case syntax.Not:
		if !types.IsBoolean(x.typ) {
			c.invalidOp(e.Pos(), "operator ! not defined on %s (%s)", describe(e.X), x.typ)
			x.setInvalid()
			return
		}
	default:
		c.invalidOp(e.Pos(), "unknown unary operator %s", e.Op)
		x.setInvalid()
		return
	}
	x.mode = value
}

func (c *Checker) binary(x *operand, e *syntax.BinaryExpr) {
	var y operand
	c.expr(x, e.X)
	c.expr(&y, e.Y)

	xok, yok := c.hasValue(x), c.hasValue(&y)
	if !xok || !yok || types.IsInvalid(x.typ) || types.IsInvalid(y.typ) {
		x.setInvalid()
		return
	}

	t := c.binaryType(e.Pos(), e.Op, x.typ, y.typ)
	if t == nil {
		x.setInvalid()
		return
	}
	x.setValue(t)
}

// binaryType returns the result type of x op y, or nil after reporting
// an error.
func (c *Checker) binaryType(pos syntax.Pos, op syntax.Kind, x, y types.Type) types.Type {
	switch op {
	case syntax.OrOr, syntax.AndAnd:
		if types.IsBoolean(x) && types.IsBoolean(y) {
			return types.Typ[types.Bool]
		}
		c.invalidOp(pos, "operator %s requires bool operands, got %s and %s", op, x, y)

	case syntax.Eql, syntax.Neq:
		if types.Comparable(x, y) {
			return types.Typ[types.Bool]
		}
		c.invalidOp(pos, "mismatched types %s and %s in comparison", x, y)

	case syntax.Lss, syntax.Leq, syntax.Gtr, syntax.Geq:
		if types.Comparable(x, y) && types.IsOrdered(x) {
			return types.Typ[types.Bool]
		}
		if types.Comparable(x, y) {
			c.invalidOp(pos, "operator %s not defined on %s", op, x)
		} else {
			c.invalidOp(pos, "mismatched types %s and %s in comparison", x, y)
		}

	case syntax.Add:
		if types.IsText(x) && types.IsText(y) {
			return types.Typ[types.Text]
		}
		if t := types.Widen(x, y); t != nil {
			return t
		}
		c.invalidOp(pos, "operator + not defined on %s and %s", x, y)

	case syntax.Sub, syntax.Mul, syntax.Div, syntax.Pow:
		if t := types.Widen(x, y); t != nil {
			return t
		}
		c.invalidOp(pos, "operator %s not defined on %s and %s", op, x, y)

	case syntax.Rem:
		num := types.Typ[types.Num]
		if types.Identical(x, num) && types.Identical(y, num) {
			return num
		}
		c.invalidOp(pos, "operator %% requires num operands, got %s and %s", x, y)

	default:
		c.invalidOp(pos, "unknown binary operator %s", op)
	}
	return nil
}

func (c *Checker) index(x *operand, e *syntax.IndexExpr) {
	c.expr(x, e.X)

	var i operand
	c.expr(&i, e.Index)
	if c.hasValue(&i) && !types.IsInvalid(i.typ) && !types.Identical(i.typ, types.Typ[types.Num]) {
		c.mismatch(i.pos, "list index %s must be num, got %s", describe(e.Index), i.typ)
	}

	if !c.hasValue(x) || types.IsInvalid(x.typ) {
		x.setInvalid()
		return
	}
	l, ok := x.typ.(*types.List)
	if !ok {
		c.mismatch(e.Pos(), "cannot index %s (%s): not a list", describe(e.X), x.typ)
		x.setInvalid()
		return
	}
	if x.mode != variable {
		x.mode = value
	}
	x.typ = l.Elem()
}

func (c *Checker) member(x *operand, e *syntax.MemberExpr) {
	c.expr(x, e.X)
	if !c.hasValue(x) || types.IsInvalid(x.typ) {
		x.setInvalid()
		return
	}

	g, ok := x.typ.(*types.Group)
	if !ok {
		c.mismatch(e.Pos(), "%s (%s) has no fields: not a group", describe(e.X), x.typ)
		x.setInvalid()
		return
	}
	f := g.Lookup(e.Sel.Value)
	if f == nil {
		c.errorf(UnknownField, e.Sel.Pos(), "group %s has no field %s", g.Name(), e.Sel.Value)
		x.setInvalid()
		return
	}
	c.recordUse(e.Sel, f)
	if x.mode != variable {
		x.mode = value
	}
	x.typ = f.Type
}

// size evaluates size(list) and size(list, dim). Dimensions count from 0.
func (c *Checker) size(x *operand, e *syntax.SizeExpr) {
	sym := c.resolve(e.List)
	if sym == nil {
		return
	}
	l, ok := sym.Type.(*types.List)
	if !ok || sym.Kind == types.FuncSym || sym.Kind == types.GroupSym {
		c.mismatch(e.List.Pos(), "size() requires a list, %s is %s %s", e.List.Value, sym.Kind, sym.Type)
		return
	}
	if e.Dim != nil {
		d, err := strconv.Atoi(e.Dim.Value)
		if err != nil || d >= l.Dims() {
			c.mismatch(e.Dim.Pos(), "size(%s, %s): %s has %d dimension(s)", e.List.Value, e.Dim.Value, e.List.Value, l.Dims())
			return
		}
	}
	x.setValue(types.Typ[types.Num])
}

// listLit types a list literal. With a list hint every element must be
// assignable to the hinted element type; without one the element type
// is inferred from the elements.
func (c *Checker) listLit(x *operand, e *syntax.ListLit, hint types.Type) {
	if l, ok := hint.(*types.List); ok {
		good := true
		for _, el := range e.Elems {
			var y operand
			c.exprHint(&y, el, l.Elem())
			if !c.assignment(&y, l.Elem(), "list element") {
				good = false
			}
		}
		if good {
			x.setValue(l)
		}
		return
	}

	if len(e.Elems) == 0 {
		c.mismatch(e.Pos(), "cannot infer element type of empty list")
		return
	}
	var elem types.Type
	ok := true
	for _, el := range e.Elems {
		var y operand
		c.expr(&y, el)
		if !c.hasValue(&y) || types.IsInvalid(y.typ) {
			ok = false
			continue
		}
		switch {
		case elem == nil || types.Identical(elem, y.typ):
			elem = y.typ
		case types.Widen(elem, y.typ) != nil:
			elem = types.Widen(elem, y.typ)
		default:
			c.mismatch(y.pos, "mixed element types %s and %s in list literal", elem, y.typ)
			ok = false
		}
	}
	if ok && elem != nil {
		x.setValue(types.NewList(elem))
	}
}

// listDims returns the nesting depth of a list literal, following first
// elements.
func listDims(l *syntax.ListLit) int {
	n := 1
	for len(l.Elems) > 0 {
		inner, ok := l.Elems[0].(*syntax.ListLit)
		if !ok {
			break
		}
		l = inner
		n++
	}
	return n
}
