package types2

import (
	"github.com/you-not-fish/kucode/internal/syntax"
	"github.com/you-not-fish/kucode/internal/types"
)

// operandMode describes the mode of an operand.
type operandMode int

const (
	invalid   operandMode = iota // operand is invalid
	novalue                      // call of a function giving empty
	constant_                    // literal or fixed variable
	variable                     // assignable location
	value                        // computed value
)

// operand represents the result of evaluating an expression.
type operand struct {
	mode operandMode
	pos  syntax.Pos
	typ  types.Type
	expr syntax.Expr
}

func (x *operand) String() string {
	switch x.mode {
	case invalid:
		return "invalid operand"
	case novalue:
		return "no value"
	}
	return x.typ.String()
}

func (x *operand) setValue(typ types.Type) {
	x.mode = value
	x.typ = typ
}

func (x *operand) setInvalid() {
	x.mode = invalid
	x.typ = types.Typ[types.Invalid]
}

// hasValue reports whether x can be used as a value. It reports an error
// for calls of empty functions.
func (c *Checker) hasValue(x *operand) bool {
	switch x.mode {
	case invalid:
		return false
	case novalue:
		c.mismatch(x.pos, "%s gives no value", describe(x.expr))
		x.setInvalid()
		return false
	}
	return true
}

// describe names an expression in error messages.
func describe(e syntax.Expr) string {
	switch e := e.(type) {
	case *syntax.Name:
		return e.Value
	case *syntax.BasicLit:
		return e.Value
	case *syntax.CallExpr:
		return e.Fun.Value + "(...)"
	case *syntax.IndexExpr:
		return describe(e.X) + "[...]"
	case *syntax.MemberExpr:
		return describe(e.X) + "." + e.Sel.Value
	case *syntax.SizeExpr:
		return "size(" + e.List.Value + ")"
	case *syntax.ListLit:
		return "list literal"
	case *syntax.UnaryExpr:
		return e.Op.String() + describe(e.X)
	case *syntax.BinaryExpr:
		return describe(e.X) + " " + e.Op.String() + " " + describe(e.Y)
	}
	return "expression"
}
