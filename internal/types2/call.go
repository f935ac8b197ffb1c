package types2

import (
	"strings"

	"github.com/you-not-fish/kucode/internal/syntax"
	"github.com/you-not-fish/kucode/internal/types"
)

// call checks a function call. Calls of empty functions give no value.
func (c *Checker) call(x *operand, e *syntax.CallExpr) {
	sym := c.resolve(e.Fun)
	if sym == nil {
		c.useArgs(e.Args)
		return
	}
	sig, ok := sym.Type.(*types.Func)
	if !ok || sym.Kind != types.FuncSym {
		c.mismatch(e.Fun.Pos(), "cannot call non-function %s (%s %s)", e.Fun.Value, sym.Kind, sym.Type)
		c.useArgs(e.Args)
		return
	}

	c.arguments(e, sig)

	if types.IsEmpty(sig.Result()) {
		x.mode = novalue
		x.typ = sig.Result()
		return
	}
	x.setValue(sig.Result())
}

// arguments checks the arguments of a call against the signature. Both
// a wrong count and an argument of the wrong type are ArityMismatch
// errors.
func (c *Checker) arguments(e *syntax.CallExpr, sig *types.Func) {
	args := make([]operand, len(e.Args))
	for i, arg := range e.Args {
		var hint types.Type
		if i < sig.NumParams() {
			hint = sig.Param(i).Type
		}
		c.exprHint(&args[i], arg, hint)
	}

	if len(args) != sig.NumParams() {
		msg := "not enough"
		if len(args) > sig.NumParams() {
			msg = "too many"
		}
		c.errorf(ArityMismatch, e.Pos(), "%s arguments in call to %s: have (%s), want (%s)",
			msg, e.Fun.Value, operandList(args), paramList(sig))
		return
	}

	for i := range args {
		a, p := &args[i], sig.Param(i)
		if a.mode == invalid || types.IsInvalid(a.typ) {
			continue
		}
		if a.mode == novalue || !types.AssignableTo(a.typ, p.Type) {
			c.errorf(ArityMismatch, a.pos, "cannot use %s (%s) as %s in argument %d to %s",
				describe(a.expr), a, p.Type, i+1, e.Fun.Value)
		}
	}
}

// useArgs checks arguments of a call that could not be resolved, so
// errors inside them are still reported.
func (c *Checker) useArgs(args []syntax.Expr) {
	for _, arg := range args {
		var x operand
		c.expr(&x, arg)
	}
}

func operandList(args []operand) string {
	s := make([]string, len(args))
	for i := range args {
		s[i] = args[i].String()
	}
	return strings.Join(s, ", ")
}

func paramList(sig *types.Func) string {
	s := make([]string, sig.NumParams())
	for i, p := range sig.Params() {
		s[i] = p.Type.String()
	}
	return strings.Join(s, ", ")
}
