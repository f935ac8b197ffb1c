package types2

import (
	"github.com/you-not-fish/kucode/internal/syntax"
	"github.com/you-not-fish/kucode/internal/types"
)

// stmts checks a list of statements.
func (c *Checker) stmts(list []syntax.Stmt) {
	for _, s := range list {
		c.stmt(s)
	}
}

// stmt checks a single statement.
func (c *Checker) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.VarDecl:
		c.varDecl(s.Fixed, s.Type, s.Name, s.Value)

	case *syntax.AssignStmt:
		c.assignStmt(s)

	case *syntax.IncDecStmt:
		c.incDecStmt(s)

	case *syntax.CallStmt:
		var x operand
		c.expr(&x, s.Call)

	case *syntax.BlockStmt:
		c.blockStmt(s)

	case *syntax.IfStmt:
		c.ifStmt(s)

	case *syntax.WhileStmt:
		c.condition(s.Cond, "during")
		c.blockStmt(s.Body)

	case *syntax.ForStmt:
		c.forStmt(s)

	case *syntax.SelectStmt:
		c.selectStmt(s)

	case *syntax.ReturnStmt:
		c.returnStmt(s)

	case *syntax.ShowStmt:
		c.showStmt(s)

	case *syntax.ReadStmt:
		c.readStmt(s)

	default:
		c.mismatch(s.Pos(), "unexpected statement %T", s)
	}
}

// blockStmt checks a block in its own scope.
func (c *Checker) blockStmt(s *syntax.BlockStmt) {
	c.openScope(s, types.BlockScope)
	c.stmts(s.Stmts)
	c.closeScope()
}

// target evaluates the left-hand side of an assignment and reports
// whether it is assignable.
func (c *Checker) target(x *operand, lhs syntax.Expr) bool {
	c.expr(x, lhs)
	switch x.mode {
	case invalid:
		return false
	case variable:
		return true
	case constant_:
		c.mismatch(lhs.Pos(), "cannot assign to fixed %s", describe(lhs))
	default:
		c.mismatch(lhs.Pos(), "cannot assign to %s", describe(lhs))
	}
	return false
}

func (c *Checker) assignStmt(s *syntax.AssignStmt) {
	var lhs, rhs operand
	ok := c.target(&lhs, s.LHS)
	c.exprHint(&rhs, s.RHS, lhs.typ)
	if !ok || types.IsInvalid(lhs.typ) {
		return
	}

	if s.Op == syntax.Assign {
		c.assignment(&rhs, lhs.typ, "assignment")
		return
	}

	// x op= y is checked as x = x op y.
	if !c.hasValue(&rhs) || types.IsInvalid(rhs.typ) {
		return
	}
	t := c.binaryType(s.Pos(), s.Op.BinaryOp(), lhs.typ, rhs.typ)
	if t == nil {
		return
	}
	if !types.AssignableTo(t, lhs.typ) {
		c.mismatch(s.Pos(), "cannot use %s %s %s (%s) as %s in assignment: implicit narrowing",
			describe(s.LHS), s.Op.BinaryOp(), describe(s.RHS), t, lhs.typ)
	}
}

func (c *Checker) incDecStmt(s *syntax.IncDecStmt) {
	var x operand
	if !c.target(&x, s.X) || types.IsInvalid(x.typ) {
		return
	}
	if !types.IsNumeric(x.typ) {
		c.invalidOp(s.Pos(), "%s%s: %s is %s, not numeric", describe(s.X), s.Op, describe(s.X), x.typ)
	}
}

// condition checks the condition of check or during. Under the semantic
// policy the condition must be built from comparisons; a bare boolean
// or arithmetic expression is a NonBooleanCondition.
func (c *Checker) condition(e syntax.Expr, stmt string) {
	var x operand
	c.expr(&x, e)
	if !c.hasValue(&x) || types.IsInvalid(x.typ) {
		return
	}

	if c.conf.Policy == syntax.Semantic {
		if !types.IsBoolean(x.typ) {
			c.errorf(NonBooleanCondition, e.Pos(), "%s condition must be a comparison, got %s (%s)", stmt, describe(e), x.typ)
			return
		}
		if !isComparison(e) {
			c.errorf(NonBooleanCondition, e.Pos(), "%s condition must be a comparison, got bool value %s", stmt, describe(e))
		}
		return
	}
	if !types.IsBoolean(x.typ) {
		c.mismatch(e.Pos(), "non-bool %s (%s) used as %s condition", describe(e), x.typ, stmt)
	}
}

// isComparison reports whether e is a comparison or a combination of
// comparisons with &&, || and !.
func isComparison(e syntax.Expr) bool {
	switch e := e.(type) {
	case *syntax.BinaryExpr:
		switch {
		case e.Op.IsRelational():
			return true
		case e.Op == syntax.AndAnd || e.Op == syntax.OrOr:
			return isComparison(e.X) && isComparison(e.Y)
		}
	case *syntax.UnaryExpr:
		return e.Op == syntax.Not && isComparison(e.X)
	}
	return false
}

func (c *Checker) ifStmt(s *syntax.IfStmt) {
	c.condition(s.Cond, "check")
	c.blockStmt(s.Then)

	switch els := s.Else.(type) {
	case nil:
	case *syntax.BlockStmt:
		c.blockStmt(els)
	case *syntax.IfStmt:
		c.ifStmt(els)
	default:
		c.mismatch(els.Pos(), "unexpected otherwise branch %T", els)
	}
}

// forStmt checks an each loop. The loop variable must be a declared,
// assignable num; the bounds and step must be num.
func (c *Checker) forStmt(s *syntax.ForStmt) {
	num := types.Typ[types.Num]

	if sym := c.resolve(s.Var); sym != nil {
		switch {
		case !sym.Assignable():
			c.mismatch(s.Var.Pos(), "loop variable %s is a %s, not a variable", s.Var.Value, sym.Kind)
		case !types.Identical(sym.Type, num):
			c.mismatch(s.Var.Pos(), "loop variable %s must be num, got %s", s.Var.Value, sym.Type)
		}
	}

	bounds := []struct {
		e    syntax.Expr
		name string
	}{{s.From, "from"}, {s.To, "to"}, {s.Step, "step"}}
	for _, b := range bounds {
		if b.e == nil {
			continue
		}
		var x operand
		c.expr(&x, b.e)
		if c.hasValue(&x) && !types.IsInvalid(x.typ) && !types.Identical(x.typ, num) {
			c.mismatch(b.e.Pos(), "%s value %s must be num, got %s", b.name, describe(b.e), x.typ)
		}
	}

	c.blockStmt(s.Body)
}

func (c *Checker) selectStmt(s *syntax.SelectStmt) {
	var subject types.Type
	if sym := c.resolve(s.Subject); sym != nil {
		switch {
		case sym.Kind == types.FuncSym || sym.Kind == types.GroupSym:
			c.mismatch(s.Subject.Pos(), "cannot select on %s %s", sym.Kind, s.Subject.Value)
		case !types.Identical(sym.Type, types.Typ[types.Num]) && !types.IsText(sym.Type) && !types.IsLetter(sym.Type):
			c.mismatch(s.Subject.Pos(), "select subject %s must be num, text or letter, got %s", s.Subject.Value, sym.Type)
		default:
			subject = sym.Type
		}
	}

	seen := make(map[string]syntax.Pos)
	for _, o := range s.Options {
		var x operand
		c.expr(&x, o.Value)
		if subject != nil && x.mode != invalid && !types.Identical(x.typ, subject) {
			c.mismatch(o.Value.Pos(), "option %s (%s) does not match select subject %s (%s)",
				describe(o.Value), x.typ, s.Subject.Value, subject)
		}
		if prev, dup := seen[o.Value.Value]; dup {
			c.errorf(Redeclaration, o.Value.Pos(), "duplicate option %s (previous at %s)", describe(o.Value), prev)
		} else {
			seen[o.Value.Value] = o.Value.Pos()
		}
		c.optionBody(o)
	}
	if s.Fallback != nil {
		c.optionBody(s.Fallback)
	}
}

func (c *Checker) optionBody(o *syntax.OptionClause) {
	c.openScope(o, types.BlockScope)
	c.stmts(o.Body)
	c.closeScope()
}

func (c *Checker) returnStmt(s *syntax.ReturnStmt) {
	if c.fn == nil {
		c.mismatch(s.Pos(), "give outside a function")
		if s.Result != nil {
			var x operand
			c.expr(&x, s.Result)
		}
		return
	}

	result := c.fn.Result()
	if s.Result == nil {
		if !types.IsEmpty(result) {
			c.mismatch(s.Pos(), "missing value in give: %s gives %s", c.fnName, result)
		}
		return
	}

	var x operand
	c.exprHint(&x, s.Result, result)
	if types.IsEmpty(result) {
		if x.mode != invalid {
			c.mismatch(s.Result.Pos(), "too many values in give: %s gives empty", c.fnName)
		}
		return
	}
	c.assignment(&x, result, "give from "+c.fnName)
}

func (c *Checker) showStmt(s *syntax.ShowStmt) {
	for _, arg := range s.Args {
		var x operand
		c.expr(&x, arg)
		c.hasValue(&x)
	}
}

// readStmt checks read(x): x must be a variable of primitive type.
func (c *Checker) readStmt(s *syntax.ReadStmt) {
	sym := c.resolve(s.Target)
	if sym == nil {
		return
	}
	switch {
	case !sym.Assignable():
		c.mismatch(s.Target.Pos(), "cannot read into %s %s", sym.Kind, s.Target.Value)
	case !types.IsPrimitive(sym.Type):
		c.mismatch(s.Target.Pos(), "cannot read into %s of type %s", s.Target.Value, sym.Type)
	}
}
