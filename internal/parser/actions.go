package parser

import (
	"github.com/you-not-fish/kucode/internal/grammar"
	"github.com/you-not-fish/kucode/internal/syntax"
)

// Build actions receive one value per right-hand-side symbol: a
// syntax.Token for each terminal and the action result of each
// nonterminal (nil for λ).

func k(kind syntax.Kind) grammar.Symbol { return grammar.T(kind) }

func tokenAt(args []any, i int) syntax.Token {
	tok, _ := args[i].(syntax.Token)
	return tok
}

func exprAt(args []any, i int) syntax.Expr {
	x, _ := args[i].(syntax.Expr)
	return x
}

func exprsAt(args []any, i int) []syntax.Expr {
	list, _ := args[i].([]syntax.Expr)
	return list
}

func stmtsAt(args []any, i int) []syntax.Stmt {
	list, _ := args[i].([]syntax.Stmt)
	return list
}

func newName(tok syntax.Token, ctx syntax.Context) *syntax.Name {
	n := &syntax.Name{Value: tok.Lit}
	n.SetPos(tok.Pos)
	n.SetContext(ctx)
	return n
}

func newLit(tok syntax.Token, ctx syntax.Context) *syntax.BasicLit {
	lit := &syntax.BasicLit{Value: tok.Lit, Kind: tok.Kind}
	if lit.Value == "" {
		lit.Value = tok.Kind.String()
	}
	lit.SetPos(tok.Pos)
	lit.SetContext(ctx)
	return lit
}

// binTail is one "op operand" step of an operator tail.
type binTail struct {
	op syntax.Token
	y  syntax.Expr
}

// tail builds a single step: CmpTail → relop Add, PowTail → ** Pow.
func tail(args []any) any {
	return &binTail{op: tokenAt(args, 0), y: exprAt(args, 1)}
}

// consTail prepends a step to the rest of a repeating tail:
// AddTail → + Mul AddTail.
func consTail(args []any) any {
	rest, _ := args[2].([]binTail)
	return append([]binTail{{op: tokenAt(args, 0), y: exprAt(args, 1)}}, rest...)
}

// foldLeft combines an operand with a repeating tail into a
// left-associative chain: a - b - c is (a - b) - c.
func foldLeft(ctx syntax.Context) grammar.Action {
	return func(args []any) any {
		return foldSteps(exprAt(args, 0), args[1], ctx)
	}
}

func foldSteps(x syntax.Expr, v any, ctx syntax.Context) syntax.Expr {
	steps, _ := v.([]binTail)
	for _, s := range steps {
		x = newBinary(s.op.Kind, x, s.y, ctx)
	}
	return x
}

// foldOptional combines an operand with an optional single step.
func foldOptional(ctx syntax.Context) grammar.Action {
	return func(args []any) any {
		x := exprAt(args, 0)
		if s, ok := args[1].(*binTail); ok {
			return newBinary(s.op.Kind, x, s.y, ctx)
		}
		return x
	}
}

func newBinary(op syntax.Kind, x, y syntax.Expr, ctx syntax.Context) *syntax.BinaryExpr {
	b := &syntax.BinaryExpr{Op: op, X: x, Y: y}
	b.SetPos(x.Pos())
	b.SetContext(ctx)
	return b
}

func unary(ctx syntax.Context) grammar.Action {
	return func(args []any) any {
		op := tokenAt(args, 0)
		u := &syntax.UnaryExpr{Op: op.Kind, X: exprAt(args, 1)}
		u.SetPos(op.Pos)
		u.SetContext(ctx)
		return u
	}
}

func literal(ctx syntax.Context) grammar.Action {
	return func(args []any) any {
		return newLit(tokenAt(args, 0), ctx)
	}
}

// paren returns the inner expression. When the parentheses switch to
// another hierarchy, the operator nodes inside are moved to ctx.
func paren(ctx syntax.Context) grammar.Action {
	return func(args []any) any {
		x := exprAt(args, 1)
		if ctx != syntax.NoContext {
			retag(x, ctx)
		}
		return x
	}
}

// retag moves x and the operands it directly combines to ctx. Call
// arguments and index expressions keep their own context.
func retag(x syntax.Expr, ctx syntax.Context) {
	if x == nil {
		return
	}
	x.SetContext(ctx)
	switch x := x.(type) {
	case *syntax.BinaryExpr:
		retag(x.X, ctx)
		retag(x.Y, ctx)
	case *syntax.UnaryExpr:
		retag(x.X, ctx)
	case *syntax.IndexExpr:
		retag(x.X, ctx)
	case *syntax.MemberExpr:
		retag(x.X, ctx)
	case *syntax.CallExpr:
		x.Fun.SetContext(ctx)
	case *syntax.SizeExpr:
		x.List.SetContext(ctx)
	}
}

// suffixFunc completes an identifier primary once its suffix is known.
type suffixFunc func(base *syntax.Name) syntax.Expr

// namePrimary builds Primary → id IdSuffix.
func namePrimary(ctx syntax.Context) grammar.Action {
	return func(args []any) any {
		base := newName(tokenAt(args, 0), ctx)
		if f, ok := args[1].(suffixFunc); ok {
			return f(base)
		}
		return base
	}
}

func callSuffix(ctx syntax.Context) grammar.Action {
	return func(args []any) any {
		list := exprsAt(args, 1)
		return suffixFunc(func(base *syntax.Name) syntax.Expr {
			return newCall(base, list, ctx)
		})
	}
}

func newCall(fun *syntax.Name, args []syntax.Expr, ctx syntax.Context) *syntax.CallExpr {
	c := &syntax.CallExpr{Fun: fun, Args: args}
	c.SetPos(fun.Pos())
	c.SetContext(ctx)
	return c
}

// indexSuffix builds IdSuffix → [ IndexExpr ] IndexTail. Each further
// index nests around the previous one.
func indexSuffix(ctx syntax.Context) grammar.Action {
	return func(args []any) any {
		indices := append([]syntax.Expr{exprAt(args, 1)}, exprsAt(args, 3)...)
		return suffixFunc(func(base *syntax.Name) syntax.Expr {
			return newIndex(base, indices, ctx)
		})
	}
}

func newIndex(base syntax.Expr, indices []syntax.Expr, ctx syntax.Context) syntax.Expr {
	x := base
	for _, i := range indices {
		ix := &syntax.IndexExpr{X: x, Index: i}
		ix.SetPos(base.Pos())
		ix.SetContext(ctx)
		x = ix
	}
	return x
}

// memberSuffix builds IdSuffix → . id IndexTail; the indices apply to
// the selected field.
func memberSuffix(ctx syntax.Context) grammar.Action {
	return func(args []any) any {
		sel := newName(tokenAt(args, 1), ctx)
		indices := exprsAt(args, 2)
		return suffixFunc(func(base *syntax.Name) syntax.Expr {
			return newIndex(newMember(base, sel, ctx), indices, ctx)
		})
	}
}

func newMember(x syntax.Expr, sel *syntax.Name, ctx syntax.Context) *syntax.MemberExpr {
	m := &syntax.MemberExpr{X: x, Sel: sel}
	m.SetPos(x.Pos())
	m.SetContext(ctx)
	return m
}

// consExpr prepends the expression at args[item] to the list at
// args[rest]. It builds Args, Elems and their separator tails as well
// as IndexTail.
func consExpr(item, rest int) grammar.Action {
	return func(args []any) any {
		return append([]syntax.Expr{exprAt(args, item)}, exprsAt(args, rest)...)
	}
}

func sizeCall(args []any) any {
	s := &syntax.SizeExpr{List: newName(tokenAt(args, 2), syntax.NoContext)}
	if dim, ok := args[3].(*syntax.BasicLit); ok {
		s.Dim = dim
	}
	s.SetPos(tokenAt(args, 0).Pos)
	return s
}

func sizeDim(args []any) any {
	return newLit(tokenAt(args, 1), syntax.NoContext)
}

func sizePrimary(ctx syntax.Context) grammar.Action {
	return func(args []any) any {
		s := args[0].(*syntax.SizeExpr)
		s.SetContext(ctx)
		s.List.SetContext(ctx)
		if s.Dim != nil {
			s.Dim.SetContext(ctx)
		}
		return s
	}
}

func listLit(args []any) any {
	l := &syntax.ListLit{Elems: exprsAt(args, 1)}
	l.SetPos(tokenAt(args, 0).Pos)
	return l
}

func listPrimary(ctx syntax.Context) grammar.Action {
	return func(args []any) any {
		l := args[0].(*syntax.ListLit)
		l.SetContext(ctx)
		return l
	}
}

// closeFunc completes an expression once its leftmost operand, a
// parenthesized group, is known.
type closeFunc func(x syntax.Expr) syntax.Expr

func closeWith(v any, x syntax.Expr) syntax.Expr {
	if f, ok := v.(closeFunc); ok {
		return f(x)
	}
	return x
}

// arithTailAction builds ArithTail → PowTail MulTail AddTail.
func arithTailAction(ctx syntax.Context) grammar.Action {
	return func(args []any) any {
		pow, _ := args[0].(*binTail)
		mul, add := args[1], args[2]
		return closeFunc(func(x syntax.Expr) syntax.Expr {
			if pow != nil {
				x = newBinary(pow.op.Kind, x, pow.y, ctx)
			}
			return foldSteps(foldSteps(x, mul, ctx), add, ctx)
		})
	}
}

// parenPlain builds Paren → PlainAdd ParenRest.
func parenPlain(args []any) any {
	return closeWith(args[1], exprAt(args, 0))
}

// parenNot builds Paren → ! Cmp AndTail OrTail ) BoolClose.
func parenNot(ctx syntax.Context) grammar.Action {
	return func(args []any) any {
		x := unary(ctx)(args[:2]).(syntax.Expr)
		x = foldSteps(foldSteps(x, args[2], ctx), args[3], ctx)
		return closeWith(args[5], x)
	}
}

// parenGroup builds Paren → ( ParenExpr ) ArithTail ParenRest at the
// deepest level.
func parenGroup(ctx syntax.Context) grammar.Action {
	return func(args []any) any {
		x := exprAt(args, 1)
		retag(x, ctx)
		return closeWith(args[4], closeWith(args[3], x))
	}
}

// parenRestGroup builds ParenRest → ) ArithClose: the group was
// arithmetic.
func parenRestGroup(args []any) any {
	next := args[1]
	return closeFunc(func(x syntax.Expr) syntax.Expr {
		return closeWith(next, x)
	})
}

// parenRestCmp builds ParenRest → relop Add AndTail OrTail ) BoolClose:
// the group holds a condition.
func parenRestCmp(ctx syntax.Context) grammar.Action {
	return func(args []any) any {
		op, y := tokenAt(args, 0), exprAt(args, 1)
		ands, ors, next := args[2], args[3], args[5]
		return closeFunc(func(x syntax.Expr) syntax.Expr {
			x = newBinary(op.Kind, x, y, ctx)
			return closeWith(next, foldSteps(foldSteps(x, ands, ctx), ors, ctx))
		})
	}
}

// arithCompare builds ArithClose → ArithTail CmpTail at the outermost
// level, where the comparison follows the group.
func arithCompare(ctx syntax.Context) grammar.Action {
	return func(args []any) any {
		arith := args[0]
		cmp, _ := args[1].(*binTail)
		return closeFunc(func(x syntax.Expr) syntax.Expr {
			x = closeWith(arith, x)
			if cmp != nil {
				x = newBinary(cmp.op.Kind, x, cmp.y, ctx)
			}
			return x
		})
	}
}

// arithResume builds ArithClose → ArithTail ParenRest: arithmetic
// continues inside the enclosing group.
func arithResume(args []any) any {
	arith, next := args[0], args[1]
	return closeFunc(func(x syntax.Expr) syntax.Expr {
		return closeWith(next, closeWith(arith, x))
	})
}

// boolResume builds BoolClose → AndTail OrTail ) BoolClose: the
// enclosing group continues as a condition.
func boolResume(ctx syntax.Context) grammar.Action {
	return func(args []any) any {
		ands, ors, next := args[0], args[1], args[3]
		return closeFunc(func(x syntax.Expr) syntax.Expr {
			return closeWith(next, foldSteps(foldSteps(x, ands, ctx), ors, ctx))
		})
	}
}
