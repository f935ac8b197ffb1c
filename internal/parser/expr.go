package parser

import (
	"fmt"

	"github.com/you-not-fish/kucode/internal/grammar"
	"github.com/you-not-fish/kucode/internal/syntax"
)

// cmpMode controls the relational tail of a hierarchy.
type cmpMode uint8

const (
	cmpNone     cmpMode = iota // no comparison, no boolean operators
	cmpOptional                // Add [relop Add]
	cmpRequired                // Add relop Add
)

// exprShape parametrizes one instantiation of the expression grammar.
type exprShape struct {
	ctx    syntax.Context
	prefix string // nonterminal name prefix
	cmp    cmpMode
	// notAtCmp moves ! from the unary level to the comparison level, so
	// that !x must itself be followed by a comparison.
	notAtCmp bool
	paren    string // prefix of the hierarchy used inside ( )
	listLit  bool   // admit [ ... ] as a primary
	follow   []syntax.Kind
}

var relops = []syntax.Kind{syntax.Eql, syntax.Neq, syntax.Lss, syntax.Gtr, syntax.Leq, syntax.Geq}

var literals = []syntax.Kind{syntax.NumLit, syntax.DecLit, syntax.StrLit, syntax.CharLit, syntax.Yes, syntax.No}

// exprHierarchy emits the productions of one expression hierarchy and
// returns its top nonterminal:
//
//	Expr    → Or                       (Add when cmp == cmpNone)
//	Or      → And OrTail
//	OrTail  → || And OrTail | λ
//	And     → Cmp AndTail
//	AndTail → && Cmp AndTail | λ
//	Cmp     → Add CmpTail             (| ! Cmp when notAtCmp)
//	CmpTail → relop Add               (| λ unless cmpRequired)
//	Add     → Mul AddTail
//	AddTail → + Mul AddTail | - Mul AddTail | λ
//	Mul     → Pow MulTail
//	MulTail → * Pow MulTail | / Pow MulTail | % Pow MulTail | λ
//	Pow     → Unary PowTail
//	PowTail → ** Pow | λ
//	Unary   → - Unary | ! Unary | Primary
//	Primary → ( ParenExpr ) | literal | Size | id IdSuffix (| ListLit)
//	IdSuffix  → ( Args ) | [ IndexExpr ] IndexTail | . id IndexTail | λ
//	IndexTail → [ IndexExpr ] IndexTail | λ
//
// When the comparison is required, Cmp → PlainAdd CmpTail | ( Paren1
// instead, where PlainAdd is Add without a leading ( primary and Paren1
// is emitted by condParens.
func exprHierarchy(b *grammar.Builder, s exprShape) grammar.Symbol {
	nt := func(name string) grammar.Symbol { return b.Nonterm(s.prefix + name) }
	ctx := s.ctx

	top := nt("Expr")
	add := nt("Add")
	if s.cmp == cmpNone {
		b.Add(top, nil, add)
	} else {
		or, orTail := nt("Or"), nt("OrTail")
		and, andTail := nt("And"), nt("AndTail")
		cmp, cmpTail := nt("Cmp"), nt("CmpTail")

		b.Add(top, nil, or)
		b.Add(or, foldLeft(ctx), and, orTail)
		b.Add(orTail, consTail, k(syntax.OrOr), and, orTail)
		b.Add(orTail, nil)
		b.Add(and, foldLeft(ctx), cmp, andTail)
		b.Add(andTail, consTail, k(syntax.AndAnd), cmp, andTail)
		b.Add(andTail, nil)
		if s.notAtCmp {
			b.Add(cmp, unary(ctx), k(syntax.Not), cmp)
		}
		if s.cmp == cmpRequired {
			b.Add(cmp, foldOptional(ctx), nt("PlainAdd"), cmpTail)
			b.Add(cmp, second, k(syntax.Lparen), condParens(b, s))
		} else {
			b.Add(cmp, foldOptional(ctx), add, cmpTail)
		}
		for _, op := range relops {
			b.Add(cmpTail, tail, k(op), add)
		}
		if s.cmp == cmpOptional {
			b.Add(cmpTail, nil)
		}
	}

	addTail := nt("AddTail")
	mul, mulTail := nt("Mul"), nt("MulTail")
	pow, powTail := nt("Pow"), nt("PowTail")
	un, prim := nt("Unary"), nt("Primary")

	b.Add(add, foldLeft(ctx), mul, addTail)
	for _, op := range []syntax.Kind{syntax.Add, syntax.Sub} {
		b.Add(addTail, consTail, k(op), mul, addTail)
	}
	b.Add(addTail, nil)

	b.Add(mul, foldLeft(ctx), pow, mulTail)
	for _, op := range []syntax.Kind{syntax.Mul, syntax.Div, syntax.Rem} {
		b.Add(mulTail, consTail, k(op), pow, mulTail)
	}
	b.Add(mulTail, nil)

	// ** is right associative: the tail recurses into Pow, not PowTail.
	b.Add(pow, foldOptional(ctx), un, powTail)
	b.Add(powTail, tail, k(syntax.Pow), pow)
	b.Add(powTail, nil)

	b.Add(un, unary(ctx), k(syntax.Sub), un)
	if s.cmp != cmpNone && !s.notAtCmp {
		b.Add(un, unary(ctx), k(syntax.Not), un)
	}
	b.Add(un, nil, prim)

	parenCtx := syntax.NoContext
	if s.paren != s.prefix {
		parenCtx = ctx
	}
	b.Add(prim, paren(parenCtx), k(syntax.Lparen), b.Nonterm(s.paren+"Expr"), k(syntax.Rparen))
	suffix := idSuffix(b, s.prefix, ctx)
	operands(b, prim, s, suffix)

	if s.cmp == cmpRequired {
		plainMul, plainPow := nt("PlainMul"), nt("PlainPow")
		plainUn, plainPrim := nt("PlainUnary"), nt("PlainPrimary")
		b.Add(nt("PlainAdd"), foldLeft(ctx), plainMul, addTail)
		b.Add(plainMul, foldLeft(ctx), plainPow, mulTail)
		b.Add(plainPow, foldOptional(ctx), plainUn, powTail)
		b.Add(plainUn, unary(ctx), k(syntax.Sub), un)
		b.Add(plainUn, nil, plainPrim)
		operands(b, plainPrim, s, suffix)
	}

	if len(s.follow) > 0 {
		b.Follow(top, s.follow...)
	}
	return top
}

// operands adds the primaries other than a parenthesized expression.
func operands(b *grammar.Builder, prim grammar.Symbol, s exprShape, suffix grammar.Symbol) {
	for _, lit := range literals {
		b.Add(prim, literal(s.ctx), k(lit))
	}
	b.Add(prim, sizePrimary(s.ctx), b.Nonterm("Size"))
	b.Add(prim, namePrimary(s.ctx), k(syntax.Ident), suffix)
	if s.listLit {
		b.Add(prim, listPrimary(s.ctx), b.Nonterm("ListLit"))
	}
}

// condParenDepth is the number of leading parentheses a condition
// operand may open before the innermost one is read as plain grouping.
const condParenDepth = 4

// condParens emits the productions that finish a condition operand
// opening with a parenthesis and returns Paren1. Whether the group is
// arithmetic, so that a comparison must follow the ), or a condition of
// its own is only known once its content reaches ) or a relational
// operator. Each nesting level d carries what remains to be read of the
// enclosing levels:
//
//	Paren_d      → PlainAdd ParenRest_d
//	             | ! Cmp AndTail OrTail ) BoolClose_d
//	             | ( Paren_d+1
//	ParenRest_d  → ) ArithClose_d
//	             | relop Add AndTail OrTail ) BoolClose_d
//	ArithClose_1 → ArithTail CmpTail
//	ArithClose_d → ArithTail ParenRest_d-1
//	BoolClose_1  → λ
//	BoolClose_d  → AndTail OrTail ) BoolClose_d-1
//	ArithTail    → PowTail MulTail AddTail
//
// At the deepest level, ( ParenExpr ) ArithTail ParenRest_d replaces
// ( Paren_d+1.
func condParens(b *grammar.Builder, s exprShape) grammar.Symbol {
	nt := func(name string) grammar.Symbol { return b.Nonterm(s.prefix + name) }
	level := func(name string, d int) grammar.Symbol { return nt(fmt.Sprintf("%s%d", name, d)) }
	ctx := s.ctx

	andTail, orTail := nt("AndTail"), nt("OrTail")
	arithTail := nt("ArithTail")
	b.Add(arithTail, arithTailAction(ctx), nt("PowTail"), nt("MulTail"), nt("AddTail"))

	for d := 1; d <= condParenDepth; d++ {
		paren, rest := level("Paren", d), level("ParenRest", d)
		arithClose, boolClose := level("ArithClose", d), level("BoolClose", d)

		b.Add(paren, parenPlain, nt("PlainAdd"), rest)
		b.Add(paren, parenNot(ctx), k(syntax.Not), nt("Cmp"), andTail, orTail, k(syntax.Rparen), boolClose)
		if d < condParenDepth {
			b.Add(paren, second, k(syntax.Lparen), level("Paren", d+1))
		} else {
			b.Add(paren, parenGroup(ctx), k(syntax.Lparen), b.Nonterm(s.paren+"Expr"), k(syntax.Rparen), arithTail, rest)
		}

		b.Add(rest, parenRestGroup, k(syntax.Rparen), arithClose)
		for _, op := range relops {
			b.Add(rest, parenRestCmp(ctx), k(op), nt("Add"), andTail, orTail, k(syntax.Rparen), boolClose)
		}

		if d == 1 {
			b.Add(arithClose, arithCompare(ctx), arithTail, nt("CmpTail"))
			b.Add(boolClose, nil)
		} else {
			b.Add(arithClose, arithResume, arithTail, level("ParenRest", d-1))
			b.Add(boolClose, boolResume(ctx), andTail, orTail, k(syntax.Rparen), level("BoolClose", d-1))
		}
	}
	return level("Paren", 1)
}

// idSuffix emits the suffixes that may follow an identifier in one
// context: a call, one or more index operations, or a field selector
// with optional indexing.
func idSuffix(b *grammar.Builder, prefix string, ctx syntax.Context) grammar.Symbol {
	suffix := b.Nonterm(prefix + "IdSuffix")
	indexTail := b.Nonterm(prefix + "IndexTail")
	index := b.Nonterm("IndexExpr")

	b.Add(suffix, callSuffix(ctx), k(syntax.Lparen), b.Nonterm("Args"), k(syntax.Rparen))
	b.Add(suffix, indexSuffix(ctx), k(syntax.Lbrack), index, k(syntax.Rbrack), indexTail)
	b.Add(suffix, memberSuffix(ctx), k(syntax.Dot), k(syntax.Ident), indexTail)
	b.Add(suffix, nil)

	b.Add(indexTail, consExpr(1, 3), k(syntax.Lbrack), index, k(syntax.Rbrack), indexTail)
	b.Add(indexTail, nil)
	return suffix
}

// boundGrammar emits the loop-bound nonterminal. A bound is a single
// primary: an optionally negated number, an identifier with an optional
// call, index or selector suffix, or a size call. No binary operator can
// follow it.
func boundGrammar(b *grammar.Builder) grammar.Symbol {
	const ctx = syntax.ContextBound
	bound, num := b.Nonterm("Bound"), b.Nonterm("BoundNum")

	b.Add(bound, literal(ctx), k(syntax.NumLit))
	b.Add(bound, literal(ctx), k(syntax.DecLit))
	b.Add(bound, unary(ctx), k(syntax.Sub), num)
	b.Add(bound, sizePrimary(ctx), b.Nonterm("Size"))
	b.Add(bound, namePrimary(ctx), k(syntax.Ident), idSuffix(b, "Bound", ctx))
	b.Add(num, literal(ctx), k(syntax.NumLit))
	b.Add(num, literal(ctx), k(syntax.DecLit))

	b.Follow(bound, syntax.To, syntax.Step, syntax.Lbrace)
	return bound
}

// sharedExprGrammar emits the nonterminals used by every hierarchy.
//
//	Args     → ArgExpr ArgTail | λ
//	ArgTail  → , ArgExpr ArgTail | λ
//	Size     → size ( id SizeDim )
//	SizeDim  → , num | λ
//	ListLit  → [ Elems ]
//	Elems    → ElemExpr ElemTail | λ
//	ElemTail → , ElemExpr ElemTail | λ
func sharedExprGrammar(b *grammar.Builder) {
	args, argTail := b.Nonterm("Args"), b.Nonterm("ArgTail")
	arg := b.Nonterm("ArgExpr")
	b.Add(args, consExpr(0, 1), arg, argTail)
	b.Add(args, nil)
	b.Add(argTail, consExpr(1, 2), k(syntax.Comma), arg, argTail)
	b.Add(argTail, nil)

	size, dim := b.Nonterm("Size"), b.Nonterm("SizeDim")
	b.Add(size, sizeCall, k(syntax.Size), k(syntax.Lparen), k(syntax.Ident), dim, k(syntax.Rparen))
	b.Add(dim, sizeDim, k(syntax.Comma), k(syntax.NumLit))
	b.Add(dim, nil)

	list, elems, elemTail := b.Nonterm("ListLit"), b.Nonterm("Elems"), b.Nonterm("ElemTail")
	elem := b.Nonterm("ElemExpr")
	b.Add(list, listLit, k(syntax.Lbrack), elems, k(syntax.Rbrack))
	b.Add(elems, consExpr(0, 1), elem, elemTail)
	b.Add(elems, nil)
	b.Add(elemTail, consExpr(1, 2), k(syntax.Comma), elem, elemTail)
	b.Add(elemTail, nil)
}

// exprShapes lists the hierarchies instantiated for a boolean policy.
// Parenthesized operands of a condition that are not themselves
// conditions are parsed with the argument hierarchy.
func exprShapes(policy syntax.BoolPolicy) []exprShape {
	condCmp := cmpRequired
	if policy == syntax.Semantic {
		condCmp = cmpOptional
	}
	return []exprShape{
		{ctx: syntax.ContextAssign, prefix: "Assign", cmp: cmpOptional, paren: "Assign",
			follow: []syntax.Kind{syntax.Semi, syntax.Rparen}},
		{ctx: syntax.ContextArg, prefix: "Arg", cmp: cmpOptional, paren: "Arg",
			follow: []syntax.Kind{syntax.Comma, syntax.Rparen}},
		{ctx: syntax.ContextIndex, prefix: "Index", cmp: cmpNone, paren: "Index",
			follow: []syntax.Kind{syntax.Rbrack, syntax.Rparen}},
		{ctx: syntax.ContextElem, prefix: "Elem", cmp: cmpOptional, paren: "Elem", listLit: true,
			follow: []syntax.Kind{syntax.Comma, syntax.Rbrack, syntax.Rparen}},
		{ctx: syntax.ContextCond, prefix: "Cond", cmp: condCmp, notAtCmp: true, paren: "Arg",
			follow: []syntax.Kind{syntax.Rparen}},
	}
}
