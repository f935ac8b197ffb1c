package parser

import (
	"github.com/you-not-fish/kucode/internal/grammar"
	"github.com/you-not-fish/kucode/internal/syntax"
)

// Names of the entry nonterminals.
const (
	entryProgram = "Program"
	entryStmt    = "Stmt"
	entryBound   = "Bound"
)

// exprEntry maps each context to the top of its hierarchy.
var exprEntry = map[syntax.Context]string{
	syntax.ContextAssign: "AssignExpr",
	syntax.ContextArg:    "ArgExpr",
	syntax.ContextIndex:  "IndexExpr",
	syntax.ContextElem:   "ElemExpr",
	syntax.ContextCond:   "CondExpr",
	syntax.ContextBound:  entryBound,
}

var primTypes = []syntax.Kind{syntax.Num, syntax.Decimal, syntax.Bigdecimal, syntax.Bool, syntax.Text, syntax.Letter}

var assignOps = []syntax.Kind{
	syntax.Assign, syntax.AddAssign, syntax.SubAssign, syntax.MulAssign,
	syntax.DivAssign, syntax.RemAssign, syntax.PowAssign,
}

// NewGrammar returns the KuCode grammar for the given boolean policy.
func NewGrammar(policy syntax.BoolPolicy) (*grammar.Grammar, error) {
	b := grammar.NewBuilder()

	program := b.Nonterm(entryProgram)
	stmt := b.Nonterm(entryStmt)
	declGrammar(b, program)
	stmtGrammar(b, stmt)

	sharedExprGrammar(b)
	for _, s := range exprShapes(policy) {
		b.Entry(exprHierarchy(b, s))
	}
	b.Entry(boundGrammar(b))
	b.Entry(program)
	b.Entry(stmt)

	return b.Grammar()
}

// declGrammar emits the program skeleton:
//
//	Program     → GroupDecls GlobalDecls FuncDecls start Block finish
//	GroupDecl   → group id { Members }
//	Member      → PrimType id ; | list PrimType id ;
//	GlobalDecl  → worldwide GlobalRest
//	GlobalRest  → fixed PrimType id = AssignExpr ; | PrimType id VarInit ;
//	FuncDecl    → define RetType id ( Params ) Block
//	Param       → PrimType id | list PrimType id | id id
func declGrammar(b *grammar.Builder, program grammar.Symbol) {
	groups, group := b.Nonterm("GroupDecls"), b.Nonterm("GroupDecl")
	members, member := b.Nonterm("Members"), b.Nonterm("Member")
	globals, global, globalRest := b.Nonterm("GlobalDecls"), b.Nonterm("GlobalDecl"), b.Nonterm("GlobalRest")
	funcs, fn := b.Nonterm("FuncDecls"), b.Nonterm("FuncDecl")
	retType := b.Nonterm("RetType")
	params, paramTail, param := b.Nonterm("Params"), b.Nonterm("ParamTail"), b.Nonterm("Param")
	prim, varInit := b.Nonterm("PrimType"), b.Nonterm("VarInit")
	block := b.Nonterm("Block")
	assign := b.Nonterm("AssignExpr")
	id := k(syntax.Ident)

	b.Add(program, buildProgram, groups, globals, funcs, k(syntax.Start), block, k(syntax.Finish))

	b.Add(groups, cons[*syntax.GroupDecl](0, 1), group, groups)
	b.Add(groups, nil)
	b.Add(group, buildGroup, k(syntax.Group), id, k(syntax.Lbrace), members, k(syntax.Rbrace))
	b.Add(members, cons[*syntax.Field](0, 1), member, members)
	b.Add(members, nil)
	b.Add(member, buildField(false), prim, id, k(syntax.Semi))
	b.Add(member, buildField(true), k(syntax.List), prim, id, k(syntax.Semi))

	b.Add(globals, cons[*syntax.GlobalDecl](0, 1), global, globals)
	b.Add(globals, nil)
	b.Add(global, buildGlobal, k(syntax.Worldwide), globalRest)
	b.Add(globalRest, buildFixedDecl, k(syntax.Fixed), prim, id, k(syntax.Assign), assign, k(syntax.Semi))
	b.Add(globalRest, buildVarDecl, prim, id, varInit, k(syntax.Semi))

	b.Add(funcs, cons[*syntax.FuncDecl](0, 1), fn, funcs)
	b.Add(funcs, nil)
	b.Add(fn, buildFunc, k(syntax.Define), retType, id, k(syntax.Lparen), params, k(syntax.Rparen), block)
	b.Add(retType, nil, prim)
	b.Add(retType, nil, k(syntax.Empty))
	b.Add(params, cons[*syntax.Field](0, 1), param, paramTail)
	b.Add(params, nil)
	b.Add(paramTail, cons[*syntax.Field](1, 2), k(syntax.Comma), param, paramTail)
	b.Add(paramTail, nil)
	b.Add(param, buildParam, prim, id)
	b.Add(param, buildListParam, k(syntax.List), prim, id)
	b.Add(param, buildParam, id, id)

	for _, t := range primTypes {
		b.Add(prim, nil, k(t))
	}

	b.Sync(groups)
	b.Sync(members)
	b.Sync(globals)
	b.Sync(funcs)
}

// stmtGrammar emits the statements. Everything that starts with an
// identifier shares the Stmt → id IdStmt production and is told apart by
// the second token.
//
//	Stmt  → PrimType id VarInit ;
//	      | fixed PrimType id = AssignExpr ;
//	      | list PrimType id = ListLit ;
//	      | id IdStmt
//	      | check ( CondExpr ) Block Otherwise
//	      | during ( CondExpr ) Block
//	      | each id from Bound to Bound Step Block
//	      | select ( id ) { Options Fallback }
//	      | show ( Args ) ;
//	      | read ( id ) ;
//	      | give GiveTail
//	IdStmt     → id ; | ( Args ) ; | Lval AssignTail
//	Lval       → [ IndexExpr ] LvalIndex | . id LvalIndex | λ
//	AssignTail → assignop AssignExpr ; | ++ ; | -- ;
func stmtGrammar(b *grammar.Builder, stmt grammar.Symbol) {
	stmts, block := b.Nonterm("Stmts"), b.Nonterm("Block")
	prim, varInit := b.Nonterm("PrimType"), b.Nonterm("VarInit")
	idStmt, lval, lvalIndex := b.Nonterm("IdStmt"), b.Nonterm("Lval"), b.Nonterm("LvalIndex")
	assignTail := b.Nonterm("AssignTail")
	otherwise, otherwiseRest := b.Nonterm("Otherwise"), b.Nonterm("OtherwiseRest")
	step := b.Nonterm("Step")
	options, option, optLit := b.Nonterm("Options"), b.Nonterm("Option"), b.Nonterm("OptionLit")
	flow, fallback := b.Nonterm("Flow"), b.Nonterm("Fallback")
	giveTail := b.Nonterm("GiveTail")

	assign, cond := b.Nonterm("AssignExpr"), b.Nonterm("CondExpr")
	index, bound := b.Nonterm("IndexExpr"), b.Nonterm("Bound")
	args, list := b.Nonterm("Args"), b.Nonterm("ListLit")
	id := k(syntax.Ident)

	b.Add(block, buildBlock, k(syntax.Lbrace), stmts, k(syntax.Rbrace))
	b.Add(stmts, cons[syntax.Stmt](0, 1), stmt, stmts)
	b.Add(stmts, nil)
	b.Sync(stmts)

	b.Add(stmt, buildVarDecl, prim, id, varInit, k(syntax.Semi))
	b.Add(varInit, second, k(syntax.Assign), assign)
	b.Add(varInit, nil)
	b.Add(stmt, buildFixedDecl, k(syntax.Fixed), prim, id, k(syntax.Assign), assign, k(syntax.Semi))
	b.Add(stmt, buildListDecl, k(syntax.List), prim, id, k(syntax.Assign), list, k(syntax.Semi))

	b.Add(stmt, buildIdStmt, id, idStmt)
	b.Add(idStmt, groupVar, id, k(syntax.Semi))
	b.Add(idStmt, callStmt, k(syntax.Lparen), args, k(syntax.Rparen), k(syntax.Semi))
	b.Add(idStmt, assignStmt, lval, assignTail)
	b.Add(lval, lvalIndexed, k(syntax.Lbrack), index, k(syntax.Rbrack), lvalIndex)
	b.Add(lval, lvalMember, k(syntax.Dot), id, lvalIndex)
	b.Add(lval, nil)
	b.Add(lvalIndex, second, k(syntax.Lbrack), index, k(syntax.Rbrack))
	b.Add(lvalIndex, nil)
	for _, op := range assignOps {
		b.Add(assignTail, assignRHS, k(op), assign, k(syntax.Semi))
	}
	b.Add(assignTail, incDec, k(syntax.Incr), k(syntax.Semi))
	b.Add(assignTail, incDec, k(syntax.Decr), k(syntax.Semi))

	b.Add(stmt, buildIf, k(syntax.Check), k(syntax.Lparen), cond, k(syntax.Rparen), block, otherwise)
	b.Add(otherwise, second, k(syntax.Otherwise), otherwiseRest)
	b.Add(otherwise, nil)
	b.Add(otherwiseRest, buildIf, k(syntax.Check), k(syntax.Lparen), cond, k(syntax.Rparen), block, otherwise)
	b.Add(otherwiseRest, nil, block)

	b.Add(stmt, buildWhile, k(syntax.During), k(syntax.Lparen), cond, k(syntax.Rparen), block)

	b.Add(stmt, buildFor, k(syntax.Each), id, k(syntax.From), bound, k(syntax.To), bound, step, block)
	b.Add(step, second, k(syntax.Step), bound)
	b.Add(step, nil)

	b.Add(stmt, buildSelect, k(syntax.Select), k(syntax.Lparen), id, k(syntax.Rparen),
		k(syntax.Lbrace), options, fallback, k(syntax.Rbrace))
	b.Add(options, cons[*syntax.OptionClause](0, 1), option, options)
	b.Add(options, nil)
	b.Add(option, buildOption, k(syntax.Option), optLit, k(syntax.Colon), stmts, flow, k(syntax.Semi))
	b.Add(optLit, optionLit, k(syntax.NumLit))
	b.Add(optLit, optionLit, k(syntax.StrLit))
	b.Add(optLit, optionLit, k(syntax.CharLit))
	b.Add(optLit, negOptionLit, k(syntax.Sub), k(syntax.NumLit))
	b.Add(flow, nil, k(syntax.Stop))
	b.Add(flow, nil, k(syntax.Skip))
	b.Add(fallback, buildFallback, k(syntax.Fallback), k(syntax.Colon), stmts)
	b.Add(fallback, nil)
	b.Sync(options)

	b.Add(stmt, buildShow, k(syntax.Show), k(syntax.Lparen), args, k(syntax.Rparen), k(syntax.Semi))
	b.Add(stmt, buildRead, k(syntax.Read), k(syntax.Lparen), id, k(syntax.Rparen), k(syntax.Semi))

	b.Add(stmt, buildGive, k(syntax.Give), giveTail)
	b.Add(giveTail, nil, assign, k(syntax.Semi))
	b.Add(giveTail, nil, k(syntax.Semi))
}
