package parser

import (
	"github.com/you-not-fish/kucode/internal/grammar"
	"github.com/you-not-fish/kucode/internal/syntax"
)

// cons prepends args[item] to the list at args[rest].
func cons[T any](item, rest int) grammar.Action {
	return func(args []any) any {
		tail, _ := args[rest].([]T)
		return append([]T{args[item].(T)}, tail...)
	}
}

// second passes through the value after a leading keyword or operator.
func second(args []any) any { return args[1] }

// typeRef converts a type token (a primitive type keyword, empty, or a
// group name) into a TypeRef.
func typeRef(tok syntax.Token, list bool) *syntax.TypeRef {
	t := &syntax.TypeRef{Kind: tok.Kind, List: list}
	if tok.Kind == syntax.Ident {
		t.Group = tok.Lit
	}
	t.SetPos(tok.Pos)
	return t
}

func buildProgram(args []any) any {
	prog := &syntax.Program{Body: args[4].(*syntax.BlockStmt)}
	prog.Groups, _ = args[0].([]*syntax.GroupDecl)
	prog.Globals, _ = args[1].([]*syntax.GlobalDecl)
	prog.Funcs, _ = args[2].([]*syntax.FuncDecl)

	pos := tokenAt(args, 3).Pos
	switch {
	case len(prog.Groups) > 0:
		pos = prog.Groups[0].Pos()
	case len(prog.Globals) > 0:
		pos = prog.Globals[0].Pos()
	case len(prog.Funcs) > 0:
		pos = prog.Funcs[0].Pos()
	}
	prog.SetPos(pos)
	return prog
}

func buildGroup(args []any) any {
	g := &syntax.GroupDecl{Name: newName(tokenAt(args, 1), syntax.NoContext)}
	g.Fields, _ = args[3].([]*syntax.Field)
	g.SetPos(tokenAt(args, 0).Pos)
	return g
}

func buildField(list bool) grammar.Action {
	return func(args []any) any {
		i := 0
		if list {
			i = 1
		}
		f := &syntax.Field{
			Name: newName(tokenAt(args, i+1), syntax.NoContext),
			Type: typeRef(tokenAt(args, i), list),
		}
		f.SetPos(tokenAt(args, 0).Pos)
		return f
	}
}

func buildParam(args []any) any {
	return buildField(false)(args)
}

func buildListParam(args []any) any {
	return buildField(true)(args)
}

func buildGlobal(args []any) any {
	d := args[1].(*syntax.VarDecl)
	g := &syntax.GlobalDecl{Fixed: d.Fixed, Type: d.Type, Name: d.Name, Value: d.Value}
	g.SetPos(tokenAt(args, 0).Pos)
	return g
}

func buildFunc(args []any) any {
	f := &syntax.FuncDecl{
		Result: typeRef(tokenAt(args, 1), false),
		Name:   newName(tokenAt(args, 2), syntax.NoContext),
		Body:   args[6].(*syntax.BlockStmt),
	}
	f.Params, _ = args[4].([]*syntax.Field)
	f.SetPos(tokenAt(args, 0).Pos)
	return f
}

func buildBlock(args []any) any {
	b := &syntax.BlockStmt{Stmts: stmtsAt(args, 1), Rbrace: tokenAt(args, 2).Pos}
	b.SetPos(tokenAt(args, 0).Pos)
	return b
}

// buildVarDecl builds PrimType id VarInit ;
func buildVarDecl(args []any) any {
	t := tokenAt(args, 0)
	d := &syntax.VarDecl{
		Type:  typeRef(t, false),
		Name:  newName(tokenAt(args, 1), syntax.NoContext),
		Value: exprAt(args, 2),
	}
	d.SetPos(t.Pos)
	return d
}

// buildFixedDecl builds fixed PrimType id = AssignExpr ;
func buildFixedDecl(args []any) any {
	d := &syntax.VarDecl{
		Fixed: true,
		Type:  typeRef(tokenAt(args, 1), false),
		Name:  newName(tokenAt(args, 2), syntax.NoContext),
		Value: exprAt(args, 4),
	}
	d.SetPos(tokenAt(args, 0).Pos)
	return d
}

// buildListDecl builds list PrimType id = ListLit ;
func buildListDecl(args []any) any {
	l := args[4].(*syntax.ListLit)
	l.SetContext(syntax.ContextAssign)
	d := &syntax.VarDecl{
		Type:  typeRef(tokenAt(args, 1), true),
		Name:  newName(tokenAt(args, 2), syntax.NoContext),
		Value: l,
	}
	d.SetPos(tokenAt(args, 0).Pos)
	return d
}

// idStmtFunc completes a statement that starts with an identifier.
type idStmtFunc func(first syntax.Token) syntax.Stmt

func buildIdStmt(args []any) any {
	return args[1].(idStmtFunc)(tokenAt(args, 0))
}

// groupVar builds Group name; where the first identifier is a group type.
func groupVar(args []any) any {
	name := tokenAt(args, 0)
	return idStmtFunc(func(first syntax.Token) syntax.Stmt {
		d := &syntax.VarDecl{
			Type: typeRef(first, false),
			Name: newName(name, syntax.NoContext),
		}
		d.SetPos(first.Pos)
		return d
	})
}

func callStmt(args []any) any {
	list := exprsAt(args, 1)
	return idStmtFunc(func(first syntax.Token) syntax.Stmt {
		s := &syntax.CallStmt{Call: newCall(newName(first, syntax.NoContext), list, syntax.NoContext)}
		s.SetPos(first.Pos)
		return s
	})
}

// lvalFunc turns the leading identifier into an assignment target.
type lvalFunc func(base *syntax.Name) syntax.Expr

// assignTailFunc completes an assignment or increment given its target.
type assignTailFunc func(lhs syntax.Expr) syntax.Stmt

func assignStmt(args []any) any {
	lv, _ := args[0].(lvalFunc)
	complete := args[1].(assignTailFunc)
	return idStmtFunc(func(first syntax.Token) syntax.Stmt {
		var lhs syntax.Expr = newName(first, syntax.NoContext)
		if lv != nil {
			lhs = lv(lhs.(*syntax.Name))
		}
		return complete(lhs)
	})
}

// lvalIndexed builds the target a[i] or a[i][j].
func lvalIndexed(args []any) any {
	indices := []syntax.Expr{exprAt(args, 1)}
	if j := exprAt(args, 3); j != nil {
		indices = append(indices, j)
	}
	return lvalFunc(func(base *syntax.Name) syntax.Expr {
		return newIndex(base, indices, syntax.NoContext)
	})
}

// lvalMember builds the target p.f or p.f[i].
func lvalMember(args []any) any {
	sel := newName(tokenAt(args, 1), syntax.NoContext)
	var indices []syntax.Expr
	if i := exprAt(args, 2); i != nil {
		indices = append(indices, i)
	}
	return lvalFunc(func(base *syntax.Name) syntax.Expr {
		return newIndex(newMember(base, sel, syntax.NoContext), indices, syntax.NoContext)
	})
}

func assignRHS(args []any) any {
	op, rhs := tokenAt(args, 0), exprAt(args, 1)
	return assignTailFunc(func(lhs syntax.Expr) syntax.Stmt {
		s := &syntax.AssignStmt{Op: op.Kind, LHS: lhs, RHS: rhs}
		s.SetPos(lhs.Pos())
		return s
	})
}

func incDec(args []any) any {
	op := tokenAt(args, 0)
	return assignTailFunc(func(lhs syntax.Expr) syntax.Stmt {
		s := &syntax.IncDecStmt{Op: op.Kind, X: lhs}
		s.SetPos(lhs.Pos())
		return s
	})
}

// buildIf builds check ( CondExpr ) Block Otherwise, both as a statement
// and as the tail of an otherwise check chain.
func buildIf(args []any) any {
	s := &syntax.IfStmt{Cond: exprAt(args, 2), Then: args[4].(*syntax.BlockStmt)}
	if els, ok := args[5].(syntax.Stmt); ok {
		s.Else = els
	}
	s.SetPos(tokenAt(args, 0).Pos)
	return s
}

func buildWhile(args []any) any {
	s := &syntax.WhileStmt{Cond: exprAt(args, 2), Body: args[4].(*syntax.BlockStmt)}
	s.SetPos(tokenAt(args, 0).Pos)
	return s
}

func buildFor(args []any) any {
	s := &syntax.ForStmt{
		Var:  newName(tokenAt(args, 1), syntax.NoContext),
		From: exprAt(args, 3),
		To:   exprAt(args, 5),
		Step: exprAt(args, 6),
		Body: args[7].(*syntax.BlockStmt),
	}
	s.SetPos(tokenAt(args, 0).Pos)
	return s
}

func buildSelect(args []any) any {
	s := &syntax.SelectStmt{
		Subject: newName(tokenAt(args, 2), syntax.NoContext),
		Rbrace:  tokenAt(args, 7).Pos,
	}
	s.Options, _ = args[5].([]*syntax.OptionClause)
	s.Fallback, _ = args[6].(*syntax.OptionClause)
	s.SetPos(tokenAt(args, 0).Pos)
	return s
}

func buildOption(args []any) any {
	o := &syntax.OptionClause{
		Value: args[1].(*syntax.BasicLit),
		Body:  stmtsAt(args, 3),
		Flow:  tokenAt(args, 4).Kind,
	}
	o.SetPos(tokenAt(args, 0).Pos)
	return o
}

func optionLit(args []any) any {
	return newLit(tokenAt(args, 0), syntax.NoContext)
}

// negOptionLit folds - num into a single negative literal.
func negOptionLit(args []any) any {
	lit := newLit(tokenAt(args, 1), syntax.NoContext)
	lit.Value = "-" + lit.Value
	lit.SetPos(tokenAt(args, 0).Pos)
	return lit
}

func buildFallback(args []any) any {
	o := &syntax.OptionClause{Body: stmtsAt(args, 2), Flow: syntax.EOF}
	o.SetPos(tokenAt(args, 0).Pos)
	return o
}

func buildShow(args []any) any {
	s := &syntax.ShowStmt{Args: exprsAt(args, 2)}
	s.SetPos(tokenAt(args, 0).Pos)
	return s
}

func buildRead(args []any) any {
	s := &syntax.ReadStmt{Target: newName(tokenAt(args, 2), syntax.NoContext)}
	s.SetPos(tokenAt(args, 0).Pos)
	return s
}

func buildGive(args []any) any {
	s := &syntax.ReturnStmt{Result: exprAt(args, 1)}
	s.SetPos(tokenAt(args, 0).Pos)
	return s
}
