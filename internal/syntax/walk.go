package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, g := range n.Groups {
			Walk(g, v)
		}
		for _, g := range n.Globals {
			Walk(g, v)
		}
		for _, f := range n.Funcs {
			Walk(f, v)
		}
		if n.Body != nil {
			Walk(n.Body, v)
		}

	case *GroupDecl:
		Walk(n.Name, v)
		for _, f := range n.Fields {
			Walk(f, v)
		}

	case *Field:
		Walk(n.Name, v)

	case *GlobalDecl:
		Walk(n.Name, v)
		walkExpr(n.Value, v)

	case *FuncDecl:
		Walk(n.Name, v)
		for _, p := range n.Params {
			Walk(p, v)
		}
		if n.Body != nil {
			Walk(n.Body, v)
		}

	case *VarDecl:
		Walk(n.Name, v)
		walkExpr(n.Value, v)

	case *AssignStmt:
		Walk(n.LHS, v)
		Walk(n.RHS, v)

	case *IncDecStmt:
		Walk(n.X, v)

	case *CallStmt:
		Walk(n.Call, v)

	case *BlockStmt:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *IfStmt:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		if n.Else != nil {
			Walk(n.Else, v)
		}

	case *WhileStmt:
		Walk(n.Cond, v)
		Walk(n.Body, v)

	case *ForStmt:
		Walk(n.Var, v)
		Walk(n.From, v)
		Walk(n.To, v)
		walkExpr(n.Step, v)
		Walk(n.Body, v)

	case *SelectStmt:
		Walk(n.Subject, v)
		for _, o := range n.Options {
			Walk(o, v)
		}
		if n.Fallback != nil {
			Walk(n.Fallback, v)
		}

	case *OptionClause:
		if n.Value != nil {
			Walk(n.Value, v)
		}
		for _, s := range n.Body {
			Walk(s, v)
		}

	case *ReturnStmt:
		walkExpr(n.Result, v)

	case *ShowStmt:
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *ReadStmt:
		Walk(n.Target, v)

	case *BinaryExpr:
		Walk(n.X, v)
		Walk(n.Y, v)

	case *UnaryExpr:
		Walk(n.X, v)

	case *CallExpr:
		Walk(n.Fun, v)
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *IndexExpr:
		Walk(n.X, v)
		Walk(n.Index, v)

	case *MemberExpr:
		Walk(n.X, v)
		Walk(n.Sel, v)

	case *SizeExpr:
		Walk(n.List, v)
		if n.Dim != nil {
			Walk(n.Dim, v)
		}

	case *ListLit:
		for _, e := range n.Elems {
			Walk(e, v)
		}

		// Leaf nodes: Name, BasicLit, TypeRef
	}
}

func walkExpr(x Expr, v Visitor) {
	if x != nil {
		Walk(x, v)
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}
