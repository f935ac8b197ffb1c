package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented textual representation of the AST to w.
// Expressions are annotated with the context they were parsed in.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// field prints a labelled child one level deeper. Nil children are skipped.
func (p *printer) field(label string, nodes ...Node) {
	p.printf("%s:\n", label)
	p.indent++
	for _, n := range nodes {
		p.print(n)
	}
	p.indent--
}

func (p *printer) stmts(label string, list []Stmt) {
	nodes := make([]Node, len(list))
	for i, s := range list {
		nodes[i] = s
	}
	p.field(label, nodes...)
}

func (p *printer) exprs(label string, list []Expr) {
	if len(list) == 0 {
		return
	}
	nodes := make([]Node, len(list))
	for i, x := range list {
		nodes[i] = x
	}
	p.field(label, nodes...)
}

func (p *printer) print(node Node) {
	if isNil(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		p.printf("Program %s\n", n.pos)
		p.indent++
		for _, g := range n.Groups {
			p.print(g)
		}
		for _, g := range n.Globals {
			p.print(g)
		}
		for _, f := range n.Funcs {
			p.print(f)
		}
		if n.Body != nil {
			p.field("Start", n.Body)
		}
		p.indent--

	case *GroupDecl:
		p.printf("GroupDecl %s %s\n", n.pos, n.Name.Value)
		p.indent++
		for _, f := range n.Fields {
			p.printf("%s %s\n", f.Type, f.Name.Value)
		}
		p.indent--

	case *GlobalDecl:
		p.printf("GlobalDecl %s %s%s %s\n", n.pos, fixedPrefix(n.Fixed), n.Type, n.Name.Value)
		if n.Value != nil {
			p.indent++
			p.field("Value", n.Value)
			p.indent--
		}

	case *FuncDecl:
		p.printf("FuncDecl %s %s %s\n", n.pos, n.Result, n.Name.Value)
		p.indent++
		if len(n.Params) > 0 {
			p.printf("Params:\n")
			p.indent++
			for _, f := range n.Params {
				p.printf("%s %s\n", f.Type, f.Name.Value)
			}
			p.indent--
		}
		if n.Body != nil {
			p.field("Body", n.Body)
		}
		p.indent--

	case *VarDecl:
		p.printf("VarDecl %s %s%s %s\n", n.pos, fixedPrefix(n.Fixed), n.Type, n.Name.Value)
		if n.Value != nil {
			p.indent++
			p.field("Value", n.Value)
			p.indent--
		}

	case *AssignStmt:
		p.printf("AssignStmt %s %s\n", n.pos, n.Op)
		p.indent++
		p.field("LHS", n.LHS)
		p.field("RHS", n.RHS)
		p.indent--

	case *IncDecStmt:
		p.printf("IncDecStmt %s %s\n", n.pos, n.Op)
		p.indent++
		p.print(n.X)
		p.indent--

	case *CallStmt:
		p.printf("CallStmt %s\n", n.pos)
		p.indent++
		p.print(n.Call)
		p.indent--

	case *BlockStmt:
		p.printf("BlockStmt %s\n", n.pos)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *IfStmt:
		p.printf("IfStmt %s\n", n.pos)
		p.indent++
		p.field("Cond", n.Cond)
		p.field("Then", n.Then)
		if n.Else != nil {
			p.field("Otherwise", n.Else)
		}
		p.indent--

	case *WhileStmt:
		p.printf("WhileStmt %s\n", n.pos)
		p.indent++
		p.field("Cond", n.Cond)
		p.field("Body", n.Body)
		p.indent--

	case *ForStmt:
		p.printf("ForStmt %s %s\n", n.pos, n.Var.Value)
		p.indent++
		p.field("From", n.From)
		p.field("To", n.To)
		if n.Step != nil {
			p.field("Step", n.Step)
		}
		p.field("Body", n.Body)
		p.indent--

	case *SelectStmt:
		p.printf("SelectStmt %s %s\n", n.pos, n.Subject.Value)
		p.indent++
		for _, o := range n.Options {
			p.print(o)
		}
		if n.Fallback != nil {
			p.print(n.Fallback)
		}
		p.indent--

	case *OptionClause:
		if n.Value == nil {
			p.printf("Fallback %s\n", n.pos)
		} else {
			p.printf("Option %s %s %s\n", n.pos, litString(n.Value), n.Flow)
		}
		p.indent++
		for _, s := range n.Body {
			p.print(s)
		}
		p.indent--

	case *ReturnStmt:
		p.printf("ReturnStmt %s\n", n.pos)
		if n.Result != nil {
			p.indent++
			p.print(n.Result)
			p.indent--
		}

	case *ShowStmt:
		p.printf("ShowStmt %s\n", n.pos)
		p.indent++
		for _, a := range n.Args {
			p.print(a)
		}
		p.indent--

	case *ReadStmt:
		p.printf("ReadStmt %s %s\n", n.pos, n.Target.Value)

	case *Name:
		p.printf("Name %s [%s] %s\n", n.pos, n.ctx, n.Value)

	case *BasicLit:
		p.printf("BasicLit %s [%s] %s\n", n.pos, n.ctx, litString(n))

	case *BinaryExpr:
		p.printf("BinaryExpr %s [%s] %s\n", n.pos, n.ctx, n.Op)
		p.indent++
		p.print(n.X)
		p.print(n.Y)
		p.indent--

	case *UnaryExpr:
		p.printf("UnaryExpr %s [%s] %s\n", n.pos, n.ctx, n.Op)
		p.indent++
		p.print(n.X)
		p.indent--

	case *CallExpr:
		p.printf("CallExpr %s [%s] %s\n", n.pos, n.ctx, n.Fun.Value)
		p.indent++
		p.exprs("Args", n.Args)
		p.indent--

	case *IndexExpr:
		p.printf("IndexExpr %s [%s]\n", n.pos, n.ctx)
		p.indent++
		p.field("X", n.X)
		p.field("Index", n.Index)
		p.indent--

	case *MemberExpr:
		p.printf("MemberExpr %s [%s] .%s\n", n.pos, n.ctx, n.Sel.Value)
		p.indent++
		p.print(n.X)
		p.indent--

	case *SizeExpr:
		if n.Dim != nil {
			p.printf("SizeExpr %s [%s] %s, %s\n", n.pos, n.ctx, n.List.Value, n.Dim.Value)
		} else {
			p.printf("SizeExpr %s [%s] %s\n", n.pos, n.ctx, n.List.Value)
		}

	case *ListLit:
		p.printf("ListLit %s [%s]\n", n.pos, n.ctx)
		p.indent++
		for _, e := range n.Elems {
			p.print(e)
		}
		p.indent--

	default:
		p.printf("%T %s\n", n, n.Pos())
	}
}

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *BlockStmt:
		return n == nil
	case *IfStmt:
		return n == nil
	}
	return false
}

func fixedPrefix(fixed bool) string {
	if fixed {
		return "fixed "
	}
	return ""
}

func litString(lit *BasicLit) string {
	switch lit.Kind {
	case StrLit:
		return fmt.Sprintf("%q", lit.Value)
	case CharLit:
		return fmt.Sprintf("'%s'", lit.Value)
	}
	return lit.Value
}
