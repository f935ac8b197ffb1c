// Package parser implements a table-driven LL(1) parser for KuCode.
//
// The grammar is built once per boolean policy and turned into a parsing
// table by package grammar. The driver is a stack machine: expanding a
// nonterminal pushes a reduce marker below the production's right-hand
// side, and when the marker surfaces the production's build action turns
// the values of its symbols into an AST node.
package parser

import (
	"fmt"
	"strings"

	"github.com/you-not-fish/kucode/internal/grammar"
	"github.com/you-not-fish/kucode/internal/syntax"
)

// Maximum number of errors before aborting parse.
const maxErrors = 10

// Config controls a parse.
type Config struct {
	// Policy selects the condition grammar.
	Policy syntax.BoolPolicy

	// Recover enables panic-mode recovery: after a syntax error the parser
	// skips to a statement boundary and continues, collecting further
	// errors. Without it the first error ends the parse.
	Recover bool

	// MaxErrors bounds the errors collected with Recover; 0 means 10.
	MaxErrors int

	// Error, if set, is called for each syntax error as it is found.
	Error func(err *SyntaxError)
}

// SyntaxError reports a token no production could accept.
type SyntaxError struct {
	Tok      syntax.Token
	Pos      syntax.Pos
	Expected []syntax.Kind
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	b.WriteString(e.Pos.String())
	b.WriteString(": syntax error: unexpected ")
	if e.Tok.Kind == syntax.EOF {
		b.WriteString("end of input")
	} else {
		b.WriteString(e.Tok.String())
	}
	if len(e.Expected) > 0 {
		b.WriteString(", expected ")
		b.WriteString(ExpectedString(e.Expected))
	}
	return b.String()
}

// ExpectedString formats an expected-token set: "a", "a or b",
// "a, b or c".
func ExpectedString(kinds []syntax.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}

// ErrorList is the list of syntax errors of one parse, in input order.
type ErrorList []*SyntaxError

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Err returns l as an error, or nil if l is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Parser parses one token stream.
type Parser struct {
	src  syntax.TokenSource
	conf Config
	tab  *grammar.Table
	err  error // table construction failure

	tok syntax.Token // lookahead

	errs  ErrorList
	abort bool
}

// frame is a symbol stack entry: a grammar symbol to match or expand, or
// a reduce marker for a production whose right-hand side is complete.
type frame struct {
	sym    grammar.Symbol
	reduce *grammar.Production
}

// New returns a parser reading tokens from src. A nil conf selects the
// syntactic policy without recovery.
func New(src syntax.TokenSource, conf *Config) *Parser {
	p := &Parser{src: src}
	if conf != nil {
		p.conf = *conf
	}
	if p.conf.MaxErrors <= 0 {
		p.conf.MaxErrors = maxErrors
	}
	p.tab, p.err = Table(p.conf.Policy)
	return p
}

// Parse parses a complete program.
func (p *Parser) Parse() (*syntax.Program, error) {
	v, err := p.parse(entryProgram)
	if err != nil {
		return nil, err
	}
	return v.(*syntax.Program), nil
}

// ParseStmt parses a single statement followed by end of input.
func (p *Parser) ParseStmt() (syntax.Stmt, error) {
	v, err := p.parse(entryStmt)
	if err != nil {
		return nil, err
	}
	return v.(syntax.Stmt), nil
}

// ParseExpr parses one expression of the given context followed by end
// of input.
func (p *Parser) ParseExpr(ctx syntax.Context) (syntax.Expr, error) {
	name, ok := exprEntry[ctx]
	if !ok {
		return nil, fmt.Errorf("parser: no expression grammar for context %s", ctx)
	}
	v, err := p.parse(name)
	if err != nil {
		return nil, err
	}
	return v.(syntax.Expr), nil
}

// Errors returns the syntax errors collected so far.
func (p *Parser) Errors() ErrorList {
	return p.errs
}

func (p *Parser) next() {
	p.tok = p.src.Scan()
}

func (p *Parser) parse(entry string) (any, error) {
	if p.err != nil {
		return nil, p.err
	}
	start, ok := p.tab.Entry(entry)
	if !ok {
		return nil, fmt.Errorf("parser: %s is not an entry nonterminal", entry)
	}
	v := p.run(start)
	if err := p.errs.Err(); err != nil {
		return nil, err
	}
	return v, nil
}

// run drives the table from start until the end marker is matched or the
// parse is abandoned. It returns the value built for start; after the
// first error no values are built.
func (p *Parser) run(start grammar.Symbol) any {
	stack := []frame{{sym: grammar.T(syntax.EOF)}, {sym: start}}
	var values []any
	p.next()

	for len(stack) > 0 && !p.abort {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		building := len(p.errs) == 0

		switch {
		case top.reduce != nil:
			if building {
				n := len(top.reduce.RHS)
				v := reduce(top.reduce, values[len(values)-n:])
				values = append(values[:len(values)-n], v)
			}

		case top.sym.IsTerm():
			if top.sym.Kind() != p.tok.Kind {
				stack = p.fail(append(stack, top))
				continue
			}
			if building {
				values = append(values, p.tok)
			}
			if p.tok.Kind != syntax.EOF {
				p.next()
			}

		default:
			prod, ok := p.tab.Lookup(top.sym, p.tok.Kind)
			if !ok {
				stack = p.fail(append(stack, top))
				continue
			}
			stack = append(stack, frame{reduce: prod})
			for i := len(prod.RHS) - 1; i >= 0; i-- {
				stack = append(stack, frame{sym: prod.RHS[i]})
			}
		}
	}

	if len(p.errs) > 0 || len(values) == 0 {
		return nil
	}
	return values[0]
}

// reduce runs a production's build action. A production without one
// passes its first value through.
func reduce(prod *grammar.Production, args []any) any {
	if prod.Action != nil {
		return prod.Action(args)
	}
	if len(args) > 0 {
		return args[0]
	}
	return nil
}

// fail records a syntax error for the current lookahead and returns the
// stack to continue with: empty without recovery, resynchronized with it.
func (p *Parser) fail(stack []frame) []frame {
	err := &SyntaxError{
		Tok:      p.tok,
		Pos:      p.tok.Pos,
		Expected: p.expected(stack),
	}
	p.errs = append(p.errs, err)
	if p.conf.Error != nil {
		p.conf.Error(err)
	}

	if !p.conf.Recover {
		return nil
	}
	if len(p.errs) >= p.conf.MaxErrors {
		p.abort = true
		return nil
	}
	return p.recover(stack)
}

// expected returns the terminals that would have been accepted with the
// given stack: FIRST of the symbols from the top down to the first one
// that cannot derive λ.
func (p *Parser) expected(stack []frame) []syntax.Kind {
	var set grammar.TermSet
	for i := len(stack) - 1; i >= 0; i-- {
		f := stack[i]
		if f.reduce != nil {
			continue
		}
		if f.sym.IsTerm() {
			set.Add(f.sym.Kind())
			break
		}
		set.Union(p.tab.First(f.sym))
		if !p.tab.Nullable(f.sym) {
			break
		}
	}
	return set.Kinds()
}
