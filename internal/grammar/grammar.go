// Package grammar models context-free grammars over KuCode terminals and
// builds LL(1) parsing tables from them.
//
// Terminals are syntax.Kind values. Nonterminals are allocated by a
// Builder and numbered after the last terminal, so a Symbol can hold
// either.
package grammar

import (
	"fmt"
	"strings"

	"github.com/you-not-fish/kucode/internal/syntax"
)

// Symbol is a terminal or nonterminal.
type Symbol int

const firstNonterm = Symbol(syntax.KindCount)

// T returns the terminal symbol for k.
func T(k syntax.Kind) Symbol { return Symbol(k) }

func (s Symbol) IsTerm() bool { return s < firstNonterm }

// Kind returns the token kind of a terminal symbol.
func (s Symbol) Kind() syntax.Kind { return syntax.Kind(s) }

func (s Symbol) index() int { return int(s - firstNonterm) }

// Action builds a semantic value from the values of a production's
// right-hand side, one per symbol: the syntax.Token for a terminal and
// the result of the reduced production for a nonterminal.
type Action func(args []any) any

// Production is LHS → RHS. An empty RHS is a λ-production.
type Production struct {
	ID     int
	LHS    Symbol
	RHS    []Symbol
	Action Action // nil passes the first value through, or nil for λ

	g *Grammar
}

func (p *Production) String() string {
	var b strings.Builder
	b.WriteString(p.g.Name(p.LHS))
	b.WriteString(" →")
	if len(p.RHS) == 0 {
		b.WriteString(" λ")
	}
	for _, s := range p.RHS {
		b.WriteByte(' ')
		b.WriteString(p.g.Name(s))
	}
	return b.String()
}

// Grammar is an immutable set of productions.
type Grammar struct {
	names   []string
	prods   []*Production
	byLHS   [][]*Production
	entries []Symbol
	follow  map[Symbol]TermSet
	sync    []bool
}

// Name returns the display name of s.
func (g *Grammar) Name(s Symbol) string {
	if s.IsTerm() {
		return s.Kind().String()
	}
	if i := s.index(); i < len(g.names) {
		return g.names[i]
	}
	return fmt.Sprintf("sym(%d)", int(s))
}

// Lookup returns the nonterminal called name.
func (g *Grammar) Lookup(name string) (Symbol, bool) {
	for i, n := range g.names {
		if n == name {
			return firstNonterm + Symbol(i), true
		}
	}
	return 0, false
}

func (g *Grammar) Productions() []*Production { return g.prods }

// Alternatives returns the productions for nonterminal nt.
func (g *Grammar) Alternatives(nt Symbol) []*Production { return g.byLHS[nt.index()] }

// Nonterms returns every nonterminal in declaration order.
func (g *Grammar) Nonterms() []Symbol {
	syms := make([]Symbol, len(g.names))
	for i := range syms {
		syms[i] = firstNonterm + Symbol(i)
	}
	return syms
}

func (g *Grammar) Entries() []Symbol { return g.entries }

func (g *Grammar) IsEntry(nt Symbol) bool {
	for _, e := range g.entries {
		if e == nt {
			return true
		}
	}
	return false
}

// DeclaredFollow returns the FOLLOW set declared for nt, if any.
func (g *Grammar) DeclaredFollow(nt Symbol) (TermSet, bool) {
	s, ok := g.follow[nt]
	return s, ok
}

// IsSync reports whether nt is a panic-mode resynchronization point.
func (g *Grammar) IsSync(nt Symbol) bool {
	return !nt.IsTerm() && g.sync[nt.index()]
}

// Builder accumulates a grammar. The first misuse is remembered and
// reported by Grammar.
type Builder struct {
	g   *Grammar
	err error
}

func NewBuilder() *Builder {
	return &Builder{g: &Grammar{follow: make(map[Symbol]TermSet)}}
}

// Nonterm declares a nonterminal, or returns it if name is already declared.
func (b *Builder) Nonterm(name string) Symbol {
	if s, ok := b.g.Lookup(name); ok {
		return s
	}
	b.g.names = append(b.g.names, name)
	b.g.byLHS = append(b.g.byLHS, nil)
	b.g.sync = append(b.g.sync, false)
	return firstNonterm + Symbol(len(b.g.names)-1)
}

// Add appends the production lhs → rhs with the given build action.
func (b *Builder) Add(lhs Symbol, act Action, rhs ...Symbol) *Production {
	if !b.checkNonterm(lhs, "Add") {
		return nil
	}
	for _, s := range rhs {
		if !s.IsTerm() && s.index() >= len(b.g.names) {
			b.fail(fmt.Errorf("grammar: production for %s uses undeclared symbol %d", b.g.Name(lhs), int(s)))
			return nil
		}
	}
	p := &Production{ID: len(b.g.prods), LHS: lhs, RHS: rhs, Action: act, g: b.g}
	b.g.prods = append(b.g.prods, p)
	b.g.byLHS[lhs.index()] = append(b.g.byLHS[lhs.index()], p)
	return p
}

// Entry marks nt as a parse root: EOF is seeded into its FOLLOW set.
func (b *Builder) Entry(nt Symbol) {
	if b.checkNonterm(nt, "Entry") && !b.g.IsEntry(nt) {
		b.g.entries = append(b.g.entries, nt)
	}
}

// Follow declares the complete FOLLOW set of nt. Build fails if the
// computed set contains anything else.
func (b *Builder) Follow(nt Symbol, kinds ...syntax.Kind) {
	if b.checkNonterm(nt, "Follow") {
		b.g.follow[nt] = Terms(kinds...)
	}
}

// Sync marks nt as a resynchronization point for error recovery.
func (b *Builder) Sync(nt Symbol) {
	if b.checkNonterm(nt, "Sync") {
		b.g.sync[nt.index()] = true
	}
}

// Grammar returns the finished grammar. Every declared nonterminal must
// have at least one production and at least one entry must be set.
func (b *Builder) Grammar() (*Grammar, error) {
	if b.err != nil {
		return nil, b.err
	}
	for i, alts := range b.g.byLHS {
		if len(alts) == 0 {
			return nil, fmt.Errorf("grammar: nonterminal %s has no productions", b.g.names[i])
		}
	}
	if len(b.g.entries) == 0 {
		return nil, fmt.Errorf("grammar: no entry nonterminal")
	}
	return b.g, nil
}

func (b *Builder) checkNonterm(s Symbol, op string) bool {
	if s.IsTerm() || s.index() >= len(b.g.names) {
		b.fail(fmt.Errorf("grammar: %s: %s is not a declared nonterminal", op, b.g.Name(s)))
		return false
	}
	return true
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
