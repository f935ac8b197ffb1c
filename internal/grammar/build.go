package grammar

import (
	"fmt"
	"strings"

	"github.com/you-not-fish/kucode/internal/syntax"
)

// ConflictError reports two productions competing for one table cell.
type ConflictError struct {
	Nonterm     string
	Term        syntax.Kind
	Existing    *Production
	Conflicting *Production
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("grammar conflict at [%s, %s]: %s vs %s",
		e.Nonterm, e.Term, e.Existing, e.Conflicting)
}

// FollowError reports a computed FOLLOW set that escapes the set declared
// for the nonterminal.
type FollowError struct {
	Nonterm  string
	Declared TermSet
	Extra    TermSet
}

func (e *FollowError) Error() string {
	return fmt.Sprintf("FOLLOW(%s) contains %s outside declared %s", e.Nonterm, e.Extra, e.Declared)
}

// Table is an LL(1) parsing table. It is immutable and safe for
// concurrent use.
type Table struct {
	g        *Grammar
	cells    [][]*Production // [nonterminal][terminal]
	first    []TermSet
	follow   []TermSet
	nullable []bool
}

// Stats summarizes a table.
type Stats struct {
	Nonterms    int
	Terms       int
	Productions int
	Cells       int // filled cells
}

// Build computes FIRST and FOLLOW sets for g and fills the parsing table.
// It fails with *ConflictError if a cell would receive two productions and
// with *FollowError if a declared FOLLOW set is exceeded.
func Build(g *Grammar) (*Table, error) {
	n := len(g.names)
	t := &Table{
		g:        g,
		cells:    make([][]*Production, n),
		first:    make([]TermSet, n),
		follow:   make([]TermSet, n),
		nullable: make([]bool, n),
	}
	t.computeFirst()
	t.computeFollow()

	for _, nt := range g.Nonterms() {
		declared, ok := g.follow[nt]
		if !ok {
			continue
		}
		computed := t.follow[nt.index()]
		computed.Remove(syntax.EOF)
		if extra := computed.Minus(declared); !extra.Empty() {
			return nil, &FollowError{Nonterm: g.Name(nt), Declared: declared, Extra: extra}
		}
	}

	for i := range t.cells {
		t.cells[i] = make([]*Production, syntax.KindCount)
	}
	for _, p := range g.prods {
		predict, nullable := t.firstOf(p.RHS)
		if nullable {
			predict.Union(t.follow[p.LHS.index()])
		}
		row := t.cells[p.LHS.index()]
		for _, k := range predict.Kinds() {
			if prev := row[k]; prev != nil {
				return nil, &ConflictError{
					Nonterm:     g.Name(p.LHS),
					Term:        k,
					Existing:    prev,
					Conflicting: p,
				}
			}
			row[k] = p
		}
	}
	return t, nil
}

// computeFirst iterates to a fixed point over all productions.
func (t *Table) computeFirst() {
	for changed := true; changed; {
		changed = false
		for _, p := range t.g.prods {
			lhs := p.LHS.index()
			f, nullable := t.firstOf(p.RHS)
			if t.first[lhs].Union(f) {
				changed = true
			}
			if nullable && !t.nullable[lhs] {
				t.nullable[lhs] = true
				changed = true
			}
		}
	}
}

func (t *Table) computeFollow() {
	for _, e := range t.g.entries {
		t.follow[e.index()].Add(syntax.EOF)
	}
	for changed := true; changed; {
		changed = false
		for _, p := range t.g.prods {
			for i, s := range p.RHS {
				if s.IsTerm() {
					continue
				}
				f, nullable := t.firstOf(p.RHS[i+1:])
				if nullable {
					f.Union(t.follow[p.LHS.index()])
				}
				if t.follow[s.index()].Union(f) {
					changed = true
				}
			}
		}
	}
}

// firstOf returns FIRST of a symbol sequence and whether it derives λ.
func (t *Table) firstOf(seq []Symbol) (TermSet, bool) {
	var f TermSet
	for _, s := range seq {
		if s.IsTerm() {
			f.Add(s.Kind())
			return f, false
		}
		f.Union(t.first[s.index()])
		if !t.nullable[s.index()] {
			return f, false
		}
	}
	return f, true
}

func (t *Table) Grammar() *Grammar { return t.g }

// Lookup returns the production to expand nt with on lookahead k.
func (t *Table) Lookup(nt Symbol, k syntax.Kind) (*Production, bool) {
	if nt.IsTerm() || k >= syntax.KindCount {
		return nil, false
	}
	p := t.cells[nt.index()][k]
	return p, p != nil
}

// Expected returns the terminals with a table entry for nt.
func (t *Table) Expected(nt Symbol) []syntax.Kind {
	var s TermSet
	for k, p := range t.cells[nt.index()] {
		if p != nil {
			s.Add(syntax.Kind(k))
		}
	}
	return s.Kinds()
}

func (t *Table) First(nt Symbol) TermSet  { return t.first[nt.index()] }
func (t *Table) Follow(nt Symbol) TermSet { return t.follow[nt.index()] }
func (t *Table) Nullable(nt Symbol) bool  { return t.nullable[nt.index()] }
func (t *Table) IsSync(nt Symbol) bool    { return t.g.IsSync(nt) }
func (t *Table) Name(s Symbol) string     { return t.g.Name(s) }
func (t *Table) Entry(name string) (Symbol, bool) {
	s, ok := t.g.Lookup(name)
	if !ok || !t.g.IsEntry(s) {
		return 0, false
	}
	return s, true
}

func (t *Table) Stats() Stats {
	st := Stats{
		Nonterms:    len(t.g.names),
		Terms:       int(syntax.KindCount),
		Productions: len(t.g.prods),
	}
	for _, row := range t.cells {
		for _, p := range row {
			if p != nil {
				st.Cells++
			}
		}
	}
	return st
}

func (s Stats) String() string {
	return fmt.Sprintf("%d nonterminals, %d terminals, %d productions, %d table entries",
		s.Nonterms, s.Terms, s.Productions, s.Cells)
}

// Dump returns a listing of the productions with FIRST and FOLLOW sets
// of every nonterminal.
func (t *Table) Dump() string {
	var b strings.Builder
	for _, nt := range t.g.Nonterms() {
		i := nt.index()
		fmt.Fprintf(&b, "%s", t.g.names[i])
		if t.nullable[i] {
			b.WriteString(" (nullable)")
		}
		if t.g.IsSync(nt) {
			b.WriteString(" (sync)")
		}
		b.WriteByte('\n')
		fmt.Fprintf(&b, "  FIRST  %s\n", t.first[i])
		fmt.Fprintf(&b, "  FOLLOW %s\n", t.follow[i])
		for _, p := range t.g.byLHS[i] {
			fmt.Fprintf(&b, "  %3d: %s\n", p.ID, p)
		}
	}
	return b.String()
}
