package grammar

import (
	"errors"
	"strings"
	"testing"

	"github.com/you-not-fish/kucode/internal/syntax"
)

// exprGrammar returns the textbook LL(1) expression grammar over
// identifiers, + and *.
func exprGrammar(t *testing.T) (*Grammar, map[string]Symbol) {
	t.Helper()
	b := NewBuilder()
	e, e1 := b.Nonterm("E"), b.Nonterm("E'")
	tt, t1 := b.Nonterm("T"), b.Nonterm("T'")
	f := b.Nonterm("F")

	b.Add(e, nil, tt, e1)
	b.Add(e1, nil, T(syntax.Add), tt, e1)
	b.Add(e1, nil)
	b.Add(tt, nil, f, t1)
	b.Add(t1, nil, T(syntax.Mul), f, t1)
	b.Add(t1, nil)
	b.Add(f, nil, T(syntax.Lparen), e, T(syntax.Rparen))
	b.Add(f, nil, T(syntax.Ident))
	b.Entry(e)

	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("Grammar: %v", err)
	}
	return g, map[string]Symbol{"E": e, "E'": e1, "T": tt, "T'": t1, "F": f}
}

func TestBuildExprGrammar(t *testing.T) {
	g, nt := exprGrammar(t)
	tab, err := Build(g)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	sets := []struct {
		name string
		got  TermSet
		want TermSet
	}{
		{"FIRST(E)", tab.First(nt["E"]), Terms(syntax.Lparen, syntax.Ident)},
		{"FIRST(E')", tab.First(nt["E'"]), Terms(syntax.Add)},
		{"FOLLOW(E)", tab.Follow(nt["E"]), Terms(syntax.Rparen, syntax.EOF)},
		{"FOLLOW(T)", tab.Follow(nt["T"]), Terms(syntax.Add, syntax.Rparen, syntax.EOF)},
		{"FOLLOW(F)", tab.Follow(nt["F"]), Terms(syntax.Add, syntax.Mul, syntax.Rparen, syntax.EOF)},
	}
	for _, s := range sets {
		if s.got != s.want {
			t.Errorf("%s = %s, want %s", s.name, s.got, s.want)
		}
	}

	if !tab.Nullable(nt["E'"]) || tab.Nullable(nt["E"]) {
		t.Error("nullable flags wrong")
	}

	p, ok := tab.Lookup(nt["E'"], syntax.Rparen)
	if !ok || len(p.RHS) != 0 {
		t.Errorf("table[E', )] = %v, want λ-production", p)
	}
	p, ok = tab.Lookup(nt["F"], syntax.Ident)
	if !ok || p.String() != "F → identifier" {
		t.Errorf("table[F, identifier] = %v", p)
	}
	if _, ok := tab.Lookup(nt["F"], syntax.Add); ok {
		t.Error("table[F, +] should be empty")
	}

	exp := tab.Expected(nt["T'"])
	want := []syntax.Kind{syntax.EOF, syntax.Add, syntax.Mul, syntax.Rparen}
	if len(exp) != len(want) {
		t.Fatalf("Expected(T') = %v, want %v", exp, want)
	}
	for i := range want {
		if exp[i] != want[i] {
			t.Errorf("Expected(T')[%d] = %v, want %v", i, exp[i], want[i])
		}
	}

	st := tab.Stats()
	if st.Nonterms != 5 || st.Productions != 8 {
		t.Errorf("Stats = %+v", st)
	}
	if !strings.Contains(tab.Dump(), "E' (nullable)") {
		t.Error("Dump does not flag nullable E'")
	}
}

func TestBuildConflicts(t *testing.T) {
	tests := []struct {
		name    string
		build   func(b *Builder)
		nonterm string
		term    syntax.Kind
	}{
		{
			name: "common_prefix",
			build: func(b *Builder) {
				s := b.Nonterm("S")
				b.Add(s, nil, T(syntax.Ident))
				b.Add(s, nil, T(syntax.Ident), T(syntax.Lparen), T(syntax.Rparen))
				b.Entry(s)
			},
			nonterm: "S",
			term:    syntax.Ident,
		},
		{
			name: "left_recursion",
			build: func(b *Builder) {
				e := b.Nonterm("E")
				b.Add(e, nil, e, T(syntax.Add), T(syntax.Ident))
				b.Add(e, nil, T(syntax.Ident))
				b.Entry(e)
			},
			nonterm: "E",
			term:    syntax.Ident,
		},
		{
			name: "dangling_otherwise",
			build: func(b *Builder) {
				s, els := b.Nonterm("S"), b.Nonterm("Else")
				b.Add(s, nil, T(syntax.Check), s, els)
				b.Add(s, nil, T(syntax.Ident))
				b.Add(els, nil, T(syntax.Otherwise), s)
				b.Add(els, nil)
				b.Entry(s)
			},
			nonterm: "Else",
			term:    syntax.Otherwise,
		},
		{
			name: "chained_relational",
			build: func(b *Builder) {
				c, tail := b.Nonterm("Cmp"), b.Nonterm("CmpTail")
				b.Add(c, nil, T(syntax.Ident), tail)
				b.Add(tail, nil, T(syntax.Gtr), T(syntax.Ident), tail)
				b.Add(tail, nil, T(syntax.Gtr), T(syntax.Ident))
				b.Add(tail, nil)
				b.Entry(c)
			},
			nonterm: "CmpTail",
			term:    syntax.Gtr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			tt.build(b)
			g, err := b.Grammar()
			if err != nil {
				t.Fatalf("Grammar: %v", err)
			}
			_, err = Build(g)
			var ce *ConflictError
			if !errors.As(err, &ce) {
				t.Fatalf("Build error = %v, want *ConflictError", err)
			}
			if ce.Nonterm != tt.nonterm || ce.Term != tt.term {
				t.Errorf("conflict at [%s, %s], want [%s, %s]", ce.Nonterm, ce.Term, tt.nonterm, tt.term)
			}
			if ce.Existing == nil || ce.Conflicting == nil || ce.Existing.ID >= ce.Conflicting.ID {
				t.Errorf("conflict productions: %v vs %v", ce.Existing, ce.Conflicting)
			}
		})
	}
}

func TestBuildDeclaredFollow(t *testing.T) {
	b := NewBuilder()
	s, e := b.Nonterm("S"), b.Nonterm("Expr")
	b.Add(s, nil, T(syntax.Lparen), e, T(syntax.Rparen))
	b.Add(s, nil, e, T(syntax.Semi))
	b.Add(e, nil, T(syntax.Ident))
	b.Entry(s)
	b.Follow(e, syntax.Rparen)
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}

	_, err = Build(g)
	var fe *FollowError
	if !errors.As(err, &fe) {
		t.Fatalf("Build error = %v, want *FollowError", err)
	}
	if fe.Nonterm != "Expr" || fe.Extra != Terms(syntax.Semi) {
		t.Errorf("FollowError = %+v", fe)
	}

	// EOF from an entry never counts against the declared set.
	b = NewBuilder()
	e = b.Nonterm("Expr")
	b.Add(e, nil, T(syntax.Ident))
	b.Entry(e)
	b.Follow(e, syntax.Rparen)
	g, _ = b.Grammar()
	if _, err := Build(g); err != nil {
		t.Errorf("entry with declared FOLLOW: %v", err)
	}
}

func TestBuilderErrors(t *testing.T) {
	b := NewBuilder()
	s := b.Nonterm("S")
	b.Nonterm("Dangling")
	b.Add(s, nil, T(syntax.Ident))
	b.Entry(s)
	if _, err := b.Grammar(); err == nil || !strings.Contains(err.Error(), "Dangling") {
		t.Errorf("missing productions: err = %v", err)
	}

	b = NewBuilder()
	b.Add(T(syntax.Ident), nil)
	if _, err := b.Grammar(); err == nil {
		t.Error("terminal LHS accepted")
	}

	b = NewBuilder()
	s = b.Nonterm("S")
	b.Add(s, nil, T(syntax.Ident))
	if _, err := b.Grammar(); err == nil {
		t.Error("grammar without entry accepted")
	}

	b = NewBuilder()
	if b.Nonterm("S") != b.Nonterm("S") {
		t.Error("Nonterm is not idempotent")
	}
}
