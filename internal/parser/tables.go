package parser

import (
	"sync"

	"github.com/you-not-fish/kucode/internal/grammar"
	"github.com/you-not-fish/kucode/internal/syntax"
)

// One table per boolean policy, built on first use and shared read-only
// by every parser.
var tables [2]struct {
	once sync.Once
	tab  *grammar.Table
	err  error
}

// Table returns the parsing table for policy.
func Table(policy syntax.BoolPolicy) (*grammar.Table, error) {
	if int(policy) >= len(tables) {
		policy = syntax.Syntactic
	}
	t := &tables[policy]
	t.once.Do(func() {
		g, err := NewGrammar(policy)
		if err != nil {
			t.err = err
			return
		}
		t.tab, t.err = grammar.Build(g)
	})
	return t.tab, t.err
}
