package parser

import (
	"github.com/you-not-fish/kucode/internal/syntax"
)

// recover implements panic-mode recovery. Tokens are skipped up to a
// statement boundary (;, } or end of input) and a ; is consumed. The
// stack is then unwound to the nearest synchronizing nonterminal that
// can start with the lookahead, or to a pending } or end marker that
// matches it. If nothing on the stack fits, one more token is dropped
// and the search repeats.
func (p *Parser) recover(stack []frame) []frame {
	p.skipToBoundary()
	for {
		if i := p.syncPoint(stack); i >= 0 {
			return stack[:i+1]
		}
		if p.tok.Kind == syntax.EOF {
			return nil
		}
		p.next()
		p.skipToBoundary()
	}
}

func (p *Parser) skipToBoundary() {
	for {
		switch p.tok.Kind {
		case syntax.Semi:
			p.next()
			return
		case syntax.Rbrace, syntax.EOF:
			return
		}
		p.next()
	}
}

// syncPoint returns the index of the topmost frame parsing can resume at
// with the current lookahead, or -1.
func (p *Parser) syncPoint(stack []frame) int {
	for i := len(stack) - 1; i >= 0; i-- {
		f := stack[i]
		switch {
		case f.reduce != nil:
			continue
		case f.sym.IsTerm():
			k := f.sym.Kind()
			if k == p.tok.Kind && (k == syntax.Rbrace || k == syntax.EOF) {
				return i
			}
		case p.tab.IsSync(f.sym):
			if _, ok := p.tab.Lookup(f.sym, p.tok.Kind); ok {
				return i
			}
		}
	}
	return -1
}
