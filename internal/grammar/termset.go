package grammar

import (
	"math/bits"
	"strings"

	"github.com/you-not-fish/kucode/internal/syntax"
)

const termWords = (int(syntax.KindCount) + 63) / 64

// TermSet is a set of terminals, one bit per syntax.Kind.
type TermSet [termWords]uint64

// Terms returns the set holding kinds.
func Terms(kinds ...syntax.Kind) TermSet {
	var s TermSet
	for _, k := range kinds {
		s.Add(k)
	}
	return s
}

func (s *TermSet) Add(k syntax.Kind) {
	s[k/64] |= 1 << (k % 64)
}

func (s *TermSet) Remove(k syntax.Kind) {
	s[k/64] &^= 1 << (k % 64)
}

func (s TermSet) Has(k syntax.Kind) bool {
	return s[k/64]&(1<<(k%64)) != 0
}

// Union adds every member of o to s and reports whether s grew.
func (s *TermSet) Union(o TermSet) bool {
	changed := false
	for i := range s {
		if n := s[i] | o[i]; n != s[i] {
			s[i] = n
			changed = true
		}
	}
	return changed
}

// Minus returns the members of s not in o.
func (s TermSet) Minus(o TermSet) TermSet {
	for i := range s {
		s[i] &^= o[i]
	}
	return s
}

func (s TermSet) Len() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

func (s TermSet) Empty() bool { return s == TermSet{} }

// Kinds returns the members of s in ascending order.
func (s TermSet) Kinds() []syntax.Kind {
	kinds := make([]syntax.Kind, 0, s.Len())
	for i, w := range s {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			kinds = append(kinds, syntax.Kind(i*64+b))
			w &^= 1 << b
		}
	}
	return kinds
}

func (s TermSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range s.Kinds() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k.String())
	}
	b.WriteByte('}')
	return b.String()
}
