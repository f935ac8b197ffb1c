// Package diag defines the diagnostics reported to the user by the
// compiler pipeline and renders them for the terminal.
package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/you-not-fish/kucode/internal/syntax"
)

// Phase is the compiler phase that reported a diagnostic.
type Phase uint8

const (
	Syntax   Phase = iota // scanning and parsing
	Semantic              // type checking
)

func (p Phase) String() string {
	switch p {
	case Syntax:
		return "syntax"
	case Semantic:
		return "semantic"
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// Codes of syntax-phase diagnostics. Semantic diagnostics use the name
// of the checker's error kind.
const (
	CodeLexical = "LexicalError"
	CodeSyntax  = "SyntaxError"
)

// Diagnostic is a single problem found in a compilation unit.
type Diagnostic struct {
	Phase    Phase
	Code     string
	Pos      syntax.Pos
	Msg      string
	Expected []syntax.Kind // syntax errors only
}

func (d *Diagnostic) Error() string {
	var b strings.Builder
	if d.Pos.IsValid() {
		b.WriteString(d.Pos.String())
		b.WriteString(": ")
	}
	b.WriteString(d.Phase.String())
	b.WriteString(" error: ")
	b.WriteString(d.Msg)
	if len(d.Expected) > 0 {
		b.WriteString(", expected ")
		b.WriteString(KindList(d.Expected))
	}
	return b.String()
}

// KindList formats a set of token kinds as "a", "a or b", "a, b or c".
func KindList(kinds []syntax.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	if len(names) < 2 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}

// List is an ordered list of diagnostics.
type List []*Diagnostic

// Add appends a diagnostic.
func (l *List) Add(phase Phase, code string, pos syntax.Pos, msg string) *Diagnostic {
	d := &Diagnostic{Phase: phase, Code: code, Pos: pos, Msg: msg}
	*l = append(*l, d)
	return d
}

// Sort orders the list by position. Diagnostics at the same position
// keep their relative order.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].Pos.Before(l[j].Pos)
	})
}

// Count returns the number of diagnostics of the given phase.
func (l List) Count(phase Phase) int {
	n := 0
	for _, d := range l {
		if d.Phase == phase {
			n++
		}
	}
	return n
}

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Err returns l as an error, or nil if l is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
