package syntax

import (
	"strings"
	"testing"
)

func TestSourcePositions(t *testing.T) {
	s := newSource("t.ku", strings.NewReader("ab\nc"), nil)

	want := []struct {
		ch        rune
		line, col uint32
	}{
		{'a', 1, 1},
		{'b', 1, 2},
		{'\n', 1, 3},
		{'c', 2, 1},
		{-1, 2, 2},
	}
	for i, w := range want {
		if s.ch != w.ch || s.line != w.line || s.col != w.col {
			t.Fatalf("step %d: got %q at %d:%d, want %q at %d:%d",
				i, s.ch, s.line, s.col, w.ch, w.line, w.col)
		}
		s.nextch()
	}
}

func TestSourcePeek(t *testing.T) {
	s := newSource("", strings.NewReader("~~x"), nil)
	if s.ch != '~' || s.peek() != '~' {
		t.Fatalf("got ch=%q peek=%q, want '~' '~'", s.ch, s.peek())
	}
	s.nextch()
	s.nextch()
	if s.peek() != -1 {
		t.Errorf("peek at last char = %q, want EOF", s.peek())
	}
}

func TestSourceInvalidUTF8(t *testing.T) {
	var msgs []string
	errh := func(line, col uint32, msg string) { msgs = append(msgs, msg) }
	newSource("", strings.NewReader("\xff"), errh)
	if len(msgs) != 1 || !strings.Contains(msgs[0], "UTF-8") {
		t.Errorf("errors = %v, want one UTF-8 error", msgs)
	}
}

func TestCharClasses(t *testing.T) {
	for _, r := range "azAZ" {
		if !isLetter(r) {
			t.Errorf("isLetter(%q) = false", r)
		}
	}
	if isLetter('_') {
		t.Error("underscore must not start an identifier")
	}
	if !isIdentRune('_') || !isIdentRune('7') {
		t.Error("underscore and digits continue an identifier")
	}
	if !isWhitespace('\n') {
		t.Error("newline is whitespace in KuCode")
	}
}
