package diag

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/you-not-fish/kucode/internal/syntax"
)

func TestDiagnosticError(t *testing.T) {
	tests := []struct {
		d    *Diagnostic
		want string
	}{
		{
			&Diagnostic{Phase: Syntax, Code: CodeSyntax, Pos: syntax.NewPos("a.ku", 3, 7), Msg: "unexpected +",
				Expected: []syntax.Kind{syntax.To, syntax.Step}},
			"a.ku:3:7: syntax error: unexpected +, expected to or step",
		},
		{
			&Diagnostic{Phase: Semantic, Code: "TypeMismatch", Pos: syntax.NewPos("", 1, 2), Msg: "bad"},
			"1:2: semantic error: bad",
		},
		{
			&Diagnostic{Phase: Syntax, Code: CodeLexical, Msg: "no position"},
			"syntax error: no position",
		},
	}
	for _, tt := range tests {
		if got := tt.d.Error(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestKindList(t *testing.T) {
	tests := []struct {
		kinds []syntax.Kind
		want  string
	}{
		{nil, ""},
		{[]syntax.Kind{syntax.Semi}, ";"},
		{[]syntax.Kind{syntax.Semi, syntax.Rbrace}, "; or }"},
		{[]syntax.Kind{syntax.To, syntax.Step, syntax.Lbrace}, "to, step or {"},
	}
	for _, tt := range tests {
		if got := KindList(tt.kinds); got != tt.want {
			t.Errorf("KindList(%v) = %q, want %q", tt.kinds, got, tt.want)
		}
	}
}

func TestListSortAndCount(t *testing.T) {
	var l List
	l.Add(Semantic, "TypeMismatch", syntax.NewPos("f", 4, 1), "c")
	l.Add(Syntax, CodeSyntax, syntax.NewPos("f", 2, 5), "a")
	l.Add(Semantic, "Redeclaration", syntax.NewPos("f", 2, 5), "b")
	l.Sort()

	var got []string
	for _, d := range l {
		got = append(got, d.Msg)
	}
	if strings.Join(got, "") != "abc" {
		t.Errorf("sorted order = %v", got)
	}
	if l.Count(Syntax) != 1 || l.Count(Semantic) != 2 {
		t.Errorf("counts = %d syntax, %d semantic", l.Count(Syntax), l.Count(Semantic))
	}

	var target List
	if err := l.Err(); !errors.As(err, &target) || len(target) != 3 {
		t.Errorf("Err() = %v", err)
	}
	if !strings.HasSuffix(l.Error(), "(and 2 more errors)") {
		t.Errorf("Error() = %q", l.Error())
	}
	if (List{}).Err() != nil {
		t.Error("empty list should have nil Err")
	}
}

func TestRenderPlain(t *testing.T) {
	r := NewRenderer(false)
	d := &Diagnostic{
		Phase:    Syntax,
		Code:     CodeSyntax,
		Pos:      syntax.NewPos("loop.ku", 5, 16),
		Msg:      "unexpected +",
		Expected: []syntax.Kind{syntax.To},
	}
	want := "loop.ku:5:16: syntax error [SyntaxError]: unexpected +\n\texpected to"
	if got := r.Render(d); got != want {
		t.Errorf("Render =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderColorKeepsText(t *testing.T) {
	r := NewRenderer(true)
	d := &Diagnostic{Phase: Semantic, Code: "UnknownField", Pos: syntax.NewPos("g.ku", 9, 3), Msg: "group P has no field z"}
	got := r.Render(d)
	for _, part := range []string{"g.ku:9:3:", "semantic error", "[UnknownField]", "group P has no field z"} {
		if !strings.Contains(got, part) {
			t.Errorf("Render = %q, missing %q", got, part)
		}
	}
}

func TestFprint(t *testing.T) {
	var l List
	l.Add(Syntax, CodeLexical, syntax.NewPos("x.ku", 1, 1), "unexpected character '@'")
	l.Add(Semantic, "UndeclaredIdentifier", syntax.NewPos("x.ku", 2, 1), "undeclared name: y")

	var buf bytes.Buffer
	if err := NewRenderer(false).Fprint(&buf, l); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[2] != "2 errors (1 syntax, 1 semantic)" {
		t.Errorf("summary = %q", lines[2])
	}

	buf.Reset()
	if err := NewRenderer(false).Fprint(&buf, nil); err != nil || buf.Len() != 0 {
		t.Errorf("empty list wrote %q, %v", buf.String(), err)
	}
}

func TestSummary(t *testing.T) {
	one := List{{Phase: Semantic}}
	if got := Summary(one); got != "1 error" {
		t.Errorf("Summary = %q", got)
	}
	two := List{{Phase: Syntax}, {Phase: Syntax}}
	if got := Summary(two); got != "2 errors" {
		t.Errorf("Summary = %q", got)
	}
}
