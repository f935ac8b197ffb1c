package syntax

import (
	"strconv"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{EOF, "EOF"},
		{Ident, "identifier"},
		{PowAssign, "**="},
		{Incr, "++"},
		{Each, "each"},
		{Yes, "Yes"},
		{KindCount + 3, "kind(" + strconv.Itoa(int(KindCount)+3) + ")"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", uint(tt.kind), got, tt.want)
		}
	}
}

func TestKindNamesComplete(t *testing.T) {
	for k := Kind(0); k < KindCount; k++ {
		if kindNames[k] == "" {
			t.Errorf("kind %d has no name", uint(k))
		}
	}
}

func TestLookupKeyword(t *testing.T) {
	for spelling, kind := range keywords {
		if got := LookupKeyword(spelling); got != kind {
			t.Errorf("LookupKeyword(%q) = %v, want %v", spelling, got, kind)
		}
		if kind.String() != spelling {
			t.Errorf("%v spelled %q in kindNames", kind, kind.String())
		}
		if !kind.IsKeyword() {
			t.Errorf("%v.IsKeyword() = false", kind)
		}
	}
	for _, s := range []string{"yes", "Num", "otherwisecheck", "total"} {
		if got := LookupKeyword(s); got != Ident {
			t.Errorf("LookupKeyword(%q) = %v, want identifier", s, got)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	if !Lss.IsRelational() || Add.IsRelational() {
		t.Error("IsRelational")
	}
	if !RemAssign.IsAssignOp() || Eql.IsAssignOp() {
		t.Error("IsAssignOp")
	}
	if !Letter.IsPrimType() || List.IsPrimType() || Empty.IsPrimType() {
		t.Error("IsPrimType")
	}
	if !No.IsLiteral() || !CharLit.IsLiteral() || Ident.IsLiteral() {
		t.Error("IsLiteral")
	}
	if PowAssign.BinaryOp() != Pow || Assign.BinaryOp() != EOF {
		t.Error("BinaryOp")
	}
}

func TestTokenSlice(t *testing.T) {
	src := NewTokenSlice([]Token{
		{Kind: Ident, Lit: "x", Pos: NewPos("", 1, 1)},
		{Kind: Semi, Lit: ";", Pos: NewPos("", 1, 2)},
	})
	if tok := src.Scan(); tok.Kind != Ident || tok.Lit != "x" {
		t.Fatalf("first token = %v", tok)
	}
	src.Scan()
	for i := 0; i < 3; i++ {
		tok := src.Scan()
		if tok.Kind != EOF {
			t.Fatalf("scan past end = %v, want EOF", tok)
		}
		if tok.Pos != NewPos("", 1, 2) {
			t.Errorf("EOF pos = %v, want 1:2", tok.Pos)
		}
	}
}

func TestBoolPolicy(t *testing.T) {
	for _, p := range []BoolPolicy{Syntactic, Semantic} {
		got, err := ParseBoolPolicy(p.String())
		if err != nil || got != p {
			t.Errorf("ParseBoolPolicy(%q) = %v, %v", p, got, err)
		}
	}
	if _, err := ParseBoolPolicy("lenient"); err == nil {
		t.Error("unknown policy accepted")
	}
	var p BoolPolicy
	if err := p.UnmarshalText([]byte("semantic")); err != nil || p != Semantic {
		t.Errorf("UnmarshalText = %v, %v", p, err)
	}
}
