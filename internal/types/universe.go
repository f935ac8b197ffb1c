package types

import "github.com/you-not-fish/kucode/internal/syntax"

// keywordTypes maps type keywords to their basic types.
var keywordTypes = map[syntax.Kind]*Basic{
	syntax.Num:        Typ[Num],
	syntax.Decimal:    Typ[Decimal],
	syntax.Bigdecimal: Typ[Bigdecimal],
	syntax.Bool:       Typ[Bool],
	syntax.Text:       Typ[Text],
	syntax.Letter:     Typ[Letter],
	syntax.Empty:      Typ[Empty],
}

// literalTypes maps literal token kinds to the type of the literal.
var literalTypes = map[syntax.Kind]*Basic{
	syntax.NumLit:  Typ[Num],
	syntax.DecLit:  Typ[Decimal],
	syntax.StrLit:  Typ[Text],
	syntax.CharLit: Typ[Letter],
	syntax.Yes:     Typ[Bool],
	syntax.No:      Typ[Bool],
}

// KeywordType returns the basic type named by a type keyword.
func KeywordType(k syntax.Kind) (*Basic, bool) {
	t, ok := keywordTypes[k]
	return t, ok
}

// LiteralType returns the type of a literal token.
func LiteralType(k syntax.Kind) (*Basic, bool) {
	t, ok := literalTypes[k]
	return t, ok
}
