// Package syntax implements lexical analysis and the abstract syntax tree
// for the KuCode programming language.
package syntax

import "fmt"

// Kind represents the kind of a lexical token. Kinds double as the
// terminal symbols of the KuCode grammar.
type Kind uint

const (
	// Special tokens
	EOF     Kind = iota // end of file
	Illegal             // lexical error

	// Names and literals
	Ident   // identifier: total, getStart, Person
	NumLit  // 42
	DecLit  // 3.1416
	StrLit  // "hello"
	CharLit // 'a'

	// Assignment operators
	Assign    // =
	AddAssign // +=
	SubAssign // -=
	MulAssign // *=
	DivAssign // /=
	RemAssign // %=
	PowAssign // **=

	// Logical operators
	OrOr   // ||
	AndAnd // &&

	// Comparison operators
	Eql // ==
	Neq // !=
	Lss // <
	Leq // <=
	Gtr // >
	Geq // >=

	// Arithmetic operators
	Add // +
	Sub // -
	Mul // *
	Div // /
	Rem // %
	Pow // **

	// Statement-only operators
	Incr // ++
	Decr // --

	// Unary operators
	Not // !

	// Delimiters
	Lparen // (
	Rparen // )
	Lbrack // [
	Rbrack // ]
	Lbrace // {
	Rbrace // }
	Comma  // ,
	Semi   // ;
	Colon  // :
	Dot    // .

	// Keywords
	Bigdecimal
	Bool
	Check
	Decimal
	Define
	During
	Each
	Empty
	Fallback
	Finish
	Fixed
	From
	Give
	Group
	Letter
	List
	No
	Num
	Option
	Otherwise
	Read
	Select
	Show
	Size
	Skip
	Start
	Step
	Stop
	Text
	To
	Worldwide
	Yes

	// KindCount is the number of token kinds.
	KindCount
)

var kindNames = [...]string{
	EOF:     "EOF",
	Illegal: "ILLEGAL",

	Ident:   "identifier",
	NumLit:  "num literal",
	DecLit:  "decimal literal",
	StrLit:  "text literal",
	CharLit: "letter literal",

	Assign:    "=",
	AddAssign: "+=",
	SubAssign: "-=",
	MulAssign: "*=",
	DivAssign: "/=",
	RemAssign: "%=",
	PowAssign: "**=",

	OrOr:   "||",
	AndAnd: "&&",

	Eql: "==",
	Neq: "!=",
	Lss: "<",
	Leq: "<=",
	Gtr: ">",
	Geq: ">=",

	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
	Rem: "%",
	Pow: "**",

	Incr: "++",
	Decr: "--",

	Not: "!",

	Lparen: "(",
	Rparen: ")",
	Lbrack: "[",
	Rbrack: "]",
	Lbrace: "{",
	Rbrace: "}",
	Comma:  ",",
	Semi:   ";",
	Colon:  ":",
	Dot:    ".",

	Bigdecimal: "bigdecimal",
	Bool:       "bool",
	Check:      "check",
	Decimal:    "decimal",
	Define:     "define",
	During:     "during",
	Each:       "each",
	Empty:      "empty",
	Fallback:   "fallback",
	Finish:     "finish",
	Fixed:      "fixed",
	From:       "from",
	Give:       "give",
	Group:      "group",
	Letter:     "letter",
	List:       "list",
	No:         "No",
	Num:        "num",
	Option:     "option",
	Otherwise:  "otherwise",
	Read:       "read",
	Select:     "select",
	Show:       "show",
	Size:       "size",
	Skip:       "skip",
	Start:      "start",
	Step:       "step",
	Stop:       "stop",
	Text:       "text",
	To:         "to",
	Worldwide:  "worldwide",
	Yes:        "Yes",
}

// String returns the string representation of the token kind.
func (k Kind) String() string {
	if k < KindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// IsKeyword reports whether k is a keyword.
func (k Kind) IsKeyword() bool {
	return k >= Bigdecimal && k <= Yes
}

// IsLiteral reports whether k is a literal token (including Yes and No).
func (k Kind) IsLiteral() bool {
	return k >= NumLit && k <= CharLit || k == Yes || k == No
}

// IsOperator reports whether k is an operator token.
func (k Kind) IsOperator() bool {
	return k >= Assign && k <= Not
}

// IsAssignOp reports whether k is = or a compound assignment operator.
func (k Kind) IsAssignOp() bool {
	return k >= Assign && k <= PowAssign
}

// IsRelational reports whether k is a comparison operator.
func (k Kind) IsRelational() bool {
	return k >= Eql && k <= Geq
}

// IsPrimType reports whether k names a primitive type.
func (k Kind) IsPrimType() bool {
	switch k {
	case Num, Decimal, Bigdecimal, Bool, Text, Letter:
		return true
	}
	return false
}

// BinaryOp returns the arithmetic operator a compound assignment applies,
// or EOF for plain = and non-assignment kinds.
func (k Kind) BinaryOp() Kind {
	switch k {
	case AddAssign:
		return Add
	case SubAssign:
		return Sub
	case MulAssign:
		return Mul
	case DivAssign:
		return Div
	case RemAssign:
		return Rem
	case PowAssign:
		return Pow
	}
	return EOF
}

// keywords maps keyword strings to their token kind.
// Yes and No are the boolean literals; they are reserved like keywords.
var keywords = map[string]Kind{
	"bigdecimal": Bigdecimal,
	"bool":       Bool,
	"check":      Check,
	"decimal":    Decimal,
	"define":     Define,
	"during":     During,
	"each":       Each,
	"empty":      Empty,
	"fallback":   Fallback,
	"finish":     Finish,
	"fixed":      Fixed,
	"from":       From,
	"give":       Give,
	"group":      Group,
	"letter":     Letter,
	"list":       List,
	"No":         No,
	"num":        Num,
	"option":     Option,
	"otherwise":  Otherwise,
	"read":       Read,
	"select":     Select,
	"show":       Show,
	"size":       Size,
	"skip":       Skip,
	"start":      Start,
	"step":       Step,
	"stop":       Stop,
	"text":       Text,
	"to":         To,
	"worldwide":  Worldwide,
	"Yes":        Yes,
}

// LookupKeyword returns the token kind for the given identifier string.
// If the identifier is a keyword, returns the keyword kind.
// Otherwise, returns Ident.
func LookupKeyword(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Ident
}

// Token is a single lexical token.
type Token struct {
	Kind Kind
	Lit  string // source text; decoded content for text and letter literals
	Pos  Pos
}

func (t Token) String() string {
	switch t.Kind {
	case Ident, NumLit, DecLit:
		return t.Lit
	case StrLit:
		return fmt.Sprintf("%q", t.Lit)
	case CharLit:
		return "'" + t.Lit + "'"
	case Illegal:
		return fmt.Sprintf("illegal %q", t.Lit)
	}
	return t.Kind.String()
}

// TokenSource is a pull-based stream of tokens. After the input is
// exhausted, Scan returns EOF tokens indefinitely.
type TokenSource interface {
	Scan() Token
}

// TokenSlice is a TokenSource over a fixed sequence of tokens.
type TokenSlice struct {
	toks []Token
	i    int
}

// NewTokenSlice returns a TokenSource yielding toks followed by EOF.
func NewTokenSlice(toks []Token) *TokenSlice {
	return &TokenSlice{toks: toks}
}

func (s *TokenSlice) Scan() Token {
	if s.i < len(s.toks) {
		t := s.toks[s.i]
		s.i++
		return t
	}
	var pos Pos
	if n := len(s.toks); n > 0 {
		pos = s.toks[n-1].Pos
	}
	return Token{Kind: EOF, Pos: pos}
}
