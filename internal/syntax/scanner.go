package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Lexical limits of KuCode literals and names.
const (
	MaxIdentLen   = 20 // characters in an identifier
	MaxIntDigits  = 11 // digits in a num literal
	MaxFracDigits = 16 // digits after the point in a decimal literal
)

// Scanner performs lexical analysis on KuCode source code.
// It implements TokenSource.
type Scanner struct {
	source

	tok    Kind
	lit    string
	tokPos Pos

	litBuf strings.Builder
}

// NewScanner creates a new Scanner for the given source.
// The errh function is called for each lexical error; if nil, errors are silently ignored.
func NewScanner(filename string, src io.Reader, errh func(line, col uint32, msg string)) *Scanner {
	return &Scanner{source: *newSource(filename, src, errh)}
}

// Scan advances to the next token and returns it.
func (s *Scanner) Scan() Token {
	s.Next()
	return Token{Kind: s.tok, Lit: s.lit, Pos: s.tokPos}
}

// Next advances to the next token.
func (s *Scanner) Next() {
redo:
	s.skipWhitespace()
	s.tokPos = s.pos()

	switch {
	case s.ch < 0:
		s.tok = EOF
		s.lit = ""

	case s.ch == '~':
		s.skipComment()
		goto redo

	case isLetter(s.ch):
		s.scanIdent()

	case s.ch == '_':
		s.error("identifier cannot start with underscore")
		for isIdentRune(s.ch) {
			s.nextch()
		}
		goto redo

	case isDigit(s.ch):
		if !s.scanNumber() {
			goto redo
		}

	case s.ch == '"':
		s.scanString()

	case s.ch == '\'':
		s.scanChar()

	default:
		if !s.scanOperator() {
			goto redo
		}
	}
}

// Token returns the current token kind.
func (s *Scanner) Token() Kind {
	return s.tok
}

// Literal returns the current token's literal value.
func (s *Scanner) Literal() string {
	return s.lit
}

// Pos returns the current token's start position.
func (s *Scanner) Pos() Pos {
	return s.tokPos
}

func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

// skipComment skips a line comment (~ to end of line) or a block
// comment (~~ to the next ~~).
func (s *Scanner) skipComment() {
	line, col := s.line, s.col
	s.nextch()
	if s.ch != '~' {
		for s.ch != '\n' && s.ch >= 0 {
			s.nextch()
		}
		return
	}
	s.nextch()
	for s.ch >= 0 {
		if s.ch == '~' && s.peek() == '~' {
			s.nextch()
			s.nextch()
			return
		}
		s.nextch()
	}
	s.errorAt(line, col, "comment not terminated")
}

func (s *Scanner) scanIdent() {
	s.litBuf.Reset()
	for isIdentRune(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	s.lit = s.litBuf.String()
	s.tok = LookupKeyword(s.lit)

	if s.tok == Ident && len(s.lit) > MaxIdentLen {
		s.errorAt(s.tokPos.line, s.tokPos.col,
			fmt.Sprintf("identifier %q exceeds maximum length: %d/%d", s.lit, len(s.lit), MaxIdentLen))
	}
}

// scanNumber scans a num or decimal literal. It reports false if the
// characters formed no valid token and scanning should resume.
func (s *Scanner) scanNumber() bool {
	s.litBuf.Reset()
	intDigits := s.scanDigits()
	s.tok = NumLit

	fracDigits := 0
	if s.ch == '.' {
		s.tok = DecLit
		s.litBuf.WriteRune(s.ch)
		s.nextch()
		fracDigits = s.scanDigits()
	}

	if isLetter(s.ch) || s.ch == '_' {
		for isIdentRune(s.ch) {
			s.litBuf.WriteRune(s.ch)
			s.nextch()
		}
		s.errorAt(s.tokPos.line, s.tokPos.col,
			fmt.Sprintf("invalid identifier %q: identifier cannot start with a digit", s.litBuf.String()))
		return false
	}

	s.lit = s.litBuf.String()
	switch {
	case s.tok == NumLit && intDigits > MaxIntDigits:
		s.errorAt(s.tokPos.line, s.tokPos.col,
			fmt.Sprintf("num literal exceeds maximum digits: %d/%d", intDigits, MaxIntDigits))
	case s.tok == DecLit && fracDigits == 0:
		s.errorAt(s.tokPos.line, s.tokPos.col, s.lit+" must have digits after decimal point")
	case fracDigits > MaxFracDigits:
		s.errorAt(s.tokPos.line, s.tokPos.col,
			fmt.Sprintf("decimal part exceeds maximum digits: %d/%d", fracDigits, MaxFracDigits))
	}
	return true
}

func (s *Scanner) scanDigits() int {
	n := 0
	for isDigit(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
		n++
	}
	return n
}

// scanString scans a text literal. The literal holds the decoded content.
func (s *Scanner) scanString() {
	s.tok = StrLit
	s.lit = s.scanQuoted('"', "text literal not terminated")
}

// scanChar scans a letter literal, which must hold exactly one character.
func (s *Scanner) scanChar() {
	s.tok = CharLit
	s.lit = s.scanQuoted('\'', "letter literal not terminated")
	if n := len([]rune(s.lit)); n != 1 {
		s.errorAt(s.tokPos.line, s.tokPos.col,
			fmt.Sprintf("letter literal must hold exactly one character, found %d", n))
	}
}

func (s *Scanner) scanQuoted(quote rune, unterminated string) string {
	s.nextch() // opening quote
	var b strings.Builder
	for {
		switch {
		case s.ch == quote:
			s.nextch()
			return b.String()
		case s.ch == '\\':
			if r, ok := s.scanEscape(); ok {
				b.WriteRune(r)
			}
		case s.ch == '\n' || s.ch < 0:
			s.errorAt(s.tokPos.line, s.tokPos.col, unterminated)
			return b.String()
		default:
			b.WriteRune(s.ch)
			s.nextch()
		}
	}
}

func (s *Scanner) scanEscape() (rune, bool) {
	s.nextch() // skip \
	switch s.ch {
	case 'n':
		s.nextch()
		return '\n', true
	case 't':
		s.nextch()
		return '\t', true
	case '\\', '"', '\'':
		r := s.ch
		s.nextch()
		return r, true
	case '\n', -1:
		s.error("unknown escape sequence")
		return 0, false
	}
	s.error(fmt.Sprintf("unknown escape sequence: \\%c", s.ch))
	s.nextch()
	return 0, false
}

// ops maps operator spellings to kinds. Scanning takes the longest match.
var ops = map[string]Kind{
	"=": Assign, "+=": AddAssign, "-=": SubAssign, "*=": MulAssign,
	"/=": DivAssign, "%=": RemAssign, "**=": PowAssign,
	"||": OrOr, "&&": AndAnd,
	"==": Eql, "!=": Neq, "<": Lss, "<=": Leq, ">": Gtr, ">=": Geq,
	"+": Add, "-": Sub, "*": Mul, "/": Div, "%": Rem, "**": Pow,
	"++": Incr, "--": Decr, "!": Not,
	"(": Lparen, ")": Rparen, "[": Lbrack, "]": Rbrack, "{": Lbrace, "}": Rbrace,
	",": Comma, ";": Semi, ":": Colon, ".": Dot,
}

// scanOperator scans an operator or delimiter. It reports false if the
// current character starts no token; the character is skipped.
func (s *Scanner) scanOperator() bool {
	s.litBuf.Reset()
	s.litBuf.WriteRune(s.ch)
	kind, ok := ops[s.litBuf.String()]
	s.nextch()
	for s.ch >= 0 {
		s.litBuf.WriteRune(s.ch)
		k, longer := ops[s.litBuf.String()]
		if !longer {
			break
		}
		kind, ok = k, true
		s.nextch()
	}
	if !ok {
		first := []rune(s.litBuf.String())[0]
		switch first {
		case '&', '|':
			s.errorAt(s.tokPos.line, s.tokPos.col, fmt.Sprintf("unexpected %q, did you mean %q?", first, string([]rune{first, first})))
		default:
			s.errorAt(s.tokPos.line, s.tokPos.col, fmt.Sprintf("unexpected character %q", first))
		}
		return false
	}
	s.tok = kind
	s.lit = kind.String()
	return true
}
