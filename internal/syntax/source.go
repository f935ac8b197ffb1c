package syntax

import (
	"io"
	"unicode/utf8"
)

// source reads UTF-8 characters from an in-memory buffer and tracks
// the line and column of the current character.
type source struct {
	buf      []byte
	filename string
	line     uint32 // 1-based
	col      uint32 // 1-based byte column

	ch   rune // current character, -1 at EOF
	offs int  // byte offset of the next character

	errh func(line, col uint32, msg string)
}

// newSource reads all of src. Read failures are reported through errh and
// leave the source at EOF.
func newSource(filename string, src io.Reader, errh func(line, col uint32, msg string)) *source {
	s := &source{
		filename: filename,
		line:     1,
		ch:       -1, // before first char; nextch moves col from 0 to 1
		errh:     errh,
	}
	var err error
	s.buf, err = io.ReadAll(src)
	if err != nil {
		s.error("error reading source: " + err.Error())
		return s
	}
	s.nextch()
	return s
}

// nextch advances to the next character. After it returns, (line, col)
// is the position of s.ch.
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}

	r, width := utf8.DecodeRune(s.buf[s.offs:])
	if r == utf8.RuneError && width == 1 {
		s.error("invalid UTF-8 encoding")
	}
	s.ch = r
	s.offs += width
}

// peek returns the character after s.ch without consuming anything.
func (s *source) peek() rune {
	if s.offs >= len(s.buf) {
		return -1
	}
	r, _ := utf8.DecodeRune(s.buf[s.offs:])
	return r
}

func (s *source) pos() Pos {
	return NewPos(s.filename, s.line, s.col)
}

func (s *source) error(msg string) {
	s.errorAt(s.line, s.col, msg)
}

func (s *source) errorAt(line, col uint32, msg string) {
	if s.errh != nil {
		s.errh(line, col, msg)
	}
}

// isLetter reports whether r is an ASCII letter. KuCode identifiers
// start with a letter; the underscore may only follow.
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isIdentRune(r rune) bool {
	return isLetter(r) || isDigit(r) || r == '_'
}

// isWhitespace reports whether r is a space, tab, carriage return or newline.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}
