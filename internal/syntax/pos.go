package syntax

import "fmt"

// Pos is a source position. The zero value is invalid.
type Pos struct {
	filename string
	line     uint32 // 1-based
	col      uint32 // 1-based byte column
}

// NewPos returns the position line:col in filename.
func NewPos(filename string, line, col uint32) Pos {
	return Pos{filename: filename, line: line, col: col}
}

// String formats p as "file:line:col", or "line:col" without a file name.
func (p Pos) String() string {
	if p.filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.filename, p.line, p.col)
	}
	return fmt.Sprintf("%d:%d", p.line, p.col)
}

// IsValid reports whether p denotes a real position.
func (p Pos) IsValid() bool { return p.line > 0 }

func (p Pos) Line() uint32     { return p.line }
func (p Pos) Col() uint32      { return p.col }
func (p Pos) Filename() string { return p.filename }

// Before reports whether p comes strictly before q in the same file.
func (p Pos) Before(q Pos) bool {
	return p.line < q.line || p.line == q.line && p.col < q.col
}
