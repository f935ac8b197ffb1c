// Package types2 implements type checking for KuCode.
package types2

import (
	"fmt"

	"github.com/you-not-fish/kucode/internal/syntax"
)

// ErrorKind classifies a semantic error.
type ErrorKind int

const (
	UndeclaredIdentifier ErrorKind = iota
	Redeclaration
	TypeMismatch
	ArityMismatch
	UnknownField
	NonBooleanCondition
)

var errorKindNames = [...]string{
	UndeclaredIdentifier: "UndeclaredIdentifier",
	Redeclaration:        "Redeclaration",
	TypeMismatch:         "TypeMismatch",
	ArityMismatch:        "ArityMismatch",
	UnknownField:         "UnknownField",
	NonBooleanCondition:  "NonBooleanCondition",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

// Error is a semantic error.
type Error struct {
	Kind ErrorKind
	Pos  syntax.Pos
	Msg  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrorHandler is called for each semantic error.
type ErrorHandler func(err *Error)

// errorf reports a semantic error of the given kind.
func (c *Checker) errorf(kind ErrorKind, pos syntax.Pos, format string, args ...interface{}) {
	err := &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
	if c.errors == 0 {
		c.first = err
	}
	c.errors++

	if c.conf.Error != nil {
		c.conf.Error(err)
	}
}

// mismatch reports a TypeMismatch.
func (c *Checker) mismatch(pos syntax.Pos, format string, args ...interface{}) {
	c.errorf(TypeMismatch, pos, format, args...)
}

// invalidOp reports an operator applied to operands it does not accept.
func (c *Checker) invalidOp(pos syntax.Pos, format string, args ...interface{}) {
	c.errorf(TypeMismatch, pos, "invalid operation: "+format, args...)
}
