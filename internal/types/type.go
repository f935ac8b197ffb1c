// Package types implements the KuCode type system and the symbol table
// used during semantic analysis. It has no dependency on the AST beyond
// source positions.
package types

// Type is the interface implemented by all types.
type Type interface {
	// Underlying returns the underlying type. Every KuCode type is its
	// own underlying type; the method keeps switch code uniform.
	Underlying() Type

	// String returns the type as written in source.
	String() string

	aType()
}

type typ struct{}

func (typ) aType() {}
