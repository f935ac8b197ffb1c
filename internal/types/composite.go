package types

import (
	"strings"
)

// List represents a dynamic list type. A two-dimensional list is a list
// of lists.
type List struct {
	typ
	elem Type
}

// NewList creates a list type with the given element type.
func NewList(elem Type) *List {
	return &List{elem: elem}
}

// Elem returns the element type.
func (l *List) Elem() Type { return l.elem }

// Dims returns the number of list levels: 1 for list num, 2 for a list
// of lists.
func (l *List) Dims() int {
	n := 1
	for e, ok := l.elem.(*List); ok; e, ok = e.elem.(*List) {
		n++
	}
	return n
}

// Underlying implements Type.
func (l *List) Underlying() Type { return l }

// String implements Type.
func (l *List) String() string {
	return "list " + l.elem.String()
}

// Group represents a record type declared with group. Groups are
// identified by their declaration: two groups with equal fields are
// still distinct types.
type Group struct {
	typ
	name   string
	fields []*Symbol
}

// NewGroup creates a group type. The fields must be FieldSym symbols
// with distinct names.
func NewGroup(name string, fields []*Symbol) *Group {
	return &Group{name: name, fields: fields}
}

func (g *Group) Name() string        { return g.name }
func (g *Group) NumFields() int      { return len(g.fields) }
func (g *Group) Field(i int) *Symbol { return g.fields[i] }
func (g *Group) Fields() []*Symbol   { return g.fields }

// Lookup returns the field with the given name, or nil.
func (g *Group) Lookup(name string) *Symbol {
	for _, f := range g.fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Underlying implements Type.
func (g *Group) Underlying() Type { return g }

// String implements Type.
func (g *Group) String() string { return g.name }

// Func represents a function signature.
type Func struct {
	typ
	params []*Symbol
	result Type
}

// NewFunc creates a function signature. A nil result means empty.
func NewFunc(params []*Symbol, result Type) *Func {
	if result == nil {
		result = Typ[Empty]
	}
	return &Func{params: params, result: result}
}

func (f *Func) Params() []*Symbol   { return f.params }
func (f *Func) NumParams() int      { return len(f.params) }
func (f *Func) Param(i int) *Symbol { return f.params[i] }
func (f *Func) Result() Type        { return f.result }
func (f *Func) Underlying() Type    { return f }

// String implements Type.
func (f *Func) String() string {
	var buf strings.Builder
	buf.WriteString("define ")
	buf.WriteString(f.result.String())
	buf.WriteString("(")
	for i, p := range f.params {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(p.Type.String())
	}
	buf.WriteString(")")
	return buf.String()
}
