package types

import (
	"fmt"

	"github.com/you-not-fish/kucode/internal/syntax"
)

// SymbolKind classifies a declared name.
type SymbolKind uint8

const (
	VarSym   SymbolKind = iota // variable
	ConstSym                   // fixed variable
	FuncSym                    // function
	GroupSym                   // group type name
	FieldSym                   // group field
	ParamSym                   // function parameter
)

var symbolKindNames = [...]string{
	VarSym:   "variable",
	ConstSym: "constant",
	FuncSym:  "function",
	GroupSym: "group",
	FieldSym: "field",
	ParamSym: "parameter",
}

func (k SymbolKind) String() string {
	if int(k) < len(symbolKindNames) {
		return symbolKindNames[k]
	}
	return fmt.Sprintf("SymbolKind(%d)", k)
}

// Symbol is a declared entity.
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Type  Type
	Pos   syntax.Pos
	Scope ScopeID // declaring scope; NoScope for fields
}

// NewSymbol returns a symbol not yet declared in any scope.
func NewSymbol(kind SymbolKind, name string, typ Type, pos syntax.Pos) *Symbol {
	return &Symbol{Name: name, Kind: kind, Type: typ, Pos: pos, Scope: NoScope}
}

// Assignable reports whether the symbol names a storage location that
// may be assigned after its declaration.
func (s *Symbol) Assignable() bool {
	return s.Kind == VarSym || s.Kind == ParamSym
}

func (s *Symbol) String() string {
	return fmt.Sprintf("%s %s %s", s.Kind, s.Name, s.Type)
}
