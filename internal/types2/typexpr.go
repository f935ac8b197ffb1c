package types2

import (
	"github.com/you-not-fish/kucode/internal/syntax"
	"github.com/you-not-fish/kucode/internal/types"
)

// typeRef resolves a written type. Unknown group names are reported and
// resolve to the invalid type.
func (c *Checker) typeRef(ref *syntax.TypeRef) types.Type {
	var t types.Type
	if ref.Kind == syntax.Ident {
		t = c.groupType(ref)
	} else if b, ok := types.KeywordType(ref.Kind); ok {
		t = b
	} else {
		c.mismatch(ref.Pos(), "%s is not a type", ref.Kind)
		t = types.Typ[types.Invalid]
	}
	if ref.List {
		t = types.NewList(t)
	}
	return t
}

func (c *Checker) groupType(ref *syntax.TypeRef) types.Type {
	sym := c.lookup(ref.Group)
	switch {
	case sym == nil:
		c.errorf(UndeclaredIdentifier, ref.Pos(), "undeclared group: %s", ref.Group)
	case sym.Kind != types.GroupSym:
		c.mismatch(ref.Pos(), "%s is a %s, not a group", ref.Group, sym.Kind)
	default:
		return sym.Type
	}
	return types.Typ[types.Invalid]
}
