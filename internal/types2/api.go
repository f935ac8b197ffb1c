package types2

import (
	"github.com/you-not-fish/kucode/internal/syntax"
	"github.com/you-not-fish/kucode/internal/types"
)

// Config specifies the configuration for type checking.
type Config struct {
	// Error is called for each semantic error.
	// If nil, errors are only counted.
	Error ErrorHandler

	// Policy selects how conditions are enforced. Under the semantic
	// policy every condition must be a comparison or a boolean
	// combination of comparisons.
	Policy syntax.BoolPolicy
}

// Info holds the results of type checking.
type Info struct {
	// Types maps every checked expression to its type and mode.
	Types map[syntax.Expr]TypeAndValue

	// Defs maps declaring names to the symbols they declare.
	Defs map[*syntax.Name]*types.Symbol

	// Uses maps referencing names, including field selectors and
	// called function names, to their symbols.
	Uses map[*syntax.Name]*types.Symbol

	// Scopes maps the program, function declarations and blocks to the
	// scopes they opened.
	Scopes map[syntax.Node]types.ScopeID
}

// TypeAndValue holds the type of an expression and how it may be used.
type TypeAndValue struct {
	Type types.Type
	mode operandMode
}

// IsVoid reports whether the expression is a call giving no value.
func (tv TypeAndValue) IsVoid() bool { return tv.mode == novalue }

// IsConstant reports whether the expression is a literal or names a
// fixed variable.
func (tv TypeAndValue) IsConstant() bool { return tv.mode == constant_ }

// IsAddressable reports whether the expression can be assigned to.
func (tv TypeAndValue) IsAddressable() bool { return tv.mode == variable }

// IsValue reports whether the expression has a value.
func (tv TypeAndValue) IsValue() bool {
	return tv.mode == constant_ || tv.mode == variable || tv.mode == value
}

// Check type-checks a parsed program. It returns the symbol table, in
// which only the global scope remains open, and the first error
// encountered. All errors are passed to conf.Error.
func Check(prog *syntax.Program, conf *Config, info *Info) (*types.Table, error) {
	if conf == nil {
		conf = &Config{}
	}

	if info != nil {
		if info.Types == nil {
			info.Types = make(map[syntax.Expr]TypeAndValue)
		}
		if info.Defs == nil {
			info.Defs = make(map[*syntax.Name]*types.Symbol)
		}
		if info.Uses == nil {
			info.Uses = make(map[*syntax.Name]*types.Symbol)
		}
		if info.Scopes == nil {
			info.Scopes = make(map[syntax.Node]types.ScopeID)
		}
	}

	c := &Checker{
		conf:  conf,
		info:  info,
		tab:   types.NewTable(),
		scope: types.NoScope,
	}

	c.checkProgram(prog)

	if c.errors > 0 {
		return c.tab, c.first
	}
	return c.tab, nil
}
