package types

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Errors reported by Table operations. Returned errors wrap one of these
// and are matched with errors.Is.
var (
	ErrRedeclared  = errors.New("redeclared in this scope")
	ErrUndeclared  = errors.New("undeclared name")
	ErrScopeClosed = errors.New("scope is closed")
)

// ScopeID addresses a scope in a Table.
type ScopeID int

// NoScope is the parent of a root scope.
const NoScope ScopeID = -1

// ScopeKind tells what construct opened a scope.
type ScopeKind uint8

const (
	GlobalScope ScopeKind = iota
	FuncScope
	BlockScope
)

func (k ScopeKind) String() string {
	switch k {
	case GlobalScope:
		return "global"
	case FuncScope:
		return "function"
	case BlockScope:
		return "block"
	}
	return fmt.Sprintf("ScopeKind(%d)", k)
}

type scope struct {
	parent ScopeID
	kind   ScopeKind
	names  map[string]*Symbol
	closed bool
}

// Table is an arena of scopes addressed by ScopeID. Scopes refer to
// their parent by id; the table owns all of them. A Table belongs to one
// compilation unit.
type Table struct {
	scopes []scope
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// EnterScope creates a scope below parent and returns its id. Pass
// NoScope to create a root.
func (t *Table) EnterScope(parent ScopeID, kind ScopeKind) ScopeID {
	if parent != NoScope {
		t.mustValid(parent)
	}
	t.scopes = append(t.scopes, scope{
		parent: parent,
		kind:   kind,
		names:  make(map[string]*Symbol),
	})
	return ScopeID(len(t.scopes) - 1)
}

// Declare adds sym to scope. It fails if the name is already declared
// directly in scope; declarations in enclosing scopes are shadowed.
func (t *Table) Declare(id ScopeID, sym *Symbol) error {
	s := t.mustValid(id)
	if s.closed {
		return fmt.Errorf("declare %s: %w", sym.Name, ErrScopeClosed)
	}
	if prev := s.names[sym.Name]; prev != nil {
		return fmt.Errorf("%s %w (previous declaration at %s)", sym.Name, ErrRedeclared, prev.Pos)
	}
	sym.Scope = id
	s.names[sym.Name] = sym
	return nil
}

// Lookup finds name in scope or the nearest enclosing scope that
// declares it.
func (t *Table) Lookup(id ScopeID, name string) (*Symbol, error) {
	if t.mustValid(id).closed {
		return nil, fmt.Errorf("lookup %s: %w", name, ErrScopeClosed)
	}
	for ; id != NoScope; id = t.scopes[id].parent {
		if sym := t.scopes[id].names[name]; sym != nil {
			return sym, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUndeclared, name)
}

// LookupLocal returns the symbol declared as name directly in scope, or
// nil.
func (t *Table) LookupLocal(id ScopeID, name string) *Symbol {
	return t.mustValid(id).names[name]
}

// Discard closes a scope when analysis of its construct completes. Its
// symbols become unreachable and further operations on it fail with
// ErrScopeClosed.
func (t *Table) Discard(id ScopeID) {
	s := t.mustValid(id)
	s.closed = true
	s.names = nil
}

// Parent returns the parent of a scope.
func (t *Table) Parent(id ScopeID) ScopeID { return t.mustValid(id).parent }

// Kind returns the kind of a scope.
func (t *Table) Kind(id ScopeID) ScopeKind { return t.mustValid(id).kind }

// Closed reports whether a scope has been discarded.
func (t *Table) Closed(id ScopeID) bool { return t.mustValid(id).closed }

// Len returns the number of scopes ever created.
func (t *Table) Len() int { return len(t.scopes) }

// Names returns the names declared directly in a scope, sorted.
func (t *Table) Names(id ScopeID) []string {
	s := t.mustValid(id)
	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// String lists the open scopes and their symbols, children indented
// below their parents.
func (t *Table) String() string {
	var buf strings.Builder
	for id := range t.scopes {
		if t.scopes[id].parent == NoScope {
			t.writeTo(&buf, ScopeID(id), 0)
		}
	}
	return buf.String()
}

func (t *Table) writeTo(buf *strings.Builder, id ScopeID, indent int) {
	s := &t.scopes[id]
	if s.closed {
		return
	}
	prefix := strings.Repeat("  ", indent)
	fmt.Fprintf(buf, "%sscope %d %s {\n", prefix, id, s.kind)
	for _, name := range t.Names(id) {
		sym := s.names[name]
		fmt.Fprintf(buf, "%s  %s: %s %s\n", prefix, name, sym.Kind, sym.Type)
	}
	for child := range t.scopes {
		if t.scopes[child].parent == id {
			t.writeTo(buf, ScopeID(child), indent+1)
		}
	}
	fmt.Fprintf(buf, "%s}\n", prefix)
}

func (t *Table) mustValid(id ScopeID) *scope {
	if id < 0 || int(id) >= len(t.scopes) {
		panic(fmt.Sprintf("types: invalid scope id %d", id))
	}
	return &t.scopes[id]
}
