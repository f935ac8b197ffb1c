package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 3 main classes of nodes: Expressions, Statements, and Declarations.
// All nodes implement the Node interface. The set of node types is closed:
// the marker methods keep implementations inside this package.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	SetPos(Pos)
	aNode()
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	// Context reports the syntactic position the expression was parsed in.
	Context() Context
	SetContext(Context)
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// Decl is the interface for top-level declarations.
type Decl interface {
	Node
	aDecl()
}

// Context identifies which expression hierarchy produced an expression.
type Context uint8

const (
	NoContext     Context = iota
	ContextAssign         // assignment right-hand side, initializer, give value
	ContextArg            // call or show argument
	ContextIndex          // list index
	ContextCond           // check/during condition
	ContextBound          // each loop from/to/step bound
	ContextElem           // list literal element
)

var contextNames = [...]string{
	NoContext:     "none",
	ContextAssign: "assign",
	ContextArg:    "arg",
	ContextIndex:  "index",
	ContextCond:   "cond",
	ContextBound:  "bound",
	ContextElem:   "elem",
}

func (c Context) String() string {
	if int(c) < len(contextNames) {
		return contextNames[c]
	}
	return "context?"
}

// ----------------------------------------------------------------------------
// Base node types

type node struct {
	pos Pos
}

func (n *node) Pos() Pos       { return n.pos }
func (n *node) SetPos(pos Pos) { n.pos = pos }
func (n *node) aNode()         {}

type expr struct {
	node
	ctx Context
}

func (x *expr) Context() Context       { return x.ctx }
func (x *expr) SetContext(ctx Context) { x.ctx = ctx }
func (*expr) aExpr()                   {}

type stmt struct{ node }

func (*stmt) aStmt() {}

type decl struct{ node }

func (*decl) aDecl() {}

// ----------------------------------------------------------------------------
// Program and declarations

// Program is a complete compilation unit:
//
//	group* worldwide* define* start { ... } finish
type Program struct {
	node
	Groups  []*GroupDecl
	Globals []*GlobalDecl
	Funcs   []*FuncDecl
	Body    *BlockStmt
}

// TypeRef names a type in a declaration: a primitive type, a group name,
// a list of a primitive type, or empty as a function result.
type TypeRef struct {
	node
	Kind  Kind   // Num ... Letter, Empty, or Name for a group
	Group string // group name when Kind == Ident
	List  bool   // list of Kind
}

func (t *TypeRef) String() string {
	s := t.Kind.String()
	if t.Kind == Ident {
		s = t.Group
	}
	if t.List {
		return "list " + s
	}
	return s
}

// Field is a group member or function parameter.
type Field struct {
	node
	Name *Name
	Type *TypeRef
}

// GroupDecl declares a record type: group Name { T field; ... }
type GroupDecl struct {
	decl
	Name   *Name
	Fields []*Field
}

// GlobalDecl declares a program-wide variable or constant:
// worldwide [fixed] T name [= Value];
type GlobalDecl struct {
	decl
	Fixed bool
	Type  *TypeRef
	Name  *Name
	Value Expr // nil if none
}

// FuncDecl declares a function: define Result Name(Params) { Body }
type FuncDecl struct {
	decl
	Result *TypeRef // Kind == Empty for no result
	Name   *Name
	Params []*Field
	Body   *BlockStmt
}

// ----------------------------------------------------------------------------
// Expressions

// Name is an identifier.
type Name struct {
	expr
	Value string
}

// BasicLit is a literal: NumLit, DecLit, StrLit, CharLit, Yes or No.
type BasicLit struct {
	expr
	Value string // source text; decoded for text and letter literals
	Kind  Kind
}

// BinaryExpr is X Op Y.
type BinaryExpr struct {
	expr
	Op Kind
	X  Expr
	Y  Expr
}

// UnaryExpr is Op X, with Op one of - and !.
type UnaryExpr struct {
	expr
	Op Kind
	X  Expr
}

// CallExpr is Fun(Args...).
type CallExpr struct {
	expr
	Fun  *Name
	Args []Expr
}

// IndexExpr is X[Index]. Two-dimensional access nests: (a[i])[j].
type IndexExpr struct {
	expr
	X     Expr
	Index Expr
}

// MemberExpr is X.Sel, a group field access.
type MemberExpr struct {
	expr
	X   Expr
	Sel *Name
}

// SizeExpr is size(List) or size(List, Dim).
type SizeExpr struct {
	expr
	List *Name
	Dim  *BasicLit // nil for the outermost dimension
}

// ListLit is [Elems...]. Elements may be list literals themselves.
type ListLit struct {
	expr
	Elems []Expr
}

// ----------------------------------------------------------------------------
// Statements

// VarDecl declares a local: T name [= Value]; fixed T name = Value;
// list T name = [...]; or Group name;
type VarDecl struct {
	stmt
	Fixed bool
	Type  *TypeRef
	Name  *Name
	Value Expr // nil if none
}

// AssignStmt is LHS Op RHS; with Op = or a compound assignment operator.
type AssignStmt struct {
	stmt
	Op  Kind
	LHS Expr
	RHS Expr
}

// IncDecStmt is X++; or X--;
type IncDecStmt struct {
	stmt
	Op Kind // Incr or Decr
	X  Expr
}

// CallStmt is a call evaluated for its effect: f(args);
type CallStmt struct {
	stmt
	Call *CallExpr
}

// BlockStmt is { Stmts... }.
type BlockStmt struct {
	stmt
	Stmts  []Stmt
	Rbrace Pos
}

// IfStmt is check (Cond) Then [otherwise Else].
type IfStmt struct {
	stmt
	Cond Expr
	Then *BlockStmt
	Else Stmt // nil, *IfStmt, or *BlockStmt
}

// WhileStmt is during (Cond) Body.
type WhileStmt struct {
	stmt
	Cond Expr
	Body *BlockStmt
}

// ForStmt is each Var from From to To [step Step] Body.
type ForStmt struct {
	stmt
	Var  *Name
	From Expr
	To   Expr
	Step Expr // nil if omitted
	Body *BlockStmt
}

// SelectStmt is select (Subject) { option...; fallback: ... }.
type SelectStmt struct {
	stmt
	Subject  *Name
	Options  []*OptionClause
	Fallback *OptionClause // nil if absent
	Rbrace   Pos
}

// OptionClause is one arm of a select. Value is nil for the fallback arm,
// which has no terminator either.
type OptionClause struct {
	node
	Value *BasicLit
	Body  []Stmt
	Flow  Kind // Stop or Skip; EOF for fallback
}

// ReturnStmt is give [Result];
type ReturnStmt struct {
	stmt
	Result Expr // nil for a bare give
}

// ShowStmt is show(Args...);
type ShowStmt struct {
	stmt
	Args []Expr
}

// ReadStmt is read(Target);
type ReadStmt struct {
	stmt
	Target *Name
}
