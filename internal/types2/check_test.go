package types2

import (
	"strings"
	"testing"

	"github.com/you-not-fish/kucode/internal/parser"
	"github.com/you-not-fish/kucode/internal/syntax"
	"github.com/you-not-fish/kucode/internal/types"
)

// parseAndCheck parses src and runs the type checker under policy.
// Parse errors fail the test.
func parseAndCheck(t *testing.T, src string, policy syntax.BoolPolicy) (*syntax.Program, *Info, *types.Table, []*Error) {
	t.Helper()
	scanner := syntax.NewScanner("test.ku", strings.NewReader(src), func(line, col uint32, msg string) {
		t.Fatalf("lexical error at %d:%d: %s", line, col, msg)
	})
	prog, err := parser.New(scanner, &parser.Config{Policy: policy}).Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var errs []*Error
	conf := &Config{
		Policy: policy,
		Error:  func(err *Error) { errs = append(errs, err) },
	}
	info := &Info{}
	tab, err := Check(prog, conf, info)
	if (err == nil) != (len(errs) == 0) {
		t.Errorf("Check returned %v with %d reported errors", err, len(errs))
	}
	return prog, info, tab, errs
}

// program wraps statements in a start block.
func program(body string) string {
	return "start {\n" + body + "\n}\nfinish\n"
}

func errorText(errs []*Error) string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Kind.String() + " " + e.Error()
	}
	return strings.Join(lines, "\n")
}

// expectNoErrors checks that src type-checks without errors under both
// policies.
func expectNoErrors(t *testing.T, src string) {
	t.Helper()
	for _, policy := range []syntax.BoolPolicy{syntax.Syntactic, syntax.Semantic} {
		if _, _, _, errs := parseAndCheck(t, src, policy); len(errs) > 0 {
			t.Errorf("%s: unexpected errors:\n%s", policy, errorText(errs))
		}
	}
}

// expectErrors checks that checking src produces an error of the given
// kind whose message contains msg.
func expectErrors(t *testing.T, src string, policy syntax.BoolPolicy, kind ErrorKind, msg string) {
	t.Helper()
	_, _, _, errs := parseAndCheck(t, src, policy)
	for _, e := range errs {
		if e.Kind == kind && strings.Contains(e.Msg, msg) {
			return
		}
	}
	if len(errs) == 0 {
		t.Errorf("expected %s containing %q, got none", kind, msg)
		return
	}
	t.Errorf("expected %s containing %q, got:\n%s", kind, msg, errorText(errs))
}

const validProgram = `
group Person {
	text name;
	num age;
	list decimal scores;
}

worldwide fixed decimal RATE = 1.5;
worldwide bigdecimal total;

define num add(num a, num b) {
	give a + b;
}

define decimal average(list decimal xs) {
	decimal sum = 0;
	each i from 0 to size(xs) {
		sum += xs[i];
	}
	give sum / size(xs);
}

define empty greet(Person p) {
	show("hello ", p.name, p.age);
}

define num fact(num n) {
	check (n <= 1) {
		give 1;
	}
	give n * fact(n - 1);
}

start {
	num i;
	Person p;
	p.name = "Ana";
	p.age = add(20, 1);
	p.scores[0] = 9.5;
	list num grid = [[1, 2], [3, 4]];
	grid[1][0] = grid[0][1] ** 2;
	total = RATE * p.age + average(p.scores);
	letter grade = 'A';
	text msg = "score: " + "high";
	bool ok = p.age >= 18 && grade == 'A' || !(msg != "x");
	each i from 1 to size(grid, 1) step 1 {
		i++;
	}
	during (i < 10 && ok == Yes) {
		i -= 1;
	}
	select (grade) {
		option 'A': show("top"); stop;
		option 'B': skip;
		fallback: greet(p);
	}
	check (fact(3) == 6) {
		show(msg);
	} otherwise check (i % 2 == 0) {
		read(msg);
	} otherwise {
		num r = 7 % 3;
	}
}
finish
`

func TestValidProgram(t *testing.T) {
	expectNoErrors(t, validProgram)
}

func TestDeclarationErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind ErrorKind
		msg  string
	}{
		{"undeclared", program("x = 1;"), UndeclaredIdentifier, "undeclared name: x"},
		{"redeclared_local", program("num x; decimal x;"), Redeclaration, "x redeclared"},
		{"redeclared_global", "worldwide num g; worldwide text g; start { } finish", Redeclaration, "g redeclared"},
		{"redeclared_func", "define empty f() { } define empty f() { } start { } finish", Redeclaration, "f redeclared"},
		{"param_redeclared_in_body", "define empty f(num a) { text a; } start { } finish", Redeclaration, "a redeclared"},
		{"duplicate_field", "group G { num a; text a; } start { } finish", Redeclaration, "field a redeclared"},
		{"unknown_group", program("Foo f;"), UndeclaredIdentifier, "undeclared group: Foo"},
		{"not_a_group", program("num n; n m;"), TypeMismatch, "not a group"},
		{"block_scoped", program("check (1 < 2) { num y = 1; } y = 2;"), UndeclaredIdentifier, "undeclared name: y"},
		{"init_before_declare", program("num x = x + 1;"), UndeclaredIdentifier, "undeclared name: x"},
		{"undeclared_func", program("foo(1);"), UndeclaredIdentifier, "undeclared name: foo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectErrors(t, tt.src, syntax.Syntactic, tt.kind, tt.msg)
		})
	}
}

func TestTypeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind ErrorKind
		msg  string
	}{
		{"narrowing_init", program("decimal d = 1.5; num n = d;"), TypeMismatch, "implicit narrowing"},
		{"narrowing_big", program("bigdecimal b = 2; decimal d = b;"), TypeMismatch, "implicit narrowing"},
		{"text_to_num", program(`num n = "a";`), TypeMismatch, "cannot use"},
		{"letter_to_text", program("text t = 'a';"), TypeMismatch, "cannot use a (letter) as text"},
		{"bool_to_num", program("num n = Yes;"), TypeMismatch, "cannot use"},
		{"text_plus_num", program(`text t = "a" + 1;`), TypeMismatch, "operator + not defined on text and num"},
		{"compare_categories", program(`bool b = 1 < "a";`), TypeMismatch, "mismatched types num and text"},
		{"order_bools", program("bool b = Yes < No;"), TypeMismatch, "operator < not defined on bool"},
		{"rem_decimal", program("num r = 5.0 % 2;"), TypeMismatch, "requires num operands"},
		{"and_numbers", program("bool b = 1 && 2;"), TypeMismatch, "requires bool operands"},
		{"not_number", program("num n = 1; bool b = !n;"), TypeMismatch, "operator ! not defined"},
		{"neg_text", program(`text t = -"a";`), TypeMismatch, "operator - not defined"},
		{"assign_fixed", program("fixed num K = 3; K = 4;"), TypeMismatch, "cannot assign to fixed K"},
		{"assign_fixed_global", "worldwide fixed num K = 3; start { K += 1; } finish", TypeMismatch, "cannot assign to fixed K"},
		{"compound_narrowing", program("num n = 1; n += 1.5;"), TypeMismatch, "implicit narrowing"},
		{"compound_text", program(`text t = "a"; t -= "b";`), TypeMismatch, "operator - not defined"},
		{"incdec_text", program(`text t = "a"; t++;`), TypeMismatch, "not numeric"},
		{"index_non_list", program("num n = 1; num v = n[0];"), TypeMismatch, "not a list"},
		{"index_decimal", program("list num xs = [1]; num v = xs[1.5];"), TypeMismatch, "list index 1.5 must be num"},
		{"list_element", program(`list num xs = [1, "a"];`), TypeMismatch, "list element"},
		{"list_narrowing", program("list num xs = [1, 2.5];"), TypeMismatch, "implicit narrowing"},
		{"list_ragged", program("list num g = [[1, 2], 3];"), TypeMismatch, "list element"},
		{"list_dims", program("list num g = [[1, 2], [3]]; num w = g[0];"), TypeMismatch, "cannot use g[...] (list num) as num"},
		{"binary_operand", program("list num xs = [1]; num v = xs[0] * 1.5;"), TypeMismatch, "cannot use xs[...] * 1.5 (decimal) as num"},
		{"field_index", "group P { list num xs; } start { P p; text t = p.xs[0]; } finish", TypeMismatch, "cannot use p.xs[...] (num) as text"},
		{"field_index_target", `group P { list num xs; } start { P p; p.xs[0] = "a"; } finish`, TypeMismatch, "cannot use a (text) as num in assignment"},
		{"size_non_list", program("num n = 1; num m = size(n);"), TypeMismatch, "size() requires a list"},
		{"size_dim", program("list num xs = [1]; num m = size(xs, 1);"), TypeMismatch, "has 1 dimension"},
		{"group_as_value", "group P { num a; } start { num x = P; } finish", TypeMismatch, "group P is not a value"},
		{"func_as_value", "define num f() { give 1; } start { num x = f; } finish", TypeMismatch, "function f used as value"},
		{"empty_call_value", "define empty f() { } start { num x = f(); } finish", TypeMismatch, "f(...) gives no value"},
		{"empty_call_show", "define empty f() { } start { show(f()); } finish", TypeMismatch, "gives no value"},
		{"call_non_func", program("num x = 1; x(2);"), TypeMismatch, "cannot call non-function x"},
		{"member_non_group", program("num n = 1; n.a = 2;"), TypeMismatch, "not a group"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectErrors(t, tt.src, syntax.Syntactic, tt.kind, tt.msg)
		})
	}
}

func TestWideningAccepted(t *testing.T) {
	expectNoErrors(t, program(`
		num n = 1;
		decimal d = n;
		bigdecimal b = n * 2.5;
		b = d ** n;
		d += n;
		list decimal xs = [1, 2.5, n];
		text t = "a" + "b";
		t += "c";
	`))
}

func TestUnknownField(t *testing.T) {
	src := `group Person { num age; }
start {
	Person p;
	p.height = 180;
	num a = p.age;
}
finish`
	expectErrors(t, src, syntax.Syntactic, UnknownField, "group Person has no field height")
}

func TestCallErrors(t *testing.T) {
	decls := `define num add(num a, decimal b) { give a; }
define empty log(list num xs) { }
`
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"not_enough", "num s = add(1);", "not enough arguments in call to add: have (num), want (num, decimal)"},
		{"too_many", "num s = add(1, 2, 3);", "too many arguments in call to add"},
		{"wrong_type", `num s = add(1, "x");`, "cannot use x (text) as decimal in argument 2 to add"},
		{"narrowing_arg", "num s = add(1.5, 2);", "cannot use 1.5 (decimal) as num in argument 1"},
		{"list_arg", "list decimal ds = [1.5]; log(ds);", "(list decimal) as list num in argument 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectErrors(t, decls+program(tt.body), syntax.Syntactic, ArityMismatch, tt.msg)
		})
	}

	expectNoErrors(t, decls+program("list num xs = [1, 2]; log(xs); num s = add(1, 2);"))
}

func TestFunctionErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"give_outside", program("give 1;"), "give outside a function"},
		{"missing_value", "define num f() { give; } start { } finish", "missing value in give: f gives num"},
		{"value_in_empty", "define empty f() { give 1; } start { } finish", "too many values in give"},
		{"wrong_result", `define num f() { give "a"; } start { } finish`, "as num in give from f"},
		{"narrowing_result", "define num f(decimal d) { give d; } start { } finish", "implicit narrowing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectErrors(t, tt.src, syntax.Syntactic, TypeMismatch, tt.msg)
		})
	}

	// Functions see each other regardless of order.
	expectNoErrors(t, `define num f(num n) { give g(n) + 1; }
define num g(num n) { check (n > 0) { give f(n - 1); } give 0; }
start { show(f(3)); }
finish`)
}

func TestStatementErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind ErrorKind
		msg  string
	}{
		{"loop_var_decimal", program("decimal d; each d from 1 to 3 { }"), TypeMismatch, "loop variable d must be num"},
		{"loop_var_fixed", program("fixed num k = 0; each k from 1 to 3 { }"), TypeMismatch, "not a variable"},
		{"loop_var_undeclared", program("each i from 1 to 3 { }"), UndeclaredIdentifier, "undeclared name: i"},
		{"loop_from_decimal", program("num i; each i from 1.5 to 3 { }"), TypeMismatch, "from value 1.5 must be num"},
		{"loop_step_text", program(`num i; text s = "a"; each i from 1 to 3 step s { }`), TypeMismatch, "step value s must be num"},
		{"select_decimal", program("decimal d; select (d) { option 1: stop; }"), TypeMismatch, "must be num, text or letter"},
		{"option_mismatch", program(`num d = 1; select (d) { option "x": stop; }`), TypeMismatch, "option x (text) does not match select subject d (num)"},
		{"option_duplicate", program("num d = 1; select (d) { option 1: stop; option 1: skip; }"), Redeclaration, "duplicate option 1"},
		{"read_fixed", program("fixed num k = 1; read(k);"), TypeMismatch, "cannot read into constant k"},
		{"read_list", program("list num xs = [1]; read(xs);"), TypeMismatch, "of type list num"},
		{"read_undeclared", program("read(z);"), UndeclaredIdentifier, "undeclared name: z"},
		{"option_scope", program("num d = 1; select (d) { option 1: num t = 1; stop; fallback: t = 2; }"), UndeclaredIdentifier, "undeclared name: t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectErrors(t, tt.src, syntax.Syntactic, tt.kind, tt.msg)
		})
	}

	expectNoErrors(t, program("num d = 1; select (d) { option -1: stop; option 1: num t = 1; stop; fallback: num t = 2; }"))
}

func TestConditionPolicy(t *testing.T) {
	// Accepted under both policies.
	expectNoErrors(t, program("bool flag = Yes; check (flag == Yes) { }"))
	expectNoErrors(t, program("num x = 1; check (x > 1 && x < 5 || x == 3) { } during (x != 0) { x--; }"))

	// Parenthesized and negated comparisons.
	expectNoErrors(t, program("num x = 1; check (!(x > 1) && x < 5) { }"))
	expectNoErrors(t, program("num x = 1; num y = 2; check ((x > 1) && (y < 2 || x == y)) { }"))
	expectNoErrors(t, program("num x = 1; during ((x + 1) * 2 > 3) { x--; }"))

	// Only the semantic policy admits these to the checker.
	tests := []struct {
		name string
		body string
	}{
		{"arithmetic", "num x = 1; check (x + 5) { }"},
		{"bare_bool", "bool flag = Yes; check (flag) { }"},
		{"negated_bool", "bool flag = Yes; check (!flag) { }"},
		{"bool_and_comparison", "bool flag = Yes; num x = 1; during (flag && x > 0) { }"},
		{"call", "check (ready()) { }"},
	}
	decls := "define bool ready() { give Yes; }\n"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectErrors(t, decls+program(tt.body), syntax.Semantic, NonBooleanCondition, "condition must be a comparison")
		})
	}
}

func TestErrorsAccumulate(t *testing.T) {
	src := program(`
		num a = "x";
		b = 1;
		text t = 1 + Yes;
		num a = 2;
	`)
	_, _, _, errs := parseAndCheck(t, src, syntax.Syntactic)
	want := []ErrorKind{TypeMismatch, UndeclaredIdentifier, TypeMismatch, Redeclaration}
	if len(errs) != len(want) {
		t.Fatalf("got %d errors, want %d:\n%s", len(errs), len(want), errorText(errs))
	}
	for i, k := range want {
		if errs[i].Kind != k {
			t.Errorf("error %d: %s, want %s", i, errs[i].Kind, k)
		}
		if i > 0 && errs[i].Pos.Before(errs[i-1].Pos) {
			t.Errorf("error %d reported out of order", i)
		}
	}
}

// A function-local declaration shadows a global one; once the function
// has been checked the global is visible again.
func TestScopeShadowing(t *testing.T) {
	src := `worldwide decimal x = 1.5;
define empty f() {
	num x = 1;
	show(x);
}
start {
	show(x);
}
finish`
	prog, info, tab, errs := parseAndCheck(t, src, syntax.Syntactic)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors:\n%s", errorText(errs))
	}

	inner := prog.Funcs[0].Body.Stmts[1].(*syntax.ShowStmt).Args[0].(*syntax.Name)
	outer := prog.Body.Stmts[0].(*syntax.ShowStmt).Args[0].(*syntax.Name)
	if sym := info.Uses[inner]; sym == nil || sym.Type != types.Typ[types.Num] {
		t.Errorf("x inside f = %v, want num", sym)
	}
	if sym := info.Uses[outer]; sym == nil || sym.Type != types.Typ[types.Decimal] {
		t.Errorf("x in start = %v, want decimal", sym)
	}

	fnScope := info.Scopes[prog.Funcs[0]]
	if tab.Kind(fnScope) != types.FuncScope || !tab.Closed(fnScope) {
		t.Errorf("function scope %d: kind %s, closed %v", fnScope, tab.Kind(fnScope), tab.Closed(fnScope))
	}
	global := info.Scopes[prog]
	if sym, err := tab.Lookup(global, "x"); err != nil || sym.Type != types.Typ[types.Decimal] {
		t.Errorf("global x after check = %v, %v", sym, err)
	}
}

func TestInfoRecordsTypes(t *testing.T) {
	prog, info, _, errs := parseAndCheck(t, validProgram, syntax.Syntactic)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors:\n%s", errorText(errs))
	}

	// Names that label something rather than evaluate to a value.
	labels := make(map[syntax.Node]bool)
	syntax.Inspect(prog, func(n syntax.Node) bool {
		switch n := n.(type) {
		case *syntax.CallExpr:
			labels[n.Fun] = true
		case *syntax.MemberExpr:
			labels[n.Sel] = true
		case *syntax.SizeExpr:
			labels[n.List] = true
			if n.Dim != nil {
				labels[n.Dim] = true
			}
		}
		return true
	})

	count := 0
	syntax.Inspect(prog, func(n syntax.Node) bool {
		x, ok := n.(syntax.Expr)
		if !ok || labels[n] || x.Context() == syntax.NoContext {
			return true
		}
		count++
		if tv, ok := info.Types[x]; !ok || types.IsInvalid(tv.Type) {
			t.Errorf("%s: %T has no type", x.Pos(), x)
		}
		return true
	})
	if count == 0 {
		t.Fatal("no expressions inspected")
	}

	var grid *syntax.VarDecl
	for _, s := range prog.Body.Stmts {
		if d, ok := s.(*syntax.VarDecl); ok && d.Name.Value == "grid" {
			grid = d
		}
	}
	if sym := info.Defs[grid.Name]; sym == nil || sym.Type.String() != "list list num" {
		t.Errorf("grid declared as %v, want list list num", sym)
	}
}

func TestTypeAndValueModes(t *testing.T) {
	src := `define empty f() { }
start {
	fixed num K = 2;
	num v = K;
	f();
}
finish`
	prog, info, _, errs := parseAndCheck(t, src, syntax.Syntactic)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors:\n%s", errorText(errs))
	}
	k := prog.Body.Stmts[1].(*syntax.VarDecl).Value
	if tv := info.Types[k]; !tv.IsConstant() || !tv.IsValue() || tv.IsAddressable() {
		t.Errorf("K: %+v", tv)
	}
	call := prog.Body.Stmts[2].(*syntax.CallStmt).Call
	if tv := info.Types[call]; !tv.IsVoid() || tv.IsValue() {
		t.Errorf("f(): %+v", tv)
	}
}
