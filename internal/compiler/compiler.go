// Package compiler runs the KuCode frontend over one compilation unit:
// scanning, table-driven parsing and type checking. Every unit owns its
// scanner, parser, AST and symbol table; only the parsing tables are
// shared.
package compiler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/you-not-fish/kucode/internal/config"
	"github.com/you-not-fish/kucode/internal/diag"
	"github.com/you-not-fish/kucode/internal/parser"
	"github.com/you-not-fish/kucode/internal/syntax"
	"github.com/you-not-fish/kucode/internal/types"
	"github.com/you-not-fish/kucode/internal/types2"
)

// Options controls a compilation.
type Options struct {
	Policy    syntax.BoolPolicy
	Recover   bool
	MaxErrors int

	// Logger receives trace records; nil discards them.
	Logger *slog.Logger

	// DumpBefore and DumpAfter print the AST to DumpOut around the named
	// pass ("*" for all).
	DumpBefore string
	DumpAfter  string
	DumpOut    io.Writer
}

// OptionsFrom returns the options described by cfg.
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		Policy:    cfg.BoolPolicy,
		Recover:   cfg.Recover,
		MaxErrors: cfg.MaxErrors,
	}
}

// Result is the outcome of compiling one unit.
type Result struct {
	ID       uuid.UUID
	Filename string

	Program *syntax.Program
	Info    *types2.Info
	Symbols *types.Table // nil unless the checker ran

	Diagnostics diag.List
}

// Failed reports whether any diagnostic was produced.
func (r *Result) Failed() bool { return len(r.Diagnostics) > 0 }

// Checked reports whether semantic analysis ran.
func (r *Result) Checked() bool { return r.Symbols != nil }

// unit is the state threaded through the passes.
type unit struct {
	*Result
	src  io.Reader
	opts Options
	log  *slog.Logger
}

// Passes is the frontend pipeline.
var Passes = []Pass{
	{Name: "parse", Fn: parse},
	{Name: "check", Fn: check},
}

// Compile compiles the source read from src. Problems in the source are
// reported as diagnostics in the result; the error is reserved for
// failures of the compiler itself.
func Compile(filename string, src io.Reader, opts Options) (*Result, error) {
	return run(filename, src, opts, Passes)
}

// Parse is like Compile but stops after parsing.
func Parse(filename string, src io.Reader, opts Options) (*Result, error) {
	return run(filename, src, opts, Passes[:1])
}

func run(filename string, src io.Reader, opts Options, passes []Pass) (*Result, error) {
	id := uuid.New()
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	u := &unit{
		Result: &Result{ID: id, Filename: filename},
		src:    src,
		opts:   opts,
		log:    log.With("unit", id.String(), "file", filename),
	}

	u.log.Info("compile", "policy", opts.Policy.String(), "recover", opts.Recover)
	if err := runPasses(u, passes); err != nil {
		return u.Result, err
	}
	u.log.Info("done",
		"syntax_errors", u.Diagnostics.Count(diag.Syntax),
		"semantic_errors", u.Diagnostics.Count(diag.Semantic))
	return u.Result, nil
}

// CompileFile compiles the named file.
func CompileFile(path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Compile(path, f, opts)
}

// parse scans and parses the unit. Lexical and syntax errors become
// syntax-phase diagnostics.
func parse(u *unit) error {
	s := syntax.NewScanner(u.Filename, u.src, func(line, col uint32, msg string) {
		u.Diagnostics.Add(diag.Syntax, diag.CodeLexical, syntax.NewPos(u.Filename, line, col), msg)
	})
	p := parser.New(s, &parser.Config{
		Policy:    u.opts.Policy,
		Recover:   u.opts.Recover,
		MaxErrors: u.opts.MaxErrors,
	})

	prog, err := p.Parse()
	if err != nil {
		var list parser.ErrorList
		if !errors.As(err, &list) {
			return fmt.Errorf("parse %s: %w", u.Filename, err)
		}
		for _, e := range list {
			d := u.Diagnostics.Add(diag.Syntax, diag.CodeSyntax, e.Pos, unexpected(e.Tok))
			d.Expected = e.Expected
		}
	}
	u.Diagnostics.Sort()
	u.Program = prog
	return nil
}

func unexpected(tok syntax.Token) string {
	if tok.Kind == syntax.EOF {
		return "unexpected end of input"
	}
	return "unexpected " + tok.String()
}

// check type-checks the unit. It does not run on a unit with syntax
// errors.
func check(u *unit) error {
	if u.Program == nil || u.Diagnostics.Count(diag.Syntax) > 0 {
		u.log.Debug("skip check", "reason", "syntax errors")
		return nil
	}

	u.Info = &types2.Info{}
	conf := &types2.Config{
		Policy: u.opts.Policy,
		Error: func(err *types2.Error) {
			u.Diagnostics.Add(diag.Semantic, err.Kind.String(), err.Pos, err.Msg)
		},
	}
	// Errors arrive through conf.Error.
	u.Symbols, _ = types2.Check(u.Program, conf, u.Info)
	return nil
}

// Tokens scans src completely and returns its tokens, ending with EOF,
// and any lexical errors.
func Tokens(filename string, src io.Reader) ([]syntax.Token, diag.List) {
	var diags diag.List
	s := syntax.NewScanner(filename, src, func(line, col uint32, msg string) {
		diags.Add(diag.Syntax, diag.CodeLexical, syntax.NewPos(filename, line, col), msg)
	})
	var toks []syntax.Token
	for {
		tok := s.Scan()
		toks = append(toks, tok)
		if tok.Kind == syntax.EOF {
			return toks, diags
		}
	}
}
