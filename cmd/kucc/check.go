package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/kucode/internal/compiler"
	"github.com/you-not-fish/kucode/internal/syntax"
	"github.com/you-not-fish/kucode/internal/types2"
)

type checkFlags struct {
	types      bool
	symbols    bool
	dumpBefore string
	dumpAfter  string
}

func newCheckCmd(g *globalFlags) *cobra.Command {
	cf := &checkFlags{}
	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Parse and type-check programs",
		Long: `Parses and type-checks each file and reports all diagnostics.
Type checking is skipped for a file with syntax errors.

Examples:
  kucc check prog.ku
  kucc check --policy semantic --types prog.ku
  kucc check --dump-after parse prog.ku`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.settings(cmd)
			if err != nil {
				return err
			}
			opts := g.options(cmd, cfg)
			opts.DumpBefore, opts.DumpAfter = cf.dumpBefore, cf.dumpAfter
			opts.DumpOut = cmd.OutOrStdout()

			failed := false
			for _, name := range args {
				res, err := checkFile(name, opts)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if cf.types && res.Checked() {
					printTypes(w, res.Program, res.Info)
				}
				if cf.symbols && res.Checked() {
					fmt.Fprint(w, res.Symbols)
				}
				if err := report(cmd, cfg, res.Diagnostics); err != nil {
					if !errors.Is(err, errFailed) {
						return err
					}
					failed = true
				}
			}
			if failed {
				return errFailed
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.BoolVar(&cf.types, "types", false, "print every expression with its type")
	f.BoolVar(&cf.symbols, "symbols", false, "print the global scope")
	f.StringVar(&cf.dumpBefore, "dump-before", "", "print the tree before pass (name or \"*\")")
	f.StringVar(&cf.dumpAfter, "dump-after", "", "print the tree after pass (name or \"*\")")
	return cmd
}

func checkFile(name string, opts compiler.Options) (*compiler.Result, error) {
	f, err := openInput(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return compiler.Compile(name, f, opts)
}

// printTypes prints each outermost typed expression of prog with the
// types of its operands.
func printTypes(w io.Writer, prog *syntax.Program, info *types2.Info) {
	syntax.Inspect(prog, func(n syntax.Node) bool {
		e, ok := n.(syntax.Expr)
		if !ok {
			return true
		}
		if _, typed := info.Types[e]; !typed {
			return true
		}
		fmt.Fprintf(w, "%s: %s\n", e.Pos(), typedExprString(e, info))
		return false
	})
}

func typedExprString(expr syntax.Expr, info *types2.Info) string {
	typ := ""
	if tv, ok := info.Types[expr]; ok {
		switch {
		case tv.IsVoid():
			typ = " (no value)"
		case tv.Type != nil:
			typ = fmt.Sprintf(" (%s)", tv.Type)
		}
	}

	switch e := expr.(type) {
	case *syntax.Name:
		return fmt.Sprintf("Name %q%s", e.Value, typ)
	case *syntax.BasicLit:
		return fmt.Sprintf("BasicLit %q%s", e.Value, typ)
	case *syntax.UnaryExpr:
		return fmt.Sprintf("UnaryExpr %s%s [X=%s]", e.Op, typ, typedExprString(e.X, info))
	case *syntax.BinaryExpr:
		return fmt.Sprintf("BinaryExpr %s%s [X=%s, Y=%s]", e.Op, typ, typedExprString(e.X, info), typedExprString(e.Y, info))
	case *syntax.CallExpr:
		args := make([]string, len(e.Args))
		for i, arg := range e.Args {
			args[i] = typedExprString(arg, info)
		}
		return fmt.Sprintf("CallExpr %s%s [Args=[%s]]", e.Fun.Value, typ, strings.Join(args, ", "))
	case *syntax.IndexExpr:
		return fmt.Sprintf("IndexExpr%s [X=%s, Index=%s]", typ, typedExprString(e.X, info), typedExprString(e.Index, info))
	case *syntax.MemberExpr:
		return fmt.Sprintf("MemberExpr .%s%s [X=%s]", e.Sel.Value, typ, typedExprString(e.X, info))
	case *syntax.SizeExpr:
		if e.Dim != nil {
			return fmt.Sprintf("SizeExpr %s, %s%s", e.List.Value, e.Dim.Value, typ)
		}
		return fmt.Sprintf("SizeExpr %s%s", e.List.Value, typ)
	case *syntax.ListLit:
		elems := make([]string, len(e.Elems))
		for i, el := range e.Elems {
			elems[i] = typedExprString(el, info)
		}
		return fmt.Sprintf("ListLit%s [Elems=[%s]]", typ, strings.Join(elems, ", "))
	default:
		return fmt.Sprintf("%T%s", expr, typ)
	}
}
