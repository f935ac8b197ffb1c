package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/kucode/internal/compiler"
)

func newTokensCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.settings(cmd)
			if err != nil {
				return err
			}
			f, err := openInput(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			toks, diags := compiler.Tokens(args[0], f)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-20s %-16s %s\n", "POSITION", "TOKEN", "LITERAL")
			fmt.Fprintf(w, "%-20s %-16s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 16), strings.Repeat("-", 20))
			for _, tok := range toks {
				fmt.Fprintf(w, "%-20s %-16s %s\n", tok.Pos, tok.Kind, formatLiteral(tok.Lit))
			}
			return report(cmd, cfg, diags)
		},
	}
}

// formatLiteral formats a literal for display, escaping special characters.
func formatLiteral(lit string) string {
	if lit == "" {
		return ""
	}

	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteString("\\\"")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}
