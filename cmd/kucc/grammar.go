package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/kucode/internal/parser"
)

func newGrammarCmd(g *globalFlags) *cobra.Command {
	var dump bool
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Build the parsing table and print its statistics",
		Long: `Builds the LL(1) parsing table for the selected boolean policy,
reporting any conflict, and prints its size. With --dump the FIRST and
FOLLOW sets and the table entries are printed as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.settings(cmd)
			if err != nil {
				return err
			}
			tab, err := parser.Table(cfg.BoolPolicy)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "policy %s: %s\n", cfg.BoolPolicy, tab.Stats())
			if dump {
				fmt.Fprint(w, tab.Dump())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "print FIRST/FOLLOW sets and table entries")
	return cmd
}
