package main

import (
	"github.com/spf13/cobra"

	"github.com/you-not-fish/kucode/internal/compiler"
	"github.com/you-not-fish/kucode/internal/syntax"
)

func newASTCmd(g *globalFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "ast <file>",
		Short: "Parse a program and print its syntax tree",
		Long: `Parses a program and prints its syntax tree. Every expression is
annotated with the context it was parsed in.`,
		Args: cobra.ExactArgs(1),
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

			res, err := compiler.Parse(args[0], f, g.options(cmd, cfg))
			if err != nil {
				return err
			}
			if res.Program != nil {
				if asJSON {
					if err := syntax.FprintJSON(cmd.OutOrStdout(), res.Program); err != nil {
						return err
					}
				} else {
					syntax.Fprint(cmd.OutOrStdout(), res.Program)
				}
			}
			return report(cmd, cfg, res.Diagnostics)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the tree as JSON")
	return cmd
}
