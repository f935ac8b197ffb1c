package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/kucode/internal/compiler"
	"github.com/you-not-fish/kucode/internal/config"
	"github.com/you-not-fish/kucode/internal/diag"
	"github.com/you-not-fish/kucode/internal/syntax"
)

// errFailed is returned by commands whose input produced diagnostics.
// The diagnostics have already been printed.
var errFailed = errors.New("compilation failed")

// globalFlags are the persistent flags of the root command.
type globalFlags struct {
	cfgFile   string
	policy    string
	recover   bool
	maxErrors int
	trace     bool
	noColor   bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "kucc",
		Short: "KuCode compiler frontend",
		Long: `kucc scans, parses and type-checks KuCode programs.

Settings are read from --config, $KUCC_CONFIG, or kucc.yaml / kucc.toml
in the current directory; flags override them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.cfgFile, "config", "", "config file (.yaml, .yml or .toml)")
	pf.StringVar(&g.policy, "policy", "", "boolean condition policy: syntactic or semantic")
	pf.BoolVar(&g.recover, "recover", true, "continue parsing after syntax errors")
	pf.IntVar(&g.maxErrors, "max-errors", config.DefaultMaxErrors, "syntax errors collected before giving up")
	pf.BoolVar(&g.trace, "trace", false, "write trace records to stderr")
	pf.BoolVar(&g.noColor, "no-color", false, "disable colored diagnostics")

	root.AddCommand(
		newTokensCmd(g),
		newASTCmd(g),
		newCheckCmd(g),
		newGrammarCmd(g),
		newVersionCmd(),
	)
	return root
}

// settings resolves the configuration: file values first, then any flag
// set on the command line.
func (g *globalFlags) settings(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.cfgFile != "" {
		cfg, err = config.Load(g.cfgFile)
	} else {
		cfg, err = config.LoadFromEnv(".")
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("policy") {
		if cfg.BoolPolicy, err = syntax.ParseBoolPolicy(g.policy); err != nil {
			return nil, err
		}
	}
	if flags.Changed("recover") {
		cfg.Recover = g.recover
	}
	if flags.Changed("max-errors") {
		cfg.MaxErrors = g.maxErrors
	}
	if g.noColor {
		cfg.Color = false
	}
	return cfg, cfg.Validate()
}

// options returns compiler options for cfg, tracing to stderr if asked.
func (g *globalFlags) options(cmd *cobra.Command, cfg *config.Config) compiler.Options {
	opts := compiler.OptionsFrom(cfg)
	if g.trace {
		opts.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return opts
}

// report prints diagnostics to the command's error stream and returns
// errFailed if there were any.
func report(cmd *cobra.Command, cfg *config.Config, l diag.List) error {
	if len(l) == 0 {
		return nil
	}
	if err := diag.NewRenderer(cfg.Color).Fprint(cmd.ErrOrStderr(), l); err != nil {
		return err
	}
	return errFailed
}

func openInput(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}
