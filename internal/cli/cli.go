// Package cli implements the ghquad command-line interface.
//
// # Commands
//
//   - rule: compute a Gauss-Hermite rule (Golub-Welsch or direct method)
//   - integrate: integrate a monomial against exp(-x^2) and compare with the exact value
//   - coef, value: Hermite polynomial coefficients and values
//   - roots: real roots of a polynomial
//   - jacobi: the Hermite Jacobi matrix
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger and
// the configuration loaded with --config are passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the ghquad CLI with the process arguments.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

// NewRootCommand returns the root command writing its results to stdout and
// its logs to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {

	var verbose bool
	var configPath string

	root := &cobra.Command{
		Use:           "ghquad",
		Short:         "ghquad computes Gauss-Hermite quadrature rules",
		Long:          `ghquad computes the nodes and weights of Gauss-Hermite quadrature rules, by the direct method for small orders or by the Golub-Welsch algorithm up to very large orders.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {

			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}

			logger := newLogger(stderr, level)

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			if configPath != "" {
				logger.Debug("loaded configuration", "path", configPath)
			}

			cmd.SetContext(withConfig(withLogger(cmd.Context(), logger), cfg))

			return nil
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate(fmt.Sprintf("ghquad %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "TOML file with solver and cache parameters")

	root.AddCommand(newRuleCmd())
	root.AddCommand(newIntegrateCmd())
	root.AddCommand(newCoefCmd())
	root.AddCommand(newValueCmd())
	root.AddCommand(newRootsCmd())
	root.AddCommand(newJacobiCmd())

	return root
}
