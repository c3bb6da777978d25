package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization
// with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the cdt3d CLI and returns an error if any command
// fails. The root command takes a single positional argument, the run
// configuration file, and starts the simulation; the check and seed
// subcommands operate on geometry files.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all
// commands via loggerFromContext.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "cdt3d <config>",
		Short:        "cdt3d samples causally triangulated 3-manifolds",
		Long:         `cdt3d runs Markov-chain Monte Carlo sampling of three-dimensional causal dynamical triangulations: a periodic stack of spatial 2-sphere slices evolved by local causality-preserving moves, weighted by the Regge action.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runSimulation(cmd.Context(), args[0])
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("cdt3d %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRunCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newSeedCmd())

	return root.ExecuteContext(context.Background())
}
