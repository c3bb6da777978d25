// Command cdt3d runs Monte Carlo simulations of three-dimensional
// causal dynamical triangulations.
package main

import (
	"os"

	"github.com/jmbeek/cdt3d/internal/cli"
	"github.com/jmbeek/cdt3d/pkg/buildinfo"
)

func main() {
	cli.SetVersion(buildinfo.Version, buildinfo.Commit, buildinfo.Date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
