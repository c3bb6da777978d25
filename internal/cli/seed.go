package cli

import (
	"github.com/spf13/cobra"

	"github.com/jmbeek/cdt3d/pkg/geometry"
)

// newSeedCmd creates the seed command: it writes a minimal S¹×S²
// starting geometry for a given number of time slices.
func newSeedCmd() *cobra.Command {
	var (
		slices int
		out    string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a minimal starting geometry",
		Long:  `Seed writes the minimal spherical starting geometry: a periodic stack of two-triangle 2-spheres with eight tetrahedra per slab, ready to be grown toward the target volume by the simulation.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := geometry.ExportInitial(out, slices); err != nil {
				return err
			}
			printSuccess("wrote %d-slice starting geometry to %s", slices, out)
			return nil
		},
	}
	cmd.Flags().IntVarP(&slices, "slices", "t", 3, "number of time slices (minimum 2)")
	cmd.Flags().StringVarP(&out, "out", "o", "initial.dat", "output file")
	return cmd
}
