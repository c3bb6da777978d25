package cli

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/jmbeek/cdt3d/pkg/geometry"
)

// newCheckCmd creates the check command: it loads a geometry file,
// rebuilds the derived connectivity and runs the full invariant sweep.
func newCheckCmd() *cobra.Command {
	var strictness int

	cmd := &cobra.Command{
		Use:   "check <geometry>",
		Short: "Validate a geometry file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spinner := newSpinnerWithContext(cmd.Context(), "validating "+args[0])
			spinner.Start()

			rng := rand.New(rand.NewPCG(0, 0))
			u, err := geometry.Load(args[0], rng, strictness, geometry.DefaultCapacities())
			if err != nil {
				spinner.StopWithError(err.Error())
				return err
			}
			u.UpdateGeometry()
			if err := u.Validate(); err != nil {
				spinner.StopWithError(err.Error())
				return err
			}

			spinner.StopWithSuccess(fmt.Sprintf("%s is a valid triangulation", args[0]))
			printInfo("%d vertices, %d tetrahedra (%d of kind (3,1)), %d slices",
				u.N0(), u.N3(), u.N31(), u.NSlices())
			return nil
		},
	}
	cmd.Flags().IntVarP(&strictness, "strictness", "s", 0, "manifold strictness level (0-3)")
	return cmd
}
