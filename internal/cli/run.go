package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jmbeek/cdt3d/pkg/config"
	"github.com/jmbeek/cdt3d/pkg/geometry"
	"github.com/jmbeek/cdt3d/pkg/montecarlo"
	"github.com/jmbeek/cdt3d/pkg/observability"
	"github.com/jmbeek/cdt3d/pkg/observables"
)

// newRunCmd creates the run command, the explicit form of the root
// invocation.
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <config>",
		Short: "Run a simulation from a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd.Context(), args[0])
		},
	}
}

// runSimulation wires a full run: config, universe, observables,
// hooks, driver.
func runSimulation(ctx context.Context, configPath string) error {
	logger := loggerFromContext(ctx)
	runID := uuid.NewString()
	logger = logger.With("run", runID[:8])

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger.Info("configuration loaded", "file", configPath, "params", cfg.String())

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))

	tracker := newProgress(logger)
	u, err := geometry.Load(cfg.InFile, rng, cfg.Strictness, geometry.DefaultCapacities())
	if err != nil {
		return err
	}
	tracker.done(fmt.Sprintf("loaded %s: %d vertices, %d tetrahedra, %d slices",
		cfg.InFile, u.N0(), u.N3(), u.NSlices()))

	sink, err := observables.NewSink(cfg.OutputDir, cfg.FileID)
	if err != nil {
		return err
	}

	observability.SetSimulationHooks(&logSimulationHooks{logger: logger})
	observability.SetGeometryHooks(&logGeometryHooks{logger: logger})
	observability.SetMeasurementHooks(&logMeasurementHooks{logger: logger})

	sim := montecarlo.New(u, cfg, sink, logger)

	ex := observables.NewExplorer()
	sim.AddObservable3d(observables.NewVolumeProfile())
	if cfg.Target2Volume > 0 {
		sim.AddObservable2d(observables.NewCNum(cfg.Target2Volume))
		sim.AddObservable2d(observables.NewHausdorff2d(ex, cfg.Target2Volume, false))
		sim.AddObservable2d(observables.NewHausdorff2dDual(ex, rng, cfg.Target2Volume))
		sim.AddObservable2d(observables.NewRicci2d(ex, rng, cfg.Target2Volume))
		sim.AddObservable2d(observables.NewRicci2dDual(ex, rng, cfg.Target2Volume))
		sim.AddObservable2d(observables.NewMinbu(cfg.Target2Volume))
	}

	if err := sim.Start(ctx); err != nil {
		return err
	}

	printSuccess("run %s finished: %s tetrahedra, %s of them (3,1), k3=%s",
		runID[:8],
		StyleNumber.Render(fmt.Sprintf("%d", u.N3())),
		StyleNumber.Render(fmt.Sprintf("%d", u.N31())),
		StyleNumber.Render(fmt.Sprintf("%g", sim.K3())))
	return nil
}

// =============================================================================
// Logging hook implementations
// =============================================================================

type logSimulationHooks struct {
	logger *log.Logger
}

func (h *logSimulationHooks) OnSweepComplete(_ context.Context, phase string, sweep int, stats observability.SweepStats, volume int, d time.Duration) {
	accepted := 0
	for _, a := range stats.Accepted {
		accepted += a
	}
	h.logger.Debug("sweep complete", "phase", phase, "sweep", sweep,
		"attempts", stats.Attempts, "accepted", accepted, "volume", volume,
		"elapsed", d.Round(time.Millisecond))
}

func (h *logSimulationHooks) OnTune(_ context.Context, k3 float64, diff int) {
	h.logger.Debug("tuned coupling", "k3", k3, "diff", diff)
}

type logGeometryHooks struct {
	logger *log.Logger
}

func (h *logGeometryHooks) OnRebuildComplete(_ context.Context, vertices, halfEdges, triangles int, d time.Duration) {
	h.logger.Debug("geometry rebuilt", "vertices", vertices,
		"halfedges", halfEdges, "triangles", triangles, "elapsed", d.Round(time.Millisecond))
}

func (h *logGeometryHooks) OnExport(_ context.Context, path string) {
	h.logger.Debug("geometry exported", "path", path)
}

type logMeasurementHooks struct {
	logger *log.Logger
}

func (h *logMeasurementHooks) OnMeasureComplete(_ context.Context, name string, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("measurement failed", "observable", name, "err", err)
		return
	}
	h.logger.Debug("measured", "observable", name, "elapsed", d.Round(time.Millisecond))
}

func (h *logMeasurementHooks) OnWrite(_ context.Context, name string, bytes int) {
	h.logger.Debug("wrote data line", "observable", name, "bytes", bytes)
}
