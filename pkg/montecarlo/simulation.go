// Package montecarlo drives the Markov chain: it picks moves with
// configured frequencies, applies the Metropolis acceptance test with
// optional volume fixing, tunes the cosmological coupling toward its
// pseudo-critical value, and orchestrates the thermalization and
// measurement phases.
package montecarlo

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jmbeek/cdt3d/pkg/config"
	"github.com/jmbeek/cdt3d/pkg/geometry"
	"github.com/jmbeek/cdt3d/pkg/observability"
	"github.com/jmbeek/cdt3d/pkg/observables"
)

// Move families as reported by AttemptMove.
const (
	MoveNone   = 0
	MoveAdd    = 1
	MoveDelete = 2
	MoveFlip   = 3
	MoveShift  = 4
	MoveIShift = 5
)

// tuning step bands, as fractions of the target volume.
const (
	tuneDelta     = 1e-6
	tuneBandFar   = 0.5
	tuneBandNear  = 0.05
	tuneBandClose = 0.002
	tuneBandDeep  = 0.0001
)

// Simulation is the Metropolis driver for one universe. It owns the
// observable registries and the data sink; the random stream is the
// one shared with the universe.
type Simulation struct {
	u   *geometry.Universe
	cfg *config.Config
	log *log.Logger

	k3 float64

	sink          *observables.Sink
	observables3d []observables.Observable
	observables2d []observables.Observable
}

// New creates a driver for u from the run configuration. The logger
// receives the periodic progress lines.
func New(u *geometry.Universe, cfg *config.Config, sink *observables.Sink, logger *log.Logger) *Simulation {
	return &Simulation{
		u:    u,
		cfg:  cfg,
		log:  logger,
		k3:   cfg.K3,
		sink: sink,
	}
}

// K3 returns the current (possibly tuned) cosmological coupling.
func (s *Simulation) K3() float64 { return s.k3 }

// AddObservable3d registers an observable measured after every sweep.
func (s *Simulation) AddObservable3d(o observables.Observable) {
	s.observables3d = append(s.observables3d, o)
}

// AddObservable2d registers an observable measured whenever a spatial
// slice reaches the 2-d target volume.
func (s *Simulation) AddObservable2d(o observables.Observable) {
	s.observables2d = append(s.observables2d, o)
}

// fixVolume returns the quantity held near the target volume: the
// (3,1)-count or the full tetrahedron count, per volfixswitch.
func (s *Simulation) fixVolume() int {
	if s.cfg.VolFixSwitch == 0 {
		return s.u.N31()
	}
	return s.u.N3()
}

// AttemptMove draws one move from the configured frequencies and tries
// it. The result is the move family, negated when the attempt was
// rejected (by the acceptance test or by a structural precondition).
func (s *Simulation) AttemptMove() int {
	f := s.cfg.MoveFreqs()
	total := f[0] + f[1] + f[2]
	rng := s.u.Rand()

	draw := rng.IntN(total)
	switch {
	case draw < f[0]:
		if rng.IntN(2) == 0 {
			if s.moveAdd() {
				return MoveAdd
			}
			return -MoveAdd
		}
		if s.moveDelete() {
			return MoveDelete
		}
		return -MoveDelete
	case draw < f[0]+f[1]:
		if s.moveFlip() {
			return MoveFlip
		}
		return -MoveFlip
	default:
		up := rng.IntN(2) == 0
		if rng.IntN(2) == 0 {
			if s.moveShift(up) {
				return MoveShift
			}
			return -MoveShift
		}
		if s.moveIShift(up) {
			return MoveIShift
		}
		return -MoveIShift
	}
}

// PerformSweep attempts n moves and tallies acceptance per family.
func (s *Simulation) PerformSweep(n int) observability.SweepStats {
	stats := observability.SweepStats{Attempts: n}
	for i := 0; i < n; i++ {
		m := s.AttemptMove()
		if m > 0 {
			stats.Accepted[m-1]++
		} else {
			stats.Rejected[-m-1]++
		}
	}
	return stats
}

// accept runs the Metropolis test for an acceptance ratio.
func (s *Simulation) accept(ar float64) bool {
	if ar >= 1.0 {
		return true
	}
	return s.u.Rand().Float64() <= ar
}

// addFixFactor is the volume-fixing factor of the add move; the delete
// move uses its reciprocal.
func (s *Simulation) addFixFactor() float64 {
	if s.cfg.TargetVolume <= 0 {
		return 1.0
	}
	eps := s.cfg.Epsilon
	if s.cfg.VolFixSwitch == 0 {
		return math.Exp(4 * eps * float64(s.cfg.TargetVolume-s.u.N31()-1))
	}
	return math.Exp(8 * eps * float64(s.cfg.TargetVolume-s.u.N3()-2))
}

// shiftFixFactor is the volume-fixing factor of the shift move; the
// inverse shift uses its reciprocal. Fixing the (3,1)-count leaves
// shift moves unweighted.
func (s *Simulation) shiftFixFactor() float64 {
	if s.cfg.TargetVolume <= 0 || s.cfg.VolFixSwitch == 0 {
		return 1.0
	}
	return math.Exp(s.cfg.Epsilon * float64(2*s.cfg.TargetVolume-2*s.u.N3()-1))
}

func (s *Simulation) moveAdd() bool {
	t := s.u.PickTetra31()

	n31 := float64(s.u.N31())
	ar := math.Exp(s.cfg.K0-4*s.k3) * n31 / (n31 + 2.0) * s.addFixFactor()
	if !s.accept(ar) {
		return false
	}
	return s.u.Move26(t)
}

func (s *Simulation) moveDelete() bool {
	v := s.u.PickVertex()

	n31 := float64(s.u.N31())
	ar := math.Exp(-s.cfg.K0+4*s.k3) * n31 / (n31 - 2.0) / s.addFixFactor()
	if !s.accept(ar) {
		return false
	}
	return s.u.Move62(v)
}

func (s *Simulation) moveFlip() bool {
	t012 := s.u.PickTetra31()
	t230 := s.u.Tetra(t012).Tnbr[s.u.Rand().IntN(3)]

	if !s.u.Tetra(t230).Is31() {
		return false
	}
	if !s.u.Tetra(s.u.Tetra(t012).Tnbr[3]).NeighborsTetra(s.u.Tetra(t230).Tnbr[3]) {
		return false
	}
	return s.u.Move44(t012, t230)
}

func (s *Simulation) moveShift(up bool) bool {
	rng := s.u.Rand()
	if up {
		t := s.u.PickTetra31()
		tn := s.u.Tetra(t).Tnbr[rng.IntN(3)]
		if !s.u.Tetra(tn).Is22() {
			return false
		}
		if !s.accept(math.Exp(-s.k3) * s.shiftFixFactor()) {
			return false
		}
		return s.u.Move23u(t, tn)
	}

	t := s.u.Tetra(s.u.PickTetra31()).Tnbr[3]
	tn := s.u.Tetra(t).Tnbr[1+rng.IntN(3)]
	if !s.u.Tetra(tn).Is22() {
		return false
	}
	if !s.accept(math.Exp(-s.k3) * s.shiftFixFactor()) {
		return false
	}
	return s.u.Move23d(t, tn)
}

func (s *Simulation) moveIShift(up bool) bool {
	rng := s.u.Rand()
	if up {
		t := s.u.PickTetra31()
		n := rng.IntN(3)
		t22l := s.u.Tetra(t).Tnbr[n]
		t22r := s.u.Tetra(t).Tnbr[(n+2)%3]
		if !s.shiftablePair(t22l, t22r) {
			return false
		}
		if !s.accept(math.Exp(s.k3) / s.shiftFixFactor()) {
			return false
		}
		return s.u.Move32u(t, t22l, t22r)
	}

	t := s.u.Tetra(s.u.PickTetra31()).Tnbr[3]
	n := rng.IntN(3)
	t22l := s.u.Tetra(t).Tnbr[1+n]
	t22r := s.u.Tetra(t).Tnbr[1+(n+2)%3]
	if !s.shiftablePair(t22l, t22r) {
		return false
	}
	if !s.accept(math.Exp(s.k3) / s.shiftFixFactor()) {
		return false
	}
	return s.u.Move32d(t, t22l, t22r)
}

// shiftablePair checks the inverse-shift precondition: both picked
// neighbors are (2,2)-tetrahedra glued to each other along a face.
func (s *Simulation) shiftablePair(t22l, t22r geometry.Label) bool {
	l := s.u.Tetra(t22l)
	r := s.u.Tetra(t22r)
	if !l.Is22() || !r.Is22() {
		return false
	}
	if !l.NeighborsTetra(t22r) {
		return false
	}
	shared := 0
	for _, v := range l.Vs {
		if r.HasVertex(v) {
			shared++
		}
	}
	return shared == 3
}

// Tune nudges the cosmological coupling toward the pseudo-critical
// value reproducing the target volume: the farther the current fixed
// volume is from the target, the larger the step. Inside the deepest
// band the coupling is left alone.
func (s *Simulation) Tune(ctx context.Context) {
	target := s.cfg.TargetVolume
	if target <= 0 {
		return
	}
	diff := target - s.fixVolume()

	var step float64
	abs := diff
	if abs < 0 {
		abs = -abs
	}
	switch {
	case float64(abs) > tuneBandFar*float64(target):
		step = tuneDelta * 1000
	case float64(abs) > tuneBandNear*float64(target):
		step = tuneDelta * 1000
	case float64(abs) > tuneBandClose*float64(target):
		step = tuneDelta * 100
	case float64(abs) > tuneBandDeep*float64(target):
		step = tuneDelta * 20
	default:
		return
	}
	if diff > 0 {
		s.k3 -= step
	} else {
		s.k3 += step
	}
	observability.Simulation().OnTune(ctx, s.k3, diff)
}

// Prepare rebuilds the derived connectivity ahead of measurements.
func (s *Simulation) Prepare(ctx context.Context) {
	start := time.Now()
	s.u.UpdateGeometry()
	observability.Geometry().OnRebuildComplete(ctx,
		len(s.u.Vertices()), len(s.u.HalfEdges()), len(s.u.Triangles()), time.Since(start))
}

// Start runs the full simulation: it clears the observables, performs
// the thermalization sweeps with tuning, then the measurement sweeps.
// After each sweep the 3-d observables are measured; when a 2-d target
// volume is set, moves are attempted until a spatial slice hits it and
// the 2-d observables are measured as well.
func (s *Simulation) Start(ctx context.Context) error {
	for _, o := range s.observables3d {
		if err := s.sink.Clear(o); err != nil {
			return err
		}
	}
	for _, o := range s.observables2d {
		if err := s.sink.Clear(o); err != nil {
			return err
		}
	}

	s.log.Info("starting run",
		"k0", s.cfg.K0, "k3", s.k3, "epsilon", s.cfg.Epsilon,
		"thermal", s.cfg.ThermalSweeps, "sweeps", s.cfg.MeasureSweeps,
		"target", s.cfg.TargetVolume, "target2d", s.cfg.Target2Volume)

	if err := s.phase(ctx, "thermal", s.cfg.ThermalSweeps); err != nil {
		return err
	}
	if err := s.phase(ctx, "measure", s.cfg.MeasureSweeps); err != nil {
		return err
	}
	return nil
}

func (s *Simulation) phase(ctx context.Context, name string, sweeps int) error {
	attempts := 1000 * s.cfg.KSteps
	for i := 0; i < sweeps; i++ {
		total2v := 0
		for _, ss := range s.u.SliceSizes() {
			total2v += ss
		}
		s.log.Info(name, "sweep", i, "volume", s.u.N3(),
			"avgslice", total2v/s.u.NSlices(), "k3", s.k3)

		start := time.Now()
		stats := s.PerformSweep(attempts)
		observability.Simulation().OnSweepComplete(ctx, name, i, stats, s.u.N3(), time.Since(start))

		s.Tune(ctx)

		if i%10 == 0 && s.cfg.OutFile != "" {
			if err := s.u.Export(s.cfg.OutFile); err != nil {
				return err
			}
			observability.Geometry().OnExport(ctx, s.cfg.OutFile)
		}

		if name == "measure" && s.cfg.TargetVolume > 0 {
			for s.fixVolume() != s.cfg.TargetVolume {
				s.AttemptMove()
			}
		}

		s.Prepare(ctx)
		for _, o := range s.observables3d {
			if err := s.sink.Measure(ctx, o, s.u); err != nil {
				return err
			}
		}

		if s.cfg.Target2Volume > 0 {
			for !s.sliceAtTarget() {
				s.AttemptMove()
			}
			s.Prepare(ctx)
			for _, o := range s.observables2d {
				if err := s.sink.Measure(ctx, o, s.u); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *Simulation) sliceAtTarget() bool {
	for _, ss := range s.u.SliceSizes() {
		if ss == s.cfg.Target2Volume {
			return true
		}
	}
	return false
}
