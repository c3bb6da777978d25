// Package observability provides hooks for instrumenting a simulation
// run.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific backends. Consumers register hooks at
// startup to receive events about sweeps, coupling tuning, geometry
// rebuilds and measurements.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the engine free of logging/metrics framework dependencies
//   - Allows different backends (structured logging, metrics, traces)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSimulationHooks(&myHooks{})
//	    // ... run simulation
//	}
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Simulation Hooks
// =============================================================================

// SweepStats summarizes one sweep of move attempts.
type SweepStats struct {
	Attempts int
	// Accepted and Rejected count per move family:
	// add, delete, flip, shift, inverse shift.
	Accepted [5]int
	Rejected [5]int
}

// SimulationHooks receives events from the Metropolis driver.
type SimulationHooks interface {
	// OnSweepComplete records one finished sweep in the given phase
	// ("thermal" or "measure").
	OnSweepComplete(ctx context.Context, phase string, sweep int, stats SweepStats, volume int, duration time.Duration)

	// OnTune records one tuning step of the cosmological coupling.
	OnTune(ctx context.Context, k3 float64, diff int)
}

// =============================================================================
// Geometry Hooks
// =============================================================================

// GeometryHooks receives events from connectivity rebuilds and
// geometry exports.
type GeometryHooks interface {
	// OnRebuildComplete records a finished derived-connectivity rebuild.
	OnRebuildComplete(ctx context.Context, vertices, halfEdges, triangles int, duration time.Duration)

	// OnExport records a geometry export.
	OnExport(ctx context.Context, path string)
}

// =============================================================================
// Measurement Hooks
// =============================================================================

// MeasurementHooks receives events from observable measurements.
type MeasurementHooks interface {
	// OnMeasureComplete records one observable measurement.
	OnMeasureComplete(ctx context.Context, name string, duration time.Duration, err error)

	// OnWrite records a line appended to an observable's data file.
	OnWrite(ctx context.Context, name string, bytes int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSimulationHooks is a no-op implementation of SimulationHooks.
type NoopSimulationHooks struct{}

func (NoopSimulationHooks) OnSweepComplete(context.Context, string, int, SweepStats, int, time.Duration) {
}
func (NoopSimulationHooks) OnTune(context.Context, float64, int) {}

// NoopGeometryHooks is a no-op implementation of GeometryHooks.
type NoopGeometryHooks struct{}

func (NoopGeometryHooks) OnRebuildComplete(context.Context, int, int, int, time.Duration) {}
func (NoopGeometryHooks) OnExport(context.Context, string)                                {}

// NoopMeasurementHooks is a no-op implementation of MeasurementHooks.
type NoopMeasurementHooks struct{}

func (NoopMeasurementHooks) OnMeasureComplete(context.Context, string, time.Duration, error) {}
func (NoopMeasurementHooks) OnWrite(context.Context, string, int)                            {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	simulationHooks  SimulationHooks  = NoopSimulationHooks{}
	geometryHooks    GeometryHooks    = NoopGeometryHooks{}
	measurementHooks MeasurementHooks = NoopMeasurementHooks{}
	hooksMu          sync.RWMutex
)

// SetSimulationHooks registers custom simulation hooks.
// This should be called once at application startup before the run.
func SetSimulationHooks(h SimulationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		simulationHooks = h
	}
}

// SetGeometryHooks registers custom geometry hooks.
// This should be called once at application startup before the run.
func SetGeometryHooks(h GeometryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		geometryHooks = h
	}
}

// SetMeasurementHooks registers custom measurement hooks.
// This should be called once at application startup before the run.
func SetMeasurementHooks(h MeasurementHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		measurementHooks = h
	}
}

// Simulation returns the registered simulation hooks.
func Simulation() SimulationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return simulationHooks
}

// Geometry returns the registered geometry hooks.
func Geometry() GeometryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return geometryHooks
}

// Measurement returns the registered measurement hooks.
func Measurement() MeasurementHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return measurementHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	simulationHooks = NoopSimulationHooks{}
	geometryHooks = NoopGeometryHooks{}
	measurementHooks = NoopMeasurementHooks{}
}
