// Package observables provides the measurement framework of the
// simulation: a small capability set each observable implements, an
// append-only file sink, and a breadth-first toolbox over the vertex
// and dual connectivity graphs derived by the geometry package.
//
// Observables consume the universe read-only, and only between a
// geometry rebuild and the next mutating move.
package observables

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/jmbeek/cdt3d/pkg/errors"
	"github.com/jmbeek/cdt3d/pkg/geometry"
	"github.com/jmbeek/cdt3d/pkg/observability"
)

// Observable computes one measurement line from the current
// triangulation.
type Observable interface {
	// Name identifies the observable and prefixes its data file.
	Name() string

	// Process renders the current measurement as one line of text,
	// without the trailing newline.
	Process(u *geometry.Universe) string
}

// Resetter is implemented by observables carrying state between
// measurements that must be re-initialized at the start of a run.
type Resetter interface {
	Reset()
}

// Sink appends measurement lines to per-observable data files named
// <dir>/<name>-<identifier>.dat.
type Sink struct {
	dir        string
	identifier string
}

// NewSink creates a sink writing into dir with the given file
// identifier. The directory is created if missing.
func NewSink(dir, identifier string) (*Sink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create data dir %s", dir)
	}
	return &Sink{dir: dir, identifier: identifier}, nil
}

// Path returns the data file path for o.
func (s *Sink) Path(o Observable) string {
	return filepath.Join(s.dir, o.Name()+"-"+s.identifier+".dat")
}

// Measure runs one measurement: it processes the observable against
// the universe and appends the resulting line to its data file.
func (s *Sink) Measure(ctx context.Context, o Observable, u *geometry.Universe) error {
	start := time.Now()
	line := o.Process(u)
	err := s.append(o, line)
	observability.Measurement().OnMeasureComplete(ctx, o.Name(), time.Since(start), err)
	if err == nil {
		observability.Measurement().OnWrite(ctx, o.Name(), len(line)+1)
	}
	return err
}

// Clear prepares the observable for a new run: the data file is
// created if absent (existing content is kept, the sink is strictly
// append-only) and any per-observable state is reset.
func (s *Sink) Clear(o Observable) error {
	f, err := os.OpenFile(s.Path(o), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "open %s", s.Path(o))
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "close %s", s.Path(o))
	}
	if r, ok := o.(Resetter); ok {
		r.Reset()
	}
	return nil
}

func (s *Sink) append(o Observable, line string) error {
	f, err := os.OpenFile(s.Path(o), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "open %s", s.Path(o))
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "append to %s", s.Path(o))
	}
	return f.Close()
}
