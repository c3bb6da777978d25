package geometry

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/jmbeek/cdt3d/pkg/errors"
)

// WriteInitial writes the minimal S¹×S² starting geometry with the
// given number of time slices to w, in the on-disk format with
// ordered=1.
//
// Each slice is the two-triangle 2-sphere on three vertices; each slab
// is filled by eight tetrahedra: one prism over the first triangle
// split into (3,1)+(2,2)+(1,3), and the prism over the second triangle
// split into (3,1)+3×(2,2)+(1,3) so that the lateral diagonals match.
// At least two slices are required; the resulting stack passes
// Validate at strictness levels 0 and 1.
func WriteInitial(w io.Writer, slices int) error {
	if slices < 2 {
		return errors.New(errors.ErrCodeInvalidConfig, "initial geometry needs at least 2 slices, got %d", slices)
	}

	var buf bytes.Buffer
	n0 := 3 * slices
	n3 := 8 * slices

	fmt.Fprintln(&buf, 1)
	fmt.Fprintln(&buf, n0)
	for t := 0; t < slices; t++ {
		for i := 0; i < 3; i++ {
			fmt.Fprintln(&buf, t)
		}
	}
	fmt.Fprintln(&buf, n0)
	fmt.Fprintln(&buf, n3)

	// Per-slab tetra offsets.
	const (
		tA = iota // (3,1) over the first triangle
		tB        // (3,1) over the second triangle
		tC        // (2,2) of the first prism
		tD        // (2,2)
		tE        // (2,2)
		tF        // (2,2)
		tG        // (1,3) under the first upper triangle
		tH        // (1,3) under the second upper triangle
	)
	slab := func(t, offset int) int { return 8*((t+slices)%slices) + offset }

	for t := 0; t < slices; t++ {
		a, b, c := 3*t, 3*t+1, 3*t+2
		up := (t + 1) % slices
		d, e, f := 3*up, 3*up+1, 3*up+2

		vs := [8][4]int{
			tA: {a, b, c, d},
			tB: {a, c, b, e},
			tC: {b, c, d, e},
			tD: {a, b, d, e},
			tE: {a, c, d, f},
			tF: {a, c, e, f},
			tG: {c, d, e, f},
			tH: {a, d, e, f},
		}
		nbr := [8][4]int{
			tA: {slab(t, tC), slab(t, tE), slab(t, tD), slab(t-1, tG)},
			tB: {slab(t, tC), slab(t, tD), slab(t, tF), slab(t-1, tH)},
			tC: {slab(t, tG), slab(t, tD), slab(t, tB), slab(t, tA)},
			tD: {slab(t, tC), slab(t, tH), slab(t, tB), slab(t, tA)},
			tE: {slab(t, tG), slab(t, tH), slab(t, tF), slab(t, tA)},
			tF: {slab(t, tG), slab(t, tH), slab(t, tE), slab(t, tB)},
			tG: {slab(t+1, tA), slab(t, tF), slab(t, tE), slab(t, tC)},
			tH: {slab(t+1, tB), slab(t, tF), slab(t, tE), slab(t, tD)},
		}
		for i := 0; i < 8; i++ {
			fmt.Fprintf(&buf, "%d %d %d %d\n", vs[i][0], vs[i][1], vs[i][2], vs[i][3])
			fmt.Fprintf(&buf, "%d %d %d %d\n", nbr[i][0], nbr[i][1], nbr[i][2], nbr[i][3])
		}
	}
	fmt.Fprintln(&buf, n3)

	_, err := w.Write(buf.Bytes())
	return err
}

// ExportInitial writes the initial geometry for the given slice count
// to path.
func ExportInitial(path string, slices int) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create geometry %s", path)
	}
	if err := WriteInitial(f, slices); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
