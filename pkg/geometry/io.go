package geometry

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/jmbeek/cdt3d/pkg/errors"
)

// intReader pulls whitespace-separated integers off a stream; exact
// line structure is irrelevant.
type intReader struct {
	sc *bufio.Scanner
}

func newIntReader(r io.Reader) *intReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024)
	sc.Split(bufio.ScanWords)
	return &intReader{sc: sc}
}

func (r *intReader) next() (int, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.Atoi(r.sc.Text())
}

// Read builds a universe from a geometry stream in the on-disk format:
// an ordered flag, the vertex count and per-vertex slice indices
// bracketed by a repeated count, then the tetra count and per-tetra
// vertex and neighbor quadruples bracketed by a repeated count.
//
// With ordered=0 the neighbor quadruples carry no particular order and
// are re-sorted so that Tnbr[i] lies opposite Vs[i]. Coordination
// numbers are recomputed from scratch in a single pass.
func Read(r io.Reader, rng *rand.Rand, strictness int, caps Capacities) (*Universe, error) {
	u := NewUniverse(rng, strictness, caps)
	in := newIntReader(r)

	fail := func(err error, what string) (*Universe, error) {
		return nil, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "reading %s", what)
	}

	ordered, err := in.next()
	if err != nil {
		return fail(err, "ordered flag")
	}

	n0, err := in.next()
	if err != nil {
		return fail(err, "vertex count")
	}
	maxTime := 0
	vs := make([]Label, n0)
	for i := 0; i < n0; i++ {
		time, err := in.next()
		if err != nil {
			return fail(err, fmt.Sprintf("vertex %d", i))
		}
		v := u.createVertex(int32(time))
		vs[i] = v
		if time > maxTime {
			maxTime = time
		}
	}
	if sentinel, err := in.next(); err != nil || sentinel != n0 {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "vertex sentinel mismatch: got %d, want %d", sentinel, n0)
	}

	u.nSlices = maxTime + 1
	u.slabSizes = make([]int, u.nSlices)
	u.sliceSizes = make([]int, u.nSlices)

	n3, err := in.next()
	if err != nil {
		return fail(err, "tetra count")
	}
	ts := make([]Label, n3)
	for i := 0; i < n3; i++ {
		ts[i] = u.createTetra()
	}
	for i := 0; i < n3; i++ {
		var tvs [4]int
		for j := 0; j < 4; j++ {
			if tvs[j], err = in.next(); err != nil {
				return fail(err, fmt.Sprintf("tetra %d vertices", i))
			}
			if tvs[j] < 0 || tvs[j] >= n0 {
				return nil, errors.New(errors.ErrCodeInvalidGeometry, "tetra %d references vertex %d of %d", i, tvs[j], n0)
			}
		}
		var tts [4]int
		for j := 0; j < 4; j++ {
			if tts[j], err = in.next(); err != nil {
				return fail(err, fmt.Sprintf("tetra %d neighbors", i))
			}
			if tts[j] < 0 || tts[j] >= n3 {
				return nil, errors.New(errors.ErrCodeInvalidGeometry, "tetra %d references neighbor %d of %d", i, tts[j], n3)
			}
		}

		t := ts[i]
		u.setTetraVertices(t, vs[tvs[0]], vs[tvs[1]], vs[tvs[2]], vs[tvs[3]])
		tt := u.tetras.At(t)
		if tt.Is31() {
			for j := 0; j < 3; j++ {
				u.vertices.At(tt.Vs[j]).Tetra = t
			}
		}
		u.setTetraNeighbors(t, ts[tts[0]], ts[tts[1]], ts[tts[2]], ts[tts[3]])

		u.registerTetra(t)
		u.slabSizes[tt.Time]++
		if tt.Is31() {
			u.sliceSizes[tt.Time]++
		}
	}
	if sentinel, err := in.next(); err != nil || sentinel != n3 {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "tetra sentinel mismatch: got %d, want %d", sentinel, n3)
	}

	if ordered == 0 {
		u.orderNeighbors()
	}
	u.recountCoordination()
	return u, nil
}

// orderNeighbors re-sorts each tetra's neighbors so that Tnbr[i] is
// the one missing Vs[i].
func (u *Universe) orderNeighbors() {
	for _, t := range u.tetrasAll.Elements() {
		tt := u.tetras.At(t)
		nbr := tt.Tnbr
		sorted := [4]Label{Nil, Nil, Nil, Nil}
		for _, tn := range nbr {
			tnt := u.tetras.At(tn)
			for i := 0; i < 4; i++ {
				if !tnt.HasVertex(tt.Vs[i]) {
					sorted[i] = tn
					break
				}
			}
		}
		for i, s := range sorted {
			if s == Nil {
				panic(fmt.Sprintf("geometry: tetra %v has no neighbor opposite vertex %d", tt.Vs, tt.Vs[i]))
			}
		}
		tt.Tnbr = sorted
	}
}

// recountCoordination recomputes Cnum and SCnum for every vertex in
// one pass over the tetrahedra. Used at load time only; the moves
// maintain both incrementally.
func (u *Universe) recountCoordination() {
	for _, v := range u.verticesAll.Elements() {
		vv := u.vertices.At(v)
		vv.Cnum = 0
		vv.SCnum = 0
	}
	for _, t := range u.tetrasAll.Elements() {
		tt := u.tetras.At(t)
		for _, v := range tt.Vs {
			u.vertices.At(v).Cnum++
		}
		if tt.Is31() {
			for i := 0; i < 3; i++ {
				u.vertices.At(tt.Vs[i]).SCnum++
			}
		}
	}
}

// Load reads a geometry file from disk.
func Load(path string, rng *rand.Rand, strictness int, caps Capacities) (*Universe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open geometry %s", path)
	}
	defer f.Close()
	u, err := Read(f, rng, strictness, caps)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "load %s", path)
	}
	return u, nil
}

// Write serializes the triangulation in the on-disk format, always
// with ordered=1. Vertices and tetrahedra are numbered in increasing
// label order, so a freshly loaded universe round-trips verbatim.
func (u *Universe) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	vertexIndex := make(map[Label]int, u.verticesAll.Size())
	vertexOrder := u.vertices.Labels()
	for i, v := range vertexOrder {
		vertexIndex[v] = i
	}
	tetraIndex := make(map[Label]int, u.tetrasAll.Size())
	tetraOrder := u.tetras.Labels()
	for i, t := range tetraOrder {
		tetraIndex[t] = i
	}

	fmt.Fprintln(bw, 1)
	fmt.Fprintln(bw, len(vertexOrder))
	for _, v := range vertexOrder {
		fmt.Fprintln(bw, u.vertices.At(v).Time)
	}
	fmt.Fprintln(bw, len(vertexOrder))
	fmt.Fprintln(bw, len(tetraOrder))
	for _, t := range tetraOrder {
		tt := u.tetras.At(t)
		fmt.Fprintf(bw, "%d %d %d %d\n", vertexIndex[tt.Vs[0]], vertexIndex[tt.Vs[1]], vertexIndex[tt.Vs[2]], vertexIndex[tt.Vs[3]])
		fmt.Fprintf(bw, "%d %d %d %d\n", tetraIndex[tt.Tnbr[0]], tetraIndex[tt.Tnbr[1]], tetraIndex[tt.Tnbr[2]], tetraIndex[tt.Tnbr[3]])
	}
	fmt.Fprintln(bw, len(tetraOrder))
	return bw.Flush()
}

// Export writes the triangulation to path, replacing any existing
// file.
func (u *Universe) Export(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create geometry %s", path)
	}
	if err := u.Write(f); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "write geometry %s", path)
	}
	return f.Close()
}
