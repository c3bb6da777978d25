package geometry

import (
	"github.com/jmbeek/cdt3d/pkg/errors"
)

// Validate runs the full invariant sweep: pool/bag agreement, vertex
// distinctness, neighbor reciprocity, shared-vertex counts, kind-index
// compatibility, opposite-vertex consistency, coordination-number
// agreement, counter sums, strictness bounds, and (when derived state
// exists) half-edge and triangle reciprocity.
//
// It is meant for tests, the check command and debugging; the hot path
// relies on the moves maintaining these invariants instead.
func (u *Universe) Validate() error {
	fail := func(format string, args ...any) error {
		return errors.New(errors.ErrCodeInvalidGeometry, format, args...)
	}

	if u.tetrasAll.Size() != u.tetras.Size() {
		return fail("tetra bag holds %d of %d pool entries", u.tetrasAll.Size(), u.tetras.Size())
	}
	if u.verticesAll.Size() != u.vertices.Size() {
		return fail("vertex bag holds %d of %d pool entries", u.verticesAll.Size(), u.vertices.Size())
	}

	n31 := 0
	for _, t := range u.tetrasAll.Elements() {
		tt := u.tetras.At(t)
		if tt.Is31() {
			n31++
			if !u.tetras31.Contains(t) {
				return fail("tetra %d is (3,1) but missing from the (3,1) bag", t)
			}
		} else if u.tetras31.Contains(t) {
			return fail("tetra %d is %s but present in the (3,1) bag", t, tt.Kind)
		}

		for i := 0; i < 4; i++ {
			if !u.vertices.Live(tt.Vs[i]) || !u.verticesAll.Contains(tt.Vs[i]) {
				return fail("tetra %d vertex %d is not live", t, tt.Vs[i])
			}
			for j := i + 1; j < 4; j++ {
				if tt.Vs[i] == tt.Vs[j] {
					return fail("tetra %d repeats vertex %d", t, tt.Vs[i])
				}
			}
		}

		for i := 0; i < 4; i++ {
			tn := tt.Tnbr[i]
			if tn == t {
				return fail("tetra %d neighbors itself", t)
			}
			if !u.tetras.Live(tn) || !u.tetrasAll.Contains(tn) {
				return fail("tetra %d neighbor %d is not live", t, tn)
			}
			tnt := u.tetras.At(tn)
			if !tnt.NeighborsTetra(t) {
				return fail("tetra %d -> %d lacks the reciprocal neighbor link", t, tn)
			}
			shared := 0
			for _, nv := range tnt.Vs {
				if tt.HasVertex(nv) {
					shared++
				}
			}
			if shared != 3 {
				return fail("tetra %d and neighbor %d share %d vertices, want 3", t, tn, shared)
			}

			switch {
			case tt.Is31():
				if i < 3 && !(tnt.Is31() || tnt.Is22()) {
					return fail("(3,1)-tetra %d has %s spatial neighbor %d", t, tnt.Kind, tn)
				}
				if i == 3 && !tnt.Is13() {
					return fail("(3,1)-tetra %d has %s below its base", t, tnt.Kind)
				}
			case tt.Is13():
				if i == 0 && !tnt.Is31() {
					return fail("(1,3)-tetra %d has %s above its base", t, tnt.Kind)
				}
				if i > 0 && !(tnt.Is13() || tnt.Is22()) {
					return fail("(1,3)-tetra %d has %s spatial neighbor %d", t, tnt.Kind, tn)
				}
			}
		}

		for i := 0; i < 4; i++ {
			if tt.TetraOpposite(tt.Vs[i]) != tt.Tnbr[i] {
				return fail("tetra %d neighbor order broken at index %d", t, i)
			}
			back := u.tetras.At(tt.Tnbr[i]).TetraOpposite(u.VertexOpposite(t, tt.Vs[i]))
			if back != t {
				return fail("tetra %d neighbor %d does not point back across the shared face", t, tt.Tnbr[i])
			}
		}
	}
	if n31 != u.tetras31.Size() {
		return fail("found %d (3,1)-tetras, bag holds %d", n31, u.tetras31.Size())
	}

	cnum := make(map[Label]int32)
	scnum := make(map[Label]int32)
	for _, t := range u.tetrasAll.Elements() {
		tt := u.tetras.At(t)
		for _, v := range tt.Vs {
			cnum[v]++
		}
		if tt.Is31() {
			for i := 0; i < 3; i++ {
				scnum[tt.Vs[i]]++
			}
		}
	}
	for _, v := range u.verticesAll.Elements() {
		vv := u.vertices.At(v)
		if vv.Cnum != cnum[v] {
			return fail("vertex %d carries cnum %d, actual %d", v, vv.Cnum, cnum[v])
		}
		if vv.SCnum != scnum[v] {
			return fail("vertex %d carries scnum %d, actual %d", v, vv.SCnum, scnum[v])
		}
		if !u.tetras.Live(vv.Tetra) {
			return fail("vertex %d witness tetra %d is not live", v, vv.Tetra)
		}
		wt := u.tetras.At(vv.Tetra)
		if !wt.Is31() {
			return fail("vertex %d witness tetra %d is %s, want (3,1)", v, vv.Tetra, wt.Kind)
		}
		if wt.Vs[0] != v && wt.Vs[1] != v && wt.Vs[2] != v {
			return fail("vertex %d is not in the base of witness tetra %d", v, vv.Tetra)
		}
		if u.strictness == 1 && vv.SCnum < 2 {
			return fail("vertex %d has scnum %d under strictness 1", v, vv.SCnum)
		}
		if u.strictness >= 2 && vv.SCnum < 3 {
			return fail("vertex %d has scnum %d under strictness %d", v, vv.SCnum, u.strictness)
		}
	}

	sliceSum, slabSum := 0, 0
	for _, s := range u.sliceSizes {
		sliceSum += s
	}
	for _, s := range u.slabSizes {
		slabSum += s
	}
	if sliceSum != u.tetras31.Size() {
		return fail("slice sizes sum to %d, want %d", sliceSum, u.tetras31.Size())
	}
	if slabSum != u.tetrasAll.Size() {
		return fail("slab sizes sum to %d, want %d", slabSum, u.tetrasAll.Size())
	}
	n13 := 0
	for _, t := range u.tetrasAll.Elements() {
		if u.tetras.At(t).Is13() {
			n13++
		}
	}
	if n13 != u.tetras31.Size() {
		return fail("found %d (1,3)-tetras for %d (3,1)-tetras", n13, u.tetras31.Size())
	}

	return u.validateDerived()
}

// validateDerived checks the half-edge and triangle structure built by
// the last UpdateGeometry, if any.
func (u *Universe) validateDerived() error {
	fail := func(format string, args ...any) error {
		return errors.New(errors.ErrCodeInvalidGeometry, format, args...)
	}
	if !u.derivedValid {
		return nil
	}
	if len(u.halfEdgeList) != 3*u.tetras31.Size() {
		return fail("%d half-edges for %d (3,1)-tetras", len(u.halfEdgeList), u.tetras31.Size())
	}
	if len(u.triangleList) != u.tetras31.Size() {
		return fail("%d triangles for %d (3,1)-tetras", len(u.triangleList), u.tetras31.Size())
	}
	for _, h := range u.halfEdgeList {
		hh := u.halfEdges.At(h)
		if u.halfEdges.At(hh.Adj).Adj != h {
			return fail("half-edge %d adjacency is not involutive", h)
		}
		if u.halfEdges.At(u.halfEdges.At(u.halfEdges.At(h).Next).Next).Next != h {
			return fail("half-edge %d next-cycle is not a 3-cycle", h)
		}
		if u.halfEdges.At(u.halfEdges.At(u.halfEdges.At(h).Prev).Prev).Prev != h {
			return fail("half-edge %d prev-cycle is not a 3-cycle", h)
		}
	}
	for _, tr := range u.triangleList {
		trt := u.triangles.At(tr)
		for _, trn := range trt.Trnbr {
			back := false
			for _, b := range u.triangles.At(trn).Trnbr {
				if b == tr {
					back = true
				}
			}
			if !back {
				return fail("triangle %d neighbor %d lacks the reciprocal link", tr, trn)
			}
		}
	}
	return nil
}
