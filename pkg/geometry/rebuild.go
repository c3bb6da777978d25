package geometry

import (
	"fmt"
	"slices"
)

// UpdateGeometry rebuilds the derived connectivity consumed by
// measurements: vertex adjacency lists, then the per-slice half-edge
// structure, then the spatial triangles. It is called between sweeps,
// never during one; the result stays valid until the next mutating
// move.
func (u *Universe) UpdateGeometry() {
	u.updateVertexData()
	u.updateHalfEdgeData()
	u.updateTriangleData()
	u.derivedValid = true
}

// Vertices returns the live vertex labels collected by the last
// UpdateGeometry.
func (u *Universe) Vertices() []Label { return u.vertexList }

// HalfEdges returns the half-edge labels built by the last
// UpdateGeometry.
func (u *Universe) HalfEdges() []Label { return u.halfEdgeList }

// Triangles returns the triangle labels built by the last
// UpdateGeometry.
func (u *Universe) Triangles() []Label { return u.triangleList }

// VertexNeighbors returns the vertices adjacent to v as of the last
// UpdateGeometry.
func (u *Universe) VertexNeighbors(v Label) []Label { return u.vertexNeighbors[v] }

// updateVertexData walks, for every vertex, the tetrahedra containing
// it (seeded by the witness tetra) and collects the distinct other
// vertices.
func (u *Universe) updateVertexData() {
	u.vertexList = u.vertexList[:0]
	maxLabel := Label(-1)
	for _, v := range u.vertices.Labels() {
		u.vertexList = append(u.vertexList, v)
		if v > maxLabel {
			maxLabel = v
		}
	}

	if cap(u.vertexNeighbors) < int(maxLabel)+1 {
		u.vertexNeighbors = make([][]Label, maxLabel+1)
	} else {
		u.vertexNeighbors = u.vertexNeighbors[:maxLabel+1]
		for i := range u.vertexNeighbors {
			u.vertexNeighbors[i] = nil
		}
	}

	for _, v := range u.vertexList {
		start := u.vertices.At(v).Tetra
		done := []Label{start}
		current := []Label{start}
		var next []Label
		for len(current) > 0 {
			for _, tc := range current {
				for _, tn := range u.tetras.At(tc).Tnbr {
					if !u.tetras.At(tn).HasVertex(v) {
						continue
					}
					if !slices.Contains(done, tn) {
						done = append(done, tn)
						next = append(next, tn)
					}
				}
			}
			current, next = next, current[:0]
		}

		var nbr []Label
		for _, td := range done {
			for _, vd := range u.tetras.At(td).Vs {
				if vd != v && !slices.Contains(nbr, vd) {
					nbr = append(nbr, vd)
				}
			}
		}
		u.vertexNeighbors[v] = nbr
	}
}

// updateHalfEdgeData rebuilds the directed base edges of every
// (3,1)-tetrahedron and pairs opposite half-edges across slabs by
// walking through any chain of (2,2)-tetrahedra between two
// (3,1)-bases sharing a spatial edge.
func (u *Universe) updateHalfEdgeData() {
	for _, h := range u.halfEdgeList {
		u.halfEdges.Destroy(h)
	}
	if u.halfEdges.Size() != 0 {
		panic(fmt.Sprintf("geometry: %d stale half-edges after teardown", u.halfEdges.Size()))
	}
	u.halfEdgeList = u.halfEdgeList[:0]

	for _, t := range u.tetras31.Elements() {
		tt := u.tetras.At(t)
		var these [3]Label
		for i := 0; i < 3; i++ {
			h := u.halfEdges.Create()
			hh := u.halfEdges.At(h)
			hh.Vs = [2]Label{tt.Vs[i], tt.Vs[(i+1)%3]}
			hh.Adj = Nil
			hh.Triangle = Nil
			hh.Tetra = t
			these[i] = h
			u.halfEdgeList = append(u.halfEdgeList, h)
		}
		tt.Hes = these
		for i := 0; i < 3; i++ {
			u.halfEdges.At(these[i]).Next = these[(i+1)%3]
			u.halfEdges.At(these[i]).Prev = these[(i+2)%3]
		}
	}

	for _, t := range u.tetras31.Elements() {
		tt := u.tetras.At(t)
		for i := 0; i < 3; i++ {
			// Walk across the slab, keeping the base edge
			// (Vs[i+1], Vs[i+2]) fixed, until the (3,1) on the other
			// side is reached.
			v := tt.Vs[3]
			tc := tt.TetraOpposite(tt.Vs[i])
			for u.tetras.At(tc).Is22() {
				tct := u.tetras.At(tc)
				tn := tct.TetraOpposite(v)
				if tct.Vs[2] == v {
					v = tct.Vs[3]
				} else {
					v = tct.Vs[2]
				}
				tc = tn
			}
			tct := u.tetras.At(tc)
			if !tct.Is31() {
				panic(fmt.Sprintf("geometry: half-edge walk from %v ended on %s-tetra %v", tt.Vs, tct.Kind, tct.Vs))
			}
			hthis := tt.Hes[(i+1)%3]
			hthat := tct.HalfEdgeTo(u, tt.Vs[(i+1)%3])
			if hthat == Nil {
				panic(fmt.Sprintf("geometry: no opposite half-edge into vertex %d on tetra %v", tt.Vs[(i+1)%3], tct.Vs))
			}
			u.halfEdges.At(hthis).Adj = hthat
			u.halfEdges.At(hthat).Adj = hthis
		}
	}
}

// updateTriangleData rebuilds one spatial triangle per (3,1) base and
// links triangle neighbors through the paired half-edges.
func (u *Universe) updateTriangleData() {
	for _, tr := range u.triangleList {
		u.triangles.Destroy(tr)
	}
	u.triangleList = u.triangleList[:0]

	for _, t := range u.tetras31.Elements() {
		tt := u.tetras.At(t)
		tr := u.triangles.Create()
		trt := u.triangles.At(tr)
		trt.Vs = [3]Label{tt.Vs[0], tt.Vs[1], tt.Vs[2]}
		trt.Time = u.vertices.At(tt.Vs[0]).Time
		trt.Hes = tt.Hes
		for _, h := range tt.Hes {
			u.halfEdges.At(h).Triangle = tr
		}
		u.triangleList = append(u.triangleList, tr)
	}

	for _, tr := range u.triangleList {
		trt := u.triangles.At(tr)
		for i := 0; i < 3; i++ {
			adj := u.halfEdges.At(trt.Hes[i]).Adj
			trt.Trnbr[i] = u.halfEdges.At(adj).Triangle
		}
	}
}
