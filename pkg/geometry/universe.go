package geometry

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// Capacities fixes the pool sizes of a Universe. Labels are array
// subscripts, so capacities bound the largest label and must be chosen
// before the first entity is created.
type Capacities struct {
	Vertices  int
	Tetras    int
	Triangles int
	HalfEdges int
}

// DefaultCapacities returns pool sizes adequate for production runs of
// a few million tetrahedra.
func DefaultCapacities() Capacities {
	return Capacities{
		Vertices:  3_000_000,
		Tetras:    5_000_000,
		Triangles: 1_000_000,
		HalfEdges: 5_000_000,
	}
}

// Universe holds the complete triangulation state: the entity pools,
// the membership bags used for uniform sampling, the per-slice volume
// counters, and the derived connectivity rebuilt by UpdateGeometry.
//
// All mutation goes through Universe methods; measurements consume it
// read-only. A single Universe is driven by a single goroutine.
type Universe struct {
	rng        *rand.Rand
	strictness int

	nSlices    int
	slabSizes  []int
	sliceSizes []int

	vertices  *Pool[Vertex]
	tetras    *Pool[Tetra]
	triangles *Pool[Triangle]
	halfEdges *Pool[HalfEdge]

	tetrasAll   *Bag
	tetras31    *Bag
	verticesAll *Bag

	// Derived state, valid from the last UpdateGeometry until the next
	// mutating move.
	derivedValid    bool
	vertexList      []Label
	halfEdgeList    []Label
	triangleList    []Label
	vertexNeighbors [][]Label
}

// NewUniverse creates an empty universe. The rng is the single seeded
// stream shared by move selection, bag sampling and observables;
// strictness selects the manifold conditions enforced by the moves
// (0 none, 1 no tadpoles, 2 no self-energies, 3 no duplicate spatial
// edges).
func NewUniverse(rng *rand.Rand, strictness int, caps Capacities) *Universe {
	return &Universe{
		rng:         rng,
		strictness:  strictness,
		vertices:    NewPool[Vertex](caps.Vertices),
		tetras:      NewPool[Tetra](caps.Tetras),
		triangles:   NewPool[Triangle](caps.Triangles),
		halfEdges:   NewPool[HalfEdge](caps.HalfEdges),
		tetrasAll:   NewBag(caps.Tetras, rng),
		tetras31:    NewBag(caps.Tetras, rng),
		verticesAll: NewBag(caps.Vertices, rng),
	}
}

// NSlices returns the number of time slices.
func (u *Universe) NSlices() int { return u.nSlices }

// Strictness returns the manifold strictness level.
func (u *Universe) Strictness() int { return u.strictness }

// N3 returns the number of live tetrahedra.
func (u *Universe) N3() int { return u.tetrasAll.Size() }

// N31 returns the number of live (3,1)-tetrahedra.
func (u *Universe) N31() int { return u.tetras31.Size() }

// N0 returns the number of live vertices.
func (u *Universe) N0() int { return u.verticesAll.Size() }

// SlabSizes returns, per slice t, the number of tetrahedra whose lower
// slice is t. The slice aliases internal state; treat it as read-only.
func (u *Universe) SlabSizes() []int { return u.slabSizes }

// SliceSizes returns, per slice t, the number of (3,1)-tetrahedra with
// base in t, which equals the number of spatial triangles in t. The
// slice aliases internal state; treat it as read-only.
func (u *Universe) SliceSizes() []int { return u.sliceSizes }

// Vertex returns the vertex behind l.
func (u *Universe) Vertex(l Label) *Vertex { return u.vertices.At(l) }

// Tetra returns the tetrahedron behind l.
func (u *Universe) Tetra(l Label) *Tetra { return u.tetras.At(l) }

// Triangle returns the derived triangle behind l.
func (u *Universe) Triangle(l Label) *Triangle { return u.triangles.At(l) }

// HalfEdge returns the derived half-edge behind l.
func (u *Universe) HalfEdge(l Label) *HalfEdge { return u.halfEdges.At(l) }

// PickTetra31 returns a uniformly random (3,1)-tetrahedron.
func (u *Universe) PickTetra31() Label { return u.tetras31.Pick() }

// Tetras returns a read-only view of the live tetrahedron labels. The
// slice aliases bag storage and is invalidated by moves.
func (u *Universe) Tetras() []Label { return u.tetrasAll.Elements() }

// Tetras31 returns a read-only view of the live (3,1)-tetrahedron
// labels. The slice aliases bag storage and is invalidated by moves.
func (u *Universe) Tetras31() []Label { return u.tetras31.Elements() }

// PickVertex returns a uniformly random vertex.
func (u *Universe) PickVertex() Label { return u.verticesAll.Pick() }

// Rand returns the engine-wide random stream.
func (u *Universe) Rand() *rand.Rand { return u.rng }

// setTetraVertices assigns the four vertices of t in the conventional
// order and derives Kind and Time from the vertex slices.
func (u *Universe) setTetraVertices(t Label, v0, v1, v2, v3 Label) {
	tt := u.tetras.At(t)
	t0 := u.vertices.At(v0).Time
	t1 := u.vertices.At(v1).Time
	t2 := u.vertices.At(v2).Time
	t3 := u.vertices.At(v3).Time
	switch {
	case t0 == t1 && t0 == t2:
		tt.Kind = ThreeOne
	case t1 == t2 && t1 == t3:
		tt.Kind = OneThree
	case t0 == t1 && t2 == t3:
		tt.Kind = TwoTwo
	default:
		panic(fmt.Sprintf("geometry: vertices %d %d %d %d at times %d %d %d %d form no valid tetra",
			v0, v1, v2, v3, t0, t1, t2, t3))
	}
	if t0 == t3 {
		panic(fmt.Sprintf("geometry: tetra %d %d %d %d does not span two slices", v0, v1, v2, v3))
	}
	tt.Vs = [4]Label{v0, v1, v2, v3}
	tt.Time = t0
}

// setTetraNeighbors assigns the four neighbors of t, Tnbr[i] opposite
// Vs[i].
func (u *Universe) setTetraNeighbors(t Label, n0, n1, n2, n3 Label) {
	u.tetras.At(t).Tnbr = [4]Label{n0, n1, n2, n3}
}

// createVertex allocates a vertex at the given slice and registers it.
func (u *Universe) createVertex(time int32) Label {
	v := u.vertices.Create()
	u.vertices.At(v).Time = time
	u.vertices.At(v).Tetra = Nil
	u.verticesAll.Add(v)
	return v
}

// destroyVertex unregisters and frees v.
func (u *Universe) destroyVertex(v Label) {
	u.verticesAll.Remove(v)
	u.vertices.Destroy(v)
}

// createTetra allocates an unregistered tetrahedron slot. The caller
// sets vertices and neighbors and then registers it with registerTetra
// once the kind is known.
func (u *Universe) createTetra() Label {
	u.derivedValid = false
	t := u.tetras.Create()
	u.tetras.At(t).Hes = [3]Label{Nil, Nil, Nil}
	return t
}

// registerTetra adds t to the membership bags.
func (u *Universe) registerTetra(t Label) {
	u.tetrasAll.Add(t)
	if u.tetras.At(t).Is31() {
		u.tetras31.Add(t)
	}
}

// destroyTetra unregisters and frees t.
func (u *Universe) destroyTetra(t Label) {
	u.tetrasAll.Remove(t)
	if u.tetras.At(t).Is31() {
		u.tetras31.Remove(t)
	}
	u.tetras.Destroy(t)
}

// VertexOpposite returns, in the neighbor of t across the face
// opposite v, the vertex not shared with t.
func (u *Universe) VertexOpposite(t, v Label) Label {
	tt := u.tetras.At(t)
	tn := u.tetras.At(tt.TetraOpposite(v))
	var face [3]Label
	i := 0
	for _, tv := range tt.Vs {
		if tv != v {
			face[i] = tv
			i++
		}
	}
	for _, nv := range tn.Vs {
		if nv != face[0] && nv != face[1] && nv != face[2] {
			return nv
		}
	}
	panic(fmt.Sprintf("geometry: neighbor %v shares all vertices with %v", tn.Vs, tt.Vs))
}

// VerticesNeighbor reports whether v and w are connected by an edge,
// by walking the tetrahedra around v starting from its witness.
func (u *Universe) VerticesNeighbor(v, w Label) bool {
	if v == w {
		return false
	}
	start := u.vertices.At(v).Tetra
	done := []Label{start}
	if u.tetras.At(start).HasVertex(w) {
		return true
	}
	current := []Label{start}
	var next []Label
	for len(current) > 0 {
		for _, tc := range current {
			for _, tn := range u.tetras.At(tc).Tnbr {
				if !u.tetras.At(tn).HasVertex(v) {
					continue
				}
				if !slices.Contains(done, tn) {
					if u.tetras.At(tn).HasVertex(w) {
						return true
					}
					done = append(done, tn)
					next = append(next, tn)
				}
			}
		}
		current, next = next, current[:0]
	}
	return false
}
