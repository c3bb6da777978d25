package geometry

import "fmt"

// Kind classifies a tetrahedron by how many of its vertices lie in the
// lower of the two slices it spans.
type Kind uint8

const (
	// ThreeOne has three vertices in slice t and its apex in t+1.
	ThreeOne Kind = iota
	// OneThree is the timewise mirror of ThreeOne.
	OneThree
	// TwoTwo has two vertices in each of the two slices.
	TwoTwo
)

// String returns the conventional shorthand ("31", "13", "22").
func (k Kind) String() string {
	switch k {
	case ThreeOne:
		return "31"
	case OneThree:
		return "13"
	case TwoTwo:
		return "22"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Tetra is a 3-simplex spanning two adjacent slices.
//
// Vertex order is the payload of Kind:
//
//	(3,1): Vs[0..2] lower base in cyclic order, Vs[3] upper apex
//	(1,3): Vs[0] lower apex, Vs[1..3] upper base
//	(2,2): Vs[0..1] lower pair, Vs[2..3] upper pair
//
// Tnbr[i] is the neighboring tetrahedron opposite Vs[i], i.e. across
// the face not containing Vs[i].
type Tetra struct {
	Kind Kind

	// Time is the lower of the two slices the tetrahedron spans.
	Time int32

	Vs   [4]Label
	Tnbr [4]Label

	// Hes holds, for a (3,1) only and only between geometry rebuilds,
	// the three directed base edges Vs[0]->Vs[1], Vs[1]->Vs[2],
	// Vs[2]->Vs[0].
	Hes [3]Label
}

// Is31 reports whether the tetrahedron is of kind (3,1).
func (t *Tetra) Is31() bool { return t.Kind == ThreeOne }

// Is13 reports whether the tetrahedron is of kind (1,3).
func (t *Tetra) Is13() bool { return t.Kind == OneThree }

// Is22 reports whether the tetrahedron is of kind (2,2).
func (t *Tetra) Is22() bool { return t.Kind == TwoTwo }

// HasVertex reports whether v is one of the four vertices.
func (t *Tetra) HasVertex(v Label) bool {
	return t.Vs[0] == v || t.Vs[1] == v || t.Vs[2] == v || t.Vs[3] == v
}

// NeighborsTetra reports whether o is one of the four neighbors.
func (t *Tetra) NeighborsTetra(o Label) bool {
	return t.Tnbr[0] == o || t.Tnbr[1] == o || t.Tnbr[2] == o || t.Tnbr[3] == o
}

// TetraOpposite returns the neighbor across the face opposite v.
// The vertex must belong to the tetrahedron.
func (t *Tetra) TetraOpposite(v Label) Label {
	for i, tv := range t.Vs {
		if tv == v {
			return t.Tnbr[i]
		}
	}
	panic(fmt.Sprintf("geometry: tetra %v does not contain vertex %d", t.Vs, v))
}

// VertexOppositeTetra returns the vertex whose opposite neighbor is tn.
// The tetrahedron must actually neighbor tn.
func (t *Tetra) VertexOppositeTetra(tn Label) Label {
	for i, n := range t.Tnbr {
		if n == tn {
			return t.Vs[i]
		}
	}
	panic(fmt.Sprintf("geometry: tetra %v has no neighbor %d", t.Vs, tn))
}

// ExchangeTetraOpposite replaces the neighbor opposite v with tn,
// preserving the neighbor-opposite-Vs[i] ordering.
func (t *Tetra) ExchangeTetraOpposite(v, tn Label) {
	for i, tv := range t.Vs {
		if tv == v {
			t.Tnbr[i] = tn
			return
		}
	}
	panic(fmt.Sprintf("geometry: tetra %v does not contain vertex %d", t.Vs, v))
}

// HalfEdgeFrom returns the base half-edge starting at v, or Nil.
// Meaningful only on a (3,1) after a geometry rebuild.
func (t *Tetra) HalfEdgeFrom(u *Universe, v Label) Label {
	for _, h := range t.Hes {
		if u.halfEdges.At(h).Vs[0] == v {
			return h
		}
	}
	return Nil
}

// HalfEdgeTo returns the base half-edge ending at v, or Nil.
// Meaningful only on a (3,1) after a geometry rebuild.
func (t *Tetra) HalfEdgeTo(u *Universe, v Label) Label {
	for _, h := range t.Hes {
		if u.halfEdges.At(h).Vs[1] == v {
			return h
		}
	}
	return Nil
}
