package geometry

// Vertex is a point of the triangulation, pinned to one spatial slice.
type Vertex struct {
	// Time is the discrete slice index, 0 <= Time < nSlices.
	Time int32

	// SCnum is the spatial coordination number: the number of
	// same-slice vertices connected to this one through the base of a
	// (3,1)-tetrahedron.
	SCnum int32

	// Cnum is the total coordination number: the number of live
	// tetrahedra containing this vertex.
	Cnum int32

	// Tetra is a witness (3,1)-tetrahedron holding this vertex in its
	// base triangle. It seeds the breadth-first reconstruction of the
	// vertex neighborhood.
	Tetra Label
}
