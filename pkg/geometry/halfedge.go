package geometry

// HalfEdge is a directed edge of a spatial triangle. Like triangles,
// half-edges are rebuilt from scratch on every UpdateGeometry.
type HalfEdge struct {
	// Vs is the (from, to) vertex pair, both in the same slice.
	Vs [2]Label

	// Next and Prev link the counterclockwise 3-cycle within the
	// owning triangle.
	Next Label
	Prev Label

	// Adj is the oppositely directed half-edge across the shared edge
	// in the neighboring triangle; Adj.Adj == self.
	Adj Label

	// Tetra is the owning (3,1)-tetrahedron.
	Tetra Label

	// Triangle is the owning triangle.
	Triangle Label
}
