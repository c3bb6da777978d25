package geometry

import (
	"slices"
	"testing"
)

func TestUpdateGeometry_Counts(t *testing.T) {
	u := loadGolden(t, 0)
	u.UpdateGeometry()

	if got, want := len(u.HalfEdges()), 3*u.N31(); got != want {
		t.Errorf("len(HalfEdges()) = %d, want %d", got, want)
	}
	if got, want := len(u.Triangles()), u.N31(); got != want {
		t.Errorf("len(Triangles()) = %d, want %d", got, want)
	}
	if got, want := len(u.Vertices()), u.N0(); got != want {
		t.Errorf("len(Vertices()) = %d, want %d", got, want)
	}
}

func TestUpdateGeometry_HalfEdgeInvariants(t *testing.T) {
	u := loadGolden(t, 0)
	u.UpdateGeometry()

	for _, h := range u.HalfEdges() {
		hh := u.HalfEdge(h)
		adj := u.HalfEdge(hh.Adj)
		if adj.Adj != h {
			t.Fatalf("half-edge %d: Adj.Adj = %d, want %d", h, adj.Adj, h)
		}
		if adj.Vs[0] != hh.Vs[1] || adj.Vs[1] != hh.Vs[0] {
			t.Errorf("half-edge %d (%v): Adj runs %v, want the reverse", h, hh.Vs, adj.Vs)
		}
		if u.HalfEdge(u.HalfEdge(hh.Next).Next).Next != h {
			t.Errorf("half-edge %d: next-cycle is not a 3-cycle", h)
		}
		if u.HalfEdge(u.HalfEdge(hh.Prev).Prev).Prev != h {
			t.Errorf("half-edge %d: prev-cycle is not a 3-cycle", h)
		}
		if !u.Tetra(hh.Tetra).Is31() {
			t.Errorf("half-edge %d: owner tetra is %s", h, u.Tetra(hh.Tetra).Kind)
		}
		if u.Vertex(hh.Vs[0]).Time != u.Vertex(hh.Vs[1]).Time {
			t.Errorf("half-edge %d spans slices %d and %d",
				h, u.Vertex(hh.Vs[0]).Time, u.Vertex(hh.Vs[1]).Time)
		}
	}
}

func TestUpdateGeometry_TriangleNeighbors(t *testing.T) {
	u := loadGolden(t, 0)
	u.UpdateGeometry()

	// Each slice of the minimal stack holds exactly two triangles, so
	// all three neighbors of a triangle are its slice partner.
	bySlice := map[int32][]Label{}
	for _, tr := range u.Triangles() {
		bySlice[u.Triangle(tr).Time] = append(bySlice[u.Triangle(tr).Time], tr)
	}
	for time, trs := range bySlice {
		if len(trs) != 2 {
			t.Fatalf("slice %d has %d triangles, want 2", time, len(trs))
		}
		for i, tr := range trs {
			other := trs[1-i]
			for j, nb := range u.Triangle(tr).Trnbr {
				if nb != other {
					t.Errorf("slice %d triangle %d Trnbr[%d] = %d, want %d", time, tr, j, nb, other)
				}
			}
		}
	}
}

func TestUpdateGeometry_VertexNeighbors(t *testing.T) {
	u := loadGolden(t, 0)
	u.UpdateGeometry()

	// Vertex 0 shares a tetrahedron with every other vertex of the
	// two-slice stack.
	got := slices.Clone(u.VertexNeighbors(0))
	slices.Sort(got)
	want := []Label{1, 2, 3, 4, 5}
	if !slices.Equal(got, want) {
		t.Errorf("VertexNeighbors(0) = %v, want %v", got, want)
	}
}

func TestUpdateGeometry_AfterMoves(t *testing.T) {
	u := loadGolden(t, 0)
	for i := 0; i < 4; i++ {
		if !u.Move26(u.PickTetra31()) {
			t.Fatal("Move26() = false")
		}
	}
	u.UpdateGeometry()

	if got, want := len(u.HalfEdges()), 3*u.N31(); got != want {
		t.Errorf("len(HalfEdges()) = %d, want %d", got, want)
	}
	if err := u.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	// A second rebuild must fully replace the derived state.
	u.UpdateGeometry()
	if got, want := len(u.Triangles()), u.N31(); got != want {
		t.Errorf("len(Triangles()) after rebuild = %d, want %d", got, want)
	}
	if err := u.Validate(); err != nil {
		t.Errorf("Validate() after rebuild = %v", err)
	}
}

func TestVerticesNeighbor(t *testing.T) {
	u := loadGolden(t, 0)

	if !u.VerticesNeighbor(0, 3) {
		t.Error("VerticesNeighbor(0, 3) = false, want true")
	}
	if u.VerticesNeighbor(0, 0) {
		t.Error("VerticesNeighbor(0, 0) = true, want false")
	}
}
