package observables

import (
	"bytes"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/jmbeek/cdt3d/pkg/geometry"
)

func testUniverse(t *testing.T, timeSlices int) *geometry.Universe {
	t.Helper()
	var buf bytes.Buffer
	if err := geometry.WriteInitial(&buf, timeSlices); err != nil {
		t.Fatalf("WriteInitial(%d) = %v", timeSlices, err)
	}
	rng := rand.New(rand.NewPCG(7, 7))
	caps := geometry.Capacities{Vertices: 4096, Tetras: 32768, Triangles: 8192, HalfEdges: 32768}
	u, err := geometry.Read(&buf, rng, 0, caps)
	if err != nil {
		t.Fatalf("Read() = %v", err)
	}
	u.UpdateGeometry()
	return u
}

func TestSphere(t *testing.T) {
	u := testUniverse(t, 2)
	ex := NewExplorer()

	got := ex.Sphere(u, 0, 1)
	slices.Sort(got)
	want := []geometry.Label{1, 2, 3, 4, 5}
	if !slices.Equal(got, want) {
		t.Errorf("Sphere(0, 1) = %v, want %v", got, want)
	}

	if got := ex.Sphere(u, 0, 2); len(got) != 0 {
		t.Errorf("Sphere(0, 2) = %v, want empty (everything is at distance 1)", got)
	}
}

func TestSphere2d(t *testing.T) {
	u := testUniverse(t, 2)
	ex := NewExplorer()

	got := ex.Sphere2d(u, 0, 1)
	slices.Sort(got)
	want := []geometry.Label{1, 2}
	if !slices.Equal(got, want) {
		t.Errorf("Sphere2d(0, 1) = %v, want %v", got, want)
	}
}

func TestSphere_RestoresScratch(t *testing.T) {
	u := testUniverse(t, 2)
	ex := NewExplorer()

	ex.Sphere(u, 0, 2)
	for i, d := range ex.done {
		if d {
			t.Fatalf("scratch entry %d still set after Sphere()", i)
		}
	}

	// A second call must see clean scratch and produce the same result.
	a := ex.Sphere2d(u, 3, 1)
	b := ex.Sphere2d(u, 3, 1)
	slices.Sort(a)
	slices.Sort(b)
	if !slices.Equal(a, b) {
		t.Errorf("repeated Sphere2d differ: %v vs %v", a, b)
	}
}

func TestSphereDual(t *testing.T) {
	u := testUniverse(t, 2)
	ex := NewExplorer()

	origin := u.Tetras()[0]
	got := ex.SphereDual(u, origin, 1)
	if len(got) != 4 {
		t.Errorf("SphereDual(%d, 1) has %d tetras, want 4", origin, len(got))
	}
	for _, l := range got {
		if !u.Tetra(origin).NeighborsTetra(l) {
			t.Errorf("SphereDual result %d is not a neighbor of %d", l, origin)
		}
	}
}

func TestSphere2dDual(t *testing.T) {
	u := testUniverse(t, 2)
	ex := NewExplorer()

	// Each slice holds exactly two triangles, so the radius-1 dual
	// sphere is the single partner triangle.
	origin := u.Triangles()[0]
	got := ex.Sphere2dDual(u, origin, 1)
	if len(got) != 1 {
		t.Fatalf("Sphere2dDual(%d, 1) = %v, want one triangle", origin, got)
	}
	if u.Triangle(got[0]).Time != u.Triangle(origin).Time {
		t.Errorf("dual sphere left the slice: %d vs %d",
			u.Triangle(got[0]).Time, u.Triangle(origin).Time)
	}
}

func TestDistance(t *testing.T) {
	u := testUniverse(t, 2)
	ex := NewExplorer()

	if got := ex.Distance(u, 0, 0); got != 0 {
		t.Errorf("Distance(0, 0) = %d, want 0", got)
	}
	if got := ex.Distance(u, 0, 4); got != 1 {
		t.Errorf("Distance(0, 4) = %d, want 1", got)
	}
	// The scratch must be clean afterwards.
	for i, d := range ex.done {
		if d {
			t.Fatalf("scratch entry %d still set after Distance()", i)
		}
	}
}

func TestDistanceDual(t *testing.T) {
	u := testUniverse(t, 2)
	ex := NewExplorer()

	t1 := u.Tetras()[0]
	if got := ex.DistanceDual(u, t1, t1); got != 0 {
		t.Errorf("DistanceDual(t, t) = %d, want 0", got)
	}
	t2 := u.Tetra(t1).Tnbr[0]
	if got := ex.DistanceDual(u, t1, t2); got != 1 {
		t.Errorf("DistanceDual to a direct neighbor = %d, want 1", got)
	}
}

func TestDistanceList2d(t *testing.T) {
	u := testUniverse(t, 2)
	ex := NewExplorer()

	got := ex.DistanceList2d(u, 0)
	want := []int{1, 2}
	if !slices.Equal(got, want) {
		t.Errorf("DistanceList2d(0) = %v, want %v", got, want)
	}

	sum := 0
	for _, n := range got {
		sum += n
	}
	if sum != 3 {
		t.Errorf("distance profile sums to %d, want the slice vertex count 3", sum)
	}
}
