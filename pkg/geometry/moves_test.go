package geometry

import (
	"slices"
	"testing"
)

// snapshot captures the label-independent content of a universe.
type snapshot struct {
	n0, n3, n31 int
	slabSizes   []int
	sliceSizes  []int
	cnumHist    map[int32]int
	scnumHist   map[int32]int
	kinds       map[Kind]int
}

func takeSnapshot(u *Universe) snapshot {
	s := snapshot{
		n0: u.N0(), n3: u.N3(), n31: u.N31(),
		slabSizes:  slices.Clone(u.SlabSizes()),
		sliceSizes: slices.Clone(u.SliceSizes()),
		cnumHist:   map[int32]int{},
		scnumHist:  map[int32]int{},
		kinds:      map[Kind]int{},
	}
	for _, v := range u.verticesAll.Elements() {
		s.cnumHist[u.Vertex(v).Cnum]++
		s.scnumHist[u.Vertex(v).SCnum]++
	}
	for _, t := range u.Tetras() {
		s.kinds[u.Tetra(t).Kind]++
	}
	return s
}

func checkSnapshot(t *testing.T, u *Universe, want snapshot) {
	t.Helper()
	got := takeSnapshot(u)
	if got.n0 != want.n0 || got.n3 != want.n3 || got.n31 != want.n31 {
		t.Errorf("counts = (%d,%d,%d), want (%d,%d,%d)",
			got.n0, got.n31, got.n3, want.n0, want.n31, want.n3)
	}
	if !slices.Equal(got.slabSizes, want.slabSizes) {
		t.Errorf("slab sizes = %v, want %v", got.slabSizes, want.slabSizes)
	}
	if !slices.Equal(got.sliceSizes, want.sliceSizes) {
		t.Errorf("slice sizes = %v, want %v", got.sliceSizes, want.sliceSizes)
	}
	for c, n := range want.cnumHist {
		if got.cnumHist[c] != n {
			t.Errorf("cnum histogram at %d = %d, want %d", c, got.cnumHist[c], n)
		}
	}
	for c, n := range want.scnumHist {
		if got.scnumHist[c] != n {
			t.Errorf("scnum histogram at %d = %d, want %d", c, got.scnumHist[c], n)
		}
	}
	for k, n := range want.kinds {
		if got.kinds[k] != n {
			t.Errorf("%s count = %d, want %d", k, got.kinds[k], n)
		}
	}
}

// findFreshVertex returns the unique vertex created by a preceding
// (2,6)-move: the one with six surrounding tetrahedra.
func findFreshVertex(t *testing.T, u *Universe) Label {
	t.Helper()
	for _, v := range u.verticesAll.Elements() {
		if u.Vertex(v).Cnum == 6 {
			return v
		}
	}
	t.Fatal("no vertex with cnum 6 found")
	return Nil
}

func TestMove26_ThenMove62_RestoresCounters(t *testing.T) {
	u := loadGolden(t, 0)
	before := takeSnapshot(u)

	seed := u.Tetras31()[0]
	if !u.Move26(seed) {
		t.Fatal("Move26() = false on a (3,1) seed")
	}
	if err := u.Validate(); err != nil {
		t.Fatalf("Validate() after Move26 = %v", err)
	}

	if u.N3() != before.n3+4 {
		t.Errorf("N3() after add = %d, want %d", u.N3(), before.n3+4)
	}
	if u.N31() != before.n31+2 {
		t.Errorf("N31() after add = %d, want %d", u.N31(), before.n31+2)
	}
	if u.N0() != before.n0+1 {
		t.Errorf("N0() after add = %d, want %d", u.N0(), before.n0+1)
	}

	vn := findFreshVertex(t, u)
	if u.Vertex(vn).SCnum != 3 {
		t.Errorf("new vertex SCnum = %d, want 3", u.Vertex(vn).SCnum)
	}

	if !u.Move62(vn) {
		t.Fatal("Move62() = false on the fresh vertex")
	}
	if err := u.Validate(); err != nil {
		t.Fatalf("Validate() after Move62 = %v", err)
	}
	checkSnapshot(t, u, before)
}

func TestMove62_WrongCoordination(t *testing.T) {
	u := loadGolden(t, 0)
	before := takeSnapshot(u)

	// Every vertex of the fresh stack has cnum 10 or 12.
	for _, v := range u.verticesAll.Elements() {
		if u.Move62(v) {
			t.Fatalf("Move62(%d) = true on a vertex with cnum %d", v, u.Vertex(v).Cnum)
		}
	}
	checkSnapshot(t, u, before)
}

// flipPair finds two adjacent (3,1)-tetrahedra whose mirrors are also
// adjacent, the structural precondition of the flip move.
func flipPair(u *Universe) (Label, Label, bool) {
	for _, t := range u.Tetras31() {
		tt := u.Tetra(t)
		for i := 0; i < 3; i++ {
			tn := tt.Tnbr[i]
			if !u.Tetra(tn).Is31() {
				continue
			}
			if u.Tetra(tt.Tnbr[3]).NeighborsTetra(u.Tetra(tn).Tnbr[3]) {
				return t, tn, true
			}
		}
	}
	return Nil, Nil, false
}

func TestMove44_DoubleFlipIsIdentity(t *testing.T) {
	u := grownUniverse(t)
	before := takeSnapshot(u)

	// Pick a structurally adjacent (3,1) pair whose new edge (v1,v3)
	// does not exist yet. The pairs inside the fan of a single vertex
	// addition would recreate an existing edge.
	var t012, t230 Label
	ok := false
	for _, t31 := range u.Tetras31() {
		tt := u.Tetra(t31)
		for i := 0; i < 3 && !ok; i++ {
			tn := tt.Tnbr[i]
			if !u.Tetra(tn).Is31() || !u.Tetra(tt.Tnbr[3]).NeighborsTetra(u.Tetra(tn).Tnbr[3]) {
				continue
			}
			if !u.VerticesNeighbor(tt.Vs[i], u.Tetra(tn).VertexOppositeTetra(t31)) {
				t012, t230, ok = t31, tn, true
			}
		}
		if ok {
			break
		}
	}
	if !ok {
		t.Fatal("no flippable pair with a new edge in the grown universe")
	}
	if !u.Move44(t012, t230) {
		t.Fatal("Move44() = false on a valid pair")
	}
	if err := u.Validate(); err != nil {
		t.Fatalf("Validate() after flip = %v", err)
	}
	if u.N3() != before.n3 || u.N31() != before.n31 || u.N0() != before.n0 {
		t.Errorf("flip changed the volume: (%d,%d,%d), want (%d,%d,%d)",
			u.N0(), u.N31(), u.N3(), before.n0, before.n31, before.n3)
	}
	if !slices.Equal(u.SlabSizes(), before.slabSizes) || !slices.Equal(u.SliceSizes(), before.sliceSizes) {
		t.Errorf("flip changed the slab or slice counters")
	}

	// Flipping the freshly created edge again restores the original
	// configuration. The slots are reused, so the same labels name the
	// dual pair.
	if !u.Move44(t012, t230) {
		t.Fatal("second Move44() = false")
	}
	if err := u.Validate(); err != nil {
		t.Fatalf("Validate() after double flip = %v", err)
	}
	checkSnapshot(t, u, before)
}

func TestMove44_StrictnessRejectsDuplicateEdge(t *testing.T) {
	// After one vertex addition the only flippable pairs would recreate
	// an edge of the subdivided base triangle, which the strictness
	// levels forbid: level 2 because an endpoint has minimal spatial
	// coordination, level 3 because the new edge already exists.
	for _, strictness := range []int{2, 3} {
		u := loadGolden(t, strictness)
		if !u.Move26(u.Tetras31()[0]) {
			t.Fatal("Move26() = false")
		}
		before := takeSnapshot(u)

		t012, t230, ok := flipPair(u)
		if !ok {
			t.Fatal("no structurally adjacent pair after Move26")
		}
		if u.Move44(t012, t230) {
			t.Errorf("strictness %d: Move44() = true, want rejection", strictness)
		}
		checkSnapshot(t, u, before)
	}
}

func TestMove23u_ThenMove32u_RestoresCounters(t *testing.T) {
	u := grownUniverse(t)
	before := takeSnapshot(u)

	done := false
	for _, t31 := range slices.Clone(u.Tetras31()) {
		tt := u.Tetra(t31)
		for i := 0; i < 3 && !done; i++ {
			tn := tt.Tnbr[i]
			if !u.Tetra(tn).Is22() {
				continue
			}
			if u.Move23u(t31, tn) {
				done = true
			}
		}
		if done {
			break
		}
	}
	if !done {
		t.Skip("no structurally valid upward shift in the grown universe")
	}
	if err := u.Validate(); err != nil {
		t.Fatalf("Validate() after Move23u = %v", err)
	}
	if u.N3() != before.n3+1 {
		t.Errorf("N3() after shift = %d, want %d", u.N3(), before.n3+1)
	}
	if u.N31() != before.n31 {
		t.Errorf("N31() after shift = %d, want %d", u.N31(), before.n31)
	}

	// Undo through the inverse family.
	undone := false
	for _, t31 := range slices.Clone(u.Tetras31()) {
		tt := u.Tetra(t31)
		for n := 0; n < 3 && !undone; n++ {
			t22l := tt.Tnbr[n]
			t22r := tt.Tnbr[(n+2)%3]
			if !u.Tetra(t22l).Is22() || !u.Tetra(t22r).Is22() || !u.Tetra(t22l).NeighborsTetra(t22r) {
				continue
			}
			shared := 0
			for _, v := range u.Tetra(t22l).Vs {
				if u.Tetra(t22r).HasVertex(v) {
					shared++
				}
			}
			if shared != 3 {
				continue
			}
			if u.Move32u(t31, t22l, t22r) && u.N3() == before.n3 {
				undone = true
			}
		}
		if undone {
			break
		}
	}
	if !undone {
		t.Fatal("no inverse shift restored the tetra count")
	}
	if err := u.Validate(); err != nil {
		t.Fatalf("Validate() after Move32u = %v", err)
	}
	if u.N3() != before.n3 || u.N31() != before.n31 || u.N0() != before.n0 {
		t.Errorf("counts after undo = (%d,%d,%d), want (%d,%d,%d)",
			u.N0(), u.N31(), u.N3(), before.n0, before.n31, before.n3)
	}
}

// grownUniverse returns the golden stack after a few vertex additions,
// big enough for every move family to find valid configurations.
func grownUniverse(t *testing.T) *Universe {
	t.Helper()
	u := loadGolden(t, 0)
	for i := 0; i < 6; i++ {
		if !u.Move26(u.PickTetra31()) {
			t.Fatal("Move26() = false while growing")
		}
	}
	if err := u.Validate(); err != nil {
		t.Fatalf("Validate() after growth = %v", err)
	}
	return u
}

func TestMoves_RandomizedSweepKeepsInvariants(t *testing.T) {
	u := grownUniverse(t)
	rng := u.Rand()

	accepted := 0
	for i := 0; i < 3000; i++ {
		var ok bool
		switch rng.IntN(5) {
		case 0:
			ok = u.Move26(u.PickTetra31())
		case 1:
			v := u.PickVertex()
			ok = u.Move62(v)
		case 2:
			t012 := u.PickTetra31()
			t230 := u.Tetra(t012).Tnbr[rng.IntN(3)]
			if u.Tetra(t230).Is31() &&
				u.Tetra(u.Tetra(t012).Tnbr[3]).NeighborsTetra(u.Tetra(t230).Tnbr[3]) {
				ok = u.Move44(t012, t230)
			}
		case 3:
			t31 := u.PickTetra31()
			tn := u.Tetra(t31).Tnbr[rng.IntN(3)]
			if u.Tetra(tn).Is22() {
				ok = u.Move23u(t31, tn)
			}
		case 4:
			t31 := u.PickTetra31()
			n := rng.IntN(3)
			t22l := u.Tetra(t31).Tnbr[n]
			t22r := u.Tetra(t31).Tnbr[(n+2)%3]
			if u.Tetra(t22l).Is22() && u.Tetra(t22r).Is22() &&
				u.Tetra(t22l).NeighborsTetra(t22r) {
				shared := 0
				for _, v := range u.Tetra(t22l).Vs {
					if u.Tetra(t22r).HasVertex(v) {
						shared++
					}
				}
				if shared == 3 {
					ok = u.Move32u(t31, t22l, t22r)
				}
			}
		}
		if ok {
			accepted++
			if err := u.Validate(); err != nil {
				t.Fatalf("Validate() after accepted move %d: %v", i, err)
			}
		}
	}
	if accepted == 0 {
		t.Error("no move was accepted in 3000 attempts")
	}

	u.UpdateGeometry()
	if err := u.Validate(); err != nil {
		t.Errorf("Validate() with derived state = %v", err)
	}
}
