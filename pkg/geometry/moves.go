package geometry

import "fmt"

// The five move families. Every move validates its structural
// preconditions before the first mutation, so a false return always
// leaves the universe untouched. Coordination numbers, bags, the
// witness tetra of every touched vertex and the slab/slice counters
// are maintained incrementally.

// Move26 performs the (2,6)-move: it subdivides the base triangle of
// the (3,1)-tetrahedron t (and of its (1,3) mirror below) by a new
// vertex, replacing the pair with three (3,1)- and three
// (1,3)-tetrahedra arranged around it.
func (u *Universe) Move26(t Label) bool {
	tt := u.tetras.At(t)
	if !tt.Is31() {
		panic(fmt.Sprintf("geometry: move26 on %s-tetra %v", tt.Kind, tt.Vs))
	}
	time := tt.Time
	tv := tt.Tnbr[3]
	tvt := u.tetras.At(tv)
	if !tvt.Is13() {
		panic(fmt.Sprintf("geometry: move26 mirror is %s-tetra %v", tvt.Kind, tvt.Vs))
	}

	v0, v1, v2, vt := tt.Vs[0], tt.Vs[1], tt.Vs[2], tt.Vs[3]
	vb := tvt.Vs[0]

	to0 := tt.TetraOpposite(v0)
	to1 := tt.TetraOpposite(v1)
	to2 := tt.TetraOpposite(v2)
	tvo0 := tvt.TetraOpposite(v0)
	tvo1 := tvt.TetraOpposite(v1)
	tvo2 := tvt.TetraOpposite(v2)

	vn := u.createVertex(time)
	nv := u.vertices.At(vn)
	nv.SCnum = 3
	nv.Cnum = 6

	tn01 := u.createTetra()
	tn12 := u.createTetra()
	tn20 := u.createTetra()
	tvn01 := u.createTetra()
	tvn12 := u.createTetra()
	tvn20 := u.createTetra()

	u.setTetraVertices(tn01, v0, v1, vn, vt)
	u.setTetraVertices(tn12, v1, v2, vn, vt)
	u.setTetraVertices(tn20, v2, v0, vn, vt)
	u.setTetraVertices(tvn01, vb, v0, v1, vn)
	u.setTetraVertices(tvn12, vb, v1, v2, vn)
	u.setTetraVertices(tvn20, vb, v2, v0, vn)

	u.setTetraNeighbors(tn01, tn12, tn20, to2, tvn01)
	u.setTetraNeighbors(tn12, tn20, tn01, to0, tvn12)
	u.setTetraNeighbors(tn20, tn01, tn12, to1, tvn20)
	u.setTetraNeighbors(tvn01, tn01, tvn12, tvn20, tvo2)
	u.setTetraNeighbors(tvn12, tn12, tvn20, tvn01, tvo0)
	u.setTetraNeighbors(tvn20, tn20, tvn01, tvn12, tvo1)

	for _, n := range []Label{tn01, tn12, tn20, tvn01, tvn12, tvn20} {
		u.registerTetra(n)
	}

	u.tetras.At(to0).ExchangeTetraOpposite(u.VertexOpposite(t, v0), tn12)
	u.tetras.At(to1).ExchangeTetraOpposite(u.VertexOpposite(t, v1), tn20)
	u.tetras.At(to2).ExchangeTetraOpposite(u.VertexOpposite(t, v2), tn01)
	u.tetras.At(tvo0).ExchangeTetraOpposite(u.VertexOpposite(tv, v0), tvn12)
	u.tetras.At(tvo1).ExchangeTetraOpposite(u.VertexOpposite(tv, v1), tvn20)
	u.tetras.At(tvo2).ExchangeTetraOpposite(u.VertexOpposite(tv, v2), tvn01)

	u.slabSizes[time] += 2
	u.slabSizes[(int(time)-1+u.nSlices)%u.nSlices] += 2
	u.sliceSizes[time] += 2

	u.destroyTetra(t)
	u.destroyTetra(tv)

	nv.Tetra = tn01
	u.vertices.At(v0).Tetra = tn01
	u.vertices.At(v1).Tetra = tn12
	u.vertices.At(v2).Tetra = tn20

	for _, v := range []Label{v0, v1, v2} {
		vv := u.vertices.At(v)
		vv.SCnum++
		vv.Cnum += 2
	}
	u.vertices.At(vt).Cnum += 2
	u.vertices.At(vb).Cnum += 2

	return true
}

// Move62 performs the inverse (6,2)-move: it removes the vertex v,
// which must have exactly six surrounding tetrahedra and three spatial
// neighbors, collapsing them to one (3,1)/(1,3) pair. Under
// strictness levels the spatial neighbors must keep enough
// coordination to avoid tadpole and self-energy configurations.
func (u *Universe) Move62(v Label) bool {
	vv := u.vertices.At(v)
	if vv.Cnum != 6 || vv.SCnum != 3 {
		return false
	}
	time := vv.Time

	t01 := vv.Tetra
	t01t := u.tetras.At(t01)
	tv01 := t01t.Tnbr[3]

	vpos := -1
	for i := 0; i < 3; i++ {
		if t01t.Vs[i] == v {
			vpos = i
			break
		}
	}
	if vpos < 0 {
		panic(fmt.Sprintf("geometry: witness tetra %v lacks vertex %d in base", t01t.Vs, v))
	}

	v0 := t01t.Vs[(vpos+1)%3]
	v1 := t01t.Vs[(vpos+2)%3]
	v2 := u.VertexOpposite(t01, v0)
	t12 := t01t.TetraOpposite(v0)
	t20 := t01t.TetraOpposite(v1)
	tv01t := u.tetras.At(tv01)
	tv12 := tv01t.TetraOpposite(v0)
	tv20 := tv01t.TetraOpposite(v1)

	if !t01t.Is31() || !u.tetras.At(t12).Is31() || !u.tetras.At(t20).Is31() ||
		!tv01t.Is13() || !u.tetras.At(tv12).Is13() || !u.tetras.At(tv20).Is13() {
		return false
	}

	switch {
	case u.strictness == 1:
		if u.vertices.At(v0).SCnum < 3 || u.vertices.At(v1).SCnum < 3 || u.vertices.At(v2).SCnum < 3 {
			return false
		}
	case u.strictness >= 2:
		if u.vertices.At(v0).SCnum < 4 || u.vertices.At(v1).SCnum < 4 || u.vertices.At(v2).SCnum < 4 {
			return false
		}
	}

	to01 := t01t.TetraOpposite(v)
	to12 := u.tetras.At(t12).TetraOpposite(v)
	to20 := u.tetras.At(t20).TetraOpposite(v)
	tvo01 := tv01t.TetraOpposite(v)
	tvo12 := u.tetras.At(tv12).TetraOpposite(v)
	tvo20 := u.tetras.At(tv20).TetraOpposite(v)

	vt := t01t.Vs[3]
	vb := tv01t.Vs[0]

	tn := u.createTetra()
	tvn := u.createTetra()
	u.setTetraVertices(tn, v0, v1, v2, vt)
	u.setTetraVertices(tvn, vb, v0, v1, v2)
	u.setTetraNeighbors(tn, to12, to20, to01, tvn)
	u.setTetraNeighbors(tvn, tn, tvo12, tvo20, tvo01)
	u.registerTetra(tn)
	u.registerTetra(tvn)

	for _, w := range []Label{v0, v1, v2} {
		wv := u.vertices.At(w)
		wv.Tetra = tn
		wv.SCnum--
		wv.Cnum -= 2
	}
	u.vertices.At(vt).Cnum -= 2
	u.vertices.At(vb).Cnum -= 2

	u.tetras.At(to01).ExchangeTetraOpposite(u.VertexOpposite(t01, v), tn)
	u.tetras.At(to12).ExchangeTetraOpposite(u.VertexOpposite(t12, v), tn)
	u.tetras.At(to20).ExchangeTetraOpposite(u.VertexOpposite(t20, v), tn)
	u.tetras.At(tvo01).ExchangeTetraOpposite(u.VertexOpposite(tv01, v), tvn)
	u.tetras.At(tvo12).ExchangeTetraOpposite(u.VertexOpposite(tv12, v), tvn)
	u.tetras.At(tvo20).ExchangeTetraOpposite(u.VertexOpposite(tv20, v), tvn)

	for _, old := range []Label{t01, t12, t20, tv01, tv12, tv20} {
		u.destroyTetra(old)
	}
	u.destroyVertex(v)

	u.slabSizes[time] -= 2
	u.slabSizes[(int(time)-1+u.nSlices)%u.nSlices] -= 2
	u.sliceSizes[time] -= 2

	return true
}

// Move44 performs the (4,4)-move: it flips the spatial edge shared by
// the (3,1)-tetrahedra t012 and t230 (and the mirrored edge of their
// (1,3) partners), replacing edge (v0,v2) with (v1,v3). The move is
// volume preserving and reuses all four tetra slots.
func (u *Universe) Move44(t012, t230 Label) bool {
	a := u.tetras.At(t012)
	b := u.tetras.At(t230)

	v1 := a.VertexOppositeTetra(t230)
	v3 := b.VertexOppositeTetra(t012)
	var v0, v2 Label
	for i := 0; i < 3; i++ {
		if a.Vs[i] == v1 {
			v2 = a.Vs[(i+1)%3]
			v0 = a.Vs[(i+2)%3]
			break
		}
	}

	tv012 := a.Tnbr[3]
	tv230 := b.Tnbr[3]

	if u.strictness >= 1 && v1 == v3 {
		return false
	}
	if u.strictness >= 2 && (u.vertices.At(v0).SCnum == 3 || u.vertices.At(v2).SCnum == 3) {
		return false
	}
	if u.strictness >= 3 && u.VerticesNeighbor(v1, v3) {
		return false
	}

	vt := a.Vs[3]
	vb := u.tetras.At(tv012).Vs[0]

	ta01 := a.TetraOpposite(v2)
	ta12 := a.TetraOpposite(v0)
	ta23 := b.TetraOpposite(v0)
	ta30 := b.TetraOpposite(v2)
	tva01 := u.tetras.At(tv012).TetraOpposite(v2)
	tva12 := u.tetras.At(tv012).TetraOpposite(v0)
	tva23 := u.tetras.At(tv230).TetraOpposite(v0)
	tva30 := u.tetras.At(tv230).TetraOpposite(v2)

	if ta01 == t230 || ta23 == t012 || tva01 == tv230 || tva23 == tv012 {
		return false
	}

	u.derivedValid = false

	// Capture the rewiring keys before any vertex arrays change.
	k01 := u.VertexOpposite(t012, v2)
	k23 := u.VertexOpposite(t230, v0)
	kv01 := u.VertexOpposite(tv012, v2)
	kv23 := u.VertexOpposite(tv230, v0)

	// Reuse the four slots for the flipped configuration.
	tn013, tn123 := t230, t012
	tvn013, tvn123 := tv230, tv012
	u.setTetraVertices(tn013, v0, v1, v3, vt)
	u.setTetraVertices(tn123, v1, v2, v3, vt)
	u.setTetraVertices(tvn013, vb, v0, v1, v3)
	u.setTetraVertices(tvn123, vb, v1, v2, v3)

	u.setTetraNeighbors(tn013, tn123, ta30, ta01, tvn013)
	u.setTetraNeighbors(tn123, ta23, tn013, ta12, tvn123)
	u.setTetraNeighbors(tvn013, tn013, tvn123, tva30, tva01)
	u.setTetraNeighbors(tvn123, tn123, tva23, tvn013, tva12)

	u.tetras.At(ta01).ExchangeTetraOpposite(k01, tn013)
	u.tetras.At(ta23).ExchangeTetraOpposite(k23, tn123)
	u.tetras.At(tva01).ExchangeTetraOpposite(kv01, tvn013)
	u.tetras.At(tva23).ExchangeTetraOpposite(kv23, tvn123)

	u.vertices.At(v0).SCnum--
	u.vertices.At(v1).SCnum++
	u.vertices.At(v2).SCnum--
	u.vertices.At(v3).SCnum++
	u.vertices.At(v0).Cnum -= 2
	u.vertices.At(v1).Cnum += 2
	u.vertices.At(v2).Cnum -= 2
	u.vertices.At(v3).Cnum += 2
	u.vertices.At(v0).Tetra = tn013
	u.vertices.At(v1).Tetra = tn013
	u.vertices.At(v2).Tetra = tn123
	u.vertices.At(v3).Tetra = tn123

	return true
}

// Move23u performs the upward (2,3)-move: the (3,1)-tetrahedron t31
// and the adjacent (2,2) t22 are replaced by one (3,1) and two (2,2)s
// around a new timelike edge. The tetra count grows by one.
func (u *Universe) Move23u(t31, t22 Label) bool {
	a := u.tetras.At(t31)
	c := u.tetras.At(t22)

	v0 := a.VertexOppositeTetra(t22)
	v1 := c.VertexOppositeTetra(t31)
	v0pos := -1
	for i := 0; i < 3; i++ {
		if a.Vs[i] == v0 {
			v0pos = i
			break
		}
	}
	if v0pos < 0 {
		panic(fmt.Sprintf("geometry: move23u pivot %d not in base of %v", v0, a.Vs))
	}
	v2 := a.Vs[(v0pos+1)%3]
	v4 := a.Vs[(v0pos+2)%3]
	v3 := a.Vs[3]

	ta023 := a.TetraOpposite(v4)
	ta034 := a.TetraOpposite(v2)
	ta123 := c.TetraOpposite(v4)
	ta124 := c.TetraOpposite(v3)
	ta134 := c.TetraOpposite(v2)

	if u.tetras.At(ta023).HasVertex(v1) || u.tetras.At(ta123).HasVertex(v0) ||
		u.tetras.At(ta034).HasVertex(v1) || u.tetras.At(ta134).HasVertex(v0) ||
		u.VerticesNeighbor(v0, v1) {
		return false
	}

	below := a.Tnbr[3]
	k023 := u.VertexOpposite(t31, v4)
	k034 := u.VertexOpposite(t31, v2)
	k123 := u.VertexOpposite(t22, v4)
	k124 := u.VertexOpposite(t22, v3)
	k134 := u.VertexOpposite(t22, v2)

	tn31 := u.createTetra()
	tn22l := u.createTetra()
	tn22r := u.createTetra()
	u.setTetraVertices(tn31, v0, v2, v4, v1)
	u.setTetraVertices(tn22l, v0, v2, v1, v3)
	u.setTetraVertices(tn22r, v0, v4, v1, v3)
	u.setTetraNeighbors(tn31, ta124, tn22r, tn22l, below)
	u.setTetraNeighbors(tn22l, ta123, tn22r, ta023, tn31)
	u.setTetraNeighbors(tn22r, ta134, tn22l, ta034, tn31)
	u.registerTetra(tn31)
	u.registerTetra(tn22l)
	u.registerTetra(tn22r)

	u.slabSizes[u.tetras.At(tn31).Time]++

	u.tetras.At(below).ExchangeTetraOpposite(u.tetras.At(below).Vs[0], tn31)
	u.tetras.At(ta023).ExchangeTetraOpposite(k023, tn22l)
	u.tetras.At(ta034).ExchangeTetraOpposite(k034, tn22r)
	u.tetras.At(ta123).ExchangeTetraOpposite(k123, tn22l)
	u.tetras.At(ta124).ExchangeTetraOpposite(k124, tn31)
	u.tetras.At(ta134).ExchangeTetraOpposite(k134, tn22r)

	u.vertices.At(v0).Cnum += 2
	u.vertices.At(v1).Cnum += 2

	u.destroyTetra(t31)
	u.destroyTetra(t22)

	nt := u.tetras.At(tn31)
	for i := 0; i < 3; i++ {
		u.vertices.At(nt.Vs[i]).Tetra = tn31
	}
	return true
}

// Move32u performs the upward (3,2)-move, the inverse of Move23u: the
// (3,1)-tetrahedron t31 and the two mutually adjacent (2,2)s t22l and
// t22r collapse to a (3,1)/(2,2) pair, removing a timelike edge. The
// tetra count shrinks by one.
func (u *Universe) Move32u(t31, t22l, t22r Label) bool {
	a := u.tetras.At(t31)
	l := u.tetras.At(t22l)
	r := u.tetras.At(t22r)

	v1 := a.Vs[3]
	v3 := l.VertexOppositeTetra(t31)
	v4 := a.VertexOppositeTetra(t22l)
	v4pos := -1
	for i := 0; i < 3; i++ {
		if a.Vs[i] == v4 {
			v4pos = i
			break
		}
	}
	if v4pos < 0 {
		panic(fmt.Sprintf("geometry: move32u pivot %d not in base of %v", v4, a.Vs))
	}
	v0 := a.Vs[(v4pos+1)%3]
	v2 := a.Vs[(v4pos+2)%3]

	ta023 := l.TetraOpposite(v1)
	ta034 := r.TetraOpposite(v1)
	ta123 := l.TetraOpposite(v0)
	ta124 := a.TetraOpposite(v0)
	ta134 := r.TetraOpposite(v0)

	if u.tetras.At(ta023).HasVertex(v4) || u.tetras.At(ta123).HasVertex(v4) ||
		u.tetras.At(ta034).HasVertex(v2) || u.tetras.At(ta124).HasVertex(v3) ||
		u.tetras.At(ta134).HasVertex(v2) {
		return false
	}

	below := a.Tnbr[3]
	k023 := u.VertexOpposite(t22l, v1)
	k034 := u.VertexOpposite(t22r, v1)
	k123 := u.VertexOpposite(t22l, v0)
	k124 := u.VertexOpposite(t31, v0)
	k134 := u.VertexOpposite(t22r, v0)

	tn31 := u.createTetra()
	tn22 := u.createTetra()
	u.setTetraVertices(tn31, v0, v2, v4, v3)
	u.setTetraVertices(tn22, v2, v4, v1, v3)
	u.setTetraNeighbors(tn31, tn22, ta034, ta023, below)
	u.setTetraNeighbors(tn22, ta134, ta123, tn31, ta124)
	u.registerTetra(tn31)
	u.registerTetra(tn22)

	u.tetras.At(below).ExchangeTetraOpposite(u.tetras.At(below).Vs[0], tn31)
	u.tetras.At(ta023).ExchangeTetraOpposite(k023, tn31)
	u.tetras.At(ta034).ExchangeTetraOpposite(k034, tn31)
	u.tetras.At(ta123).ExchangeTetraOpposite(k123, tn22)
	u.tetras.At(ta124).ExchangeTetraOpposite(k124, tn22)
	u.tetras.At(ta134).ExchangeTetraOpposite(k134, tn22)

	u.vertices.At(v0).Cnum -= 2
	u.vertices.At(v1).Cnum -= 2

	u.destroyTetra(t31)
	u.destroyTetra(t22l)
	u.destroyTetra(t22r)

	u.slabSizes[u.tetras.At(tn31).Time]--

	nt := u.tetras.At(tn31)
	for i := 0; i < 3; i++ {
		u.vertices.At(nt.Vs[i]).Tetra = tn31
	}
	return true
}

// Move23d performs the downward (2,3)-move, acting on the slab below:
// t13 is a (1,3)-tetrahedron and t22 an adjacent (2,2) in its slab.
func (u *Universe) Move23d(t13, t22 Label) bool {
	d := u.tetras.At(t13)
	c := u.tetras.At(t22)

	v0 := d.VertexOppositeTetra(t22)
	v1 := c.VertexOppositeTetra(t13)
	above := d.Tnbr[0]
	at := u.tetras.At(above)
	v0pos := -1
	for i := 0; i < 3; i++ {
		if at.Vs[i] == v0 {
			v0pos = i
			break
		}
	}
	if v0pos < 0 {
		panic(fmt.Sprintf("geometry: move23d pivot %d not in base of %v", v0, at.Vs))
	}
	v2 := at.Vs[(v0pos+1)%3]
	v4 := at.Vs[(v0pos+2)%3]
	v3 := d.Vs[0]

	ta023 := d.TetraOpposite(v4)
	ta034 := d.TetraOpposite(v2)
	ta123 := c.TetraOpposite(v4)
	ta124 := c.TetraOpposite(v3)
	ta134 := c.TetraOpposite(v2)

	if u.tetras.At(ta023).HasVertex(v1) || u.tetras.At(ta123).HasVertex(v0) ||
		u.tetras.At(ta034).HasVertex(v1) || u.tetras.At(ta134).HasVertex(v0) ||
		u.VerticesNeighbor(v0, v1) {
		return false
	}

	k023 := u.VertexOpposite(t13, v4)
	k034 := u.VertexOpposite(t13, v2)
	k123 := u.VertexOpposite(t22, v4)
	k124 := u.VertexOpposite(t22, v3)
	k134 := u.VertexOpposite(t22, v2)

	tn13 := u.createTetra()
	tn22l := u.createTetra()
	tn22r := u.createTetra()
	u.setTetraVertices(tn13, v1, v0, v2, v4)
	u.setTetraVertices(tn22l, v1, v3, v0, v2)
	u.setTetraVertices(tn22r, v1, v3, v0, v4)
	u.setTetraNeighbors(tn13, above, ta124, tn22r, tn22l)
	u.setTetraNeighbors(tn22l, ta023, tn13, ta123, tn22r)
	u.setTetraNeighbors(tn22r, ta034, tn13, ta134, tn22l)
	u.registerTetra(tn13)
	u.registerTetra(tn22l)
	u.registerTetra(tn22r)

	u.slabSizes[u.tetras.At(tn13).Time]++

	u.tetras.At(above).ExchangeTetraOpposite(at.Vs[3], tn13)
	u.tetras.At(ta023).ExchangeTetraOpposite(k023, tn22l)
	u.tetras.At(ta034).ExchangeTetraOpposite(k034, tn22r)
	u.tetras.At(ta123).ExchangeTetraOpposite(k123, tn22l)
	u.tetras.At(ta124).ExchangeTetraOpposite(k124, tn13)
	u.tetras.At(ta134).ExchangeTetraOpposite(k134, tn22r)

	u.vertices.At(v0).Cnum += 2
	u.vertices.At(v1).Cnum += 2

	u.destroyTetra(t13)
	u.destroyTetra(t22)

	return true
}

// Move32d performs the downward (3,2)-move, the inverse of Move23d.
func (u *Universe) Move32d(t13, t22l, t22r Label) bool {
	d := u.tetras.At(t13)
	l := u.tetras.At(t22l)
	r := u.tetras.At(t22r)

	v1 := d.Vs[0]
	v3 := l.VertexOppositeTetra(t13)
	v4 := d.VertexOppositeTetra(t22l)
	above := d.Tnbr[0]
	at := u.tetras.At(above)
	v4pos := -1
	for i := 0; i < 3; i++ {
		if at.Vs[i] == v4 {
			v4pos = i
			break
		}
	}
	if v4pos < 0 {
		panic(fmt.Sprintf("geometry: move32d pivot %d not in base of %v", v4, at.Vs))
	}
	v0 := at.Vs[(v4pos+1)%3]
	v2 := at.Vs[(v4pos+2)%3]

	ta023 := l.TetraOpposite(v1)
	ta034 := r.TetraOpposite(v1)
	ta123 := l.TetraOpposite(v0)
	ta124 := d.TetraOpposite(v0)
	ta134 := r.TetraOpposite(v0)

	if u.tetras.At(ta023).HasVertex(v4) || u.tetras.At(ta123).HasVertex(v4) ||
		u.tetras.At(ta034).HasVertex(v2) || u.tetras.At(ta124).HasVertex(v3) ||
		u.tetras.At(ta134).HasVertex(v2) {
		return false
	}

	k023 := u.VertexOpposite(t22l, v1)
	k034 := u.VertexOpposite(t22r, v1)
	k123 := u.VertexOpposite(t22l, v0)
	k124 := u.VertexOpposite(t13, v0)
	k134 := u.VertexOpposite(t22r, v0)

	tn13 := u.createTetra()
	tn22 := u.createTetra()
	u.setTetraVertices(tn13, v3, v0, v2, v4)
	u.setTetraVertices(tn22, v1, v3, v2, v4)
	u.setTetraNeighbors(tn13, above, tn22, ta034, ta023)
	u.setTetraNeighbors(tn22, tn13, ta124, ta134, ta123)
	u.registerTetra(tn13)
	u.registerTetra(tn22)

	u.tetras.At(above).ExchangeTetraOpposite(at.Vs[3], tn13)
	u.tetras.At(ta023).ExchangeTetraOpposite(k023, tn13)
	u.tetras.At(ta034).ExchangeTetraOpposite(k034, tn13)
	u.tetras.At(ta123).ExchangeTetraOpposite(k123, tn22)
	u.tetras.At(ta124).ExchangeTetraOpposite(k124, tn22)
	u.tetras.At(ta134).ExchangeTetraOpposite(k134, tn22)

	u.vertices.At(v0).Cnum -= 2
	u.vertices.At(v1).Cnum -= 2

	u.destroyTetra(t13)
	u.destroyTetra(t22l)
	u.destroyTetra(t22r)

	u.slabSizes[u.tetras.At(tn13).Time]--

	return true
}
