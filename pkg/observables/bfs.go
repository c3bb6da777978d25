package observables

import (
	"slices"

	"github.com/jmbeek/cdt3d/pkg/geometry"
)

// Explorer is the breadth-first toolbox shared by the observables. It
// owns a boolean scratch vector reused across calls; every helper
// restores the entries it touched before returning, so the vector is
// all-false between calls.
//
// All helpers read the derived connectivity of the last geometry
// rebuild and must not run while moves are mutating the universe.
type Explorer struct {
	done []bool
}

// NewExplorer creates an explorer with an empty scratch vector; it
// grows on demand.
func NewExplorer() *Explorer { return &Explorer{} }

func (e *Explorer) ensure(n int) {
	if len(e.done) < n {
		e.done = append(e.done, make([]bool, n-len(e.done))...)
	}
}

// Sphere returns the vertices at exactly link distance radius from
// origin in the full vertex graph.
func (e *Explorer) Sphere(u *geometry.Universe, origin geometry.Label, radius int) []geometry.Label {
	return e.sphereVertices(u, origin, radius, false)
}

// Sphere2d returns the vertices at exactly link distance radius from
// origin within origin's slice.
func (e *Explorer) Sphere2d(u *geometry.Universe, origin geometry.Label, radius int) []geometry.Label {
	return e.sphereVertices(u, origin, radius, true)
}

func (e *Explorer) sphereVertices(u *geometry.Universe, origin geometry.Label, radius int, sameSlice bool) []geometry.Label {
	e.ensure(int(origin) + 1)
	originTime := u.Vertex(origin).Time

	var result []geometry.Label
	flipped := []geometry.Label{origin}
	thisDepth := []geometry.Label{origin}
	var nextDepth []geometry.Label
	e.done[origin] = true

	for depth := 0; depth < radius; depth++ {
		for _, v := range thisDepth {
			for _, nb := range u.VertexNeighbors(v) {
				if sameSlice && u.Vertex(nb).Time != originTime {
					continue
				}
				e.ensure(int(nb) + 1)
				if !e.done[nb] {
					e.done[nb] = true
					flipped = append(flipped, nb)
					nextDepth = append(nextDepth, nb)
					if depth == radius-1 {
						result = append(result, nb)
					}
				}
			}
		}
		thisDepth, nextDepth = nextDepth, thisDepth[:0]
	}

	for _, v := range flipped {
		e.done[v] = false
	}
	return result
}

// SphereDual returns the tetrahedra at exactly dual distance radius
// from origin, walking the neighbor relation.
func (e *Explorer) SphereDual(u *geometry.Universe, origin geometry.Label, radius int) []geometry.Label {
	done := []geometry.Label{origin}
	thisDepth := []geometry.Label{origin}
	var nextDepth []geometry.Label
	var result []geometry.Label

	for depth := 0; depth < radius; depth++ {
		for _, t := range thisDepth {
			for _, nb := range u.Tetra(t).Tnbr {
				if !slices.Contains(done, nb) {
					done = append(done, nb)
					nextDepth = append(nextDepth, nb)
					if depth == radius-1 {
						result = append(result, nb)
					}
				}
			}
		}
		thisDepth, nextDepth = nextDepth, thisDepth[:0]
	}
	return result
}

// Sphere2dDual returns the triangles at exactly distance radius from
// origin in the dual graph of origin's slice.
func (e *Explorer) Sphere2dDual(u *geometry.Universe, origin geometry.Label, radius int) []geometry.Label {
	done := []geometry.Label{origin}
	thisDepth := []geometry.Label{origin}
	var nextDepth []geometry.Label
	var result []geometry.Label

	for depth := 0; depth < radius; depth++ {
		for _, tr := range thisDepth {
			for _, nb := range u.Triangle(tr).Trnbr {
				if !slices.Contains(done, nb) {
					done = append(done, nb)
					nextDepth = append(nextDepth, nb)
					if depth == radius-1 {
						result = append(result, nb)
					}
				}
			}
		}
		thisDepth, nextDepth = nextDepth, thisDepth[:0]
	}
	return result
}

// Distance returns the link distance between two vertices in the full
// vertex graph.
func (e *Explorer) Distance(u *geometry.Universe, v1, v2 geometry.Label) int {
	if v1 == v2 {
		return 0
	}
	e.ensure(int(v1) + 1)
	flipped := []geometry.Label{v1}
	thisDepth := []geometry.Label{v1}
	var nextDepth []geometry.Label
	e.done[v1] = true

	distance := -1
	for depth := 1; len(thisDepth) > 0 && distance < 0; depth++ {
		for _, v := range thisDepth {
			for _, nb := range u.VertexNeighbors(v) {
				e.ensure(int(nb) + 1)
				if !e.done[nb] {
					if nb == v2 {
						distance = depth
						break
					}
					e.done[nb] = true
					flipped = append(flipped, nb)
					nextDepth = append(nextDepth, nb)
				}
			}
			if distance >= 0 {
				break
			}
		}
		thisDepth, nextDepth = nextDepth, thisDepth[:0]
	}

	for _, v := range flipped {
		e.done[v] = false
	}
	if distance < 0 {
		panic("observables: vertices lie in disconnected components")
	}
	return distance
}

// DistanceDual returns the dual link distance between two tetrahedra.
func (e *Explorer) DistanceDual(u *geometry.Universe, t1, t2 geometry.Label) int {
	if t1 == t2 {
		return 0
	}
	done := []geometry.Label{t1}
	thisDepth := []geometry.Label{t1}
	var nextDepth []geometry.Label

	for depth := 1; len(thisDepth) > 0; depth++ {
		for _, t := range thisDepth {
			for _, nb := range u.Tetra(t).Tnbr {
				if nb == t2 {
					return depth
				}
				if !slices.Contains(done, nb) {
					done = append(done, nb)
					nextDepth = append(nextDepth, nb)
				}
			}
		}
		thisDepth, nextDepth = nextDepth, thisDepth[:0]
	}
	panic("observables: tetrahedra lie in disconnected components")
}

// DistanceList2d returns, per link distance from origin within its
// slice, the number of vertices at that distance, until the slice is
// exhausted. Index 0 counts the origin itself.
func (e *Explorer) DistanceList2d(u *geometry.Universe, origin geometry.Label) []int {
	originTime := u.Vertex(origin).Time
	done := []geometry.Label{origin}
	thisDepth := []geometry.Label{origin}
	var nextDepth []geometry.Label
	var dsts []int

	for len(thisDepth) > 0 {
		for _, v := range thisDepth {
			for _, nb := range u.VertexNeighbors(v) {
				if u.Vertex(nb).Time != originTime {
					continue
				}
				if !slices.Contains(done, nb) {
					done = append(done, nb)
					nextDepth = append(nextDepth, nb)
				}
			}
		}
		dsts = append(dsts, len(thisDepth))
		thisDepth, nextDepth = nextDepth, thisDepth[:0]
	}
	return dsts
}

// DistanceList2dDual is DistanceList2d on the dual triangle graph of
// origin's slice.
func (e *Explorer) DistanceList2dDual(u *geometry.Universe, origin geometry.Label) []int {
	done := []geometry.Label{origin}
	thisDepth := []geometry.Label{origin}
	var nextDepth []geometry.Label
	var dsts []int

	for len(thisDepth) > 0 {
		for _, tr := range thisDepth {
			for _, nb := range u.Triangle(tr).Trnbr {
				if !slices.Contains(done, nb) {
					done = append(done, nb)
					nextDepth = append(nextDepth, nb)
				}
			}
		}
		dsts = append(dsts, len(thisDepth))
		thisDepth, nextDepth = nextDepth, thisDepth[:0]
	}
	return dsts
}
