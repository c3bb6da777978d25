package observables

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/jmbeek/cdt3d/pkg/geometry"
)

// ricciMaxEpsilon is the largest sphere radius probed per measurement.
const ricciMaxEpsilon = 10

// Ricci2d estimates a coarse Ricci curvature on spatial slices
// matching the 2-d target: for growing radius ε it compares the
// average link distance between two ε-spheres with ε itself.
type Ricci2d struct {
	ex            *Explorer
	rng           *rand.Rand
	target2Volume int

	doneLr   []bool
	targetLr []bool
}

// NewRicci2d creates the observable.
func NewRicci2d(ex *Explorer, rng *rand.Rand, target2Volume int) *Ricci2d {
	return &Ricci2d{ex: ex, rng: rng, target2Volume: target2Volume}
}

// Name implements Observable.
func (*Ricci2d) Name() string { return "ricci2d" }

// Reset implements Resetter.
func (r *Ricci2d) Reset() {
	r.doneLr = nil
	r.targetLr = nil
}

// Process implements Observable: one average sphere distance per
// radius 1..ricciMaxEpsilon, space separated.
func (r *Ricci2d) Process(u *geometry.Universe) string {
	maxLabel := geometry.Label(-1)
	for _, v := range u.Vertices() {
		if v > maxLabel {
			maxLabel = v
		}
	}
	r.doneLr = grow(r.doneLr, int(maxLabel)+1)
	r.targetLr = grow(r.targetLr, int(maxLabel)+1)

	sizes := u.SliceSizes()
	origins := make([]geometry.Label, 0, ricciMaxEpsilon)
	for range ricciMaxEpsilon {
		var v geometry.Label
		for {
			v = u.PickVertex()
			if sizes[u.Vertex(v).Time] == r.target2Volume {
				break
			}
		}
		origins = append(origins, v)
	}

	parts := make([]string, 0, ricciMaxEpsilon)
	for i, origin := range origins {
		epsilon := i + 1
		d := r.averageSphereDistance(u, origin, epsilon)
		parts = append(parts, strconv.FormatFloat(d, 'f', 6, 64))
	}
	return strings.Join(parts, " ")
}

// averageSphereDistance draws a second origin on the ε-sphere of p1
// and averages, over the smaller sphere, the link distance to every
// vertex of the other sphere, normalized by ε.
func (r *Ricci2d) averageSphereDistance(u *geometry.Universe, p1 geometry.Label, epsilon int) float64 {
	s1 := r.ex.Sphere2d(u, p1, epsilon)
	if len(s1) == 0 {
		return 0
	}
	p2 := s1[r.rng.IntN(len(s1))]
	s2 := r.ex.Sphere2d(u, p2, epsilon)
	if len(s2) == 0 {
		return 0
	}
	if len(s2) < len(s1) {
		s1, s2 = s2, s1
	}

	var distances []int
	for _, b := range s1 {
		clear(r.doneLr)
		clear(r.targetLr)
		for _, v := range s2 {
			r.targetLr[v] = true
		}

		countdown := len(s2)
		thisDepth := []geometry.Label{b}
		var nextDepth []geometry.Label
		r.doneLr[b] = true

		for depth := 0; depth < 3*epsilon+1 && countdown > 0; depth++ {
			for _, v := range thisDepth {
				if r.targetLr[v] {
					distances = append(distances, 0)
					r.targetLr[v] = false
					countdown--
				}
				for _, nb := range u.VertexNeighbors(v) {
					if u.Vertex(nb).Time != u.Vertex(v).Time {
						continue
					}
					if !r.doneLr[nb] {
						r.doneLr[nb] = true
						nextDepth = append(nextDepth, nb)
						if r.targetLr[nb] {
							distances = append(distances, depth+1)
							r.targetLr[nb] = false
							countdown--
						}
					}
					if countdown == 0 {
						break
					}
				}
				if countdown == 0 {
					break
				}
			}
			thisDepth, nextDepth = nextDepth, thisDepth[:0]
		}
		if countdown != 0 {
			panic(fmt.Sprintf("observables: ricci2d sphere of radius %d not reachable within %d steps", epsilon, 3*epsilon+1))
		}
	}

	sum := 0
	for _, d := range distances {
		sum += d
	}
	return float64(sum) / (float64(epsilon) * float64(len(distances)))
}

// Ricci2dDual is Ricci2d on the dual triangle graph of the spatial
// slices.
type Ricci2dDual struct {
	ex            *Explorer
	rng           *rand.Rand
	target2Volume int

	doneLr   []bool
	targetLr []bool
}

// NewRicci2dDual creates the observable.
func NewRicci2dDual(ex *Explorer, rng *rand.Rand, target2Volume int) *Ricci2dDual {
	return &Ricci2dDual{ex: ex, rng: rng, target2Volume: target2Volume}
}

// Name implements Observable.
func (*Ricci2dDual) Name() string { return "ricci2d_dual" }

// Reset implements Resetter.
func (r *Ricci2dDual) Reset() {
	r.doneLr = nil
	r.targetLr = nil
}

// Process implements Observable.
func (r *Ricci2dDual) Process(u *geometry.Universe) string {
	triangles := u.Triangles()
	maxLabel := geometry.Label(-1)
	for _, tr := range triangles {
		if tr > maxLabel {
			maxLabel = tr
		}
	}
	r.doneLr = grow(r.doneLr, int(maxLabel)+1)
	r.targetLr = grow(r.targetLr, int(maxLabel)+1)

	sizes := u.SliceSizes()
	origins := make([]geometry.Label, 0, ricciMaxEpsilon)
	for range ricciMaxEpsilon {
		var tr geometry.Label
		for {
			tr = triangles[r.rng.IntN(len(triangles))]
			if sizes[u.Triangle(tr).Time] == r.target2Volume {
				break
			}
		}
		origins = append(origins, tr)
	}

	parts := make([]string, 0, ricciMaxEpsilon)
	for i, origin := range origins {
		epsilon := i + 1
		d := r.averageSphereDistanceDual(u, origin, epsilon)
		parts = append(parts, strconv.FormatFloat(d, 'f', 6, 64))
	}
	return strings.Join(parts, " ")
}

func (r *Ricci2dDual) averageSphereDistanceDual(u *geometry.Universe, p1 geometry.Label, epsilon int) float64 {
	s1 := r.ex.Sphere2dDual(u, p1, epsilon)
	if len(s1) == 0 {
		return 0
	}
	p2 := s1[r.rng.IntN(len(s1))]
	s2 := r.ex.Sphere2dDual(u, p2, epsilon)
	if len(s2) == 0 {
		return 0
	}
	if len(s2) < len(s1) {
		s1, s2 = s2, s1
	}

	var distances []int
	for _, b := range s1 {
		clear(r.doneLr)
		clear(r.targetLr)
		for _, tr := range s2 {
			r.targetLr[tr] = true
		}

		countdown := len(s2)
		thisDepth := []geometry.Label{b}
		var nextDepth []geometry.Label
		r.doneLr[b] = true

		for depth := 0; depth < 3*epsilon+1 && countdown > 0; depth++ {
			for _, tr := range thisDepth {
				if r.targetLr[tr] {
					distances = append(distances, 0)
					r.targetLr[tr] = false
					countdown--
				}
				for _, nb := range u.Triangle(tr).Trnbr {
					if !r.doneLr[nb] {
						r.doneLr[nb] = true
						nextDepth = append(nextDepth, nb)
						if r.targetLr[nb] {
							distances = append(distances, depth+1)
							r.targetLr[nb] = false
							countdown--
						}
					}
					if countdown == 0 {
						break
					}
				}
				if countdown == 0 {
					break
				}
			}
			thisDepth, nextDepth = nextDepth, thisDepth[:0]
		}
		if countdown != 0 {
			panic(fmt.Sprintf("observables: ricci2d_dual sphere of radius %d not reachable within %d steps", epsilon, 3*epsilon+1))
		}
	}

	sum := 0
	for _, d := range distances {
		sum += d
	}
	return float64(sum) / (float64(epsilon) * float64(len(distances)))
}

func grow(s []bool, n int) []bool {
	if len(s) < n {
		s = append(s, make([]bool, n-len(s))...)
	}
	return s
}
