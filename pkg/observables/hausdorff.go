package observables

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/jmbeek/cdt3d/pkg/geometry"
)

// hausdorffMaxRadius bounds the sphere radius probed per measurement
// in point mode.
const hausdorffMaxRadius = 30

// Hausdorff2d probes the Hausdorff dimension of the spatial slices
// whose volume matches the 2-d target, by recording the size of
// 2-spheres of growing radius.
//
// In point mode one random origin is drawn per radius; in averaged
// mode the full distance profile is averaged over every vertex of the
// matching slices.
type Hausdorff2d struct {
	ex            *Explorer
	target2Volume int
	average       bool
}

// NewHausdorff2d creates the observable. The explorer and the random
// stream of the universe are shared with the rest of the engine.
func NewHausdorff2d(ex *Explorer, target2Volume int, average bool) *Hausdorff2d {
	return &Hausdorff2d{ex: ex, target2Volume: target2Volume, average: average}
}

// Name implements Observable.
func (*Hausdorff2d) Name() string { return "hausdorff2d" }

// Process implements Observable.
func (h *Hausdorff2d) Process(u *geometry.Universe) string {
	sizes := u.SliceSizes()

	var profile []int
	if !h.average {
		profile = make([]int, hausdorffMaxRadius)
		for r := 1; r <= hausdorffMaxRadius; r++ {
			var v geometry.Label
			for {
				v = u.PickVertex()
				if sizes[u.Vertex(v).Time] == h.target2Volume {
					break
				}
			}
			profile[r-1] = len(h.ex.Sphere2d(u, v, r))
		}
	} else {
		counter := 0
		for _, v := range u.Vertices() {
			if sizes[u.Vertex(v).Time] != h.target2Volume {
				continue
			}
			counter++
			single := h.ex.DistanceList2d(u, v)
			if len(single) > len(profile) {
				profile = append(profile, make([]int, len(single)-len(profile))...)
			}
			for i, d := range single {
				profile[i] += d
			}
		}
		if counter > 0 {
			for i := range profile {
				profile[i] /= counter
			}
		}
	}

	parts := make([]string, len(profile))
	for i, d := range profile {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, " ")
}

// Hausdorff2dDual is the dual-graph variant of Hausdorff2d: it records
// the full dual distance profile from one random triangle of a slice
// matching the 2-d target.
type Hausdorff2dDual struct {
	ex            *Explorer
	rng           *rand.Rand
	target2Volume int
}

// NewHausdorff2dDual creates the observable.
func NewHausdorff2dDual(ex *Explorer, rng *rand.Rand, target2Volume int) *Hausdorff2dDual {
	return &Hausdorff2dDual{ex: ex, rng: rng, target2Volume: target2Volume}
}

// Name implements Observable.
func (*Hausdorff2dDual) Name() string { return "hausdorff2d_dual" }

// Process implements Observable.
func (h *Hausdorff2dDual) Process(u *geometry.Universe) string {
	triangles := u.Triangles()
	sizes := u.SliceSizes()

	var tr geometry.Label
	for {
		tr = triangles[h.rng.IntN(len(triangles))]
		if sizes[u.Triangle(tr).Time] == h.target2Volume {
			break
		}
	}

	dsts := h.ex.DistanceList2dDual(u, tr)
	parts := make([]string, len(dsts))
	for i, d := range dsts {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, " ")
}
