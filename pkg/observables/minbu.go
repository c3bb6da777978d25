package observables

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jmbeek/cdt3d/pkg/geometry"
)

// Minbu measures the minimal-bottleneck structure of a spatial slice
// matching the 2-d target: it enumerates minimal necks (vertex
// triangles that bound no spatial triangle) and histograms the sizes
// of the regions they pinch off.
type Minbu struct {
	target2Volume int
}

// NewMinbu creates the minimal-bottleneck observable.
func NewMinbu(target2Volume int) *Minbu {
	return &Minbu{target2Volume: target2Volume}
}

// Name implements Observable.
func (*Minbu) Name() string { return "minbu" }

// Process implements Observable.
func (m *Minbu) Process(u *geometry.Universe) string {
	slice := -1
	for i, s := range u.SliceSizes() {
		if s == m.target2Volume {
			slice = i
			break
		}
	}
	if slice < 0 {
		return ""
	}

	var sliceEdges []geometry.Label
	for _, he := range u.HalfEdges() {
		if u.Vertex(u.HalfEdge(he).Vs[0]).Time == int32(slice) {
			sliceEdges = append(sliceEdges, he)
		}
	}

	done := make(map[geometry.Label]bool)
	var minNecks [][3]geometry.Label

	for _, he := range sliceEdges {
		if done[he] {
			continue
		}

		// Cycle of half-edges fanning around the head of he on one
		// side, and around its tail on the other.
		var fronts []geometry.Label
		cur := u.HalfEdge(u.HalfEdge(u.HalfEdge(he).Next).Adj).Next
		for {
			fronts = append(fronts, cur)
			cur = u.HalfEdge(u.HalfEdge(cur).Adj).Next
			if u.HalfEdge(u.HalfEdge(u.HalfEdge(cur).Adj).Next).Adj == he {
				break
			}
		}

		var backs []geometry.Label
		cur = u.HalfEdge(u.HalfEdge(u.HalfEdge(he).Prev).Adj).Prev
		for {
			backs = append(backs, cur)
			cur = u.HalfEdge(u.HalfEdge(cur).Adj).Prev
			if u.HalfEdge(u.HalfEdge(u.HalfEdge(cur).Adj).Prev).Adj == he {
				break
			}
		}

		for _, f := range fronts {
			for _, b := range backs {
				if u.HalfEdge(f).Vs[1] != u.HalfEdge(b).Vs[0] || done[b] || done[f] {
					continue
				}
				neck := [3]geometry.Label{u.HalfEdge(f).Vs[0], u.HalfEdge(b).Vs[1], u.HalfEdge(f).Vs[1]}
				slices.Sort(neck[:])
				minNecks = append(minNecks, neck)
				for _, t := range u.Tetras31() {
					tt := u.Tetra(t)
					if tt.HasVertex(neck[0]) && tt.HasVertex(neck[1]) && tt.HasVertex(neck[2]) {
						panic(fmt.Sprintf("observables: neck %v bounds tetra %v", neck, tt.Vs))
					}
				}
			}
		}
		done[he] = true
		done[u.HalfEdge(he).Adj] = true
	}

	slices.SortFunc(minNecks, func(a, b [3]geometry.Label) int {
		return slices.Compare(a[:], b[:])
	})

	histogram := make([]int, m.target2Volume/2+1)
	for _, neck := range minNecks {
		var origin geometry.Label = geometry.Nil
		for _, tr := range u.Triangles() {
			trt := u.Triangle(tr)
			if trt.HasVertex(neck[0]) || trt.HasVertex(neck[1]) || trt.HasVertex(neck[2]) {
				origin = tr
				break
			}
		}
		if origin == geometry.Nil {
			continue
		}

		// Flood one side of the neck: triangle adjacency, never
		// crossing an edge with both endpoints on the neck.
		tdone := []geometry.Label{origin}
		thisDepth := []geometry.Label{origin}
		var nextDepth []geometry.Label
		total := 0
		for len(thisDepth) > 0 {
			for _, tr := range thisDepth {
				for _, he := range u.Triangle(tr).Hes {
					v1, v2 := u.HalfEdge(he).Vs[0], u.HalfEdge(he).Vs[1]
					onNeck := func(v geometry.Label) bool {
						return v == neck[0] || v == neck[1] || v == neck[2]
					}
					if onNeck(v1) && onNeck(v2) {
						continue
					}
					nb := u.HalfEdge(u.HalfEdge(he).Adj).Triangle
					if !slices.Contains(tdone, nb) {
						tdone = append(tdone, nb)
						nextDepth = append(nextDepth, nb)
						total++
					}
				}
			}
			thisDepth, nextDepth = nextDepth, thisDepth[:0]
		}

		if total+1 < m.target2Volume/2 {
			histogram[total+1]++
		} else {
			histogram[m.target2Volume-total-1]++
		}
	}

	var sb strings.Builder
	for _, h := range histogram {
		fmt.Fprintf(&sb, "%d ", h)
	}
	return strings.TrimRight(sb.String(), " ")
}
