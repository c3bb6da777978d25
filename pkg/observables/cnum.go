package observables

import (
	"strconv"
	"strings"

	"github.com/jmbeek/cdt3d/pkg/geometry"
)

// cnumBins bounds the spatial coordination numbers the histogram can
// resolve; larger values are dropped.
const cnumBins = 750

// CNum histograms the spatial coordination number of the vertices in
// slices whose volume matches the 2-d target.
type CNum struct {
	target2Volume int
}

// NewCNum creates the coordination-number observable gated on the
// given slice volume.
func NewCNum(target2Volume int) *CNum {
	return &CNum{target2Volume: target2Volume}
}

// Name implements Observable.
func (*CNum) Name() string { return "cnum" }

// Process implements Observable: the histogram as space-separated
// counts, one per coordination number.
func (c *CNum) Process(u *geometry.Universe) string {
	var histogram [cnumBins]int
	sizes := u.SliceSizes()
	for _, v := range u.Vertices() {
		vv := u.Vertex(v)
		if sizes[vv.Time] != c.target2Volume {
			continue
		}
		if int(vv.SCnum) >= cnumBins {
			continue
		}
		histogram[vv.SCnum]++
	}
	parts := make([]string, cnumBins)
	for i, h := range histogram {
		parts[i] = strconv.Itoa(h)
	}
	return strings.Join(parts, " ")
}
