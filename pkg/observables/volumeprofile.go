package observables

import (
	"strconv"
	"strings"

	"github.com/jmbeek/cdt3d/pkg/geometry"
)

// VolumeProfile records the spatial volume of every slice, measured as
// the number of (3,1)-tetrahedron bases per slice.
type VolumeProfile struct{}

// NewVolumeProfile creates the volume profile observable.
func NewVolumeProfile() *VolumeProfile { return &VolumeProfile{} }

// Name implements Observable.
func (*VolumeProfile) Name() string { return "volume_profile" }

// Process implements Observable: one space-separated integer per
// slice.
func (*VolumeProfile) Process(u *geometry.Universe) string {
	sizes := u.SliceSizes()
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, " ")
}
