package mof

import (
	"github.com/golang/geo/r3"

	"go.viam.com/mof/spatialmath"
)

// volumeFloor keeps the centroid division finite for empty input. It is the smallest normal
// positive float64.
const volumeFloor = 0x1p-1022

// VolumeAndCentre returns the summed unsigned volume of tets and their volume-weighted centroid.
// Empty input yields a zero volume and a zero centre.
func VolumeAndCentre(tets []spatialmath.Tetrahedron) (float64, r3.Vector) {
	var volume float64
	var moment r3.Vector
	for _, tet := range tets {
		v := tet.Volume()
		volume += v
		moment = moment.Add(tet.Centroid().Mul(v))
	}
	return volume, moment.Mul(1 / (volume + volumeFloor))
}
