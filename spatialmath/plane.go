package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/mof/utils"
)

const floatEpsilon = 1e-6

// errZeroNormal is returned when constructing a plane from a zero normal vector.
var errZeroNormal = errors.New("plane normal must be non-zero")

// Plane is an oriented plane Normal.x = Offset. It describes the half-space Normal.x <= Offset,
// called the negative side. The normal does not need to be unit length; signed distances are then
// scaled by its magnitude.
type Plane struct {
	Normal r3.Vector
	Offset float64
}

// NewPlane returns the plane normal.x = offset. An error is returned for a zero normal.
func NewPlane(normal r3.Vector, offset float64) (Plane, error) {
	if normal.Norm2() == 0 {
		return Plane{}, errZeroNormal
	}
	return Plane{Normal: normal, Offset: offset}, nil
}

// NewPlaneFromPoint returns the plane through point with the given normal.
func NewPlaneFromPoint(point, normal r3.Vector) (Plane, error) {
	return NewPlane(normal, normal.Dot(point))
}

// Distance returns Normal.pt - Offset: negative inside the half-space, positive outside and zero
// on the plane.
func (p Plane) Distance(pt r3.Vector) float64 {
	return pt.Dot(p.Normal) - p.Offset
}

// Contains reports whether pt lies in the closed half-space.
func (p Plane) Contains(pt r3.Vector) bool {
	return p.Distance(pt) <= 0
}

// Flip returns the opposing half-space, sharing the same boundary plane.
func (p Plane) Flip() Plane {
	return Plane{Normal: p.Normal.Mul(-1), Offset: -p.Offset}
}

// Normalize returns the same half-space with a unit normal.
func (p Plane) Normalize() Plane {
	n := p.Normal.Norm()
	if n == 0 {
		return p
	}
	return Plane{Normal: p.Normal.Mul(1 / n), Offset: p.Offset / n}
}

// Translate returns the plane expressed in a frame whose origin sits at origin, i.e. for points
// written as x - origin.
func (p Plane) Translate(origin r3.Vector) Plane {
	return Plane{Normal: p.Normal, Offset: p.Offset - p.Normal.Dot(origin)}
}

// AlmostEqual compares two planes after normalization.
func (p Plane) AlmostEqual(other Plane) bool {
	a, b := p.Normalize(), other.Normalize()
	return a.Normal.Sub(b.Normal).Norm() < floatEpsilon && utils.Float64AlmostEqual(a.Offset, b.Offset, floatEpsilon)
}

func (p Plane) String() string {
	return fmt.Sprintf("Plane{n: %v, d: %g}", p.Normal, p.Offset)
}

// PlaneNormal returns the unit normal of the plane through three points, oriented by the right
// hand rule on p0, p1, p2.
func PlaneNormal(p0, p1, p2 r3.Vector) r3.Vector {
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}
