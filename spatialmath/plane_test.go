package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestNewPlane(t *testing.T) {
	_, err := NewPlane(r3.Vector{}, 1)
	test.That(t, err, test.ShouldBeError, errZeroNormal)

	plane, err := NewPlane(r3.Vector{X: 0, Y: 0, Z: 2}, 4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, plane.Distance(r3.Vector{Z: 2}), test.ShouldEqual, 0.)
	test.That(t, plane.Distance(r3.Vector{Z: 3}), test.ShouldEqual, 2.)
	test.That(t, plane.Contains(r3.Vector{Z: 1}), test.ShouldBeTrue)
	test.That(t, plane.Contains(r3.Vector{Z: 2}), test.ShouldBeTrue)
	test.That(t, plane.Contains(r3.Vector{Z: 2.5}), test.ShouldBeFalse)

	fromPoint, err := NewPlaneFromPoint(r3.Vector{X: 5, Y: 5, Z: 2}, r3.Vector{Z: 2})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, fromPoint.AlmostEqual(plane), test.ShouldBeTrue)
}

func TestPlaneTransforms(t *testing.T) {
	plane := Plane{Normal: r3.Vector{X: 1, Y: 1, Z: 1}, Offset: math.Sqrt(3) / 2}

	t.Run("normalize", func(t *testing.T) {
		unit := plane.Normalize()
		test.That(t, unit.Normal.IsUnit(), test.ShouldBeTrue)
		test.That(t, unit.Offset, test.ShouldAlmostEqual, 0.5, 1e-12)
		test.That(t, unit.AlmostEqual(plane), test.ShouldBeTrue)
		test.That(t, Plane{}.Normalize(), test.ShouldResemble, Plane{})
	})

	t.Run("flip", func(t *testing.T) {
		flipped := plane.Flip()
		pt := r3.Vector{X: 0.1, Y: 0.2, Z: 0.3}
		test.That(t, flipped.Distance(pt), test.ShouldAlmostEqual, -plane.Distance(pt), 1e-15)
		test.That(t, flipped.Flip(), test.ShouldResemble, plane)
	})

	t.Run("translate", func(t *testing.T) {
		origin := r3.Vector{X: 1e6, Y: -3, Z: 7}
		local := plane.Translate(origin)
		pt := r3.Vector{X: 1e6 + 0.5, Y: -2.5, Z: 7.25}
		test.That(t, local.Distance(pt.Sub(origin)), test.ShouldAlmostEqual, plane.Distance(pt), 1e-8)
	})
}

func TestPlaneNormal(t *testing.T) {
	n := PlaneNormal(r3.Vector{}, r3.Vector{X: 3}, r3.Vector{Y: 3})
	test.That(t, n, test.ShouldResemble, r3.Vector{Z: 1})
}
