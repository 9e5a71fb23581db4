package spatialmath

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestBasicTriangleFunctions(t *testing.T) {
	expectedPts := []r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 3, Z: 0}, {X: 3, Y: 0, Z: 0}}
	tri := NewTriangle(expectedPts[0], expectedPts[1], expectedPts[2])

	expectedNormal := r3.Vector{X: 0, Y: 0, Z: -1}
	expectedArea := 4.5
	expectedCentroid := r3.Vector{X: 1, Y: 1, Z: 0}

	t.Run("constructor", func(t *testing.T) {
		test.That(t, tri.Points(), test.ShouldResemble, expectedPts)
		// the cross product of the normal with what is expected should result in nothing
		test.That(t, tri.Normal().Cross(expectedNormal), test.ShouldResemble, r3.Vector{})
		test.That(t, tri.Normal().Dot(expectedNormal), test.ShouldAlmostEqual, 1, 1e-12)
	})

	t.Run("area", func(t *testing.T) {
		test.That(t, tri.Area(), test.ShouldEqual, expectedArea)
	})

	t.Run("centroid", func(t *testing.T) {
		test.That(t, tri.Centroid(), test.ShouldResemble, expectedCentroid)
	})

	t.Run("orientation", func(t *testing.T) {
		test.That(t, tri.OrientedAlong(expectedNormal), test.ShouldEqual, tri)
		up := tri.OrientedAlong(r3.Vector{Z: 1})
		test.That(t, up.Normal().Z, test.ShouldAlmostEqual, 1, 1e-12)
		test.That(t, up.Area(), test.ShouldEqual, expectedArea)
	})
}

func TestFanTriangles(t *testing.T) {
	test.That(t, FanTriangles([]r3.Vector{{}, {X: 1}}), test.ShouldBeNil)

	square := []r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 2, Y: 2, Z: 0}, {X: 0, Y: 2, Z: 0}}
	tris := FanTriangles(square)
	test.That(t, len(tris), test.ShouldEqual, 2)
	test.That(t, NewMesh(tris, "square").Area(), test.ShouldAlmostEqual, 4, 1e-12)
}
