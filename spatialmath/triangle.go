package spatialmath

import (
	"github.com/golang/geo/r3"
)

// Triangle is a planar triangle with a cached unit normal.
type Triangle struct {
	p0 r3.Vector
	p1 r3.Vector
	p2 r3.Vector

	normal r3.Vector
}

// NewTriangle returns the triangle p0, p1, p2 with its right-handed normal.
func NewTriangle(p0, p1, p2 r3.Vector) *Triangle {
	return &Triangle{
		p0:     p0,
		p1:     p1,
		p2:     p2,
		normal: PlaneNormal(p0, p1, p2),
	}
}

// Points returns the vertices in order.
func (t *Triangle) Points() []r3.Vector {
	return []r3.Vector{t.p0, t.p1, t.p2}
}

// Normal returns the unit normal.
func (t *Triangle) Normal() r3.Vector {
	return t.normal
}

// Area returns the area of the triangle.
func (t *Triangle) Area() float64 {
	return 0.5 * t.p1.Sub(t.p0).Cross(t.p2.Sub(t.p0)).Norm()
}

// Centroid returns the arithmetic mean of the vertices.
func (t *Triangle) Centroid() r3.Vector {
	return t.p0.Add(t.p1).Add(t.p2).Mul(1. / 3.)
}

// OrientedAlong returns the triangle with its winding reversed if its normal points away from dir.
func (t *Triangle) OrientedAlong(dir r3.Vector) *Triangle {
	if t.normal.Dot(dir) >= 0 {
		return t
	}
	return NewTriangle(t.p0, t.p2, t.p1)
}

// FanTriangles splits a convex polygon, given in boundary order, into triangles sharing the first
// vertex. Fewer than three points produce no triangles.
func FanTriangles(polygon []r3.Vector) []*Triangle {
	if len(polygon) < 3 {
		return nil
	}
	tris := make([]*Triangle, 0, len(polygon)-2)
	for i := 1; i+1 < len(polygon); i++ {
		tris = append(tris, NewTriangle(polygon[0], polygon[i], polygon[i+1]))
	}
	return tris
}
