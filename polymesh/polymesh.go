// Package polymesh provides a read-only view of an unstructured polyhedral mesh: point
// coordinates, faces given as ordered point index lists, and cells given as lists of the faces
// bounding them.
package polymesh

import (
	"github.com/golang/geo/r3"
	"github.com/samber/lo"
)

// PolyMesh is the topology consumed by cell decomposition. Faces should be planar and cells
// closed; neither is checked by consumers.
type PolyMesh interface {
	Points() []r3.Vector
	Faces() []Face
	Cells() []Cell
}

// Face is an ordered list of point indices around a polygon.
type Face []int

// Size returns the number of vertices.
func (f Face) Size() int {
	return len(f)
}

// NextLabel returns the point index following the i-th one, wrapping around.
func (f Face) NextLabel(i int) int {
	return f[(i+1)%len(f)]
}

// Centre returns the arithmetic mean of the face vertices taken from points.
func (f Face) Centre(points []r3.Vector) r3.Vector {
	var sum r3.Vector
	for _, label := range f {
		sum = sum.Add(points[label])
	}
	return sum.Mul(1 / float64(len(f)))
}

// Points returns the face vertices taken from points, in face order.
func (f Face) Points(points []r3.Vector) []r3.Vector {
	pts := make([]r3.Vector, len(f))
	for i, label := range f {
		pts[i] = points[label]
	}
	return pts
}

// Cell is a list of face indices bounding a polyhedron.
type Cell []int

// Labels returns the distinct point indices used by the cell faces, in first-seen order.
func (c Cell) Labels(faces []Face) []int {
	return lo.Uniq(lo.FlatMap(c, func(face, _ int) []int {
		return faces[face]
	}))
}

// Centre returns the arithmetic mean of the distinct cell vertices. This is the usual estimate
// handed to decomposition as the fan apex; it is not the centroid of volume.
func (c Cell) Centre(points []r3.Vector, faces []Face) r3.Vector {
	labels := c.Labels(faces)
	var sum r3.Vector
	for _, label := range labels {
		sum = sum.Add(points[label])
	}
	return sum.Mul(1 / float64(len(labels)))
}
