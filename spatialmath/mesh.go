package spatialmath

import (
	"github.com/golang/geo/r3"
)

// Mesh is a labeled triangle soup, used for surfaces such as reconstructed fluid interfaces.
type Mesh struct {
	label     string
	triangles []*Triangle
}

// NewMesh returns a mesh over the given triangles.
func NewMesh(triangles []*Triangle, label string) *Mesh {
	return &Mesh{
		label:     label,
		triangles: triangles,
	}
}

// Label returns the mesh label.
func (m *Mesh) Label() string {
	return m.label
}

// Triangles returns the triangles of the mesh.
func (m *Mesh) Triangles() []*Triangle {
	return m.triangles
}

// Append adds triangles to the mesh.
func (m *Mesh) Append(triangles ...*Triangle) {
	m.triangles = append(m.triangles, triangles...)
}

// Area returns the summed area of every triangle.
func (m *Mesh) Area() float64 {
	area := 0.
	for _, t := range m.triangles {
		area += t.Area()
	}
	return area
}

// Vertices returns the deduplicated vertex list and, for each triangle, the indices of its
// corners into that list. Vertices are matched exactly.
func (m *Mesh) Vertices() ([]r3.Vector, [][3]int) {
	index := make(map[r3.Vector]int)
	var verts []r3.Vector
	faces := make([][3]int, 0, len(m.triangles))
	for _, t := range m.triangles {
		var face [3]int
		for i, pt := range t.Points() {
			idx, ok := index[pt]
			if !ok {
				idx = len(verts)
				index[pt] = idx
				verts = append(verts, pt)
			}
			face[i] = idx
		}
		faces = append(faces, face)
	}
	return verts, faces
}
