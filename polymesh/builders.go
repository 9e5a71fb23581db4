package polymesh

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// NewCartesianMesh returns an nx by ny by nz block of hexahedral cells with the given cell size,
// whose lowest corner sits at origin. Interior faces are shared between neighbouring cells. Cell
// (i, j, k) has index i + nx*(j + ny*k) and lists its faces as -x, +x, -y, +y, -z, +z.
func NewCartesianMesh(origin, spacing r3.Vector, nx, ny, nz int) (*Mesh, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, errors.Errorf("cartesian mesh needs at least one cell per axis, got %dx%dx%d", nx, ny, nz)
	}
	if spacing.X <= 0 || spacing.Y <= 0 || spacing.Z <= 0 {
		return nil, errors.Errorf("cartesian mesh spacing must be positive, got %v", spacing)
	}

	point := func(i, j, k int) int {
		return i + (nx+1)*(j+(ny+1)*k)
	}
	points := make([]r3.Vector, 0, (nx+1)*(ny+1)*(nz+1))
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				points = append(points, r3.Vector{
					X: origin.X + float64(i)*spacing.X,
					Y: origin.Y + float64(j)*spacing.Y,
					Z: origin.Z + float64(k)*spacing.Z,
				})
			}
		}
	}

	// Faces are stored grouped by normal direction, each group in i, j, k order.
	yOffset := (nx + 1) * ny * nz
	zOffset := yOffset + nx*(ny+1)*nz
	xFace := func(i, j, k int) int { return i + (nx+1)*(j+ny*k) }
	yFace := func(i, j, k int) int { return yOffset + i + nx*(j+(ny+1)*k) }
	zFace := func(i, j, k int) int { return zOffset + i + nx*(j+ny*k) }

	faces := make([]Face, zOffset+nx*ny*(nz+1))
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i <= nx; i++ {
				faces[xFace(i, j, k)] = Face{point(i, j, k), point(i, j+1, k), point(i, j+1, k+1), point(i, j, k+1)}
			}
		}
	}
	for k := 0; k < nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i < nx; i++ {
				faces[yFace(i, j, k)] = Face{point(i, j, k), point(i, j, k+1), point(i+1, j, k+1), point(i+1, j, k)}
			}
		}
	}
	for k := 0; k <= nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				faces[zFace(i, j, k)] = Face{point(i, j, k), point(i+1, j, k), point(i+1, j+1, k), point(i, j+1, k)}
			}
		}
	}

	cells := make([]Cell, 0, nx*ny*nz)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				cells = append(cells, Cell{
					xFace(i, j, k), xFace(i+1, j, k),
					yFace(i, j, k), yFace(i, j+1, k),
					zFace(i, j, k), zFace(i, j, k+1),
				})
			}
		}
	}
	return NewMesh(points, faces, cells)
}

// NewBoxMesh returns a single hexahedral cell spanning the box between two opposite corners.
func NewBoxMesh(low, high r3.Vector) (*Mesh, error) {
	return NewCartesianMesh(low, high.Sub(low), 1, 1, 1)
}

// NewTetrahedronMesh returns a single tetrahedral cell with four triangular faces.
func NewTetrahedronMesh(p0, p1, p2, p3 r3.Vector) *Mesh {
	return &Mesh{
		points: []r3.Vector{p0, p1, p2, p3},
		faces:  []Face{{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {0, 3, 2}},
		cells:  []Cell{{0, 1, 2, 3}},
	}
}

// NewPrismMesh returns a single triangular prism cell: the base triangle and its copy moved by
// height, joined by three quadrilateral sides.
func NewPrismMesh(base [3]r3.Vector, height r3.Vector) *Mesh {
	points := make([]r3.Vector, 0, 6)
	points = append(points, base[:]...)
	for _, pt := range base {
		points = append(points, pt.Add(height))
	}
	return &Mesh{
		points: points,
		faces: []Face{
			{0, 2, 1},
			{3, 4, 5},
			{0, 1, 4, 3},
			{1, 2, 5, 4},
			{2, 0, 3, 5},
		},
		cells: []Cell{{0, 1, 2, 3, 4}},
	}
}
