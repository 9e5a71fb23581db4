package polymesh

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Mesh is an in-memory PolyMesh.
type Mesh struct {
	points []r3.Vector
	faces  []Face
	cells  []Cell
}

// NewMesh returns a mesh over the given topology after checking that every face has at least
// three vertices, every cell at least four faces, and that all indices are in range. Every
// problem found is reported.
func NewMesh(points []r3.Vector, faces []Face, cells []Cell) (*Mesh, error) {
	var err error
	for i, face := range faces {
		if face.Size() < 3 {
			err = multierr.Append(err, errors.Errorf("face %d has %d vertices, need at least 3", i, face.Size()))
		}
		for _, label := range face {
			if label < 0 || label >= len(points) {
				err = multierr.Append(err, errors.Errorf("face %d references point %d out of %d", i, label, len(points)))
			}
		}
	}
	for i, cell := range cells {
		if len(cell) < 4 {
			err = multierr.Append(err, errors.Errorf("cell %d has %d faces, need at least 4", i, len(cell)))
		}
		for _, face := range cell {
			if face < 0 || face >= len(faces) {
				err = multierr.Append(err, errors.Errorf("cell %d references face %d out of %d", i, face, len(faces)))
			}
		}
	}
	if err != nil {
		return nil, errors.Wrap(err, "invalid mesh")
	}
	return &Mesh{points: points, faces: faces, cells: cells}, nil
}

// Points returns the point coordinates.
func (m *Mesh) Points() []r3.Vector {
	return m.points
}

// Faces returns the faces.
func (m *Mesh) Faces() []Face {
	return m.faces
}

// Cells returns the cells.
func (m *Mesh) Cells() []Cell {
	return m.cells
}

// CellCentre returns the vertex average of cell c.
func (m *Mesh) CellCentre(c int) r3.Vector {
	return m.cells[c].Centre(m.points, m.faces)
}

func (m *Mesh) String() string {
	return fmt.Sprintf("Mesh{points: %d, faces: %d, cells: %d}", len(m.points), len(m.faces), len(m.cells))
}
