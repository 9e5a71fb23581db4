package polymesh

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/chenzhekl/goply"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/mof/utils"
)

// meshFile is the JSON layout of a mesh: points as coordinate triples, faces as point index lists
// and cells as face index lists.
type meshFile struct {
	Points [][3]float64 `json:"points"`
	Faces  [][]int      `json:"faces"`
	Cells  [][]int      `json:"cells"`
}

// ReadFile reads a mesh from disk, choosing the format from the file extension. A ".json" file
// holds a full mesh; a ".ply" file holds a closed surface read as a single cell.
func ReadFile(fn string) (*Mesh, error) {
	//nolint:gosec
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer utils.UncheckedErrorFunc(f.Close)

	switch filepath.Ext(fn) {
	case ".json":
		return ReadJSON(f)
	case ".ply":
		return ReadPLYCell(f)
	default:
		return nil, errors.Errorf("do not know how to read file %q", fn)
	}
}

// ReadJSON decodes and validates a mesh in JSON layout.
func ReadJSON(r io.Reader) (*Mesh, error) {
	var mf meshFile
	if err := json.NewDecoder(r).Decode(&mf); err != nil {
		return nil, errors.Wrap(err, "cannot parse mesh")
	}
	points := make([]r3.Vector, len(mf.Points))
	for i, p := range mf.Points {
		points[i] = r3.Vector{X: p[0], Y: p[1], Z: p[2]}
	}
	faces := make([]Face, len(mf.Faces))
	for i, f := range mf.Faces {
		faces[i] = f
	}
	cells := make([]Cell, len(mf.Cells))
	for i, c := range mf.Cells {
		cells[i] = c
	}
	return NewMesh(points, faces, cells)
}

// WriteJSON encodes a mesh in the layout ReadJSON accepts.
func WriteJSON(w io.Writer, mesh PolyMesh) error {
	mf := meshFile{
		Points: make([][3]float64, len(mesh.Points())),
		Faces:  make([][]int, len(mesh.Faces())),
		Cells:  make([][]int, len(mesh.Cells())),
	}
	for i, p := range mesh.Points() {
		mf.Points[i] = [3]float64{p.X, p.Y, p.Z}
	}
	for i, f := range mesh.Faces() {
		mf.Faces[i] = f
	}
	for i, c := range mesh.Cells() {
		mf.Cells[i] = c
	}
	return json.NewEncoder(w).Encode(mf)
}

// ReadPLYCell reads an ASCII PLY surface and returns it as a mesh with one cell bounded by every
// face in the file. The surface is expected to be closed.
func ReadPLYCell(r io.Reader) (mesh *Mesh, err error) {
	defer func() {
		// the ply parser reports malformed input by panicking
		if thePanic := recover(); thePanic != nil {
			mesh = nil
			err = errors.Errorf("cannot parse ply: %v", thePanic)
		}
	}()
	ply := goply.New(r)

	vertices := ply.Elements("vertex")
	points := make([]r3.Vector, len(vertices))
	for i, v := range vertices {
		var coords [3]float64
		for j, name := range []string{"x", "y", "z"} {
			coords[j], err = plyFloat(v[name])
			if err != nil {
				return nil, errors.Wrapf(err, "vertex %d property %q", i, name)
			}
		}
		points[i] = r3.Vector{X: coords[0], Y: coords[1], Z: coords[2]}
	}

	elements := ply.Elements("face")
	faces := make([]Face, len(elements))
	cell := make(Cell, len(elements))
	for i, elem := range elements {
		list, ok := elem["vertex_indices"]
		if !ok {
			list = elem["vertex_index"]
		}
		labels, ok := list.([]interface{})
		if !ok {
			return nil, errors.Errorf("face %d has no vertex index list", i)
		}
		face := make(Face, len(labels))
		for j, label := range labels {
			face[j], err = plyInt(label)
			if err != nil {
				return nil, errors.Wrapf(err, "face %d", i)
			}
		}
		faces[i] = face
		cell[i] = i
	}
	return NewMesh(points, faces, []Cell{cell})
}

func plyFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float32:
		return float64(x), nil
	case float64:
		return x, nil
	default:
		i, err := plyInt(v)
		return float64(i), err
	}
}

func plyInt(v interface{}) (int, error) {
	switch x := v.(type) {
	case int8:
		return int(x), nil
	case uint8:
		return int(x), nil
	case int16:
		return int(x), nil
	case uint16:
		return int(x), nil
	case int32:
		return int(x), nil
	case uint32:
		return int(x), nil
	default:
		return 0, utils.NewUnexpectedTypeError(int32(0), v)
	}
}
