package mof

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/mof/spatialmath"
	"go.viam.com/mof/utils"
)

// Fields holds the per-cell input of a reconstruction: the fluid volume fraction and the
// reference fluid centroid of every cell.
type Fields struct {
	Alpha      []float64    `json:"alpha"`
	RefCentres [][3]float64 `json:"ref_centres"`
}

// Centres returns the reference centroids as vectors.
func (f *Fields) Centres() []r3.Vector {
	centres := make([]r3.Vector, len(f.RefCentres))
	for i, c := range f.RefCentres {
		centres[i] = r3.Vector{X: c[0], Y: c[1], Z: c[2]}
	}
	return centres
}

// ReadFields decodes fields from JSON and checks that both lists have one entry per cell.
func ReadFields(r io.Reader, numCells int) (*Fields, error) {
	var f Fields
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.Wrap(err, "cannot parse fields")
	}
	if len(f.Alpha) != numCells {
		return nil, errors.Errorf("fields have %d volume fractions for %d cells", len(f.Alpha), numCells)
	}
	if len(f.RefCentres) != numCells {
		return nil, errors.Errorf("fields have %d reference centroids for %d cells", len(f.RefCentres), numCells)
	}
	return &f, nil
}

// ReadFieldsFile reads fields from the named JSON file.
func ReadFieldsFile(fn string, numCells int) (*Fields, error) {
	//nolint:gosec
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer utils.UncheckedErrorFunc(f.Close)
	return ReadFields(f, numCells)
}

// FieldsFromPlane returns the fields of a fluid filling the half-space below plane, given in
// global coordinates. Cells the plane misses get a fraction of 0 or 1 with the reference centroid
// at the cell centroid.
func (mof *MomentOfFluid) FieldsFromPlane(plane spatialmath.Plane) (*Fields, error) {
	nCells := len(mof.volumes)
	f := &Fields{
		Alpha:      make([]float64, nCells),
		RefCentres: make([][3]float64, nCells),
	}
	err := utils.GroupWorkParallel(
		context.Background(),
		nCells,
		nil,
		func(groupNum, groupSize, from, to int) (utils.MemberWorkFunc, utils.GroupWorkDoneFunc) {
			var tets, clipped []spatialmath.Tetrahedron
			return func(memberNum, workNum int) {
				centre := mof.centres[workNum]
				tets = mof.decompose(workNum, tets)
				clipped = ClipTets(plane.Translate(centre), tets, clipped[:0])
				volume, fluidCentre := VolumeAndCentre(clipped)
				fluidCentre = fluidCentre.Add(centre)
				f.Alpha[workNum] = utils.Clamp(volume/mof.volumes[workNum], 0, 1)
				f.RefCentres[workNum] = [3]float64{fluidCentre.X, fluidCentre.Y, fluidCentre.Z}
			}, nil
		},
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// WriteFields encodes fields as indented JSON.
func WriteFields(w io.Writer, f *Fields) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

// WriteFieldsFile writes fields to the named file, replacing it if it exists.
func WriteFieldsFile(fn string, f *Fields) (err error) {
	//nolint:gosec
	file, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, file.Close())
	}()
	return WriteFields(file, f)
}
