package mof

import (
	"context"
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/mof/config"
	"go.viam.com/mof/logging"
	"go.viam.com/mof/polymesh"
	"go.viam.com/mof/spatialmath"
	"go.viam.com/mof/utils"
)

// A Reconstruction is the interface plane found for one cell. The fluid occupies the cell's part
// of the half-space Normal.x <= Offset, in global coordinates.
type Reconstruction struct {
	Cell     int
	Fraction float64
	Normal   r3.Vector
	Offset   float64
	// Centre is the centroid of the fluid region cut off by the plane.
	Centre r3.Vector
	// Error is the distance from Centre to the reference centroid.
	Error float64
}

// Plane returns the interface plane in global coordinates.
func (r Reconstruction) Plane() spatialmath.Plane {
	return spatialmath.Plane{Normal: r.Normal, Offset: r.Offset}
}

func (r Reconstruction) String() string {
	return fmt.Sprintf("cell %d: fraction %g, normal %v, offset %g, error %g", r.Cell, r.Fraction, r.Normal, r.Offset, r.Error)
}

// MomentOfFluid reconstructs piecewise planar interfaces on a mesh from per-cell volume fractions
// and reference centroids. Cell volumes and centroids are computed once on construction.
//
// DecomposeCell shares a buffer between calls and must not be called concurrently. Every other
// method is safe for concurrent use.
type MomentOfFluid struct {
	mesh   polymesh.PolyMesh
	cfg    *config.Config
	logger logging.Logger

	volumes []float64
	centres []r3.Vector
	tets    []spatialmath.Tetrahedron
}

// NewMomentOfFluid returns a reconstructor over mesh. A nil cfg uses config.Default; otherwise
// zero tunables in cfg take their defaults and invalid ones are an error.
func NewMomentOfFluid(mesh polymesh.PolyMesh, cfg *config.Config, logger logging.Logger) (*MomentOfFluid, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	cfg, err := cfg.Tuned()
	if err != nil {
		return nil, err
	}
	mof := &MomentOfFluid{
		mesh:    mesh,
		cfg:     cfg,
		logger:  logger,
		volumes: make([]float64, len(mesh.Cells())),
		centres: make([]r3.Vector, len(mesh.Cells())),
	}
	if err := mof.computeCellGeometry(); err != nil {
		return nil, errors.Wrap(err, "cannot compute cell geometry")
	}
	logger.Debugw("cell geometry computed", "cells", len(mof.volumes))
	return mof, nil
}

// computeCellGeometry fills the cell volumes and centroids. Each cell is decomposed about its
// vertex average, which is also used as the conditioning origin.
func (mof *MomentOfFluid) computeCellGeometry() error {
	points := mof.mesh.Points()
	faces := mof.mesh.Faces()
	cells := mof.mesh.Cells()
	return utils.GroupWorkParallel(
		context.Background(),
		len(cells),
		nil,
		func(groupNum, groupSize, from, to int) (utils.MemberWorkFunc, utils.GroupWorkDoneFunc) {
			var tets []spatialmath.Tetrahedron
			return func(memberNum, workNum int) {
				xC := cells[workNum].Centre(points, faces)
				tets = DecomposeCell(mof.mesh, points, workNum, xC, tets, xC)
				volume, centre := VolumeAndCentre(tets)
				mof.volumes[workNum] = volume
				mof.centres[workNum] = centre.Add(xC)
			}, nil
		},
	)
}

// Mesh returns the mesh being reconstructed.
func (mof *MomentOfFluid) Mesh() polymesh.PolyMesh {
	return mof.mesh
}

// CellVolumes returns the volume of every cell.
func (mof *MomentOfFluid) CellVolumes() []float64 {
	return mof.volumes
}

// CellCentres returns the centroid of volume of every cell.
func (mof *MomentOfFluid) CellCentres() []r3.Vector {
	return mof.centres
}

// DecomposeCell returns the tetrahedra of cell cellIndex, relative to the cell centroid. The
// returned slice is overwritten by the next call.
func (mof *MomentOfFluid) DecomposeCell(cellIndex int) []spatialmath.Tetrahedron {
	mof.tets = mof.decompose(cellIndex, mof.tets)
	return mof.tets
}

func (mof *MomentOfFluid) decompose(cellIndex int, tets []spatialmath.Tetrahedron) []spatialmath.Tetrahedron {
	points := mof.mesh.Points()
	xC := mof.mesh.Cells()[cellIndex].Centre(points, mof.mesh.Faces())
	return DecomposeCell(mof.mesh, points, cellIndex, xC, tets, mof.centres[cellIndex])
}

// Evaluate clips the tetrahedra by plane and returns the volume and centroid of what lies on the
// negative side. The plane and the returned centroid are in the same frame as tets.
func (mof *MomentOfFluid) Evaluate(tets []spatialmath.Tetrahedron, plane spatialmath.Plane) (float64, r3.Vector) {
	return VolumeAndCentre(ClipTets(plane, tets, nil))
}

func (mof *MomentOfFluid) checkCell(cellIndex int) error {
	if cellIndex < 0 || cellIndex >= len(mof.volumes) {
		return errors.Errorf("cell %d out of range [0, %d)", cellIndex, len(mof.volumes))
	}
	return nil
}

// cellEvaluator holds a cell decomposition and scratch space for repeated clipping. It is not
// safe for concurrent use.
type cellEvaluator struct {
	cell    int
	volume  float64
	centre  r3.Vector
	tets    []spatialmath.Tetrahedron
	clipped []spatialmath.Tetrahedron
	proj    []float64
}

func (mof *MomentOfFluid) newCellEvaluator(cellIndex int) *cellEvaluator {
	return &cellEvaluator{
		cell:   cellIndex,
		volume: mof.volumes[cellIndex],
		centre: mof.centres[cellIndex],
		tets:   mof.decompose(cellIndex, nil),
	}
}

// evaluate returns the clipped volume and its centroid relative to the cell centroid, for a plane
// given relative to the cell centroid.
func (ce *cellEvaluator) evaluate(plane spatialmath.Plane) (float64, r3.Vector) {
	ce.clipped = ClipTets(plane, ce.tets, ce.clipped[:0])
	return VolumeAndCentre(ce.clipped)
}

// projectionRange returns the smallest and largest projection of the decomposition vertices onto
// normal.
func (ce *cellEvaluator) projectionRange(normal r3.Vector) (float64, float64) {
	ce.proj = ce.proj[:0]
	for _, tet := range ce.tets {
		for _, pt := range tet {
			ce.proj = append(ce.proj, normal.Dot(pt))
		}
	}
	return floats.Min(ce.proj), floats.Max(ce.proj)
}
