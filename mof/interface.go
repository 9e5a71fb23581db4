package mof

import (
	"context"
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"go.viam.com/mof/spatialmath"
)

// ConstructInterface reconstructs the interface in every cell whose volume fraction alpha lies
// strictly between the configured minimum fraction and one minus it. refCentres holds the
// reference fluid centroid of each cell. The reconstructions are returned in cell order; cells that
// are nearly empty or nearly full are left out. Canceling ctx stops cells in flight as well as the
// ones not yet started.
func (mof *MomentOfFluid) ConstructInterface(ctx context.Context, alpha []float64, refCentres []r3.Vector) ([]Reconstruction, error) {
	nCells := len(mof.volumes)
	if len(alpha) != nCells {
		return nil, errors.Errorf("expected %d volume fractions but got %d", nCells, len(alpha))
	}
	if len(refCentres) != nCells {
		return nil, errors.Errorf("expected %d reference centroids but got %d", nCells, len(refCentres))
	}

	minFraction := mof.cfg.MinFraction
	recs := make([]Reconstruction, nCells)
	mixed := make([]bool, nCells)

	g, ctx := errgroup.WithContext(ctx)
	if mof.cfg.Parallelism > 0 {
		g.SetLimit(mof.cfg.Parallelism)
	}
	for i := range alpha {
		if alpha[i] <= minFraction || alpha[i] >= 1-minFraction {
			continue
		}
		mixed[i] = true
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := mof.OptimizeCentroid(ctx, i, alpha[i], refCentres[i])
			if err != nil {
				return err
			}
			recs[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Reconstruction, 0, nCells)
	for i, rec := range recs {
		if mixed[i] {
			out = append(out, rec)
		}
	}
	mof.logger.Infow("interface constructed", "cells", nCells, "reconstructed", len(out))
	return out, nil
}

// InterfaceSurface triangulates each reconstructed plane where it passes through its cell. The
// triangles face along the plane normals.
func (mof *MomentOfFluid) InterfaceSurface(recs []Reconstruction) *spatialmath.Mesh {
	surface := spatialmath.NewMesh(nil, fmt.Sprintf("interface (%d cells)", len(recs)))
	var tets []spatialmath.Tetrahedron
	for _, rec := range recs {
		centre := mof.centres[rec.Cell]
		tets = mof.decompose(rec.Cell, tets)
		plane := rec.Plane().Translate(centre)
		for _, tet := range tets {
			for _, tri := range spatialmath.FanTriangles(tet.PlaneSection(plane)) {
				pts := tri.Points()
				surface.Append(spatialmath.NewTriangle(
					pts[0].Add(centre),
					pts[1].Add(centre),
					pts[2].Add(centre),
				).OrientedAlong(rec.Normal))
			}
		}
	}
	return surface
}
