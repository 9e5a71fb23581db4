package mof

import (
	"context"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/optimize"

	"go.viam.com/mof/spatialmath"
	"go.viam.com/mof/utils"
)

// initialSimplexSize is the step, in radians, of the initial orientation simplex.
const initialSimplexSize = 0.2

// OptimizeCentroid finds the interface plane of cell cellIndex that holds fraction of its volume
// and whose fluid centroid lies closest to refCentre, given in global coordinates. Orientations
// are searched over the unit sphere; for each candidate the plane offset is re-matched to the
// fraction. The search stops with ctx's error once ctx is done.
func (mof *MomentOfFluid) OptimizeCentroid(
	ctx context.Context,
	cellIndex int,
	fraction float64,
	refCentre r3.Vector,
) (Reconstruction, error) {
	if err := mof.checkCell(cellIndex); err != nil {
		return Reconstruction{}, err
	}
	if fraction <= 0 || fraction >= 1 {
		return Reconstruction{}, errors.Errorf("cell %d: volume fraction %g has no interface", cellIndex, fraction)
	}
	ce := mof.newCellEvaluator(cellIndex)
	ref := refCentre.Sub(ce.centre)

	tol, maxIter := mof.cfg.Tolerance, mof.cfg.MaxIterations
	// place returns the matched plane for a normal and the centroid error it leaves.
	place := func(normal r3.Vector) (spatialmath.Plane, r3.Vector, float64) {
		d, _ := ce.matchFraction(fraction, normal, tol, maxIter)
		plane := spatialmath.Plane{Normal: normal, Offset: d}
		_, centre := ce.evaluate(plane)
		return plane, centre, centre.Distance(ref)
	}

	// The fluid centroid sits behind the cell centroid, so the direction from the reference
	// centroid to the cell centroid is a good first normal.
	initial := ref.Mul(-1)
	if initial.Norm2() == 0 {
		initial = r3.Vector{Z: 1}
	}
	theta, phi := toSpherical(initial.Normalize())

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			_, _, dist := place(fromSpherical(x[0], x[1]))
			return dist
		},
	}
	settings := &optimize.Settings{
		MajorIterations: maxIter,
		Converger: &optimize.FunctionConverge{
			Absolute:   tol * math.Cbrt(ce.volume),
			Iterations: 20,
		},
		Recorder: contextRecorder{ctx},
	}
	result, err := optimize.Minimize(problem, []float64{theta, phi}, settings, &optimize.NelderMead{SimplexSize: initialSimplexSize})
	if err != nil {
		return Reconstruction{}, errors.Wrapf(err, "cell %d: orientation search failed", cellIndex)
	}

	normal := fromSpherical(result.X[0], result.X[1])
	plane, centre, dist := place(normal)
	global := plane.Translate(ce.centre.Mul(-1))
	rec := Reconstruction{
		Cell:     cellIndex,
		Fraction: fraction,
		Normal:   global.Normal,
		Offset:   global.Offset,
		Centre:   centre.Add(ce.centre),
		Error:    dist,
	}
	mof.logger.Debugw("cell reconstructed",
		"cell", cellIndex,
		"fraction", fraction,
		"normal", rec.Normal,
		"error", rec.Error,
		"evaluations", result.Stats.FuncEvaluations,
		"status", result.Status,
	)
	return rec, nil
}

// contextRecorder ends a minimization when its context is done. gonum consults the recorder
// after every evaluation.
type contextRecorder struct {
	ctx context.Context
}

func (r contextRecorder) Init() error {
	return r.ctx.Err()
}

func (r contextRecorder) Record(*optimize.Location, optimize.Operation, *optimize.Stats) error {
	return r.ctx.Err()
}

func toSpherical(n r3.Vector) (float64, float64) {
	return math.Acos(utils.Clamp(n.Z, -1, 1)), math.Atan2(n.Y, n.X)
}

func fromSpherical(theta, phi float64) r3.Vector {
	sinTheta := math.Sin(theta)
	return r3.Vector{
		X: sinTheta * math.Cos(phi),
		Y: sinTheta * math.Sin(phi),
		Z: math.Cos(theta),
	}
}
