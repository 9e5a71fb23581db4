package mof

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/mof/spatialmath"
)

var errZeroNormal = errors.New("normal must be non-zero")

// MatchFraction finds the offset d for which the plane normal.x = d, written relative to the
// centroid of cell cellIndex, leaves fraction of the cell volume on its negative side. It also
// returns span, the extent of the cell along normal. normal is normalized first, so d and span
// are distances.
//
// A fraction of 0 or 1 returns the matching end of the cell. Anything between is found by
// bisection to within the configured tolerance, or the best bracket midpoint after the configured
// number of iterations.
func (mof *MomentOfFluid) MatchFraction(cellIndex int, fraction float64, normal r3.Vector) (float64, float64, error) {
	if err := mof.checkCell(cellIndex); err != nil {
		return 0, 0, err
	}
	if normal.Norm2() == 0 {
		return 0, 0, errZeroNormal
	}
	if fraction < 0 || fraction > 1 {
		return 0, 0, errors.Errorf("volume fraction %g outside [0, 1]", fraction)
	}
	ce := mof.newCellEvaluator(cellIndex)
	d, span := ce.matchFraction(fraction, normal.Normalize(), mof.cfg.Tolerance, mof.cfg.MaxIterations)
	return d, span, nil
}

// matchFraction places a plane with the given unit normal, relative to the cell centroid, so that
// it cuts off the requested volume fraction.
func (ce *cellEvaluator) matchFraction(fraction float64, normal r3.Vector, tolerance float64, maxIterations int) (float64, float64) {
	dMin, dMax := ce.projectionRange(normal)
	span := dMax - dMin
	switch {
	case fraction <= 0:
		return dMin, span
	case fraction >= 1:
		return dMax, span
	}

	low, high := dMin, dMax
	d := 0.5 * (low + high)
	for i := 0; i < maxIterations; i++ {
		d = 0.5 * (low + high)
		volume, _ := ce.evaluate(spatialmath.Plane{Normal: normal, Offset: d})
		diff := volume/ce.volume - fraction
		if diff > -tolerance && diff < tolerance {
			break
		}
		if diff > 0 {
			high = d
		} else {
			low = d
		}
		if high-low <= span*0x1p-52 {
			break
		}
	}
	return d, span
}
