package mof

import (
	"github.com/golang/geo/r3"

	"go.viam.com/mof/spatialmath"
)

// SplitAndDecompose appends to tets a tetrahedralization of the part of tet on the negative side
// of plane, Normal.x <= Offset, and returns the extended slice. Existing entries are kept, so
// successive planes can be applied to the output of earlier calls.
//
// Vertices are classified by the exact sign of their distance to the plane; a vertex with
// distance zero is on the plane and is never cut. A tetrahedron with no vertex strictly inside
// contributes nothing and one with no vertex strictly outside is appended unchanged.
func SplitAndDecompose(plane spatialmath.Plane, tet spatialmath.Tetrahedron, tets []spatialmath.Tetrahedron) []spatialmath.Tetrahedron {
	var dist [4]float64
	var pos, neg, zero [4]int
	nPos, nNeg, nZero := 0, 0, 0
	for i := range tet {
		dist[i] = plane.Distance(tet[i])
		switch {
		case dist[i] > 0:
			pos[nPos] = i
			nPos++
		case dist[i] < 0:
			neg[nNeg] = i
			nNeg++
		default:
			zero[nZero] = i
			nZero++
		}
	}

	if nNeg == 0 {
		return tets
	}
	if nPos == 0 {
		return append(tets, tet)
	}

	cut := func(p, q int) r3.Vector {
		return spatialmath.EdgeIntersection(tet[p], tet[q], dist[p], dist[q])
	}

	var intp [4]r3.Vector
	switch {
	case nPos == 3:
		// + + + -
		for i := 0; i < 3; i++ {
			intp[i] = cut(pos[i], neg[0])
		}
		for i := 0; i < 3; i++ {
			tet[pos[i]] = intp[i]
		}
		return append(tets, tet)

	case nPos == 2 && nNeg == 2:
		// + + - -: the inside is a triangular prism.
		intp[0] = cut(pos[0], neg[0])
		intp[1] = cut(pos[1], neg[0])
		intp[2] = cut(pos[0], neg[1])
		intp[3] = cut(pos[1], neg[1])
		n0, n1 := tet[neg[0]], tet[neg[1]]

		first := tet
		first[pos[0]] = intp[2]
		first[pos[1]] = intp[1]
		return append(tets,
			first,
			spatialmath.Tetrahedron{n1, intp[3], intp[2], intp[1]},
			spatialmath.Tetrahedron{n0, intp[0], intp[1], intp[2]},
		)

	case nPos == 2:
		// + + - 0
		for i := 0; i < 2; i++ {
			tet[pos[i]] = cut(pos[i], neg[0])
		}
		return append(tets, tet)

	case nNeg == 3:
		// + - - -: the inside is the tetrahedron less a cut-off corner.
		for i := 0; i < 3; i++ {
			intp[i] = cut(pos[0], neg[i])
		}
		n1, n2 := tet[neg[1]], tet[neg[2]]

		first := tet
		first[pos[0]] = intp[0]
		return append(tets,
			first,
			spatialmath.Tetrahedron{intp[0], n1, n2, intp[1]},
			spatialmath.Tetrahedron{n2, intp[1], intp[2], intp[0]},
		)

	case nNeg == 2:
		// + - - 0
		intp[0] = cut(pos[0], neg[0])
		intp[1] = cut(pos[0], neg[1])
		z0, n1 := tet[zero[0]], tet[neg[1]]

		first := tet
		first[pos[0]] = intp[0]
		return append(tets,
			first,
			spatialmath.Tetrahedron{intp[1], z0, n1, intp[0]},
		)

	default:
		// + - 0 0
		tet[pos[0]] = cut(pos[0], neg[0])
		return append(tets, tet)
	}
}

// ClipTets applies SplitAndDecompose to every tetrahedron of in, appending the pieces to out.
// in and out must not share a backing array.
func ClipTets(plane spatialmath.Plane, in, out []spatialmath.Tetrahedron) []spatialmath.Tetrahedron {
	for _, tet := range in {
		out = SplitAndDecompose(plane, tet, out)
	}
	return out
}
