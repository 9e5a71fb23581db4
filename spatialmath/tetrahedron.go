package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Tetrahedron is an ordered set of four vertices. It is a value type; copying it copies the
// vertices. Orientation is not significant, so the vertex order may produce a negative
// SignedVolume.
type Tetrahedron [4]r3.Vector

// NewTetrahedron returns a tetrahedron with the given vertices in order.
func NewTetrahedron(p0, p1, p2, p3 r3.Vector) Tetrahedron {
	return Tetrahedron{p0, p1, p2, p3}
}

// SignedVolume returns ((t1-t0) x (t2-t0)) . (t3-t0) / 6.
func (t Tetrahedron) SignedVolume() float64 {
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0])).Dot(t[3].Sub(t[0])) / 6
}

// Volume returns the unsigned volume of the tetrahedron.
func (t Tetrahedron) Volume() float64 {
	return math.Abs(t.SignedVolume())
}

// Centroid returns the arithmetic mean of the four vertices, which for a tetrahedron is also its
// centre of volume.
func (t Tetrahedron) Centroid() r3.Vector {
	return t[0].Add(t[1]).Add(t[2]).Add(t[3]).Mul(0.25)
}

// Translate returns the tetrahedron with every vertex moved by offset.
func (t Tetrahedron) Translate(offset r3.Vector) Tetrahedron {
	for i := range t {
		t[i] = t[i].Add(offset)
	}
	return t
}

// Points returns the vertices as a slice.
func (t Tetrahedron) Points() []r3.Vector {
	return []r3.Vector{t[0], t[1], t[2], t[3]}
}

// AlmostEqual compares vertex by vertex, in order, with the given per-component tolerance.
func (t Tetrahedron) AlmostEqual(other Tetrahedron, epsilon float64) bool {
	for i := range t {
		d := t[i].Sub(other[i]).Abs()
		if d.X > epsilon || d.Y > epsilon || d.Z > epsilon {
			return false
		}
	}
	return true
}

// PlaneSection returns the polygon where the plane cuts through the interior of the
// tetrahedron, ordered around its boundary. Only tetrahedra with vertices strictly on both sides
// of the plane have a section; a tetrahedron that merely touches the plane returns nil.
func (t Tetrahedron) PlaneSection(plane Plane) []r3.Vector {
	var dist [4]float64
	var pos, neg, zero [4]int
	nPos, nNeg, nZero := 0, 0, 0
	for i := range t {
		dist[i] = plane.Distance(t[i])
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
	if nPos == 0 || nNeg == 0 {
		return nil
	}

	cut := func(p, q int) r3.Vector {
		return EdgeIntersection(t[p], t[q], dist[p], dist[q])
	}

	section := make([]r3.Vector, 0, 4)
	for i := 0; i < nZero; i++ {
		section = append(section, t[zero[i]])
	}
	switch {
	case nPos == 2 && nNeg == 2:
		// Walk the four crossing edges so consecutive points share a vertex.
		section = append(section,
			cut(pos[0], neg[0]),
			cut(pos[0], neg[1]),
			cut(pos[1], neg[1]),
			cut(pos[1], neg[0]),
		)
	case nPos == 1:
		for i := 0; i < nNeg; i++ {
			section = append(section, cut(pos[0], neg[i]))
		}
	default:
		for i := 0; i < nPos; i++ {
			section = append(section, cut(pos[i], neg[0]))
		}
	}
	return section
}

func (t Tetrahedron) String() string {
	return fmt.Sprintf("Tetrahedron{%v, %v, %v, %v}", t[0], t[1], t[2], t[3])
}

// EdgeIntersection returns the point where the segment p-q crosses the plane, given signed
// distances dp > 0 and dq < 0. The weights are barycentric on the edge and sum to one.
func EdgeIntersection(p, q r3.Vector, dp, dq float64) r3.Vector {
	invDiff := 1 / (dp - dq)
	w0 := -dq * invDiff
	w1 := dp * invDiff
	return p.Mul(w0).Add(q.Mul(w1))
}
