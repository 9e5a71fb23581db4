// Package mof implements Moment-of-Fluid interface reconstruction on polyhedral meshes: cells are
// decomposed into tetrahedra, tetrahedra are clipped against oriented planes, and the volume and
// centroid of the clipped region drive the search for the interface plane in each cell.
package mof

import (
	"github.com/golang/geo/r3"

	"go.viam.com/mof/polymesh"
	"go.viam.com/mof/spatialmath"
)

// DecomposeCell fills tets with a tetrahedral decomposition of cell cellIndex of mesh, using the
// coordinates in points rather than the mesh's own, and returns the filled slice. tets is
// truncated first; its backing array is reused when large enough. Every emitted vertex is
// written relative to xT.
//
// A cell with four faces is emitted as the single tetrahedron it already is. Any other cell is
// fanned from the apex xC: triangular faces contribute one tetrahedron each, larger faces one per
// edge, closed off at the face centre. The result is exact for planar faces and a cell that is
// star-shaped with respect to xC. Indices are not checked.
func DecomposeCell(
	mesh polymesh.PolyMesh,
	points []r3.Vector,
	cellIndex int,
	xC r3.Vector,
	tets []spatialmath.Tetrahedron,
	xT r3.Vector,
) []spatialmath.Tetrahedron {
	tets = tets[:0]
	faces := mesh.Faces()
	cell := mesh.Cells()[cellIndex]

	if len(cell) == 4 {
		first := faces[cell[0]]
		var tet spatialmath.Tetrahedron
		for i := 0; i < 3; i++ {
			tet[i] = points[first[i]].Sub(xT)
		}
		for _, label := range faces[cell[1]] {
			if label != first[0] && label != first[1] && label != first[2] {
				tet[3] = points[label].Sub(xT)
				break
			}
		}
		return append(tets, tet)
	}

	apex := xC.Sub(xT)
	for _, faceIndex := range cell {
		face := faces[faceIndex]
		if face.Size() == 3 {
			tets = append(tets, spatialmath.Tetrahedron{
				points[face[0]].Sub(xT),
				points[face[1]].Sub(xT),
				points[face[2]].Sub(xT),
				apex,
			})
			continue
		}
		centre := face.Centre(points).Sub(xT)
		for i, label := range face {
			tets = append(tets, spatialmath.Tetrahedron{
				points[label].Sub(xT),
				points[face.NextLabel(i)].Sub(xT),
				centre,
				apex,
			})
		}
	}
	return tets
}
