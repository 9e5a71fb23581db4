package polymesh

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/test"

	"go.viam.com/mof/utils"
)

func TestFace(t *testing.T) {
	points := []r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 2, Y: 2, Z: 0}, {X: 0, Y: 2, Z: 0}}
	face := Face{0, 1, 2, 3}
	test.That(t, face.Size(), test.ShouldEqual, 4)
	test.That(t, face.NextLabel(0), test.ShouldEqual, 1)
	test.That(t, face.NextLabel(3), test.ShouldEqual, 0)
	test.That(t, face.Centre(points), test.ShouldResemble, r3.Vector{X: 1, Y: 1})
	test.That(t, Face{3, 1, 0}.Points(points), test.ShouldResemble, []r3.Vector{{X: 0, Y: 2, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 0}})
}

func TestCell(t *testing.T) {
	mesh := NewTetrahedronMesh(r3.Vector{}, r3.Vector{X: 4}, r3.Vector{Y: 4}, r3.Vector{Z: 4})
	cell := mesh.Cells()[0]
	test.That(t, cell.Labels(mesh.Faces()), test.ShouldResemble, []int{0, 2, 1, 3})
	test.That(t, mesh.CellCentre(0), test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: 1})
}

func TestNewMesh(t *testing.T) {
	points := []r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}}

	t.Run("valid", func(t *testing.T) {
		mesh, err := NewMesh(points, []Face{{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {0, 3, 2}}, []Cell{{0, 1, 2, 3}})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, mesh.String(), test.ShouldEqual, "Mesh{points: 4, faces: 4, cells: 1}")
	})

	t.Run("every problem is reported", func(t *testing.T) {
		_, err := NewMesh(points, []Face{{0, 1}, {0, 1, 7}}, []Cell{{0, 1, 2}, {0, 1, 5, -1}})
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "invalid mesh")
		test.That(t, err.Error(), test.ShouldContainSubstring, "face 0 has 2 vertices")
		test.That(t, err.Error(), test.ShouldContainSubstring, "face 1 references point 7 out of 4")
		test.That(t, err.Error(), test.ShouldContainSubstring, "cell 0 has 3 faces")
		test.That(t, err.Error(), test.ShouldContainSubstring, "cell 0 references face 2 out of 2")
		test.That(t, err.Error(), test.ShouldContainSubstring, "cell 1 references face 5 out of 2")
		test.That(t, err.Error(), test.ShouldContainSubstring, "cell 1 references face -1 out of 2")
	})
}

func TestCartesianMesh(t *testing.T) {
	mesh, err := NewCartesianMesh(r3.Vector{X: -1}, r3.Vector{X: 0.5, Y: 1, Z: 2}, 2, 1, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(mesh.Points()), test.ShouldEqual, 12)
	test.That(t, len(mesh.Faces()), test.ShouldEqual, 11)
	test.That(t, len(mesh.Cells()), test.ShouldEqual, 2)

	// The +x face of the first cell is the -x face of the second.
	test.That(t, mesh.Cells()[0][1], test.ShouldEqual, mesh.Cells()[1][0])
	for c := range mesh.Cells() {
		test.That(t, len(mesh.Cells()[c].Labels(mesh.Faces())), test.ShouldEqual, 8)
	}
	test.That(t, mesh.CellCentre(0), test.ShouldResemble, r3.Vector{X: -0.75, Y: 0.5, Z: 1})
	test.That(t, mesh.CellCentre(1), test.ShouldResemble, r3.Vector{X: -0.25, Y: 0.5, Z: 1})

	_, err = NewCartesianMesh(r3.Vector{}, r3.Vector{X: 1, Y: 1, Z: 1}, 0, 1, 1)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewCartesianMesh(r3.Vector{}, r3.Vector{X: 1, Y: -1, Z: 1}, 1, 1, 1)
	test.That(t, err, test.ShouldNotBeNil)

	box, err := NewBoxMesh(r3.Vector{X: 1, Y: 1, Z: 1}, r3.Vector{X: 3, Y: 3, Z: 3})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, box.CellCentre(0), test.ShouldResemble, r3.Vector{X: 2, Y: 2, Z: 2})
}

func TestReadFile(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		mesh, err := ReadFile(utils.ResolveFile("polymesh/testdata/prism.json"))
		test.That(t, err, test.ShouldBeNil)
		prism := NewPrismMesh([3]r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}, r3.Vector{Z: 2})
		test.That(t, mesh.Points(), test.ShouldResemble, prism.Points())
		test.That(t, mesh.Faces(), test.ShouldResemble, prism.Faces())
		test.That(t, mesh.Cells(), test.ShouldResemble, prism.Cells())
	})

	t.Run("ply", func(t *testing.T) {
		mesh, err := ReadFile(utils.ResolveFile("polymesh/testdata/cube.ply"))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, len(mesh.Points()), test.ShouldEqual, 8)
		test.That(t, len(mesh.Faces()), test.ShouldEqual, 6)
		test.That(t, mesh.Cells(), test.ShouldResemble, []Cell{{0, 1, 2, 3, 4, 5}})
		test.That(t, mesh.Faces()[0], test.ShouldResemble, Face{0, 3, 2, 1})
		test.That(t, mesh.CellCentre(0), test.ShouldResemble, r3.Vector{X: 0.5, Y: 0.5, Z: 0.5})
	})

	t.Run("unknown extension", func(t *testing.T) {
		_, err := ReadFile(utils.ResolveFile("go.mod"))
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "do not know how to read file")
	})

	t.Run("missing", func(t *testing.T) {
		_, err := ReadFile(utils.ResolveFile("polymesh/testdata/nope.json"))
		test.That(t, err, test.ShouldNotBeNil)
	})
}

func TestReadPLYCellErrors(t *testing.T) {
	_, err := ReadPLYCell(strings.NewReader("not a ply file\n"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot parse ply")

	noFaces := `ply
format ascii 1.0
element vertex 1
property float x
property float y
end_header
0 0
`
	_, err = ReadPLYCell(strings.NewReader(noFaces))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `vertex 0 property "z"`)
}

func TestJSONRoundTrip(t *testing.T) {
	mesh, err := NewCartesianMesh(r3.Vector{}, r3.Vector{X: 1, Y: 1, Z: 1}, 2, 2, 1)
	test.That(t, err, test.ShouldBeNil)

	var buf bytes.Buffer
	test.That(t, WriteJSON(&buf, mesh), test.ShouldBeNil)
	read, err := ReadJSON(&buf)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, read, test.ShouldResemble, mesh)

	_, err = ReadJSON(strings.NewReader(`{"points": [[0, 0, 0]], "faces": [[0, 0, 1], [0, 0]], "cells": []}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, len(multierr.Errors(errors.Cause(err))), test.ShouldEqual, 2)
}
