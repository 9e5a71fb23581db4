package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/mof/logging"
	"go.viam.com/mof/mof"
	"go.viam.com/mof/polymesh"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp(logging.NewTestLogger(t))
	app.Writer = &out
	err := app.RunContext(context.Background(), append([]string{"mof"}, args...))
	return out.String(), err
}

func writeMesh(t *testing.T, dir string) string {
	t.Helper()
	mesh, err := polymesh.NewCartesianMesh(r3.Vector{}, r3.Vector{X: 0.25, Y: 0.25, Z: 0.25}, 4, 4, 1)
	test.That(t, err, test.ShouldBeNil)
	fn := filepath.Join(dir, "mesh.json")
	f, err := os.Create(fn)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, polymesh.WriteJSON(f, mesh), test.ShouldBeNil)
	test.That(t, f.Close(), test.ShouldBeNil)
	return fn
}

func TestReconstructCommand(t *testing.T) {
	dir := t.TempDir()
	meshFile := writeMesh(t, dir)

	_, err := runApp(t, "fields", "--mesh", meshFile, "--normal", "1,0.5,0", "--offset", "0.55", "--out", filepath.Join(dir, "fields.json"))
	test.That(t, err, test.ShouldBeNil)

	cfg := `{"mesh": "mesh.json", "fields": "fields.json", "output": "interface.vtk", "min_fraction": 0.001}`
	cfgFile := filepath.Join(dir, "mof.json")
	test.That(t, os.WriteFile(cfgFile, []byte(cfg), 0o600), test.ShouldBeNil)

	out, err := runApp(t, "reconstruct", "--config", cfgFile)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "CENTROID ERROR")
	test.That(t, out, test.ShouldContainSubstring, "centroid error: mean")

	vtk, err := os.ReadFile(filepath.Join(dir, "interface.vtk"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(vtk), test.ShouldStartWith, "# vtk DataFile Version 2.0\ninterface (")

	_, err = runApp(t, "reconstruct", "--config", filepath.Join(dir, "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)
	_, err = runApp(t, "reconstruct")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestCellCommand(t *testing.T) {
	meshFile := writeMesh(t, t.TempDir())

	out, err := runApp(t, "cell", "--mesh", meshFile, "--cell", "5")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "cell 5: 6 faces, volume ")
	test.That(t, out, test.ShouldNotContainSubstring, "below")

	out, err = runApp(t, "cell", "--mesh", meshFile, "--cell", "0", "--normal", "1,0,0", "--offset", "0.125")
	test.That(t, err, test.ShouldBeNil)
	_, rest, found := strings.Cut(out, "fraction ")
	test.That(t, found, test.ShouldBeTrue)
	fraction, err := strconv.ParseFloat(rest[:strings.Index(rest, ",")], 64)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, fraction, test.ShouldAlmostEqual, 0.5, 1e-12)

	_, err = runApp(t, "cell", "--mesh", meshFile, "--cell", "16")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "out of range")
	_, err = runApp(t, "cell", "--mesh", meshFile, "--normal", "0,0,0")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestParseVector(t *testing.T) {
	v, err := parseVector("1, -2.5,3e2")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldResemble, r3.Vector{X: 1, Y: -2.5, Z: 300})

	for _, bad := range []string{"", "1,2", "1,2,3,4", "1,x,3"} {
		_, err := parseVector(bad)
		test.That(t, err, test.ShouldNotBeNil)
	}
}

func TestSummary(t *testing.T) {
	s, err := summarize(nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s, test.ShouldEqual, "no mixed cells")

	recs := []mof.Reconstruction{
		{Cell: 2, Fraction: 0.5, Normal: r3.Vector{Z: 1}, Error: 1e-6},
		{Cell: 7, Fraction: 0.25, Normal: r3.Vector{X: 1}, Error: 3e-6},
	}
	s, err = summarize(recs)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s, test.ShouldContainSubstring, "mean 2.000e-06")
	test.That(t, s, test.ShouldContainSubstring, "max 3.000e-06")

	rendered := reconstructionTable(recs)
	test.That(t, rendered, test.ShouldContainSubstring, "0.250000")
	test.That(t, rendered, test.ShouldContainSubstring, "(1.0000, 0.0000, 0.0000)")
}
