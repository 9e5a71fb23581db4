package mof

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"

	"go.viam.com/mof/spatialmath"
)

// WriteVTK writes the surface as legacy ASCII VTK polydata. Shared vertices are written once.
func WriteVTK(w io.Writer, surface *spatialmath.Mesh) error {
	verts, faces := surface.Vertices()
	bw := bufio.NewWriter(w)

	title := surface.Label()
	if title == "" {
		title = "surface"
	}
	fmt.Fprintf(bw, "# vtk DataFile Version 2.0\n%s\nASCII\nDATASET POLYDATA\n", title)
	fmt.Fprintf(bw, "POINTS %d double\n", len(verts))
	for _, v := range verts {
		fmt.Fprintf(bw, "%.17g %.17g %.17g\n", v.X, v.Y, v.Z)
	}
	fmt.Fprintf(bw, "POLYGONS %d %d\n", len(faces), 4*len(faces))
	for _, f := range faces {
		fmt.Fprintf(bw, "3 %d %d %d\n", f[0], f[1], f[2])
	}
	return bw.Flush()
}

// WriteVTKFile writes the surface to the named file, replacing it if it exists.
func WriteVTKFile(fn string, surface *spatialmath.Mesh) (err error) {
	//nolint:gosec
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	return WriteVTK(f, surface)
}
