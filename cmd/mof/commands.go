package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/mof/config"
	"go.viam.com/mof/logging"
	"go.viam.com/mof/mof"
	"go.viam.com/mof/polymesh"
	"go.viam.com/mof/spatialmath"
)

func reconstructAction(c *cli.Context, logger logging.Logger) error {
	cfg, err := config.Read(c.String(flagConfig), logger)
	if err != nil {
		return err
	}
	config.InitLoggingSettings(logger, cfg, c.Bool(flagDebug))

	mesh, err := polymesh.ReadFile(cfg.Mesh)
	if err != nil {
		return err
	}
	logger.Debugw("mesh loaded", "mesh", mesh)
	reconstructor, err := mof.NewMomentOfFluid(mesh, cfg, logger)
	if err != nil {
		return err
	}
	fields, err := mof.ReadFieldsFile(cfg.Fields, len(mesh.Cells()))
	if err != nil {
		return err
	}

	recs, err := reconstructor.ConstructInterface(c.Context, fields.Alpha, fields.Centres())
	if err != nil {
		return err
	}
	if cfg.Output != "" {
		if err := mof.WriteVTKFile(cfg.Output, reconstructor.InterfaceSurface(recs)); err != nil {
			return errors.Wrapf(err, "cannot write interface to %q", cfg.Output)
		}
		logger.Infow("interface written", "file", cfg.Output)
	}

	summary, err := summarize(recs)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, reconstructionTable(recs))
	fmt.Fprintln(c.App.Writer, summary)
	return nil
}

func cellAction(c *cli.Context, logger logging.Logger) error {
	mesh, err := polymesh.ReadFile(c.String(flagMesh))
	if err != nil {
		return err
	}
	reconstructor, err := mof.NewMomentOfFluid(mesh, nil, logger)
	if err != nil {
		return err
	}
	cell := c.Int(flagCell)
	if cell < 0 || cell >= len(mesh.Cells()) {
		return errors.Errorf("cell %d out of range [0, %d)", cell, len(mesh.Cells()))
	}

	volume := reconstructor.CellVolumes()[cell]
	centre := reconstructor.CellCentres()[cell]
	fmt.Fprintf(c.App.Writer, "cell %d: %d faces, volume %.17g, centroid %v\n",
		cell, len(mesh.Cells()[cell]), volume, centre)
	if !c.IsSet(flagNormal) {
		return nil
	}

	plane, err := planeFromFlags(c)
	if err != nil {
		return err
	}
	tets := reconstructor.DecomposeCell(cell)
	clipped, clippedCentre := reconstructor.Evaluate(tets, plane.Translate(centre))
	fmt.Fprintf(c.App.Writer, "below %v: fraction %.17g, centroid %v\n",
		plane, clipped/volume, clippedCentre.Add(centre))
	return nil
}

func fieldsAction(c *cli.Context, logger logging.Logger) error {
	mesh, err := polymesh.ReadFile(c.String(flagMesh))
	if err != nil {
		return err
	}
	reconstructor, err := mof.NewMomentOfFluid(mesh, nil, logger)
	if err != nil {
		return err
	}
	plane, err := planeFromFlags(c)
	if err != nil {
		return err
	}
	fields, err := reconstructor.FieldsFromPlane(plane)
	if err != nil {
		return err
	}
	return mof.WriteFieldsFile(c.String(flagOut), fields)
}

func planeFromFlags(c *cli.Context) (spatialmath.Plane, error) {
	normal, err := parseVector(c.String(flagNormal))
	if err != nil {
		return spatialmath.Plane{}, errors.Wrapf(err, "invalid --%s", flagNormal)
	}
	return spatialmath.NewPlane(normal, c.Float64(flagOffset))
}

// parseVector parses a comma separated triple such as "1,0,0.5".
func parseVector(s string) (r3.Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return r3.Vector{}, errors.Errorf("expected 3 comma separated components but got %q", s)
	}
	var xyz [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return r3.Vector{}, err
		}
		xyz[i] = v
	}
	return r3.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

func reconstructionTable(recs []mof.Reconstruction) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Cell", "Fraction", "Normal", "Offset", "Centroid Error"})
	for _, rec := range recs {
		t.AppendRow(table.Row{
			rec.Cell,
			fmt.Sprintf("%.6f", rec.Fraction),
			fmt.Sprintf("(%.4f, %.4f, %.4f)", rec.Normal.X, rec.Normal.Y, rec.Normal.Z),
			fmt.Sprintf("%.6g", rec.Offset),
			fmt.Sprintf("%.3e", rec.Error),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "Cells", len(recs)})
	return t.Render()
}

// summarize describes the distribution of centroid errors.
func summarize(recs []mof.Reconstruction) (string, error) {
	if len(recs) == 0 {
		return "no mixed cells", nil
	}
	errs := make(stats.Float64Data, len(recs))
	for i, rec := range recs {
		errs[i] = rec.Error
	}
	mean, err := errs.Mean()
	if err != nil {
		return "", err
	}
	median, err := errs.Median()
	if err != nil {
		return "", err
	}
	p95, err := errs.Percentile(95)
	if err != nil {
		return "", err
	}
	maxErr, err := errs.Max()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("centroid error: mean %.3e, median %.3e, p95 %.3e, max %.3e", mean, median, p95, maxErr), nil
}

