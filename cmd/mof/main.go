// Package main is the mof command line tool.
package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"go.viam.com/mof/logging"
)

const (
	// Flags.
	flagConfig = "config"
	flagDebug  = "debug"
	flagMesh   = "mesh"
	flagCell   = "cell"
	flagNormal = "normal"
	flagOffset = "offset"
	flagOut    = "out"
)

func main() {
	logger := logging.NewLogger("mof")
	logging.ReplaceGlobal(logger)
	if err := newApp(logger).Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}

func newApp(logger logging.Logger) *cli.App {
	planeFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  flagNormal,
			Usage: "plane normal as `X,Y,Z`",
		},
		&cli.Float64Flag{
			Name:  flagOffset,
			Usage: "plane offset; the fluid lies where normal.x <= offset",
		},
	}

	return &cli.App{
		Name:  "mof",
		Usage: "reconstruct fluid interfaces from volume fractions and centroids",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool(flagDebug) {
				logger.SetLevel(logging.DEBUG)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "reconstruct",
				Usage: "reconstruct the interface in every mixed cell of a mesh",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagConfig,
						Aliases:  []string{"c"},
						Required: true,
						Usage:    "load configuration from `FILE`",
					},
				},
				Action: func(c *cli.Context) error {
					return reconstructAction(c, logger)
				},
			},
			{
				Name:  "cell",
				Usage: "print the volume and centroid of a cell, optionally clipped by a plane",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     flagMesh,
						Required: true,
						Usage:    "mesh `FILE`, JSON or PLY",
					},
					&cli.IntFlag{
						Name:  flagCell,
						Usage: "cell index",
					},
				}, planeFlags...),
				Action: func(c *cli.Context) error {
					return cellAction(c, logger)
				},
			},
			{
				Name:  "fields",
				Usage: "write the fields of a fluid filling the half-space below a plane",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     flagMesh,
						Required: true,
						Usage:    "mesh `FILE`, JSON or PLY",
					},
					&cli.StringFlag{
						Name:     flagOut,
						Required: true,
						Usage:    "fields output `FILE`",
					},
				}, planeFlags...),
				Action: func(c *cli.Context) error {
					return fieldsAction(c, logger)
				},
			},
		},
	}
}
